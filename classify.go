package blurp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"net/url"
	"strings"

	"github.com/npillmayer/blurp/dom"
	"golang.org/x/net/html"
)

// Kind is the kind of element a placeholder may be derived for.
type Kind int8

const (
	KindNone        Kind = iota // not a candidate element
	KindImage                   // an amp-img element
	KindVideoPoster             // an amp-video element with a poster still
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideoPoster:
		return "video poster"
	}
	return "none"
}

// Layout is a type for the sizing behavior declared by an element's
// layout attribute.
type Layout uint8

const (
	NoLayout          Layout = iota // unset or unrecognized
	LayoutNodisplay                 // element is not displayed
	LayoutFixed                     // fixed width and height
	LayoutFixedHeight               // fixed height, fluid width
	LayoutResponsive                // scales with the container, keeping aspect ratio
	LayoutFill                      // fills the parent container
	LayoutContainer                 // sized by its children
	LayoutFlexItem                  // sized by the parent flex container
	LayoutIntrinsic                 // scales up to the image's natural size
)

var layoutNames = []string{"", "nodisplay", "fixed", "fixed-height", "responsive",
	"fill", "container", "flex-item", "intrinsic"}

// ParseLayout maps a layout attribute value to a Layout. Unknown values
// map to NoLayout.
func ParseLayout(layout string) Layout {
	for l, name := range layoutNames {
		if l > 0 && layout == name {
			return Layout(l)
		}
	}
	return NoLayout
}

func (l Layout) String() string {
	if int(l) >= len(layoutNames) {
		return "layout?"
	}
	return layoutNames[l]
}

// Blurrable tells if elements with this layout stretch a placeholder
// child to cover their box, making a blurred preview worthwhile.
func (l Layout) Blurrable() bool {
	return l == LayoutIntrinsic || l == LayoutResponsive || l == LayoutFill
}

// candidate is a document node evaluated for placeholder derivation,
// together with its element kind and the extracted image reference.
type candidate struct {
	node *html.Node
	kind Kind
	ref  string
}

// extractCandidate classifies n and extracts its image reference.
// For image elements the reference is the src attribute, possibly empty.
// For video elements it is the poster attribute; a video without a poster
// is no candidate at all.
func extractCandidate(n *html.Node) (candidate, bool) {
	switch {
	case dom.IsElement(n, "amp-img"):
		return candidate{node: n, kind: KindImage, ref: dom.Attr(n, "src")}, true
	case dom.IsElement(n, "amp-video"):
		if !dom.HasAttr(n, "poster") {
			return candidate{}, false
		}
		return candidate{node: n, kind: KindVideoPoster, ref: dom.Attr(n, "poster")}, true
	}
	return candidate{}, false
}

// eligible decides whether a placeholder should be derived for a
// candidate. Rules are checked in order, each a short-circuit rejection:
// a missing reference, a placeholder-marked child already present, a
// reference that is not JPEG-style, an element already opting out of
// lazy-loading. What remains is eligible if it is a video poster, or an
// image whose layout stretches placeholders over its box.
func eligible(c candidate) bool {
	if c.ref == "" {
		return false
	}
	if hasPlaceholderChild(c.node) {
		return false
	}
	if !hasJPEGPath(c.ref) {
		return false
	}
	if dom.HasAttr(c.node, "noloading") {
		return false
	}
	if c.kind == KindVideoPoster {
		return true
	}
	return ParseLayout(dom.Attr(c.node, "layout")).Blurrable()
}

// hasPlaceholderChild tells if a present placeholder child occupies the
// element. Present placeholders are never overridden.
func hasPlaceholderChild(n *html.Node) bool {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode && dom.HasAttr(ch, "placeholder") {
			return true
		}
	}
	return false
}

// neutralBase hosts relative references during parsing. It never leaves
// this file; the reference itself stays unresolved everywhere else.
var neutralBase = &url.URL{Scheme: "https", Host: "example.com", Path: "/"}

// hasJPEGPath tells if a reference's path component marks a JPEG image.
// The check is suffix-based on the parsed path, not content sniffing, and
// it is case-sensitive.
func hasJPEGPath(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		tracer().Debugf("image reference does not parse: %v", err)
		return false
	}
	path := neutralBase.ResolveReference(u).Path
	return strings.HasSuffix(path, ".jpg") || strings.HasSuffix(path, "jpeg")
}
