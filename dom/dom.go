package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML parses a complete HTML document from input.
// The underlying parser is tolerant and will rather synthesize missing
// structure (html, head, body) than fail on ill-formed markup.
func FromHTML(input io.Reader) (*html.Node, error) {
	doc, err := html.Parse(input)
	if err != nil {
		tracer().Errorf("cannot parse HTML input: %v", err)
		return nil, err
	}
	return doc, nil
}

// ToHTML serializes a document (sub-)tree to w.
func ToHTML(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// Body returns the body element of a document, or nil if doc does not
// contain one. The parser synthesizes a body for every complete document,
// so a nil return usually indicates that doc is a detached fragment.
func Body(doc *html.Node) *html.Node {
	if doc == nil {
		return nil
	}
	if doc.Type == html.ElementNode && doc.DataAtom == atom.Body {
		return doc
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if body := Body(c); body != nil {
			return body
		}
	}
	return nil
}

// ElementName returns the tag name of an element node, or the empty
// string for non-element nodes.
func ElementName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

// IsElement tells if n is an element node with the given tag name.
// Tag names are matched case-insensitively; custom elements (without an
// entry in the atom table) are matched by name as well.
func IsElement(n *html.Node, tag string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if a := atom.Lookup([]byte(tag)); a != 0 {
		return n.DataAtom == a
	}
	return strings.EqualFold(n.Data, tag)
}

// IsTemplate tells if n is a template element. Template subtrees are
// inert content and not part of the rendered document.
func IsTemplate(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Template
}

// NewElement creates a detached element node with the given tag name.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
}

// Attr returns the value of attribute key of element n, or the empty
// string if the attribute is not present.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr tells if attribute key is present on element n. HTML boolean
// attributes frequently carry an empty value, which makes Attr unsuited
// for testing their presence.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets attribute key of element n to val, overwriting a present
// value. For existing keys the attribute position is preserved.
func SetAttr(n *html.Node, key string, val string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// QuerySelector returns the first element in the subtree of n matching a
// CSS selector expression, in document order, or nil for no match.
func QuerySelector(n *html.Node, selector string) (*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		tracer().Errorf("cannot compile selector %q: %v", selector, err)
		return nil, err
	}
	return sel.MatchFirst(n), nil
}

// QuerySelectorAll returns all elements in the subtree of n matching a
// CSS selector expression, in document order.
func QuerySelectorAll(n *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		tracer().Errorf("cannot compile selector %q: %v", selector, err)
		return nil, err
	}
	return sel.MatchAll(n), nil
}
