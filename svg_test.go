package blurp

import (
	"strings"
	"testing"

	"github.com/npillmayer/blurp/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func TestCollapseSpace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.engine")
	defer teardown()
	//
	in := "<a>\n\t   <b   c=\"1 2\"> </b>\t</a>"
	out := collapseSpace(in)
	if out != `<a> <b c="1 2"> </b> </a>` {
		t.Errorf("expected whitespace runs to collapse to single spaces, got %q", out)
	}
}

func TestEscapeFragment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.engine")
	defer teardown()
	//
	in := `<image href="url(#b):100%">`
	out := escapeFragment(in)
	if out != `%3Cimage href='url(%23b)%3A100%25'%3E` {
		t.Errorf("unexpected escaping result %q", out)
	}
}

func TestEncodeSVGPrefix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.engine")
	defer teardown()
	//
	uri := encodeSVG("data:image/png;base64,QUJD", 11, 5)
	if !strings.HasPrefix(uri, "data:image/svg+xml;charset=utf-8,") {
		t.Errorf("expected the fixed data URI prefix, got %q", uri[:40])
	}
	fragment := uri[len(svgPrefix):]
	if strings.ContainsAny(fragment, "<>\"#:") {
		t.Errorf("expected fragment to be free of unescaped table characters, isn't: %q", fragment)
	}
	if !strings.Contains(fragment, "viewBox='0 0 11 5'") {
		t.Error("expected the viewport to carry the planned dimensions, doesn't")
	}
}

// unescapeFragment reverses the fixed escape table, except for the
// double-quote substitution, which is lossy.
func unescapeFragment(s string) string {
	return strings.NewReplacer("%23", "#", "%3A", ":", "%3C", "<", "%3E", ">",
		"%25", "%").Replace(s)
}

func TestEncodeSVGRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.engine")
	defer teardown()
	//
	const bitmap = "data:image/png;base64,QUJDREVGRw=="
	uri := encodeSVG(bitmap, 11, 5)
	markup := unescapeFragment(uri[len(svgPrefix):])
	doc, err := dom.FromHTML(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("decoded fragment does not parse: %v", err)
	}
	var blurs, images []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "feGaussianBlur":
				blurs = append(blurs, n)
			case "image":
				images = append(images, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	if len(blurs) != 1 {
		t.Fatalf("expected exactly one blur filter primitive, have %d", len(blurs))
	}
	if dom.Attr(blurs[0], "stdDeviation") != ".5" {
		t.Errorf("expected blur standard deviation .5, is %q", dom.Attr(blurs[0], "stdDeviation"))
	}
	if len(images) != 1 {
		t.Fatalf("expected exactly one embedded image, have %d", len(images))
	}
	if href := dom.Attr(images[0], "href"); href != bitmap {
		t.Errorf("expected embedded bitmap to survive the round trip, got %q", href)
	}
}
