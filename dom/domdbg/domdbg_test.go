package domdbg_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/blurp/dom"
	"github.com/npillmayer/blurp/dom/domdbg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const page = `<!DOCTYPE html>
<html><head><title>Demo</title></head><body>
<p>Deep in the forest</p>
<amp-img src="https://cdn.example.org/photos/evening-light.jpg" layout="responsive" width="640" height="480">
  <img placeholder src="data:image/svg+xml;charset=utf-8,%3Csvg%3E" alt="">
</amp-img>
</body></html>`

func TestTreeDiagram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	doc, err := dom.FromHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	diagram := domdbg.Tree(doc).String()
	t.Logf("diagram:\n%s", diagram)
	if !strings.Contains(diagram, "<amp-img") {
		t.Error("expected diagram to contain the amp-img element, doesn't")
	}
	if !strings.Contains(diagram, "(placeholder)") {
		t.Error("expected placeholder child to be marked, isn't")
	}
	if !strings.Contains(diagram, "…") {
		t.Error("expected long attribute values to be shortened, aren't")
	}
	if !strings.Contains(diagram, `"Deep␣in␣the␣forest"`) {
		t.Error("expected text content with visible spaces, didn't find it")
	}
}

func TestToText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	doc, err := dom.FromHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsing failed: %v", err)
	}
	var buf bytes.Buffer
	if err := domdbg.ToText(doc, &buf); err != nil {
		t.Fatalf("writing the diagram failed: %v", err)
	}
	if buf.String() != domdbg.Tree(doc).String() {
		t.Error("expected ToText to write the same diagram as Tree, doesn't")
	}
}
