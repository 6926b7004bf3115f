package dom_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/blurp/dom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

const page = `<html><head></head><body>
  <amp-img src="hero.jpg" layout="responsive"></amp-img>
  <template><amp-img src="inert.jpg"></amp-img></template>
  <amp-video poster="still.jpg"></amp-video>
</body></html>`

func parse(t *testing.T) *html.Node {
	doc, err := dom.FromHTML(strings.NewReader(page))
	if err != nil {
		t.Fatalf("cannot parse test document: %v", err)
	}
	return doc
}

func TestBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	doc := parse(t)
	body := dom.Body(doc)
	if body == nil {
		t.Fatal("expected document to have a body, hasn't")
	}
	if dom.ElementName(body) != "body" {
		t.Errorf("expected element name to be body, is %q", dom.ElementName(body))
	}
}

func TestIsElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	doc := parse(t)
	img, err := dom.QuerySelector(doc, "amp-img")
	if err != nil || img == nil {
		t.Fatalf("expected to find an amp-img element, didn't (err=%v)", err)
	}
	if !dom.IsElement(img, "amp-img") {
		t.Error("expected node to be identified as amp-img, isn't")
	}
	if dom.IsElement(img, "amp-video") {
		t.Error("expected node not to be identified as amp-video, is")
	}
}

func TestTemplateDetection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	doc := parse(t)
	tmpl, err := dom.QuerySelector(doc, "template")
	if err != nil || tmpl == nil {
		t.Fatalf("expected to find a template element, didn't (err=%v)", err)
	}
	if !dom.IsTemplate(tmpl) {
		t.Error("expected template element to be detected, isn't")
	}
	if dom.IsTemplate(dom.Body(doc)) {
		t.Error("expected body not to count as template, does")
	}
}

func TestAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	img := dom.NewElement("img")
	if dom.HasAttr(img, "placeholder") {
		t.Error("expected fresh element to have no attributes, has")
	}
	dom.SetAttr(img, "placeholder", "")
	dom.SetAttr(img, "src", "a.jpg")
	if !dom.HasAttr(img, "placeholder") {
		t.Error("expected placeholder attribute to be present, isn't")
	}
	if dom.Attr(img, "src") != "a.jpg" {
		t.Errorf("expected src to be a.jpg, is %q", dom.Attr(img, "src"))
	}
	dom.SetAttr(img, "src", "b.jpg")
	if dom.Attr(img, "src") != "b.jpg" {
		t.Errorf("expected src to be overwritten with b.jpg, is %q", dom.Attr(img, "src"))
	}
	if len(img.Attr) != 2 {
		t.Errorf("expected element to carry 2 attributes, has %d", len(img.Attr))
	}
}

func TestQuerySelectorAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	doc := parse(t)
	imgs, err := dom.QuerySelectorAll(doc, "amp-img")
	if err != nil {
		t.Fatalf("selector failed: %v", err)
	}
	if len(imgs) != 2 {
		t.Errorf("expected 2 amp-img elements, have %d", len(imgs))
	}
	if _, err = dom.QuerySelectorAll(doc, "["); err == nil {
		t.Error("expected invalid selector to be flagged, isn't")
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.dom")
	defer teardown()
	//
	doc := parse(t)
	var out strings.Builder
	if err := dom.ToHTML(&out, doc); err != nil {
		t.Fatalf("cannot serialize document: %v", err)
	}
	if !strings.Contains(out.String(), `<amp-video poster="still.jpg">`) {
		t.Error("expected serialization to retain amp-video element, doesn't")
	}
}
