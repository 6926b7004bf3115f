/*
Package domdbg implements helpers to debug a document tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/npillmayer/blurp/dom"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Tree builds a textual diagram of a document (sub-)tree. Elements show
// their tag and attributes, placeholder children are marked, and text
// content is shortened. Whitespace-only text nodes are omitted.
func Tree(doc *html.Node) tp.Tree {
	printer := tp.New()
	if doc != nil {
		nodes(doc, printer)
	}
	return printer
}

// ToText writes the diagram for a document (sub-)tree to w.
func ToText(doc *html.Node, w io.Writer) error {
	_, err := io.WriteString(w, Tree(doc).String())
	return err
}

// Dump is a helper for testing. Given a document node and a testing.T,
// it will log the tree diagram through the test's log output.
func Dump(doc *html.Node, t *testing.T) {
	t.Logf("DOM tree:\n%s", Tree(doc).String())
}

func nodes(n *html.Node, branch tp.Tree) {
	label, ok := nodeLabel(n)
	if !ok {
		return
	}
	if n.FirstChild == nil {
		branch.AddNode(label)
		return
	}
	sub := branch.AddBranch(label)
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		nodes(ch, sub)
	}
}

func nodeLabel(n *html.Node) (string, bool) {
	switch n.Type {
	case html.DocumentNode:
		return "#document", true
	case html.ElementNode:
		var b strings.Builder
		b.WriteString("<")
		b.WriteString(n.Data)
		for _, a := range n.Attr {
			fmt.Fprintf(&b, " %s=%q", a.Key, shortText(a.Val))
		}
		b.WriteString(">")
		if dom.HasAttr(n, "placeholder") {
			b.WriteString(" (placeholder)")
		}
		return b.String(), true
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return "", false // suppress inter-element whitespace
		}
		return "\"" + visibleSpace(shortText(n.Data)) + "\"", true
	case html.CommentNode:
		return "#comment", true
	case html.DoctypeNode:
		return "#doctype " + n.Data, true
	}
	return "", false
}

// shortText truncates long strings, keeping diagrams narrow even with
// inline data URIs in attribute values.
func shortText(s string) string {
	if len(s) > 24 {
		return s[:24] + "…"
	}
	return s
}

func visibleSpace(s string) string {
	s = strings.Replace(s, "\n", `\n`, -1)
	s = strings.Replace(s, "\t", `\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}
