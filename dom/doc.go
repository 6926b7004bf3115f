/*
Package dom provides helpers for working with parsed HTML document trees.

Overview

Documents are represented as node trees of package golang.org/x/net/html.
That package offers a tolerant parser and a serializer, but deliberately
stays low-level: attribute access is a linear scan over a slice, element
creation requires knowledge of the atom table, and there is no selector
support. Package dom wraps these chores into a small API used throughout
this module.

Nodes returned by functions of this package are always nodes of the
underlying tree; package dom introduces no wrapper type. Clients are free
to mix calls to this package with direct manipulation of html.Nodes.

CSS selector matching is provided by github.com/andybalholm/cascadia.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'blurp.dom'
func tracer() tracing.Trace {
	return tracing.Select("blurp.dom")
}
