/*
Package walk traverses HTML document trees concurrently.

Overview

Walking a document tree is split into two roles: a single traversal
goroutine visits nodes in depth-first pre-order and selects the ones a
client is interested in, while a pool of worker goroutines performs a
client-provided action on every selected node. Traversal order is
deterministic, action execution is not. Workers and traversal are
connected by channels; an overall synchronisation point is provided by a
promise, from which clients receive the selection in document order
together with the last error that occurred.

Selection happens in the traversal goroutine and must therefore be cheap
and read-only. Actions run concurrently and carry the expensive work.
Actions must not modify parts of the tree the traversal may still visit;
mutating state outside of the tree, or recording intended tree changes
for application after the promise resolved, is the safe pattern.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package walk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'blurp.walk'
func tracer() tracing.Trace {
	return tracing.Select("blurp.walk")
}
