/*
Package cache provides a small key→value store for derivation results.

Overview

Deriving a preview placeholder is dominated by image decoding, so results
are worth remembering. Documents frequently reference the same image from
more than one node, and batch runs over a corpus of documents revisit the
same images over and over.

Two retention policies are available, selected by a single capacity
parameter at construction time: unbounded retention, which keeps every
distinct key for the lifetime of the store, and bounded retention, which
keeps at most capacity entries and evicts the least-recently-used entry
on overflow. The bounded policy is backed by
github.com/hashicorp/golang-lru/v2.

Stores are safe for concurrent use.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cache

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'blurp.cache'
func tracer() tracing.Trace {
	return tracing.Select("blurp.cache")
}
