/*
Package codec decodes images and downscales them to inline-embeddable size.

Overview

The preview placeholder pipeline treats image decoding and resizing as an
external capability: it hands a resolved image location to a codec and
receives a tiny bitmap, encoded as a data URI, in return. This package
defines the codec contract and provides a default implementation backed
by github.com/disintegration/imaging, which in turn builds on the image
formats registered with the standard library (JPEG, PNG, GIF).

Resolving a reference string found in a document to a byte-accessible
location is the job of a Resolver. A base-path resolver prepends a fixed
prefix, for documents referencing images relative to an asset root.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package codec

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'blurp.codec'
func tracer() tracing.Trace {
	return tracing.Select("blurp.codec")
}
