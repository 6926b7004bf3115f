/*
Package blurp derives blurred preview placeholders for images in HTML
documents.

Overview

Pages built from AMP-style components declare images as amp-img elements
and video stills as poster attributes of amp-video elements. While the
real image travels over the network, the page may show an instant
low-fidelity preview: a tiny bitmap, heavily downscaled from the
original, wrapped into an inline SVG with a blur filter and injected as a
placeholder child of the image's element.

An Engine performs this derivation document by document. It walks
the document's body, classifies elements as placeholder candidates,
decodes and downscales their source images through an exchangeable codec,
and attaches the resulting data URIs to the document tree. Derivations
for distinct images run concurrently; results are remembered in a cache
shared across documents, so a corpus referencing the same images over and
over decodes each of them once.

A typical batch run looks like this:

    engine := blurp.NewEngine(blurp.DefaultOptions())
    for _, doc := range documents {
        stats, err := engine.Run(doc)
        …
    }

Engine.Run mutates the given document tree and reports counts of
initiated, attached and failed derivations. Failing to derive a preview
for one image is not an error of the run: the candidate is skipped and
the document stays valid without the placeholder.

Caveats

Image references are used verbatim as cache keys; two references spelled
differently will not share a cache entry, even if they point at the same
image bytes. Only JPEG-style references receive placeholders.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package blurp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'blurp.engine'
func tracer() tracing.Trace {
	return tracing.Select("blurp.engine")
}
