package codec

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// Resolver maps an image reference, as found in a document, to a
// byte-accessible location the codec understands.
type Resolver func(ref string) string

// Identity returns a resolver handing references through unchanged.
func Identity() Resolver {
	return func(ref string) string { return ref }
}

// Base returns a resolver prefixing every reference with a fixed base
// path. Documents commonly reference images relative to an asset root;
// the prefix is prepended verbatim, without path cleaning.
func Base(prefix string) Resolver {
	return func(ref string) string { return prefix + ref }
}

// Codec is the decode/downscale capability consumed by the placeholder
// pipeline. Implementations must be safe for concurrent use.
type Codec interface {
	// Decode reads the image at the resolved location. The returned
	// image carries its pixel dimensions via Bounds().
	Decode(location string) (image.Image, error)
	// Downscale resizes img to width × height pixels and returns the
	// result as a self-contained data URI.
	Downscale(img image.Image, width int, height int) (string, error)
}

// Default returns the built-in codec. It reads images from the local
// filesystem and emits downscaled bitmaps as PNG data URIs.
func Default() Codec {
	return stdCodec{}
}

type stdCodec struct{}

func (stdCodec) Decode(location string) (image.Image, error) {
	img, err := imaging.Open(location, imaging.AutoOrientation(true))
	if err != nil {
		tracer().Debugf("cannot decode image %q: %v", location, err)
		return nil, fmt.Errorf("cannot decode image %q: %w", location, err)
	}
	return img, nil
}

func (stdCodec) Downscale(img image.Image, width int, height int) (string, error) {
	small := imaging.Resize(img, width, height, imaging.Lanczos)
	var buf bytes.Buffer
	if err := png.Encode(&buf, small); err != nil {
		return "", fmt.Errorf("cannot encode preview bitmap: %w", err)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	tracer().Debugf("downscaled image to %dx%d, %d bytes inline", width, height, len(uri))
	return uri, nil
}
