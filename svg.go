package blurp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
	"unicode"
)

// svgPrefix starts every encoded placeholder. Consumers rendering the
// src attribute rely on this exact prefix.
const svgPrefix = "data:image/svg+xml;charset=utf-8,"

// svgTemplate wraps an inline bitmap into a blur filter. The filter
// combines a Gaussian blur with an alpha discretization step, which
// keeps the blur from fading out the image borders.
const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg"
                      xmlns:xlink="http://www.w3.org/1999/xlink"
                      viewBox="0 0 %d %d">
                  <filter id="b" color-interpolation-filters="sRGB">
                    <feGaussianBlur stdDeviation=".5"></feGaussianBlur>
                    <feComponentTransfer>
                      <feFuncA type="discrete" tableValues="1 1"></feFuncA>
                    </feComponentTransfer>
                  </filter>
                  <image filter="url(#b)" x="0" y="0"
                    height="100%%" width="100%%"
                    xlink:href="%s">
                  </image>
                </svg>`

// encodeSVG wraps a bitmap data URI into the blurred vector markup,
// sized to a width × height viewport, and escapes the result for use as
// an attribute value. The returned string is a complete data URI.
func encodeSVG(bitmapURI string, width, height int) string {
	svg := fmt.Sprintf(svgTemplate, width, height, bitmapURI)
	return svgPrefix + escapeFragment(collapseSpace(svg))
}

// collapseSpace replaces every run of whitespace by a single space,
// minimizing the encoded length of generated markup.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pending = true
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	if pending {
		b.WriteByte(' ')
	}
	return b.String()
}

// escapeFragment escapes a markup fragment for embedding inside a
// charset=utf-8 data URI used as an attribute value. The table is fixed:
// the characters # % : < and > are percent-escaped, double quotes are
// replaced by single quotes. Characters outside the table pass through
// unchanged, which is safe only because input is restricted to markup
// generated by this package.
func escapeFragment(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		switch r {
		case '#':
			b.WriteString("%23")
		case '%':
			b.WriteString("%25")
		case ':':
			b.WriteString("%3A")
		case '<':
			b.WriteString("%3C")
		case '>':
			b.WriteString("%3E")
		case '"':
			b.WriteByte('\'')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
