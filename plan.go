package blurp

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023 Norbert Pillmayer <norbert@pillmayer.com>

*/

import "math"

// planDimensions computes the pixel size of a preview bitmap for an
// original image of ow × oh pixels. The preview preserves the original's
// aspect ratio while its total pixel count approximates the given budget,
// keeping the inline encoding small and cheap to decode regardless of
// the input resolution.
//
// With r = ow/oh, the height solving h·r·h = budget is the square root
// of budget/r; width follows as budget/h. Both are rounded to the
// nearest integer.
// Inputs are assumed positive; the codec never reports other dimensions
// for an image it decoded.
func planDimensions(ow, oh int, budget int) (int, int) {
	ratio := float64(ow) / float64(oh)
	height := math.Sqrt(float64(budget) / ratio)
	width := float64(budget) / height
	return int(math.Round(width)), int(math.Round(height))
}
