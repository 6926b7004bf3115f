package codec_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/blurp/codec"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestImage creates a PNG test image of the given size on disk.
func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ { // paint a gradient so resizing has work to do
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestDecode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.codec")
	defer teardown()
	//
	path := writeTestImage(t, 120, 60)
	img, err := codec.Default().Decode(path)
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, 120, bounds.Dx(), "decoded width")
	assert.Equal(t, 60, bounds.Dy(), "decoded height")
}

func TestDecodeMissingFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.codec")
	defer teardown()
	//
	_, err := codec.Default().Decode(filepath.Join(t.TempDir(), "no-such-image.jpg"))
	if err == nil {
		t.Error("expected decoding a missing file to fail, didn't")
	}
}

func TestDownscale(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.codec")
	defer teardown()
	//
	c := codec.Default()
	img, err := c.Decode(writeTestImage(t, 120, 60))
	require.NoError(t, err)
	uri, err := c.Downscale(img, 11, 5)
	require.NoError(t, err)
	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix), "data URI prefix")
	raw, err := base64.StdEncoding.DecodeString(uri[len(prefix):])
	require.NoError(t, err, "payload must be valid base64")
	small, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err, "payload must be a valid PNG")
	assert.Equal(t, 11, small.Bounds().Dx(), "downscaled width")
	assert.Equal(t, 5, small.Bounds().Dy(), "downscaled height")
}

func TestResolvers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "blurp.codec")
	defer teardown()
	//
	base := codec.Base("assets/")
	if loc := base("img/a.jpg"); loc != "assets/img/a.jpg" {
		t.Errorf("expected base resolver to prepend prefix, got %q", loc)
	}
	id := codec.Identity()
	if loc := id("img/a.jpg"); loc != "img/a.jpg" {
		t.Errorf("expected identity resolver to pass through, got %q", loc)
	}
}
