package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
)

// FlipVertical returns a copy of an RGBA buffer with its rows reversed.
// Framebuffers store the bottom row first, images the top row first.
func FlipVertical(width, height int, rgba []uint8) []uint8 {
	out := make([]uint8, len(rgba))
	stride := width * 4
	for y := 0; y < height; y++ {
		src := rgba[y*stride : (y+1)*stride]
		dst := out[(height-1-y)*stride : (height-y)*stride]
		copy(dst, src)
	}
	return out
}

// EncodePNG compresses top-down RGBA pixels into an 8-bit RGBA PNG and
// returns it base64 encoded.
func EncodePNG(width, height int, rgba []uint8) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("%w: invalid size %dx%d", core.ErrEncode, width, height)
	}
	if len(rgba) != width*height*4 {
		return "", fmt.Errorf("%w: expected %d bytes for %dx%d, got %d", core.ErrEncode, width*height*4, width, height, len(rgba))
	}

	img := &image.NRGBA{
		Pix:    rgba,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	var buf bytes.Buffer
	encoder := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := encoder.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%w: %s", core.ErrEncode, err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
