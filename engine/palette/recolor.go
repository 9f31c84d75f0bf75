package palette

import (
	"fmt"

	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// RecolorTransparentPixels flattens straight-alpha RGBA pixels onto an
// opaque background. Opaque pixels are kept, fully transparent pixels become
// the background, and everything in between is blended with truncating
// integer division. The input is not modified.
func RecolorTransparentPixels(pixels []uint8, bg metadata.RGB) []uint8 {
	out := make([]uint8, len(pixels))
	copy(out, pixels)

	bgR := uint32(bg>>16) & 0xFF
	bgG := uint32(bg>>8) & 0xFF
	bgB := uint32(bg) & 0xFF

	for i := 0; i+3 < len(out); i += 4 {
		alpha := uint32(out[i+3])

		if alpha == 255 {
			continue
		}

		if alpha == 0 {
			out[i] = uint8(bgR)
			out[i+1] = uint8(bgG)
			out[i+2] = uint8(bgB)
			out[i+3] = 255
			continue
		}

		inv := 255 - alpha
		out[i] = uint8((uint32(out[i])*alpha + bgR*inv) / 255)
		out[i+1] = uint8((uint32(out[i+1])*alpha + bgG*inv) / 255)
		out[i+2] = uint8((uint32(out[i+2])*alpha + bgB*inv) / 255)
		out[i+3] = 255
	}

	return out
}

// RecolorImage composites a decoded image against bg into a new texture.
func RecolorImage(name string, img *metadata.ImageResourceData, bg metadata.RGB) *metadata.Texture {
	return metadata.NewTexture(name, img.Width, img.Height, RecolorTransparentPixels(img.Pixels, bg))
}

// SolidTexture is the 1x1 texture used for body parts with nothing on them.
func SolidTexture(c metadata.RGB) *metadata.Texture {
	px := c.Bytes()
	return metadata.NewTexture(fmt.Sprintf("solid_%06X", uint32(c)), 1, 1, px[:])
}
