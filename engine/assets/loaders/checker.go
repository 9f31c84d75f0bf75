package loaders

import "github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"

const checkerSize = 8

// CheckerTexture returns the 8x8 magenta and black placeholder used when an
// item texture is missing.
func CheckerTexture(name string) *metadata.Texture {
	pixels := make([]uint8, checkerSize*checkerSize*4)
	for y := 0; y < checkerSize; y++ {
		for x := 0; x < checkerSize; x++ {
			i := (y*checkerSize + x) * 4
			if (x/4+y/4)%2 == 0 {
				pixels[i] = 0xFF
				pixels[i+2] = 0xFF
			}
			pixels[i+3] = 0xFF
		}
	}
	return metadata.NewTexture(name, checkerSize, checkerSize, pixels)
}
