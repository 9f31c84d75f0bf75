package metadata

/**
 * @brief An RGBA8 texture. Row 0 is the top of the image. Textures are
 * always job-local; the compositor builds fresh ones for every render.
 */
type Texture struct {
	/** @brief The texture name, used for logging. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The raw texture data, 4 bytes per pixel. */
	Pixels []uint8
}

func NewTexture(name string, width, height uint32, pixels []uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Valid reports whether the pixel buffer matches the declared size.
func (t *Texture) Valid() bool {
	return t != nil && t.Width > 0 && t.Height > 0 && len(t.Pixels) == int(t.Width*t.Height*4)
}

/**
 * @brief A decoded image as produced by the texture loader. Images held by
 * the asset cache are shared and must be copied before being modified.
 */
type ImageResourceData struct {
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel data of the image, RGBA8 straight alpha. */
	Pixels []uint8
}
