package software

import (
	"fmt"

	"github.com/fogleman/fauxgl"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// MaxFramebufferSize bounds each side of the framebuffer.
const MaxFramebufferSize = 8192

// Backend rasterizes on the CPU with fauxgl. Like a GL framebuffer, row 0 of
// ReadPixels is the bottom of the image.
type Backend struct {
	width          uint32
	height         uint32
	context        *fauxgl.Context
	viewProjection math.Mat4
}

func New() *Backend {
	return &Backend{
		viewProjection: math.NewMat4Identity(),
	}
}

func (b *Backend) Initialize(width, height uint32) error {
	if width == 0 || height == 0 || width > MaxFramebufferSize || height > MaxFramebufferSize {
		return fmt.Errorf("invalid framebuffer size %dx%d", width, height)
	}
	b.width = width
	b.height = height

	dc := fauxgl.NewContext(int(width), int(height))
	// Meshes are drawn double sided; hats and overlays are open shells.
	dc.Cull = fauxgl.CullNone
	dc.AlphaBlend = true
	b.context = dc

	core.LogDebug("software backend initialized with a %dx%d framebuffer", width, height)
	return nil
}

func (b *Backend) Shutdown() error {
	b.context = nil
	return nil
}

func (b *Backend) Size() (uint32, uint32) {
	return b.width, b.height
}

func (b *Backend) BeginFrame(clear [4]uint8) {
	if b.context == nil {
		return
	}
	b.context.ClearColorBufferWith(toColor(clear))
	b.context.ClearDepthBuffer()
}

func (b *Backend) SetViewProjection(viewProjection math.Mat4) {
	b.viewProjection = viewProjection
}

func (b *Backend) DrawMesh(mesh *metadata.Mesh, texture *metadata.Texture, model math.Mat4) error {
	if b.context == nil {
		return fmt.Errorf("draw of mesh '%s' before backend initialization", mesh.Name)
	}
	if !texture.Valid() {
		return fmt.Errorf("mesh '%s' has an invalid texture", mesh.Name)
	}

	b.context.Shader = &textureShader{texture: texture}
	mvp := model.Mul(b.viewProjection)

	vertexCount := uint32(mesh.VertexCount())
	var tri fauxgl.Triangle
	for t := 0; t < mesh.TriangleCount(); t++ {
		i0, i1, i2 := mesh.Indices[t*3], mesh.Indices[t*3+1], mesh.Indices[t*3+2]
		if i0 >= vertexCount || i1 >= vertexCount || i2 >= vertexCount {
			continue
		}
		tri.V1 = toVertex(mesh.Vertex(int(i0)), mvp)
		tri.V2 = toVertex(mesh.Vertex(int(i1)), mvp)
		tri.V3 = toVertex(mesh.Vertex(int(i2)), mvp)
		b.context.DrawTriangle(&tri)
	}
	return nil
}

// ReadPixels copies the colour buffer out bottom row first.
func (b *Backend) ReadPixels() []uint8 {
	if b.context == nil {
		return nil
	}
	img := b.context.ColorBuffer
	rowLen := int(b.width) * 4
	out := make([]uint8, rowLen*int(b.height))
	for y := 0; y < int(b.height); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		copy(out[(int(b.height)-1-y)*rowLen:], src)
	}
	return out
}
