package renderer

import (
	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// RendererBackend is the exclusive graphics context. Only the render thread
// may call into it.
type RendererBackend interface {
	Initialize(width, height uint32) error
	Shutdown() error
	Size() (uint32, uint32)
	// BeginFrame clears colour and depth.
	BeginFrame(clear [4]uint8)
	SetViewProjection(viewProjection math.Mat4)
	DrawMesh(mesh *metadata.Mesh, texture *metadata.Texture, model math.Mat4) error
	// ReadPixels returns a copy of the colour buffer, bottom row first.
	ReadPixels() []uint8
}

type RendererType uint8

const (
	Software RendererType = iota
)
