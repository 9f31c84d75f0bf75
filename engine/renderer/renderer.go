package renderer

import (
	"fmt"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/components"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/software"
)

// MaxTargetSize bounds each side of the render target.
const MaxTargetSize = software.MaxFramebufferSize

// Avatars are rendered onto a fully transparent background.
var clearColor = [4]uint8{0, 0, 0, 0}

// Renderer drives a backend with the fixed avatar camera. It is owned by the
// render thread and is not safe for concurrent use.
type Renderer struct {
	backend RendererBackend
	camera  *components.Camera
}

func New(rendererType RendererType, width, height uint32) (*Renderer, error) {
	var backend RendererBackend
	switch rendererType {
	case Software:
		backend = software.New()
	default:
		return nil, fmt.Errorf("unsupported renderer type %d", rendererType)
	}
	return NewWithBackend(backend, width, height)
}

func NewWithBackend(backend RendererBackend, width, height uint32) (*Renderer, error) {
	if err := backend.Initialize(width, height); err != nil {
		return nil, err
	}
	return &Renderer{
		backend: backend,
		camera:  components.NewAvatarCamera(),
	}, nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) Size() (uint32, uint32) {
	return r.backend.Size()
}

// DrawScene draws every call of the scene in order and returns the frame as
// top-down RGBA. A draw that fails is logged and skipped.
func (r *Renderer) DrawScene(scene *metadata.CompositedScene) []uint8 {
	width, height := r.backend.Size()

	r.backend.BeginFrame(clearColor)
	r.backend.SetViewProjection(r.camera.GetViewProjection(width, height))

	for _, d := range scene.Draws {
		if d.Mesh == nil {
			continue
		}
		if err := r.backend.DrawMesh(d.Mesh, d.Texture, d.Transform.GetLocal()); err != nil {
			core.LogError("failed to draw '%s': %s", d.Name, err)
		}
	}

	return FlipVertical(int(width), int(height), r.backend.ReadPixels())
}
