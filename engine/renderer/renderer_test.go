package renderer

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"testing"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

type recordingBackend struct {
	width, height uint32
	drawn         []string
	frames        int
	failOn        string
}

func (b *recordingBackend) Initialize(width, height uint32) error {
	b.width, b.height = width, height
	return nil
}
func (b *recordingBackend) Shutdown() error                { return nil }
func (b *recordingBackend) Size() (uint32, uint32)         { return b.width, b.height }
func (b *recordingBackend) BeginFrame([4]uint8)            { b.frames++ }
func (b *recordingBackend) SetViewProjection(_ math.Mat4) {}
func (b *recordingBackend) DrawMesh(mesh *metadata.Mesh, _ *metadata.Texture, _ math.Mat4) error {
	if mesh.Name == b.failOn {
		return errors.New("boom")
	}
	b.drawn = append(b.drawn, mesh.Name)
	return nil
}

// ReadPixels marks the bottom row so the flip can be observed.
func (b *recordingBackend) ReadPixels() []uint8 {
	px := make([]uint8, b.width*b.height*4)
	for x := uint32(0); x < b.width; x++ {
		px[x*4] = 200
		px[x*4+3] = 255
	}
	return px
}

func TestDrawSceneOrderAndFlip(t *testing.T) {
	backend := &recordingBackend{failOn: "broken"}
	r, err := NewWithBackend(backend, 2, 3)
	if err != nil {
		t.Fatalf("NewWithBackend() error = %v", err)
	}

	scene := &metadata.CompositedScene{}
	for _, name := range []string{"hat", "torso", "broken", "head"} {
		scene.Add(name, &metadata.Mesh{Name: name}, nil, nil)
	}
	scene.Add("nomesh", nil, nil, nil)

	frame := r.DrawScene(scene)

	want := []string{"hat", "torso", "head"}
	if len(backend.drawn) != len(want) {
		t.Fatalf("drawn = %v, want %v", backend.drawn, want)
	}
	for i := range want {
		if backend.drawn[i] != want[i] {
			t.Errorf("draw %d = %s, want %s", i, backend.drawn[i], want[i])
		}
	}

	// The framebuffer's bottom row ends up as the image's last row.
	lastRow := frame[2*2*4:]
	if lastRow[0] != 200 || frame[0] != 0 {
		t.Errorf("frame not flipped: first byte %d, last row first byte %d", frame[0], lastRow[0])
	}
}

func TestFlipVertical(t *testing.T) {
	in := []uint8{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	got := FlipVertical(1, 3, in)
	want := []uint8{
		3, 3, 3, 3,
		2, 2, 2, 2,
		1, 1, 1, 1,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("FlipVertical() = %v, want %v", got, want)
	}
	if in[0] != 1 {
		t.Error("FlipVertical() modified its input")
	}
}

func TestEncodePNG(t *testing.T) {
	rgba := make([]uint8, 4*4*4)
	rgba[0], rgba[1], rgba[2], rgba[3] = 10, 20, 30, 128

	out, err := EncodePNG(4, 4, rgba)
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(out)
	if err != nil {
		t.Fatalf("output is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("decoded size = %v, want 4x4", b)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if cfg.Width != 4 || cfg.Height != 4 {
		t.Errorf("config size = %dx%d, want 4x4", cfg.Width, cfg.Height)
	}
}

func TestEncodePNGRejectsBadBuffers(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		size          int
	}{
		{"short buffer", 4, 4, 10},
		{"zero width", 0, 4, 0},
		{"negative height", 4, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := EncodePNG(tt.width, tt.height, make([]uint8, tt.size))
			if !errors.Is(err, core.ErrEncode) {
				t.Errorf("error = %v, want ErrEncode", err)
			}
			if out != "" {
				t.Errorf("output = %q, want empty", out)
			}
		})
	}
}
