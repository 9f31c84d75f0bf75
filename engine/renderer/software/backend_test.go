package software

import (
	"testing"

	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// quad covers the whole viewport at depth z when drawn with an identity
// view-projection.
func quad(z float32) *metadata.Mesh {
	return &metadata.Mesh{
		Name: "quad",
		Positions: []float32{
			-1, -1, z,
			1, -1, z,
			1, 1, z,
			-1, 1, z,
		},
		Texcoords: []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
	}
}

func solid(r, g, b, a uint8) *metadata.Texture {
	return metadata.NewTexture("solid", 1, 1, []uint8{r, g, b, a})
}

func pixel(buf []uint8, width, x, y int) [4]uint8 {
	i := (y*width + x) * 4
	return [4]uint8{buf[i], buf[i+1], buf[i+2], buf[i+3]}
}

func newBackend(t *testing.T, w, h uint32) *Backend {
	t.Helper()
	b := New()
	if err := b.Initialize(w, h); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	b.BeginFrame([4]uint8{0, 0, 0, 0})
	return b
}

func TestDrawFillsViewport(t *testing.T) {
	b := newBackend(t, 8, 8)
	if err := b.DrawMesh(quad(0), solid(255, 0, 0, 255), math.NewMat4Identity()); err != nil {
		t.Fatalf("DrawMesh() error = %v", err)
	}

	px := b.ReadPixels()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := pixel(px, 8, x, y); got != [4]uint8{255, 0, 0, 255} {
				t.Fatalf("pixel (%d,%d) = %v, want opaque red", x, y, got)
			}
		}
	}
}

func TestDepthTest(t *testing.T) {
	b := newBackend(t, 4, 4)
	identity := math.NewMat4Identity()

	_ = b.DrawMesh(quad(0), solid(255, 0, 0, 255), identity)
	_ = b.DrawMesh(quad(0.5), solid(0, 255, 0, 255), identity)
	if got := pixel(b.ReadPixels(), 4, 1, 1); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("farther quad overwrote nearer one: %v", got)
	}

	_ = b.DrawMesh(quad(-0.5), solid(0, 0, 255, 255), identity)
	if got := pixel(b.ReadPixels(), 4, 1, 1); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("nearer quad did not win: %v", got)
	}

	// Coincident geometry drawn later wins, which is how overlays sit on the torso.
	_ = b.DrawMesh(quad(-0.5), solid(9, 9, 9, 255), identity)
	if got := pixel(b.ReadPixels(), 4, 1, 1); got != [4]uint8{9, 9, 9, 255} {
		t.Errorf("coincident later draw lost: %v", got)
	}
}

func TestTransparentFragmentsAreDiscarded(t *testing.T) {
	b := newBackend(t, 4, 4)
	identity := math.NewMat4Identity()

	_ = b.DrawMesh(quad(0), solid(255, 0, 0, 255), identity)
	_ = b.DrawMesh(quad(-0.5), solid(0, 255, 0, 0), identity)
	if got := pixel(b.ReadPixels(), 4, 2, 2); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("transparent draw changed the pixel: %v", got)
	}

	// The discarded fragment left depth alone, so this still passes.
	_ = b.DrawMesh(quad(-0.25), solid(0, 0, 255, 255), identity)
	if got := pixel(b.ReadPixels(), 4, 2, 2); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("draw behind a discarded fragment failed: %v", got)
	}
}

func TestFramebufferIsBottomUp(t *testing.T) {
	b := newBackend(t, 2, 2)

	// Top image row red, bottom image row green.
	tex := metadata.NewTexture("rows", 1, 2, []uint8{
		255, 0, 0, 255,
		0, 255, 0, 255,
	})
	_ = b.DrawMesh(quad(0), tex, math.NewMat4Identity())

	px := b.ReadPixels()
	if got := pixel(px, 2, 0, 0); got != [4]uint8{0, 255, 0, 255} {
		t.Errorf("framebuffer row 0 = %v, want the bottom (green) row", got)
	}
	if got := pixel(px, 2, 0, 1); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("framebuffer row 1 = %v, want the top (red) row", got)
	}
}

func TestDrawRejectsInvalidInput(t *testing.T) {
	b := New()
	if err := b.DrawMesh(quad(0), solid(1, 1, 1, 255), math.NewMat4Identity()); err == nil {
		t.Error("DrawMesh() before Initialize should fail")
	}

	b = newBackend(t, 2, 2)
	bad := metadata.NewTexture("bad", 2, 2, []uint8{1, 2, 3})
	if err := b.DrawMesh(quad(0), bad, math.NewMat4Identity()); err == nil {
		t.Error("DrawMesh() with a short texture should fail")
	}

	// Out-of-range indices are skipped, not fatal.
	mesh := quad(0)
	mesh.Indices = []uint32{0, 1, 9}
	if err := b.DrawMesh(mesh, solid(1, 1, 1, 255), math.NewMat4Identity()); err != nil {
		t.Errorf("DrawMesh() with a bad index error = %v", err)
	}

	sizes := [][2]uint32{{0, 4}, {4, 0}, {MaxFramebufferSize + 1, 4}, {4, MaxFramebufferSize + 1}, {1 << 31, 1 << 31}}
	for _, size := range sizes {
		if err := New().Initialize(size[0], size[1]); err == nil {
			t.Errorf("Initialize(%d, %d) should fail", size[0], size[1])
		}
	}
}
