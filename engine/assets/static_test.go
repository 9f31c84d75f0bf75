package assets

import (
	"testing"

	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

func TestLoadStaticMeshes(t *testing.T) {
	set := LoadStaticMeshes()
	parts := map[string]*metadata.Mesh{
		"head":     set.Head,
		"torso":    set.Torso,
		"leftarm":  set.LeftArm,
		"rightarm": set.RightArm,
		"leftleg":  set.LeftLeg,
		"rightleg": set.RightLeg,
		"tshirt":   set.TShirt,
	}
	for name, m := range parts {
		if m == nil {
			t.Errorf("%s is nil", name)
			continue
		}
		if m.TriangleCount() == 0 {
			t.Errorf("%s has no triangles", name)
		}
	}
	if got := set.Torso.TriangleCount(); got != 12 {
		t.Errorf("torso triangles = %d, want 12", got)
	}
	if got := set.Torso.VertexCount(); got != 24 {
		t.Errorf("torso vertices = %d, want 24", got)
	}
	ext := set.Head.Extents()
	if ext.Min.Y < set.Torso.Extents().Max.Y {
		t.Errorf("head (min y %v) overlaps the torso", ext.Min.Y)
	}
}

func TestDefaultFace(t *testing.T) {
	face, err := DefaultFace()
	if err != nil {
		t.Fatalf("DefaultFace: %v", err)
	}
	if face.Width != 64 || face.Height != 64 {
		t.Errorf("face is %dx%d, want 64x64", face.Width, face.Height)
	}
	// The corner is transparent so the head colour shows through.
	if face.Pixels[3] != 0 {
		t.Errorf("corner alpha = %d, want 0", face.Pixels[3])
	}
	again, _ := DefaultFace()
	if again != face {
		t.Error("DefaultFace decoded twice")
	}
}
