package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJSplitsQuads(t *testing.T) {
	mesh, err := ParseOBJ("quad", strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Name != "quad" {
		t.Errorf("Name = %q, want quad", mesh.Name)
	}
	if got := mesh.TriangleCount(); got != 2 {
		t.Fatalf("TriangleCount = %d, want 2", got)
	}
	if got := mesh.VertexCount(); got != 4 {
		t.Errorf("VertexCount = %d, want 4 (shared corners)", got)
	}
	want := []uint32{0, 1, 2, 2, 3, 0}
	for i, idx := range want {
		if mesh.Indices[i] != idx {
			t.Fatalf("Indices = %v, want %v", mesh.Indices, want)
		}
	}
	v := mesh.Vertex(2)
	if v.Texcoord.X != 1 || v.Texcoord.Y != 1 || v.Normal.Z != 1 {
		t.Errorf("Vertex(2) = %+v", v)
	}
}

func TestParseOBJMissingAttributes(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	mesh, err := ParseOBJ("bare", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(mesh.Texcoords) != 0 || len(mesh.Normals) != 0 {
		t.Errorf("expected no texcoords or normals, got %d/%d", len(mesh.Texcoords), len(mesh.Normals))
	}
	v := mesh.Vertex(1)
	if v.Texcoord.X != 0 || v.Texcoord.Y != 0 {
		t.Errorf("missing texcoord = %+v, want (0,0)", v.Texcoord)
	}
	if v.Normal.Y != 1 {
		t.Errorf("missing normal = %+v, want +Y", v.Normal)
	}
}

func TestParseOBJNormalsWithoutTexcoords(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 -1\nf 1//1 2//1 3//1\n"
	mesh, err := ParseOBJ("n", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(mesh.Normals) != 9 {
		t.Fatalf("len(Normals) = %d, want 9", len(mesh.Normals))
	}
	if mesh.Vertex(0).Normal.Z != -1 {
		t.Errorf("normal = %+v, want -Z", mesh.Vertex(0).Normal)
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	mesh, err := ParseOBJ("neg", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if got := mesh.Vertex(1).Position.X; got != 1 {
		t.Errorf("Vertex(1).X = %v, want 1", got)
	}
}

func TestParseOBJFirstObjectWithFaces(t *testing.T) {
	src := "o empty\nv 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\no first\nf 1 2 3\no second\nf 2 4 3\nf 1 2 4\n"
	mesh, err := ParseOBJ("multi", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Name != "first" {
		t.Errorf("Name = %q, want first", mesh.Name)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
}

func TestParseOBJMergesSmoothingGroups(t *testing.T) {
	src := "o body\nv 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\ns 1\nf 1 2 3\ns 2\nf 2 4 3\no other\nf 1 2 4\n"
	mesh, err := ParseOBJ("smooth", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if mesh.Name != "body" {
		t.Errorf("Name = %q, want body", mesh.Name)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"no faces", "v 0 0 0\nv 1 0 0\n", core.ErrEmptyMesh},
		{"empty", "", core.ErrEmptyMesh},
		{"bad float", "v 0 x 0\n", core.ErrAssetDecode},
		{"index out of range", "v 0 0 0\nf 1 2 3\n", core.ErrAssetDecode},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n", core.ErrAssetDecode},
		{"degenerate face", "v 0 0 0\nv 1 0 0\nf 1 2\n", core.ErrAssetDecode},
		{"pentagon", "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 0 2 0\nf 1 2 3 4 5\n", core.ErrAssetDecode},
		{"normal out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//5\n", core.ErrAssetDecode},
		{"mixed attributes", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/1 2/1 3\n", core.ErrAssetDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(tt.name, strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModelLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	ml := &ModelLoader{}
	res, err := ml.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Type != metadata.ResourceTypeMesh || res.FullPath != path {
		t.Errorf("resource = %+v", res)
	}
	if _, ok := res.Data.(*metadata.Mesh); !ok {
		t.Fatalf("Data is %T, want *metadata.Mesh", res.Data)
	}
	if err := ml.Unload(res); err != nil || res.Data != nil {
		t.Errorf("Unload left data behind: %v", err)
	}

	if _, err := ml.Load(filepath.Join(dir, "missing.obj")); !errors.Is(err, core.ErrAssetNotFound) {
		t.Errorf("missing file err = %v, want ErrAssetNotFound", err)
	}
}
