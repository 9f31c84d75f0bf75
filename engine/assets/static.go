package assets

import (
	"bytes"
	"embed"
	"path"
	"sync"

	"github.com/stuxvii/lsd-thumbnail-server/engine/assets/loaders"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

//go:embed meshes/*.obj meshes/face.png
var staticFS embed.FS

const (
	headMesh     = "default.obj"
	torsoMesh    = "torso.obj"
	leftArmMesh  = "leftarm.obj"
	rightArmMesh = "rightarm.obj"
	leftLegMesh  = "leftleg.obj"
	rightLegMesh = "rightleg.obj"
	tshirtMesh   = "tshirt.obj"
	defaultFace  = "face.png"
)

// LoadStaticMeshes parses the embedded body-part meshes. A part that fails
// to parse is left nil.
func LoadStaticMeshes() *metadata.StaticMeshSet {
	return &metadata.StaticMeshSet{
		Head:     loadStaticMesh(headMesh),
		Torso:    loadStaticMesh(torsoMesh),
		LeftArm:  loadStaticMesh(leftArmMesh),
		RightArm: loadStaticMesh(rightArmMesh),
		LeftLeg:  loadStaticMesh(leftLegMesh),
		RightLeg: loadStaticMesh(rightLegMesh),
		TShirt:   loadStaticMesh(tshirtMesh),
	}
}

func loadStaticMesh(name string) *metadata.Mesh {
	data, err := staticFS.ReadFile(path.Join("meshes", name))
	if err != nil {
		core.LogError("static mesh %s: %v", name, err)
		return nil
	}
	mesh, err := loaders.ParseOBJ(name, bytes.NewReader(data))
	if err != nil {
		core.LogError("static mesh %s: %v", name, err)
		return nil
	}
	core.LogDebug("static mesh %s: %d vertices, %d triangles", name, mesh.VertexCount(), mesh.TriangleCount())
	return mesh
}

var defaultFaceOnce = sync.OnceValues(func() (*metadata.ImageResourceData, error) {
	data, err := staticFS.ReadFile(path.Join("meshes", defaultFace))
	if err != nil {
		return nil, err
	}
	return loaders.DecodeImage(bytes.NewReader(data))
})

// DefaultFace returns the decoded face drawn on every head. The returned
// image is shared and must not be modified.
func DefaultFace() (*metadata.ImageResourceData, error) {
	return defaultFaceOnce()
}
