package metadata

import (
	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
)

/**
 * @brief A triangulated mesh as it comes out of the OBJ loader. Vertex
 * attributes are flat float slices; Indices references vertices in triples.
 * Meshes held by the StaticMeshSet are shared by every job and must never be
 * written after loading.
 */
type Mesh struct {
	/** @brief The name of the mesh, used for logging. */
	Name string
	/** @brief Vertex positions, three floats per vertex. */
	Positions []float32
	/** @brief Texture coordinates, two floats per vertex. May be shorter than the vertex count. */
	Texcoords []float32
	/** @brief Vertex normals, three floats per vertex. May be shorter than the vertex count. */
	Normals []float32
	/** @brief Triangle indices. */
	Indices []uint32
}

// VertexCount returns the number of vertices described by Positions.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Vertex assembles vertex i. A missing texcoord becomes (0, 0) and a
// missing normal becomes +Y.
func (m *Mesh) Vertex(i int) math.Vertex3D {
	v := math.Vertex3D{
		Position: math.NewVec3(m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]),
		Normal:   math.NewVec3Up(),
		Texcoord: math.NewVec2Zero(),
	}
	if i*2+1 < len(m.Texcoords) {
		v.Texcoord = math.NewVec2(m.Texcoords[i*2], m.Texcoords[i*2+1])
	}
	if i*3+2 < len(m.Normals) {
		v.Normal = math.NewVec3(m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2])
	}
	return v
}

// Extents returns the axis-aligned bounds of the mesh.
func (m *Mesh) Extents() math.Extents3D {
	if m.VertexCount() == 0 {
		return math.Extents3D{}
	}
	first := m.Vertex(0).Position
	ext := math.Extents3D{Min: first, Max: first}
	for i := 1; i < m.VertexCount(); i++ {
		p := math.NewVec3(m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2])
		ext.Min = math.NewVec3(min(ext.Min.X, p.X), min(ext.Min.Y, p.Y), min(ext.Min.Z, p.Z))
		ext.Max = math.NewVec3(max(ext.Max.X, p.X), max(ext.Max.Y, p.Y), max(ext.Max.Z, p.Z))
	}
	return ext
}

/**
 * @brief The body-part meshes loaded once at startup. Any entry may be nil
 * when its source failed to parse; the compositor simply skips it.
 */
type StaticMeshSet struct {
	Head     *Mesh
	Torso    *Mesh
	LeftArm  *Mesh
	RightArm *Mesh
	LeftLeg  *Mesh
	RightLeg *Mesh
	/** @brief The overlay shape used by t-shirt items. */
	TShirt *Mesh
}
