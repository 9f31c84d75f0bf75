package loaders

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/udhos/gwob"

	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// ModelLoader reads Wavefront OBJ files into triangulated, single-indexed
// meshes. Only the first object that carries faces is returned. Faces must
// be triangles or quads.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	mesh, err := ParseOBJ(path, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &metadata.Resource{
		Name:     mesh.Name,
		FullPath: path,
		Type:     metadata.ResourceTypeMesh,
		DataSize: uint64(4 * (len(mesh.Positions) + len(mesh.Texcoords) + len(mesh.Normals) + len(mesh.Indices))),
		Data:     mesh,
	}, nil
}

func (ml *ModelLoader) Unload(resource *metadata.Resource) error {
	if resource == nil {
		return nil
	}
	resource.Data = nil
	resource.DataSize = 0
	return nil
}

// ParseOBJ parses OBJ text with gwob. Quads are split in two and every
// distinct position/texcoord/normal triple becomes one output vertex. Any
// line gwob rejects fails the whole mesh.
func ParseOBJ(name string, r io.Reader) (mesh *metadata.Mesh, err error) {
	var problems []string
	options := &gwob.ObjParserOptions{
		Logger: func(msg string) {
			msg = strings.TrimSpace(msg)
			// readLines and scanLines report rejected vertex and face lines.
			if strings.HasPrefix(msg, "readLines: ") || strings.HasPrefix(msg, "scanLines: ") {
				problems = append(problems, msg)
				return
			}
			core.LogDebug("%s: %s", name, msg)
		},
	}

	// gwob indexes normals without a bounds check.
	defer func() {
		if p := recover(); p != nil {
			mesh, err = nil, fmt.Errorf("%w: %v", core.ErrAssetDecode, p)
		}
	}()

	obj, err := gwob.NewObjFromReader(name, r, options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrAssetDecode, err)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrAssetDecode, problems[0])
	}
	return buildMesh(name, obj)
}

// buildMesh copies the first object with faces out of the parsed file and
// renumbers its vertices from zero.
func buildMesh(name string, obj *gwob.Obj) (*metadata.Mesh, error) {
	first := -1
	for i, g := range obj.Groups {
		if g.IndexCount > 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, core.ErrEmptyMesh
	}

	// Smoothing and material changes split one object into several groups.
	group := obj.Groups[first]
	begin, end := group.IndexBegin, group.IndexBegin+group.IndexCount
	for _, next := range obj.Groups[first+1:] {
		if next.Name != group.Name || next.IndexBegin != end {
			break
		}
		end += next.IndexCount
	}
	if (end-begin)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices do not form triangles", core.ErrAssetDecode, end-begin)
	}

	// gwob only pads the stride when every vertex has the same attributes.
	stride := obj.StrideSize / 4
	maxIndex := -1
	for _, i := range obj.Indices {
		maxIndex = max(maxIndex, i)
	}
	if len(obj.Coord) != (maxIndex+1)*stride {
		return nil, fmt.Errorf("%w: faces mix vertices with and without texcoords or normals", core.ErrAssetDecode)
	}

	mesh := &metadata.Mesh{
		Name:    group.Name,
		Indices: make([]uint32, 0, end-begin),
	}
	if mesh.Name == "" {
		mesh.Name = name
	}

	remap := make(map[int]uint32)
	for _, src := range obj.Indices[begin:end] {
		dst, ok := remap[src]
		if !ok {
			dst = uint32(len(remap))
			remap[src] = dst

			base := src * stride
			p := base + obj.StrideOffsetPosition/4
			mesh.Positions = append(mesh.Positions, obj.Coord[p:p+3]...)
			if obj.TextCoordFound {
				t := base + obj.StrideOffsetTexture/4
				mesh.Texcoords = append(mesh.Texcoords, obj.Coord[t:t+2]...)
			}
			if obj.NormCoordFound {
				n := base + obj.StrideOffsetNormal/4
				mesh.Normals = append(mesh.Normals, obj.Coord[n:n+3]...)
			}
		}
		mesh.Indices = append(mesh.Indices, dst)
	}
	return mesh, nil
}
