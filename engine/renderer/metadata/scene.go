package metadata

import (
	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
)

/**
 * @brief A single mesh/texture pair to be drawn. Transform may be nil,
 * meaning the mesh is drawn in its own coordinates.
 */
type DrawCall struct {
	Name      string
	Mesh      *Mesh
	Texture   *Texture
	Transform *math.Transform
}

/**
 * @brief Everything drawn for one job, in draw order. Built fresh per job
 * and discarded once the frame is encoded.
 */
type CompositedScene struct {
	Draws []DrawCall
}

func (s *CompositedScene) Add(name string, mesh *Mesh, texture *Texture, transform *math.Transform) {
	s.Draws = append(s.Draws, DrawCall{
		Name:      name,
		Mesh:      mesh,
		Texture:   texture,
		Transform: transform,
	})
}

// Names lists the draw call names in order.
func (s *CompositedScene) Names() []string {
	names := make([]string, len(s.Draws))
	for i, d := range s.Draws {
		names[i] = d.Name
	}
	return names
}
