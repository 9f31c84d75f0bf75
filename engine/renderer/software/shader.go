package software

import (
	m "math"

	"github.com/fogleman/fauxgl"

	"github.com/stuxvii/lsd-thumbnail-server/engine/math"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// textureShader samples one texture with no lighting. Vertices arrive
// already in clip space.
type textureShader struct {
	texture *metadata.Texture
}

func (s *textureShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	return v
}

// Fragment discards fully transparent texels so they leave depth untouched.
// fauxgl only discards the all-zero colour on its own.
func (s *textureShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	texel := sample(s.texture, v.Texture.X, v.Texture.Y)
	if texel[3] == 0 {
		return fauxgl.Discard
	}
	return toColor(texel)
}

// sample does a nearest-neighbour lookup with repeat wrapping. v = 0 is the
// bottom row of the image.
func sample(t *metadata.Texture, u, v float64) [4]uint8 {
	u -= m.Floor(u)
	v -= m.Floor(v)

	tx := math.Clamp(int(u*float64(t.Width)), 0, int(t.Width)-1)
	ty := math.Clamp(int((1-v)*float64(t.Height)), 0, int(t.Height)-1)

	i := (ty*int(t.Width) + tx) * 4
	return [4]uint8{t.Pixels[i], t.Pixels[i+1], t.Pixels[i+2], t.Pixels[i+3]}
}

// toColor maps bytes to fauxgl's unit range. Dividing by 255 round-trips
// exactly through Color.NRGBA.
func toColor(c [4]uint8) fauxgl.Color {
	return fauxgl.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
		A: float64(c[3]) / 255,
	}
}

// toVertex runs the vertex stage: the position goes to clip space through
// mvp and the texcoord is carried along for interpolation.
func toVertex(v math.Vertex3D, mvp math.Mat4) fauxgl.Vertex {
	clip := v.Position.ToVec4(1).Transform(mvp)
	return fauxgl.Vertex{
		Position: fauxgl.Vector{X: float64(v.Position.X), Y: float64(v.Position.Y), Z: float64(v.Position.Z)},
		Normal:   fauxgl.Vector{X: float64(v.Normal.X), Y: float64(v.Normal.Y), Z: float64(v.Normal.Z)},
		Texture:  fauxgl.Vector{X: float64(v.Texcoord.X), Y: float64(v.Texcoord.Y)},
		Output:   fauxgl.VectorW{X: float64(clip.X), Y: float64(clip.Y), Z: float64(clip.Z), W: float64(clip.W)},
	}
}
