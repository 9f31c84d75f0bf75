package palette

import (
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

const (
	// NoColor is what an unknown palette identifier resolves to.
	NoColor metadata.RGB = 0x000000
	// Neutral is the flat grey used for item thumbnails.
	Neutral metadata.RGB = 0xBFBFBF
)

// Resolve looks up a palette identifier. The table is never mutated so
// this is safe to call from any goroutine.
func Resolve(id uint16) (metadata.RGB, bool) {
	c, ok := brickColors[id]
	return c, ok
}

// ResolveOrDefault returns NoColor for identifiers outside the table.
func ResolveOrDefault(id uint16) metadata.RGB {
	if c, ok := brickColors[id]; ok {
		return c
	}
	return NoColor
}

// Len returns the number of known palette identifiers.
func Len() int {
	return len(brickColors)
}

func ResolveProfile(p metadata.ColorProfile) metadata.ResolvedColors {
	return metadata.ResolvedColors{
		Head:     ResolveOrDefault(p.Head),
		Torso:    ResolveOrDefault(p.Torso),
		LeftArm:  ResolveOrDefault(p.LeftArm),
		RightArm: ResolveOrDefault(p.RightArm),
		LeftLeg:  ResolveOrDefault(p.LeftLeg),
		RightLeg: ResolveOrDefault(p.RightLeg),
	}
}

func NeutralColors() metadata.ResolvedColors {
	return metadata.UniformColors(Neutral)
}
