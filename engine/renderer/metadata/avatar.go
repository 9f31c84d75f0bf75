package metadata

// RGB is a 24-bit colour packed as 0xRRGGBB.
type RGB uint32

// Bytes expands the colour into an opaque RGBA quadruple.
func (c RGB) Bytes() [4]uint8 {
	return [4]uint8{uint8(c >> 16), uint8(c >> 8), uint8(c), 255}
}

// DefaultPaletteID is used for every body part when a profile is missing
// or cannot be parsed.
const DefaultPaletteID uint16 = 1001

/**
 * @brief One palette identifier per body part. The JSON field names are the
 * ones stored in the profiles table.
 */
type ColorProfile struct {
	Head     uint16 `json:"head"`
	Torso    uint16 `json:"trso"`
	LeftArm  uint16 `json:"larm"`
	RightArm uint16 `json:"rarm"`
	LeftLeg  uint16 `json:"lleg"`
	RightLeg uint16 `json:"rleg"`
}

func DefaultColorProfile() ColorProfile {
	return ColorProfile{
		Head:     DefaultPaletteID,
		Torso:    DefaultPaletteID,
		LeftArm:  DefaultPaletteID,
		RightArm: DefaultPaletteID,
		LeftLeg:  DefaultPaletteID,
		RightLeg: DefaultPaletteID,
	}
}

/** @brief Concrete colours for the six body parts. */
type ResolvedColors struct {
	Head     RGB
	Torso    RGB
	LeftArm  RGB
	RightArm RGB
	LeftLeg  RGB
	RightLeg RGB
}

// UniformColors paints every body part the same colour.
func UniformColors(c RGB) ResolvedColors {
	return ResolvedColors{Head: c, Torso: c, LeftArm: c, RightArm: c, LeftLeg: c, RightLeg: c}
}

/** @brief Describes how an equipped item visually attaches to the avatar. */
type ItemType int8

const (
	ItemTypeTShirt ItemType = 4
	ItemTypeShirt  ItemType = 5
	ItemTypePants  ItemType = 6
	ItemTypeFace   ItemType = 7
	ItemTypeHead   ItemType = 8
	ItemTypeHat    ItemType = 9
)

func (t ItemType) String() string {
	switch t {
	case ItemTypeTShirt:
		return "t-shirt"
	case ItemTypeShirt:
		return "shirt"
	case ItemTypePants:
		return "pants"
	case ItemTypeFace:
		return "face"
	case ItemTypeHead:
		return "head"
	case ItemTypeHat:
		return "hat"
	default:
		return "unknown"
	}
}

/**
 * @brief A worn item. Location is the mesh or texture path relative to the
 * asset root; TexturePath is only used by hats. Empty strings mean absent.
 */
type EquippedItem struct {
	Type        ItemType
	Location    string
	TexturePath string
}
