package metadata

type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	/** @brief Image resource type. Data is *ImageResourceData. */
	ResourceTypeImage
	/** @brief Mesh resource type. Data is *Mesh. */
	ResourceTypeMesh
	/** @brief Bitmap font resource type. Data is *BitmapFontResourceData. */
	ResourceTypeBitmapFont
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeBitmapFont:
		return "bitmap_font"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The type of the loaded resource. */
	Type ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/**
 * @brief A single glyph of a bitmap font atlas.
 */
type FontGlyph struct {
	Codepoint int32
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

/**
 * @brief A bitmap font: glyph metrics plus the decoded atlas pages.
 */
type BitmapFontResourceData struct {
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	Glyphs     map[int32]*FontGlyph
	Pages      map[uint8]*ImageResourceData
}
