package loaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fzipp/bmfont"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

// BitmapFontLoader loads AngelCode .fnt descriptors together with their
// atlas pages. Page files are resolved relative to the descriptor.
type BitmapFontLoader struct{}

func (fl *BitmapFontLoader) Load(path string) (*metadata.Resource, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, path)
		}
		return nil, err
	}

	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrAssetDecode, path, err)
	}

	out := &metadata.BitmapFontResourceData{
		Face:       font.Descriptor.Info.Face,
		Size:       uint32(font.Descriptor.Info.Size),
		LineHeight: int32(font.Descriptor.Common.LineHeight),
		Baseline:   int32(font.Descriptor.Common.Base),
		Glyphs:     make(map[int32]*metadata.FontGlyph, len(font.Descriptor.Chars)),
		Pages:      make(map[uint8]*metadata.ImageResourceData, len(font.Descriptor.Pages)),
	}

	var size uint64
	dir := filepath.Dir(path)
	for _, p := range font.Descriptor.Pages {
		page, err := loadPage(filepath.Join(dir, p.File))
		if err != nil {
			return nil, fmt.Errorf("font page %d: %w", p.ID, err)
		}
		out.Pages[uint8(p.ID)] = page
		size += uint64(len(page.Pixels))
	}

	for _, g := range font.Descriptor.Chars {
		out.Glyphs[int32(g.ID)] = &metadata.FontGlyph{
			Codepoint: int32(g.ID),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		}
	}

	return &metadata.Resource{
		Name:     out.Face,
		FullPath: path,
		Type:     metadata.ResourceTypeBitmapFont,
		DataSize: size,
		Data:     out,
	}, nil
}

func (fl *BitmapFontLoader) Unload(resource *metadata.Resource) error {
	if resource == nil || resource.Data == nil {
		return nil
	}
	data := resource.Data.(*metadata.BitmapFontResourceData)
	data.Glyphs = nil
	data.Pages = nil
	resource.Data = nil
	resource.DataSize = 0
	resource.FullPath = ""
	return nil
}

func loadPage(path string) (*metadata.ImageResourceData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return DecodeImage(file)
}
