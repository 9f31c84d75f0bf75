package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"runtime"
	"sync"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

const (
	hudWidth       = 256
	hudHeight      = 128
	hudMargin      = 10
	hudLineSpacing = 16
)

// HUD is the diagnostic overlay redrawn on idle frames. It lives in its own
// small image so it never touches the avatar render target.
type HUD struct {
	mutex sync.RWMutex
	img   *image.NRGBA
	font  *metadata.BitmapFontResourceData
	pages map[uint8]*image.NRGBA
}

// NewHUD creates the overlay. bmf may be nil, in which case the built-in
// 7x13 face is used.
func NewHUD(bmf *metadata.BitmapFontResourceData) *HUD {
	h := &HUD{
		img:  image.NewNRGBA(image.Rect(0, 0, hudWidth, hudHeight)),
		font: bmf,
	}
	if bmf != nil {
		h.pages = make(map[uint8]*image.NRGBA, len(bmf.Pages))
		for id, p := range bmf.Pages {
			h.pages[id] = &image.NRGBA{
				Pix:    p.Pixels,
				Stride: 4 * int(p.Width),
				Rect:   image.Rect(0, 0, int(p.Width), int(p.Height)),
			}
		}
	}
	return h
}

type HUDStats struct {
	Uptime       time.Duration
	JobsServed   uint64
	JobsFailed   uint64
	QueueDepth   int
	AvgRenderMS  float64
	LastRenderMS float64
}

// Draw repaints the overlay with uptime, current memory usage and job counters.
func (h *HUD) Draw(stats HUDStats) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	lines := []string{
		fmt.Sprintf("UP: %s", stats.Uptime.Truncate(time.Second)),
		fmt.Sprintf("MEM: %dK", mem.HeapAlloc/1024),
		fmt.Sprintf("SYS: %dK", mem.Sys/1024),
		fmt.Sprintf("JOBS: %d (%d failed)", stats.JobsServed, stats.JobsFailed),
		fmt.Sprintf("QUEUE: %d", stats.QueueDepth),
		fmt.Sprintf("AVG: %.1fms", stats.AvgRenderMS),
		fmt.Sprintf("LAST: %.1fms", stats.LastRenderMS),
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	draw.Draw(h.img, h.img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	for i, line := range lines {
		top := hudMargin + i*hudLineSpacing
		if h.font != nil {
			h.drawBitmapText(line, hudMargin, top)
		} else {
			h.drawBasicText(line, hudMargin, top)
		}
	}
}

func (h *HUD) drawBasicText(s string, x, top int) {
	d := &font.Drawer{
		Dst:  h.img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, top+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}

func (h *HUD) drawBitmapText(s string, x, top int) {
	for _, r := range s {
		g, ok := h.font.Glyphs[int32(r)]
		if !ok {
			g, ok = h.font.Glyphs['?']
			if !ok {
				continue
			}
		}
		page, ok := h.pages[g.PageID]
		if ok {
			dst := image.Rect(0, 0, int(g.Width), int(g.Height)).
				Add(image.Pt(x+int(g.XOffset), top+int(g.YOffset)))
			draw.Draw(h.img, dst, page, image.Pt(int(g.X), int(g.Y)), draw.Over)
		}
		x += int(g.XAdvance)
	}
}

// Snapshot returns a copy of the overlay image.
func (h *HUD) Snapshot() *image.NRGBA {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	out := image.NewNRGBA(h.img.Rect)
	copy(out.Pix, h.img.Pix)
	return out
}

// PNG encodes the current overlay.
func (h *HUD) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, h.Snapshot()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
