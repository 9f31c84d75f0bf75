package ingress

import (
	"context"
	"encoding/base64"
	"image/png"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stuxvii/lsd-thumbnail-server/engine"
	"github.com/stuxvii/lsd-thumbnail-server/engine/assets"
)

func TestRenderThroughEngine(t *testing.T) {
	am, err := assets.NewAssetManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer am.Shutdown()

	cfg := engine.DefaultApplicationConfig()
	cfg.Width, cfg.Height = 32, 32
	cfg.RefreshRate = 500
	e, err := engine.New(cfg, assets.LoadStaticMeshes(), am)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go e.Run(ctx)
	defer func() {
		cancel()
		select {
		case <-e.Done():
		case <-time.After(5 * time.Second):
			t.Error("engine did not stop")
		}
	}()

	s := NewServer(e, newRepo(), e.HUD().PNG)
	rec := post(t, s, form("7", "1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	img, err := png.Decode(base64.NewDecoder(base64.StdEncoding, strings.NewReader(rec.Body.String())))
	if err != nil {
		t.Fatalf("body is not a base64 PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("image is %dx%d, want 32x32", b.Dx(), b.Dy())
	}
}
