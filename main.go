/*
Avatar render server. Serves base64 PNG renders of avatars and item
thumbnails over HTTP, or renders the testbed samples to disk with -samples.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/stuxvii/lsd-thumbnail-server/engine"
	"github.com/stuxvii/lsd-thumbnail-server/engine/assets"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/ingress"
	"github.com/stuxvii/lsd-thumbnail-server/store"
	"github.com/stuxvii/lsd-thumbnail-server/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults to $LSD_CONFIG)")
	samplesDir := flag.String("samples", "", "render the testbed samples into this directory and exit")
	flag.Parse()

	cfg, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		core.LogFatal("config: %v", err)
	}
	core.SetLogLevel(core.ParseLogLevel(cfg.LogLevel))
	core.LogInfo("%s", cfg.Name)

	am, err := assets.NewAssetManager(cfg.AssetRoot)
	if err != nil {
		core.LogFatal("assets: %v", err)
	}
	defer am.Shutdown()

	e, err := engine.New(cfg, assets.LoadStaticMeshes(), am)
	if err != nil {
		core.LogFatal("engine: %v", err)
	}

	// signal context to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	runCtx, stopEngine := context.WithCancel(gctx)
	defer stopEngine()

	// run engine
	g.Go(func() error {
		return e.Run(runCtx)
	})

	if *samplesDir != "" {
		g.Go(func() error {
			defer stopEngine()
			_, err := testbed.RenderSamples(gctx, e, *samplesDir)
			return err
		})
	} else {
		st, err := store.Open(gctx, store.Config{
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			Name:     cfg.Database.Name,
		})
		if err != nil {
			stopEngine()
			_ = g.Wait()
			core.LogFatal("store: %v", err)
		}
		defer st.Close()

		server := ingress.NewServer(e, st, e.HUD().PNG)
		g.Go(func() error {
			defer stopEngine()
			return server.ListenAndServe(gctx, cfg.ListenAddr)
		})
	}

	if err := g.Wait(); err != nil {
		core.LogError("%v", err)
		am.Shutdown()
		os.Exit(1)
	}
	core.LogInfo("bye")
}
