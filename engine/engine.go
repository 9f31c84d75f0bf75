package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stuxvii/lsd-thumbnail-server/engine/assets"
	"github.com/stuxvii/lsd-thumbnail-server/engine/containers"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/palette"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
	"github.com/stuxvii/lsd-thumbnail-server/engine/systems"
)

type Stage uint32

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is creating the render target
	EngineStageInitializing
	// Engine is running and waiting for work
	EngineStageIdle
	// Engine is rendering a job
	EngineStageRendering
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has stopped and rejects new jobs
	EngineStageStopped
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageIdle:
		return "idle"
	case EngineStageRendering:
		return "rendering"
	case EngineStageShuttingDown:
		return "shutting_down"
	case EngineStageStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// fontSource is implemented by asset sources that can also load the overlay
// font, such as *assets.AssetManager.
type fontSource interface {
	LoadBitmapFont(rel string) (*metadata.BitmapFontResourceData, error)
}

// Engine is the render dispatcher. Any goroutine may Submit; only the
// goroutine running Run touches the renderer.
type Engine struct {
	config     *ApplicationConfig
	stage      atomic.Uint32
	queue      *containers.RingQueue[*metadata.RenderJob]
	compositor *systems.SceneCompositor
	renderer   *renderer.Renderer
	hud        *HUD
	metrics    *core.Metrics
	clock      *core.Clock
	frames     atomic.Uint64
	// Clock reading published by the render thread for Health.
	uptime atomic.Int64

	// Guards stopped so no job is queued after the final drain.
	mutex   sync.Mutex
	stopped bool
	done    chan struct{}
}

func New(config *ApplicationConfig, static *metadata.StaticMeshSet, source systems.AssetSource) (*Engine, error) {
	if config == nil {
		config = DefaultApplicationConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	face, err := assets.DefaultFace()
	if err != nil {
		core.LogError("default face couldn't be loaded: %v", err)
		face = nil
	}

	var bmf *metadata.BitmapFontResourceData
	if config.OverlayFont != "" {
		if fs, ok := source.(fontSource); ok {
			if bmf, err = fs.LoadBitmapFont(config.OverlayFont); err != nil {
				core.LogWarn("overlay font %s: %v, using the built-in face", config.OverlayFont, err)
				bmf = nil
			}
		}
	}

	return &Engine{
		config:     config,
		queue:      containers.NewRingQueue[*metadata.RenderJob](64),
		compositor: systems.NewSceneCompositor(static, source, face),
		hud:        NewHUD(bmf),
		metrics:    core.NewMetrics(),
		clock:      core.NewClock(),
		done:       make(chan struct{}),
	}, nil
}

func (e *Engine) Stage() Stage {
	return Stage(e.stage.Load())
}

func (e *Engine) setStage(s Stage) {
	e.stage.Store(uint32(s))
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) HUD() *HUD {
	return e.hud
}

// Health is a point-in-time view of the dispatcher.
type Health struct {
	Stage        string  `json:"stage"`
	UptimeS      float64 `json:"uptime_s"`
	Frames       uint64  `json:"frames"`
	JobsServed   uint64  `json:"jobs_served"`
	JobsFailed   uint64  `json:"jobs_failed"`
	QueueDepth   int     `json:"queue_depth"`
	AvgRenderMS  float64 `json:"avg_render_ms"`
	LastRenderMS float64 `json:"last_render_ms"`
}

func (e *Engine) Health() Health {
	served, failed := e.metrics.Jobs()
	return Health{
		Stage:        e.Stage().String(),
		UptimeS:      e.Uptime().Seconds(),
		Frames:       e.frames.Load(),
		JobsServed:   served,
		JobsFailed:   failed,
		QueueDepth:   e.queue.Len(),
		AvgRenderMS:  e.metrics.RenderTime(),
		LastRenderMS: milliseconds(e.metrics.LastJob()),
	}
}

// Uptime is the time the render loop has been running, as of its last frame.
func (e *Engine) Uptime() time.Duration {
	return time.Duration(e.uptime.Load())
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// tick advances the clock. Only the render thread calls it.
func (e *Engine) tick() {
	e.clock.Update()
	e.uptime.Store(int64(e.clock.Elapsed()))
}

// QueueDepth returns the number of jobs waiting to be rendered.
func (e *Engine) QueueDepth() int {
	return e.queue.Len()
}

// Done is closed once Run has returned and the queue has been drained.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Run owns the render target and runs the frame loop until ctx is done. It
// must be called once; it locks the calling goroutine to its OS thread.
func (e *Engine) Run(ctx context.Context) error {
	if !e.stage.CompareAndSwap(uint32(EngineStageUninitialized), uint32(EngineStageInitializing)) {
		return fmt.Errorf("engine already started (stage %s)", e.Stage())
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	r, err := renderer.New(renderer.Software, e.config.Width, e.config.Height)
	if err != nil {
		e.stop()
		return err
	}
	e.renderer = r

	e.clock.Start()
	e.tick()

	ticker := time.NewTicker(time.Second / time.Duration(e.config.RefreshRate))
	defer ticker.Stop()

	e.setStage(EngineStageIdle)
	core.LogInfo("render loop started: %dx%d at %d Hz", e.config.Width, e.config.Height, e.config.RefreshRate)

	for {
		if ctx.Err() != nil {
			e.stop()
			return nil
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
			e.tick()
			e.frame()
		}
	}
}

// frame runs at most one job; idle frames redraw the overlay.
func (e *Engine) frame() {
	e.frames.Add(1)
	job, ok := e.queue.TryDequeue()
	if !ok {
		served, failed := e.metrics.Jobs()
		e.hud.Draw(HUDStats{
			Uptime:       e.clock.Elapsed(),
			JobsServed:   served,
			JobsFailed:   failed,
			QueueDepth:   e.queue.Len(),
			AvgRenderMS:  e.metrics.RenderTime(),
			LastRenderMS: milliseconds(e.metrics.LastJob()),
		})
		return
	}
	e.process(job)
}

func (e *Engine) process(job *metadata.RenderJob) {
	if err := job.Ctx.Err(); err != nil {
		core.LogWarn("job %s dropped, caller gave up: %v", job.ID, err)
		job.Reply <- metadata.RenderResult{Err: err}
		return
	}

	e.setStage(EngineStageRendering)
	defer e.setStage(EngineStageIdle)

	core.LogInfo("job %s started: %s with %d items", job.ID, job.Kind, len(job.Items))
	image := e.render(job)
	job.Reply <- metadata.RenderResult{Image: image}

	latency := time.Since(job.EnqueuedAt)
	e.metrics.Update(latency, image == "")
	if image == "" {
		core.LogError("job %s failed after %s", job.ID, latency)
		return
	}
	core.LogInfo("job %s finished, took %s", job.ID, latency)
}

// render composes, draws and encodes one job. Any failure, including a
// panic, yields the empty string.
func (e *Engine) render(job *metadata.RenderJob) (image string) {
	defer func() {
		if r := recover(); r != nil {
			core.LogError("job %s panicked: %v", job.ID, r)
			image = ""
		}
	}()

	var colors metadata.ResolvedColors
	items := job.Items
	switch job.Kind {
	case metadata.JobKindThumbnail:
		colors = palette.NeutralColors()
		items = items[:1]
	default:
		profile := metadata.DefaultColorProfile()
		if job.Colors != nil {
			profile = *job.Colors
		}
		colors = palette.ResolveProfile(profile)
	}

	scene := e.compositor.Compose(items, colors)
	pixels := e.renderer.DrawScene(scene)
	width, height := e.renderer.Size()

	encoded, err := renderer.EncodePNG(int(width), int(height), pixels)
	if err != nil {
		core.LogError("job %s: %v", job.ID, err)
		return ""
	}
	return encoded
}

// stop rejects new work, answers everything still queued and releases the
// render target.
func (e *Engine) stop() {
	e.setStage(EngineStageShuttingDown)

	e.mutex.Lock()
	e.stopped = true
	e.mutex.Unlock()

	drained := 0
	for {
		job, ok := e.queue.TryDequeue()
		if !ok {
			break
		}
		job.Reply <- metadata.RenderResult{Err: core.ErrEngineStopped}
		drained++
	}
	if drained > 0 {
		core.LogWarn("%d queued jobs cancelled by shutdown", drained)
	}

	if e.renderer != nil {
		if err := e.renderer.Shutdown(); err != nil {
			core.LogError("renderer shutdown: %v", err)
		}
	}
	e.clock.Stop()
	e.setStage(EngineStageStopped)
	close(e.done)
	core.LogInfo("render loop stopped after %d frames", e.frames.Load())
}

// Submit validates a job, queues it and waits for its reply. Waiting is
// bounded by the configured render timeout and by ctx.
func (e *Engine) Submit(ctx context.Context, kind metadata.JobKind, items []metadata.EquippedItem, colors *metadata.ColorProfile) (string, error) {
	switch kind {
	case metadata.JobKindAvatar:
	case metadata.JobKindThumbnail:
		if len(items) == 0 {
			return "", core.ErrEmptyThumbnail
		}
	default:
		return "", fmt.Errorf("%w: %d", core.ErrUnknownJobKind, kind)
	}

	timeout := e.config.RenderTimeout.Duration
	jobCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	job := metadata.NewRenderJob(jobCtx, kind, items, colors)

	e.mutex.Lock()
	if e.stopped {
		e.mutex.Unlock()
		return "", core.ErrEngineStopped
	}
	e.queue.Enqueue(job)
	e.mutex.Unlock()

	select {
	case res := <-job.Reply:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Image == "" {
			return "", core.ErrRenderFailed
		}
		return res.Image, nil
	case <-jobCtx.Done():
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", core.ErrRenderTimeout, timeout)
		}
		return "", jobCtx.Err()
	}
}
