// Package game is the ebiten front end: it owns the window, turns input into
// control changes and redraws the spiral when they happen.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/spiral-visualization/internal/animate"
	"github.com/iburimskiy/spiral-visualization/internal/audio"
	"github.com/iburimskiy/spiral-visualization/internal/config"
	"github.com/iburimskiy/spiral-visualization/internal/controls"
	"github.com/iburimskiy/spiral-visualization/internal/export"
	"github.com/iburimskiy/spiral-visualization/internal/frame"
	"github.com/iburimskiy/spiral-visualization/internal/raster"
)

type Game struct {
	cfg *config.Config
	log *slog.Logger

	state   controls.State
	history *controls.History[controls.State]
	loop    animate.Loop

	player *audio.Player
	meter  audio.Meter

	backend  config.Backend
	shader   *ebiten.Shader
	frame    *ebiten.Image
	composer *frame.Composer
	width    int
	height   int
	dirty    bool

	// input
	dragging bool
	lastX    int
	gesture  bool

	showHUD bool
	notice  string
	lastErr error
}

// New builds the game for cfg. It fails when the selected backend cannot be
// created.
func New(cfg *config.Config, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	measure, err := audio.MeasureByName(cfg.AudioMeasure)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:     cfg,
		log:     log,
		state:   controls.New(),
		history: controls.NewHistory[controls.State](config.UndoDepth),
		player:  audio.NewPlayer(cfg.AudioRingSize, cfg.AudioWindow, measure, log.With("component", "audio")),
		meter:   audio.Meter{Smoothing: config.SmoothingFactor},
		backend: cfg.Backend,
		width:   cfg.WindowWidth,
		height:  cfg.WindowHeight,
		dirty:   true,
		showHUD: true,
	}

	switch cfg.Backend {
	case config.Immediate:
	case config.Tessellate:
		s, err := compileShader()
		if err != nil {
			return nil, err
		}
		g.shader = s
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}

	if cfg.Preset != "" {
		if err := g.state.ApplyPresetByName(cfg.Preset); err != nil {
			return nil, err
		}
	}
	if _, err := g.state.Checked(g.width, g.height); err != nil {
		return nil, err
	}
	g.history.Push(g.state)

	g.loop.Add(animate.Task{
		Name:    "auto-rotate",
		Enabled: func() bool { return g.state.AutoRotate },
		Step:    g.state.StepAutoRotate,
	})
	g.loop.Add(animate.Task{
		Name:    "audio",
		Enabled: func() bool { return g.state.AudioEnabled },
		Step:    g.stepAudio,
	})

	log.Info("game ready", "backend", cfg.Backend, "size", fmt.Sprintf("%dx%d", cfg.WindowWidth, cfg.WindowHeight))
	return g, nil
}

// Close stops audio playback.
func (g *Game) Close() {
	g.player.Stop()
}

func (g *Game) stepAudio() {
	amp, ok := g.player.Amplitude()
	if !ok {
		g.meter.Reset()
		return
	}
	g.meter.Update(amp)
	g.state.StepAudio(amp)
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	if g.loop.Tick() {
		g.dirty = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ensureFrame()
	if g.dirty {
		if err := g.composer.Compose(g.state.Snapshot(g.width, g.height)); err != nil {
			g.fail("compose", err)
		}
		g.dirty = false
	}
	screen.DrawImage(g.frame, nil)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.dirty = true
	}
	return g.width, g.height
}

// ensureFrame (re)creates the offscreen frame and its rasterizer when the
// window size changed.
func (g *Game) ensureFrame() {
	if g.frame != nil {
		b := g.frame.Bounds()
		if b.Dx() == g.width && b.Dy() == g.height {
			return
		}
		g.frame.Deallocate()
	}
	g.frame = ebiten.NewImage(max(g.width, 1), max(g.height, 1))

	var r frame.Rasterizer
	if g.backend == config.Tessellate {
		r = raster.NewTessellating(newPipeline(g.frame, g.shader))
	} else {
		r = raster.NewImmediate(newCanvas(g.frame))
	}
	g.composer = frame.NewComposer(r, g.log)
	g.dirty = true
}

// commit records the current state for undo and schedules a redraw.
func (g *Game) commit() {
	g.history.Push(g.state)
	g.dirty = true
}

func (g *Game) undo() {
	prev, ok := g.history.Undo()
	if !ok {
		g.notify("nothing to undo")
		return
	}
	g.state = prev
	g.dirty = true
}

func (g *Game) reset() {
	g.state.Reset()
	g.history.Clear()
	g.history.Push(g.state)
	g.dirty = true
	g.notify("reset")
}

func (g *Game) openAudio() {
	path, ok, err := selectAudioFile()
	if err != nil {
		g.fail("open audio dialog", err)
		return
	}
	if !ok {
		return
	}
	if err := g.player.Load(path); err != nil {
		g.fail("load audio", err)
		return
	}
	g.lastErr = nil
	g.notify("playing " + path)
}

func (g *Game) toggleAudio() {
	g.state.ToggleAudio()
	if g.state.AudioEnabled {
		if st := g.player.Status(); !st.Playing {
			g.openAudio()
		}
	} else {
		g.meter.Reset()
	}
	g.commit()
}

func (g *Game) exportPNG() {
	path, ok, err := selectExportFile(g.cfg.ExportName)
	if err != nil {
		g.fail("export dialog", err)
		return
	}
	if !ok {
		return
	}
	err = export.File(context.Background(), path, g.state.Snapshot(g.width, g.height), export.Options{
		Size:    g.cfg.ExportSize,
		Backend: g.backend,
		Target:  exportTarget(g.backend),
		Log:     g.log,
	})
	if err != nil {
		g.fail("export", err)
		return
	}
	g.lastErr = nil
	g.notify("saved " + path)
}

func (g *Game) notify(msg string) {
	g.notice = msg
	g.log.Debug(msg)
}

// fail keeps the error on screen. Rendering carries on.
func (g *Game) fail(op string, err error) {
	g.lastErr = fmt.Errorf("%s: %w", op, err)
	level := slog.LevelWarn
	if errors.Is(err, raster.ErrNoSurface) {
		level = slog.LevelError
	}
	g.log.Log(context.Background(), level, op+" failed", "err", err)
}
