package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/spiral-visualization/internal/config"
	"github.com/iburimskiy/spiral-visualization/internal/controls"
	"github.com/iburimskiy/spiral-visualization/internal/export"
	"github.com/iburimskiy/spiral-visualization/internal/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if cfg.Export != "" {
		if err := exportHeadless(cfg, log); err != nil {
			log.Error("export failed", "err", err)
			os.Exit(1)
		}
		return
	}

	g, err := game.New(cfg, log)
	if err != nil {
		log.Error("cannot start", "backend", cfg.Backend, "err", err)
		os.Exit(1)
	}
	defer g.Close()

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Kathara Spiral - Tab: help, O: open audio, S: export, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("game stopped", "err", err)
		os.Exit(1)
	}
}

// exportHeadless renders the configured preset straight to SPIRAL_EXPORT
// without opening a window.
func exportHeadless(cfg *config.Config, log *slog.Logger) error {
	state := controls.New()
	if cfg.Preset != "" {
		if err := state.ApplyPresetByName(cfg.Preset); err != nil {
			return err
		}
	}
	p, err := state.Checked(cfg.ExportSize, cfg.ExportSize)
	if err != nil {
		return err
	}
	return export.File(context.Background(), cfg.Export, p, export.Options{
		Size:    cfg.ExportSize,
		Backend: cfg.Backend,
		Log:     log,
	})
}
