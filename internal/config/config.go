package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/iburimskiy/spiral-visualization/internal/audio"
)

// Defaults for values read from the environment live in the Config tags.
const (
	SmoothingFactor = 0.6

	// ExportSize is the export edge for callers that pass no size.
	ExportSize = 2160

	UndoDepth = 10

	// HUD layout
	HUDX          = 12
	HUDY          = 12
	HUDLineHeight = 16
	MeterWidth    = 120
	MeterHeight   = 6

	// Control steps
	ScaleStep     = 1.0
	RotationStep  = 5.0
	RatioStep     = 0.1
	WheelStep     = 2.0
	DragDegPerPx  = 0.5
	MinScale      = 1.0
	MaxScale      = 100.0
	MinLayerRatio = 0.1
	MaxLayerRatio = 10.0
	MaxNodes      = 200
	MaxLayers     = 20

	// Audio mapping steps
	ScaleGapStep    = 1.0
	MaxScaleGap     = 50.0
	SensitivityStep = 0.1
	MinSensitivity  = 0.1
	MaxSensitivity  = 5.0
)

// ErrUnknownBackend is returned for a SPIRAL_BACKEND value that names no
// rasterizer.
var ErrUnknownBackend = errors.New("unknown backend")

// Backend selects the rasterizer.
type Backend string

const (
	Immediate  Backend = "immediate"
	Tessellate Backend = "tessellate"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case Immediate, Tessellate:
		return b, nil
	case "", "canvas", "2d":
		return Immediate, nil
	case "webgl", "gl", "shader":
		return Tessellate, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Decode implements envconfig.Decoder.
func (b *Backend) Decode(value string) error {
	v, err := ParseBackend(value)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

type Config struct {
	WindowWidth   int        `envconfig:"WINDOW_WIDTH" default:"1024"`
	WindowHeight  int        `envconfig:"WINDOW_HEIGHT" default:"768"`
	Backend       Backend    `envconfig:"BACKEND" default:"immediate"`
	Preset        string     `envconfig:"PRESET"`
	Export        string     `envconfig:"EXPORT"`
	ExportSize    int        `envconfig:"EXPORT_SIZE" default:"2160"`
	ExportName    string     `envconfig:"EXPORT_NAME" default:"kathara-spiral.png"`
	LogLevel      slog.Level `envconfig:"LOG_LEVEL" default:"info"`
	AudioRingSize int        `envconfig:"AUDIO_RING_SIZE" default:"8192"`
	AudioWindow   int        `envconfig:"AUDIO_WINDOW" default:"1024"`
	AudioMeasure  string     `envconfig:"AUDIO_MEASURE" default:"peak"`
}

// Load reads SPIRAL_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SPIRAL", &cfg); err != nil {
		var pe *envconfig.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("config %s: %w", pe.KeyName, pe.Err)
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window %dx%d must be positive", c.WindowWidth, c.WindowHeight))
	}
	if c.ExportSize <= 0 {
		errs = append(errs, fmt.Errorf("export size %d must be positive", c.ExportSize))
	}
	if c.AudioRingSize <= 0 {
		errs = append(errs, fmt.Errorf("audio ring size %d must be positive", c.AudioRingSize))
	}
	if c.AudioWindow <= 0 || c.AudioWindow > c.AudioRingSize {
		errs = append(errs, fmt.Errorf("audio window %d must be in [1, %d]", c.AudioWindow, c.AudioRingSize))
	}
	if _, err := audio.MeasureByName(c.AudioMeasure); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
