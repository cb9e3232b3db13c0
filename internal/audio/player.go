// Package audio plays an audio file through the speaker and reports the
// amplitude of what was just played.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat is returned for files that are not wav, mp3 or flac.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Patterns are the file dialog filters for Open.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// Open decodes the file at path by its extension. The returned streamer
// closes the file.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &fileStreamer{StreamSeekCloser: streamer, f: f}, format, nil
}

// fileStreamer closes the decoder and then the file under it.
type fileStreamer struct {
	beep.StreamSeekCloser
	f *os.File
}

func (s *fileStreamer) Close() error {
	err := s.StreamSeekCloser.Close()
	if cerr := s.f.Close(); cerr != nil && !errors.Is(cerr, os.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}

// Speaker hooks, swapped out in tests.
var (
	initSpeaker  = speaker.Init
	clearSpeaker = speaker.Clear
)

// Player owns the speaker and at most one playing file.
type Player struct {
	ringSize int
	window   int
	measure  Measure
	log      *slog.Logger

	mu       sync.Mutex
	initDone bool
	format   beep.Format
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	tap      *visualTap
	paused   bool
	name     string
	duration time.Duration
}

// NewPlayer returns a Player that keeps ringSize samples and measures
// amplitude over the last window of them. A nil measure means Peak.
func NewPlayer(ringSize, window int, measure Measure, log *slog.Logger) *Player {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if measure == nil {
		measure = Peak
	}
	return &Player{ringSize: ringSize, window: window, measure: measure, log: log}
}

// Load stops whatever is playing and starts path.
func (p *Player) Load(path string) error {
	streamer, format, err := Open(path)
	if err != nil {
		return err
	}

	t := newVisualTap(streamer, p.ringSize)
	ctrl := &beep.Ctrl{Streamer: t}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		clearSpeaker()
		// The old stream is off the speaker either way.
		p.closeLocked()
		if err := initSpeaker(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		clearSpeaker()
	}
	p.closeLocked()

	p.format = format
	p.streamer = streamer
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.name = filepath.Base(path)
	p.duration = format.SampleRate.D(streamer.Len())

	// The callback runs with the speaker locked; release the file elsewhere.
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		go p.finished(streamer)
	})))
	p.log.Info("playing", "file", p.name, "rate", int(format.SampleRate), "duration", p.duration)
	return nil
}

// finished drops s if it is still the current stream.
func (p *Player) finished(s beep.StreamSeekCloser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer != s {
		return
	}
	p.log.Debug("playback finished", "file", p.name)
	p.closeLocked()
}

func (p *Player) closeLocked() {
	if p.streamer != nil {
		if err := p.streamer.Close(); err != nil {
			p.log.Warn("close audio", "file", p.name, "err", err)
		}
	}
	p.streamer = nil
	p.ctrl = nil
	p.tap = nil
	p.name = ""
	p.duration = 0
}

// Stop clears the speaker and closes the current file.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initDone {
		return
	}
	clearSpeaker()
	p.closeLocked()
}

// TogglePause pauses or resumes playback. It does nothing when idle. The
// amplitude window starts empty after a resume.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
	if !p.paused && p.tap != nil {
		p.tap.reset()
	}
}

// Status describes the current playback.
type Status struct {
	Playing  bool
	Paused   bool
	Name     string
	Position time.Duration
	Duration time.Duration
}

func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return Status{}
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return Status{
		Playing:  true,
		Paused:   p.paused,
		Name:     p.name,
		Position: pos,
		Duration: p.duration,
	}
}

// Amplitude is the level of the most recent window. ok is false when
// nothing is playing.
func (p *Player) Amplitude() (amp float64, ok bool) {
	p.mu.Lock()
	t, paused := p.tap, p.paused
	p.mu.Unlock()
	if t == nil {
		return 0, false
	}
	if paused {
		return 0, true
	}
	return p.measure(t.snapshot(p.window)), true
}
