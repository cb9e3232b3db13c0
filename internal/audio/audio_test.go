package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// counter streams samples whose value is their index.
func counter() beep.Streamer {
	next := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{next, -next}
			next++
		}
		return len(samples), true
	})
}

func TestVisualTapChronological(t *testing.T) {
	tap := newVisualTap(counter(), 8)
	if got := tap.snapshot(4); got != nil {
		t.Fatalf("empty tap returned %v", got)
	}

	buf := make([][2]float64, 3)
	tap.Stream(buf)
	got := tap.snapshot(10)
	if len(got) != 3 || got[0][0] != 0 || got[2][0] != 2 {
		t.Errorf("partial snapshot = %v", got)
	}

	// Wrap around the ring twice over.
	buf = make([][2]float64, 13)
	tap.Stream(buf)
	got = tap.snapshot(5)
	want := []float64{11, 12, 13, 14, 15}
	for i := range want {
		if got[i][0] != want[i] {
			t.Fatalf("snapshot = %v, want left channel %v", got, want)
		}
	}
	if len(tap.snapshot(100)) != 8 {
		t.Error("snapshot exceeded the ring size")
	}

	tap.reset()
	if tap.snapshot(1) != nil {
		t.Error("reset tap still returned samples")
	}
}

func TestVisualTapPassesThrough(t *testing.T) {
	tap := newVisualTap(beep.Take(5, counter()), 4)
	buf := make([][2]float64, 8)
	n, ok := tap.Stream(buf)
	if n != 5 || !ok {
		t.Errorf("Stream = %d, %v", n, ok)
	}
	if buf[4][1] != -4 {
		t.Errorf("samples altered: %v", buf[:n])
	}
	if err := tap.Err(); err != nil {
		t.Error(err)
	}
}

func TestPeakAndRMS(t *testing.T) {
	tests := []struct {
		name      string
		samples   [][2]float64
		peak, rms float64
	}{
		{"silence", make([][2]float64, 4), 0, 0},
		{"empty", nil, 0, 0},
		{"dc", [][2]float64{{0.5, 0.5}, {0.5, 0.5}}, 0.5, 0.5},
		{"right only", [][2]float64{{0, -0.8}, {0, 0.4}}, 0.8, math.Sqrt((0.16 + 0.04) / 2)},
		{"clipped", [][2]float64{{1.5, 0}}, 1, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Peak(tt.samples); math.Abs(got-tt.peak) > 1e-12 {
				t.Errorf("Peak = %v, want %v", got, tt.peak)
			}
			if got := RMS(tt.samples); math.Abs(got-tt.rms) > 1e-12 {
				t.Errorf("RMS = %v, want %v", got, tt.rms)
			}
		})
	}
}

func TestMeter(t *testing.T) {
	m := Meter{Smoothing: 0.5}
	m.Update(1)
	if got := m.Update(1); got != 0.75 {
		t.Errorf("meter = %v, want 0.75", got)
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("Reset kept the level")
	}
}

func TestOpenUnsupported(t *testing.T) {
	for _, name := range []string{"song.ogg", "notes.txt", "noext"} {
		if _, _, err := Open(filepath.Join(t.TempDir(), name)); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Open(%q) err = %v", name, err)
		}
	}
	if _, _, err := Open(filepath.Join(t.TempDir(), "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestOpenWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.WAV")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	half := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, -0.5}
		}
		return len(samples), true
	})
	if err := wav.Encode(f, beep.Take(400, half), format); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s, got, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if got.SampleRate != format.SampleRate || s.Len() != 400 {
		t.Errorf("format = %+v, len = %d", got, s.Len())
	}

	tap := newVisualTap(s, 256)
	buf := make([][2]float64, 128)
	tap.Stream(buf)
	if amp := Peak(tap.snapshot(64)); math.Abs(amp-0.5) > 1e-3 {
		t.Errorf("peak = %v, want 0.5", amp)
	}
}

func TestIdlePlayer(t *testing.T) {
	p := NewPlayer(1024, 256, nil, nil)
	if _, ok := p.Amplitude(); ok {
		t.Error("idle player reported an amplitude")
	}
	if st := p.Status(); st.Playing {
		t.Errorf("idle status = %+v", st)
	}
	p.TogglePause()
	p.Stop()
	if err := p.Load(filepath.Join(t.TempDir(), "x.ogg")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestMeasureByName(t *testing.T) {
	samples := [][2]float64{{0.6, 0.2}, {0.6, 0.2}}
	tests := []struct {
		name string
		want float64
	}{
		{"peak", 0.6},
		{"", 0.6},
		{" RMS ", 0.4},
	}
	for _, tt := range tests {
		m, err := MeasureByName(tt.name)
		if err != nil {
			t.Fatalf("MeasureByName(%q): %v", tt.name, err)
		}
		if got := m(samples); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MeasureByName(%q) level = %v, want %v", tt.name, got, tt.want)
		}
	}
	if _, err := MeasureByName("loudness"); err == nil {
		t.Error("expected error for unknown measure")
	}
}

func constant(v [2]float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = v
		}
		return len(samples), true
	})
}

func TestPlayerAmplitudeAcrossPause(t *testing.T) {
	p := NewPlayer(8, 4, RMS, nil)
	tap := newVisualTap(constant([2]float64{0.6, 0.2}), 8)
	tap.Stream(make([][2]float64, 8))
	p.tap, p.ctrl = tap, &beep.Ctrl{Streamer: tap}

	if amp, ok := p.Amplitude(); !ok || math.Abs(amp-0.4) > 1e-12 {
		t.Fatalf("amplitude = %v, %v; want 0.4", amp, ok)
	}
	p.TogglePause()
	if amp, ok := p.Amplitude(); !ok || amp != 0 {
		t.Errorf("paused amplitude = %v, %v", amp, ok)
	}
	p.TogglePause()
	if amp, _ := p.Amplitude(); amp != 0 {
		t.Errorf("amplitude right after resume = %v, want 0", amp)
	}
	tap.Stream(make([][2]float64, 4))
	if amp, _ := p.Amplitude(); math.Abs(amp-0.4) > 1e-12 {
		t.Errorf("amplitude after resume = %v, want 0.4", amp)
	}
}

func writeTone(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(100, constant([2]float64{0.5, 0.5})), format); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDropsOldStreamWhenSpeakerFails(t *testing.T) {
	initErr := errors.New("no device")
	origInit, origClear := initSpeaker, clearSpeaker
	t.Cleanup(func() { initSpeaker, clearSpeaker = origInit, origClear })
	initSpeaker = func(beep.SampleRate, int) error { return initErr }
	clearSpeaker = func() {}

	dir := t.TempDir()
	oldPath, newPath := filepath.Join(dir, "old.wav"), filepath.Join(dir, "new.wav")
	writeTone(t, oldPath, 44100)
	writeTone(t, newPath, 8000)

	old, format, err := Open(oldPath)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(64, 16, nil, nil)
	p.initDone, p.format = true, format
	p.streamer, p.name = old, "old.wav"
	p.tap = newVisualTap(old, 64)

	if err := p.Load(newPath); !errors.Is(err, initErr) {
		t.Fatalf("err = %v, want %v", err, initErr)
	}
	if st := p.Status(); st.Playing || st.Name != "" {
		t.Errorf("status after failed load = %+v", st)
	}
	if _, ok := p.Amplitude(); ok {
		t.Error("failed load still reports an amplitude")
	}
}
