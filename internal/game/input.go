package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/spiral-visualization/internal/config"
	"github.com/iburimskiy/spiral-visualization/internal/spiral"
)

// binding maps a key to a control change. Repeating bindings fire while
// held and are recorded for undo when the key is released.
type binding struct {
	key    ebiten.Key
	repeat bool
	action func(g *Game)
}

var bindings = []binding{
	{ebiten.KeyArrowUp, true, func(g *Game) { g.state.ScaleBy(config.ScaleStep) }},
	{ebiten.KeyArrowDown, true, func(g *Game) { g.state.ScaleBy(-config.ScaleStep) }},
	{ebiten.KeyArrowRight, true, func(g *Game) { g.state.RotateBy(config.RotationStep) }},
	{ebiten.KeyArrowLeft, true, func(g *Game) { g.state.RotateBy(-config.RotationStep) }},
	{ebiten.KeyEqual, true, func(g *Game) { g.state.AddNodes(1) }},
	{ebiten.KeyMinus, true, func(g *Game) { g.state.AddNodes(-1) }},
	{ebiten.KeyBracketRight, true, func(g *Game) { g.state.AddLayers(1) }},
	{ebiten.KeyBracketLeft, true, func(g *Game) { g.state.AddLayers(-1) }},
	{ebiten.KeyPeriod, true, func(g *Game) { g.state.SetLayerRatio(g.state.Params.LayerRatio + config.RatioStep) }},
	{ebiten.KeyComma, true, func(g *Game) { g.state.SetLayerRatio(g.state.Params.LayerRatio - config.RatioStep) }},
	{ebiten.KeyQuote, true, func(g *Game) { g.state.AdjustScaleGap(config.ScaleGapStep) }},
	{ebiten.KeySemicolon, true, func(g *Game) { g.state.AdjustScaleGap(-config.ScaleGapStep) }},
	{ebiten.KeyU, true, func(g *Game) { g.state.AdjustSensitivity(config.SensitivityStep) }},
	{ebiten.KeyJ, true, func(g *Game) { g.state.AdjustSensitivity(-config.SensitivityStep) }},

	{ebiten.KeyN, false, func(g *Game) { g.state.CycleRatio(); g.commit() }},
	{ebiten.KeyV, false, func(g *Game) { g.state.ToggleVertical(); g.commit() }},
	{ebiten.KeyH, false, func(g *Game) { g.state.ToggleHorizontal(); g.commit() }},
	{ebiten.KeyG, false, func(g *Game) { g.state.ToggleGradient(); g.commit() }},
	{ebiten.KeyD, false, func(g *Game) { g.state.ToggleDash(); g.commit() }},
	{ebiten.KeyC, false, func(g *Game) { g.state.ToggleCurved(); g.commit() }},
	{ebiten.KeyL, false, func(g *Game) { g.state.ToggleSpiralType(); g.commit() }},
	{ebiten.KeyR, false, func(g *Game) { g.state.ToggleAutoRotate(); g.commit() }},
	{ebiten.KeyM, false, func(g *Game) { g.state.ToggleMaster(); g.commit() }},
	{ebiten.KeyA, false, (*Game).toggleAudio},
	{ebiten.KeyT, false, func(g *Game) { g.state.ToggleAudioRotate(); g.commit() }},
	{ebiten.KeyK, false, func(g *Game) { g.state.ToggleAudioScale(); g.commit() }},
	{ebiten.KeyP, false, func(g *Game) { g.state.ToggleAudioOpacity(); g.commit() }},
	{ebiten.KeyO, false, (*Game).openAudio},
	{ebiten.KeySpace, false, func(g *Game) { g.player.TogglePause() }},
	{ebiten.KeyZ, false, (*Game).undo},
	{ebiten.KeyBackspace, false, (*Game).reset},
	{ebiten.KeyS, false, (*Game).exportPNG},
	{ebiten.KeyF, false, func(*Game) { ebiten.SetFullscreen(!ebiten.IsFullscreen()) }},
	{ebiten.KeyTab, false, func(g *Game) { g.showHUD = !g.showHUD }},
}

var presetKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// repeating reports a press on the first frame and then every few frames
// while the key stays down.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%4 == 0)
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
		} else {
			return ebiten.Termination
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for _, b := range bindings {
		switch {
		case b.repeat && repeating(b.key):
			b.action(g)
			g.gesture = true
			g.dirty = true
		case b.repeat && inpututil.IsKeyJustReleased(b.key):
			g.endGesture()
		case !b.repeat && inpututil.IsKeyJustPressed(b.key):
			b.action(g)
			g.dirty = true
		}
	}

	for i, k := range presetKeys {
		if inpututil.IsKeyJustPressed(k) && i < len(spiral.Presets) {
			g.state.ApplyPreset(spiral.Presets[i])
			g.notify("preset " + spiral.Presets[i].Name)
			g.commit()
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.state.ScaleBy(dy * config.WheelStep)
		g.commit()
	}

	x, _ := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.dragging, g.lastX = true, x
	case g.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.dragging = false
		g.endGesture()
	case g.dragging && x != g.lastX:
		g.state.RotateBy(float64(x-g.lastX) * config.DragDegPerPx)
		g.lastX = x
		g.gesture = true
		g.dirty = true
	}
	return nil
}

// endGesture records a held-key or drag change once it is finished.
func (g *Game) endGesture() {
	if !g.gesture {
		return
	}
	g.gesture = false
	g.commit()
}
