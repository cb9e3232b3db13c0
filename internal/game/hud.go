package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spiral-visualization/internal/config"
)

const helpLine = "arrows scale/rotate  -/= nodes  [/] layers  ,/. N ratio  1-9 presets  " +
	"V/H mirror  G D C L toggles  R spin  A audio  T K P audio map  ;/' gap  J/U sens  " +
	"O open  Z undo  S export  Tab hide"

func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.state.Params
	preset := g.state.Preset
	if preset == "" {
		preset = "custom"
	}
	lines := []string{
		fmt.Sprintf("%s  [%s]  %.0f fps", preset, g.backend, ebiten.ActualFPS()),
		fmt.Sprintf("scale %.1f  nodes %d  rotation %.0f  layers %d  ratio %.3g  %s",
			p.Scale, p.Nodes, p.Rotation, p.Layers, p.LayerRatio, p.SpiralType),
		fmt.Sprintf("mirror v:%s h:%s  gradient %s  dash %s  curved %s  spin %s  master %s",
			onOff(p.Mirror.Vertical), onOff(p.Mirror.Horizontal), onOff(p.GradientStroke),
			onOff(p.DashEffect), onOff(p.CurvedLines), onOff(g.state.AutoRotate), onOff(g.state.MasterPinned)),
		fmt.Sprintf("colours %s v %s h %s both %s bg %s",
			p.StrokeColor.Hex(), p.VerticalColor.Hex(), p.HorizontalColor.Hex(), p.BothColor.Hex(), p.BackgroundColor.Hex()),
	}
	a := g.state.Audio
	lines = append(lines, fmt.Sprintf("audio map rotate:%s scale:%s opacity:%s  gap %.0f  sensitivity %.1f",
		onOff(a.Rotate), onOff(a.Scale), onOff(a.Opacity), a.ScaleGap, a.ScaleSensitivity))

	st := g.player.Status()
	switch {
	case !st.Playing:
		lines = append(lines, fmt.Sprintf("audio %s  (O to open a file)", onOff(g.state.AudioEnabled)))
	case st.Paused:
		lines = append(lines, fmt.Sprintf("audio %s  %s paused %s/%s",
			onOff(g.state.AudioEnabled), st.Name, formatDuration(st.Position), formatDuration(st.Duration)))
	default:
		lines = append(lines, fmt.Sprintf("audio %s  %s %s/%s",
			onOff(g.state.AudioEnabled), st.Name, formatDuration(st.Position), formatDuration(st.Duration)))
	}

	status := helpLine
	if g.lastErr != nil {
		status = "Error: " + g.lastErr.Error()
	} else if g.notice != "" {
		status = g.notice
	}
	lines = append(lines, status)

	y := config.HUDY
	for _, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, config.HUDX, y)
		y += config.HUDLineHeight
	}

	if st.Playing {
		x, my := float32(config.HUDX), float32(y+4)
		vector.DrawFilledRect(screen, x, my, config.MeterWidth, config.MeterHeight, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
		level := float32(g.meter.Value()) * config.MeterWidth
		vector.DrawFilledRect(screen, x, my, level, config.MeterHeight, color.RGBA{R: 100, G: 200, B: 255, A: 255}, false)
		vector.StrokeRect(screen, x, my, config.MeterWidth, config.MeterHeight, 1, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)
	}
}
