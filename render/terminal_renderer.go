// Package render draws a session snapshot to a tcell screen
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/engine"
	"github.com/lixenwraith/fruit-merge/physics"
	"github.com/lixenwraith/fruit-merge/status"
)

// halfBlock paints the upper pixel as foreground and the lower as background
const halfBlock = '▀'

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
	raster raster
	muted  bool
}

// NewTerminalRenderer creates a renderer bound to screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// Resize updates cached screen dimensions
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
}

// SetMuted toggles the mute marker in the panel
func (r *TerminalRenderer) SetMuted(muted bool) {
	r.muted = muted
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(v engine.View) {
	defaultStyle := tcell.StyleDefault.Background(toColor(RgbBackground))
	r.screen.Fill(' ', defaultStyle)

	if r.width < constants.MinScreenWidth || r.height < constants.MinScreenHeight {
		r.drawTooSmall(defaultStyle)
		r.screen.Show()
		return
	}

	r.drawField(v)
	r.drawBorder(defaultStyle)
	r.drawPanel(v, defaultStyle)
	if v.GameOver {
		r.drawGameOver(v.Score)
	}

	r.screen.Show()
}

func (r *TerminalRenderer) drawField(v engine.View) {
	r.raster.fill(RgbField)

	ready := v.State == engine.StateReady && !v.GameOver && v.Current.Valid()
	if ready {
		guideRadius := v.Current.Info().Radius
		_, fromRow := WorldToPixel(physics.Vec2{Y: constants.DropHeight - guideRadius})
		r.raster.vline(int(v.DropX*constants.PixelsPerUnit), fromRow, pixelRows-1, RgbGuideLine, guideLineAlpha)
	}

	for _, b := range v.Bodies {
		info := b.Tier.Info()
		r.raster.disc(b.Position, info.Radius, info.Color, 1)
	}

	if ready {
		info := v.Current.Info()
		center := physics.Vec2{X: v.DropX, Y: constants.DropHeight}
		r.raster.disc(center, info.Radius, info.Color, guideFruitFading)
	}

	r.raster.hline(constants.GameOverLine, RgbDanger, dangerLineAlpha)

	for row := 0; row < constants.FieldRows; row++ {
		for col := 0; col < constants.FieldCols; col++ {
			top := r.raster.px[2*row][col]
			bottom := r.raster.px[2*row+1][col]
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			r.screen.SetContent(constants.FieldOriginX+col, constants.FieldOriginY+row, halfBlock, nil, style)
		}
	}
}

// drawBorder frames the field on three sides; the top stays open for drops
func (r *TerminalRenderer) drawBorder(defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbBorder)
	left := constants.FieldOriginX - 1
	right := constants.FieldOriginX + constants.FieldCols
	bottom := constants.FieldOriginY + constants.FieldRows

	for y := constants.FieldOriginY; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, style)
		r.screen.SetContent(right, y, '│', nil, style)
	}
	for x := constants.FieldOriginX; x < right; x++ {
		r.screen.SetContent(x, bottom, '─', nil, style)
	}
	r.screen.SetContent(left, bottom, '└', nil, style)
	r.screen.SetContent(right, bottom, '┘', nil, style)
}

func (r *TerminalRenderer) drawGameOver(score int) {
	banner := tcell.StyleDefault.Foreground(RgbBannerFg).Background(RgbBannerBg).Bold(true)
	lines := []string{
		"",
		"GAME OVER",
		fmt.Sprintf("score %d", score),
		"r restart  q quit",
		"",
	}
	width := constants.FieldCols - 8
	x := constants.FieldOriginX + (constants.FieldCols-width)/2
	y := constants.FieldOriginY + constants.FieldRows/2 - len(lines)/2
	for i, line := range lines {
		r.drawCentered(x, y+i, width, line, banner)
	}
}

func (r *TerminalRenderer) drawTooSmall(defaultStyle tcell.Style) {
	msg := fmt.Sprintf("Terminal too small: need %dx%d", constants.MinScreenWidth, constants.MinScreenHeight)
	r.drawText(0, 0, msg, defaultStyle.Foreground(toColor(RgbDanger)))
}

// drawText writes s from (x, y), clipped to the screen width
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// drawCentered pads s with style to width cells centered on the span starting at x
func (r *TerminalRenderer) drawCentered(x, y, width int, s string, style tcell.Style) {
	for i := 0; i < width; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, style)
	}
	n := len([]rune(s))
	r.drawText(x+(width-n)/2, y, s, style)
}

func statLine(stats *status.Registry, label, key string) string {
	if stats == nil {
		return fmt.Sprintf("%-8s %6d", label, 0)
	}
	return fmt.Sprintf("%-8s %6d", label, stats.Int(key))
}
