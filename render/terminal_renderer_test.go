package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/engine"
	"github.com/lixenwraith/fruit-merge/physics"
	"github.com/lixenwraith/fruit-merge/status"
)

func newTestScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// rowText returns the runes of screen row y as a string
func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func screenText(screen tcell.Screen) string {
	_, h := screen.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		b.WriteString(rowText(screen, y))
		b.WriteByte('\n')
	}
	return b.String()
}

func baseView() engine.View {
	return engine.View{
		GuideX:    constants.GuideStartX,
		DropX:     float64(constants.GuideStartX) / constants.PixelsPerUnit,
		Current:   constants.TierCherry,
		Next:      constants.TierGrapes,
		State:     engine.StateReady,
		Score:     42,
		TopScores: []int{100, 42},
		Stats:     status.NewRegistry(),
	}
}

// TestRenderFruitColor verifies a fruit's center cell carries its catalog color
func TestRenderFruitColor(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	r := NewTerminalRenderer(screen)

	v := baseView()
	v.Bodies = []engine.FruitState{{
		Handle:   1,
		Tier:     constants.TierWatermelon,
		Position: physics.Vec2{X: 6.45, Y: 8},
	}}
	r.RenderFrame(v)

	// Field pixel (19, 34) sits near the disc center, in the upper half of cell row 17
	ch, _, style, _ := screen.GetContent(constants.FieldOriginX+19, constants.FieldOriginY+17)
	if ch != halfBlock {
		t.Fatalf("Expected half block, got %q", ch)
	}
	fg, _, _ := style.Decompose()
	want := toColor(constants.Fruits[constants.TierWatermelon].Color)
	if fg != want {
		t.Errorf("Expected watermelon color %v, got %v", want, fg)
	}

	// A far corner of the field stays background
	_, _, style, _ = screen.GetContent(constants.FieldOriginX+constants.FieldCols-1, constants.FieldOriginY+constants.FieldRows-1)
	fg, _, _ = style.Decompose()
	if fg != toColor(RgbField) {
		t.Errorf("Expected field color in empty corner, got %v", fg)
	}
}

// TestRenderPanel verifies score, next fruit and top list text
func TestRenderPanel(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	r := NewTerminalRenderer(screen)
	r.RenderFrame(baseView())

	text := screenText(screen)
	for _, want := range []string{"NEXT", "grapes", "SCORE", "42", "TOP 3", "1. 100", "2. 42", "3. -", "FRUITS", "watermelon", "drops"} {
		if !strings.Contains(text, want) {
			t.Errorf("Panel missing %q", want)
		}
	}
	if strings.Contains(text, "GAME OVER") {
		t.Error("Banner shown before game over")
	}
}

func TestRenderGameOverBanner(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	r := NewTerminalRenderer(screen)

	v := baseView()
	v.GameOver = true
	r.RenderFrame(v)

	text := screenText(screen)
	if !strings.Contains(text, "GAME OVER") || !strings.Contains(text, "score 42") {
		t.Errorf("Missing game-over banner:\n%s", text)
	}
}

// TestRenderTooSmall verifies a clear message instead of a clipped field
func TestRenderTooSmall(t *testing.T) {
	screen := newTestScreen(t, 30, 10)
	r := NewTerminalRenderer(screen)
	r.RenderFrame(baseView())

	if !strings.Contains(rowText(screen, 0), "Terminal too small") {
		t.Errorf("Expected size warning, got %q", rowText(screen, 0))
	}
}

// TestRenderResize verifies the renderer follows the screen size
func TestRenderResize(t *testing.T) {
	screen := newTestScreen(t, 30, 10)
	r := NewTerminalRenderer(screen)

	screen.SetSize(80, 40)
	r.Resize()
	r.RenderFrame(baseView())

	if strings.Contains(rowText(screen, 0), "Terminal too small") {
		t.Error("Renderer ignored resize")
	}
}

func TestRenderMuteMarker(t *testing.T) {
	screen := newTestScreen(t, 80, 40)
	r := NewTerminalRenderer(screen)
	r.SetMuted(true)
	r.RenderFrame(baseView())

	if !strings.Contains(screenText(screen), "m unmute") {
		t.Error("Mute marker not shown")
	}
}

func TestPixelWorldRoundTrip(t *testing.T) {
	for _, px := range [][2]int{{0, 0}, {19, 35}, {constants.FieldCols - 1, pixelRows - 1}} {
		col, row := WorldToPixel(PixelToWorld(px[0], px[1]))
		if col != px[0] || row != px[1] {
			t.Errorf("Round trip of %v gave (%d, %d)", px, col, row)
		}
	}
}
