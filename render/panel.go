package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/engine"
	"github.com/lixenwraith/fruit-merge/status"
)

// Panel rows, relative to the field origin
const (
	panelNextRow    = 0
	panelScoreRow   = 3
	panelTopRow     = 6
	panelLadderRow  = 11
	panelStatsRow   = panelLadderRow + constants.FruitCount + 2
	panelControlRow = panelStatsRow + 4
)

// swatch marks a fruit color in text
const swatch = '●'

func (r *TerminalRenderer) drawPanel(v engine.View, defaultStyle tcell.Style) {
	x := constants.PanelX
	y := constants.FieldOriginY
	label := defaultStyle.Foreground(RgbLabel)
	value := defaultStyle.Foreground(RgbValue)

	// NEXT
	r.drawText(x, y+panelNextRow, "NEXT", label)
	if v.Next.Valid() {
		info := v.Next.Info()
		r.screen.SetContent(x, y+panelNextRow+1, swatch, nil, defaultStyle.Foreground(toColor(info.Color)))
		r.drawText(x+2, y+panelNextRow+1, info.Name, value)
	}

	// SCORE
	r.drawText(x, y+panelScoreRow, "SCORE", label)
	r.drawText(x, y+panelScoreRow+1, fmt.Sprintf("%d", v.Score), defaultStyle.Foreground(RgbScore).Bold(true))

	// TOP 3
	r.drawText(x, y+panelTopRow, fmt.Sprintf("TOP %d", constants.MaxTopScores), label)
	for i := 0; i < constants.MaxTopScores; i++ {
		line := fmt.Sprintf("%d. -", i+1)
		style := defaultStyle.Foreground(RgbDim)
		if i < len(v.TopScores) {
			line = fmt.Sprintf("%d. %d", i+1, v.TopScores[i])
			style = value
			if v.GameOver && v.TopScores[i] == v.Score {
				style = defaultStyle.Foreground(RgbHighlighted)
			}
		}
		r.drawText(x, y+panelTopRow+1+i, line, style)
	}

	r.drawLadder(x, y+panelLadderRow, v, defaultStyle)
	r.drawStats(x, y+panelStatsRow, v.Stats, defaultStyle)

	// Controls
	dim := defaultStyle.Foreground(RgbDim)
	r.drawText(x, y+panelControlRow, "←/→ move  ↓/space drop", dim)
	mute := "m mute"
	if r.muted {
		mute = "m unmute"
	}
	r.drawText(x, y+panelControlRow+1, "r restart  q quit  "+mute, dim)
}

// drawLadder lists the evolution chain with scores; the current tier is highlighted
func (r *TerminalRenderer) drawLadder(x, y int, v engine.View, defaultStyle tcell.Style) {
	r.drawText(x, y, "FRUITS", defaultStyle.Foreground(RgbLabel))
	for i, f := range constants.Fruits {
		row := y + 1 + i
		r.screen.SetContent(x, row, swatch, nil, defaultStyle.Foreground(toColor(f.Color)))
		style := defaultStyle.Foreground(RgbDim)
		if constants.Tier(i) == v.Current {
			style = defaultStyle.Foreground(RgbValue)
		}
		r.drawText(x+2, row, fmt.Sprintf("%-11s %3d", f.Name, f.Score), style)
	}
}

func (r *TerminalRenderer) drawStats(x, y int, stats *status.Registry, defaultStyle tcell.Style) {
	style := defaultStyle.Foreground(RgbDim)
	r.drawText(x, y, statLine(stats, "drops", status.Drops), style)
	r.drawText(x, y+1, statLine(stats, "merges", status.Merges), style)
	r.drawText(x, y+2, statLine(stats, "melons", status.Annihilations), style)
}
