package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/fruit-merge/core"
)

// Field palette
var (
	RgbBackground = core.RGB{R: 26, G: 27, B: 38}    // Tokyo Night background
	RgbField      = core.RGB{R: 36, G: 40, B: 59}    // Play area
	RgbGuideLine  = core.RGB{R: 200, G: 200, B: 200} // Drop line under the guide fruit
	RgbDanger     = core.RGB{R: 255, G: 60, B: 60}   // Game-over line
)

// Panel and text colors
var (
	RgbBorder      = tcell.NewRGBColor(120, 120, 140)
	RgbLabel       = tcell.NewRGBColor(180, 180, 180)
	RgbValue       = tcell.NewRGBColor(255, 255, 255)
	RgbScore       = tcell.NewRGBColor(255, 215, 0)
	RgbDim         = tcell.NewRGBColor(100, 100, 110)
	RgbBannerFg    = tcell.NewRGBColor(255, 255, 255)
	RgbBannerBg    = tcell.NewRGBColor(170, 20, 20)
	RgbHighlighted = tcell.NewRGBColor(0, 255, 255)
)

// Shading factors applied to fruit discs
const (
	rimFraction      = 0.8  // Outer ring, by radius fraction
	rimScale         = 0.7  // Rim darkening
	highlightOffset  = 0.4  // Highlight center, by radius, up and left
	highlightRadius  = 0.3  // Highlight size, by radius
	highlightAlpha   = 0.35 // White blended into the highlight
	guideLineAlpha   = 0.35
	dangerLineAlpha  = 0.6
	guideFruitFading = 0.85 // Guide fruit drawn slightly dimmer than settled fruit
)

// toColor converts a core color to a tcell true color
func toColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
