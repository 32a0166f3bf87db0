package render

import (
	"github.com/lixenwraith/fruit-merge/constants"
	"github.com/lixenwraith/fruit-merge/core"
	"github.com/lixenwraith/fruit-merge/physics"
)

// pixelRows covers the field at two pixels per terminal row
const pixelRows = constants.FieldRows * 2

// raster is the field as a coarse pixel grid, one pixel per half cell
type raster struct {
	px [pixelRows][constants.FieldCols]core.RGB
}

func (r *raster) fill(c core.RGB) {
	for y := range r.px {
		for x := range r.px[y] {
			r.px[y][x] = c
		}
	}
}

// PixelToWorld returns the world point at the center of grid pixel (col, row)
func PixelToWorld(col, row int) physics.Vec2 {
	x := (float64(col) + 0.5) * constants.CellPixels
	y := (float64(row) + 0.5) * constants.CellPixels
	return physics.Vec2{
		X: x / constants.PixelsPerUnit,
		Y: (constants.FieldHeightPixels - y) / constants.PixelsPerUnit,
	}
}

// WorldToPixel returns the grid pixel containing a world point
func WorldToPixel(p physics.Vec2) (col, row int) {
	x := p.X * constants.PixelsPerUnit
	y := constants.FieldHeightPixels - p.Y*constants.PixelsPerUnit
	return int(x / constants.CellPixels), int(y / constants.CellPixels)
}

// disc draws a shaded circle; scale dims the whole disc
func (r *raster) disc(center physics.Vec2, radius float64, base core.RGB, scale float64) {
	if radius <= 0 {
		return
	}
	minCol, minRow := WorldToPixel(physics.Vec2{X: center.X - radius, Y: center.Y + radius})
	maxCol, maxRow := WorldToPixel(physics.Vec2{X: center.X + radius, Y: center.Y - radius})

	hl := physics.Vec2{X: center.X - highlightOffset*radius, Y: center.Y + highlightOffset*radius}
	hlR2 := highlightRadius * radius * highlightRadius * radius
	r2 := radius * radius
	rim2 := rimFraction * radius * rimFraction * radius

	for row := max(minRow, 0); row <= min(maxRow, pixelRows-1); row++ {
		for col := max(minCol, 0); col <= min(maxCol, constants.FieldCols-1); col++ {
			p := PixelToWorld(col, row)
			dx, dy := p.X-center.X, p.Y-center.Y
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			c := base
			if d2 > rim2 {
				c = c.Scale(rimScale)
			}
			hx, hy := p.X-hl.X, p.Y-hl.Y
			if hx*hx+hy*hy <= hlR2 {
				c = c.Blend(core.RGBWhite, highlightAlpha)
			}
			r.px[row][col] = c.Scale(scale)
		}
	}
}

// vline blends a dotted vertical line at a field pixel x between two grid rows
func (r *raster) vline(fieldX int, fromRow, toRow int, c core.RGB, alpha float64) {
	col := min(max(fieldX/constants.CellPixels, 0), constants.FieldCols-1)
	for row := max(fromRow, 0); row <= min(toRow, pixelRows-1); row++ {
		if row%2 == 0 {
			r.px[row][col] = r.px[row][col].Blend(c, alpha)
		}
	}
}

// hline blends a dashed horizontal line at a world height
func (r *raster) hline(worldY float64, c core.RGB, alpha float64) {
	_, row := WorldToPixel(physics.Vec2{Y: worldY})
	if row < 0 || row >= pixelRows {
		return
	}
	for col := range r.px[row] {
		if col%2 == 0 {
			r.px[row][col] = r.px[row][col].Blend(c, alpha)
		}
	}
}
