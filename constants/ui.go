package constants

// Terminal layout: the field is drawn with half-block glyphs, two vertical pixels per cell
const (
	// CellPixels is the horizontal field pixels covered by one terminal column
	CellPixels = 10
	// CellPixelsY is the vertical field pixels covered by one terminal row
	CellPixelsY = 2 * CellPixels

	FieldCols = FieldWidthPixels / CellPixels
	FieldRows = FieldHeightPixels / CellPixelsY

	// FieldOriginX, FieldOriginY place the field inside a one-cell border
	FieldOriginX = 1
	FieldOriginY = 1

	PanelGap   = 3
	PanelX     = FieldOriginX + FieldCols + PanelGap
	PanelWidth = 28

	// MinScreenWidth, MinScreenHeight fit the border, field and side panel
	MinScreenWidth  = PanelX + PanelWidth
	MinScreenHeight = FieldRows + 2
)
