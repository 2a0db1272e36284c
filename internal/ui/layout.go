package ui

// Surface geometry. The kiosk panel is 480×320 px; with 8×16 px console
// cells that is a fixed 60×20 cell canvas.
const (
	SurfaceWidthPx  = 480
	SurfaceHeightPx = 320
	CellWidthPx     = 8
	CellHeightPx    = 16

	CanvasCols = SurfaceWidthPx / CellWidthPx
	CanvasRows = SurfaceHeightPx / CellHeightPx
)

// Region sizes, fixed at construction.
const (
	// TimeRows holds the clock with a blank line above and below.
	TimeRows = 3
	// DateRows holds the date and a spacer.
	DateRows = 2
	// MiddleRows holds the temperature block (left) and icon (right).
	MiddleRows = 10
	// LastUpdateRows holds the footer.
	LastUpdateRows = 1

	TemperatureCols = 30
	IconBoxCols     = CanvasCols - TemperatureCols

	// IconCols×IconRows is the rendered icon; each row carries two pixels.
	IconCols = 20
	IconRows = 10

	temperatureIndent = 4
)
