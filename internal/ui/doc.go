// Package ui renders the kiosk display with Bubble Tea.
//
// The canvas is a fixed 60×20 cell grid, the terminal rendition of a
// 480×320 px panel with 8×16 px console cells:
//
//	row 0  time          (full width, centered)
//	row 1  date          (full width, centered)
//	row 2  temperature | icon
//	row 3  last update   (full width)
//
// Region positions never change after New. A larger terminal only
// re-centers the canvas.
//
// All display mutations are messages (SetTimeMsg, SetDateMsg,
// SetTemperatureMsg, SetIconMsg, SetLastUpdateMsg) handled in Update, so
// they only take effect on the UI loop. Model.Apply exists for the initial
// render before the program starts.
//
// The only input is the close binding (ctrl+c).
package ui
