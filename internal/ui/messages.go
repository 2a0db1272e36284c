package ui

import "image"

// Display mutations. Producers outside the UI loop send these through the
// program; the model applies them in Update.

// SetTimeMsg replaces the clock text.
type SetTimeMsg struct{ Text string }

// SetDateMsg replaces the date text.
type SetDateMsg struct{ Text string }

// SetTemperatureMsg replaces the three-line temperature block.
type SetTemperatureMsg struct{ Text string }

// SetIconMsg replaces the weather icon. Path is the asset name the image was
// loaded from; a nil Image clears the icon box.
type SetIconMsg struct {
	Path  string
	Image image.Image
}

// SetLastUpdateMsg replaces the footer text.
type SetLastUpdateMsg struct{ Text string }
