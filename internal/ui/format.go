package ui

import (
	"fmt"
	"math"
	"time"
)

// weekdays is indexed Monday=0 … Sunday=6.
var weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

const placeholder = "--"

// WeekdayIndex returns the Monday-based index of t's weekday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// FormatTime renders a 12-hour clock with leading zeros, e.g. "02:05:09 PM".
func FormatTime(t time.Time) string {
	return t.Format("03:04:05 PM")
}

// FormatDate renders "Weekday, DD/MM/YYYY".
func FormatDate(t time.Time) string {
	return weekdays[WeekdayIndex(t)] + ", " + t.Format("02/01/2006")
}

// FormatTemperature renders the three-line temperature block. Values are
// truncated toward zero, never rounded.
func FormatTemperature(current, high, low float64) string {
	return fmt.Sprintf("Current: %s°\nHigh: %s°\nLow: %s°", degrees(current), degrees(high), degrees(low))
}

// FormatLastUpdate renders the footer shown after each weather refresh.
func FormatLastUpdate(t time.Time) string {
	return "Last update: " + FormatTime(t)
}

func degrees(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return placeholder
	}
	return fmt.Sprintf("%d", int64(math.Trunc(v)))
}

func placeholderTemperature() string {
	return fmt.Sprintf("Current: %s°\nHigh: %s°\nLow: %s°", placeholder, placeholder, placeholder)
}
