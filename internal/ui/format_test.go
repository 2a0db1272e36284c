package ui

import (
	"math"
	"testing"
	"time"
)

func TestFormatDate_AllWeekdays(t *testing.T) {
	// 2024-01-01 is a Monday.
	cases := []struct {
		day  int
		want string
	}{
		{1, "Monday, 01/01/2024"},
		{2, "Tuesday, 02/01/2024"},
		{3, "Wednesday, 03/01/2024"},
		{4, "Thursday, 04/01/2024"},
		{5, "Friday, 05/01/2024"},
		{6, "Saturday, 06/01/2024"},
		{7, "Sunday, 07/01/2024"},
	}
	for i, tc := range cases {
		d := time.Date(2024, time.January, tc.day, 9, 30, 0, 0, time.UTC)
		if got := WeekdayIndex(d); got != i {
			t.Fatalf("WeekdayIndex(%s) = %d, want %d", d.Weekday(), got, i)
		}
		if got := FormatDate(d); got != tc.want {
			t.Fatalf("FormatDate(%v) = %q, want %q", d, got, tc.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		h, m, s int
		want    string
	}{
		{14, 5, 9, "02:05:09 PM"},
		{0, 0, 0, "12:00:00 AM"},
		{12, 0, 1, "12:00:01 PM"},
		{9, 41, 59, "09:41:59 AM"},
	}
	for _, tc := range cases {
		got := FormatTime(time.Date(2024, 6, 1, tc.h, tc.m, tc.s, 0, time.Local))
		if got != tc.want {
			t.Fatalf("FormatTime(%02d:%02d:%02d) = %q, want %q", tc.h, tc.m, tc.s, got, tc.want)
		}
	}
}

func TestFormatTemperature_TruncatesTowardZero(t *testing.T) {
	cases := []struct {
		name            string
		current, hi, lo float64
		want            string
	}{
		{"fractions", 68.7, 75.2, 60.1, "Current: 68°\nHigh: 75°\nLow: 60°"},
		{"just below", 20.9, 20.99, 0.5, "Current: 20°\nHigh: 20°\nLow: 0°"},
		{"negative", -3.7, -0.2, -10.9, "Current: -3°\nHigh: 0°\nLow: -10°"},
		{"whole", 12, 15, 7, "Current: 12°\nHigh: 15°\nLow: 7°"},
		{"not a number", math.NaN(), math.Inf(1), 1, "Current: --°\nHigh: --°\nLow: 1°"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTemperature(tc.current, tc.hi, tc.lo); got != tc.want {
				t.Fatalf("FormatTemperature = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatLastUpdate(t *testing.T) {
	got := FormatLastUpdate(time.Date(2024, 6, 1, 18, 0, 7, 0, time.Local))
	if got != "Last update: 06:00:07 PM" {
		t.Fatalf("FormatLastUpdate = %q", got)
	}
}

func TestFit(t *testing.T) {
	if got := fit("short", 10); got != "short" {
		t.Fatalf("fit short = %q", got)
	}
	if got := fit("abcdefghij", 5); got != "abcd…" {
		t.Fatalf("fit long = %q, want %q", got, "abcd…")
	}
	if got := fit("ok\nabcdefghij", 4); got != "ok\nabc…" {
		t.Fatalf("fit multiline = %q", got)
	}
	if got := fit("x", 0); got != "" {
		t.Fatalf("fit zero width = %q, want empty", got)
	}
}
