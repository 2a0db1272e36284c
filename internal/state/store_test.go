package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/weatherpi/internal/weather"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	var s Store

	s.Update(&weather.Reading{Icon: "clear-day", Current: 68.7, High: 75.2, Low: 60.1}, t0, nil)

	snap := s.Snapshot()
	if !snap.HasReading || snap.Reading.Icon != "clear-day" || snap.Reading.Current != 68.7 {
		t.Fatalf("snapshot reading = %#v, want clear-day 68.7 HasReading=true", snap.Reading)
	}
	if !snap.LastUpdated.Equal(t0) || !snap.LastSuccess.Equal(t0) {
		t.Fatalf("timestamps = %v / %v, want %v", snap.LastUpdated, snap.LastSuccess, t0)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(&weather.Reading{Icon: "rain", Current: 10}, t0, nil)
	prev := s.Snapshot()

	later := t0.Add(10 * time.Minute)
	origErr := errors.New("boom")
	s.Update(nil, later, origErr)

	snap := s.Snapshot()
	if snap.HasReading != prev.HasReading || snap.Reading != prev.Reading {
		t.Fatalf("reading changed on error: got %#v want %#v", snap.Reading, prev.Reading)
	}
	if !snap.LastUpdated.Equal(later) {
		t.Fatalf("LastUpdated = %v, want %v", snap.LastUpdated, later)
	}
	if !snap.LastSuccess.Equal(t0) {
		t.Fatalf("LastSuccess = %v, want %v", snap.LastSuccess, t0)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatal("cloned error should still wrap the original")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if got := s.Snapshot().ConsecutiveFailures; got != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", got)
	}

	for i := 1; i <= 3; i++ {
		s.Update(nil, t0, errors.New("fail"))
		if got := s.Snapshot().ConsecutiveFailures; got != i {
			t.Fatalf("ConsecutiveFailures = %d, want %d", got, i)
		}
	}

	// Success resets counter
	s.Update(&weather.Reading{}, t0, nil)
	if got := s.Snapshot().ConsecutiveFailures; got != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", got)
	}
}

func TestSnapshot_IsStale(t *testing.T) {
	var s Store
	if !s.Snapshot().IsStale(t0, time.Hour) {
		t.Fatal("IsStale() = false, want true before any reading")
	}

	s.Update(&weather.Reading{}, t0, nil)
	snap := s.Snapshot()
	if snap.IsStale(t0.Add(time.Hour), time.Hour) {
		t.Fatal("IsStale() = true at exactly maxAge, want false")
	}
	if !snap.IsStale(t0.Add(time.Hour+time.Second), time.Hour) {
		t.Fatal("IsStale() = false past maxAge, want true")
	}

	// Failures do not refresh staleness.
	s.Update(nil, t0.Add(2*time.Hour), errors.New("down"))
	if !s.Snapshot().IsStale(t0.Add(2*time.Hour), time.Hour) {
		t.Fatal("IsStale() = false after failures only, want true")
	}
}
