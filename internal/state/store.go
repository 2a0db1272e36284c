package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/weatherpi/internal/weather"
)

// Snapshot represents the latest weather data known to the kiosk.
type Snapshot struct {
	Reading             weather.Reading
	HasReading          bool
	LastUpdated         time.Time // last Update call, success or not
	LastSuccess         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive fetch failures
}

// IsStale reports whether no reading has succeeded within maxAge of now.
func (s Snapshot) IsStale(now time.Time, maxAge time.Duration) bool {
	if !s.HasReading {
		return true
	}
	return now.Sub(s.LastSuccess) > maxAge
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the outcome of a fetch at time at. When err is non-nil the
// previous reading is kept but the error is recorded for visibility.
func (s *Store) Update(reading *weather.Reading, at time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = at
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if reading != nil {
		s.snapshot.Reading = *reading
		s.snapshot.HasReading = true
		s.snapshot.LastSuccess = at
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
