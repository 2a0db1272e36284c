// Package state holds the last-known-good weather reading.
//
// The weather task writes a Store after every fetch; the health endpoint
// reads it. Snapshot returns a copy, so readers never observe a partial
// update.
//
// Update semantics:
//
//	store.Update(&reading, now, nil)
//	→ Reading = reading, HasReading = true
//	→ LastSuccess = LastUpdated = now
//	→ LastError = nil, ConsecutiveFailures = 0
//
//	store.Update(nil, now, err)
//	→ Reading unchanged
//	→ LastUpdated = now, LastError = err
//	→ ConsecutiveFailures++
//
// The zero Store is ready to use.
package state
