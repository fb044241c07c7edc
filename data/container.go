// Package data provides thread-safe storage for the RxGuard reference set.
// It includes the DataContainer struct with atomic operations for
// zero-downtime updates and thread-safe access for request handlers.
package data

import (
	"sync/atomic"
	"time"

	"github.com/rxguard/rxguard-api/interfaces"
	"github.com/rxguard/rxguard-api/logging"
	"github.com/rxguard/rxguard-api/reference"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the reference set behind an atomic pointer so that
// in-flight requests keep reading a consistent snapshot while the
// scheduler swaps in a refreshed one.
type DataContainer struct {
	ref             atomic.Value // *reference.Set
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer seeded with the built-in
// reference tables so the API can answer before the first recall refresh.
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.ref.Store(reference.Build())
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetReference returns the current reference snapshot. Callers must not
// mutate it; replacement goes through UpdateReference.
func (dc *DataContainer) GetReference() *reference.Set {
	if v := dc.ref.Load(); v != nil {
		if set, ok := v.(*reference.Set); ok {
			return set
		}
	}

	logging.Warn("Reference set is empty or invalid, rebuilding from built-ins")
	return reference.Build()
}

// GetLastUpdated returns the timestamp of the last reference update
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a reference update is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateReference atomically swaps in a new reference set (zero downtime
// replacement). A nil set is ignored.
func (dc *DataContainer) UpdateReference(set *reference.Set) {
	if set == nil {
		logging.Warn("Ignoring nil reference set update")
		return
	}
	dc.ref.Store(set)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a reference update operation.
// Returns true if the update can proceed, false if another update is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a reference update operation
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
