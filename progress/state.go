// Package progress implements the progress-aggregation core of the service:
// normalization of raw engine events, folding of per-item progress into an
// overall job figure, and the shared snapshot container polled by clients.
package progress

import (
	"sync"

	"github.com/tubedl/tubedl/job"
)

// State holds the single current progress snapshot shared between the
// request-serving context and the background download unit.
//
// The snapshot is replaced wholesale on every Write; readers can never
// observe a partially updated value.
type State struct {
	mu   sync.RWMutex
	snap job.Snapshot
}

// NewState returns a State initialized to a zero, idle snapshot.
func NewState() *State {
	return &State{snap: job.Snapshot{Status: job.StatusIdle}}
}

// Write replaces the current snapshot with snap.
func (s *State) Write(snap job.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Read returns the last written snapshot. It never blocks on the background
// unit; it returns instantly with the last known value.
func (s *State) Read() job.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
