// Package sessions tracks which record is currently open for editing.
// Deleting a record must also close its edit session so the dashboard never
// keeps a dangling reference to a removed record.
package sessions

import (
	"sync"
	"time"
)

// EditSession marks one record as open in the form view.
type EditSession struct {
	RecordID string    `json:"record_id"`
	OpenedAt time.Time `json:"opened_at"`
}

// Registry holds the open edit sessions, keyed by record id.
type Registry struct {
	mu   sync.Mutex
	open map[string]EditSession
}

func NewRegistry() *Registry {
	return &Registry{open: make(map[string]EditSession)}
}

// Open starts (or refreshes) an edit session for a record.
func (r *Registry) Open(recordID string) EditSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := EditSession{RecordID: recordID, OpenedAt: time.Now()}
	r.open[recordID] = s
	return s
}

// Close ends the session for a record. Closing an absent session is a no-op.
func (r *Registry) Close(recordID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.open, recordID)
}

// IsOpen reports whether the record is currently being edited.
func (r *Registry) IsOpen(recordID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.open[recordID]
	return ok
}
