package domain

import "time"

// Record is the aggregate for every business document: orders, sell
// requests, service bookings and moving bookings share one shape and differ
// only in kind, status vocabulary and payload.
type Record struct {
	ID            string
	Kind          RecordKind
	DisplayNumber string
	Status        Status
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Payload       map[string]any
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StatusHistory []HistoryEntry
}

// LastHistory returns the newest history entry, or nil when empty.
func (r *Record) LastHistory() *HistoryEntry {
	if len(r.StatusHistory) == 0 {
		return nil
	}
	return &r.StatusHistory[len(r.StatusHistory)-1]
}
