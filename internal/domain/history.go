package domain

import "time"

// ActorSystem marks history entries written by the service itself rather
// than a named admin.
const ActorSystem = "System"

// HistoryEntry is one immutable audit-trail row. Entries are only ever
// appended; insertion order is chronological order.
type HistoryEntry struct {
	ID             string
	RecordID       string
	PreviousStatus *Status
	NewStatus      Status
	Note           string
	ChangedBy      string
	ChangedAt      time.Time
}
