package events

import (
	"time"

	"github.com/depomarket/retail-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRecordCreated       EventType = "record_created"
	EventRecordStatusChanged EventType = "record_status_changed"
	EventRecordNoteAdded     EventType = "record_note_added"
	EventRecordDeleted       EventType = "record_deleted"
	EventRecordsPurged       EventType = "records_purged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Kind      domain.RecordKind `json:"kind"`
	RecordID  string            `json:"record_id,omitempty"`
	Actor     string            `json:"actor"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   interface{}       `json:"payload"`
}

// RecordCreatedPayload payload.
type RecordCreatedPayload struct {
	DisplayNumber string        `json:"display_number"`
	Status        domain.Status `json:"status"`
	CustomerName  string        `json:"customer_name"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	DisplayNumber string        `json:"display_number"`
	OldStatus     domain.Status `json:"old_status"`
	NewStatus     domain.Status `json:"new_status"`
	Note          string        `json:"note,omitempty"`
}

// NoteAddedPayload payload.
type NoteAddedPayload struct {
	DisplayNumber string `json:"display_number"`
	Note          string `json:"note"`
}

// RecordDeletedPayload payload.
type RecordDeletedPayload struct {
	DisplayNumber string `json:"display_number"`
}

// RecordsPurgedPayload payload.
type RecordsPurgedPayload struct {
	Count int64 `json:"count"`
}
