// Package lifecycle owns the status state machine shared by every record
// kind: transition validation, the audit trail and the read-model
// projections rendered by the storefront and the admin dashboard. It holds
// no storage; callers persist the mutated record themselves.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/depomarket/retail-service/internal/domain"
)

// InvalidTransitionError reports an illegal status change. The record is
// left untouched whenever it is returned.
type InvalidTransitionError struct {
	Kind   domain.RecordKind
	From   domain.Status
	To     domain.Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition for %s: %s -> %s (%s)", e.Kind, e.From, e.To, e.Reason)
}

// Transition validates and applies a status change to rec in memory. On
// success the status is updated, one history entry is appended and
// UpdatedAt is bumped; the appended entry is returned so callers can
// persist status and history atomically. On failure rec is unchanged.
//
// A transition to the current status is legal on any non-terminal record
// and still appends an entry; that is how note-only updates keep their
// audit trail.
func Transition(rec *domain.Record, newStatus domain.Status, note, actor string, now time.Time) (*domain.HistoryEntry, error) {
	if err := validate(rec, newStatus); err != nil {
		return nil, err
	}

	previous := rec.Status
	entry := domain.HistoryEntry{
		RecordID:       rec.ID,
		PreviousStatus: &previous,
		NewStatus:      newStatus,
		Note:           note,
		ChangedBy:      actor,
		ChangedAt:      now,
	}

	rec.Status = newStatus
	rec.UpdatedAt = now
	rec.StatusHistory = append(rec.StatusHistory, entry)
	return rec.LastHistory(), nil
}

// AppendNote records a note without changing status. Fails on terminal
// records like any other transition.
func AppendNote(rec *domain.Record, note, actor string, now time.Time) (*domain.HistoryEntry, error) {
	return Transition(rec, rec.Status, note, actor, now)
}

func validate(rec *domain.Record, newStatus domain.Status) error {
	if !domain.ValidStatus(rec.Kind, newStatus) {
		return &InvalidTransitionError{Kind: rec.Kind, From: rec.Status, To: newStatus, Reason: "unknown status"}
	}
	if domain.IsTerminal(rec.Kind, rec.Status) {
		return &InvalidTransitionError{Kind: rec.Kind, From: rec.Status, To: newStatus, Reason: "record is in a terminal state"}
	}
	if newStatus == rec.Status {
		return nil
	}
	for _, candidate := range domain.LegalNext(rec.Kind, rec.Status) {
		if candidate == newStatus {
			return nil
		}
	}
	return &InvalidTransitionError{Kind: rec.Kind, From: rec.Status, To: newStatus, Reason: "no such edge"}
}

// IsTerminal reports whether status is terminal for the kind.
func IsTerminal(kind domain.RecordKind, status domain.Status) bool {
	return domain.IsTerminal(kind, status)
}

// CanCancel reports whether an order may still be cancelled. False once the
// order is in transit, delivered or already cancelled.
func CanCancel(rec *domain.Record) bool {
	if rec.Kind != domain.KindOrder {
		return false
	}
	switch rec.Status {
	case domain.OrderInTransit, domain.OrderDelivered, domain.OrderCancelled:
		return false
	}
	return true
}

// CurrentStageIndex returns the position of an order's status within the
// non-terminal progression rendered as a progress timeline, or -1 for a
// cancelled order.
func CurrentStageIndex(rec *domain.Record) int {
	if rec.Kind != domain.KindOrder || rec.Status == domain.OrderCancelled {
		return -1
	}
	for i, stage := range domain.OrderStages() {
		if stage == rec.Status {
			return i
		}
	}
	return -1
}
