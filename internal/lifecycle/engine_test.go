package lifecycle

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/depomarket/retail-service/internal/domain"
)

func newRecord(kind domain.RecordKind) *domain.Record {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := &domain.Record{
		ID:        "rec-1",
		Kind:      kind,
		Status:    domain.InitialStatus(kind),
		CreatedAt: now,
		UpdatedAt: now,
	}
	rec.StatusHistory = []domain.HistoryEntry{{
		RecordID:  rec.ID,
		NewStatus: rec.Status,
		ChangedBy: domain.ActorSystem,
		ChangedAt: now,
	}}
	return rec
}

func mustTransition(t *testing.T, rec *domain.Record, next domain.Status) {
	t.Helper()
	if _, err := Transition(rec, next, "", "admin-1", time.Now()); err != nil {
		t.Fatalf("transition to %s: %v", next, err)
	}
}

func TestTransitionAppendsHistoryAndKeepsStatusInSync(t *testing.T) {
	rec := newRecord(domain.KindOrder)

	steps := []domain.Status{domain.OrderReceived, domain.OrderProcessing, domain.OrderInTransit, domain.OrderDelivered}
	for i, next := range steps {
		mustTransition(t, rec, next)
		if got, want := len(rec.StatusHistory), i+2; got != want {
			t.Fatalf("history length = %d, want %d", got, want)
		}
		last := rec.LastHistory()
		if last.NewStatus != rec.Status {
			t.Fatalf("last history entry %s diverged from status %s", last.NewStatus, rec.Status)
		}
		if last.PreviousStatus == nil {
			t.Fatal("appended entry missing previous status")
		}
	}
}

func TestTerminalLockLeavesRecordUnchanged(t *testing.T) {
	cases := []struct {
		kind     domain.RecordKind
		terminal domain.Status
		attempt  domain.Status
	}{
		{domain.KindOrder, domain.OrderDelivered, domain.OrderProcessing},
		{domain.KindOrder, domain.OrderCancelled, domain.OrderReceived},
		{domain.KindSellRequest, domain.SellRejected, domain.SellOfferSent},
		{domain.KindServiceRequest, domain.ServiceCompleted, domain.ServiceInProgress},
		{domain.KindMovingRequest, domain.MovingCompleted, domain.MovingReviewing},
	}
	for _, tc := range cases {
		rec := newRecord(tc.kind)
		rec.Status = tc.terminal

		before := *rec
		beforeHistory := append([]domain.HistoryEntry(nil), rec.StatusHistory...)

		_, err := Transition(rec, tc.attempt, "note", "admin-1", time.Now())
		var invalid *InvalidTransitionError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s from %s: expected InvalidTransitionError, got %v", tc.kind, tc.terminal, err)
		}
		if rec.Status != before.Status || rec.UpdatedAt != before.UpdatedAt {
			t.Fatalf("%s: record mutated on failed transition", tc.kind)
		}
		if !reflect.DeepEqual(rec.StatusHistory, beforeHistory) {
			t.Fatalf("%s: history mutated on failed transition", tc.kind)
		}
	}
}

func TestOrderCancelGuard(t *testing.T) {
	rec := newRecord(domain.KindOrder)
	mustTransition(t, rec, domain.OrderReceived)
	if !CanCancel(rec) {
		t.Fatal("expected cancellable before transit")
	}
	mustTransition(t, rec, domain.OrderProcessing)
	mustTransition(t, rec, domain.OrderInTransit)

	if CanCancel(rec) {
		t.Fatal("expected CanCancel false once in transit")
	}
	historyLen := len(rec.StatusHistory)
	if _, err := Transition(rec, domain.OrderCancelled, "", "admin-1", time.Now()); err == nil {
		t.Fatal("expected cancel after in_transit to fail")
	}
	if rec.Status != domain.OrderInTransit {
		t.Fatalf("status = %s, want in_transit", rec.Status)
	}
	if len(rec.StatusHistory) != historyLen {
		t.Fatalf("history length = %d, want %d", len(rec.StatusHistory), historyLen)
	}
}

func TestOrderCancelGuardSkippedEdge(t *testing.T) {
	rec := newRecord(domain.KindOrder)
	mustTransition(t, rec, domain.OrderReceived)
	if _, err := Transition(rec, domain.OrderInTransit, "", "admin-1", time.Now()); err == nil {
		t.Fatal("expected order_received -> in_transit to be rejected (not adjacent)")
	}
}

func TestNoOpTransitionAppendsNoteEntry(t *testing.T) {
	rec := newRecord(domain.KindSellRequest)
	entry, err := Transition(rec, rec.Status, "müşteri arandı", "admin-2", time.Now())
	if err != nil {
		t.Fatalf("no-op transition: %v", err)
	}
	if rec.Status != domain.SellReviewing {
		t.Fatalf("status changed on no-op: %s", rec.Status)
	}
	if len(rec.StatusHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(rec.StatusHistory))
	}
	if entry.PreviousStatus == nil || *entry.PreviousStatus != entry.NewStatus {
		t.Fatal("no-op entry should carry previous == new")
	}
}

func TestAppendNoteOnTerminalRecordFails(t *testing.T) {
	rec := newRecord(domain.KindMovingRequest)
	rec.Status = domain.MovingRejected
	if _, err := AppendNote(rec, "late note", "admin-1", time.Now()); err == nil {
		t.Fatal("expected note on terminal record to fail")
	}
}

func TestSellRequestRejectsSkippedStage(t *testing.T) {
	rec := newRecord(domain.KindSellRequest)
	mustTransition(t, rec, domain.SellOfferSent)

	// Strict adjacency: completed requires going through accepted.
	if _, err := Transition(rec, domain.SellCompleted, "", "admin-1", time.Now()); err == nil {
		t.Fatal("expected offer_sent -> completed to be rejected")
	}
	mustTransition(t, rec, domain.SellAccepted)
	mustTransition(t, rec, domain.SellCompleted)
	if len(rec.StatusHistory) != 4 {
		t.Fatalf("history length = %d, want 4", len(rec.StatusHistory))
	}
}

func TestUnknownStatusRejected(t *testing.T) {
	rec := newRecord(domain.KindServiceRequest)
	if _, err := Transition(rec, domain.Status("shipped"), "", "admin-1", time.Now()); err == nil {
		t.Fatal("expected status outside the kind's enum to be rejected")
	}
	// A status valid for another kind is still invalid here.
	if _, err := Transition(rec, domain.OrderInTransit, "", "admin-1", time.Now()); err == nil {
		t.Fatal("expected foreign-kind status to be rejected")
	}
}

func TestCurrentStageIndex(t *testing.T) {
	rec := newRecord(domain.KindOrder)
	if got := CurrentStageIndex(rec); got != 0 {
		t.Fatalf("stage = %d, want 0", got)
	}
	mustTransition(t, rec, domain.OrderReceived)
	mustTransition(t, rec, domain.OrderProcessing)
	if got := CurrentStageIndex(rec); got != 2 {
		t.Fatalf("stage = %d, want 2", got)
	}
	mustTransition(t, rec, domain.OrderCancelled)
	if got := CurrentStageIndex(rec); got != -1 {
		t.Fatalf("stage after cancel = %d, want -1", got)
	}

	other := newRecord(domain.KindSellRequest)
	if got := CurrentStageIndex(other); got != -1 {
		t.Fatalf("stage for non-order = %d, want -1", got)
	}
}
