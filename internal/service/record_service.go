package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/depomarket/retail-service/internal/domain"
	"github.com/depomarket/retail-service/internal/events"
	"github.com/depomarket/retail-service/internal/lifecycle"
	"github.com/depomarket/retail-service/internal/repository"
	apperrors "github.com/depomarket/retail-service/pkg/errorutil"
)

// Default notes written when the caller supplies none. These are the
// boilerplate strings lifecycle.LatestMeaningfulNote filters out.
const (
	noteRecordCreated = "Kayıt oluşturuldu"
	noteOrderCreated  = "Sipariş oluşturuldu"
	noteStatusUpdated = "Durum güncellendi"
)

// RecordService coordinates record workflows: customer submissions, admin
// status transitions, notes, listings with fresh projections, deletion.
type RecordService struct {
	records    repository.RecordRepository
	history    repository.HistoryRepository
	dispatcher events.Dispatcher
}

// RecordDependencies bundles repositories for the record service.
type RecordDependencies struct {
	RecordRepo  repository.RecordRepository
	HistoryRepo repository.HistoryRepository
	Dispatcher  events.Dispatcher
}

// SubmissionInput describes a customer-facing submission.
type SubmissionInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Payload       map[string]any
}

// ListFilter describes admin listing parameters. State is a status literal
// of the kind or "all".
type ListFilter struct {
	State       string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// ListResult carries one page of records plus the projections every admin
// surface renders: per-state counts recomputed over the full snapshot.
type ListResult struct {
	Records []domain.Record
	Counts  map[string]int
	Total   int
}

// NewRecordService constructs the service.
func NewRecordService(deps RecordDependencies) *RecordService {
	return &RecordService{
		records:    deps.RecordRepo,
		history:    deps.HistoryRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Submit creates a record of the given kind in its initial status with the
// first audit entry.
func (s *RecordService) Submit(ctx context.Context, kind domain.RecordKind, input SubmissionInput) (*domain.Record, error) {
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("unknown record kind", map[string]any{"kind": string(kind)})
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, apperrors.NewValidationError("customer name required", nil)
	}

	note := noteRecordCreated
	if kind == domain.KindOrder {
		note = noteOrderCreated
	}

	rec := &domain.Record{
		Kind:          kind,
		DisplayNumber: generateDisplayNumber(kind),
		Status:        domain.InitialStatus(kind),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Payload:       input.Payload,
	}
	if rec.Payload == nil {
		rec.Payload = map[string]any{}
	}
	rec.StatusHistory = []domain.HistoryEntry{{
		NewStatus: rec.Status,
		Note:      note,
		ChangedBy: domain.ActorSystem,
	}}

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventRecordCreated,
		Kind:     rec.Kind,
		RecordID: rec.ID,
		Actor:    domain.ActorSystem,
		Payload: events.RecordCreatedPayload{
			DisplayNumber: rec.DisplayNumber,
			Status:        rec.Status,
			CustomerName:  rec.CustomerName,
		},
	})
	return rec, nil
}

// GetRecord loads one record of the kind with its full audit trail.
func (s *RecordService) GetRecord(ctx context.Context, kind domain.RecordKind, id string) (*domain.Record, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Kind != kind {
		return nil, apperrors.NewNotFound("record", map[string]any{"id": id, "kind": string(kind)})
	}
	return s.withHistory(ctx, rec)
}

// TrackByDisplayNumber resolves a business number for the public tracking
// page. The optional leading "#" customers paste in is tolerated.
func (s *RecordService) TrackByDisplayNumber(ctx context.Context, number string) (*domain.Record, error) {
	number = strings.TrimPrefix(strings.TrimSpace(number), "#")
	if number == "" {
		return nil, apperrors.NewValidationError("display number required", nil)
	}
	rec, err := s.records.GetByDisplayNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.withHistory(ctx, rec)
}

// List returns one page of records of the kind filtered by state, plus
// per-state counts over the full snapshot. Counts are recomputed on every
// call.
func (s *RecordService) List(ctx context.Context, kind domain.RecordKind, filter ListFilter) (*ListResult, error) {
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("unknown record kind", map[string]any{"kind": string(kind)})
	}
	state := filter.State
	if state == "" {
		state = lifecycle.StateAll
	}
	if state != lifecycle.StateAll && !domain.ValidStatus(kind, domain.Status(state)) {
		return nil, apperrors.NewValidationError("unknown status for kind", map[string]any{"kind": string(kind), "status": state})
	}

	// One snapshot feeds both the counts and the filtered page so the two
	// can never disagree.
	snapshot, err := s.records.ListByKind(ctx, kind, repository.RecordFilter{
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       snapshotLimit,
	})
	if err != nil {
		return nil, err
	}

	counts := lifecycle.ProjectCounts(kind, snapshot)
	filtered := lifecycle.FilterByState(snapshot, state)
	total := len(filtered)

	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return &ListResult{
		Records: filtered[offset:end],
		Counts:  counts,
		Total:   total,
	}, nil
}

// snapshotLimit caps how many records one projection scan loads.
const snapshotLimit = 10000

// Transition applies a validated status change and persists status plus the
// audit row atomically. The record is never partially mutated: validation
// happens in memory first, and a lost write race surfaces as a conflict.
func (s *RecordService) Transition(ctx context.Context, actor *domain.Admin, kind domain.RecordKind, id string, newStatus domain.Status, note string) (*domain.Record, error) {
	rec, err := s.GetRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, actor, rec, newStatus, note)
}

func (s *RecordService) applyTransition(ctx context.Context, actor *domain.Admin, rec *domain.Record, newStatus domain.Status, note string) (*domain.Record, error) {
	if strings.TrimSpace(note) == "" {
		note = noteStatusUpdated
	}
	oldStatus := rec.Status
	entry, err := lifecycle.Transition(rec, newStatus, note, actorName(actor), time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.records.SaveTransition(ctx, rec, entry); err != nil {
		if err == repository.ErrVersionConflict {
			return nil, apperrors.NewConflict("record was modified concurrently", map[string]any{"id": rec.ID})
		}
		return nil, err
	}

	eventType := events.EventRecordStatusChanged
	var payload interface{} = events.StatusChangedPayload{
		DisplayNumber: rec.DisplayNumber,
		OldStatus:     oldStatus,
		NewStatus:     rec.Status,
		Note:          note,
	}
	if oldStatus == rec.Status {
		eventType = events.EventRecordNoteAdded
		payload = events.NoteAddedPayload{DisplayNumber: rec.DisplayNumber, Note: note}
	}
	s.publishEvent(ctx, events.Event{
		Type:     eventType,
		Kind:     rec.Kind,
		RecordID: rec.ID,
		Actor:    actorName(actor),
		Payload:  payload,
	})
	return rec, nil
}

// AddNote appends a note-only audit entry without changing status. The
// record is loaded once; its current status is reused for the no-op
// transition so the note lands on the state the caller saw.
func (s *RecordService) AddNote(ctx context.Context, actor *domain.Admin, kind domain.RecordKind, id, note string) (*domain.Record, error) {
	if strings.TrimSpace(note) == "" {
		return nil, apperrors.NewValidationError("note required", nil)
	}
	rec, err := s.GetRecord(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, actor, rec, rec.Status, note)
}

// Delete removes one record and, through the schema, its entire history.
// Deletion is unconditional: it is an administrative removal, not a state
// transition.
func (s *RecordService) Delete(ctx context.Context, kind domain.RecordKind, id string) error {
	rec, err := s.GetRecord(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.records.Delete(ctx, rec.ID); err != nil {
		return err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventRecordDeleted,
		Kind:     rec.Kind,
		RecordID: rec.ID,
		Actor:    domain.ActorSystem,
		Payload:  events.RecordDeletedPayload{DisplayNumber: rec.DisplayNumber},
	})
	return nil
}

// PurgeKind removes every record of the kind and returns the count.
func (s *RecordService) PurgeKind(ctx context.Context, kind domain.RecordKind) (int64, error) {
	if !kind.Valid() {
		return 0, apperrors.NewValidationError("unknown record kind", map[string]any{"kind": string(kind)})
	}
	count, err := s.records.DeleteAllByKind(ctx, kind)
	if err != nil {
		return 0, err
	}
	s.publishEvent(ctx, events.Event{
		Type:    events.EventRecordsPurged,
		Kind:    kind,
		Actor:   domain.ActorSystem,
		Payload: events.RecordsPurgedPayload{Count: count},
	})
	return count, nil
}

// StatusSummary reports per-state counts for every kind, freshly computed.
func (s *RecordService) StatusSummary(ctx context.Context) (map[domain.RecordKind]map[string]int, error) {
	summary := make(map[domain.RecordKind]map[string]int, len(domain.Kinds()))
	for _, kind := range domain.Kinds() {
		snapshot, err := s.records.ListByKind(ctx, kind, repository.RecordFilter{Limit: snapshotLimit})
		if err != nil {
			return nil, err
		}
		summary[kind] = lifecycle.ProjectCounts(kind, snapshot)
	}
	return summary, nil
}

func (s *RecordService) withHistory(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	history, err := s.history.ListByRecord(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	rec.StatusHistory = history
	return rec, nil
}

func (s *RecordService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorName(actor *domain.Admin) string {
	if actor == nil {
		return domain.ActorSystem
	}
	if actor.Name != "" {
		return actor.Name
	}
	return actor.ID
}

func generateDisplayNumber(kind domain.RecordKind) string {
	return kind.DisplayPrefix() + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
