package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/depomarket/retail-service/internal/api/http"
	"github.com/depomarket/retail-service/internal/api/http/handlers"
	"github.com/depomarket/retail-service/internal/domain"
	"github.com/depomarket/retail-service/internal/observability"
	"github.com/depomarket/retail-service/internal/repository"
	"github.com/depomarket/retail-service/internal/service"
)

type memoryRecordRepo struct {
	records   map[string]*domain.Record
	histories map[string][]domain.HistoryEntry
	seq       int
}

func newMemoryRecordRepo() *memoryRecordRepo {
	return &memoryRecordRepo{records: map[string]*domain.Record{}, histories: map[string][]domain.HistoryEntry{}}
}

func (m *memoryRecordRepo) Create(_ context.Context, rec *domain.Record) error {
	m.seq++
	rec.ID = fmt.Sprintf("rec-%d", m.seq)
	rec.Version = 1
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if len(rec.StatusHistory) > 0 {
		rec.StatusHistory[0].RecordID = rec.ID
		rec.StatusHistory[0].ChangedAt = now
	}
	stored := *rec
	m.records[rec.ID] = &stored
	m.histories[rec.ID] = append([]domain.HistoryEntry(nil), rec.StatusHistory...)
	return nil
}

func (m *memoryRecordRepo) GetByID(_ context.Context, id string) (*domain.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *rec
	return &copied, nil
}

func (m *memoryRecordRepo) GetByDisplayNumber(_ context.Context, number string) (*domain.Record, error) {
	for _, rec := range m.records {
		if rec.DisplayNumber == number {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryRecordRepo) ListByKind(_ context.Context, kind domain.RecordKind, _ repository.RecordFilter) ([]domain.Record, error) {
	var out []domain.Record
	for _, rec := range m.records {
		if rec.Kind == kind {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memoryRecordRepo) SaveTransition(_ context.Context, rec *domain.Record, entry *domain.HistoryEntry) error {
	stored, ok := m.records[rec.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = rec.Status
	stored.UpdatedAt = rec.UpdatedAt
	stored.Version++
	rec.Version++
	m.histories[rec.ID] = append(m.histories[rec.ID], *entry)
	return nil
}

func (m *memoryRecordRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.records[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.records, id)
	delete(m.histories, id)
	return nil
}

func (m *memoryRecordRepo) DeleteAllByKind(_ context.Context, kind domain.RecordKind) (int64, error) {
	var count int64
	for id, rec := range m.records {
		if rec.Kind == kind {
			delete(m.records, id)
			delete(m.histories, id)
			count++
		}
	}
	return count, nil
}

type memoryHistoryRepo struct {
	repo *memoryRecordRepo
}

func (m *memoryHistoryRepo) ListByRecord(_ context.Context, recordID string) ([]domain.HistoryEntry, error) {
	return append([]domain.HistoryEntry(nil), m.repo.histories[recordID]...), nil
}

func newTestApp() (*fiber.App, *memoryRecordRepo) {
	repo := newMemoryRecordRepo()
	svc := service.NewRecordService(service.RecordDependencies{
		RecordRepo:  repo,
		HistoryRepo: &memoryHistoryRepo{repo: repo},
	})
	recordsHandler := handlers.NewRecordsHandler(svc)
	adminHandler := handlers.NewAdminRecordsHandler(svc)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Post("/api/orders", recordsHandler.SubmitOrder)
	app.Get("/api/track/:number", recordsHandler.Track)
	app.Get("/admin/records/:kind", adminHandler.List)
	app.Patch("/admin/records/:kind/:id/status", adminHandler.UpdateStatus)
	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && resp.StatusCode != http.StatusNoContent {
		t.Fatalf("decode response: %v", err)
	}
	return resp, decoded
}

func TestSubmitOrderAndTrack(t *testing.T) {
	app, _ := newTestApp()

	resp, body := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"customer_name":  "Ali Demir",
		"customer_email": "ali@example.com",
		"details":        map[string]any{"items": []string{"vintage lamba"}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	data := body["data"].(map[string]any)
	number := data["display_number"].(string)
	if data["status"] != "payment_pending" {
		t.Fatalf("status = %v", data["status"])
	}

	resp, body = doJSON(t, app, http.MethodGet, "/api/track/"+number, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("track status = %d", resp.StatusCode)
	}
	tracked := body["data"].(map[string]any)
	if tracked["stage_index"].(float64) != 0 {
		t.Fatalf("stage_index = %v, want 0", tracked["stage_index"])
	}
	if len(tracked["history"].([]any)) != 1 {
		t.Fatal("expected one history entry on a fresh order")
	}
}

func TestUpdateStatusRejectsIllegalTransitionWith422(t *testing.T) {
	app, repo := newTestApp()

	_, body := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{"customer_name": "Ali"})
	id := body["data"].(map[string]any)["id"].(string)

	resp, errBody := doJSON(t, app, http.MethodPatch, "/admin/records/orders/"+id+"/status", map[string]any{
		"status": "delivered",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	errObj := errBody["error"].(map[string]any)
	if errObj["code"] != "INVALID_TRANSITION" {
		t.Fatalf("code = %v", errObj["code"])
	}
	if repo.records[id].Status != domain.OrderPaymentPending {
		t.Fatalf("record mutated on rejected transition: %s", repo.records[id].Status)
	}
}

func TestListReturnsCountsAndFilter(t *testing.T) {
	app, _ := newTestApp()

	for i := 0; i < 3; i++ {
		doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{"customer_name": "Ali"})
	}

	resp, body := doJSON(t, app, http.MethodGet, "/admin/records/orders?status=payment_pending", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	counts := body["counts"].(map[string]any)
	if counts["all"].(float64) != 3 {
		t.Fatalf("all = %v, want 3", counts["all"])
	}
	if len(body["data"].([]any)) != 3 {
		t.Fatalf("data = %d rows, want 3", len(body["data"].([]any)))
	}

	resp, _ = doJSON(t, app, http.MethodGet, "/admin/records/furniture", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown kind status = %d, want 404", resp.StatusCode)
	}
}
