package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/depomarket/retail-service/internal/api/dto"
	"github.com/depomarket/retail-service/internal/auth"
	"github.com/depomarket/retail-service/internal/domain"
	"github.com/depomarket/retail-service/internal/service"
	apperrors "github.com/depomarket/retail-service/pkg/errorutil"
)

// kindSlugs maps URL path segments to record kinds.
var kindSlugs = map[string]domain.RecordKind{
	"orders":           domain.KindOrder,
	"sell-requests":    domain.KindSellRequest,
	"service-requests": domain.KindServiceRequest,
	"moving-requests":  domain.KindMovingRequest,
}

// AdminRecordsHandler manages the dashboard record endpoints.
type AdminRecordsHandler struct {
	service *service.RecordService
}

// NewAdminRecordsHandler constructs handler.
func NewAdminRecordsHandler(recordService *service.RecordService) *AdminRecordsHandler {
	return &AdminRecordsHandler{service: recordService}
}

func kindFromParams(c *fiber.Ctx) (domain.RecordKind, error) {
	kind, ok := kindSlugs[c.Params("kind")]
	if !ok {
		return "", apperrors.NewNotFound("record kind", map[string]any{"kind": c.Params("kind")})
	}
	return kind, nil
}

// List GET /admin/records/:kind — filtered page plus per-state counts.
func (h *AdminRecordsHandler) List(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.UserContext(), kind, parseListQuery(c))
	if err != nil {
		return err
	}

	items := make([]dto.RecordSummary, 0, len(result.Records))
	for i := range result.Records {
		items = append(items, recordSummary(&result.Records[i]))
	}
	return c.JSON(fiber.Map{
		"data":   items,
		"counts": result.Counts,
		"total":  result.Total,
	})
}

// Get GET /admin/records/:kind/:id.
func (h *AdminRecordsHandler) Get(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return err
	}
	rec, err := h.service.GetRecord(c.UserContext(), kind, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recordDetail(rec)})
}

// UpdateStatus PATCH /admin/records/:kind/:id/status.
func (h *AdminRecordsHandler) UpdateStatus(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return err
	}
	principal, _ := auth.PrincipalFromContext(c)
	var actor *domain.Admin
	if principal != nil {
		actor = principal.Admin
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Status) == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	rec, err := h.service.Transition(c.UserContext(), actor, kind, c.Params("id"), domain.Status(req.Status), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recordDetail(rec)})
}

// AddNote POST /admin/records/:kind/:id/notes.
func (h *AdminRecordsHandler) AddNote(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return err
	}
	principal, _ := auth.PrincipalFromContext(c)
	var actor *domain.Admin
	if principal != nil {
		actor = principal.Admin
	}

	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	rec, err := h.service.AddNote(c.UserContext(), actor, kind, c.Params("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recordDetail(rec)})
}

// Delete DELETE /admin/records/:kind/:id.
func (h *AdminRecordsHandler) Delete(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), kind, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Purge DELETE /admin/records/:kind — removes every record of the kind.
func (h *AdminRecordsHandler) Purge(c *fiber.Ctx) error {
	kind, err := kindFromParams(c)
	if err != nil {
		return err
	}
	count, err := h.service.PurgeKind(c.UserContext(), kind)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": count}})
}

// StatusSummary GET /admin/reports/status-summary.
func (h *AdminRecordsHandler) StatusSummary(c *fiber.Ctx) error {
	summary, err := h.service.StatusSummary(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

func parseListQuery(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{
		State: c.Query("status", "all"),
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
