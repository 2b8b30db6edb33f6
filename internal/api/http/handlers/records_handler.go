package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/depomarket/retail-service/internal/api/dto"
	"github.com/depomarket/retail-service/internal/domain"
	"github.com/depomarket/retail-service/internal/lifecycle"
	"github.com/depomarket/retail-service/internal/service"
	apperrors "github.com/depomarket/retail-service/pkg/errorutil"
)

// RecordsHandler manages customer-facing endpoints: submissions and the
// tracking page.
type RecordsHandler struct {
	service *service.RecordService
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(recordService *service.RecordService) *RecordsHandler {
	return &RecordsHandler{service: recordService}
}

// submitKind returns a POST handler creating a record of the fixed kind.
func (h *RecordsHandler) submitKind(kind domain.RecordKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.SubmissionRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		rec, err := h.service.Submit(c.UserContext(), kind, service.SubmissionInput{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Payload:       req.Details,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": recordDetail(rec)})
	}
}

// SubmitOrder POST /api/orders.
func (h *RecordsHandler) SubmitOrder(c *fiber.Ctx) error {
	return h.submitKind(domain.KindOrder)(c)
}

// SubmitSellRequest POST /api/sell-requests.
func (h *RecordsHandler) SubmitSellRequest(c *fiber.Ctx) error {
	return h.submitKind(domain.KindSellRequest)(c)
}

// SubmitServiceRequest POST /api/service-requests.
func (h *RecordsHandler) SubmitServiceRequest(c *fiber.Ctx) error {
	return h.submitKind(domain.KindServiceRequest)(c)
}

// SubmitMovingRequest POST /api/moving-requests.
func (h *RecordsHandler) SubmitMovingRequest(c *fiber.Ctx) error {
	return h.submitKind(domain.KindMovingRequest)(c)
}

// Track GET /api/track/:number — public status view by display number.
func (h *RecordsHandler) Track(c *fiber.Ctx) error {
	rec, err := h.service.TrackByDisplayNumber(c.UserContext(), c.Params("number"))
	if err != nil {
		return err
	}

	resp := dto.TrackResponse{
		Kind:          rec.Kind,
		DisplayNumber: rec.DisplayNumber,
		Status:        rec.Status,
		LatestNote:    lifecycle.LatestMeaningfulNote(rec),
		UpdatedAt:     rec.UpdatedAt,
		History:       historyResponses(rec.StatusHistory),
	}
	if rec.Kind == domain.KindOrder {
		idx := lifecycle.CurrentStageIndex(rec)
		resp.StageIndex = &idx
		resp.Stages = domain.OrderStages()
	}
	return c.JSON(fiber.Map{"data": resp})
}

func recordSummary(rec *domain.Record) dto.RecordSummary {
	return dto.RecordSummary{
		ID:            rec.ID,
		Kind:          rec.Kind,
		DisplayNumber: rec.DisplayNumber,
		Status:        rec.Status,
		CustomerName:  rec.CustomerName,
		CustomerEmail: rec.CustomerEmail,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func recordDetail(rec *domain.Record) dto.RecordDetailResponse {
	resp := dto.RecordDetailResponse{
		ID:            rec.ID,
		Kind:          rec.Kind,
		DisplayNumber: rec.DisplayNumber,
		Status:        rec.Status,
		CustomerName:  rec.CustomerName,
		CustomerEmail: rec.CustomerEmail,
		CustomerPhone: rec.CustomerPhone,
		Details:       rec.Payload,
		Version:       rec.Version,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		History:       historyResponses(rec.StatusHistory),
		LatestNote:    lifecycle.LatestMeaningfulNote(rec),
	}
	if rec.Kind == domain.KindOrder {
		canCancel := lifecycle.CanCancel(rec)
		idx := lifecycle.CurrentStageIndex(rec)
		resp.CanCancel = &canCancel
		resp.StageIndex = &idx
	}
	return resp
}

func historyResponses(entries []domain.HistoryEntry) []dto.HistoryEntryResponse {
	resp := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.HistoryEntryResponse{
			ID:             entry.ID,
			PreviousStatus: entry.PreviousStatus,
			NewStatus:      entry.NewStatus,
			Note:           entry.Note,
			ChangedBy:      entry.ChangedBy,
			ChangedAt:      entry.ChangedAt,
		})
	}
	return resp
}
