package dto

import (
	"time"

	"github.com/depomarket/retail-service/internal/domain"
)

// SubmissionRequest is the customer-facing creation payload, shared by all
// record kinds; kind-specific fields travel in Details untouched.
type SubmissionRequest struct {
	CustomerName  string         `json:"customer_name"`
	CustomerEmail string         `json:"customer_email"`
	CustomerPhone string         `json:"customer_phone"`
	Details       map[string]any `json:"details"`
}

// RecordSummary is a listing row.
type RecordSummary struct {
	ID            string            `json:"id"`
	Kind          domain.RecordKind `json:"kind"`
	DisplayNumber string            `json:"display_number"`
	Status        domain.Status     `json:"status"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// HistoryEntryResponse is one audit-trail row.
type HistoryEntryResponse struct {
	ID             string         `json:"id"`
	PreviousStatus *domain.Status `json:"previous_status"`
	NewStatus      domain.Status  `json:"new_status"`
	Note           string         `json:"note,omitempty"`
	ChangedBy      string         `json:"changed_by"`
	ChangedAt      time.Time      `json:"changed_at"`
}

// RecordDetailResponse provides the full record with its audit trail.
type RecordDetailResponse struct {
	ID            string                 `json:"id"`
	Kind          domain.RecordKind      `json:"kind"`
	DisplayNumber string                 `json:"display_number"`
	Status        domain.Status          `json:"status"`
	CustomerName  string                 `json:"customer_name"`
	CustomerEmail string                 `json:"customer_email"`
	CustomerPhone string                 `json:"customer_phone"`
	Details       map[string]any         `json:"details"`
	Version       int64                  `json:"version"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	History       []HistoryEntryResponse `json:"history"`
	LatestNote    string                 `json:"latest_note,omitempty"`
	CanCancel     *bool                  `json:"can_cancel,omitempty"`
	StageIndex    *int                   `json:"stage_index,omitempty"`
}

// TrackResponse is the public tracking view: enough to render a status
// badge, the order progress bar and the latest human note.
type TrackResponse struct {
	Kind          domain.RecordKind      `json:"kind"`
	DisplayNumber string                 `json:"display_number"`
	Status        domain.Status          `json:"status"`
	StageIndex    *int                   `json:"stage_index,omitempty"`
	Stages        []domain.Status        `json:"stages,omitempty"`
	LatestNote    string                 `json:"latest_note,omitempty"`
	UpdatedAt     time.Time              `json:"updated_at"`
	History       []HistoryEntryResponse `json:"history"`
}

// UpdateStatusRequest is the admin status-change payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// NoteRequest appends a note without changing status.
type NoteRequest struct {
	Note string `json:"note"`
}
