package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/use-of-force/internal/domain"
	"github.com/heartmarshall/use-of-force/internal/service/edit"
	"github.com/heartmarshall/use-of-force/pkg/ctxutil"
)

//go:generate moq -out edit_service_mock_test.go -pkg rest . editService

// editService defines the minimal interface needed by ReportHandler.
type editService interface {
	PreviewEdit(ctx context.Context, reportID int64, section domain.Section, payload map[string]any, lc edit.LookupContext) (*edit.Preview, error)
	CommitEdit(ctx context.Context, input edit.CommitEditInput) (*domain.ReportEdit, error)
	ReassignOwner(ctx context.Context, input edit.ReassignOwnerInput) (*domain.ReportEdit, error)
	BuildEditHistory(ctx context.Context, reportID int64, lc edit.LookupContext) ([]edit.HistoryRow, error)
}

// ReportHandler serves the report edit REST endpoints.
type ReportHandler struct {
	svc editService
	log *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc editService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "report")}
}

// Register mounts the handler's routes on mux, each wrapped by protect.
func (h *ReportHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.Handle("POST /api/reports/{reportId}/sections/{section}/preview", protect(http.HandlerFunc(h.Preview)))
	mux.Handle("POST /api/reports/{reportId}/sections/{section}/edit", protect(http.HandlerFunc(h.Edit)))
	mux.Handle("POST /api/reports/{reportId}/owner", protect(http.HandlerFunc(h.ReassignOwner)))
	mux.Handle("GET /api/reports/{reportId}/edit-history", protect(http.HandlerFunc(h.EditHistory)))
}

type justificationRequest struct {
	Reason               string `json:"reason"`
	ReasonText           string `json:"reasonText"`
	ReasonAdditionalInfo string `json:"reasonAdditionalInfo"`
}

func (j justificationRequest) toInput() edit.Justification {
	return edit.Justification{
		Reason:               domain.EditReason(j.Reason),
		ReasonText:           j.ReasonText,
		ReasonAdditionalInfo: j.ReasonAdditionalInfo,
	}
}

type sectionEditRequest struct {
	Payload map[string]any `json:"payload"`
	justificationRequest
}

type ownerRequest struct {
	Username     string `json:"username"`
	ReporterName string `json:"reporterName"`
	justificationRequest
}

type questionResponse struct {
	Key        string `json:"key"`
	Question   string `json:"question"`
	OldValue   string `json:"oldValue"`
	NewValue   string `json:"newValue"`
	HasChanged bool   `json:"hasChanged"`
	Degraded   bool   `json:"degraded,omitempty"`
}

type previewResponse struct {
	HasChanges bool               `json:"hasChanges"`
	Changes    edit.ChangeMap     `json:"changes"`
	Questions  []questionResponse `json:"questions"`
}

type reportEditResponse struct {
	ID                   string          `json:"id"`
	ReportID             int64           `json:"reportId"`
	Section              string          `json:"section"`
	EditDate             time.Time       `json:"editDate"`
	EditorUserID         string          `json:"editorUserId"`
	EditorName           string          `json:"editorName"`
	Changes              json.RawMessage `json:"changes"`
	Reason               string          `json:"reason"`
	ReasonText           string          `json:"reasonText,omitempty"`
	ReasonAdditionalInfo string          `json:"reasonAdditionalInfo,omitempty"`
	ReportOwnerChanged   bool            `json:"reportOwnerChanged"`
}

type historyRowResponse struct {
	EditID             string    `json:"editId"`
	Section            string    `json:"section"`
	EditDate           time.Time `json:"editDate"`
	EditDateDisplay    string    `json:"editDateDisplay"`
	EditorName         string    `json:"editorName"`
	WhatChanged        []string  `json:"whatChanged"`
	ChangedFrom        []string  `json:"changedFrom"`
	ChangedTo          []string  `json:"changedTo"`
	Reason             string    `json:"reason"`
	AdditionalInfo     string    `json:"additionalInfo,omitempty"`
	ReportOwnerChanged bool      `json:"reportOwnerChanged"`
	Degraded           bool      `json:"degraded,omitempty"`
}

// Preview handles POST /api/reports/{reportId}/sections/{section}/preview.
// It compares the payload with the stored report and renders the
// confirmation view without persisting anything.
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	reportID, ok := reportIDParam(w, r)
	if !ok {
		return
	}

	var req sectionEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preview, err := h.svc.PreviewEdit(r.Context(), reportID, domain.Section(r.PathValue("section")), req.Payload, lookupContext(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	questions := make([]questionResponse, len(preview.Questions))
	for i, q := range preview.Questions {
		questions[i] = questionResponse{
			Key:        q.Key,
			Question:   q.Question,
			OldValue:   q.OldValue,
			NewValue:   q.NewValue,
			HasChanged: q.HasChanged,
			Degraded:   q.Degraded,
		}
	}

	writeJSON(w, http.StatusOK, previewResponse{
		HasChanges: preview.Changes.HasChanges(),
		Changes:    preview.Changes.OnlyChanged(),
		Questions:  questions,
	})
}

// Edit handles POST /api/reports/{reportId}/sections/{section}/edit.
func (h *ReportHandler) Edit(w http.ResponseWriter, r *http.Request) {
	reportID, ok := reportIDParam(w, r)
	if !ok {
		return
	}

	var req sectionEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.svc.CommitEdit(r.Context(), edit.CommitEditInput{
		ReportID:      reportID,
		Section:       domain.Section(r.PathValue("section")),
		Payload:       req.Payload,
		Justification: req.toInput(),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReportEditResponse(record))
}

// ReassignOwner handles POST /api/reports/{reportId}/owner.
func (h *ReportHandler) ReassignOwner(w http.ResponseWriter, r *http.Request) {
	reportID, ok := reportIDParam(w, r)
	if !ok {
		return
	}

	var req ownerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.svc.ReassignOwner(r.Context(), edit.ReassignOwnerInput{
		ReportID:      reportID,
		Username:      req.Username,
		ReporterName:  req.ReporterName,
		Justification: req.toInput(),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toReportEditResponse(record))
}

// EditHistory handles GET /api/reports/{reportId}/edit-history.
func (h *ReportHandler) EditHistory(w http.ResponseWriter, r *http.Request) {
	reportID, ok := reportIDParam(w, r)
	if !ok {
		return
	}

	rows, err := h.svc.BuildEditHistory(r.Context(), reportID, lookupContext(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]historyRowResponse, len(rows))
	for i, row := range rows {
		resp[i] = historyRowResponse{
			EditID:             row.EditID.String(),
			Section:            row.Section.String(),
			EditDate:           row.EditDate,
			EditDateDisplay:    row.EditDateDisplay,
			EditorName:         row.EditorName,
			WhatChanged:        row.WhatChanged,
			ChangedFrom:        row.ChangedFrom,
			ChangedTo:          row.ChangedTo,
			Reason:             row.Reason,
			AdditionalInfo:     row.AdditionalInfo,
			ReportOwnerChanged: row.ReportOwnerChanged,
			Degraded:           row.Degraded,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse(verr))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnknownSection):
		writeError(w, http.StatusNotFound, "unknown report section")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		h.log.ErrorContext(r.Context(), "internal error",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationResponse(verr *domain.ValidationError) map[string]any {
	fields := make([]fieldErrorResponse, len(verr.Errors))
	for i, fe := range verr.Errors {
		fields[i] = fieldErrorResponse{Field: fe.Field, Message: fe.Message}
	}
	return map[string]any{"error": "validation error", "fields": fields}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func reportIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("reportId"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid report id")
		return 0, false
	}
	return id, true
}

func lookupContext(r *http.Request) edit.LookupContext {
	user, _ := ctxutil.UserFromCtx(r.Context())
	return edit.LookupContext{Username: user.Username}
}

func toReportEditResponse(e *domain.ReportEdit) reportEditResponse {
	return reportEditResponse{
		ID:                   e.ID.String(),
		ReportID:             e.ReportID,
		Section:              e.Section.String(),
		EditDate:             e.EditDate,
		EditorUserID:         e.EditorUserID,
		EditorName:           e.EditorName,
		Changes:              e.Changes,
		Reason:               string(e.Reason),
		ReasonText:           e.ReasonText,
		ReasonAdditionalInfo: e.ReasonAdditionalInfo,
		ReportOwnerChanged:   e.ReportOwnerChanged,
	}
}
