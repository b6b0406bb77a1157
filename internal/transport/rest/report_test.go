package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/use-of-force/internal/domain"
	"github.com/heartmarshall/use-of-force/internal/service/edit"
	"github.com/heartmarshall/use-of-force/pkg/ctxutil"
)

func newTestMux(svc editService) *http.ServeMux {
	mux := http.NewServeMux()
	h := NewReportHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.Register(mux, func(next http.Handler) http.Handler { return next })
	return mux
}

func doRequest(t *testing.T, mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(ctxutil.WithUser(req.Context(), ctxutil.User{Username: "CO_USER", DisplayName: "Casey Coordinator"}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestReportHandler_Preview(t *testing.T) {
	t.Parallel()

	report := &domain.Report{
		ID: 7,
		Form: domain.Form{
			domain.SectionEvidence: {"baggedEvidence": false, "photographsTaken": true, "cctvRecording": "NO"},
		},
	}
	svc := &editServiceMock{
		PreviewEditFunc: func(_ context.Context, _ int64, section domain.Section, payload map[string]any, _ edit.LookupContext) (*edit.Preview, error) {
			changes := edit.CompareSection(edit.NewRegistry(), section, report, payload)
			return &edit.Preview{
				Changes: changes,
				Questions: []edit.QuestionView{
					{Key: "baggedEvidence", Question: "Was any evidence bagged and tagged?", OldValue: "No", NewValue: "Yes", HasChanged: true},
				},
			}, nil
		},
	}

	rec := doRequest(t, newTestMux(svc), http.MethodPost, "/api/reports/7/sections/evidence/preview",
		`{"payload": {"baggedEvidence": true, "photographsTaken": true, "cctvRecording": "NO"}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		HasChanges bool                       `json:"hasChanges"`
		Changes    map[string]json.RawMessage `json:"changes"`
		Questions  []questionResponse         `json:"questions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.HasChanges)
	assert.Contains(t, resp.Changes, "baggedEvidence")
	assert.NotContains(t, resp.Changes, "photographsTaken", "unchanged answers are not listed")
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "Yes", resp.Questions[0].NewValue)

	calls := svc.PreviewEditCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(7), calls[0].ReportID)
	assert.Equal(t, domain.SectionEvidence, calls[0].Section)
	assert.Equal(t, "CO_USER", calls[0].Lc.Username)
}

func TestReportHandler_Edit(t *testing.T) {
	t.Parallel()

	editID := uuid.New()
	svc := &editServiceMock{
		CommitEditFunc: func(_ context.Context, input edit.CommitEditInput) (*domain.ReportEdit, error) {
			return &domain.ReportEdit{
				ID:           editID,
				ReportID:     input.ReportID,
				Section:      input.Section,
				EditDate:     time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
				EditorUserID: "CO_USER",
				EditorName:   "Casey Coordinator",
				Changes:      json.RawMessage(`{"cctvRecording":{"question":"Was any part of the incident captured on CCTV?","oldValue":"NO","newValue":"YES"}}`),
				Reason:       input.Reason,
				ReasonText:   input.ReasonText,
			}, nil
		},
	}

	rec := doRequest(t, newTestMux(svc), http.MethodPost, "/api/reports/7/sections/evidence/edit",
		`{"payload": {"cctvRecording": "YES"}, "reason": "anotherReasonForEdit", "reasonText": "CCTV found later"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp reportEditResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, editID.String(), resp.ID)
	assert.Equal(t, "evidence", resp.Section)
	assert.Equal(t, "anotherReasonForEdit", resp.Reason)
	assert.JSONEq(t, `{"cctvRecording":{"question":"Was any part of the incident captured on CCTV?","oldValue":"NO","newValue":"YES"}}`, string(resp.Changes))

	calls := svc.CommitEditCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.EditReasonAnotherReasonForEdit, calls[0].Input.Reason)
	assert.Equal(t, "CCTV found later", calls[0].Input.ReasonText)
	assert.Equal(t, "YES", calls[0].Input.Payload["cctvRecording"])
}

func TestReportHandler_ReassignOwner(t *testing.T) {
	t.Parallel()

	svc := &editServiceMock{
		ReassignOwnerFunc: func(_ context.Context, input edit.ReassignOwnerInput) (*domain.ReportEdit, error) {
			return &domain.ReportEdit{
				ID:                 uuid.New(),
				ReportID:           input.ReportID,
				Section:            domain.SectionReportOwner,
				Reason:             input.Reason,
				Changes:            json.RawMessage(`{}`),
				ReportOwnerChanged: true,
			}, nil
		},
	}

	rec := doRequest(t, newTestMux(svc), http.MethodPost, "/api/reports/3/owner",
		`{"username": "NEW_OWNER", "reporterName": "Nia Owner", "reason": "errorInReport"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp reportEditResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.ReportOwnerChanged)

	calls := svc.ReassignOwnerCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "NEW_OWNER", calls[0].Input.Username)
	assert.Equal(t, "Nia Owner", calls[0].Input.ReporterName)
}

func TestReportHandler_EditHistory(t *testing.T) {
	t.Parallel()

	rows := []edit.HistoryRow{
		{
			EditID:          uuid.New(),
			Section:         domain.SectionIncidentDetails,
			EditDateDisplay: "01/05/2024 10:30",
			EditorName:      "Casey Coordinator",
			WhatChanged:     []string{"Prison"},
			ChangedFrom:     []string{"MDI"},
			ChangedTo:       []string{"Leeds (HMP)"},
			Reason:          "Error in report",
			Degraded:        true,
		},
	}
	svc := &editServiceMock{
		BuildEditHistoryFunc: func(_ context.Context, _ int64, _ edit.LookupContext) ([]edit.HistoryRow, error) {
			return rows, nil
		},
	}

	rec := doRequest(t, newTestMux(svc), http.MethodGet, "/api/reports/12/edit-history", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp []historyRowResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, []string{"Prison"}, resp[0].WhatChanged)
	assert.Equal(t, []string{"MDI"}, resp[0].ChangedFrom)
	assert.True(t, resp[0].Degraded)

	calls := svc.BuildEditHistoryCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(12), calls[0].ReportID)
	assert.Equal(t, "CO_USER", calls[0].Lc.Username)
}

func TestReportHandler_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("reason", "required"), http.StatusBadRequest},
		{"unknown section", domain.ErrUnknownSection, http.StatusNotFound},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &editServiceMock{
				CommitEditFunc: func(_ context.Context, _ edit.CommitEditInput) (*domain.ReportEdit, error) {
					return nil, tt.err
				},
			}

			rec := doRequest(t, newTestMux(svc), http.MethodPost, "/api/reports/1/sections/evidence/edit",
				`{"payload": {"cctvRecording": "YES"}, "reason": "errorInReport"}`)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestReportHandler_ValidationFields(t *testing.T) {
	t.Parallel()

	svc := &editServiceMock{
		CommitEditFunc: func(_ context.Context, _ edit.CommitEditInput) (*domain.ReportEdit, error) {
			return nil, domain.NewValidationErrors([]domain.FieldError{
				{Field: "reason", Message: "required"},
				{Field: "payload", Message: "required"},
			})
		},
	}

	rec := doRequest(t, newTestMux(svc), http.MethodPost, "/api/reports/1/sections/evidence/edit", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"validation error","fields":[{"field":"reason","message":"required"},{"field":"payload","message":"required"}]}`, rec.Body.String())
}

func TestReportHandler_BadRequests(t *testing.T) {
	t.Parallel()

	mux := newTestMux(&editServiceMock{})

	rec := doRequest(t, mux, http.MethodPost, "/api/reports/abc/sections/evidence/edit", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/api/reports/0/owner", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/api/reports/1/sections/evidence/preview", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/api/reports/1/sections/evidence/edit", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
