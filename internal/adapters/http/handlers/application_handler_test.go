package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jasveersingh-de/opportunity/internal/adapters/http/middleware"
	"github.com/jasveersingh-de/opportunity/internal/auth"
	"github.com/jasveersingh-de/opportunity/internal/domain"
	"github.com/jasveersingh-de/opportunity/internal/usecase"
	res "github.com/jasveersingh-de/opportunity/pkg/http"
)

type mockPipelineService struct {
	createFn func(userID string, jobID uuid.UUID, notes string) (*domain.Application, error)
	updateFn func(userID string, applicationID uuid.UUID, status string) (*domain.Application, error)
	deleteFn func(userID string, applicationID uuid.UUID) error
	listFn   func(userID string, f domain.ApplicationFilter) ([]domain.Application, error)
}

func (m *mockPipelineService) CreateApplication(_ context.Context, _ string, userID string, jobID uuid.UUID, notes string) (*domain.Application, error) {
	return m.createFn(userID, jobID, notes)
}

func (m *mockPipelineService) UpdateStatus(_ context.Context, _ string, userID string, applicationID uuid.UUID, newStatus string) (*domain.Application, error) {
	return m.updateFn(userID, applicationID, newStatus)
}

func (m *mockPipelineService) DeleteApplication(_ context.Context, _ string, userID string, applicationID uuid.UUID) error {
	return m.deleteFn(userID, applicationID)
}

func (m *mockPipelineService) ListApplications(_ context.Context, userID string, f domain.ApplicationFilter) ([]domain.Application, error) {
	return m.listFn(userID, f)
}

var _ usecase.PipelineService = (*mockPipelineService)(nil)

func newTestContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.IdentityKey, auth.Identity{ID: "u1", Email: "jane@example.com"})
	return c, rec
}

func TestCreateApplicationCreated(t *testing.T) {
	jobID := uuid.New()
	svc := &mockPipelineService{
		createFn: func(userID string, gotJobID uuid.UUID, notes string) (*domain.Application, error) {
			if userID != "u1" || gotJobID != jobID || notes != "note" {
				t.Fatalf("unexpected args: %s %s %s", userID, gotJobID, notes)
			}
			return &domain.Application{ID: uuid.New(), UserID: userID, JobID: gotJobID, Status: domain.StatusSaved, Notes: notes}, nil
		},
	}
	h := NewApplicationHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/applications", map[string]string{"job_id": jobID.String(), "notes": "note"})
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCreateApplicationDuplicateConflict(t *testing.T) {
	svc := &mockPipelineService{
		createFn: func(string, uuid.UUID, string) (*domain.Application, error) {
			return nil, domain.ErrDuplicateApplication
		},
	}
	h := NewApplicationHandler(svc)

	c, rec := newTestContext(t, http.MethodPost, "/applications", map[string]string{"job_id": uuid.New().String()})
	_ = h.Create(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	var errResp res.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Error.Code != "duplicate_application" {
		t.Fatalf("unexpected error code: %s", errResp.Error.Code)
	}
}

func TestCreateApplicationBadJobID(t *testing.T) {
	h := NewApplicationHandler(&mockPipelineService{})
	c, rec := newTestContext(t, http.MethodPost, "/applications", map[string]string{"job_id": "not-a-uuid"})
	_ = h.Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateStatusErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"validation", &domain.ValidationError{Field: "status", Reason: "unknown"}, http.StatusBadRequest, "validation_error"},
		{"audit failure", &domain.AuditWriteError{Err: context.DeadlineExceeded}, http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPipelineService{
				updateFn: func(string, uuid.UUID, string) (*domain.Application, error) {
					return nil, tt.err
				},
			}
			h := NewApplicationHandler(svc)

			c, rec := newTestContext(t, http.MethodPatch, "/applications/:id/status", map[string]string{"status": "applied"})
			c.SetParamNames("id")
			c.SetParamValues(uuid.New().String())

			_ = h.UpdateStatus(c)
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var errResp res.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if errResp.Error.Code != tt.wantCode {
				t.Fatalf("unexpected error code: %s", errResp.Error.Code)
			}
		})
	}
}

func TestUpdateStatusSuccess(t *testing.T) {
	appID := uuid.New()
	svc := &mockPipelineService{
		updateFn: func(userID string, gotID uuid.UUID, status string) (*domain.Application, error) {
			if gotID != appID || status != "applied" {
				t.Fatalf("unexpected args: %s %s", gotID, status)
			}
			return &domain.Application{ID: gotID, UserID: userID, Status: domain.StatusApplied}, nil
		},
	}
	h := NewApplicationHandler(svc)

	c, rec := newTestContext(t, http.MethodPatch, "/applications/:id/status", map[string]string{"status": "applied"})
	c.SetParamNames("id")
	c.SetParamValues(appID.String())

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListApplicationsPassesFilter(t *testing.T) {
	svc := &mockPipelineService{
		listFn: func(userID string, f domain.ApplicationFilter) ([]domain.Application, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user: %s", userID)
			}
			if f.Status == nil || *f.Status != domain.StatusApplied {
				t.Fatalf("status filter not passed: %+v", f)
			}
			if f.Country == nil || *f.Country != "DE" {
				t.Fatalf("country filter not passed: %+v", f)
			}
			if f.Sort != domain.ApplicationSortStatus {
				t.Fatalf("sort not passed: %+v", f)
			}
			return []domain.Application{}, nil
		},
	}
	h := NewApplicationHandler(svc)

	c, rec := newTestContext(t, http.MethodGet, "/applications?status=applied&country=DE&sort=status&limit=10", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMissingIdentityUnauthorized(t *testing.T) {
	h := NewApplicationHandler(&mockPipelineService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.List(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
