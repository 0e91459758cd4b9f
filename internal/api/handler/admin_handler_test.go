package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

type stubProvisioner struct {
	provisionFn func(ctx context.Context, input ports.ProvisionInput) (*domain.Profile, error)
}

func (s *stubProvisioner) Provision(ctx context.Context, input ports.ProvisionInput) (*domain.Profile, error) {
	return s.provisionFn(ctx, input)
}

type stubDispatcher struct {
	enqueued []ports.ProvisionInput
}

func (s *stubDispatcher) Enqueue(input ports.ProvisionInput) {
	s.enqueued = append(s.enqueued, input)
}

func (s *stubDispatcher) EnqueueBatch(inputs []ports.ProvisionInput) {
	s.enqueued = append(s.enqueued, inputs...)
}

func TestAdminHandler_Provision_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubProvisioner{
		provisionFn: func(_ context.Context, input ports.ProvisionInput) (*domain.Profile, error) {
			if input.Email != "atendente@farmapay.com" || input.Role != "ATTENDANT" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Profile{
				ID:           "p1",
				Email:        input.Email,
				Name:         input.Name,
				Role:         domain.RoleAttendant,
				PasswordHash: "$2a$10$secret-material",
			}, nil
		},
	}
	handler := NewAdminHandler(stub, &stubDispatcher{})

	body := strings.NewReader(`{"email":"atendente@farmapay.com","password":"Farma@2025!","name":"Atendente Padrão","role":"ATTENDANT"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Provision(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "p1" || resp["role"] != "ATTENDANT" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "secret") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must never carry secret material: %s", rec.Body.String())
	}
}

func TestAdminHandler_Provision_RejectsBadInput(t *testing.T) {
	e := newTestEcho()
	stub := &stubProvisioner{
		provisionFn: func(_ context.Context, _ ports.ProvisionInput) (*domain.Profile, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAdminHandler(stub, &stubDispatcher{})

	cases := []string{
		`not-json`,
		`{"email":"bad","password":"Farma@2025!"}`,
		`{"email":"ok@farmapay.com","password":"short"}`,
		`{"email":"ok@farmapay.com","password":"Farma@2025!","role":"SUPERUSER"}`,
		`{"email":"ok@farmapay.com","password":"Farma@2025!","role":"admin"}`,
	}

	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/users", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Provision(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 error, got %v", body, err)
		}
	}
}

func TestAdminHandler_Provision_SurfacesConflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubProvisioner{
		provisionFn: func(_ context.Context, _ ports.ProvisionInput) (*domain.Profile, error) {
			return nil, domain.ErrConflict
		},
	}
	handler := NewAdminHandler(stub, &stubDispatcher{})

	body := strings.NewReader(`{"email":"racy@farmapay.com","password":"Farma@2025!"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Provision(c); err != domain.ErrConflict {
		t.Fatalf("expected ErrConflict to propagate, got %v", err)
	}
}

func TestAdminHandler_ProvisionBatch_Enqueues(t *testing.T) {
	e := newTestEcho()
	dispatcher := &stubDispatcher{}
	handler := NewAdminHandler(&stubProvisioner{}, dispatcher)

	body := strings.NewReader(`[
		{"email":"a@farmapay.com","password":"Farma@2025!","role":"ATTENDANT"},
		{"email":"b@farmapay.com","password":"Farma@2025!","role":"SALES"}
	]`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/users/batch", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ProvisionBatch(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	if len(dispatcher.enqueued) != 2 {
		t.Fatalf("expected 2 items enqueued, got %d", len(dispatcher.enqueued))
	}
}

func TestAdminHandler_ProvisionBatch_RejectsEmptyAndInvalid(t *testing.T) {
	e := newTestEcho()
	dispatcher := &stubDispatcher{}
	handler := NewAdminHandler(&stubProvisioner{}, dispatcher)

	for _, body := range []string{`[]`, `[{"email":"bad","password":"Farma@2025!"}]`} {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/users/batch", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.ProvisionBatch(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400 error, got %v", body, err)
		}
	}
	if len(dispatcher.enqueued) != 0 {
		t.Fatalf("nothing may be enqueued on rejection, got %d", len(dispatcher.enqueued))
	}
}
