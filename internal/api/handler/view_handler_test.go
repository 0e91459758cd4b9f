package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/api/middleware"
	"github.com/farmapay/admin-api/internal/core/domain"
)

func sessionContext(e *echo.Echo, method, target string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(middleware.SessionKey, sess)
	}
	return c, rec
}

func TestViewHandler_Me(t *testing.T) {
	e := newTestEcho()
	handler := NewViewHandler()

	c, rec := sessionContext(e, http.MethodGet, "/v1/me", &domain.Session{ProfileID: "p1", Role: domain.RoleManager})
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Role != "MANAGER" || resp.DefaultView != string(domain.ViewTeamDashboard) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if len(resp.Capabilities) == 0 {
		t.Fatalf("capability set must be non-empty")
	}
}

func TestViewHandler_Me_WithoutSession(t *testing.T) {
	e := newTestEcho()
	handler := NewViewHandler()

	c, _ := sessionContext(e, http.MethodGet, "/v1/me", nil)
	err := handler.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 error, got %v", err)
	}
}

func TestViewHandler_View_Gating(t *testing.T) {
	e := newTestEcho()
	handler := NewViewHandler()

	cases := []struct {
		role     domain.Role
		view     string
		wantCode int
	}{
		{domain.RoleAttendant, "operational-dashboard", http.StatusOK},
		{domain.RoleAttendant, "admin-dashboard", http.StatusForbidden},
		{domain.RoleManager, "team-dashboard", http.StatusOK},
		{domain.RoleManager, "audit-log", http.StatusForbidden},
		{domain.RoleAdmin, "audit-log", http.StatusOK},
		{domain.RoleInvestor, "portfolio-dashboard", http.StatusOK},
		{domain.RoleInvestor, "operational-dashboard", http.StatusForbidden},
	}

	for _, tc := range cases {
		c, rec := sessionContext(e, http.MethodGet, "/v1/views/"+tc.view, &domain.Session{ProfileID: "p1", Role: tc.role})
		c.SetParamNames("view")
		c.SetParamValues(tc.view)

		if err := handler.View(c); err != nil {
			t.Fatalf("%s/%s: handler error: %v", tc.role, tc.view, err)
		}
		if rec.Code != tc.wantCode {
			t.Fatalf("%s requesting %s: expected %d, got %d", tc.role, tc.view, tc.wantCode, rec.Code)
		}
	}
}

func TestViewHandler_View_Unknown(t *testing.T) {
	e := newTestEcho()
	handler := NewViewHandler()

	c, _ := sessionContext(e, http.MethodGet, "/v1/views/nope", &domain.Session{ProfileID: "p1", Role: domain.RoleAdmin})
	c.SetParamNames("view")
	c.SetParamValues("nope")

	err := handler.View(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 error, got %v", err)
	}
}
