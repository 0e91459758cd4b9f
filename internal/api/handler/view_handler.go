package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/api/metrics"
	"github.com/farmapay/admin-api/internal/core/domain"
)

// ViewHandler resolves role-specific views for an authenticated session. The
// rendering layer itself lives elsewhere; these endpoints are the chokepoint
// it consults before presenting anything.
type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

// Me handles GET /v1/me — the resolved identity, role, landing view, and
// capability set of the current session.
//
// @Summary      Current session
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *ViewHandler) Me(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	caps := domain.CapabilitiesFor(sess.Role)
	names := make([]string, 0, len(caps))
	for _, capability := range caps {
		names = append(names, string(capability))
	}

	view, _ := domain.DefaultViewFor(sess.Role)
	return c.JSON(http.StatusOK, meResponse{
		ProfileID:    sess.ProfileID,
		Role:         string(sess.Role),
		DefaultView:  string(view),
		Capabilities: names,
	})
}

// View handles GET /v1/views/:view — reachability check for a specific view.
// Unknown views are 404; a role lacking the view's capability is denied.
//
// @Summary      Resolve a view
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        view  path      string  true  "View id"
// @Success      200   {object}  viewResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/views/{view} [get]
func (h *ViewHandler) View(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	view := domain.ViewID(c.Param("view"))
	required, ok := domain.CapabilityForView(view)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown view")
	}

	if !domain.Authorize(sess.Role, required) {
		metrics.AuthzDecisionsTotal.WithLabelValues("deny", string(required)).Inc()
		return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	}
	metrics.AuthzDecisionsTotal.WithLabelValues("allow", string(required)).Inc()

	return c.JSON(http.StatusOK, viewResponse{View: string(view)})
}
