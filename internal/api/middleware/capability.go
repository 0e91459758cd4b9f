package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/api/metrics"
	"github.com/farmapay/admin-api/internal/core/domain"
)

// RequireCapability gates a route on the capability authorization chokepoint.
// It must run after Session; a request with no resolved session is treated as
// unauthenticated, a session whose role lacks the capability is forbidden.
func RequireCapability(capability domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get(SessionKey).(*domain.Session)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			if !domain.Authorize(sess.Role, capability) {
				metrics.AuthzDecisionsTotal.WithLabelValues("deny", string(capability)).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("allow", string(capability)).Inc()
			return next(c)
		}
	}
}
