package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/api/metrics"
	"github.com/farmapay/admin-api/internal/core/ports"
)

// SessionKey is the context key under which the resolved session is stored.
const SessionKey = "session"

// SessionCookie is the cookie fallback for browser navigations that cannot
// set an Authorization header.
const SessionCookie = "fp_session"

// Session validates the client-held token and injects the resolved session
// into the request context. It is a pure gate evaluated once per protected
// request: an absent, malformed, expired, or unresolvable token all produce
// the same unauthenticated outcome. Browser navigations are redirected to
// loginPath with the original destination preserved in ?next=; API clients
// receive a bare 401.
func Session(verifier ports.SessionVerifier, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
				return unauthenticated(c, loginPath)
			}

			sess, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				metrics.SessionValidationsTotal.WithLabelValues("invalid").Inc()
				return unauthenticated(c, loginPath)
			}

			metrics.SessionValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the session cookie.
func extractToken(c echo.Context) string {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// unauthenticated terminates the request without revealing why validation
// failed.
func unauthenticated(c echo.Context, loginPath string) error {
	if wantsHTML(c.Request()) {
		dest := c.Request().URL.RequestURI()
		return c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(dest))
	}
	return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
