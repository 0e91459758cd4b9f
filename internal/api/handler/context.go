package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/api/middleware"
	"github.com/farmapay/admin-api/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware. Its
// presence proves the guard ran and reached Valid; handlers never read role
// or identity from anywhere else.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, ok := c.Get(middleware.SessionKey).(*domain.Session)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return sess, nil
}
