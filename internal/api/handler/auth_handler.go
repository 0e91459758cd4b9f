package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/api/metrics"
	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a profile and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, profile, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	view, _ := domain.DefaultViewFor(profile.Role)
	return c.JSON(http.StatusOK, loginResponse{
		Token: token,
		Profile: profileResponse{
			ID:    profile.ID,
			Email: profile.Email,
			Name:  profile.Name,
			Role:  string(profile.Role),
		},
		DefaultView: string(view),
	})
}

// LoginEntry is the unauthenticated entry point redirect target. It echoes
// the preserved destination so the client can honour it after authentication.
//
// @Summary      Unauthenticated entry point
// @Tags         auth
// @Produce      json
// @Param        next  query     string  false  "Destination to honour after authentication"
// @Success      200   {object}  loginEntryResponse
// @Router       /login [get]
func (h *AuthHandler) LoginEntry(c echo.Context) error {
	return c.JSON(http.StatusOK, loginEntryResponse{
		Message: "authentication required",
		Next:    c.QueryParam("next"),
	})
}
