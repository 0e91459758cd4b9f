package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farmapay/admin-api/internal/api/metrics"
	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

// ProvisionDispatcher is the interface the handler uses to enqueue bulk
// provisioning items.
type ProvisionDispatcher interface {
	Enqueue(input ports.ProvisionInput)
	EnqueueBatch(inputs []ports.ProvisionInput)
}

// AdminHandler handles administrative account provisioning.
type AdminHandler struct {
	provisioner ports.Provisioner
	dispatcher  ProvisionDispatcher
}

func NewAdminHandler(provisioner ports.Provisioner, dispatcher ProvisionDispatcher) *AdminHandler {
	return &AdminHandler{provisioner: provisioner, dispatcher: dispatcher}
}

// Provision handles POST /v1/admin/users — creates or updates one profile.
//
// @Summary      Provision a profile
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      provisionRequest  true  "Profile to provision"
// @Success      201   {object}  provisionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *AdminHandler) Provision(c echo.Context) error {
	var req provisionRequest
	if err := c.Bind(&req); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("invalid").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.provisioner.Provision(c.Request().Context(), ports.ProvisionInput{
		Email:  req.Email,
		Secret: req.Password,
		Name:   req.Name,
		Role:   req.Role,
	})
	if err != nil {
		metrics.ProvisioningTotal.WithLabelValues(provisionFailureLabel(err)).Inc()
		return err
	}
	metrics.ProvisioningTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusCreated, provisionResponse{
		ID:    profile.ID,
		Email: profile.Email,
		Role:  string(profile.Role),
	})
}

// ProvisionBatch handles POST /v1/admin/users/batch — enqueues a batch of
// provisioning items, returns 202. Items for the same email are processed in
// order; distinct emails run in parallel.
//
// @Summary      Provision a batch of profiles
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []provisionRequest  true  "Profiles to provision"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/admin/users/batch [post]
func (h *AdminHandler) ProvisionBatch(c echo.Context) error {
	var reqs []provisionRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.ProvisionInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("item[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, ports.ProvisionInput{
			Email:  req.Email,
			Secret: req.Password,
			Name:   req.Name,
			Role:   req.Role,
		})
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "batch accepted", Count: len(inputs)})
}

// provisionFailureLabel buckets a provisioning error into a metric label.
func provisionFailureLabel(err error) string {
	var iae *domain.InvalidArgumentError
	switch {
	case errors.As(err, &iae), errors.Is(err, domain.ErrWeakSecret):
		return "invalid"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
