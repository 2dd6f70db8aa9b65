package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// RegistrationHandler handles vehicle-registration requests
type RegistrationHandler struct {
	regService *services.RegistrationService
	logger     *logger.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(regService *services.RegistrationService, logger *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		regService: regService,
		logger:     logger,
	}
}

// ListRegistrations returns ranged registration records grouped per date
func (h *RegistrationHandler) ListRegistrations(c echo.Context) error {
	groups, err := h.regService.ListRegistrations(c.Request().Context(), rangeFromQuery(c))
	if err != nil {
		h.logger.Error("Failed to list registrations", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, groups)
}

// SaveDay upserts one day's registration matrix
func (h *RegistrationHandler) SaveDay(c echo.Context) error {
	var req ports.SaveDailyRegistrationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.Date = c.Param("date")
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	records, err := h.regService.SaveDaily(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Failed to save daily registrations", "error", err, "date", req.Date)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, records)
}

// Summary returns the aggregated registration matrix for a range
func (h *RegistrationHandler) Summary(c echo.Context) error {
	summary, err := h.regService.Summarize(c.Request().Context(), rangeFromQuery(c))
	if err != nil {
		h.logger.Error("Failed to summarize registrations", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summary)
}
