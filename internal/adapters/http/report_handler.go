package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// ReportHandler handles periodic report generation
type ReportHandler struct {
	reportService *services.ReportService
	logger        *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Generate builds the periodic report for the requested period
func (h *ReportHandler) Generate(c echo.Context) error {
	var req ports.GenerateReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.reportService.Generate(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Failed to generate report", "error", err, "period", req.Period)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// DirectionsPayload carries the future-directions text
type DirectionsPayload struct {
	Text string `json:"text"`
}

// GetDirections returns the future-directions text
func (h *ReportHandler) GetDirections(c echo.Context) error {
	text, err := h.reportService.Directions(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, DirectionsPayload{Text: text})
}

// PutDirections stores the future-directions text
func (h *ReportHandler) PutDirections(c echo.Context) error {
	var req DirectionsPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.reportService.SetDirections(c.Request().Context(), req.Text); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Directions updated successfully"})
}
