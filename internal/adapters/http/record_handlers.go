package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/domain/entities"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// AccidentHandler handles traffic-accident case requests
type AccidentHandler struct {
	accidentService *services.AccidentService
	logger          *logger.Logger
}

// NewAccidentHandler creates a new accident handler
func NewAccidentHandler(accidentService *services.AccidentService, logger *logger.Logger) *AccidentHandler {
	return &AccidentHandler{
		accidentService: accidentService,
		logger:          logger,
	}
}

// ListAccidents returns ranged accident cases
func (h *AccidentHandler) ListAccidents(c echo.Context) error {
	cases, err := h.accidentService.ListAccidents(c.Request().Context(), rangeFromQuery(c))
	if err != nil {
		h.logger.Error("Failed to list accidents", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cases)
}

// GetAccident returns one accident case by id
func (h *AccidentHandler) GetAccident(c echo.Context) error {
	accident, err := h.accidentService.GetAccident(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, accident)
}

// SaveAccident upserts an accident case
func (h *AccidentHandler) SaveAccident(c echo.Context) error {
	var accident entities.AccidentCase
	if err := c.Bind(&accident); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	saved, err := h.accidentService.SaveAccident(c.Request().Context(), accident)
	if err != nil {
		h.logger.Error("Failed to save accident", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteAccident removes an accident case
func (h *AccidentHandler) DeleteAccident(c echo.Context) error {
	if err := h.accidentService.DeleteAccident(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Accident case deleted successfully"})
}

// ResultHandler handles work-result requests
type ResultHandler struct {
	resultService *services.ResultService
	logger        *logger.Logger
}

// NewResultHandler creates a new result handler
func NewResultHandler(resultService *services.ResultService, logger *logger.Logger) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
		logger:        logger,
	}
}

// ListResults returns ranged work results
func (h *ResultHandler) ListResults(c echo.Context) error {
	results, err := h.resultService.ListResults(c.Request().Context(), rangeFromQuery(c))
	if err != nil {
		h.logger.Error("Failed to list results", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, results)
}

// GetResult returns one work result by id
func (h *ResultHandler) GetResult(c echo.Context) error {
	result, err := h.resultService.GetResult(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// SaveResult upserts a work result
func (h *ResultHandler) SaveResult(c echo.Context) error {
	var result entities.WorkResult
	if err := c.Bind(&result); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	saved, err := h.resultService.SaveResult(c.Request().Context(), result)
	if err != nil {
		h.logger.Error("Failed to save result", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteResult removes a work result
func (h *ResultHandler) DeleteResult(c echo.Context) error {
	if err := h.resultService.DeleteResult(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Work result deleted successfully"})
}

// VerificationHandler handles verification-request endpoints, including the
// AI extraction and drafting operations.
type VerificationHandler struct {
	verificationService *services.VerificationService
	logger              *logger.Logger
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationService *services.VerificationService, logger *logger.Logger) *VerificationHandler {
	return &VerificationHandler{
		verificationService: verificationService,
		logger:              logger,
	}
}

// ListVerifications returns every verification request
func (h *VerificationHandler) ListVerifications(c echo.Context) error {
	reqs, err := h.verificationService.ListVerifications(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list verifications", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reqs)
}

// GetVerification returns one verification request by id
func (h *VerificationHandler) GetVerification(c echo.Context) error {
	v, err := h.verificationService.GetVerification(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, v)
}

// SaveVerification upserts a verification request
func (h *VerificationHandler) SaveVerification(c echo.Context) error {
	var v entities.VerificationRequest
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	saved, err := h.verificationService.SaveVerification(c.Request().Context(), v)
	if err != nil {
		h.logger.Error("Failed to save verification", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteVerification removes a verification request
func (h *VerificationHandler) DeleteVerification(c echo.Context) error {
	if err := h.verificationService.DeleteVerification(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Verification request deleted successfully"})
}

// Extract runs AI OCR over an uploaded dispatch image
func (h *VerificationHandler) Extract(c echo.Context) error {
	var req ports.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	extracted, err := h.verificationService.ExtractFromImage(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, extracted)
}

// Reconstruct rebuilds scanned dispatch pages into printable HTML
func (h *VerificationHandler) Reconstruct(c echo.Context) error {
	var req ports.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v, err := h.verificationService.ReconstructDocument(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, v)
}

// DraftLetter drafts the response letter for a verification request
func (h *VerificationHandler) DraftLetter(c echo.Context) error {
	var req ports.DraftLetterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	letter, err := h.verificationService.DraftResponseLetter(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"letter": letter})
}
