package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/infrastructure/logger"
)

// SyncHandler handles mirror endpoint configuration and the manual pull
type SyncHandler struct {
	syncService *services.SyncService
	logger      *logger.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *services.SyncService, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// EndpointPayload carries the mirror endpoint URL
type EndpointPayload struct {
	URL string `json:"url"`
}

// GetEndpoint returns the stored mirror endpoint URL
func (h *SyncHandler) GetEndpoint(c echo.Context) error {
	url, err := h.syncService.EndpointURL(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, EndpointPayload{URL: url})
}

// PutEndpoint stores the mirror endpoint URL; empty turns the mirror off
func (h *SyncHandler) PutEndpoint(c echo.Context) error {
	var req EndpointPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.syncService.SetEndpointURL(c.Request().Context(), req.URL); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Sync endpoint updated successfully"})
}

// Pull fetches the mirror snapshot and overwrites the local collections it
// covers
func (h *SyncHandler) Pull(c echo.Context) error {
	if err := h.syncService.PullAll(c.Request().Context()); err != nil {
		h.logger.Error("Mirror pull failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Mirror snapshot pulled successfully"})
}
