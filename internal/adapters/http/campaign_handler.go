package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patroldesk/core/internal/application/services"
	"github.com/patroldesk/core/internal/infrastructure/logger"
	"github.com/patroldesk/core/internal/ports"
)

// CampaignHandler handles enforcement campaign requests
type CampaignHandler struct {
	campaignService *services.CampaignService
	logger          *logger.Logger
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService *services.CampaignService, logger *logger.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		logger:          logger,
	}
}

// ListCampaigns returns every campaign
func (h *CampaignHandler) ListCampaigns(c echo.Context) error {
	campaigns, err := h.campaignService.ListCampaigns(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list campaigns", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, campaigns)
}

// GetCampaign returns one campaign by id
func (h *CampaignHandler) GetCampaign(c echo.Context) error {
	campaign, err := h.campaignService.GetCampaign(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, campaign)
}

// CreateCampaign creates a campaign
func (h *CampaignHandler) CreateCampaign(c echo.Context) error {
	var req ports.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Failed to create campaign", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, campaign)
}

// UpdateCampaign rewrites a campaign's form fields
func (h *CampaignHandler) UpdateCampaign(c echo.Context) error {
	var req ports.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, campaign)
}

// DeleteCampaign removes a campaign
func (h *CampaignHandler) DeleteCampaign(c echo.Context) error {
	if err := h.campaignService.DeleteCampaign(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Campaign deleted successfully"})
}

// LogProgress appends one daily progress entry to a campaign
func (h *CampaignHandler) LogProgress(c echo.Context) error {
	var req ports.LogProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	campaign, err := h.campaignService.LogProgress(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, campaign)
}
