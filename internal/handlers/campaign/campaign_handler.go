// internal/handlers/campaign/campaign_handler.go
package campaign

import (
	"errors"
	"net/http"
	"strconv"

	"tripdesk-service/internal/domain/campaign"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/pkg/response"
	service "tripdesk-service/internal/service/campaign"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignService *service.CampaignService
}

func NewCampaignHandler(campaignService *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// CreateCampaign registers a new lead-generation campaign.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req campaign.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.campaignService.CreateCampaign(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "invalid campaign", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create campaign", err)
		return
	}

	response.Success(c, http.StatusCreated, "campaign created successfully", result)
}

// GetCampaign retrieves a campaign by ID.
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid campaign ID", err)
		return
	}

	result, err := h.campaignService.GetCampaign(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "campaign not found", err)
		return
	}

	response.Success(c, http.StatusOK, "campaign retrieved", result)
}

// ListCampaigns returns all campaigns.
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	result := h.campaignService.ListCampaigns(c.Request.Context())
	response.Success(c, http.StatusOK, "campaigns retrieved", result)
}

// UpdateCampaign applies a partial patch to a campaign.
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid campaign ID", err)
		return
	}

	var req campaign.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.campaignService.UpdateCampaign(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.Error(c, http.StatusNotFound, "campaign not found", err)
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "invalid campaign", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update campaign", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "campaign updated", result)
}

// RegisterLead attributes one intake to a campaign.
func (h *CampaignHandler) RegisterLead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid campaign ID", err)
		return
	}

	if err := h.campaignService.RegisterLead(c.Request.Context(), id); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "campaign not found", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to register lead", err)
		return
	}

	response.Success(c, http.StatusOK, "lead registered", nil)
}
