// internal/handlers/opportunity/opportunity_handler.go
package opportunity

import (
	"errors"
	"net/http"
	"strconv"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/pkg/response"
	draftsvc "tripdesk-service/internal/service/draft"
	service "tripdesk-service/internal/service/opportunity"

	"github.com/gin-gonic/gin"
)

type OpportunityHandler struct {
	opportunityService *service.Service
	draftService       *draftsvc.Service
}

func NewOpportunityHandler(opportunityService *service.Service, draftService *draftsvc.Service) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
		draftService:       draftService,
	}
}

// CreateOpportunity registers a new opportunity in the pipeline.
func (h *OpportunityHandler) CreateOpportunity(c *gin.Context) {
	var req domain.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.opportunityService.CreateOpportunity(c.Request.Context(), &req, actor(c))
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "invalid opportunity", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create opportunity", err)
		return
	}

	response.Success(c, http.StatusCreated, "opportunity created successfully", result)
}

// GetOpportunity retrieves an opportunity by ID.
func (h *OpportunityHandler) GetOpportunity(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	result, err := h.opportunityService.GetOpportunity(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "opportunity not found", err)
		return
	}

	response.Success(c, http.StatusOK, "opportunity retrieved", result)
}

// ListOpportunities returns the full pipeline, ordered by ID.
func (h *OpportunityHandler) ListOpportunities(c *gin.Context) {
	result := h.opportunityService.ListOpportunities(c.Request.Context())
	response.Success(c, http.StatusOK, "opportunities retrieved", result)
}

// UpdateOpportunity applies a partial patch. Supplying a stage runs the
// same stage effects as a guarded move, but without the requirement check.
func (h *OpportunityHandler) UpdateOpportunity(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	var req domain.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.opportunityService.UpdateOpportunity(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, "failed to update opportunity", err)
		return
	}

	response.Success(c, http.StatusOK, "opportunity updated", result)
}

// MoveStage runs a guarded stage transition. A rejection for unmet
// requirements is a 200 with ok=false and the missing checklist, not an
// error: the frontend renders the list as-is.
func (h *OpportunityHandler) MoveStage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	var req domain.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	target, ok := domain.ParseStage(req.TargetStage)
	if !ok {
		response.Error(c, http.StatusBadRequest, "unknown target stage", nil)
		return
	}

	result, err := h.opportunityService.MoveStage(c.Request.Context(), id, target, service.TransitionMeta{
		Actor:  req.Actor,
		Reason: req.Reason,
	})
	if err != nil {
		respondServiceError(c, "failed to move stage", err)
		return
	}

	response.Success(c, http.StatusOK, "stage transition evaluated", result)
}

// CheckRequirements previews the requirement checklist for a target stage
// without moving the opportunity.
func (h *OpportunityHandler) CheckRequirements(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	target, ok := domain.ParseStage(c.Query("target"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "unknown target stage", nil)
		return
	}

	o, err := h.opportunityService.GetOpportunity(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "opportunity not found", err)
		return
	}

	result := service.CheckStageRequirements(o, target)
	response.Success(c, http.StatusOK, "requirements evaluated", result)
}

// UpsertMilestone creates or patches a payment milestone.
func (h *OpportunityHandler) UpsertMilestone(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	var req domain.UpsertMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.opportunityService.UpsertMilestone(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, "failed to upsert milestone", err)
		return
	}

	response.Success(c, http.StatusOK, "milestone saved", result)
}

// SetTaskDone toggles a task's completion flag.
func (h *OpportunityHandler) SetTaskDone(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	taskID := c.Param("taskId")
	if taskID == "" {
		response.Error(c, http.StatusBadRequest, "task ID is required", nil)
		return
	}

	var req struct {
		Done bool `json:"done"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.opportunityService.SetTaskDone(c.Request.Context(), id, taskID, req.Done)
	if err != nil {
		respondServiceError(c, "failed to update task", err)
		return
	}

	response.Success(c, http.StatusOK, "task updated", result)
}

// GenerateDraft produces an AI-assisted draft for the opportunity. Falls
// back to the deterministic templates when no LLM is configured.
func (h *OpportunityHandler) GenerateDraft(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	var req domain.GenerateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.draftService.GenerateDraft(c.Request.Context(), id, req.Kind, req.Actor)
	if err != nil {
		if errors.Is(err, xerrors.ErrRateLimited) {
			response.Error(c, http.StatusTooManyRequests, "draft generation rate limit exceeded", err)
			return
		}
		respondServiceError(c, "failed to generate draft", err)
		return
	}

	response.Success(c, http.StatusCreated, "draft generated", result)
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func actor(c *gin.Context) string {
	return c.Query("actor")
}

func respondServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.Error(c, http.StatusNotFound, "opportunity not found", err)
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
