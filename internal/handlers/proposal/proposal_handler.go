// internal/handlers/proposal/proposal_handler.go
package proposal

import (
	"errors"
	"net/http"
	"strconv"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/pkg/response"
	service "tripdesk-service/internal/service/proposal"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	proposalService *service.Service
}

func NewProposalHandler(proposalService *service.Service) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
	}
}

// GenerateProposals builds the three standard tiers from the opportunity
// budget and attaches them as new option versions.
func (h *ProposalHandler) GenerateProposals(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	var req struct {
		Actor string `json:"actor"`
	}
	// Body is optional; actor defaults to system.
	_ = c.ShouldBindJSON(&req)

	result, err := h.proposalService.GenerateAndAttach(c.Request.Context(), id, req.Actor)
	if err != nil {
		respondServiceError(c, "failed to generate proposals", err)
		return
	}

	response.Success(c, http.StatusCreated, "proposals generated", result)
}

// AcceptOption marks one proposal option as accepted and clears the flag
// on its siblings.
func (h *ProposalHandler) AcceptOption(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	optionID := c.Param("optionId")
	if optionID == "" {
		response.Error(c, http.StatusBadRequest, "option ID is required", nil)
		return
	}

	var req struct {
		Actor string `json:"actor"`
	}
	_ = c.ShouldBindJSON(&req)

	result, err := h.proposalService.AcceptOption(c.Request.Context(), id, optionID, req.Actor)
	if err != nil {
		respondServiceError(c, "failed to accept option", err)
		return
	}

	response.Success(c, http.StatusOK, "option accepted", result)
}

// AddComponent appends a line item to an option and reprices it.
func (h *ProposalHandler) AddComponent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	var req domain.AddComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.proposalService.AddComponent(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, "failed to add component", err)
		return
	}

	response.Success(c, http.StatusCreated, "component added", result)
}

// RemoveComponent deletes a line item from an option and reprices it.
func (h *ProposalHandler) RemoveComponent(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid opportunity ID", err)
		return
	}

	optionID := c.Param("optionId")
	componentID := c.Param("componentId")
	if optionID == "" || componentID == "" {
		response.Error(c, http.StatusBadRequest, "option and component IDs are required", nil)
		return
	}

	result, err := h.proposalService.RemoveComponent(c.Request.Context(), id, optionID, componentID)
	if err != nil {
		respondServiceError(c, "failed to remove component", err)
		return
	}

	response.Success(c, http.StatusOK, "component removed", result)
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func respondServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found", err)
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, message, err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
