// internal/handlers/client/client_handler.go
package client

import (
	"errors"
	"net/http"
	"strconv"

	"tripdesk-service/internal/domain/client"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/pkg/response"
	service "tripdesk-service/internal/service/client"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService *service.ClientService
}

func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
	}
}

// CreateClient registers a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req client.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.CreateClient(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "invalid client", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create client", err)
		return
	}

	response.Success(c, http.StatusCreated, "client created successfully", result)
}

// GetClient retrieves a client by ID.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid client ID", err)
		return
	}

	result, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "client not found", err)
		return
	}

	response.Success(c, http.StatusOK, "client retrieved", result)
}

// ListClients returns all clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	result := h.clientService.ListClients(c.Request.Context())
	response.Success(c, http.StatusOK, "clients retrieved", result)
}

// UpdateClient applies a partial patch to a client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid client ID", err)
		return
	}

	var req client.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.clientService.UpdateClient(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "client not found", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update client", err)
		return
	}

	response.Success(c, http.StatusOK, "client updated", result)
}
