// internal/handlers/supplier/supplier_handler.go
package supplier

import (
	"errors"
	"net/http"
	"strconv"

	"tripdesk-service/internal/domain/supplier"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/pkg/response"
	service "tripdesk-service/internal/service/supplier"

	"github.com/gin-gonic/gin"
)

type SupplierHandler struct {
	supplierService *service.SupplierService
}

func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		supplierService: supplierService,
	}
}

// CreateSupplier registers a new travel supplier.
func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req supplier.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.supplierService.CreateSupplier(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "invalid supplier", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create supplier", err)
		return
	}

	response.Success(c, http.StatusCreated, "supplier created successfully", result)
}

// GetSupplier retrieves a supplier by ID.
func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid supplier ID", err)
		return
	}

	result, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "supplier not found", err)
		return
	}

	response.Success(c, http.StatusOK, "supplier retrieved", result)
}

// ListSuppliers returns all suppliers.
func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	result := h.supplierService.ListSuppliers(c.Request.Context())
	response.Success(c, http.StatusOK, "suppliers retrieved", result)
}

// UpdateSupplier applies a partial patch to a supplier.
func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid supplier ID", err)
		return
	}

	var req supplier.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "supplier not found", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update supplier", err)
		return
	}

	response.Success(c, http.StatusOK, "supplier updated", result)
}
