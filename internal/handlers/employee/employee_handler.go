// internal/handlers/employee/employee_handler.go
package employee

import (
	"errors"
	"net/http"
	"strconv"

	"tripdesk-service/internal/domain/employee"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/pkg/response"
	service "tripdesk-service/internal/service/employee"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployee registers a new agency employee.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.employeeService.CreateEmployee(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "invalid employee", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create employee", err)
		return
	}

	response.Success(c, http.StatusCreated, "employee created successfully", result)
}

// GetEmployee retrieves an employee by ID.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid employee ID", err)
		return
	}

	result, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "employee not found", err)
		return
	}

	response.Success(c, http.StatusOK, "employee retrieved", result)
}

// ListEmployees returns all employees.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	result := h.employeeService.ListEmployees(c.Request.Context())
	response.Success(c, http.StatusOK, "employees retrieved", result)
}

// UpdateEmployee applies a partial patch to an employee.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid employee ID", err)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.employeeService.UpdateEmployee(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "employee not found", err)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update employee", err)
		return
	}

	response.Success(c, http.StatusOK, "employee updated", result)
}
