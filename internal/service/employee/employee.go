// internal/service/employee/employee.go
package employee

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-service/internal/domain/employee"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/state"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, e *employee.Employee) error
	FindByID(ctx context.Context, id int64) (*employee.Employee, error)
	FindAll(ctx context.Context) ([]employee.Employee, error)
	Update(ctx context.Context, e *employee.Employee) error
}

type EmployeeService struct {
	repo   Repository
	store  *state.Store
	logger *zap.Logger
}

func NewEmployeeService(repo Repository, store *state.Store, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, req *employee.CreateEmployeeRequest) (*employee.Employee, error) {
	if req.FullName == "" || req.Email == "" {
		return nil, xerrors.ErrInvalidInput
	}

	role := req.Role
	if role == "" {
		role = employee.RoleAgent
	}

	e := &employee.Employee{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Role:     role,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create employee", zap.Error(err))
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.store.PutEmployee(*e)
	return e, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id int64) (*employee.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EmployeeService) ListEmployees(ctx context.Context) []employee.Employee {
	return s.store.Employees()
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, req *employee.UpdateEmployeeRequest) (*employee.Employee, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Phone != nil {
		e.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Role != nil {
		e.Role = *req.Role
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("failed to update employee", zap.Error(err))
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	s.store.PutEmployee(*e)
	return e, nil
}
