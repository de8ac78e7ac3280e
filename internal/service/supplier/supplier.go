// internal/service/supplier/supplier.go
package supplier

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-service/internal/domain/supplier"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/state"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, s *supplier.Supplier) error
	FindByID(ctx context.Context, id int64) (*supplier.Supplier, error)
	FindAll(ctx context.Context) ([]supplier.Supplier, error)
	Update(ctx context.Context, s *supplier.Supplier) error
}

type SupplierService struct {
	repo   Repository
	store  *state.Store
	logger *zap.Logger
}

func NewSupplierService(repo Repository, store *state.Store, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req *supplier.CreateSupplierRequest) (*supplier.Supplier, error) {
	if req.Name == "" {
		return nil, xerrors.ErrInvalidInput
	}

	sp := &supplier.Supplier{
		Name:        req.Name,
		Category:    req.Category,
		ContactName: sql.NullString{String: req.ContactName, Valid: req.ContactName != ""},
		Email:       sql.NullString{String: req.Email, Valid: req.Email != ""},
		Phone:       sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Notes:       sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		Services:    pq.StringArray(req.Services),
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		s.logger.Error("failed to create supplier", zap.Error(err))
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	s.store.PutSupplier(*sp)
	return sp, nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, id int64) (*supplier.Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SupplierService) ListSuppliers(ctx context.Context) []supplier.Supplier {
	return s.store.Suppliers()
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, id int64, req *supplier.UpdateSupplierRequest) (*supplier.Supplier, error) {
	sp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sp.Name = *req.Name
	}
	if req.Category != nil {
		sp.Category = *req.Category
	}
	if req.ContactName != nil {
		sp.ContactName = sql.NullString{String: *req.ContactName, Valid: *req.ContactName != ""}
	}
	if req.Email != nil {
		sp.Email = sql.NullString{String: *req.Email, Valid: *req.Email != ""}
	}
	if req.Phone != nil {
		sp.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Notes != nil {
		sp.Notes = sql.NullString{String: *req.Notes, Valid: *req.Notes != ""}
	}
	if req.Services != nil {
		sp.Services = pq.StringArray(*req.Services)
	}
	if req.IsActive != nil {
		sp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		s.logger.Error("failed to update supplier", zap.Error(err))
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	s.store.PutSupplier(*sp)
	return sp, nil
}
