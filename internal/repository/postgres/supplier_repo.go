// internal/repository/postgres/supplier_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"tripdesk-service/internal/domain/supplier"
	xerrors "tripdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SupplierRepository struct {
	db *pgxpool.Pool
}

func NewSupplierRepository(db *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{db: db}
}

func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	query := `
		INSERT INTO suppliers (name, category, contact_name, email, phone, notes, services, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.Name, s.Category, s.ContactName, s.Email, s.Phone, s.Notes,
		s.Services, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	return nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id int64) (*supplier.Supplier, error) {
	query := `
		SELECT id, name, category, contact_name, email, phone, notes,
		       services, is_active, created_at, updated_at
		FROM suppliers
		WHERE id = $1
	`

	var s supplier.Supplier
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Category, &s.ContactName, &s.Email, &s.Phone,
		&s.Notes, &s.Services, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}

	return &s, nil
}

func (r *SupplierRepository) FindAll(ctx context.Context) ([]supplier.Supplier, error) {
	query := `
		SELECT id, name, category, contact_name, email, phone, notes,
		       services, is_active, created_at, updated_at
		FROM suppliers
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []supplier.Supplier
	for rows.Next() {
		var s supplier.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Category, &s.ContactName, &s.Email, &s.Phone,
			&s.Notes, &s.Services, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}

	return suppliers, rows.Err()
}

func (r *SupplierRepository) Update(ctx context.Context, s *supplier.Supplier) error {
	query := `
		UPDATE suppliers SET
			name = $2, category = $3, contact_name = $4, email = $5,
			phone = $6, notes = $7, services = $8, is_active = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		s.ID, s.Name, s.Category, s.ContactName, s.Email, s.Phone,
		s.Notes, s.Services, s.IsActive,
	).Scan(&s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}

	return nil
}
