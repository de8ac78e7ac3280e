// internal/repository/postgres/employee_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"tripdesk-service/internal/domain/employee"
	xerrors "tripdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepository struct {
	db *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	query := `
		INSERT INTO employees (full_name, email, phone, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		e.FullName, e.Email, e.Phone, e.Role, e.IsActive,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	query := `
		SELECT id, full_name, email, phone, role, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.Email, &e.Phone, &e.Role, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	return &e, nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	query := `
		SELECT id, full_name, email, phone, role, is_active, created_at, updated_at
		FROM employees
		ORDER BY full_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.FullName, &e.Email, &e.Phone, &e.Role, &e.IsActive,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	query := `
		UPDATE employees SET
			full_name = $2, email = $3, phone = $4, role = $5,
			is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		e.ID, e.FullName, e.Email, e.Phone, e.Role, e.IsActive,
	).Scan(&e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}
