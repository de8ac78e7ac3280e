// internal/repository/postgres/client_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"tripdesk-service/internal/domain/client"
	xerrors "tripdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepository struct {
	db *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (full_name, email, phone_number, document, notes, tags, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.FullName, c.Email, c.PhoneNumber, c.Document, c.Notes, c.Tags, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// FindByID retrieves a client by ID
func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*client.Client, error) {
	query := `
		SELECT id, full_name, email, phone_number, document, notes, tags,
		       is_active, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var c client.Client
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.Document,
		&c.Notes, &c.Tags, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	return &c, nil
}

// FindAll retrieves all clients
func (r *ClientRepository) FindAll(ctx context.Context) ([]client.Client, error) {
	query := `
		SELECT id, full_name, email, phone_number, document, notes, tags,
		       is_active, created_at, updated_at
		FROM clients
		ORDER BY full_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		var c client.Client
		if err := rows.Scan(
			&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.Document,
			&c.Notes, &c.Tags, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

// Update patches a client row and returns the canonical row
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients SET
			full_name = $2, email = $3, phone_number = $4, document = $5,
			notes = $6, tags = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.FullName, c.Email, c.PhoneNumber, c.Document, c.Notes,
		c.Tags, c.IsActive,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	return nil
}
