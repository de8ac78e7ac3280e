// internal/repository/postgres/campaign_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"tripdesk-service/internal/domain/campaign"
	xerrors "tripdesk-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepository struct {
	db *pgxpool.Pool
}

func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	query := `
		INSERT INTO campaigns (name, channel, description, budget, start_date, end_date, leads_count, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.Name, c.Channel, c.Description, c.Budget, c.StartDate,
		c.EndDate, c.LeadsCount, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id int64) (*campaign.Campaign, error) {
	query := `
		SELECT id, name, channel, description, budget, start_date, end_date,
		       leads_count, status, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`

	var c campaign.Campaign
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Channel, &c.Description, &c.Budget,
		&c.StartDate, &c.EndDate, &c.LeadsCount, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	return &c, nil
}

func (r *CampaignRepository) FindAll(ctx context.Context) ([]campaign.Campaign, error) {
	query := `
		SELECT id, name, channel, description, budget, start_date, end_date,
		       leads_count, status, created_at, updated_at
		FROM campaigns
		ORDER BY start_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []campaign.Campaign
	for rows.Next() {
		var c campaign.Campaign
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Channel, &c.Description, &c.Budget,
			&c.StartDate, &c.EndDate, &c.LeadsCount, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}

func (r *CampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	query := `
		UPDATE campaigns SET
			name = $2, channel = $3, description = $4, budget = $5,
			start_date = $6, end_date = $7, leads_count = $8, status = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		c.ID, c.Name, c.Channel, c.Description, c.Budget, c.StartDate,
		c.EndDate, c.LeadsCount, c.Status,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}

	return nil
}

// IncrementLeads bumps the attribution counter when an opportunity is
// created from campaign intake.
func (r *CampaignRepository) IncrementLeads(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE campaigns SET leads_count = leads_count + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment campaign leads: %w", err)
	}
	return nil
}
