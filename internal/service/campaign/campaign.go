// internal/service/campaign/campaign.go
package campaign

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-service/internal/domain/campaign"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/state"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, c *campaign.Campaign) error
	FindByID(ctx context.Context, id int64) (*campaign.Campaign, error)
	FindAll(ctx context.Context) ([]campaign.Campaign, error)
	Update(ctx context.Context, c *campaign.Campaign) error
	IncrementLeads(ctx context.Context, id int64) error
}

type CampaignService struct {
	repo   Repository
	store  *state.Store
	logger *zap.Logger
}

func NewCampaignService(repo Repository, store *state.Store, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (s *CampaignService) CreateCampaign(ctx context.Context, req *campaign.CreateCampaignRequest) (*campaign.Campaign, error) {
	if req.Name == "" {
		return nil, xerrors.ErrInvalidInput
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", xerrors.ErrInvalidInput)
	}

	c := &campaign.Campaign{
		Name:        req.Name,
		Channel:     req.Channel,
		Description: sql.NullString{String: req.Description, Valid: req.Description != ""},
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      campaign.StatusActive,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create campaign", zap.Error(err))
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	s.store.PutCampaign(*c)

	s.logger.Info("campaign created",
		zap.Int64("campaign_id", c.ID),
		zap.String("channel", string(c.Channel)),
	)
	return c, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id int64) (*campaign.Campaign, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CampaignService) ListCampaigns(ctx context.Context) []campaign.Campaign {
	return s.store.Campaigns()
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, id int64, req *campaign.UpdateCampaignRequest) (*campaign.Campaign, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Channel != nil {
		c.Channel = *req.Channel
	}
	if req.Description != nil {
		c.Description = sql.NullString{String: *req.Description, Valid: *req.Description != ""}
	}
	if req.Budget != nil {
		c.Budget = *req.Budget
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = *req.EndDate
	}
	if req.Status != nil {
		c.Status = *req.Status
	}

	if c.EndDate.Before(c.StartDate) {
		return nil, fmt.Errorf("%w: end date must be after start date", xerrors.ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update campaign", zap.Error(err))
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	s.store.PutCampaign(*c)
	return c, nil
}

// RegisterLead attributes one intake to the campaign.
func (s *CampaignService) RegisterLead(ctx context.Context, id int64) error {
	if err := s.repo.IncrementLeads(ctx, id); err != nil {
		return err
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.store.PutCampaign(*c)
	return nil
}
