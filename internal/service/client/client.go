// internal/service/client/client.go
package client

import (
	"context"
	"database/sql"
	"fmt"

	"tripdesk-service/internal/domain/client"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/state"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, c *client.Client) error
	FindByID(ctx context.Context, id int64) (*client.Client, error)
	FindAll(ctx context.Context) ([]client.Client, error)
	Update(ctx context.Context, c *client.Client) error
}

type ClientService struct {
	repo   Repository
	store  *state.Store
	logger *zap.Logger
}

func NewClientService(repo Repository, store *state.Store, logger *zap.Logger) *ClientService {
	return &ClientService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// CreateClient registers a new client record
func (s *ClientService) CreateClient(ctx context.Context, req *client.CreateClientRequest) (*client.Client, error) {
	if req.FullName == "" || req.PhoneNumber == "" {
		return nil, xerrors.ErrInvalidInput
	}

	c := &client.Client{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       sql.NullString{String: req.Email, Valid: req.Email != ""},
		Document:    sql.NullString{String: req.Document, Valid: req.Document != ""},
		Notes:       sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		Tags:        pq.StringArray(req.Tags),
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create client", zap.Error(err))
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.store.PutClient(*c)

	s.logger.Info("client created", zap.Int64("client_id", c.ID))
	return c, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// ListClients returns the cached client list
func (s *ClientService) ListClients(ctx context.Context) []client.Client {
	return s.store.Clients()
}

// UpdateClient patches a client record
func (s *ClientService) UpdateClient(ctx context.Context, id int64, req *client.UpdateClientRequest) (*client.Client, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.Email != nil {
		c.Email = sql.NullString{String: *req.Email, Valid: *req.Email != ""}
	}
	if req.PhoneNumber != nil {
		c.PhoneNumber = *req.PhoneNumber
	}
	if req.Document != nil {
		c.Document = sql.NullString{String: *req.Document, Valid: *req.Document != ""}
	}
	if req.Notes != nil {
		c.Notes = sql.NullString{String: *req.Notes, Valid: *req.Notes != ""}
	}
	if req.Tags != nil {
		c.Tags = pq.StringArray(*req.Tags)
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update client", zap.Error(err))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.store.PutClient(*c)
	return c, nil
}
