// internal/service/opportunity/service.go
package opportunity

import (
	"context"
	"fmt"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/state"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Repository is the persistence gateway the lifecycle engine writes
// through. Satisfied by postgres.OpportunityRepository.
type Repository interface {
	Create(ctx context.Context, o *domain.Opportunity) error
	Save(ctx context.Context, o *domain.Opportunity) error
	FindByID(ctx context.Context, id int64) (*domain.Opportunity, error)
	FindAll(ctx context.Context) ([]*domain.Opportunity, error)
}

// Service owns the opportunity lifecycle: stage transitions, guarded and
// free-form updates, auto-tasks, payment milestones and audit history.
type Service struct {
	repo   Repository
	store  *state.Store
	logger *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, store *state.Store, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

const defaultTemperature = 30

// CreateOpportunity handles sales intake: new deals start open, at the top
// of the pipeline, with a starter temperature.
func (s *Service) CreateOpportunity(ctx context.Context, req *domain.CreateOpportunityRequest, actor string) (*domain.Opportunity, error) {
	if req.ClientID == 0 || req.Title == "" {
		return nil, xerrors.ErrInvalidInput
	}

	now := s.now()
	o := &domain.Opportunity{
		ClientID:          req.ClientID,
		Title:             req.Title,
		Stage:             domain.StageNovo,
		Status:            domain.StatusAberto,
		Budget:            req.Budget,
		Adults:            req.Adults,
		Children:          req.Children,
		Temperature:       defaultTemperature,
		TripReason:        req.TripReason,
		Destination:       req.Destination,
		DepartureDate:     req.DepartureDate,
		LastInteractionAt: now,
	}
	o.PrependHistory(domain.AuditLog{
		ID:     ulid.Make().String(),
		Actor:  actor,
		Action: "Oportunidade criada",
		At:     now,
	})

	if err := s.repo.Create(ctx, o); err != nil {
		s.logger.Error("failed to create opportunity", zap.Error(err))
		return nil, fmt.Errorf("failed to create opportunity: %w", err)
	}

	s.store.PutOpportunity(o)

	s.logger.Info("opportunity created",
		zap.Int64("opportunity_id", o.ID),
		zap.Int64("client_id", o.ClientID),
	)

	return o, nil
}

// GetOpportunity reads from the in-memory state, falling back to the store
// of record when the cache has not seen the id.
func (s *Service) GetOpportunity(ctx context.Context, id int64) (*domain.Opportunity, error) {
	if o, ok := s.store.Opportunity(id); ok {
		return o, nil
	}

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.store.PutOpportunity(o)
	return o, nil
}

// ListOpportunities returns the cached pipeline.
func (s *Service) ListOpportunities(ctx context.Context) []*domain.Opportunity {
	return s.store.Opportunities()
}

// persist writes the aggregate through the gateway and merges the canonical
// result back into the state store.
func (s *Service) persist(ctx context.Context, o *domain.Opportunity) error {
	if err := s.repo.Save(ctx, o); err != nil {
		return fmt.Errorf("failed to save opportunity: %w", err)
	}
	s.store.PutOpportunity(o)
	return nil
}

// ---------- Payment milestones ----------

// UpsertMilestone adds or patches one installment. Status is an explicit
// operational override: it is applied verbatim, with no reconciliation
// against amount/paid amount.
func (s *Service) UpsertMilestone(ctx context.Context, id int64, req *domain.UpsertMilestoneRequest) (*domain.Opportunity, error) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, err := s.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if req.MilestoneID == "" {
		m := domain.PaymentMilestone{
			ID:      ulid.Make().String(),
			Label:   req.Label,
			DueDate: now,
			Status:  domain.MilestoneMissing,
		}
		applyMilestonePatch(&m, req)
		o.Payments = append(o.Payments, m)
	} else {
		found := false
		for i := range o.Payments {
			if o.Payments[i].ID == req.MilestoneID {
				applyMilestonePatch(&o.Payments[i], req)
				found = true
				break
			}
		}
		if !found {
			return nil, xerrors.ErrNotFound
		}
	}

	o.LastInteractionAt = now
	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func applyMilestonePatch(m *domain.PaymentMilestone, req *domain.UpsertMilestoneRequest) {
	if req.Label != "" {
		m.Label = req.Label
	}
	if req.Amount != nil {
		m.Amount = *req.Amount
	}
	if req.PaidAmount != nil {
		m.PaidAmount = *req.PaidAmount
	}
	if req.DueDate != nil {
		m.DueDate = *req.DueDate
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
}

// ---------- Tasks ----------

// SetTaskDone toggles a task's completion flag.
func (s *Service) SetTaskDone(ctx context.Context, id int64, taskID string, done bool) (*domain.Opportunity, error) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, err := s.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range o.Tasks {
		if o.Tasks[i].ID == taskID {
			o.Tasks[i].Done = done
			found = true
			break
		}
	}
	if !found {
		return nil, xerrors.ErrNotFound
	}

	o.LastInteractionAt = s.now()
	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
