// internal/service/proposal/service.go
package proposal

import (
	"context"
	"fmt"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"
	opportunitysvc "tripdesk-service/internal/service/opportunity"
	"tripdesk-service/internal/state"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Service mutates proposal options through the opportunity's save path.
// Options and components are never addressable on their own.
type Service struct {
	repo   opportunitysvc.Repository
	store  *state.Store
	logger *zap.Logger

	now func() time.Time
}

func NewService(repo opportunitysvc.Repository, store *state.Store, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) getOpportunity(ctx context.Context, id int64) (*domain.Opportunity, error) {
	if o, ok := s.store.Opportunity(id); ok {
		return o, nil
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) persist(ctx context.Context, o *domain.Opportunity) error {
	if err := s.repo.Save(ctx, o); err != nil {
		return fmt.Errorf("failed to save opportunity: %w", err)
	}
	s.store.PutOpportunity(o)
	return nil
}

// GenerateAndAttach builds the three tiers and appends them to the
// opportunity's option list.
func (s *Service) GenerateAndAttach(ctx context.Context, id int64, actor string) (*domain.Opportunity, error) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, err := s.getOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	options := GenerateProposals(o)
	o.Options = append(o.Options, options...)

	if o.ProposalStatus == domain.ProposalStatusNone {
		o.ProposalStatus = domain.ProposalStatusDraft
	}
	o.LastInteractionAt = now
	o.PrependHistory(domain.AuditLog{
		ID:     ulid.Make().String(),
		Actor:  actorOrSystem(actor),
		Action: "Propostas geradas (Eco/Premium/Luxo)",
		At:     now,
	})

	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("proposals generated",
		zap.Int64("opportunity_id", id),
		zap.Int("options", len(options)),
	)

	return o, nil
}

// AcceptOption marks one option accepted and clears every sibling, keeping
// the at-most-one-accepted invariant.
func (s *Service) AcceptOption(ctx context.Context, id int64, optionID string, actor string) (*domain.Opportunity, error) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, err := s.getOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}

	var accepted *domain.ProposalOption
	for i := range o.Options {
		if o.Options[i].ID == optionID {
			accepted = &o.Options[i]
			break
		}
	}
	if accepted == nil {
		return nil, xerrors.ErrNotFound
	}

	for i := range o.Options {
		o.Options[i].IsAccepted = false
	}
	accepted.IsAccepted = true

	now := s.now()
	o.LastInteractionAt = now
	o.PrependHistory(domain.AuditLog{
		ID:     ulid.Make().String(),
		Actor:  actorOrSystem(actor),
		Action: fmt.Sprintf("Opção %s aceita pelo cliente", accepted.Label),
		At:     now,
	})

	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// AddComponent appends a cost line item and recomputes the derived total.
func (s *Service) AddComponent(ctx context.Context, id int64, req *domain.AddComponentRequest) (*domain.Opportunity, error) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, err := s.getOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}

	opt := findOption(o, req.OptionID)
	if opt == nil {
		return nil, xerrors.ErrNotFound
	}

	opt.Components = append(opt.Components, domain.ProposalComponent{
		ID:          ulid.Make().String(),
		OptionID:    opt.ID,
		Kind:        req.Kind,
		Description: req.Description,
		Cost:        req.Cost,
		Margin:      req.Margin,
	})
	opt.RecalculateTotal()

	o.LastInteractionAt = s.now()
	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// RemoveComponent drops a cost line item and recomputes the derived total.
func (s *Service) RemoveComponent(ctx context.Context, id int64, optionID, componentID string) (*domain.Opportunity, error) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, err := s.getOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}

	opt := findOption(o, optionID)
	if opt == nil {
		return nil, xerrors.ErrNotFound
	}

	found := false
	kept := opt.Components[:0]
	for _, c := range opt.Components {
		if c.ID == componentID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return nil, xerrors.ErrNotFound
	}
	opt.Components = kept
	opt.RecalculateTotal()

	o.LastInteractionAt = s.now()
	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func findOption(o *domain.Opportunity, optionID string) *domain.ProposalOption {
	for i := range o.Options {
		if o.Options[i].ID == optionID {
			return &o.Options[i]
		}
	}
	return nil
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return "sistema"
	}
	return actor
}
