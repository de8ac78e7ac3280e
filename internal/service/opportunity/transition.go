// internal/service/opportunity/transition.go
package opportunity

import (
	"context"
	"fmt"
	"math"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// TransitionMeta carries optional human context for a guarded move.
type TransitionMeta struct {
	Actor  string
	Reason string
}

// explicitFields marks which patch fields the caller supplied. Effects are
// skipped for supplied fields. A caller-sent zero still counts as supplied.
type explicitFields struct {
	Status         bool
	Temperature    bool
	Tasks          bool
	History        bool
	ProposalStatus bool
	QuoteExpiry    bool
	Payments       bool
}

// MoveStage is the guarded transition. Validation failures come back inside
// the result, never as an error; errors are reserved for the persistence
// gateway.
func (s *Service) MoveStage(ctx context.Context, id int64, target domain.Stage, meta TransitionMeta) (*domain.MoveStageResult, error) {
	if !target.Valid() {
		return &domain.MoveStageResult{OK: false, Reason: fmt.Sprintf("etapa desconhecida: %s", target)}, nil
	}

	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, ok := s.store.Opportunity(id)
	if !ok {
		return &domain.MoveStageResult{OK: false, Reason: "oportunidade não encontrada"}, nil
	}

	check := CheckStageRequirements(o, target)
	if !check.Met {
		return &domain.MoveStageResult{
			OK:      false,
			Reason:  "requisitos da etapa não atendidos",
			Missing: check.Missing,
		}, nil
	}

	s.applyStageEffects(o, target, meta, explicitFields{}, s.now())

	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}

	s.logger.Info("opportunity stage moved",
		zap.Int64("opportunity_id", id),
		zap.String("stage", string(target)),
	)

	return &domain.MoveStageResult{OK: true, Opportunity: o}, nil
}

// UpdateOpportunity is the free-form patch entry point. When the patch
// moves the stage it converges on the same effects as MoveStage, except
// that any field the caller supplied explicitly wins over the computed
// default.
func (s *Service) UpdateOpportunity(ctx context.Context, id int64, req *domain.UpdateOpportunityRequest) (*domain.Opportunity, error) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, err := s.GetOpportunity(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fromStage := o.Stage

	// Apply explicit fields first; the presence map below tells the
	// effects routine which defaults to leave alone.
	explicit := applyPatch(o, req)

	if req.Stage != nil {
		target, ok := domain.ParseStage(*req.Stage)
		if !ok {
			return nil, fmt.Errorf("%w: unknown stage %q", xerrors.ErrInvalidInput, *req.Stage)
		}
		if target != fromStage {
			meta := TransitionMeta{Actor: "sistema", Reason: "edição direta"}
			s.applyStageEffects(o, target, meta, explicit, now)
			s.nudgeTemperature(o, fromStage, target, explicit)
		}
	}

	o.LastInteractionAt = now
	if err := s.persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func applyPatch(o *domain.Opportunity, req *domain.UpdateOpportunityRequest) explicitFields {
	var explicit explicitFields

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Status != nil {
		o.Status = *req.Status
		explicit.Status = true
	}
	if req.Budget != nil {
		o.Budget = *req.Budget
	}
	if req.Adults != nil {
		o.Adults = *req.Adults
	}
	if req.Children != nil {
		o.Children = *req.Children
	}
	if req.Temperature != nil {
		o.Temperature = domain.ClampTemperature(*req.Temperature)
		explicit.Temperature = true
	}
	if req.TripReason != nil {
		o.TripReason = *req.TripReason
	}
	if req.Destination != nil {
		o.Destination = *req.Destination
	}
	if req.DepartureDate != nil {
		o.DepartureDate = req.DepartureDate
	}
	if req.QuoteExpiry != nil {
		o.QuoteExpiry = req.QuoteExpiry
		explicit.QuoteExpiry = true
	}
	if req.ProposalStatus != nil {
		o.ProposalStatus = *req.ProposalStatus
		explicit.ProposalStatus = true
	}
	if req.SentAt != nil {
		o.SentAt = req.SentAt
	}
	if req.Tasks != nil {
		o.Tasks = *req.Tasks
		explicit.Tasks = true
	}
	if req.Payments != nil {
		o.Payments = *req.Payments
		explicit.Payments = true
	}
	if req.History != nil {
		o.History = *req.History
		explicit.History = true
	}

	return explicit
}

// applyStageEffects is the single routine both entry points converge on.
// Status, temperature ceiling, payment-plan auto-creation and workflow
// stamps happen here and nowhere else.
func (s *Service) applyStageEffects(o *domain.Opportunity, target domain.Stage, meta TransitionMeta, explicit explicitFields, now time.Time) {
	from := o.Stage
	o.Stage = target
	o.LastInteractionAt = now

	if !explicit.Tasks {
		o.Tasks = append(o.Tasks, CreateAutoTasks(o, target, now)...)
	}

	if !explicit.History {
		action := fmt.Sprintf("Etapa alterada: %s → %s", from.Display(), target.Display())
		if meta.Reason != "" {
			action += " — " + meta.Reason
		}
		actor := meta.Actor
		if actor == "" {
			actor = "sistema"
		}
		o.PrependHistory(domain.AuditLog{
			ID:     ulid.Make().String(),
			Actor:  actor,
			Action: action,
			At:     now,
		})
	}

	switch target {
	case domain.StageProposta:
		if o.QuoteExpiry == nil && !explicit.QuoteExpiry {
			expiry := now.AddDate(0, 0, 7)
			o.QuoteExpiry = &expiry
		}
		if o.ProposalStatus == domain.ProposalStatusNone && !explicit.ProposalStatus {
			o.ProposalStatus = domain.ProposalStatusDraft
		}

	case domain.StageFechado:
		if !explicit.Status {
			o.Status = domain.StatusGanho
		}
		if !explicit.Temperature {
			o.Temperature = 100
		}
		if len(o.Payments) == 0 && !explicit.Payments {
			o.Payments = synthesizePaymentPlan(o, now)
		}
		if !explicit.ProposalStatus {
			o.ProposalStatus = domain.ProposalStatusFinalized
		}
		if o.FinalizedAt == nil {
			o.FinalizedAt = &now
		}
	}
}

// nudgeTemperature applies the free-form-edit heat heuristic: +15 moving
// forward in the pipeline, -10 moving backward, clamped. FECHADO already
// pinned the value in applyStageEffects, so the nudge leaves it alone.
func (s *Service) nudgeTemperature(o *domain.Opportunity, from, to domain.Stage, explicit explicitFields) {
	if explicit.Temperature || to == domain.StageFechado {
		return
	}

	fromIdx, toIdx := from.Index(), to.Index()
	if fromIdx < 0 || toIdx < 0 || fromIdx == toIdx {
		return
	}
	if toIdx > fromIdx {
		o.Temperature = domain.ClampTemperature(o.Temperature + 15)
	} else {
		o.Temperature = domain.ClampTemperature(o.Temperature - 10)
	}
}

// Payment plan shape when closing a deal with no installments yet: a
// deposit right away and two equal follow-on installments.
const (
	depositShare   = 0.40
	depositDueDays = 2
	secondDueDays  = 30
	finalDueDays   = 60
)

func synthesizePaymentPlan(o *domain.Opportunity, now time.Time) []domain.PaymentMilestone {
	total := o.Budget
	if accepted := o.AcceptedOption(); accepted != nil {
		total = accepted.TotalPrice
	}
	if total <= 0 {
		total = 2000
	}

	deposit := roundCents(total * depositShare)
	second := roundCents(total * 0.30)
	final := roundCents(total - deposit - second)

	return []domain.PaymentMilestone{
		{
			ID:      ulid.Make().String(),
			Label:   "Sinal",
			Amount:  deposit,
			DueDate: now.AddDate(0, 0, depositDueDays),
			Status:  domain.MilestoneMissing,
		},
		{
			ID:      ulid.Make().String(),
			Label:   "Parcela 2",
			Amount:  second,
			DueDate: now.AddDate(0, 0, secondDueDays),
			Status:  domain.MilestoneMissing,
		},
		{
			ID:      ulid.Make().String(),
			Label:   "Parcela final",
			Amount:  final,
			DueDate: now.AddDate(0, 0, finalDueDays),
			Status:  domain.MilestoneMissing,
		},
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
