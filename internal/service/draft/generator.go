// internal/service/draft/generator.go
package draft

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/pkg/ratelimit"
	opportunitysvc "tripdesk-service/internal/service/opportunity"
	"tripdesk-service/internal/state"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// TextGenerator is the external generative-text contract. Satisfied by
// llm.Client.
type TextGenerator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service produces sales drafts: remote generation when configured,
// deterministic local templates otherwise. Unavailability of the remote
// service is never an error on this path.
type Service struct {
	repo    opportunitysvc.Repository
	store   *state.Store
	gen     TextGenerator
	limiter *ratelimit.Limiter
	logger  *zap.Logger

	now func() time.Time
}

func NewService(repo opportunitysvc.Repository, store *state.Store, gen TextGenerator, limiter *ratelimit.Limiter, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		store:   store,
		gen:     gen,
		limiter: limiter,
		logger:  logger,
		now:     time.Now,
	}
}

// GenerateDraft builds the requested draft kind, prepends it to the
// opportunity's draft list and persists through the opportunity save path.
func (s *Service) GenerateDraft(ctx context.Context, id int64, kind domain.DraftKind, actor string) (*domain.Opportunity, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, fmt.Sprintf("draft:%d", id))
		if err != nil {
			s.logger.Warn("rate limiter unavailable, allowing draft", zap.Error(err))
		}
		if !allowed {
			return nil, xerrors.ErrRateLimited
		}
	}

	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, ok := s.store.Opportunity(id)
	if !ok {
		var err error
		o, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	now := s.now()
	content, source := s.render(ctx, o, kind, now)
	if content == "" {
		return nil, fmt.Errorf("%w: unknown draft kind %q", xerrors.ErrInvalidInput, kind)
	}

	o.PrependDraft(domain.Draft{
		ID:        ulid.Make().String(),
		Kind:      kind,
		Content:   content,
		Source:    source,
		CreatedAt: now,
	})
	o.LastInteractionAt = now
	o.PrependHistory(domain.AuditLog{
		ID:     ulid.Make().String(),
		Actor:  actorOrSystem(actor),
		Action: fmt.Sprintf("Rascunho gerado (%s)", kind),
		At:     now,
	})

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to save opportunity: %w", err)
	}
	s.store.PutOpportunity(o)

	s.logger.Info("draft generated",
		zap.Int64("opportunity_id", id),
		zap.String("kind", string(kind)),
		zap.String("source", source),
	)

	return o, nil
}

// render tries the remote service first and falls back to the local
// template on missing configuration, call failure or empty output.
func (s *Service) render(ctx context.Context, o *domain.Opportunity, kind domain.DraftKind, now time.Time) (content, source string) {
	fallback := s.fallback(o, kind, now)
	if fallback == "" {
		return "", ""
	}

	if s.gen == nil || !s.gen.Enabled() {
		return fallback, "template"
	}

	prompt := buildPrompt(o, kind)
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Warn("generative service unavailable, using template",
				zap.Int64("opportunity_id", o.ID),
				zap.Error(err),
			)
		}
		return fallback, "template"
	}
	return text, "llm"
}

func (s *Service) fallback(o *domain.Opportunity, kind domain.DraftKind, now time.Time) string {
	switch kind {
	case domain.DraftMissingQuestions:
		return fallbackMissingQuestions(o)
	case domain.DraftIdeas:
		return fallbackIdeas(o)
	case domain.DraftItinerary:
		return fallbackItinerary(o)
	case domain.DraftProposalText:
		return fallbackProposalText(o, now)
	default:
		return ""
	}
}

func buildPrompt(o *domain.Opportunity, kind domain.DraftKind) string {
	var b strings.Builder
	b.WriteString("Você é um agente de viagens experiente. Dados do briefing:\n")
	b.WriteString(fmt.Sprintf("- Título: %s\n", o.Title))
	if o.Destination != "" {
		b.WriteString(fmt.Sprintf("- Destino: %s\n", o.Destination))
	}
	b.WriteString(fmt.Sprintf("- Orçamento: R$ %.2f\n", o.Budget))
	b.WriteString(fmt.Sprintf("- Passageiros: %d adulto(s), %d criança(s)\n", o.Adults, o.Children))
	if o.TripReason != "" {
		b.WriteString(fmt.Sprintf("- Motivo da viagem: %s\n", o.TripReason))
	}
	if o.DepartureDate != nil {
		b.WriteString(fmt.Sprintf("- Partida sugerida: %s\n", o.DepartureDate.Format("02/01/2006")))
	}
	b.WriteString("\n")

	switch kind {
	case domain.DraftMissingQuestions:
		b.WriteString("Liste as perguntas que ainda precisam ser feitas ao cliente para completar o briefing.")
	case domain.DraftIdeas:
		b.WriteString("Sugira três ângulos de precificação para a proposta, um upsell e duas perguntas de qualificação.")
	case domain.DraftItinerary:
		b.WriteString("Monte um roteiro dia a dia para essa viagem.")
	case domain.DraftProposalText:
		b.WriteString("Escreva o texto formal da proposta comercial para o cliente.")
	}
	return b.String()
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return "sistema"
	}
	return actor
}
