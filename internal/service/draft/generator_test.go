package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"
	"tripdesk-service/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGenerator scripts the remote text service.
type stubGenerator struct {
	enabled bool
	text    string
	err     error
	prompts []string
}

func (g *stubGenerator) Enabled() bool { return g.enabled }

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.text, g.err
}

// memRepo is a minimal in-memory persistence gateway for draft tests.
type memRepo struct {
	byID map[int64]*domain.Opportunity
}

func newMemRepo() *memRepo {
	return &memRepo{byID: make(map[int64]*domain.Opportunity)}
}

func (r *memRepo) Create(ctx context.Context, o *domain.Opportunity) error {
	r.byID[o.ID] = o.Clone()
	return nil
}

func (r *memRepo) Save(ctx context.Context, o *domain.Opportunity) error {
	if _, ok := r.byID[o.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.byID[o.ID] = o.Clone()
	return nil
}

func (r *memRepo) FindByID(ctx context.Context, id int64) (*domain.Opportunity, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *memRepo) FindAll(ctx context.Context) ([]*domain.Opportunity, error) {
	var list []*domain.Opportunity
	for _, o := range r.byID {
		list = append(list, o.Clone())
	}
	return list, nil
}

func newTestService(t *testing.T, gen TextGenerator, seed *domain.Opportunity) *Service {
	t.Helper()
	repo := newMemRepo()
	store := state.NewStore()
	require.NoError(t, repo.Create(context.Background(), seed))
	store.PutOpportunity(seed)

	svc := NewService(repo, store, gen, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func sampleOpportunity() *domain.Opportunity {
	departure := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	expiry := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	return &domain.Opportunity{
		ID:            1,
		Title:         "Lua de mel em Lisboa",
		Budget:        10000,
		Adults:        2,
		Children:      1,
		TripReason:    "lua de mel",
		Destination:   "Lisboa",
		DepartureDate: &departure,
		QuoteExpiry:   &expiry,
		Options: []domain.ProposalOption{
			{Label: "Premium", TotalPrice: 10000, Description: "Pacote premium"},
		},
	}
}

func TestTemplateFallbackAllKindsNonEmpty(t *testing.T) {
	kinds := []domain.DraftKind{
		domain.DraftMissingQuestions,
		domain.DraftIdeas,
		domain.DraftItinerary,
		domain.DraftProposalText,
	}

	for _, kind := range kinds {
		svc := newTestService(t, &stubGenerator{enabled: false}, sampleOpportunity())

		result, err := svc.GenerateDraft(context.Background(), 1, kind, "ana")
		require.NoError(t, err, "kind=%s", kind)
		require.NotEmpty(t, result.Drafts, "kind=%s", kind)

		d := result.Drafts[0]
		assert.Equal(t, kind, d.Kind)
		assert.Equal(t, "template", d.Source)
		assert.NotEmpty(t, d.Content)
	}
}

func TestTemplateFallbackOnEmptyBriefing(t *testing.T) {
	// Even a bare opportunity must yield usable draft text.
	svc := newTestService(t, &stubGenerator{}, &domain.Opportunity{ID: 1, Title: "Novo lead"})

	result, err := svc.GenerateDraft(context.Background(), 1, domain.DraftMissingQuestions, "")
	require.NoError(t, err)

	content := result.Drafts[0].Content
	assert.Contains(t, content, "Qual a data sugerida de partida?")
	assert.Contains(t, content, "Quantos adultos viajam?")
	assert.Contains(t, content, "Qual o orçamento disponível para a viagem?")
}

func TestLLMUsedWhenEnabled(t *testing.T) {
	gen := &stubGenerator{enabled: true, text: "Texto gerado remotamente."}
	svc := newTestService(t, gen, sampleOpportunity())

	result, err := svc.GenerateDraft(context.Background(), 1, domain.DraftIdeas, "ana")
	require.NoError(t, err)

	d := result.Drafts[0]
	assert.Equal(t, "llm", d.Source)
	assert.Equal(t, "Texto gerado remotamente.", d.Content)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Lisboa")
	assert.Contains(t, gen.prompts[0], "lua de mel")
}

func TestLLMFailureFallsBackToTemplate(t *testing.T) {
	gen := &stubGenerator{enabled: true, err: errors.New("upstream timeout")}
	svc := newTestService(t, gen, sampleOpportunity())

	result, err := svc.GenerateDraft(context.Background(), 1, domain.DraftItinerary, "")
	require.NoError(t, err)

	d := result.Drafts[0]
	assert.Equal(t, "template", d.Source)
	assert.NotEmpty(t, d.Content)
}

func TestLLMEmptyOutputFallsBackToTemplate(t *testing.T) {
	gen := &stubGenerator{enabled: true, text: "   \n"}
	svc := newTestService(t, gen, sampleOpportunity())

	result, err := svc.GenerateDraft(context.Background(), 1, domain.DraftProposalText, "")
	require.NoError(t, err)
	assert.Equal(t, "template", result.Drafts[0].Source)
}

func TestUnknownDraftKind(t *testing.T) {
	svc := newTestService(t, &stubGenerator{}, sampleOpportunity())

	_, err := svc.GenerateDraft(context.Background(), 1, domain.DraftKind("poema"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestDraftsPrependedMostRecentFirst(t *testing.T) {
	svc := newTestService(t, &stubGenerator{}, sampleOpportunity())

	_, err := svc.GenerateDraft(context.Background(), 1, domain.DraftIdeas, "")
	require.NoError(t, err)
	result, err := svc.GenerateDraft(context.Background(), 1, domain.DraftItinerary, "")
	require.NoError(t, err)

	require.Len(t, result.Drafts, 2)
	assert.Equal(t, domain.DraftItinerary, result.Drafts[0].Kind)
	assert.Equal(t, domain.DraftIdeas, result.Drafts[1].Kind)
}

func TestDraftGenerationIsAudited(t *testing.T) {
	svc := newTestService(t, &stubGenerator{}, sampleOpportunity())

	result, err := svc.GenerateDraft(context.Background(), 1, domain.DraftIdeas, "ana")
	require.NoError(t, err)

	require.NotEmpty(t, result.History)
	assert.Equal(t, "Rascunho gerado (ideas)", result.History[0].Action)
	assert.Equal(t, "ana", result.History[0].Actor)
}

func TestProposalTextIncludesOptionsAndExpiry(t *testing.T) {
	svc := newTestService(t, &stubGenerator{}, sampleOpportunity())

	result, err := svc.GenerateDraft(context.Background(), 1, domain.DraftProposalText, "")
	require.NoError(t, err)

	content := result.Drafts[0].Content
	assert.Contains(t, content, "Premium")
	assert.Contains(t, content, "10000.00")
	assert.Contains(t, content, "10/06/2025")
	assert.Contains(t, content, "2 adulto(s)")
	assert.Contains(t, content, "1 criança(s)")
}
