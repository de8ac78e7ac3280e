package proposal

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"
	proposalsvc "tripdesk-service/internal/service/proposal"
	"tripdesk-service/internal/state"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	byID map[int64]*domain.Opportunity
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

func TestAddComponentAcceptsZeroCost(t *testing.T) {
	gin.SetMode(gin.TestMode)

	o := &domain.Opportunity{
		ID:    1,
		Stage: domain.StageProposta,
		Options: []domain.ProposalOption{{
			ID:    "opt1",
			Label: "Premium",
			Components: []domain.ProposalComponent{{
				ID:       "c1",
				OptionID: "opt1",
				Kind:     domain.ComponentHotel,
				Cost:     1000,
				Margin:   0.10,
			}},
			TotalPrice: 1100,
		}},
	}
	repo := &memRepo{byID: map[int64]*domain.Opportunity{1: o.Clone()}}
	store := state.NewStore()
	store.SetOpportunities([]*domain.Opportunity{o})

	h := NewProposalHandler(proposalsvc.NewService(repo, store, zap.NewNop()))

	router := gin.New()
	router.POST("/opportunities/:id/proposals/components", h.AddComponent)

	// Courtesy items have no cost; binding must not reject the zero.
	body := []byte(`{"option_id":"opt1","kind":"transfer","description":"Transfer cortesia","cost":0}`)
	req := httptest.NewRequest(http.MethodPost, "/opportunities/1/proposals/components", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	got, ok := store.Opportunity(1)
	require.True(t, ok)
	require.Len(t, got.Options[0].Components, 2)
	assert.Equal(t, 0.0, got.Options[0].Components[1].Cost)
	assert.Equal(t, 1100.0, got.Options[0].TotalPrice)
}
