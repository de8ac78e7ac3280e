package opportunity

import (
	"context"
	"testing"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	xerrors "tripdesk-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOpportunityFallsBackToRepo(t *testing.T) {
	now := time.Now()
	svc, _, store := newTestService(t, now)

	o := seedOpportunity(t, svc, nil)

	// Simulate a cold cache: drop the store and fetch again.
	store.SetOpportunities(nil)
	_, ok := store.Opportunity(o.ID)
	require.False(t, ok)

	got, err := svc.GetOpportunity(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	// And the fetch warms the cache back up.
	_, ok = store.Opportunity(o.ID)
	assert.True(t, ok)
}

func TestGetOpportunityNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())

	_, err := svc.GetOpportunity(context.Background(), 404)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestUpsertMilestoneCreate(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, now)
	o := seedOpportunity(t, svc, nil)

	amount := 3000.0
	due := now.AddDate(0, 0, 15)
	updated, err := svc.UpsertMilestone(context.Background(), o.ID, &domain.UpsertMilestoneRequest{
		Label:   "Entrada",
		Amount:  &amount,
		DueDate: &due,
	})
	require.NoError(t, err)

	require.Len(t, updated.Payments, 1)
	m := updated.Payments[0]
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Entrada", m.Label)
	assert.Equal(t, 3000.0, m.Amount)
	assert.Equal(t, due, m.DueDate)
	assert.Equal(t, domain.MilestoneMissing, m.Status)
}

func TestUpsertMilestoneStatusOverrideIsVerbatim(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, now)

	o := seedOpportunity(t, svc, func(o *domain.Opportunity) {
		o.Payments = []domain.PaymentMilestone{{
			ID:     "m-1",
			Label:  "Sinal",
			Amount: 4000,
		}}
	})

	// Agent flags a fully-unpaid milestone as PAID: the override sticks,
	// no reconciliation against the amounts.
	status := domain.MilestonePaid
	updated, err := svc.UpsertMilestone(context.Background(), o.ID, &domain.UpsertMilestoneRequest{
		MilestoneID: "m-1",
		Status:      &status,
	})
	require.NoError(t, err)

	m := updated.Payments[0]
	assert.Equal(t, domain.MilestonePaid, m.Status)
	assert.Equal(t, 0.0, m.PaidAmount)
	// The derived view still tells the truth.
	assert.Equal(t, domain.MilestoneOverdue, m.ComputedStatus(now.AddDate(0, 0, 1)))
}

func TestUpsertMilestoneUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())
	o := seedOpportunity(t, svc, nil)

	_, err := svc.UpsertMilestone(context.Background(), o.ID, &domain.UpsertMilestoneRequest{
		MilestoneID: "does-not-exist",
	})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestSetTaskDone(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())

	o := seedOpportunity(t, svc, func(o *domain.Opportunity) {
		o.Tasks = []domain.Task{{ID: "t-1", Title: "Ligar para o cliente"}}
	})

	updated, err := svc.SetTaskDone(context.Background(), o.ID, "t-1", true)
	require.NoError(t, err)
	assert.True(t, updated.Tasks[0].Done)

	updated, err = svc.SetTaskDone(context.Background(), o.ID, "t-1", false)
	require.NoError(t, err)
	assert.False(t, updated.Tasks[0].Done)

	_, err = svc.SetTaskDone(context.Background(), o.ID, "nope", true)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestListOpportunitiesSortedByID(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())

	first := seedOpportunity(t, svc, nil)
	second := seedOpportunity(t, svc, nil)

	list := svc.ListOpportunities(context.Background())
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
