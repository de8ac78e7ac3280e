package proposal

import (
	"testing"

	domain "tripdesk-service/internal/domain/opportunity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProposalsThreeTiers(t *testing.T) {
	o := &domain.Opportunity{ID: 1, Budget: 10000}

	options := GenerateProposals(o)
	require.Len(t, options, 3)

	assert.Equal(t, "Eco", options[0].Label)
	assert.Equal(t, "Premium", options[1].Label)
	assert.Equal(t, "Luxo", options[2].Label)

	// Tiers are strictly ordered by price and quality.
	assert.Less(t, options[0].TotalPrice, options[1].TotalPrice)
	assert.Less(t, options[1].TotalPrice, options[2].TotalPrice)
	assert.Less(t, options[0].QualityScore, options[1].QualityScore)
	assert.Less(t, options[1].QualityScore, options[2].QualityScore)

	for _, opt := range options {
		assert.NotEmpty(t, opt.ID)
		assert.Equal(t, int64(1), opt.OpportunityID)
		assert.NotEmpty(t, opt.Description)
		assert.NotEmpty(t, opt.Inclusions)
		assert.Equal(t, 1, opt.Version)
		assert.False(t, opt.IsAccepted)
		assert.Positive(t, opt.TotalPrice)
	}
}

func TestGenerateProposalsComponentBreakdown(t *testing.T) {
	o := &domain.Opportunity{ID: 1, Budget: 10000}

	options := GenerateProposals(o)
	for _, opt := range options {
		require.Len(t, opt.Components, 4, "label=%s", opt.Label)

		kinds := make(map[domain.ComponentKind]bool)
		var sum float64
		for _, c := range opt.Components {
			kinds[c.Kind] = true
			assert.Equal(t, opt.ID, c.OptionID)
			assert.Positive(t, c.Cost)
			sum += c.Cost * (1 + c.Margin)
		}
		assert.True(t, kinds[domain.ComponentFlight])
		assert.True(t, kinds[domain.ComponentHotel])
		assert.True(t, kinds[domain.ComponentTransfer])
		assert.True(t, kinds[domain.ComponentInsurance])

		// TotalPrice is exactly the derived component sum.
		assert.InDelta(t, sum, opt.TotalPrice, 0.5)
	}
}

func TestGenerateProposalsPremiumNearBudget(t *testing.T) {
	o := &domain.Opportunity{Budget: 10000}

	options := GenerateProposals(o)
	premium := options[1]

	// Premium targets the budget itself; rounding keeps it within a few
	// currency units.
	assert.InDelta(t, 10000, premium.TotalPrice, 25)
}

func TestGenerateProposalsBudgetFloor(t *testing.T) {
	for _, budget := range []float64{0, -100, 500} {
		options := GenerateProposals(&domain.Opportunity{Budget: budget})
		require.Len(t, options, 3, "budget=%v", budget)
		for _, opt := range options {
			assert.Positive(t, opt.TotalPrice, "budget=%v label=%s", budget, opt.Label)
		}
		// The floor anchors pricing as if the budget were the minimum.
		baseline := GenerateProposals(&domain.Opportunity{Budget: minBudgetFloor})
		for i := range options {
			assert.Equal(t, baseline[i].TotalPrice, options[i].TotalPrice)
		}
	}
}

func TestGenerateProposalsVersionsIncrementPerLabel(t *testing.T) {
	o := &domain.Opportunity{Budget: 6000}

	first := GenerateProposals(o)
	o.Options = append(o.Options, first...)

	second := GenerateProposals(o)
	for i, opt := range second {
		assert.Equal(t, first[i].Label, opt.Label)
		assert.Equal(t, 2, opt.Version)
	}
}
