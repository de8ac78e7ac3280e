package opportunity

import (
	"testing"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStageRequirementsBriefing(t *testing.T) {
	// Empty opportunity: every briefing requirement fails, in checklist order.
	o := &domain.Opportunity{}
	result := CheckStageRequirements(o, domain.StageBriefing)

	assert.False(t, result.Met)
	assert.Equal(t, []string{
		MissingDepartureDate,
		MissingAdults,
		MissingBudget,
		MissingTripReason,
	}, result.Missing)

	departure := time.Now().AddDate(0, 1, 0)
	o = &domain.Opportunity{
		DepartureDate: &departure,
		Adults:        2,
		Budget:        8000,
		TripReason:    "lua de mel",
	}
	result = CheckStageRequirements(o, domain.StageBriefing)
	assert.True(t, result.Met)
	assert.Empty(t, result.Missing)
}

func TestCheckStageRequirementsPropostaIncludesBriefing(t *testing.T) {
	o := &domain.Opportunity{Adults: 2, Budget: 5000}
	result := CheckStageRequirements(o, domain.StageProposta)

	assert.False(t, result.Met)
	assert.Equal(t, []string{
		MissingDepartureDate,
		MissingTripReason,
		MissingOption,
		MissingQuoteExpiry,
	}, result.Missing)
}

func TestCheckStageRequirementsNegociacao(t *testing.T) {
	o := &domain.Opportunity{
		Options:        []domain.ProposalOption{{ID: "opt"}},
		ProposalStatus: domain.ProposalStatusDraft,
	}
	result := CheckStageRequirements(o, domain.StageNegociacao)
	assert.Equal(t, []string{MissingFinalized, MissingFollowUpTask}, result.Missing)

	o.ProposalStatus = domain.ProposalStatusFinalized
	o.Tasks = []domain.Task{{Type: domain.TaskTypeFollowUp}}
	result = CheckStageRequirements(o, domain.StageNegociacao)
	assert.True(t, result.Met)
}

func TestCheckStageRequirementsFechado(t *testing.T) {
	o := &domain.Opportunity{Options: []domain.ProposalOption{{ID: "opt"}}}
	result := CheckStageRequirements(o, domain.StageFechado)
	assert.Equal(t, []string{MissingAccepted}, result.Missing)

	o.Options[0].IsAccepted = true
	result = CheckStageRequirements(o, domain.StageFechado)
	assert.True(t, result.Met)
}

func TestCheckStageRequirementsNovoAlwaysMet(t *testing.T) {
	result := CheckStageRequirements(&domain.Opportunity{}, domain.StageNovo)
	assert.True(t, result.Met)
	assert.Empty(t, result.Missing)
}

func TestCheckStageRequirementsDoesNotMutate(t *testing.T) {
	o := &domain.Opportunity{Adults: 2, Budget: 5000, Temperature: 30}
	before := o.Clone()

	_ = CheckStageRequirements(o, domain.StageProposta)
	_ = CheckStageRequirements(o, domain.StageFechado)

	require.Equal(t, before, o)
}
