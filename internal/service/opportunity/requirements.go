// internal/service/opportunity/requirements.go
package opportunity

import (
	domain "tripdesk-service/internal/domain/opportunity"
)

// Human-readable checklist labels. The UI renders these verbatim, so they
// stay in the agents' working language.
const (
	MissingDepartureDate = "Data sugerida (partida)"
	MissingAdults        = "Número de adultos"
	MissingBudget        = "Orçamento definido"
	MissingTripReason    = "Motivo da viagem"
	MissingOption        = "Pelo menos uma opção de proposta"
	MissingQuoteExpiry   = "Validade da cotação definida"
	MissingFinalized     = "Proposta finalizada"
	MissingFollowUpTask  = "Tarefa de follow-up criada"
	MissingAccepted      = "Opção de proposta aceita"
)

// CheckStageRequirements evaluates the entry checklist for targetStage.
// It is a read-only predicate: it never mutates o, and the PROPOSTA check
// recurses into the BRIEFING one.
func CheckStageRequirements(o *domain.Opportunity, targetStage domain.Stage) domain.RequirementResult {
	missing := []string{}

	switch targetStage {
	case domain.StageBriefing:
		if o.DepartureDate == nil {
			missing = append(missing, MissingDepartureDate)
		}
		if o.Adults <= 0 {
			missing = append(missing, MissingAdults)
		}
		if o.Budget <= 0 {
			missing = append(missing, MissingBudget)
		}
		if o.TripReason == "" {
			missing = append(missing, MissingTripReason)
		}

	case domain.StageProposta:
		briefing := CheckStageRequirements(o, domain.StageBriefing)
		missing = append(missing, briefing.Missing...)
		if len(o.Options) == 0 {
			missing = append(missing, MissingOption)
		}
		if o.QuoteExpiry == nil {
			missing = append(missing, MissingQuoteExpiry)
		}

	case domain.StageNegociacao:
		if len(o.Options) == 0 {
			missing = append(missing, MissingOption)
		}
		if o.ProposalStatus != domain.ProposalStatusFinalized {
			missing = append(missing, MissingFinalized)
		}
		if !hasFollowUpTask(o) {
			missing = append(missing, MissingFollowUpTask)
		}

	case domain.StageFechado:
		if o.AcceptedOption() == nil {
			missing = append(missing, MissingAccepted)
		}
	}

	return domain.RequirementResult{Met: len(missing) == 0, Missing: missing}
}

func hasFollowUpTask(o *domain.Opportunity) bool {
	for _, t := range o.Tasks {
		if t.Type == domain.TaskTypeFollowUp {
			return true
		}
	}
	return false
}
