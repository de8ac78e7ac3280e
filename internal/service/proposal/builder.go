// internal/service/proposal/builder.go
package proposal

import (
	"math"

	domain "tripdesk-service/internal/domain/opportunity"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
)

const (
	minBudgetFloor = 2000
	minNetCost     = 650
)

type tierSpec struct {
	label            string
	budgetMultiplier float64
	margin           float64
	qualityScore     int
	description      string
	inclusions       []string
}

// Fixed tier table. Quality score ranks tiers on screen and feeds nothing
// else.
var tiers = []tierSpec{
	{
		label:            "Eco",
		budgetMultiplier: 0.82,
		margin:           0.10,
		qualityScore:     68,
		description:      "Pacote econômico: o essencial da viagem com o melhor custo-benefício.",
		inclusions:       []string{"Aéreo em classe econômica", "Hotel 3 estrelas", "Transfer compartilhado", "Seguro viagem básico"},
	},
	{
		label:            "Premium",
		budgetMultiplier: 1.0,
		margin:           0.14,
		qualityScore:     86,
		description:      "Pacote premium: conforto e flexibilidade dentro do orçamento planejado.",
		inclusions:       []string{"Aéreo com bagagem despachada", "Hotel 4 estrelas", "Transfer privativo", "Seguro viagem completo"},
	},
	{
		label:            "Luxo",
		budgetMultiplier: 1.35,
		margin:           0.18,
		qualityScore:     97,
		description:      "Pacote luxo: experiência completa com hospedagem e serviços de alto padrão.",
		inclusions:       []string{"Aéreo em classe executiva", "Hotel 5 estrelas", "Transfer privativo de luxo", "Seguro viagem premium", "Concierge dedicado"},
	},
}

// Net cost split across the four standard component kinds.
var componentSplit = []struct {
	kind   domain.ComponentKind
	desc   string
	weight float64
}{
	{domain.ComponentFlight, "Aéreo", 0.38},
	{domain.ComponentHotel, "Hospedagem", 0.40},
	{domain.ComponentTransfer, "Transfers", 0.12},
	{domain.ComponentInsurance, "Seguro viagem", 0.10},
}

// GenerateProposals derives the three pricing tiers from the opportunity's
// budget. Pure and side-effect free: the caller decides whether to attach
// the result.
func GenerateProposals(o *domain.Opportunity) []domain.ProposalOption {
	base := math.Max(o.Budget, minBudgetFloor)

	options := make([]domain.ProposalOption, 0, len(tiers))
	for _, tier := range tiers {
		saleTarget := base * tier.budgetMultiplier
		netCost := math.Round(saleTarget / (1 + tier.margin))
		if netCost < minNetCost {
			netCost = minNetCost
		}

		opt := domain.ProposalOption{
			ID:            ulid.Make().String(),
			OpportunityID: o.ID,
			Label:         tier.label,
			Description:   tier.description,
			Inclusions:    pq.StringArray(tier.inclusions),
			QualityScore:  tier.qualityScore,
			Version:       o.NextOptionVersion(tier.label),
		}

		for _, part := range componentSplit {
			opt.Components = append(opt.Components, domain.ProposalComponent{
				ID:          ulid.Make().String(),
				OptionID:    opt.ID,
				Kind:        part.kind,
				Description: part.desc,
				Cost:        math.Round(netCost*part.weight*100) / 100,
				Margin:      tier.margin,
			})
		}

		opt.RecalculateTotal()
		options = append(options, opt)
	}

	return options
}
