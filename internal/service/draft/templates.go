// internal/service/draft/templates.go
package draft

import (
	"fmt"
	"strings"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	opportunitysvc "tripdesk-service/internal/service/opportunity"
)

// Deterministic fallback templates. Each must produce non-empty, useful
// text from the briefing fields alone, not an error message.

func fallbackMissingQuestions(o *domain.Opportunity) string {
	check := opportunitysvc.CheckStageRequirements(o, domain.StageBriefing)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Perguntas pendentes do briefing — %s\n\n", o.Title))

	if check.Met {
		b.WriteString("O briefing está completo. Sugestões para aprofundar:\n")
		b.WriteString("- Há preferência de companhia aérea ou horário de voo?\n")
		b.WriteString("- Alguma data de retorno já definida?\n")
		b.WriteString("- Restrições alimentares ou de mobilidade no grupo?\n")
		return b.String()
	}

	b.WriteString("Antes de montar a proposta, confirme com o cliente:\n")
	for _, item := range check.Missing {
		switch item {
		case opportunitysvc.MissingDepartureDate:
			b.WriteString("- Qual a data sugerida de partida?\n")
		case opportunitysvc.MissingAdults:
			b.WriteString("- Quantos adultos viajam?\n")
		case opportunitysvc.MissingBudget:
			b.WriteString("- Qual o orçamento disponível para a viagem?\n")
		case opportunitysvc.MissingTripReason:
			b.WriteString("- Qual o motivo da viagem (lazer, lua de mel, aniversário...)?\n")
		default:
			b.WriteString("- " + item + "\n")
		}
	}
	return b.String()
}

func fallbackIdeas(o *domain.Opportunity) string {
	dest := o.Destination
	if dest == "" {
		dest = "o destino desejado"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Sugestões de venda — %s\n\n", o.Title))
	b.WriteString("Ângulos de precificação:\n")
	b.WriteString(fmt.Sprintf("1. Pacote econômico: priorize o aéreo para %s e hospedagem enxuta, mantendo o valor abaixo do orçamento informado.\n", dest))
	b.WriteString("2. Pacote no orçamento: equilibre hotel de categoria superior com passeios inclusos, usando o orçamento integral como âncora.\n")
	b.WriteString("3. Pacote aspiracional: apresente uma versão acima do orçamento com upgrades visíveis (classe executiva, hotel 5 estrelas) para ancorar a negociação.\n\n")
	b.WriteString("Upsell: ofereça seguro viagem premium e transfer privativo como adicionais de baixo atrito.\n\n")
	b.WriteString("Perguntas para aquecer a conversa:\n")
	b.WriteString("- O que não pode faltar nessa viagem?\n")
	b.WriteString("- Prefere mais conforto no voo ou na hospedagem?\n")
	return b.String()
}

func fallbackItinerary(o *domain.Opportunity) string {
	dest := o.Destination
	if dest == "" {
		dest = "destino"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Roteiro sugerido — %s\n\n", dest))
	b.WriteString("Dia 1: Chegada, transfer ao hotel e check-in. Noite livre para ambientação.\n")
	b.WriteString("Dia 2: City tour pelos pontos principais com guia local.\n")
	b.WriteString("Dia 3: Dia livre para compras e experiências gastronômicas.\n")
	b.WriteString("Dia 4: Passeio de dia inteiro a atração próxima (bate-volta).\n")
	b.WriteString("Dia 5: Manhã livre, check-out e transfer ao aeroporto.\n")
	return b.String()
}

func fallbackProposalText(o *domain.Opportunity, now time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Proposta de viagem — %s\n", o.Title))
	b.WriteString(fmt.Sprintf("Data: %s\n\n", now.Format("02/01/2006")))
	b.WriteString("Prezado(a) cliente,\n\n")
	b.WriteString(fmt.Sprintf("Conforme nosso briefing, preparamos opções de pacote para %d adulto(s)", o.Adults))
	if o.Children > 0 {
		b.WriteString(fmt.Sprintf(" e %d criança(s)", o.Children))
	}
	if o.Destination != "" {
		b.WriteString(fmt.Sprintf(" com destino a %s", o.Destination))
	}
	b.WriteString(".\n\n")

	if len(o.Options) > 0 {
		b.WriteString("Opções disponíveis:\n")
		for _, opt := range o.Options {
			b.WriteString(fmt.Sprintf("- %s: R$ %.2f — %s\n", opt.Label, opt.TotalPrice, opt.Description))
		}
		b.WriteString("\n")
	}

	if o.QuoteExpiry != nil {
		b.WriteString(fmt.Sprintf("Validade da cotação: %s.\n\n", o.QuoteExpiry.Format("02/01/2006")))
	}

	b.WriteString("Ficamos à disposição para ajustar qualquer item do pacote.\n\n")
	b.WriteString("Atenciosamente,\nEquipe de viagens")
	return b.String()
}
