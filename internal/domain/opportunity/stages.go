// internal/domain/opportunity/stages.go
package opportunity

// Stage is the canonical pipeline vocabulary used by the rules engine.
type Stage string

const (
	StageNovo       Stage = "NOVO"
	StageBriefing   Stage = "BRIEFING"
	StageProposta   Stage = "PROPOSTA"
	StageNegociacao Stage = "NEGOCIACAO"
	StageFechado    Stage = "FECHADO"
)

// PipelineOrder defines advancement order. Temperature nudges and
// next-stage suggestions compare positions in this slice.
var PipelineOrder = []Stage{
	StageNovo,
	StageBriefing,
	StageProposta,
	StageNegociacao,
	StageFechado,
}

// displayNames maps the canonical vocabulary to the kanban board labels.
// "Perdido" is not a stage: the board renders it from status PERDIDO.
var displayNames = map[Stage]string{
	StageNovo:       "Carteira",
	StageBriefing:   "Carteira",
	StageProposta:   "Proposta Enviada",
	StageNegociacao: "1º Follow up",
	StageFechado:    "Ganho",
}

// displayToStage normalizes board labels back into the canonical vocabulary.
var displayToStage = map[string]Stage{
	"Carteira":         StageBriefing,
	"Proposta Enviada": StageProposta,
	"1º Follow up":     StageNegociacao,
	"2º Follow up":     StageNegociacao,
	"Ganho":            StageFechado,
}

// ParseStage accepts either the canonical or the display vocabulary and
// returns the canonical stage.
func ParseStage(raw string) (Stage, bool) {
	s := Stage(raw)
	if s.Valid() {
		return s, true
	}
	if mapped, ok := displayToStage[raw]; ok {
		return mapped, true
	}
	return "", false
}

// Valid reports whether s is one of the declared pipeline stages.
func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in PipelineOrder, or -1.
func (s Stage) Index() int {
	for i, st := range PipelineOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Display returns the kanban board label for s.
func (s Stage) Display() string {
	if name, ok := displayNames[s]; ok {
		return name
	}
	return string(s)
}

// NextStage returns the stage that follows s in the pipeline, or s itself
// when s is terminal or unknown.
func NextStage(s Stage) Stage {
	i := s.Index()
	if i < 0 || i+1 >= len(PipelineOrder) {
		return s
	}
	return PipelineOrder[i+1]
}
