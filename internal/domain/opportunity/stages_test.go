package opportunity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStage(t *testing.T) {
	cases := []struct {
		raw  string
		want Stage
		ok   bool
	}{
		{"NOVO", StageNovo, true},
		{"BRIEFING", StageBriefing, true},
		{"PROPOSTA", StageProposta, true},
		{"NEGOCIACAO", StageNegociacao, true},
		{"FECHADO", StageFechado, true},
		{"Carteira", StageBriefing, true},
		{"Proposta Enviada", StageProposta, true},
		{"1º Follow up", StageNegociacao, true},
		{"2º Follow up", StageNegociacao, true},
		{"Ganho", StageFechado, true},
		{"Perdido", "", false},
		{"", "", false},
		{"whatever", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseStage(tc.raw)
		require.Equal(t, tc.ok, ok, "raw=%q", tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
	}
}

func TestStageIndexFollowsPipelineOrder(t *testing.T) {
	for i, s := range PipelineOrder {
		assert.Equal(t, i, s.Index())
		assert.True(t, s.Valid())
	}
	assert.Equal(t, -1, Stage("PERDIDO").Index())
}

func TestNextStage(t *testing.T) {
	assert.Equal(t, StageBriefing, NextStage(StageNovo))
	assert.Equal(t, StageProposta, NextStage(StageBriefing))
	assert.Equal(t, StageFechado, NextStage(StageNegociacao))

	// Terminal and unknown stages map to themselves.
	assert.Equal(t, StageFechado, NextStage(StageFechado))
	assert.Equal(t, Stage("bogus"), NextStage(Stage("bogus")))
}

func TestStageDisplay(t *testing.T) {
	assert.Equal(t, "Carteira", StageNovo.Display())
	assert.Equal(t, "Carteira", StageBriefing.Display())
	assert.Equal(t, "Proposta Enviada", StageProposta.Display())
	assert.Equal(t, "1º Follow up", StageNegociacao.Display())
	assert.Equal(t, "Ganho", StageFechado.Display())
}
