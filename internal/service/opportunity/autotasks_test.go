package opportunity

import (
	"testing"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAutoTasksPerStage(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	o := &domain.Opportunity{}

	cases := []struct {
		stage domain.Stage
		count int
	}{
		{domain.StageNovo, 0},
		{domain.StageBriefing, 1},
		{domain.StageProposta, 3},
		{domain.StageNegociacao, 2},
		{domain.StageFechado, 3},
	}
	for _, tc := range cases {
		tasks := CreateAutoTasks(o, tc.stage, now)
		assert.Len(t, tasks, tc.count, "stage=%s", tc.stage)
	}
}

func TestCreateAutoTasksDueDates(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	o := &domain.Opportunity{}

	tasks := CreateAutoTasks(o, domain.StageProposta, now)
	require.Len(t, tasks, 3)

	assert.Equal(t, "Enviar proposta ao cliente", tasks[0].Title)
	assert.Equal(t, domain.TaskTypeDocument, tasks[0].Type)
	assert.Equal(t, now, tasks[0].DueDate)

	assert.Equal(t, domain.TaskTypeFollowUp, tasks[1].Type)
	assert.Equal(t, now.AddDate(0, 0, 1), tasks[1].DueDate)
	assert.Equal(t, now.AddDate(0, 0, 3), tasks[2].DueDate)

	for _, task := range tasks {
		assert.NotEmpty(t, task.ID)
		assert.False(t, task.Done)
	}
}

func TestCreateAutoTasksIdempotent(t *testing.T) {
	now := time.Now()
	o := &domain.Opportunity{}

	first := CreateAutoTasks(o, domain.StageFechado, now)
	require.Len(t, first, 3)
	o.Tasks = append(o.Tasks, first...)

	second := CreateAutoTasks(o, domain.StageFechado, now)
	assert.Empty(t, second)
}

func TestCreateAutoTasksReinjectsAfterCompletion(t *testing.T) {
	now := time.Now()
	o := &domain.Opportunity{}

	o.Tasks = append(o.Tasks, CreateAutoTasks(o, domain.StageBriefing, now)...)
	require.Len(t, o.Tasks, 1)

	// Once the pending task is completed, the template may fire again.
	o.Tasks[0].Done = true
	again := CreateAutoTasks(o, domain.StageBriefing, now)
	assert.Len(t, again, 1)
}
