// internal/service/opportunity/autotasks.go
package opportunity

import (
	"time"

	domain "tripdesk-service/internal/domain/opportunity"

	"github.com/oklog/ulid/v2"
)

type taskTemplate struct {
	title      string
	taskType   domain.TaskType
	dueOffsetD int // whole days from now
}

// stageTaskTemplates is fixed per stage. Offsets are whole days and not
// configurable.
var stageTaskTemplates = map[domain.Stage][]taskTemplate{
	domain.StageBriefing: {
		{"Agendar call de briefing", domain.TaskTypeFollowUp, 0},
	},
	domain.StageProposta: {
		{"Enviar proposta ao cliente", domain.TaskTypeDocument, 0},
		{"Follow-up 1: confirmar recebimento da proposta", domain.TaskTypeFollowUp, 1},
		{"Follow-up 2: coletar feedback da proposta", domain.TaskTypeFollowUp, 3},
	},
	domain.StageNegociacao: {
		{"Revisar condições com o cliente", domain.TaskTypeFollowUp, 1},
		{"Preparar minuta do contrato", domain.TaskTypeDocument, 2},
	},
	domain.StageFechado: {
		{"Coletar documentos dos passageiros", domain.TaskTypeDocument, 1},
		{"Confirmar reservas com fornecedores", domain.TaskTypeOther, 2},
		{"Acompanhar pagamento do sinal", domain.TaskTypePayment, 2},
	},
}

// CreateAutoTasks returns the template tasks for newStage that are not
// already present as an incomplete task with the exact same title. Calling
// it twice in a row yields nothing the second time.
func CreateAutoTasks(o *domain.Opportunity, newStage domain.Stage, now time.Time) []domain.Task {
	templates := stageTaskTemplates[newStage]
	if len(templates) == 0 {
		return nil
	}

	var tasks []domain.Task
	for _, tmpl := range templates {
		if o.HasIncompleteTask(tmpl.title) {
			continue
		}
		tasks = append(tasks, domain.Task{
			ID:        ulid.Make().String(),
			Title:     tmpl.title,
			Type:      tmpl.taskType,
			DueDate:   now.AddDate(0, 0, tmpl.dueOffsetD),
			Done:      false,
			CreatedAt: now,
		})
	}
	return tasks
}
