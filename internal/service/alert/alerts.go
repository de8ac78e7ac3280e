// internal/service/alert/alerts.go
package alert

import (
	"fmt"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"

	"github.com/oklog/ulid/v2"
)

// Alert task titles. Dedup is by exact title among incomplete tasks, so a
// rule fires at most once until its task is completed.
const (
	TitleQuoteExpiring = "Cotação expira em breve"
	TitleQuoteExpired  = "Cotação expirada — revalidar proposta"
	TitlePreTrip       = "Checklist pré-viagem com o cliente"
)

func titlePaymentDueSoon(label string) string {
	return fmt.Sprintf("Pagamento \"%s\" vence em breve", label)
}

func titlePaymentOverdue(label string) string {
	return fmt.Sprintf("Pagamento \"%s\" em atraso", label)
}

// EnsureDeadlineAlerts evaluates every deadline rule against one
// opportunity and returns the alert tasks that are not already pending.
// It is pure given o and now; it never mutates o and returns nil when
// there is nothing new, so callers can skip the persistence write.
func EnsureDeadlineAlerts(o *domain.Opportunity, now time.Time) []domain.Task {
	var alerts []domain.Task

	add := func(title string, taskType domain.TaskType, due time.Time) {
		if o.HasIncompleteTask(title) {
			return
		}
		for _, t := range alerts {
			if t.Title == title {
				return
			}
		}
		alerts = append(alerts, domain.Task{
			ID:        ulid.Make().String(),
			Title:     title,
			Type:      taskType,
			DueDate:   due,
			CreatedAt: now,
		})
	}

	// Quote expiry, only while the proposal is on the table.
	if (o.Stage == domain.StageProposta || o.Stage == domain.StageNegociacao) && o.QuoteExpiry != nil {
		hours := o.QuoteExpiry.Sub(now).Hours()
		switch {
		case hours > 0 && hours <= 24:
			add(TitleQuoteExpiring, domain.TaskTypeFollowUp, *o.QuoteExpiry)
		case hours <= 0:
			add(TitleQuoteExpired, domain.TaskTypeFollowUp, now)
		}
	}

	// Payment milestones not yet fully paid.
	for _, m := range o.Payments {
		if m.FullyPaid() {
			continue
		}
		hours := m.DueDate.Sub(now).Hours()
		switch {
		case hours > 0 && hours <= 48:
			if m.Status == domain.MilestoneMissing || m.Status == domain.MilestoneOverdue {
				add(titlePaymentDueSoon(m.Label), domain.TaskTypePayment, m.DueDate)
			}
		case hours <= 0:
			if m.Status == domain.MilestoneMissing || m.Status == domain.MilestonePartial {
				add(titlePaymentOverdue(m.Label), domain.TaskTypePayment, now)
			}
		}
	}

	// Pre-trip checklist for won deals about to depart.
	if o.Status == domain.StatusGanho && o.DepartureDate != nil {
		hours := o.DepartureDate.Sub(now).Hours()
		if hours > 0 && hours <= 48 {
			add(TitlePreTrip, domain.TaskTypeOther, *o.DepartureDate)
		}
	}

	return alerts
}
