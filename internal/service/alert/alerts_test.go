package alert

import (
	"testing"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func hoursFromNow(h float64) time.Time {
	return baseTime.Add(time.Duration(h * float64(time.Hour)))
}

func TestQuoteExpiringAlert(t *testing.T) {
	expiry := hoursFromNow(12)
	o := &domain.Opportunity{Stage: domain.StageProposta, QuoteExpiry: &expiry}

	alerts := EnsureDeadlineAlerts(o, baseTime)
	require.Len(t, alerts, 1)
	assert.Equal(t, TitleQuoteExpiring, alerts[0].Title)
	assert.Equal(t, domain.TaskTypeFollowUp, alerts[0].Type)
	assert.Equal(t, expiry, alerts[0].DueDate)
}

func TestQuoteExpiredAlert(t *testing.T) {
	expiry := hoursFromNow(-2)
	o := &domain.Opportunity{Stage: domain.StageNegociacao, QuoteExpiry: &expiry}

	alerts := EnsureDeadlineAlerts(o, baseTime)
	require.Len(t, alerts, 1)
	assert.Equal(t, TitleQuoteExpired, alerts[0].Title)
}

func TestQuoteAlertsOnlyWhileProposalOnTheTable(t *testing.T) {
	expiry := hoursFromNow(12)
	for _, stage := range []domain.Stage{domain.StageNovo, domain.StageBriefing, domain.StageFechado} {
		o := &domain.Opportunity{Stage: stage, QuoteExpiry: &expiry}
		assert.Empty(t, EnsureDeadlineAlerts(o, baseTime), "stage=%s", stage)
	}
}

func TestQuoteAlertNotFiredBeyondWindow(t *testing.T) {
	expiry := hoursFromNow(25)
	o := &domain.Opportunity{Stage: domain.StageProposta, QuoteExpiry: &expiry}
	assert.Empty(t, EnsureDeadlineAlerts(o, baseTime))
}

func TestPaymentDueSoonAlert(t *testing.T) {
	o := &domain.Opportunity{Payments: []domain.PaymentMilestone{{
		ID:      "m-1",
		Label:   "Sinal",
		Amount:  4000,
		DueDate: hoursFromNow(24),
		Status:  domain.MilestoneMissing,
	}}}

	alerts := EnsureDeadlineAlerts(o, baseTime)
	require.Len(t, alerts, 1)
	assert.Equal(t, `Pagamento "Sinal" vence em breve`, alerts[0].Title)
	assert.Equal(t, domain.TaskTypePayment, alerts[0].Type)
}

func TestPaymentOverdueAlert(t *testing.T) {
	o := &domain.Opportunity{Payments: []domain.PaymentMilestone{{
		ID:      "m-1",
		Label:   "Parcela 2",
		Amount:  3000,
		DueDate: hoursFromNow(-1),
		Status:  domain.MilestonePartial,
	}}}

	alerts := EnsureDeadlineAlerts(o, baseTime)
	require.Len(t, alerts, 1)
	assert.Equal(t, `Pagamento "Parcela 2" em atraso`, alerts[0].Title)
}

func TestPaidMilestonesNeverAlert(t *testing.T) {
	o := &domain.Opportunity{Payments: []domain.PaymentMilestone{
		{ID: "m-1", Label: "Sinal", Amount: 4000, PaidAmount: 4000, DueDate: hoursFromNow(-10)},
		{ID: "m-2", Label: "Parcela 2", Amount: 3000, DueDate: hoursFromNow(-5), Status: domain.MilestonePaid},
	}}

	assert.Empty(t, EnsureDeadlineAlerts(o, baseTime))
}

func TestPreTripAlert(t *testing.T) {
	departure := hoursFromNow(36)
	o := &domain.Opportunity{Status: domain.StatusGanho, DepartureDate: &departure}

	alerts := EnsureDeadlineAlerts(o, baseTime)
	require.Len(t, alerts, 1)
	assert.Equal(t, TitlePreTrip, alerts[0].Title)
	assert.Equal(t, domain.TaskTypeOther, alerts[0].Type)

	// Not won yet: no pre-trip checklist.
	o.Status = domain.StatusAberto
	assert.Empty(t, EnsureDeadlineAlerts(o, baseTime))
}

func TestAlertsDedupAgainstPendingTasks(t *testing.T) {
	expiry := hoursFromNow(12)
	o := &domain.Opportunity{
		Stage:       domain.StageProposta,
		QuoteExpiry: &expiry,
	}

	first := EnsureDeadlineAlerts(o, baseTime)
	require.Len(t, first, 1)
	o.Tasks = append(o.Tasks, first...)

	// Same state, next scan: nothing new.
	assert.Empty(t, EnsureDeadlineAlerts(o, baseTime))

	// Completing the alert task re-arms the rule.
	o.Tasks[0].Done = true
	assert.Len(t, EnsureDeadlineAlerts(o, baseTime), 1)
}

func TestAlertsDoNotMutateOpportunity(t *testing.T) {
	expiry := hoursFromNow(12)
	departure := hoursFromNow(40)
	o := &domain.Opportunity{
		Stage:         domain.StageProposta,
		Status:        domain.StatusGanho,
		QuoteExpiry:   &expiry,
		DepartureDate: &departure,
	}
	before := o.Clone()

	alerts := EnsureDeadlineAlerts(o, baseTime)
	assert.Len(t, alerts, 2)
	assert.Equal(t, before, o)
}
