package opportunity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneComputedStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		m    PaymentMilestone
		want MilestoneStatus
	}{
		{"fully paid", PaymentMilestone{Amount: 100, PaidAmount: 100}, MilestonePaid},
		{"overpaid", PaymentMilestone{Amount: 100, PaidAmount: 120}, MilestonePaid},
		{"partial", PaymentMilestone{Amount: 100, PaidAmount: 40, DueDate: now.AddDate(0, 0, 5)}, MilestonePartial},
		{"overdue unpaid", PaymentMilestone{Amount: 100, DueDate: now.AddDate(0, 0, -1)}, MilestoneOverdue},
		{"pending", PaymentMilestone{Amount: 100, DueDate: now.AddDate(0, 0, 5)}, MilestoneMissing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.m.ComputedStatus(now))
		})
	}
}

func TestComputedStatusNeverOverwritesStoredStatus(t *testing.T) {
	now := time.Now()
	m := PaymentMilestone{Amount: 100, PaidAmount: 100, Status: MilestoneOverdue}

	assert.Equal(t, MilestonePaid, m.ComputedStatus(now))
	assert.Equal(t, MilestoneOverdue, m.Status)
}

func TestMilestoneFullyPaid(t *testing.T) {
	assert.True(t, PaymentMilestone{Amount: 100, PaidAmount: 100}.FullyPaid())
	assert.True(t, PaymentMilestone{Status: MilestonePaid}.FullyPaid())
	assert.False(t, PaymentMilestone{Amount: 100, PaidAmount: 50}.FullyPaid())
	// Zero-amount milestone is not paid by the amounts alone.
	assert.False(t, PaymentMilestone{}.FullyPaid())
}

func TestRecalculateTotal(t *testing.T) {
	opt := ProposalOption{
		Components: []ProposalComponent{
			{Cost: 1000, Margin: 0.10},
			{Cost: 500, Margin: 0.20},
		},
	}
	opt.RecalculateTotal()
	// 1100 + 600, rounded to whole currency units.
	assert.Equal(t, 1700.0, opt.TotalPrice)

	opt.Components = nil
	opt.RecalculateTotal()
	assert.Equal(t, 0.0, opt.TotalPrice)
}

func TestCloneIsolatesSubCollections(t *testing.T) {
	o := &Opportunity{
		ID: 1,
		Options: []ProposalOption{{
			ID:         "opt-1",
			Inclusions: []string{"a"},
			Components: []ProposalComponent{{ID: "c-1", Cost: 10}},
		}},
		Tasks:    []Task{{ID: "t-1", Title: "original"}},
		Payments: []PaymentMilestone{{ID: "m-1"}},
		History:  []AuditLog{{ID: "h-1"}},
	}

	cp := o.Clone()
	cp.Tasks[0].Title = "changed"
	cp.Options[0].Components[0].Cost = 99
	cp.Options[0].Inclusions[0] = "b"
	cp.Payments = append(cp.Payments, PaymentMilestone{ID: "m-2"})

	assert.Equal(t, "original", o.Tasks[0].Title)
	assert.Equal(t, 10.0, o.Options[0].Components[0].Cost)
	assert.Equal(t, "a", o.Options[0].Inclusions[0])
	assert.Len(t, o.Payments, 1)
}

func TestAcceptedOption(t *testing.T) {
	o := &Opportunity{Options: []ProposalOption{
		{ID: "a"},
		{ID: "b", IsAccepted: true},
	}}

	accepted := o.AcceptedOption()
	require.NotNil(t, accepted)
	assert.Equal(t, "b", accepted.ID)

	assert.Nil(t, (&Opportunity{}).AcceptedOption())
}

func TestHasIncompleteTask(t *testing.T) {
	o := &Opportunity{Tasks: []Task{
		{Title: "open", Done: false},
		{Title: "closed", Done: true},
	}}

	assert.True(t, o.HasIncompleteTask("open"))
	// Completed tasks do not block re-injection.
	assert.False(t, o.HasIncompleteTask("closed"))
	assert.False(t, o.HasIncompleteTask("missing"))
}

func TestNextOptionVersion(t *testing.T) {
	o := &Opportunity{Options: []ProposalOption{
		{Label: "Eco", Version: 1},
		{Label: "Eco", Version: 2},
		{Label: "Luxo", Version: 1},
	}}

	assert.Equal(t, 3, o.NextOptionVersion("Eco"))
	assert.Equal(t, 2, o.NextOptionVersion("Luxo"))
	assert.Equal(t, 1, o.NextOptionVersion("Premium"))
}

func TestClampTemperature(t *testing.T) {
	assert.Equal(t, 0, ClampTemperature(-5))
	assert.Equal(t, 100, ClampTemperature(150))
	assert.Equal(t, 42, ClampTemperature(42))
}

func TestPrependHistoryOrder(t *testing.T) {
	o := &Opportunity{}
	o.PrependHistory(AuditLog{ID: "first"})
	o.PrependHistory(AuditLog{ID: "second"})

	require.Len(t, o.History, 2)
	assert.Equal(t, "second", o.History[0].ID)
	assert.Equal(t, "first", o.History[1].ID)
}
