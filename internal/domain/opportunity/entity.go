// internal/domain/opportunity/entity.go
package opportunity

import (
	"math"
	"time"

	"github.com/lib/pq"
)

type Status string

const (
	StatusAberto     Status = "ABERTO"
	StatusGanho      Status = "GANHO"
	StatusPerdido    Status = "PERDIDO"
	StatusAbandonado Status = "ABANDONADO"
)

// ProposalStatus tracks the proposal workflow of an opportunity as a whole.
type ProposalStatus string

const (
	ProposalStatusNone      ProposalStatus = ""
	ProposalStatusDraft     ProposalStatus = "draft"
	ProposalStatusFinalized ProposalStatus = "finalized"
)

type TaskType string

const (
	TaskTypeFollowUp TaskType = "follow_up"
	TaskTypeDocument TaskType = "document"
	TaskTypePayment  TaskType = "payment"
	TaskTypeOther    TaskType = "other"
)

type MilestoneStatus string

const (
	MilestoneMissing MilestoneStatus = "MISSING"
	MilestonePartial MilestoneStatus = "PARTIAL"
	MilestonePaid    MilestoneStatus = "PAID"
	MilestoneOverdue MilestoneStatus = "OVERDUE"
)

type ComponentKind string

const (
	ComponentFlight    ComponentKind = "flight"
	ComponentHotel     ComponentKind = "hotel"
	ComponentTransfer  ComponentKind = "transfer"
	ComponentInsurance ComponentKind = "insurance"
	ComponentActivity  ComponentKind = "activity"
)

type DraftKind string

const (
	DraftMissingQuestions DraftKind = "missing_questions"
	DraftIdeas            DraftKind = "ideas"
	DraftItinerary        DraftKind = "itinerary"
	DraftProposalText     DraftKind = "proposal_text"
)

// Opportunity is the central sales aggregate. Sub-collections are owned by
// the opportunity and persisted wholesale with it; they are never
// addressable on their own.
type Opportunity struct {
	ID       int64  `json:"id" db:"id"`
	ClientID int64  `json:"client_id" db:"client_id"`
	Title    string `json:"title" db:"title"`

	Stage  Stage  `json:"stage" db:"stage"`
	Status Status `json:"status" db:"status"`

	Budget      float64 `json:"budget" db:"budget"`
	Adults      int     `json:"adults" db:"adults"`
	Children    int     `json:"children" db:"children"`
	Temperature int     `json:"temperature" db:"temperature"`

	TripReason    string     `json:"trip_reason" db:"trip_reason"`
	Destination   string     `json:"destination" db:"destination"`
	DepartureDate *time.Time `json:"departure_date,omitempty" db:"departure_date"`
	QuoteExpiry   *time.Time `json:"quote_expiry,omitempty" db:"quote_expiry"`

	ProposalStatus ProposalStatus `json:"proposal_status" db:"proposal_status"`
	FinalizedAt    *time.Time     `json:"finalized_at,omitempty" db:"finalized_at"`
	SentAt         *time.Time     `json:"sent_at,omitempty" db:"sent_at"`

	LastInteractionAt time.Time `json:"last_interaction_at" db:"last_interaction_at"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`

	Options  []ProposalOption   `json:"options"`
	Tasks    []Task             `json:"tasks"`
	Payments []PaymentMilestone `json:"payments"`
	History  []AuditLog         `json:"history"`
	Drafts   []Draft            `json:"drafts"`
	Bookings []SupplierBooking  `json:"bookings"`
}

// ProposalOption is one priced package alternative (Eco/Premium/Luxo).
// TotalPrice is derived from Components and recomputed on every mutation.
type ProposalOption struct {
	ID            string              `json:"id" db:"id"`
	OpportunityID int64               `json:"opportunity_id" db:"opportunity_id"`
	Label         string              `json:"label" db:"label"`
	Description   string              `json:"description" db:"description"`
	Inclusions    pq.StringArray      `json:"inclusions" db:"inclusions"`
	QualityScore  int                 `json:"quality_score" db:"quality_score"`
	Version       int                 `json:"version" db:"version"`
	IsAccepted    bool                `json:"is_accepted" db:"is_accepted"`
	TotalPrice    float64             `json:"total_price" db:"total_price"`
	Components    []ProposalComponent `json:"components"`
}

type ProposalComponent struct {
	ID          string        `json:"id" db:"id"`
	OptionID    string        `json:"option_id" db:"option_id"`
	Kind        ComponentKind `json:"kind" db:"kind"`
	Description string        `json:"description" db:"description"`
	Cost        float64       `json:"cost" db:"cost"`
	Margin      float64       `json:"margin" db:"margin"`
}

type Task struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Type      TaskType  `json:"type" db:"type"`
	DueDate   time.Time `json:"due_date" db:"due_date"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PaymentMilestone is one installment. Status is set by agents or by the
// rules engine and is deliberately independent from the amounts, so an
// agent can flag risk before the numbers cross a threshold.
type PaymentMilestone struct {
	ID         string          `json:"id" db:"id"`
	Label      string          `json:"label" db:"label"`
	Amount     float64         `json:"amount" db:"amount"`
	PaidAmount float64         `json:"paid_amount" db:"paid_amount"`
	DueDate    time.Time       `json:"due_date" db:"due_date"`
	Status     MilestoneStatus `json:"status" db:"status"`
}

// ComputedStatus derives a status from the amounts alone. It is exposed
// read-only beside the stored status and never overwrites it.
func (m PaymentMilestone) ComputedStatus(now time.Time) MilestoneStatus {
	switch {
	case m.Amount > 0 && m.PaidAmount >= m.Amount:
		return MilestonePaid
	case m.PaidAmount > 0:
		return MilestonePartial
	case now.After(m.DueDate):
		return MilestoneOverdue
	default:
		return MilestoneMissing
	}
}

// FullyPaid reports whether the stored status or the amounts say paid.
func (m PaymentMilestone) FullyPaid() bool {
	return m.Status == MilestonePaid || (m.Amount > 0 && m.PaidAmount >= m.Amount)
}

// AuditLog entries are append-only and kept most-recent-first.
type AuditLog struct {
	ID     string    `json:"id" db:"id"`
	Actor  string    `json:"actor" db:"actor"`
	Action string    `json:"action" db:"action"`
	At     time.Time `json:"at" db:"at"`
}

type Draft struct {
	ID        string    `json:"id" db:"id"`
	Kind      DraftKind `json:"kind" db:"kind"`
	Content   string    `json:"content" db:"content"`
	Source    string    `json:"source" db:"source"` // "llm" or "template"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type SupplierBooking struct {
	ID          string  `json:"id" db:"id"`
	SupplierID  int64   `json:"supplier_id" db:"supplier_id"`
	Description string  `json:"description" db:"description"`
	Amount      float64 `json:"amount" db:"amount"`
	Status      string  `json:"status" db:"status"`
}

// Clone deep-copies the aggregate so callers can mutate freely without
// aliasing state held elsewhere.
func (o *Opportunity) Clone() *Opportunity {
	cp := *o
	cp.Options = make([]ProposalOption, len(o.Options))
	for i, opt := range o.Options {
		optCp := opt
		optCp.Inclusions = append(pq.StringArray(nil), opt.Inclusions...)
		optCp.Components = append([]ProposalComponent(nil), opt.Components...)
		cp.Options[i] = optCp
	}
	cp.Tasks = append([]Task(nil), o.Tasks...)
	cp.Payments = append([]PaymentMilestone(nil), o.Payments...)
	cp.History = append([]AuditLog(nil), o.History...)
	cp.Drafts = append([]Draft(nil), o.Drafts...)
	cp.Bookings = append([]SupplierBooking(nil), o.Bookings...)
	return &cp
}

// ClampTemperature keeps the deal-heat score inside [0,100].
func ClampTemperature(t int) int {
	if t < 0 {
		return 0
	}
	if t > 100 {
		return 100
	}
	return t
}

// RecalculateTotal recomputes the derived option total from its components.
func (p *ProposalOption) RecalculateTotal() {
	var total float64
	for _, c := range p.Components {
		total += c.Cost * (1 + c.Margin)
	}
	p.TotalPrice = math.Round(total)
}

// AcceptedOption returns the accepted option, if any.
func (o *Opportunity) AcceptedOption() *ProposalOption {
	for i := range o.Options {
		if o.Options[i].IsAccepted {
			return &o.Options[i]
		}
	}
	return nil
}

// HasIncompleteTask reports whether an incomplete task with the exact
// title already exists. Auto-task injection dedups on this.
func (o *Opportunity) HasIncompleteTask(title string) bool {
	for _, t := range o.Tasks {
		if !t.Done && t.Title == title {
			return true
		}
	}
	return false
}

// PrependHistory records an audit entry most-recent-first.
func (o *Opportunity) PrependHistory(entry AuditLog) {
	o.History = append([]AuditLog{entry}, o.History...)
}

// PrependDraft records a generated draft most-recent-first.
func (o *Opportunity) PrependDraft(d Draft) {
	o.Drafts = append([]Draft{d}, o.Drafts...)
}

// NextOptionVersion returns the next version number scoped to
// (opportunity, label).
func (o *Opportunity) NextOptionVersion(label string) int {
	max := 0
	for _, opt := range o.Options {
		if opt.Label == label && opt.Version > max {
			max = opt.Version
		}
	}
	return max + 1
}
