// internal/domain/opportunity/dto.go
package opportunity

import "time"

type CreateOpportunityRequest struct {
	ClientID      int64      `json:"client_id" binding:"required"`
	Title         string     `json:"title" binding:"required"`
	Budget        float64    `json:"budget"`
	Adults        int        `json:"adults"`
	Children      int        `json:"children"`
	TripReason    string     `json:"trip_reason"`
	Destination   string     `json:"destination"`
	DepartureDate *time.Time `json:"departure_date"`
}

// UpdateOpportunityRequest is a partial patch. Pointer fields are the
// presence map: nil means "not supplied", a non-nil zero value is an
// explicit caller value and always wins over computed defaults.
type UpdateOpportunityRequest struct {
	Title         *string    `json:"title"`
	Stage         *string    `json:"stage"` // canonical or display vocabulary
	Status        *Status    `json:"status"`
	Budget        *float64   `json:"budget"`
	Adults        *int       `json:"adults"`
	Children      *int       `json:"children"`
	Temperature   *int       `json:"temperature"`
	TripReason    *string    `json:"trip_reason"`
	Destination   *string    `json:"destination"`
	DepartureDate *time.Time `json:"departure_date"`
	QuoteExpiry   *time.Time `json:"quote_expiry"`

	ProposalStatus *ProposalStatus `json:"proposal_status"`
	SentAt         *time.Time      `json:"sent_at"`

	Tasks    *[]Task             `json:"tasks"`
	Payments *[]PaymentMilestone `json:"payments"`
	History  *[]AuditLog         `json:"history"`
}

type MoveStageRequest struct {
	TargetStage string `json:"target_stage" binding:"required"`
	Actor       string `json:"actor"`
	Reason      string `json:"reason"`
}

// MoveStageResult is the typed outcome of a guarded transition. A rejected
// move is not an error: Missing carries the human-readable checklist the
// UI shows as-is.
type MoveStageResult struct {
	OK          bool         `json:"ok"`
	Reason      string       `json:"reason,omitempty"`
	Missing     []string     `json:"missing,omitempty"`
	Opportunity *Opportunity `json:"opportunity,omitempty"`
}

// RequirementResult is the outcome of a stage-requirement check.
type RequirementResult struct {
	Met     bool     `json:"met"`
	Missing []string `json:"missing"`
}

type AddComponentRequest struct {
	OptionID    string        `json:"option_id" binding:"required"`
	Kind        ComponentKind `json:"kind" binding:"required"`
	Description string        `json:"description"`
	Cost        float64       `json:"cost"` // zero is a valid cost (courtesy items)
	Margin      float64       `json:"margin"`
}

type UpsertMilestoneRequest struct {
	MilestoneID string           `json:"milestone_id"`
	Label       string           `json:"label"`
	Amount      *float64         `json:"amount"`
	PaidAmount  *float64         `json:"paid_amount"`
	DueDate     *time.Time       `json:"due_date"`
	Status      *MilestoneStatus `json:"status"`
}

type GenerateDraftRequest struct {
	Kind  DraftKind `json:"kind" binding:"required"`
	Actor string    `json:"actor"`
}
