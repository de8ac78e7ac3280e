// internal/domain/campaign/entity.go
package campaign

import (
	"database/sql"
	"time"
)

type Channel string

const (
	ChannelInstagram Channel = "instagram"
	ChannelGoogleAds Channel = "google_ads"
	ChannelEmail     Channel = "email"
	ChannelReferral  Channel = "referral"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// Campaign is a lead-generation campaign. Opportunities created from
// campaign intake reference the campaign for attribution.
type Campaign struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Channel     Channel        `json:"channel" db:"channel"`
	Description sql.NullString `json:"description,omitempty" db:"description"`
	Budget      float64        `json:"budget" db:"budget"`
	StartDate   time.Time      `json:"start_date" db:"start_date"`
	EndDate     time.Time      `json:"end_date" db:"end_date"`
	LeadsCount  int            `json:"leads_count" db:"leads_count"`
	Status      Status         `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

// IsRunning reports whether the campaign is active inside its date window.
func (c *Campaign) IsRunning(now time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

type CreateCampaignRequest struct {
	Name        string    `json:"name" binding:"required"`
	Channel     Channel   `json:"channel" binding:"required"`
	Description string    `json:"description"`
	Budget      float64   `json:"budget"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

type UpdateCampaignRequest struct {
	Name        *string    `json:"name"`
	Channel     *Channel   `json:"channel"`
	Description *string    `json:"description"`
	Budget      *float64   `json:"budget"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *Status    `json:"status"`
}
