// internal/domain/client/entity.go
package client

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Client struct {
	ID          int64          `json:"id" db:"id"`
	FullName    string         `json:"full_name" db:"full_name"`
	Email       sql.NullString `json:"email,omitempty" db:"email"`
	PhoneNumber string         `json:"phone_number" db:"phone_number"`
	Document    sql.NullString `json:"document,omitempty" db:"document"`
	Notes       sql.NullString `json:"notes,omitempty" db:"notes"`
	Tags        pq.StringArray `json:"tags,omitempty" db:"tags"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
