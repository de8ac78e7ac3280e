// internal/domain/supplier/entity.go
package supplier

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Category string

const (
	CategoryAirline   Category = "airline"
	CategoryHotel     Category = "hotel"
	CategoryTransfer  Category = "transfer"
	CategoryInsurance Category = "insurance"
	CategoryOperator  Category = "operator"
)

type Supplier struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Category    Category       `json:"category" db:"category"`
	ContactName sql.NullString `json:"contact_name,omitempty" db:"contact_name"`
	Email       sql.NullString `json:"email,omitempty" db:"email"`
	Phone       sql.NullString `json:"phone,omitempty" db:"phone"`
	Notes       sql.NullString `json:"notes,omitempty" db:"notes"`
	Services    pq.StringArray `json:"services,omitempty" db:"services"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateSupplierRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    Category `json:"category" binding:"required"`
	ContactName string   `json:"contact_name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Notes       string   `json:"notes"`
	Services    []string `json:"services"`
}

type UpdateSupplierRequest struct {
	Name        *string   `json:"name"`
	Category    *Category `json:"category"`
	ContactName *string   `json:"contact_name"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	Notes       *string   `json:"notes"`
	Services    *[]string `json:"services"`
	IsActive    *bool     `json:"is_active"`
}
