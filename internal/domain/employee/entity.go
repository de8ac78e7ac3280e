// internal/domain/employee/entity.go
package employee

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleAgent   Role = "agent"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

type Employee struct {
	ID        int64          `json:"id" db:"id"`
	FullName  string         `json:"full_name" db:"full_name"`
	Email     string         `json:"email" db:"email"`
	Phone     sql.NullString `json:"phone,omitempty" db:"phone"`
	Role      Role           `json:"role" db:"role"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
}

type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *Role   `json:"role"`
	IsActive *bool   `json:"is_active"`
}
