// internal/domain/client/dto.go
package client

type CreateClientRequest struct {
	FullName    string   `json:"full_name" binding:"required"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number" binding:"required"`
	Document    string   `json:"document"`
	Notes       string   `json:"notes"`
	Tags        []string `json:"tags"`
}

type UpdateClientRequest struct {
	FullName    *string   `json:"full_name"`
	Email       *string   `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	Document    *string   `json:"document"`
	Notes       *string   `json:"notes"`
	Tags        *[]string `json:"tags"`
	IsActive    *bool     `json:"is_active"`
}
