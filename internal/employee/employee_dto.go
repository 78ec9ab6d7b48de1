package employee

import "github.com/shopspring/decimal"

type CreateProfileRequest struct {
	FirstName     string `json:"first_name" binding:"required,max=100"`
	LastName      string `json:"last_name" binding:"required,max=100"`
	Department    string `json:"department" binding:"max=100"`
	Position      string `json:"position" binding:"max=100"`
	ContactNumber string `json:"contact_number" binding:"max=30"`
	Address       string `json:"address"`
}

// UpdateOwnProfileRequest: blank fields keep their current value.
type UpdateOwnProfileRequest struct {
	FirstName     string `json:"first_name" binding:"max=100"`
	LastName      string `json:"last_name" binding:"max=100"`
	Department    string `json:"department" binding:"max=100"`
	Position      string `json:"position" binding:"max=100"`
	ContactNumber string `json:"contact_number" binding:"max=30"`
	Address       string `json:"address"`
}

type UpdateEmployeeRequest struct {
	FirstName     string           `json:"first_name" binding:"max=100"`
	LastName      string           `json:"last_name" binding:"max=100"`
	Department    string           `json:"department" binding:"max=100"`
	Position      string           `json:"position" binding:"max=100"`
	ContactNumber string           `json:"contact_number" binding:"max=30"`
	Address       string           `json:"address"`
	Salary        *decimal.Decimal `json:"salary"`
	JoinDate      string           `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
}

type EmployeeResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email,omitempty"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Department    string          `json:"department"`
	Position      string          `json:"position"`
	ContactNumber string          `json:"contact_number,omitempty"`
	Address       string          `json:"address,omitempty"`
	Salary        decimal.Decimal `json:"salary"`
	JoinDate      string          `json:"join_date"`
	AvatarURL     *string         `json:"avatar_url,omitempty"`
	CreatedAt     string          `json:"created_at"`
}
