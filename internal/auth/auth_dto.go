package auth

import (
	"time"

	"go-workforce/internal/employee"
	"go-workforce/internal/hr"

	"github.com/shopspring/decimal"
)

// RegisterRequest covers every role. Employee accounts need first and last
// name; the remaining profile fields fall back to placeholders.
type RegisterRequest struct {
	Name          string `json:"name" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Password      string `json:"password" binding:"required,min=6,max=72"`
	Role          string `json:"role" binding:"required"`
	FirstName     string `json:"first_name" binding:"max=100"`
	LastName      string `json:"last_name" binding:"max=100"`
	Department    string `json:"department" binding:"max=100"`
	Position      string `json:"position" binding:"max=100"`
	ContactNumber string `json:"contact_number" binding:"max=30"`
	Address       string `json:"address"`
	Phone         string `json:"phone" binding:"max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProvisionEmployeeRequest struct {
	Name          string           `json:"name" binding:"max=255"`
	Email         string           `json:"email" binding:"required,email,max=255"`
	Password      string           `json:"password" binding:"required,min=6,max=72"`
	FirstName     string           `json:"first_name" binding:"required,max=100"`
	LastName      string           `json:"last_name" binding:"required,max=100"`
	Department    string           `json:"department" binding:"max=100"`
	Position      string           `json:"position" binding:"max=100"`
	ContactNumber string           `json:"contact_number" binding:"max=30"`
	Address       string           `json:"address"`
	Salary        *decimal.Decimal `json:"salary"`
	JoinDate      string           `json:"join_date" binding:"omitempty,datetime=2006-01-02"`
}

type ProvisionHRRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	Email      string `json:"email" binding:"required,email,max=255"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	Department string `json:"department" binding:"max=100"`
	Position   string `json:"position" binding:"max=100"`
	Phone      string `json:"phone" binding:"max=30"`
}

type UpdateAvatarRequest struct {
	URL    string `json:"url" binding:"required,url,max=2048"`
	Handle string `json:"handle" binding:"max=255"`
}

type AccountResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	AvatarHandle *string `json:"avatar_handle,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type AuthResponse struct {
	AccountResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileResponse is an account plus the role profile it owns, if any.
type ProfileResponse struct {
	Account  AccountResponse            `json:"account"`
	Employee *employee.EmployeeResponse `json:"employee,omitempty"`
	HR       *hr.HRProfileResponse      `json:"hr,omitempty"`
}
