package hr

import (
	"strings"
	"time"

	"go-workforce/internal/account"

	"github.com/google/uuid"
)

const (
	DefaultDepartment = "Human Resources"
	DefaultPosition   = "HR Manager"
)

type HRProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_hr_profiles_account"`
	Department string    `gorm:"type:varchar(100);not null"`
	Position   string    `gorm:"type:varchar(100);not null"`
	Phone      string    `gorm:"type:varchar(30)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Account *account.Account `gorm:"foreignKey:AccountID"`
}

func (HRProfile) TableName() string {
	return "hr_profiles"
}

type ProfileFields struct {
	Department string
	Position   string
	Phone      string
}

func NewProfile(accountID uuid.UUID, f ProfileFields) *HRProfile {
	department := strings.TrimSpace(f.Department)
	if department == "" {
		department = DefaultDepartment
	}
	position := strings.TrimSpace(f.Position)
	if position == "" {
		position = DefaultPosition
	}

	return &HRProfile{
		ID:         uuid.New(),
		AccountID:  accountID,
		Department: department,
		Position:   position,
		Phone:      strings.TrimSpace(f.Phone),
	}
}
