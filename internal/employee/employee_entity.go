package employee

import (
	"strings"
	"time"

	"go-workforce/internal/account"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	DefaultDepartment = "Not Assigned"
	DefaultPosition   = "Not Assigned"
)

type EmployeeProfile struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_employee_profiles_account"`
	FirstName     string          `gorm:"type:varchar(100);not null"`
	LastName      string          `gorm:"type:varchar(100);not null"`
	Department    string          `gorm:"type:varchar(100);not null"`
	Position      string          `gorm:"type:varchar(100);not null"`
	ContactNumber string          `gorm:"type:varchar(30)"`
	Address       string          `gorm:"type:text"`
	Salary        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	JoinDate      datatypes.Date  `gorm:"not null"`
	AvatarURL     *string         `gorm:"type:text"`
	AvatarHandle  *string         `gorm:"type:varchar(255)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Account *account.Account `gorm:"foreignKey:AccountID"`
}

func (EmployeeProfile) TableName() string {
	return "employee_profiles"
}

func (p EmployeeProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ProfileFields carries the editable attributes used when a profile is first created.
type ProfileFields struct {
	FirstName     string
	LastName      string
	Department    string
	Position      string
	ContactNumber string
	Address       string
	Salary        decimal.Decimal
	JoinDate      time.Time
}

// NewProfile builds a profile for accountID, filling placeholders for
// department, position and join date when they are omitted.
func NewProfile(accountID uuid.UUID, f ProfileFields) *EmployeeProfile {
	department := strings.TrimSpace(f.Department)
	if department == "" {
		department = DefaultDepartment
	}
	position := strings.TrimSpace(f.Position)
	if position == "" {
		position = DefaultPosition
	}
	joinDate := f.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now().UTC()
	}

	return &EmployeeProfile{
		ID:            uuid.New(),
		AccountID:     accountID,
		FirstName:     strings.TrimSpace(f.FirstName),
		LastName:      strings.TrimSpace(f.LastName),
		Department:    department,
		Position:      position,
		ContactNumber: strings.TrimSpace(f.ContactNumber),
		Address:       strings.TrimSpace(f.Address),
		Salary:        f.Salary,
		JoinDate:      datatypes.Date(truncateDay(joinDate)),
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
