package leave

import (
	"strings"
	"time"

	"go-workforce/internal/employee"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// CanTransitionTo reports whether a request in s may move to next.
// Only pending requests can be decided, and only once.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus accepts the three lifecycle states.
func ParseStatus(v string) (Status, bool) {
	switch s := Status(strings.ToLower(strings.TrimSpace(v))); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, true
	default:
		return "", false
	}
}

// ParseDecision maps a review action onto the terminal state it produces.
func ParseDecision(v string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "approved", "approve":
		return StatusApproved, true
	case "rejected", "reject":
		return StatusRejected, true
	default:
		return "", false
	}
}

type Category string

const (
	CategorySick     Category = "sick"
	CategoryVacation Category = "vacation"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

func ParseCategory(v string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(v))); c {
	case CategorySick, CategoryVacation, CategoryPersonal, CategoryOther:
		return c, true
	default:
		return "", false
	}
}

type LeaveRequest struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID      `gorm:"type:uuid;not null;index:idx_leave_requests_employee_created"`
	StartDate  datatypes.Date `gorm:"not null"`
	EndDate    datatypes.Date `gorm:"not null"`
	Reason     string         `gorm:"type:text;not null"`
	Category   Category       `gorm:"type:varchar(20);not null"`
	Status     Status         `gorm:"type:varchar(20);not null;index:idx_leave_requests_status"`
	Comment    *string        `gorm:"type:text"`
	ApproverID *uuid.UUID     `gorm:"type:uuid"`
	ApprovedAt *time.Time
	CreatedAt  time.Time `gorm:"index:idx_leave_requests_employee_created"`
	UpdatedAt  time.Time

	Employee *employee.EmployeeProfile `gorm:"foreignKey:EmployeeID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Days counts the request inclusively: a single-day leave is 1 day.
func (l LeaveRequest) Days() int {
	return InclusiveDays(time.Time(l.StartDate), time.Time(l.EndDate))
}

// Overlaps reports whether the request shares at least one day with [from, to].
func (l LeaveRequest) Overlaps(from, to time.Time) bool {
	start, end := dateOnly(time.Time(l.StartDate)), dateOnly(time.Time(l.EndDate))
	return !start.After(dateOnly(to)) && !end.Before(dateOnly(from))
}

func InclusiveDays(start, end time.Time) int {
	s, e := dateOnly(start), dateOnly(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// ApprovedDays sums the inclusive length of every approved request that
// intersects [from, to]. Requests are counted whole, not clipped to the period.
func ApprovedDays(leaves []LeaveRequest, from, to time.Time) int {
	total := 0
	for _, l := range leaves {
		if l.Status == StatusApproved && l.Overlaps(from, to) {
			total += l.Days()
		}
	}
	return total
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
