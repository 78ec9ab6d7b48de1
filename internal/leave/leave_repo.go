package leave

import (
	"context"
	"database/sql"
	"time"

	leaveerrors "go-workforce/internal/leave/errors"
	"go-workforce/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	Status Status
	Offset int
	Limit  int
}

// Decision is the terminal state written by a review.
type Decision struct {
	Status     Status
	ApproverID uuid.UUID
	ApprovedAt time.Time
	Comment    *string
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	Transition(ctx context.Context, id string, d Decision) (bool, error)
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
	CountByStatus(ctx context.Context, employeeID string) (map[Status]int64, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	var l LeaveRequest
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &l, nil
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListAll(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&LeaveRequest{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []LeaveRequest
	err := q.
		Preload("Employee").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&leaves).Error
	if err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

// Transition writes d only if the request is still pending. It reports
// false when another review got there first.
func (r *repository) Transition(ctx context.Context, id string, d Decision) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]any{
			"status":      d.Status,
			"approver_id": d.ApproverID,
			"approved_at": d.ApprovedAt,
			"comment":     d.Comment,
			"updated_at":  d.ApprovedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, StatusApproved).
		Where("start_date <= ? AND end_date >= ?", to.Format("2006-01-02"), from.Format("2006-01-02")).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) CountByStatus(ctx context.Context, employeeID string) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("status, COUNT(*) AS total").
		Where("employee_id = ?", employeeID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[Status]int64{StatusPending: 0, StatusApproved: 0, StatusRejected: 0}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *repository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&LeaveRequest{})
	return res.RowsAffected, res.Error
}
