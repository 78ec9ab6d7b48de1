package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-workforce/internal/employee"
	"go-workforce/internal/events"
	"go-workforce/internal/hr"
	leaveerrors "go-workforce/internal/leave/errors"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// EmployeeLookup resolves the caller's employee profile for ownership checks.
type EmployeeLookup interface {
	FindByAccountID(ctx context.Context, accountID string) (*employee.EmployeeProfile, error)
}

// ReviewerLookup resolves the HR profile recorded as approver.
type ReviewerLookup interface {
	FindByAccountID(ctx context.Context, accountID string) (*hr.HRProfile, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, accountID string, req CreateLeaveRequest) (LeaveResponse, error)
	ListForEmployee(ctx context.Context, accountID string) ([]LeaveResponse, error)
	ListAll(ctx context.Context, params ListAllParams) ([]LeaveResponse, int64, error)
	Review(ctx context.Context, leaveID, reviewerAccountID string, req ReviewLeaveRequest) (LeaveResponse, error)
	Summary(ctx context.Context, accountID, from, to string) (SummaryResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees EmployeeLookup
	reviewers ReviewerLookup
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees EmployeeLookup,
	reviewers ReviewerLookup,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		reviewers: reviewers,
		outbox:    outbox,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, accountID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("account_id", accountID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.String("category", req.Category),
	)

	profile, err := s.employees.FindByAccountID(ctx, accountID)
	if err != nil {
		log.Warn("create leave profile lookup failed", zap.String("account_id", accountID), zap.Error(err))
		return LeaveResponse{}, err
	}

	startDate, endDate, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	category, ok := ParseCategory(req.Category)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidCategory
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: profile.ID,
		StartDate:  datatypes.Date(startDate),
		EndDate:    datatypes.Date(endDate),
		Reason:     strings.TrimSpace(req.Reason),
		Category:   category,
		Status:     StatusPending,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", profile.ID.String()),
		zap.Int("days", l.Days()),
	)
	return mapToResponse(*l), nil
}

func (s *service) ListForEmployee(ctx context.Context, accountID string) ([]LeaveResponse, error) {
	profile, err := s.employees.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.ListByEmployee(ctx, profile.ID.String())
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListAll(ctx context.Context, params ListAllParams) ([]LeaveResponse, int64, error) {
	filter := ListFilter{
		Offset: (params.Page - 1) * params.Limit,
		Limit:  params.Limit,
	}
	if params.Status != "" {
		status, ok := ParseStatus(params.Status)
		if !ok {
			return nil, 0, leaveerrors.ErrInvalidStatusFilter
		}
		filter.Status = status
	}

	leaves, total, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(leaves), total, nil
}

// Review decides a pending request. The status check and the write are a
// single conditional update, so of two concurrent reviews exactly one wins
// and the other sees the decided status.
func (s *service) Review(ctx context.Context, leaveID, reviewerAccountID string, req ReviewLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("review leave requested",
		zap.String("leave_id", leaveID),
		zap.String("reviewer_account_id", reviewerAccountID),
		zap.String("status", req.Status),
	)

	next, ok := ParseDecision(req.Status)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}

	reviewer, err := s.reviewers.FindByAccountID(ctx, reviewerAccountID)
	if err != nil {
		log.Warn("review leave reviewer lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !l.Status.CanTransitionTo(next) {
		log.Warn("review leave already decided",
			zap.String("leave_id", leaveID),
			zap.String("current_status", string(l.Status)),
		)
		return LeaveResponse{}, leaveerrors.AlreadyDecided(string(l.Status))
	}

	decidedAt := s.now().UTC()
	var comment *string
	if c := strings.TrimSpace(req.Comment); c != "" {
		comment = &c
	}

	won, err := qtx.Transition(ctx, leaveID, Decision{
		Status:     next,
		ApproverID: reviewer.ID,
		ApprovedAt: decidedAt,
		Comment:    comment,
	})
	if err != nil {
		log.Error("review leave transition failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !won {
		current, err := qtx.FindByID(ctx, leaveID)
		if err != nil {
			return LeaveResponse{}, err
		}
		log.Warn("review leave lost race",
			zap.String("leave_id", leaveID),
			zap.String("current_status", string(current.Status)),
		)
		return LeaveResponse{}, leaveerrors.AlreadyDecided(string(current.Status))
	}

	l.Status = next
	l.ApproverID = &reviewer.ID
	l.ApprovedAt = &decidedAt
	l.Comment = comment

	event, err := kafka.NewOutboxEvent(ctx, "leave_request", l.ID.String(),
		events.LeaveReviewedEventType, events.LeaveLifecycleTopic,
		events.LeaveReviewedEvent{
			EventType:  events.LeaveReviewedEventType,
			LeaveID:    l.ID.String(),
			EmployeeID: l.EmployeeID.String(),
			Status:     string(next),
			ApproverID: reviewer.ID.String(),
			Comment:    strings.TrimSpace(req.Comment),
			OccurredAt: decidedAt,
		})
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("review leave outbox write failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("review leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("review leave success",
		zap.String("leave_id", leaveID),
		zap.String("status", string(next)),
		zap.String("approver_id", reviewer.ID.String()),
	)
	return mapToResponse(*l), nil
}

// Summary defaults to the current calendar year when from/to are omitted.
func (s *service) Summary(ctx context.Context, accountID, from, to string) (SummaryResponse, error) {
	profile, err := s.employees.FindByAccountID(ctx, accountID)
	if err != nil {
		return SummaryResponse{}, err
	}

	year := s.now().UTC().Year()
	if from == "" {
		from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	}
	if to == "" {
		to = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	}

	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return SummaryResponse{}, err
	}

	approved, err := s.repo.ListApprovedInRange(ctx, profile.ID.String(), fromDate, toDate)
	if err != nil {
		return SummaryResponse{}, err
	}

	counts, err := s.repo.CountByStatus(ctx, profile.ID.String())
	if err != nil {
		return SummaryResponse{}, err
	}

	resp := SummaryResponse{
		From:         fromDate.Format(dateLayout),
		To:           toDate.Format(dateLayout),
		ApprovedDays: ApprovedDays(approved, fromDate, toDate),
		Counts:       make(map[string]int64, len(counts)),
	}
	for status, n := range counts {
		resp.Counts[string(status)] = n
	}
	return resp, nil
}

func parseRange(from, to string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, strings.TrimSpace(from))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(to))
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return start, end, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		StartDate:  time.Time(l.StartDate).Format(dateLayout),
		EndDate:    time.Time(l.EndDate).Format(dateLayout),
		Days:       l.Days(),
		Reason:     l.Reason,
		Category:   string(l.Category),
		Status:     string(l.Status),
		Comment:    l.Comment,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if l.Employee != nil {
		resp.Employee = &EmployeeSummary{
			ID:         l.Employee.ID.String(),
			Name:       l.Employee.FullName(),
			Department: l.Employee.Department,
			Position:   l.Employee.Position,
		}
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
