package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-workforce/internal/account"
	"go-workforce/internal/bootstrap"
	"go-workforce/internal/domain"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/hr"
	hrerrors "go-workforce/internal/hr/errors"
	"go-workforce/internal/leave"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/contextutil"
	usererrors "go-workforce/internal/user/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	DeleteAccount(ctx context.Context, accountID, actorID string) (DeletionResponse, error)
	DeleteEmployee(ctx context.Context, employeeID, actorID string) (DeletionResponse, error)
}

type service struct {
	db        *sql.DB
	accounts  account.Repository
	employees employee.Repository
	hrs       hr.Repository
	leaves    leave.Repository
	outbox    kafka.OutboxRepository
	audit     bootstrap.AuditLogger
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	accounts account.Repository,
	employees employee.Repository,
	hrs hr.Repository,
	leaves leave.Repository,
	outbox kafka.OutboxRepository,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:        db,
		accounts:  accounts,
		employees: employees,
		hrs:       hrs,
		leaves:    leaves,
		outbox:    outbox,
		audit:     audit,
		now:       time.Now,
		logger:    l,
	}
}

// DeleteEmployee resolves the owning account of an employee profile and
// deletes that account.
func (s *service) DeleteEmployee(ctx context.Context, employeeID, actorID string) (DeletionResponse, error) {
	p, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return DeletionResponse{}, err
	}
	return s.DeleteAccount(ctx, p.AccountID.String(), actorID)
}

// DeleteAccount removes the account together with its role profile and,
// for employees, every leave request. Nothing is left behind on failure.
func (s *service) DeleteAccount(ctx context.Context, accountID, actorID string) (DeletionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("account_id", accountID))
	log.Debug("delete account requested", zap.String("actor_id", actorID))

	if accountID == actorID {
		return DeletionResponse{}, usererrors.ErrSelfDeletion
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete account begin tx failed", zap.Error(err))
		return DeletionResponse{}, err
	}
	defer tx.Rollback()

	accounts := s.accounts.WithTx(tx)
	acc, err := accounts.FindByID(ctx, accountID)
	if err != nil {
		return DeletionResponse{}, err
	}

	resp := DeletionResponse{AccountID: accountID, Role: acc.Role.String()}

	switch acc.Role {
	case domain.RoleEmployee:
		if err := s.removeEmployeeProfile(ctx, tx, accountID, &resp); err != nil {
			log.Error("delete account employee cascade failed", zap.Error(err))
			return DeletionResponse{}, err
		}
	case domain.RoleHR:
		if err := s.removeHRProfile(ctx, tx, accountID, &resp); err != nil {
			log.Error("delete account hr cascade failed", zap.Error(err))
			return DeletionResponse{}, err
		}
	}

	if err := accounts.Delete(ctx, accountID); err != nil {
		log.Error("delete account persist failed", zap.Error(err))
		return DeletionResponse{}, err
	}

	payload := events.AccountDeletedEvent{
		EventType:     events.AccountDeletedEventType,
		AccountID:     accountID,
		Role:          resp.Role,
		ProfileID:     resp.ProfileID,
		LeavesRemoved: resp.LeavesRemoved,
		DeletedBy:     actorID,
		OccurredAt:    s.now().UTC(),
	}
	if acc.AvatarHandle != nil {
		payload.AvatarHandle = *acc.AvatarHandle
	}

	event, err := kafka.NewOutboxEvent(ctx, "account", accountID,
		events.AccountDeletedEventType, events.AccountLifecycleTopic, payload)
	if err != nil {
		return DeletionResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("delete account outbox write failed", zap.Error(err))
		return DeletionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete account commit failed", zap.Error(err))
		return DeletionResponse{}, err
	}

	if s.audit != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "ACCOUNT_DELETED",
			Message: "Account and owned records removed",
			ActorID: actorID,
			Meta: map[string]any{
				"account_id":     accountID,
				"role":           resp.Role,
				"leaves_removed": resp.LeavesRemoved,
			},
		})
	}

	log.Info("delete account success",
		zap.String("role", resp.Role),
		zap.Int64("leaves_removed", resp.LeavesRemoved),
	)
	return resp, nil
}

// A missing profile is not an error: registration may have stopped short
// of creating one.
func (s *service) removeEmployeeProfile(ctx context.Context, tx *sql.Tx, accountID string, resp *DeletionResponse) error {
	employees := s.employees.WithTx(tx)
	p, err := employees.FindByAccountID(ctx, accountID)
	if errors.Is(err, employeeerrors.ErrProfileNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	removed, err := s.leaves.WithTx(tx).DeleteByEmployee(ctx, p.ID.String())
	if err != nil {
		return err
	}
	if err := employees.DeleteByAccountID(ctx, accountID); err != nil {
		return err
	}

	resp.ProfileID = p.ID.String()
	resp.LeavesRemoved = removed
	return nil
}

func (s *service) removeHRProfile(ctx context.Context, tx *sql.Tx, accountID string, resp *DeletionResponse) error {
	hrs := s.hrs.WithTx(tx)
	p, err := hrs.FindByAccountID(ctx, accountID)
	if errors.Is(err, hrerrors.ErrHRProfileNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := hrs.DeleteByAccountID(ctx, accountID); err != nil {
		return err
	}
	resp.ProfileID = p.ID.String()
	return nil
}
