package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-workforce/internal/account"
	accounterrors "go-workforce/internal/account/errors"
	autherrors "go-workforce/internal/auth/errors"
	"go-workforce/internal/domain"
	"go-workforce/internal/employee"
	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/events"
	"go-workforce/internal/hr"
	hrerrors "go-workforce/internal/hr/errors"
	"go-workforce/internal/messaging/kafka"
	"go-workforce/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	GetProfile(ctx context.Context, accountID string) (ProfileResponse, error)
	UpdateAvatar(ctx context.Context, accountID string, req UpdateAvatarRequest) (AccountResponse, error)
	ProvisionEmployee(ctx context.Context, req ProvisionEmployeeRequest) (ProfileResponse, error)
	ProvisionHR(ctx context.Context, req ProvisionHRRequest) (ProfileResponse, error)
}

type service struct {
	db        *sql.DB
	accounts  account.Repository
	employees employee.Repository
	hrs       hr.Repository
	outbox    kafka.OutboxRepository
	tokens    *TokenIssuer
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	accounts account.Repository,
	employees employee.Repository,
	hrs hr.Repository,
	outbox kafka.OutboxRepository,
	tokens *TokenIssuer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:        db,
		accounts:  accounts,
		employees: employees,
		hrs:       hrs,
		outbox:    outbox,
		tokens:    tokens,
		now:       time.Now,
		logger:    l,
	}
}

// newAccount is the shared input for self-registration and provisioning.
type newAccount struct {
	name     string
	email    string
	password string
	role     domain.Role
	employee employee.ProfileFields
	hr       hr.ProfileFields
}

type createdAccount struct {
	account  *account.Account
	employee *employee.EmployeeProfile
	hr       *hr.HRProfile
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}
	if role == domain.RoleEmployee && (strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "") {
		return AuthResponse{}, autherrors.ErrMissingEmployeeName
	}

	created, err := s.create(ctx, newAccount{
		name:     req.Name,
		email:    req.Email,
		password: req.Password,
		role:     role,
		employee: employee.ProfileFields{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Department:    req.Department,
			Position:      req.Position,
			ContactNumber: req.ContactNumber,
			Address:       req.Address,
		},
		hr: hr.ProfileFields{
			Department: req.Department,
			Position:   req.Position,
			Phone:      req.Phone,
		},
	})
	if err != nil {
		return AuthResponse{}, err
	}

	resp, err := s.issue(created.account)
	if err != nil {
		log.Error("register token issue failed", zap.Error(err))
		return AuthResponse{}, err
	}

	log.Info("register success",
		zap.String("account_id", created.account.ID.String()),
		zap.String("role", role.String()),
	)
	return resp, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	acc, err := s.accounts.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, accounterrors.ErrAccountNotFound) {
			burnPasswordCheck(req.Password)
			log.Debug("login unknown email")
			return AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		log.Error("login lookup failed", zap.Error(err))
		return AuthResponse{}, err
	}

	if !checkPassword(acc.PasswordHash, req.Password) {
		log.Debug("login wrong password", zap.String("account_id", acc.ID.String()))
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	resp, err := s.issue(acc)
	if err != nil {
		log.Error("login token issue failed", zap.Error(err))
		return AuthResponse{}, err
	}

	log.Info("login success", zap.String("account_id", acc.ID.String()))
	return resp, nil
}

func (s *service) GetProfile(ctx context.Context, accountID string) (ProfileResponse, error) {
	acc, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return ProfileResponse{}, err
	}

	resp := ProfileResponse{Account: toAccountResponse(acc)}

	switch acc.Role {
	case domain.RoleEmployee:
		p, err := s.employees.FindByAccountID(ctx, accountID)
		if err != nil && !errors.Is(err, employeeerrors.ErrProfileNotFound) {
			return ProfileResponse{}, err
		}
		if p != nil {
			p.Account = acc
			e := employee.ToResponse(*p)
			resp.Employee = &e
		}
	case domain.RoleHR:
		p, err := s.hrs.FindByAccountID(ctx, accountID)
		if err != nil && !errors.Is(err, hrerrors.ErrHRProfileNotFound) {
			return ProfileResponse{}, err
		}
		if p != nil {
			p.Account = acc
			h := hr.ToResponse(*p)
			resp.HR = &h
		}
	}

	return resp, nil
}

// UpdateAvatar replaces the stored avatar reference. Employees carry a copy
// on their profile, so both rows change in one transaction.
func (s *service) UpdateAvatar(ctx context.Context, accountID string, req UpdateAvatarRequest) (AccountResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update avatar requested", zap.String("account_id", accountID))

	url := strings.TrimSpace(req.URL)
	handle := strings.TrimSpace(req.Handle)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update avatar begin tx failed", zap.Error(err))
		return AccountResponse{}, err
	}
	defer tx.Rollback()

	accounts := s.accounts.WithTx(tx)
	acc, err := accounts.FindByID(ctx, accountID)
	if err != nil {
		return AccountResponse{}, err
	}

	var previous string
	if acc.AvatarHandle != nil {
		previous = *acc.AvatarHandle
	}

	if err := accounts.UpdateAvatar(ctx, accountID, url, handle); err != nil {
		log.Error("update avatar persist failed", zap.Error(err))
		return AccountResponse{}, err
	}

	if acc.Role == domain.RoleEmployee {
		if err := s.employees.WithTx(tx).UpdateAvatar(ctx, accountID, url, handle); err != nil {
			log.Error("update avatar profile persist failed", zap.Error(err))
			return AccountResponse{}, err
		}
	}

	event, err := kafka.NewOutboxEvent(ctx, "account", accountID,
		events.AccountAvatarReplacedEventType, events.AccountLifecycleTopic,
		events.AvatarReplacedEvent{
			EventType:      events.AccountAvatarReplacedEventType,
			AccountID:      accountID,
			AvatarURL:      url,
			PreviousHandle: previous,
			OccurredAt:     s.now().UTC(),
		})
	if err != nil {
		return AccountResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		log.Error("update avatar outbox write failed", zap.Error(err))
		return AccountResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update avatar commit failed", zap.Error(err))
		return AccountResponse{}, err
	}

	// A blank handle is stored as NULL; mirror that in the response.
	acc.AvatarURL = &url
	acc.AvatarHandle = nil
	if handle != "" {
		acc.AvatarHandle = &handle
	}

	log.Info("update avatar success", zap.String("account_id", accountID))
	return toAccountResponse(acc), nil
}

func (s *service) ProvisionEmployee(ctx context.Context, req ProvisionEmployeeRequest) (ProfileResponse, error) {
	fields := employee.ProfileFields{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Department:    req.Department,
		Position:      req.Position,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return ProfileResponse{}, employeeerrors.ErrInvalidSalary
		}
		fields.Salary = req.Salary.Round(2)
	} else {
		fields.Salary = decimal.Zero
	}
	if req.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return ProfileResponse{}, employeeerrors.ErrInvalidJoinDate
		}
		fields.JoinDate = joinDate
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))
	}

	created, err := s.create(ctx, newAccount{
		name:     name,
		email:    req.Email,
		password: req.Password,
		role:     domain.RoleEmployee,
		employee: fields,
	})
	if err != nil {
		return ProfileResponse{}, err
	}
	return toProfileResponse(created), nil
}

func (s *service) ProvisionHR(ctx context.Context, req ProvisionHRRequest) (ProfileResponse, error) {
	created, err := s.create(ctx, newAccount{
		name:     req.Name,
		email:    req.Email,
		password: req.Password,
		role:     domain.RoleHR,
		hr: hr.ProfileFields{
			Department: req.Department,
			Position:   req.Position,
			Phone:      req.Phone,
		},
	})
	if err != nil {
		return ProfileResponse{}, err
	}
	return toProfileResponse(created), nil
}

// create stores the account and its role profile atomically.
func (s *service) create(ctx context.Context, in newAccount) (createdAccount, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	email := normalizeEmail(in.email)

	exists, err := s.accounts.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("account email lookup failed", zap.Error(err))
		return createdAccount{}, err
	}
	if exists {
		return createdAccount{}, accounterrors.ErrEmailAlreadyRegistered
	}

	hash, err := hashPassword(in.password)
	if err != nil {
		log.Error("password hash failed", zap.Error(err))
		return createdAccount{}, err
	}

	acc := &account.Account{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.name),
		Email:        email,
		PasswordHash: hash,
		Role:         in.role,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("account create begin tx failed", zap.Error(err))
		return createdAccount{}, err
	}
	defer tx.Rollback()

	// unique index on email still guards the race past ExistsByEmail
	if err := s.accounts.WithTx(tx).Create(ctx, acc); err != nil {
		log.Error("account create persist failed", zap.Error(err))
		return createdAccount{}, err
	}

	out := createdAccount{account: acc}
	switch in.role {
	case domain.RoleEmployee:
		p := employee.NewProfile(acc.ID, in.employee)
		if err := s.employees.WithTx(tx).Create(ctx, p); err != nil {
			log.Error("employee profile create failed", zap.Error(err))
			return createdAccount{}, err
		}
		p.Account = acc
		out.employee = p
	case domain.RoleHR:
		p := hr.NewProfile(acc.ID, in.hr)
		if err := s.hrs.WithTx(tx).Create(ctx, p); err != nil {
			log.Error("hr profile create failed", zap.Error(err))
			return createdAccount{}, err
		}
		p.Account = acc
		out.hr = p
	}

	if err := tx.Commit(); err != nil {
		log.Error("account create commit failed", zap.Error(err))
		return createdAccount{}, err
	}

	log.Info("account created",
		zap.String("account_id", acc.ID.String()),
		zap.String("role", in.role.String()),
	)
	return out, nil
}

func (s *service) issue(acc *account.Account) (AuthResponse, error) {
	token, expiresAt, err := s.tokens.IssueToken(acc.ID.String())
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{
		AccountResponse: toAccountResponse(acc),
		Token:           token,
		ExpiresAt:       expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		Email:        a.Email,
		Role:         a.Role.String(),
		AvatarURL:    a.AvatarURL,
		AvatarHandle: a.AvatarHandle,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func toProfileResponse(c createdAccount) ProfileResponse {
	resp := ProfileResponse{Account: toAccountResponse(c.account)}
	if c.employee != nil {
		e := employee.ToResponse(*c.employee)
		resp.Employee = &e
	}
	if c.hr != nil {
		h := hr.ToResponse(*c.hr)
		resp.HR = &h
	}
	return resp
}
