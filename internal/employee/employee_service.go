package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/shared/contextutil"
	"go-workforce/internal/shared/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	CreateOwnProfile(ctx context.Context, accountID string, req CreateProfileRequest) (EmployeeResponse, error)
	GetOwnProfile(ctx context.Context, accountID string) (EmployeeResponse, error)
	UpdateOwnProfile(ctx context.Context, accountID string, req UpdateOwnProfileRequest) (EmployeeResponse, error)
	List(ctx context.Context, params pagination.Params) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
}

type service struct {
	repo   Repository
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:   repo,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) CreateOwnProfile(ctx context.Context, accountID string, req CreateProfileRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create own employee profile requested",
		zap.String("request_id", rid),
		zap.String("account_id", accountID),
	)

	accountUUID, err := uuid.Parse(accountID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return EmployeeResponse{}, employeeerrors.ErrMissingName
	}

	_, err = s.repo.FindByAccountID(ctx, accountID)
	switch {
	case err == nil:
		s.logger.Warn("create own employee profile already exists", zap.String("account_id", accountID))
		return EmployeeResponse{}, employeeerrors.ErrProfileAlreadyExists
	case !errors.Is(err, employeeerrors.ErrProfileNotFound):
		s.logger.Error("create own employee profile lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	p := NewProfile(accountUUID, ProfileFields{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Department:    req.Department,
		Position:      req.Position,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	})
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create own employee profile persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create own employee profile success",
		zap.String("request_id", rid),
		zap.String("employee_id", p.ID.String()),
	)
	return s.GetOwnProfile(ctx, accountID)
}

func (s *service) GetOwnProfile(ctx context.Context, accountID string) (EmployeeResponse, error) {
	p, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) UpdateOwnProfile(ctx context.Context, accountID string, req UpdateOwnProfileRequest) (EmployeeResponse, error) {
	s.logger.Debug("update own employee profile requested", zap.String("account_id", accountID))

	p, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	applyText(&p.FirstName, req.FirstName)
	applyText(&p.LastName, req.LastName)
	applyText(&p.Department, req.Department)
	applyText(&p.Position, req.Position)
	applyText(&p.ContactNumber, req.ContactNumber)
	applyText(&p.Address, req.Address)

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update own employee profile persist failed",
			zap.String("employee_id", p.ID.String()),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.logger.Info("update own employee profile success", zap.String("employee_id", p.ID.String()))
	return mapToResponse(*p), nil
}

type listResult struct {
	items []EmployeeResponse
	total int64
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]EmployeeResponse, int64, error) {
	key := fmt.Sprintf("%d:%d:%s", params.Page, params.Limit, strings.ToLower(params.Search))

	// Coalesced callers share one query; it must outlive the caller that
	// started it.
	queryCtx := context.WithoutCancel(ctx)
	v, err, shared := s.sf.Do(key, func() (interface{}, error) {
		profiles, total, err := s.repo.List(queryCtx, ListParams{
			Search: params.Search,
			Offset: params.Offset(),
			Limit:  params.Limit,
		})
		if err != nil {
			return nil, err
		}
		return listResult{items: mapToListResponse(profiles), total: total}, nil
	})
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, 0, err
	}
	if shared {
		s.logger.Debug("list employees coalesced", zap.String("key", key))
	}

	res := v.(listResult)
	return res.items, res.total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	applyText(&p.FirstName, req.FirstName)
	applyText(&p.LastName, req.LastName)
	applyText(&p.Department, req.Department)
	applyText(&p.Position, req.Position)
	applyText(&p.ContactNumber, req.ContactNumber)
	applyText(&p.Address, req.Address)

	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return EmployeeResponse{}, employeeerrors.ErrInvalidSalary
		}
		p.Salary = req.Salary.Round(2)
	}
	if req.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
		}
		p.JoinDate = datatypes.Date(joinDate)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*p), nil
}

func applyText(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func mapToResponse(p EmployeeProfile) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            p.ID.String(),
		AccountID:     p.AccountID.String(),
		Name:          p.FullName(),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Department:    p.Department,
		Position:      p.Position,
		ContactNumber: p.ContactNumber,
		Address:       p.Address,
		Salary:        p.Salary,
		JoinDate:      time.Time(p.JoinDate).Format("2006-01-02"),
		AvatarURL:     p.AvatarURL,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.Account != nil {
		resp.Email = p.Account.Email
		if resp.Name == "" {
			resp.Name = p.Account.Name
		}
		if resp.AvatarURL == nil {
			resp.AvatarURL = p.Account.AvatarURL
		}
	}
	return resp
}

func mapToListResponse(profiles []EmployeeProfile) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(profiles))
	for i, p := range profiles {
		resp[i] = mapToResponse(p)
	}
	return resp
}

// ToResponse exposes the read model to packages composing employee data.
func ToResponse(p EmployeeProfile) EmployeeResponse {
	return mapToResponse(p)
}
