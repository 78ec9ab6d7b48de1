package hr

import (
	"context"
	"strings"
	"time"

	"go-workforce/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=hr_service.go -destination=mock/hr_service_mock.go -package=mock
type Service interface {
	GetOwnProfile(ctx context.Context, accountID string) (HRProfileResponse, error)
	UpdateOwnProfile(ctx context.Context, accountID string, req UpdateProfileRequest) (HRProfileResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("hr.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("hr.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetOwnProfile(ctx context.Context, accountID string) (HRProfileResponse, error) {
	p, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return HRProfileResponse{}, err
	}
	return ToResponse(*p), nil
}

func (s *service) UpdateOwnProfile(ctx context.Context, accountID string, req UpdateProfileRequest) (HRProfileResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update own hr profile requested", zap.String("account_id", accountID))

	p, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return HRProfileResponse{}, err
	}

	if v := strings.TrimSpace(req.Department); v != "" {
		p.Department = v
	}
	if v := strings.TrimSpace(req.Position); v != "" {
		p.Position = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		p.Phone = v
	}

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("update own hr profile persist failed", zap.Error(err))
		return HRProfileResponse{}, err
	}

	log.Info("update own hr profile success", zap.String("hr_profile_id", p.ID.String()))
	return ToResponse(*p), nil
}

func ToResponse(p HRProfile) HRProfileResponse {
	resp := HRProfileResponse{
		ID:         p.ID.String(),
		AccountID:  p.AccountID.String(),
		Department: p.Department,
		Position:   p.Position,
		Phone:      p.Phone,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
	if p.Account != nil {
		resp.Name = p.Account.Name
		resp.Email = p.Account.Email
	}
	return resp
}
