package hr

import (
	"context"
	"database/sql"

	"go-workforce/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=hr_repo.go -destination=mock/hr_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *HRProfile) error
	FindByAccountID(ctx context.Context, accountID string) (*HRProfile, error)
	Update(ctx context.Context, p *HRProfile) error
	DeleteByAccountID(ctx context.Context, accountID string) error
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

func (r *repository) Create(ctx context.Context, p *HRProfile) error {
	return mapRepositoryError(r.db.WithContext(ctx).Omit("Account").Create(p).Error)
}

func (r *repository) FindByAccountID(ctx context.Context, accountID string) (*HRProfile, error) {
	var p HRProfile
	err := r.db.WithContext(ctx).
		Joins("Account").
		First(&p, "hr_profiles.account_id = ?", accountID).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *HRProfile) error {
	return mapRepositoryError(r.db.WithContext(ctx).Omit("Account").Save(p).Error)
}

func (r *repository) DeleteByAccountID(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&HRProfile{}).Error
}
