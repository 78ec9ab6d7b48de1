package account

import (
	"context"
	"database/sql"

	accounterrors "go-workforce/internal/account/errors"
	"go-workforce/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=account_repo.go -destination=mock/account_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateAvatar(ctx context.Context, id, url, handle string) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, a *Account) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(a).Error)
}

func (r *repository) FindByID(ctx context.Context, id string) (*Account, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, accounterrors.ErrAccountNotFound
	}

	var a Account
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &a, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &a, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateAvatar(ctx context.Context, id, url, handle string) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"avatar_url": url, "avatar_handle": nullable(handle)})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return accounterrors.ErrAccountNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Account{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return accounterrors.ErrAccountNotFound
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
