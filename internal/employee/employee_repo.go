package employee

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	employeeerrors "go-workforce/internal/employee/errors"
	"go-workforce/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListParams struct {
	Search string
	Offset int
	Limit  int
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *EmployeeProfile) error
	FindByID(ctx context.Context, id string) (*EmployeeProfile, error)
	FindByAccountID(ctx context.Context, accountID string) (*EmployeeProfile, error)
	List(ctx context.Context, params ListParams) ([]EmployeeProfile, int64, error)
	Update(ctx context.Context, p *EmployeeProfile) error
	UpdateAvatar(ctx context.Context, accountID, url, handle string) error
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

func (r *repository) Create(ctx context.Context, p *EmployeeProfile) error {
	return mapRepositoryError(r.db.WithContext(ctx).Omit("Account").Create(p).Error)
}

func (r *repository) FindByID(ctx context.Context, id string) (*EmployeeProfile, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, employeeerrors.ErrEmployeeNotFound
	}

	var p EmployeeProfile
	err := r.db.WithContext(ctx).
		Joins("Account").
		First(&p, "employee_profiles.id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &p, nil
}

func (r *repository) FindByAccountID(ctx context.Context, accountID string) (*EmployeeProfile, error) {
	var p EmployeeProfile
	err := r.db.WithContext(ctx).
		Joins("Account").
		First(&p, "employee_profiles.account_id = ?", accountID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, employeeerrors.ErrProfileNotFound
	}
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &p, nil
}

// List matches search case-insensitively against name, email, department and position.
func (r *repository) List(ctx context.Context, params ListParams) ([]EmployeeProfile, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&EmployeeProfile{}).
		Joins("Account")

	if s := strings.TrimSpace(params.Search); s != "" {
		like := "%" + escapeLike(s) + "%"
		q = q.Where(
			`employee_profiles.first_name ILIKE ? OR employee_profiles.last_name ILIKE ? OR "Account".name ILIKE ? OR "Account".email ILIKE ? OR employee_profiles.department ILIKE ? OR employee_profiles.position ILIKE ?`,
			like, like, like, like, like, like,
		)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []EmployeeProfile
	err := q.
		Order("employee_profiles.created_at DESC").
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *repository) Update(ctx context.Context, p *EmployeeProfile) error {
	return mapRepositoryError(r.db.WithContext(ctx).Omit("Account").Save(p).Error)
}

func (r *repository) UpdateAvatar(ctx context.Context, accountID, url, handle string) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeProfile{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{"avatar_url": url, "avatar_handle": nullable(handle)}).Error
}

func (r *repository) DeleteByAccountID(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&EmployeeProfile{}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
