package account

import (
	"time"

	"go-workforce/internal/domain"

	"github.com/google/uuid"
)

type Account struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name         string      `gorm:"type:varchar(255);not null"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordHash string      `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role         domain.Role `gorm:"type:varchar(20);not null"`
	AvatarURL    *string     `gorm:"type:text"`
	AvatarHandle *string     `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Account) TableName() string {
	return "users"
}
