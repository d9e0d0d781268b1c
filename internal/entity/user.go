package entity

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:text;not null"`

	FirstName         *string `gorm:"type:varchar(50)"`
	LastName          *string `gorm:"type:varchar(50)"`
	Avatar            *string `gorm:"type:varchar(1024)"`
	Bio               *string `gorm:"type:varchar(500)"`
	PreferredCurrency string  `gorm:"type:varchar(3);default:'USD';not null"`
	Language          string  `gorm:"type:varchar(2);default:'en';not null"`
	Timezone          string  `gorm:"type:varchar(64);default:'UTC';not null"`

	EmailVerified    bool    `gorm:"default:false;not null"`
	TwoFactorEnabled bool    `gorm:"default:false;not null"`
	TwoFactorSecret  *string `gorm:"type:text"`

	LastLoginAt *time.Time
	Banned      bool    `gorm:"default:false;not null"`
	BanReason   *string `gorm:"type:varchar(255)"`

	NotificationSettings datatypes.JSON

	CreatedAt time.Time
	UpdatedAt time.Time

	Roles []Role `gorm:"many2many:user_roles"`
	Posts []Post `gorm:"constraint:OnDelete:CASCADE"`
}

// RoleValues returns the role tags carried into token claims.
func (u *User) RoleValues() []string {
	values := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		values = append(values, role.Value)
	}
	return values
}
