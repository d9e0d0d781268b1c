package entity

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type Role struct {
	ID          uint   `gorm:"primaryKey"`
	Value       string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `gorm:"type:varchar(255)"`
}
