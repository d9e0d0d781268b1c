package entity

// UserRole is the join table between users and roles. The composite unique
// index makes repeated assignment of the same pair a constraint violation
// even under concurrent writers.
type UserRole struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex:idx_user_roles_user_role;not null"`
	RoleID uint `gorm:"uniqueIndex:idx_user_roles_user_role;not null"`
}
