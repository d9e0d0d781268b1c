package repository

import (
	"context"
	"errors"

	"coinfolio/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrRoleAlreadyAssigned = errors.New("role already assigned")

type RoleRepository interface {
	FindByValue(ctx context.Context, value string) (*entity.Role, error)
	Seed(ctx context.Context, roles []entity.Role) error
	AddUserRole(ctx context.Context, userID, roleID uint) error
	RemoveUserRole(ctx context.Context, userID, roleID uint) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByValue(ctx context.Context, value string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).Where("value = ?", value).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// Seed upserts the role catalog by value. Safe to run on every start.
func (r *roleRepository) Seed(ctx context.Context, roles []entity.Role) error {
	if len(roles) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "value"}},
			DoNothing: true,
		}).
		Create(&roles).Error
}

// AddUserRole inserts the association and rejects a repeat of the same pair.
// The composite unique index on user_roles backs the pre-check under
// concurrent assignment.
func (r *roleRepository) AddUserRole(ctx context.Context, userID, roleID uint) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.UserRole{}).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrRoleAlreadyAssigned
	}

	err = r.db.WithContext(ctx).Create(&entity.UserRole{UserID: userID, RoleID: roleID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrRoleAlreadyAssigned
	}
	return err
}

// RemoveUserRole deletes the association. Removing a pair that does not exist
// is not an error.
func (r *roleRepository) RemoveUserRole(ctx context.Context, userID, roleID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&entity.UserRole{}).Error
}
