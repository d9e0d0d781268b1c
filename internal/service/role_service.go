package service

import (
	"context"

	"coinfolio/internal/entity"
	"coinfolio/internal/repository"
)

type RoleService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

func NewRoleService(users repository.UserRepository, roles repository.RoleRepository) *RoleService {
	return &RoleService{users: users, roles: roles}
}

// AssignDefaultRole gives a new account the USER role. A missing catalog is a
// configuration defect, not a user-facing condition: the catalog must be
// seeded before registrations are accepted.
func (s *RoleService) AssignDefaultRole(ctx context.Context, user *entity.User) error {
	role, err := s.roles.FindByValue(ctx, entity.RoleUser)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrRoleCatalogMissing
	}
	if err := s.roles.AddUserRole(ctx, user.ID, role.ID); err != nil {
		return err
	}
	user.Roles = append(user.Roles, *role)
	return nil
}

func (s *RoleService) AddRole(ctx context.Context, userID uint, value string) error {
	user, role, err := s.resolve(ctx, userID, value)
	if err != nil {
		return err
	}
	return s.roles.AddUserRole(ctx, user.ID, role.ID)
}

// RemoveRole drops the association if present; removing a role the user does
// not hold succeeds.
func (s *RoleService) RemoveRole(ctx context.Context, userID uint, value string) error {
	user, role, err := s.resolve(ctx, userID, value)
	if err != nil {
		return err
	}
	return s.roles.RemoveUserRole(ctx, user.ID, role.ID)
}

func (s *RoleService) resolve(ctx context.Context, userID uint, value string) (*entity.User, *entity.Role, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}
	role, err := s.roles.FindByValue(ctx, value)
	if err != nil {
		return nil, nil, err
	}
	if role == nil {
		return nil, nil, ErrRoleNotFound
	}
	return user, role, nil
}
