package service

import (
	"context"
	"testing"

	"coinfolio/internal/entity"
	"coinfolio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoleFixture(t *testing.T) (*RoleService, *memoryRoleRepo, *entity.User) {
	t.Helper()

	users := newMemoryUserRepo()
	roles := newMemoryRoleRepo()
	require.NoError(t, roles.Seed(context.Background(), []entity.Role{
		{Value: entity.RoleUser},
		{Value: entity.RoleAdmin},
	}))

	user := &entity.User{Username: "trader1", Email: "user@mail.ru", PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), user))
	return NewRoleService(users, roles), roles, user
}

func TestAddRoleRejectsRepeatAssignment(t *testing.T) {
	svc, roles, user := newRoleFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.AddRole(ctx, user.ID, entity.RoleAdmin))
	err := svc.AddRole(ctx, user.ID, entity.RoleAdmin)
	assert.ErrorIs(t, err, repository.ErrRoleAlreadyAssigned)

	adminRole, err := roles.FindByValue(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, roles.assigned(user.ID, adminRole.ID))
}

func TestRemoveThenAddRestoresAssociation(t *testing.T) {
	svc, roles, user := newRoleFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.AddRole(ctx, user.ID, entity.RoleAdmin))
	require.NoError(t, svc.RemoveRole(ctx, user.ID, entity.RoleAdmin))

	adminRole, err := roles.FindByValue(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, roles.assigned(user.ID, adminRole.ID))

	require.NoError(t, svc.AddRole(ctx, user.ID, entity.RoleAdmin))
	assert.True(t, roles.assigned(user.ID, adminRole.ID))
}

func TestRemoveRoleNotAssignedSucceeds(t *testing.T) {
	svc, _, user := newRoleFixture(t)

	assert.NoError(t, svc.RemoveRole(context.Background(), user.ID, entity.RoleAdmin))
}

func TestRoleOperationsMissingUserOrRole(t *testing.T) {
	svc, _, user := newRoleFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddRole(ctx, 999, entity.RoleAdmin), ErrUserNotFound)
	assert.ErrorIs(t, svc.AddRole(ctx, user.ID, "MODERATOR"), ErrRoleNotFound)
	assert.ErrorIs(t, svc.RemoveRole(ctx, 999, entity.RoleAdmin), ErrUserNotFound)
	assert.ErrorIs(t, svc.RemoveRole(ctx, user.ID, "MODERATOR"), ErrRoleNotFound)
}

func TestAssignDefaultRoleRequiresCatalog(t *testing.T) {
	users := newMemoryUserRepo()
	roles := newMemoryRoleRepo()
	svc := NewRoleService(users, roles)

	user := &entity.User{Username: "trader1", Email: "user@mail.ru", PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), user))

	err := svc.AssignDefaultRole(context.Background(), user)
	assert.ErrorIs(t, err, ErrRoleCatalogMissing)
}
