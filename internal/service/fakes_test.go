package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"coinfolio/internal/entity"
	"coinfolio/internal/repository"
)

// In-memory repositories mirroring the storage contracts: email-first
// duplicate classification on create, "@"-routed login resolution, and the
// unique (user, role) pair on assignment.

type memoryUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]*entity.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return u.Email == email })
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.findBy(func(u *entity.User) bool { return u.Username == username })
}

func (r *memoryUserRepo) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	if strings.Contains(login, "@") {
		return r.FindByEmail(ctx, login)
	}
	return r.FindByUsername(ctx, login)
}

func (r *memoryUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) List(_ context.Context, limit, offset int) ([]entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *memoryUserRepo) findBy(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

type rolePair struct {
	userID uint
	roleID uint
}

type memoryRoleRepo struct {
	mu          sync.Mutex
	nextID      uint
	roles       map[string]*entity.Role
	assignments map[rolePair]bool
}

func newMemoryRoleRepo() *memoryRoleRepo {
	return &memoryRoleRepo{
		roles:       make(map[string]*entity.Role),
		assignments: make(map[rolePair]bool),
	}
}

func (r *memoryRoleRepo) FindByValue(_ context.Context, value string) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[value]
	if !ok {
		return nil, nil
	}
	copied := *role
	return &copied, nil
}

func (r *memoryRoleRepo) Seed(_ context.Context, roles []entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range roles {
		if _, ok := r.roles[role.Value]; ok {
			continue
		}
		r.nextID++
		role.ID = r.nextID
		stored := role
		r.roles[role.Value] = &stored
	}
	return nil
}

func (r *memoryRoleRepo) AddUserRole(_ context.Context, userID, roleID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pair := rolePair{userID: userID, roleID: roleID}
	if r.assignments[pair] {
		return repository.ErrRoleAlreadyAssigned
	}
	r.assignments[pair] = true
	return nil
}

func (r *memoryRoleRepo) RemoveUserRole(_ context.Context, userID, roleID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assignments, rolePair{userID: userID, roleID: roleID})
	return nil
}

func (r *memoryRoleRepo) assigned(userID, roleID uint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.assignments[rolePair{userID: userID, roleID: roleID}]
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
