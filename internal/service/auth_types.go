package service

import (
	"context"
	"time"

	"coinfolio/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost keeps login latency low; callers may raise it without
// changing stored digests, bcrypt encodes the cost per digest.
const DefaultHashCost = 5

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type TokenIssuer interface {
	IssueToken(user entity.User) (string, error)
}

type Notifier interface {
	SendWelcome(ctx context.Context, email string, username string) error
	SendBanNotice(ctx context.Context, email string, reason string) error
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = DefaultHashCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify never fails loudly: a malformed digest compares as false.
func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
