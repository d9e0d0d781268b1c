package service

import (
	"context"

	"coinfolio/internal/entity"
	"coinfolio/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Compared against on unknown logins so both branches pay the bcrypt cost.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

var defaultNotificationSettings = []byte(`{"email":true,"priceAlerts":true}`)

type AuthService struct {
	users    repository.UserRepository
	roles    *RoleService
	hasher   PasswordHasher
	tokens   TokenIssuer
	notifier Notifier
	clock    Clock
	logger   *logrus.Logger
}

func NewAuthService(
	users repository.UserRepository,
	roles *RoleService,
	hasher PasswordHasher,
	tokens TokenIssuer,
	notifier Notifier,
	clock Clock,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// Login resolves the identifier (email when it contains "@", username
// otherwise), verifies the password and issues a token. Callers only ever see
// ErrInvalidCredentials; the log records which sub-check failed.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenResult, error) {
	user, err := s.users.FindByLogin(ctx, input.Login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = s.hasher.Verify(dummyPasswordHash, input.Password)
		s.logger.WithField("login", input.Login).Warn("login rejected: user not found")
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.PasswordHash, input.Password) {
		s.logger.WithFields(logrus.Fields{"login": input.Login, "user_id": user.ID}).
			Warn("login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("failed to stamp last login")
	}

	token, err := s.tokens.IssueToken(*user)
	if err != nil {
		return nil, err
	}
	return &TokenResult{Token: token}, nil
}

// Register creates the account, assigns the default role and returns a token
// for the fresh identity. Duplicate checks report the email collision before
// the username collision.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*TokenResult, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	settings := datatypes.JSON(defaultNotificationSettings)
	if len(input.NotificationSettings) > 0 {
		settings = datatypes.JSON(input.NotificationSettings)
	}

	user := &entity.User{
		Username:             input.Username,
		Email:                input.Email,
		PasswordHash:         hash,
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		Avatar:               input.Avatar,
		Bio:                  input.Bio,
		PreferredCurrency:    input.PreferredCurrency,
		Language:             input.Language,
		Timezone:             input.Timezone,
		NotificationSettings: settings,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.roles.AssignDefaultRole(ctx, user); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendWelcome(ctx, user.Email, user.Username); err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).Warn("welcome email failed")
		}
	}

	token, err := s.tokens.IssueToken(*user)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return &TokenResult{Token: token}, nil
}
