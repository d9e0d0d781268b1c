package service

import (
	"context"

	"coinfolio/internal/entity"
	"coinfolio/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type UserService struct {
	users    repository.UserRepository
	notifier Notifier
	clock    Clock
	logger   *logrus.Logger
}

func NewUserService(users repository.UserRepository, notifier Notifier, clock Clock, logger *logrus.Logger) *UserService {
	return &UserService{users: users, notifier: notifier, clock: clock, logger: logger}
}

// GetByID returns the user without password hash or two-factor secret.
func (s *UserService) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitized(user), nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
		users[i].TwoFactorSecret = nil
	}
	return users, nil
}

// Update applies a partial profile change. Email and username are re-checked
// for uniqueness only when the patch actually changes them. The password is
// never touched here.
func (s *UserService) Update(ctx context.Context, id uint, patch UpdateUserInput) (*entity.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := s.users.FindByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, repository.ErrDuplicateEmail
		}
		user.Email = *patch.Email
	}
	if patch.Username != nil && *patch.Username != user.Username {
		existing, err := s.users.FindByUsername(ctx, *patch.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, repository.ErrDuplicateUsername
		}
		user.Username = *patch.Username
	}

	if patch.FirstName != nil {
		user.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = patch.LastName
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	if patch.Bio != nil {
		user.Bio = patch.Bio
	}
	if patch.PreferredCurrency != nil {
		user.PreferredCurrency = *patch.PreferredCurrency
	}
	if patch.Language != nil {
		user.Language = *patch.Language
	}
	if patch.Timezone != nil {
		user.Timezone = *patch.Timezone
	}
	if len(patch.NotificationSettings) > 0 {
		user.NotificationSettings = datatypes.JSON(patch.NotificationSettings)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitized(user), nil
}

// VerifyEmail marks the address confirmed. Repeating it is harmless.
func (s *UserService) VerifyEmail(ctx context.Context, id uint) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	return s.users.Update(ctx, user)
}

func (s *UserService) RecordLogin(ctx context.Context, id uint) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	user.LastLoginAt = &now
	return s.users.Update(ctx, user)
}

// EnableTwoFactor stores the secret and flips the flag. The code itself is not
// validated here; see the setup endpoint for secret generation.
func (s *UserService) EnableTwoFactor(ctx context.Context, id uint, secret string) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	user.TwoFactorSecret = &secret
	user.TwoFactorEnabled = true
	return s.users.Update(ctx, user)
}

func (s *UserService) DisableTwoFactor(ctx context.Context, id uint) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	user.TwoFactorSecret = nil
	user.TwoFactorEnabled = false
	return s.users.Update(ctx, user)
}

func (s *UserService) Ban(ctx context.Context, id uint, reason string) (*entity.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Banned {
		return nil, ErrAlreadyBanned
	}
	user.Banned = true
	user.BanReason = &reason
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendBanNotice(ctx, user.Email, reason); err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID).Warn("ban notice email failed")
		}
	}
	s.logger.WithFields(logrus.Fields{"user_id": user.ID, "reason": reason}).Info("user banned")
	return sanitized(user), nil
}

func (s *UserService) Unban(ctx context.Context, id uint) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !user.Banned {
		return ErrNotBanned
	}
	user.Banned = false
	user.BanReason = nil
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.WithField("user_id", user.ID).Info("user unbanned")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.users.Delete(ctx, user.ID)
}

func (s *UserService) load(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func sanitized(user *entity.User) *entity.User {
	clean := *user
	clean.PasswordHash = ""
	clean.TwoFactorSecret = nil
	return &clean
}
