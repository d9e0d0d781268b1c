package dto

import (
	"encoding/json"
	"time"

	"coinfolio/internal/entity"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=32"`

	FirstName            *string         `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName             *string         `json:"lastName" validate:"omitempty,min=1,max=50"`
	Avatar               *string         `json:"avatar" validate:"omitempty,url"`
	Bio                  *string         `json:"bio" validate:"omitempty,max=500"`
	PreferredCurrency    string          `json:"preferredCurrency" validate:"omitempty,oneof=USD EUR RUB GBP JPY CNY"`
	Language             string          `json:"language" validate:"omitempty,oneof=en ru es fr de zh"`
	Timezone             string          `json:"timezone" validate:"omitempty,max=64"`
	NotificationSettings json.RawMessage `json:"notificationSettings"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UpdateUserRequest struct {
	Username             *string         `json:"username" validate:"omitempty,min=3,max=20"`
	Email                *string         `json:"email" validate:"omitempty,email"`
	FirstName            *string         `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName             *string         `json:"lastName" validate:"omitempty,min=1,max=50"`
	Avatar               *string         `json:"avatar" validate:"omitempty,url"`
	Bio                  *string         `json:"bio" validate:"omitempty,max=500"`
	PreferredCurrency    *string         `json:"preferredCurrency" validate:"omitempty,oneof=USD EUR RUB GBP JPY CNY"`
	Language             *string         `json:"language" validate:"omitempty,oneof=en ru es fr de zh"`
	Timezone             *string         `json:"timezone" validate:"omitempty,max=64"`
	NotificationSettings json.RawMessage `json:"notificationSettings"`
}

type RoleRequest struct {
	UserID uint   `json:"userId" validate:"required"`
	Value  string `json:"value" validate:"required"`
}

type BanRequest struct {
	UserID    uint   `json:"userId" validate:"required"`
	BanReason string `json:"banReason" validate:"required"`
}

type TwoFactorEnableRequest struct {
	Secret string `json:"secret" validate:"required"`
}

type TwoFactorSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the sanitized profile view: it never carries the password
// hash or the two-factor secret.
type UserResponse struct {
	ID                   uint            `json:"id"`
	Username             string          `json:"username"`
	Email                string          `json:"email"`
	FirstName            *string         `json:"firstName,omitempty"`
	LastName             *string         `json:"lastName,omitempty"`
	Avatar               *string         `json:"avatar,omitempty"`
	Bio                  *string         `json:"bio,omitempty"`
	PreferredCurrency    string          `json:"preferredCurrency"`
	Language             string          `json:"language"`
	Timezone             string          `json:"timezone"`
	EmailVerified        bool            `json:"emailVerified"`
	TwoFactorEnabled     bool            `json:"twoFactorEnabled"`
	LastLoginAt          *time.Time      `json:"lastLoginAt,omitempty"`
	Banned               bool            `json:"banned"`
	BanReason            *string         `json:"banReason,omitempty"`
	NotificationSettings json.RawMessage `json:"notificationSettings,omitempty"`
	Roles                []string        `json:"roles"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:                   user.ID,
		Username:             user.Username,
		Email:                user.Email,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Avatar:               user.Avatar,
		Bio:                  user.Bio,
		PreferredCurrency:    user.PreferredCurrency,
		Language:             user.Language,
		Timezone:             user.Timezone,
		EmailVerified:        user.EmailVerified,
		TwoFactorEnabled:     user.TwoFactorEnabled,
		LastLoginAt:          user.LastLoginAt,
		Banned:               user.Banned,
		BanReason:            user.BanReason,
		NotificationSettings: json.RawMessage(user.NotificationSettings),
		Roles:                user.RoleValues(),
		CreatedAt:            user.CreatedAt,
		UpdatedAt:            user.UpdatedAt,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}
