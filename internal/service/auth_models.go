package service

import "encoding/json"

type RegisterInput struct {
	Username string
	Email    string
	Password string

	FirstName            *string
	LastName             *string
	Avatar               *string
	Bio                  *string
	PreferredCurrency    string
	Language             string
	Timezone             string
	NotificationSettings json.RawMessage
}

type LoginInput struct {
	Login    string
	Password string
}

type TokenResult struct {
	Token string
}

type UpdateUserInput struct {
	Username             *string
	Email                *string
	FirstName            *string
	LastName             *string
	Avatar               *string
	Bio                  *string
	PreferredCurrency    *string
	Language             *string
	Timezone             *string
	NotificationSettings json.RawMessage
}
