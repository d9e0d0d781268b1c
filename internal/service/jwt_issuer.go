package service

import (
	"coinfolio/internal/entity"
	"coinfolio/internal/utils"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueToken(user entity.User) (string, error) {
	signed, _, err := j.Manager.Issue(user.ID, user.Email, user.Username, user.RoleValues())
	return signed, err
}
