package user

import (
	"context"
)

type UserUsecase interface {
	// Register a new user with display name + email + username/credential
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)

	// Login verifies the credential and issues a signed session token
	Login(ctx context.Context, cmd LoginCommand) (*SessionDTO, error)
}
