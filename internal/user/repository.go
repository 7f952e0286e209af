package user

import (
	"context"

	"github.com/google/uuid"

	User "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
)

type UserRepository interface {
	// Atomically create user + account; the generated ids and timestamps
	// are populated on the passed models.
	RegisterAccount(ctx context.Context, user *User.User, account *User.Account) error

	GetUserByID(ctx context.Context, id uuid.UUID) (*User.User, error)
	GetUserByEmail(ctx context.Context, email string) (*User.User, error)
	GetAccountByUsername(ctx context.Context, username string) (*User.Account, error)
	FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*User.User, error)
}
