package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	User "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

type UserRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewUserRepository(db *bun.DB, logger logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: &logger,
	}
}

// RegisterAccount creates user then account in one transaction. A partial
// unique index on live usernames/emails turns duplicates into Conflict.
func (r *UserRepository) RegisterAccount(ctx context.Context, user *User.User, account *User.Account) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(user).Returning("*").Exec(ctx); err != nil {
			return apperrors.FromPg("userRepo.RegisterAccount.InsertUser", err)
		}

		account.UserID = user.ID
		if _, err := tx.NewInsert().Model(account).Returning("*").Exec(ctx); err != nil {
			return apperrors.FromPg("userRepo.RegisterAccount.InsertAccount", err)
		}
		return nil
	})
	return apperrors.FromPg("userRepo.RegisterAccount", err)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User.User, error) {
	user := new(User.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.FromPg("userRepo.GetUserByID.Scan", err)
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*User.User, error) {
	user := new(User.User)
	err := r.db.NewSelect().Model(user).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.FromPg("userRepo.GetUserByEmail.Scan", err)
	}
	return user, nil
}

func (r *UserRepository) GetAccountByUsername(ctx context.Context, username string) (*User.Account, error) {
	account := new(User.Account)
	err := r.db.NewSelect().
		Model(account).
		Relation("User").
		Where("account.username = ?", username).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.FromPg("userRepo.GetAccountByUsername.Scan", err)
	}
	return account, nil
}

func (r *UserRepository) FindUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*User.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*User.User
	err := r.db.NewSelect().Model(&users).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, apperrors.FromPg("userRepo.FindUsersByIDs.Scan", err)
	}
	return users, nil
}
