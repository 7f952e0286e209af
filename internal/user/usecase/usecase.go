package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/sang6174/ocean-chat-server-sub000/config"
	"github.com/sang6174/ocean-chat-server-sub000/internal/user"
	models "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/token"
)

type UserUsecase struct {
	repo   user.UserRepository
	logger logger.Logger
	config config.Config
}

func NewUserUsecase(repo user.UserRepository, logger logger.Logger, config config.Config) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger, config: config}
}

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func (uc *UserUsecase) Register(ctx context.Context, cmd user.RegisterCommand) (*user.UserDTO, error) {
	if !usernameRegex.MatchString(cmd.Username) {
		return nil, errors.ErrInvalidUsername
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, errors.ErrInvalidDisplayName
	}
	if !emailRegex.MatchString(cmd.Email) {
		return nil, errors.ErrInvalidEmail
	}
	if cmd.CredentialHash == "" {
		return nil, errors.InvalidInput("credential hash is required")
	}

	// Pre-checks give friendlier errors; the partial unique indexes remain
	// the authority under concurrent registration.
	if _, err := uc.repo.GetAccountByUsername(ctx, cmd.Username); err == nil {
		return nil, errors.ErrUsernameTaken
	} else if errors.CodeOf(err) != errors.CodeNotFound {
		uc.logger.Error("database error checking username", "err", err)
		return nil, err
	}
	if _, err := uc.repo.GetUserByEmail(ctx, cmd.Email); err == nil {
		return nil, errors.ErrEmailTaken
	} else if errors.CodeOf(err) != errors.CodeNotFound {
		uc.logger.Error("database error checking email", "err", err)
		return nil, err
	}

	u := &models.User{
		Name:  cmd.Name,
		Email: cmd.Email,
	}
	account := &models.Account{
		Username:       cmd.Username,
		CredentialHash: cmd.CredentialHash,
	}
	if err := uc.repo.RegisterAccount(ctx, u, account); err != nil {
		uc.logger.Errorf("error while saving user in db: %v", err)
		return nil, err
	}

	return &user.UserDTO{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Username: account.Username,
	}, nil
}

func (uc *UserUsecase) Login(ctx context.Context, cmd user.LoginCommand) (*user.SessionDTO, error) {
	account, err := uc.repo.GetAccountByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeNotFound {
			// same answer as a bad password, no username probing
			return nil, errors.ErrBadCredentials
		}
		return nil, err
	}

	if cmd.CheckCredential == nil || !cmd.CheckCredential(account.CredentialHash) {
		return nil, errors.ErrBadCredentials
	}

	signed, err := token.Issue(uc.config.JWT, account.UserID)
	if err != nil {
		uc.logger.Error("failed to issue session token", "err", err)
		return nil, errors.Internal("error while creating session token")
	}

	dto := &user.UserDTO{
		ID:       account.UserID,
		Username: account.Username,
	}
	if account.User != nil {
		dto.Name = account.User.Name
		dto.Email = account.User.Email
	}
	return &user.SessionDTO{
		Token:     signed,
		ExpiresIn: uc.config.JWT.ExpiredIn,
		User:      dto,
	}, nil
}
