package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/orris-inc/tracker/internal/application/user/dto"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/errors"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID uint, username string, ttl time.Duration) (string, time.Time, error)
}

type LoginCommand struct {
	Username string
	Password string
}

type LoginResult struct {
	User        *dto.UserDTO
	AccessToken string
	ExpiresAt   time.Time
}

type LoginUseCase struct {
	users  user.Repository
	hasher user.PasswordHasher
	tokens TokenIssuer
	logger logger.Interface
}

func NewLoginUseCase(users user.Repository, hasher user.PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	uc.logger.Infow("executing login use case", "username", cmd.Username)

	u, err := uc.users.GetByUsername(ctx, cmd.Username)
	if err != nil {
		uc.logger.Errorw("failed to load user", "username", cmd.Username, "error", err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil || !u.IsActive() {
		uc.logger.Warnw("login rejected", "username", cmd.Username)
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}
	if err := u.VerifyPassword(cmd.Password, uc.hasher); err != nil {
		uc.logger.Warnw("login rejected", "username", cmd.Username)
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}

	token, exp, err := uc.tokens.Generate(u.ID(), u.Username(), 0)
	if err != nil {
		uc.logger.Errorw("failed to sign token", "user_id", u.ID(), "error", err)
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", u.ID())
	return &LoginResult{User: dto.ToUserDTO(u), AccessToken: token, ExpiresAt: exp}, nil
}
