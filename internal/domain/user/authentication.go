package user

import (
	"fmt"
	"time"

	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

func (u *User) SetPassword(password *vo.Password, hasher PasswordHasher) error {
	if password == nil {
		return fmt.Errorf("password cannot be nil")
	}

	hash, err := hasher.Hash(password.String())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.passwordHash = &hash
	u.updatedAt = time.Now()
	return nil
}

func (u *User) VerifyPassword(plain string, hasher PasswordHasher) error {
	if u.passwordHash == nil {
		return ErrPasswordNotSet
	}
	if err := hasher.Verify(plain, *u.passwordHash); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

func (u *User) HasPassword() bool {
	return u.passwordHash != nil && *u.passwordHash != ""
}
