package user

import "errors"

var (
	ErrInvalidUsername  = errors.New("username may only contain letters, digits and @/./+/-/_ characters")
	ErrEmptyName        = errors.New("name is required")
	ErrCannotSubscribe  = errors.New("you need an email address and notifications enabled to subscribe")
	ErrPasswordNotSet   = errors.New("password is not set")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrSelfDeactivation = errors.New("you cannot disable your own account")
)
