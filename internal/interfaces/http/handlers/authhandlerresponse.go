package handlers

import (
	"time"

	userdto "github.com/orris-inc/tracker/internal/application/user/dto"
)

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	User        *userdto.UserDTO `json:"user"`
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
}
