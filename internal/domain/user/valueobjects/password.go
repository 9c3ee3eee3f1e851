package valueobjects

import "fmt"

const (
	minPasswordLength = 8
	// bcrypt ignores anything past 72 bytes
	maxPasswordLength = 72
)

type Password struct {
	value string
}

func NewPassword(plainPassword string) (*Password, error) {
	if len(plainPassword) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(plainPassword) > maxPasswordLength {
		return nil, fmt.Errorf("password must not exceed %d bytes", maxPasswordLength)
	}
	return &Password{value: plainPassword}, nil
}

func (p *Password) String() string {
	return p.value
}
