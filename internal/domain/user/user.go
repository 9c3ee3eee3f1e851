package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9@.+_-]{1,150}$`)

// User is an account. Inactive users keep their history but cannot authenticate
// nor receive notifications.
type User struct {
	id           uint
	username     string
	firstName    string
	lastName     string
	email        *vo.Email
	passwordHash *string
	active       bool
	superuser    bool
	notification vo.Preference
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username, firstName, lastName string, email *vo.Email) (*User, error) {
	if !usernameRe.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	now := time.Now()
	return &User{
		username:     username,
		firstName:    strings.TrimSpace(firstName),
		lastName:     strings.TrimSpace(lastName),
		email:        email,
		active:       true,
		notification: vo.PreferenceMine,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// UserData carries the persisted state of a user.
type UserData struct {
	ID           uint
	Username     string
	FirstName    string
	LastName     string
	Email        *vo.Email
	PasswordHash *string
	Active       bool
	Superuser    bool
	Notification vo.Preference
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ReconstructUser(d UserData) (*User, error) {
	if d.ID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !d.Notification.IsValid() {
		return nil, fmt.Errorf("invalid notification preference %q for user %d", d.Notification, d.ID)
	}
	return &User{
		id:           d.ID,
		username:     d.Username,
		firstName:    d.FirstName,
		lastName:     d.LastName,
		email:        d.Email,
		passwordHash: d.PasswordHash,
		active:       d.Active,
		superuser:    d.Superuser,
		notification: d.Notification,
		createdAt:    d.CreatedAt,
		updatedAt:    d.UpdatedAt,
	}, nil
}

func (u *User) ID() uint                    { return u.id }
func (u *User) Username() string            { return u.username }
func (u *User) FirstName() string           { return u.firstName }
func (u *User) LastName() string            { return u.lastName }
func (u *User) Email() *vo.Email            { return u.email }
func (u *User) PasswordHash() *string       { return u.passwordHash }
func (u *User) IsActive() bool              { return u.active }
func (u *User) IsSuperuser() bool           { return u.superuser }
func (u *User) Notification() vo.Preference { return u.notification }
func (u *User) CreatedAt() time.Time        { return u.createdAt }
func (u *User) UpdatedAt() time.Time        { return u.updatedAt }

// DisplayName is the full name, or the username when no name is set.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.firstName + " " + u.lastName)
	if full == "" {
		return u.username
	}
	return full
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// CanSubscribe reports whether the user may join a subscriber set.
func (u *User) CanSubscribe() bool {
	return u.email != nil && u.notification != vo.PreferenceNever
}

// WantsNotification reports whether a notification about an action of actorID
// should be emailed to this user.
func (u *User) WantsNotification(actorID uint) bool {
	if !u.active || u.email == nil {
		return false
	}
	switch u.notification {
	case vo.PreferenceAlways:
		return true
	case vo.PreferenceMine:
		return actorID != u.id
	default:
		return false
	}
}

// UpdateProfile changes the fields a user may edit on their own account.
func (u *User) UpdateProfile(firstName, lastName string, email *vo.Email, notification vo.Preference) (bool, error) {
	if !notification.IsValid() {
		return false, fmt.Errorf("invalid notification preference: %s", notification)
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	changed := u.firstName != firstName || u.lastName != lastName ||
		!u.email.Equals(email) || u.notification != notification
	if !changed {
		return false, nil
	}
	u.firstName, u.lastName, u.email, u.notification = firstName, lastName, email, notification
	u.updatedAt = time.Now()
	return true, nil
}

// Rename changes the username.
func (u *User) Rename(username string) (bool, error) {
	if !usernameRe.MatchString(username) {
		return false, ErrInvalidUsername
	}
	if username == u.username {
		return false, nil
	}
	u.username = username
	u.updatedAt = time.Now()
	return true, nil
}

// SetSuperuser grants or removes the bypass of every permission check.
func (u *User) SetSuperuser(superuser bool) bool {
	if u.superuser == superuser {
		return false
	}
	u.superuser = superuser
	u.updatedAt = time.Now()
	return true
}

// Activate reports false when the user is already active.
func (u *User) Activate() bool {
	if u.active {
		return false
	}
	u.active = true
	u.updatedAt = time.Now()
	return true
}

// Disable reports false when the user is already inactive.
func (u *User) Disable() bool {
	if !u.active {
		return false
	}
	u.active = false
	u.updatedAt = time.Now()
	return true
}
