package user

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/tracker/internal/domain/user/valueobjects"
)

type mockPasswordHasher struct{}

func (h *mockPasswordHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *mockPasswordHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func newTestUser(t *testing.T, id uint, pref vo.Preference, withEmail bool) *User {
	t.Helper()
	var email *vo.Email
	if withEmail {
		var err error
		email, err = vo.NewEmail("user@example.com")
		require.NoError(t, err)
	}
	u, err := ReconstructUser(UserData{
		ID:           id,
		Username:     "user",
		Email:        email,
		Active:       true,
		Notification: pref,
	})
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("alice", " Alice ", "Liddell", nil)
	require.NoError(t, err)
	assert.True(t, u.IsActive())
	assert.Equal(t, vo.PreferenceMine, u.Notification())
	assert.Equal(t, "Alice Liddell", u.DisplayName())

	_, err = NewUser("bad name", "", "", nil)
	assert.ErrorIs(t, err, ErrInvalidUsername)

	u, err = NewUser("bob", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "bob", u.DisplayName())
}

func TestUser_CanSubscribe(t *testing.T) {
	assert.True(t, newTestUser(t, 1, vo.PreferenceMine, true).CanSubscribe())
	assert.False(t, newTestUser(t, 1, vo.PreferenceNever, true).CanSubscribe())
	assert.False(t, newTestUser(t, 1, vo.PreferenceAlways, false).CanSubscribe())
}

func TestUser_WantsNotification(t *testing.T) {
	tests := []struct {
		name    string
		pref    vo.Preference
		email   bool
		actorID uint
		want    bool
	}{
		{"always own action", vo.PreferenceAlways, true, 1, true},
		{"always other action", vo.PreferenceAlways, true, 2, true},
		{"mine own action", vo.PreferenceMine, true, 1, false},
		{"mine other action", vo.PreferenceMine, true, 2, true},
		{"never", vo.PreferenceNever, true, 2, false},
		{"no email", vo.PreferenceAlways, false, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestUser(t, 1, tt.pref, tt.email)
			assert.Equal(t, tt.want, u.WantsNotification(tt.actorID))
		})
	}

	inactive := newTestUser(t, 1, vo.PreferenceAlways, true)
	require.True(t, inactive.Disable())
	assert.False(t, inactive.WantsNotification(2))
}

func TestUser_ActivateDisable(t *testing.T) {
	u := newTestUser(t, 1, vo.PreferenceMine, true)
	assert.False(t, u.Activate())
	assert.True(t, u.Disable())
	assert.False(t, u.Disable())
	assert.True(t, u.Activate())
}

func TestUser_UpdateProfile(t *testing.T) {
	u := newTestUser(t, 1, vo.PreferenceMine, true)
	email, _ := vo.NewEmail("user@example.com")

	changed, err := u.UpdateProfile("", "", email, vo.PreferenceMine)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = u.UpdateProfile("Ann", "", nil, vo.PreferenceNever)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, u.Email())

	_, err = u.UpdateProfile("Ann", "", nil, vo.Preference("x"))
	assert.Error(t, err)
}

func TestUser_Password(t *testing.T) {
	u := newTestUser(t, 1, vo.PreferenceMine, true)
	hasher := &mockPasswordHasher{}

	assert.ErrorIs(t, u.VerifyPassword("whatever", hasher), ErrPasswordNotSet)

	pw, err := vo.NewPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, u.SetPassword(pw, hasher))
	assert.True(t, u.HasPassword())
	assert.NoError(t, u.VerifyPassword("correct horse", hasher))
	assert.ErrorIs(t, u.VerifyPassword("battery staple", hasher), ErrInvalidPassword)
}

func TestGroupAndTeam_Rename(t *testing.T) {
	g, err := NewGroup("devs")
	require.NoError(t, err)
	changed, err := g.Rename("devs")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = NewTeam(" ")
	assert.ErrorIs(t, err, ErrEmptyName)

	team, err := NewTeam("core")
	require.NoError(t, err)
	changed, err = team.Rename("platform")
	require.NoError(t, err)
	assert.True(t, changed)
}
