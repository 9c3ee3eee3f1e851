package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePerm(t *testing.T) {
	p, err := ParsePerm("manage_tags")
	require.NoError(t, err)
	assert.True(t, p.IsProjectScoped())
	assert.False(t, p.IsGlobal())

	p, err = ParsePerm("create_project")
	require.NoError(t, err)
	assert.True(t, p.IsGlobal())

	_, err = ParsePerm("fly")
	assert.Error(t, err)
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "team:4", Team(4).String())

	s, err := ParseSubject("group:12")
	require.NoError(t, err)
	assert.Equal(t, Group(12), s)

	for _, bad := range []string{"group", "robot:1", "user:x"} {
		_, err := ParseSubject(bad)
		assert.Error(t, err, bad)
	}
}

func TestCanContain(t *testing.T) {
	assert.True(t, CanContain(Group(1), User(1)))
	assert.False(t, CanContain(Group(1), Team(1)))
	assert.True(t, CanContain(Team(1), Group(1)))
	assert.False(t, CanContain(User(1), User(2)))
}
