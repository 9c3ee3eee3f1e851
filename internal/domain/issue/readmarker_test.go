package issue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisit_RepeatedVisitsReturnSameLastRead(t *testing.T) {
	now := time.Now()

	m, lastRead, advanced := Visit(nil, 1, 2, 3, 10, now)
	assert.Nil(t, lastRead)
	assert.True(t, advanced)
	assert.Equal(t, uint(10), m.LastEventID)
	assert.False(t, m.Unread(10))

	m, lastRead, advanced = Visit(m, 1, 2, 3, 10, now)
	assert.Nil(t, lastRead)
	assert.False(t, advanced)
	assert.Equal(t, uint(10), m.LastEventID)

	m, lastRead, advanced = Visit(m, 1, 2, 3, 14, now)
	require.NotNil(t, lastRead)
	assert.Equal(t, uint(10), *lastRead)
	assert.True(t, advanced)
	assert.True(t, m.Unread(15))

	_, again, _ := Visit(m, 1, 2, 3, 14, now)
	require.NotNil(t, again)
	assert.Equal(t, uint(10), *again)
}

func TestVisit_EventsDeletedBehindMarker(t *testing.T) {
	m := &ReadMarker{UserID: 1, ProjectID: 2, IssueID: 3, LastEventID: 20}
	next, lastRead, advanced := Visit(m, 1, 2, 3, 12, time.Now())
	assert.False(t, advanced)
	assert.Nil(t, lastRead)
	assert.Equal(t, uint(20), next.LastEventID)
}
