package setting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_SetItemsPerPage(t *testing.T) {
	s := Default()
	assert.Equal(t, DefaultItemsPerPage, s.ItemsPerPage())

	changed, err := s.SetItemsPerPage(25)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = s.SetItemsPerPage(50)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = s.SetItemsPerPage(0)
	assert.ErrorIs(t, err, ErrItemsPerPageRange)
	_, err = s.SetItemsPerPage(101)
	assert.ErrorIs(t, err, ErrItemsPerPageRange)
}

func TestReconstruct_OutOfRangeFallsBack(t *testing.T) {
	assert.Equal(t, DefaultItemsPerPage, Reconstruct(0, time.Now()).ItemsPerPage())
	assert.Equal(t, 40, Reconstruct(40, time.Now()).ItemsPerPage())
}
