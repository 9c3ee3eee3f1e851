package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestMapSliceErr(t *testing.T) {
	out, err := MapSliceErr([]string{"1", "2"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)

	_, err = MapSliceErr([]string{"1", "x"}, func(s string) (int, error) {
		if s == "x" {
			return 0, errors.New("bad")
		}
		return strconv.Atoi(s)
	})
	assert.Error(t, err)
}
