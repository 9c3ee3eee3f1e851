package setting

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultItemsPerPage = 25
	MaxItemsPerPage     = 100
)

var ErrItemsPerPageRange = errors.New("items per page must be between 1 and 100")

// Settings is the single row of site-wide preferences.
type Settings struct {
	itemsPerPage int
	updatedAt    time.Time
}

func Default() *Settings {
	return &Settings{itemsPerPage: DefaultItemsPerPage}
}

func Reconstruct(itemsPerPage int, updatedAt time.Time) *Settings {
	if itemsPerPage < 1 || itemsPerPage > MaxItemsPerPage {
		itemsPerPage = DefaultItemsPerPage
	}
	return &Settings{itemsPerPage: itemsPerPage, updatedAt: updatedAt}
}

func (s *Settings) ItemsPerPage() int    { return s.itemsPerPage }
func (s *Settings) UpdatedAt() time.Time { return s.updatedAt }

func (s *Settings) SetItemsPerPage(n int) (bool, error) {
	if n < 1 || n > MaxItemsPerPage {
		return false, ErrItemsPerPageRange
	}
	if n == s.itemsPerPage {
		return false, nil
	}
	s.itemsPerPage = n
	s.updatedAt = time.Now()
	return true, nil
}

// Repository loads and stores the settings row. Get returns defaults when the
// row does not exist yet.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
