package dto

import (
	"time"

	"github.com/orris-inc/tracker/internal/domain/setting"
)

// SettingsDTO is the site-wide preferences form.
type SettingsDTO struct {
	ItemsPerPage int       `json:"items_per_page"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToSettingsDTO(s *setting.Settings) *SettingsDTO {
	if s == nil {
		return nil
	}
	return &SettingsDTO{ItemsPerPage: s.ItemsPerPage(), UpdatedAt: s.UpdatedAt()}
}
