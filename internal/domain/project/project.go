package project

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

var (
	ErrReservedName      = errors.New("this URL is reserved and can not be used")
	ErrInvalidName       = errors.New("name may only contain lowercase letters, digits, '-' and '_'")
	ErrEmptyDisplayName  = errors.New("display name is required")
	ErrAlreadyArchived   = errors.New("project is already archived")
	ErrAlreadyUnarchived = errors.New("project is not archived")
)

var nameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// reservedNames collide with top-level routes.
var reservedNames = []string{
	"admin", "settings", "login", "logout", "api", "static", "projects",
	"users", "groups", "teams", "markdown", "ws",
}

var folder = cases.Fold()

// Project owns issues, labels and milestones. Its name is the URL key and never
// changes; the display name is unique regardless of case.
type Project struct {
	id          uint
	name        string
	displayName string
	archived    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProject(name, displayName string) (*Project, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrEmptyDisplayName
	}

	now := time.Now()
	return &Project{
		name:        name,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructProject(id uint, name, displayName string, archived bool, createdAt, updatedAt time.Time) (*Project, error) {
	if id == 0 {
		return nil, fmt.Errorf("project ID cannot be zero")
	}
	return &Project{
		id:          id,
		name:        name,
		displayName: displayName,
		archived:    archived,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

// ValidateName checks the URL form of a project name and the reserved list.
func ValidateName(name string) error {
	if slices.Contains(reservedNames, name) {
		return ErrReservedName
	}
	if !nameRe.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// FoldDisplayName returns the case-folded key used for display name uniqueness.
func FoldDisplayName(displayName string) string {
	return folder.String(strings.TrimSpace(displayName))
}

func (p *Project) ID() uint             { return p.id }
func (p *Project) Name() string         { return p.name }
func (p *Project) DisplayName() string  { return p.displayName }
func (p *Project) IsArchived() bool     { return p.archived }
func (p *Project) CreatedAt() time.Time { return p.createdAt }
func (p *Project) UpdatedAt() time.Time { return p.updatedAt }

func (p *Project) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("project ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("project ID cannot be zero")
	}
	p.id = id
	return nil
}

// Rename changes the display name; it reports false when nothing changed.
func (p *Project) Rename(displayName string) (bool, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return false, ErrEmptyDisplayName
	}
	if displayName == p.displayName {
		return false, nil
	}
	p.displayName = displayName
	p.updatedAt = time.Now()
	return true, nil
}

func (p *Project) Archive() error {
	if p.archived {
		return ErrAlreadyArchived
	}
	p.archived = true
	p.updatedAt = time.Now()
	return nil
}

func (p *Project) Unarchive() error {
	if !p.archived {
		return ErrAlreadyUnarchived
	}
	p.archived = false
	p.updatedAt = time.Now()
	return nil
}
