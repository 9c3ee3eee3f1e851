package milestone

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyName     = errors.New("milestone name is required")
	ErrAlreadyClosed = errors.New("milestone is already closed")
	ErrAlreadyOpen   = errors.New("milestone is already open")
)

// Milestone groups issues of a project. An issue holds at most one milestone.
// Deleted milestones stay resolvable by id for history.
type Milestone struct {
	id        uint
	projectID uint
	name      string
	dueDate   *time.Time
	closed    bool
	deleted   bool
}

func NewMilestone(projectID uint, name string, dueDate *time.Time) (*Milestone, error) {
	if projectID == 0 {
		return nil, fmt.Errorf("project ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Milestone{projectID: projectID, name: name, dueDate: dueDate}, nil
}

func ReconstructMilestone(id, projectID uint, name string, dueDate *time.Time, closed, deleted bool) *Milestone {
	return &Milestone{
		id:        id,
		projectID: projectID,
		name:      name,
		dueDate:   dueDate,
		closed:    closed,
		deleted:   deleted,
	}
}

func (m *Milestone) ID() uint            { return m.id }
func (m *Milestone) ProjectID() uint     { return m.projectID }
func (m *Milestone) Name() string        { return m.name }
func (m *Milestone) DueDate() *time.Time { return m.dueDate }
func (m *Milestone) IsClosed() bool      { return m.closed }
func (m *Milestone) IsDeleted() bool     { return m.deleted }

func (m *Milestone) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("milestone ID is already set")
	}
	m.id = id
	return nil
}

// Edit changes name and due date. renamed carries the previous name when the name
// changed, so callers can log the rename on attached issues.
func (m *Milestone) Edit(name string, dueDate *time.Time) (changed bool, oldName string, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, "", ErrEmptyName
	}
	if name != m.name {
		oldName = m.name
		m.name = name
		changed = true
	}
	if !sameDate(m.dueDate, dueDate) {
		m.dueDate = dueDate
		changed = true
	}
	return changed, oldName, nil
}

func (m *Milestone) Close() error {
	if m.closed {
		return ErrAlreadyClosed
	}
	m.closed = true
	return nil
}

func (m *Milestone) Reopen() error {
	if !m.closed {
		return ErrAlreadyOpen
	}
	m.closed = false
	return nil
}

// MarkDeleted soft-deletes the milestone.
func (m *Milestone) MarkDeleted() {
	m.deleted = true
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
