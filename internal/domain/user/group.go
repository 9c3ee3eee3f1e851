package user

import (
	"fmt"
	"strings"
)

// Group is a named set of users. Permissions granted to a group apply to every
// member.
type Group struct {
	id   uint
	name string
}

func NewGroup(name string) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Group{name: name}, nil
}

func ReconstructGroup(id uint, name string) *Group {
	return &Group{id: id, name: name}
}

func (g *Group) ID() uint     { return g.id }
func (g *Group) Name() string { return g.name }

func (g *Group) SetID(id uint) error {
	if g.id != 0 {
		return fmt.Errorf("group ID is already set")
	}
	g.id = id
	return nil
}

func (g *Group) Rename(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	if name == g.name {
		return false, nil
	}
	g.name = name
	return true, nil
}

// Team contains users and groups. Permissions granted to a team apply to its
// users and to the members of its groups.
type Team struct {
	id   uint
	name string
}

func NewTeam(name string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Team{name: name}, nil
}

func ReconstructTeam(id uint, name string) *Team {
	return &Team{id: id, name: name}
}

func (t *Team) ID() uint     { return t.id }
func (t *Team) Name() string { return t.name }

func (t *Team) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("team ID is already set")
	}
	t.id = id
	return nil
}

func (t *Team) Rename(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	if name == t.name {
		return false, nil
	}
	t.name = name
	return true, nil
}
