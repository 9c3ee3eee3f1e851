package permission

import (
	"fmt"
	"strconv"
	"strings"
)

type SubjectKind string

const (
	KindUser  SubjectKind = "user"
	KindGroup SubjectKind = "group"
	KindTeam  SubjectKind = "team"
)

// Subject is who a permission is granted to. User 0 is the anonymous visitor.
type Subject struct {
	Kind SubjectKind
	ID   uint
}

func User(id uint) Subject  { return Subject{Kind: KindUser, ID: id} }
func Group(id uint) Subject { return Subject{Kind: KindGroup, ID: id} }
func Team(id uint) Subject  { return Subject{Kind: KindTeam, ID: id} }

func (s Subject) String() string {
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}

func ParseSubject(s string) (Subject, error) {
	kind, raw, ok := strings.Cut(s, ":")
	if !ok {
		return Subject{}, fmt.Errorf("invalid subject: %s", s)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return Subject{}, fmt.Errorf("invalid subject id: %s", s)
	}
	switch SubjectKind(kind) {
	case KindUser, KindGroup, KindTeam:
		return Subject{Kind: SubjectKind(kind), ID: uint(id)}, nil
	}
	return Subject{}, fmt.Errorf("invalid subject kind: %s", kind)
}

// CanContain reports whether member may be linked into container: users join
// groups and teams, groups join teams.
func CanContain(container, member Subject) bool {
	switch container.Kind {
	case KindGroup:
		return member.Kind == KindUser
	case KindTeam:
		return member.Kind == KindUser || member.Kind == KindGroup
	}
	return false
}
