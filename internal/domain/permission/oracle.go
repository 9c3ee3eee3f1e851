package permission

import "context"

// Oracle answers permission checks. A nil projectID asks about a global
// permission. Superusers hold every permission; inactive users hold none.
type Oracle interface {
	HasPerm(ctx context.Context, userID uint, perm Perm, projectID *uint) (bool, error)
}

// Grant is one stored permission. ProjectID is nil for global grants, and for
// project permissions granted on every project (All).
type Grant struct {
	Subject   Subject
	Perm      Perm
	ProjectID *uint
	All       bool
}

// Manager edits grants and the membership links they propagate through.
// Mutations report false when the grant or link was already in the wanted state.
type Manager interface {
	Oracle
	Grant(ctx context.Context, subject Subject, perm Perm, projectID *uint) (bool, error)
	Revoke(ctx context.Context, subject Subject, perm Perm, projectID *uint) (bool, error)
	ListGrants(ctx context.Context, projectID *uint) ([]Grant, error)
	AddMembership(ctx context.Context, member, container Subject) (bool, error)
	RemoveMembership(ctx context.Context, member, container Subject) (bool, error)
	RemoveSubject(ctx context.Context, subject Subject) error
	RemoveProject(ctx context.Context, projectID uint) error
}
