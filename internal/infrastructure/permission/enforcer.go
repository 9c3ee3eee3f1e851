package permission

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/orris-inc/tracker/internal/domain/permission"
	"github.com/orris-inc/tracker/internal/domain/user"
	"github.com/orris-inc/tracker/internal/shared/logger"
)

// modelConf grants act on obj to sub. Role links chain users into groups and
// teams and groups into teams, so a team grant reaches the users of its groups.
// The "*" object stands for every project and for global permissions.
const modelConf = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && r.act == p.act
`

const (
	allObjects    = "*"
	projectPrefix = "project:"
)

// UserLookup resolves the account flags that short-circuit a check.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

var _ permission.Manager = (*Enforcer)(nil)

// Enforcer is the casbin-backed permission oracle. Policies persist through the
// gorm adapter (table casbin_rule) and are saved one by one as they change.
type Enforcer struct {
	enforcer *casbin.Enforcer
	users    UserLookup
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, users UserLookup, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	return &Enforcer{
		enforcer: enforcer,
		users:    users,
		logger:   log.With("component", "permission.enforcer"),
	}, nil
}

func objectFor(projectID *uint) string {
	if projectID == nil {
		return allObjects
	}
	return projectPrefix + strconv.FormatUint(uint64(*projectID), 10)
}

func (e *Enforcer) HasPerm(ctx context.Context, userID uint, perm permission.Perm, projectID *uint) (bool, error) {
	if userID != 0 {
		u, err := e.users.GetByID(ctx, userID)
		if err != nil {
			return false, fmt.Errorf("failed to load user for permission check: %w", err)
		}
		if u == nil || !u.IsActive() {
			return false, nil
		}
		if u.IsSuperuser() {
			return true, nil
		}
	}

	sub := permission.User(userID).String()
	obj := objectFor(projectID)

	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforce(sub, obj, perm)
	if err != nil || allowed || userID == 0 {
		return allowed, err
	}

	// Anonymous grants are public, so every logged-in user holds them too.
	return e.enforce(permission.User(0).String(), obj, perm)
}

func (e *Enforcer) enforce(sub, obj string, perm permission.Perm) (bool, error) {
	allowed, err := e.enforcer.Enforce(sub, obj, string(perm))
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "subject", sub, "object", obj, "perm", perm)
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}

func validateScope(perm permission.Perm, projectID *uint) error {
	if perm.IsGlobal() && projectID != nil {
		return fmt.Errorf("%s is a global permission", perm)
	}
	if !perm.IsGlobal() && !perm.IsProjectScoped() {
		return fmt.Errorf("unknown permission: %s", perm)
	}
	return nil
}

func (e *Enforcer) Grant(ctx context.Context, subject permission.Subject, perm permission.Perm, projectID *uint) (bool, error) {
	if err := validateScope(perm, projectID); err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	added, err := e.enforcer.AddPolicy(subject.String(), objectFor(projectID), string(perm))
	if err != nil {
		e.logger.Errorw("failed to add policy", "error", err, "subject", subject.String(), "perm", perm)
		return false, fmt.Errorf("failed to add policy: %w", err)
	}
	return added, nil
}

func (e *Enforcer) Revoke(ctx context.Context, subject permission.Subject, perm permission.Perm, projectID *uint) (bool, error) {
	if err := validateScope(perm, projectID); err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.enforcer.RemovePolicy(subject.String(), objectFor(projectID), string(perm))
	if err != nil {
		e.logger.Errorw("failed to remove policy", "error", err, "subject", subject.String(), "perm", perm)
		return false, fmt.Errorf("failed to remove policy: %w", err)
	}
	return removed, nil
}

// ListGrants returns the grants stored on one project together with the project
// permissions granted on every project. A nil projectID lists global grants and
// the project permissions granted on every project.
func (e *Enforcer) ListGrants(ctx context.Context, projectID *uint) ([]permission.Grant, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	wildcard, err := e.enforcer.GetFilteredPolicy(1, allObjects)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	var rules [][]string
	if projectID != nil {
		rules, err = e.enforcer.GetFilteredPolicy(1, objectFor(projectID))
		if err != nil {
			return nil, fmt.Errorf("failed to list policies: %w", err)
		}
	}

	grants := make([]permission.Grant, 0, len(rules)+len(wildcard))
	for _, rule := range rules {
		g, ok := e.toGrant(rule)
		if ok && g.Perm.IsProjectScoped() {
			g.ProjectID = projectID
			grants = append(grants, g)
		}
	}
	for _, rule := range wildcard {
		g, ok := e.toGrant(rule)
		if !ok {
			continue
		}
		switch {
		case g.Perm.IsProjectScoped():
			g.All = true
			grants = append(grants, g)
		case projectID == nil:
			grants = append(grants, g)
		}
	}
	return grants, nil
}

func (e *Enforcer) toGrant(rule []string) (permission.Grant, bool) {
	if len(rule) < 3 {
		return permission.Grant{}, false
	}
	subject, err := permission.ParseSubject(rule[0])
	if err != nil {
		e.logger.Warnw("skipping policy with invalid subject", "rule", strings.Join(rule, ","))
		return permission.Grant{}, false
	}
	perm, err := permission.ParsePerm(rule[2])
	if err != nil {
		e.logger.Warnw("skipping policy with unknown permission", "rule", strings.Join(rule, ","))
		return permission.Grant{}, false
	}
	return permission.Grant{Subject: subject, Perm: perm}, true
}

func (e *Enforcer) AddMembership(ctx context.Context, member, container permission.Subject) (bool, error) {
	if !permission.CanContain(container, member) {
		return false, fmt.Errorf("%s can not contain %s", container, member)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	added, err := e.enforcer.AddGroupingPolicy(member.String(), container.String())
	if err != nil {
		e.logger.Errorw("failed to add role link", "error", err, "member", member.String(), "container", container.String())
		return false, fmt.Errorf("failed to add role link: %w", err)
	}
	return added, nil
}

func (e *Enforcer) RemoveMembership(ctx context.Context, member, container permission.Subject) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.enforcer.RemoveGroupingPolicy(member.String(), container.String())
	if err != nil {
		e.logger.Errorw("failed to remove role link", "error", err, "member", member.String(), "container", container.String())
		return false, fmt.Errorf("failed to remove role link: %w", err)
	}
	return removed, nil
}

// RemoveSubject drops every grant held by subject and every role link it takes
// part in, on either side.
func (e *Enforcer) RemoveSubject(ctx context.Context, subject permission.Subject) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := subject.String()
	if _, err := e.enforcer.RemoveFilteredPolicy(0, sub); err != nil {
		return fmt.Errorf("failed to remove policies of %s: %w", sub, err)
	}
	if _, err := e.enforcer.RemoveFilteredGroupingPolicy(0, sub); err != nil {
		return fmt.Errorf("failed to remove role links of %s: %w", sub, err)
	}
	if _, err := e.enforcer.RemoveFilteredGroupingPolicy(1, sub); err != nil {
		return fmt.Errorf("failed to remove role links to %s: %w", sub, err)
	}
	return nil
}

func (e *Enforcer) RemoveProject(ctx context.Context, projectID uint) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemoveFilteredPolicy(1, objectFor(&projectID)); err != nil {
		return fmt.Errorf("failed to remove policies of project %d: %w", projectID, err)
	}
	return nil
}

func (e *Enforcer) LoadPolicy() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to reload policy: %w", err)
	}

	e.logger.Info("policy reloaded successfully")
	return nil
}
