// Package access decides which pages the current session may open, using a
// casbin enforcer built from the configured access rules.
package access

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/config"
)

// every logged in role inherits the anonymous pages
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

func subject(role string) string {
	if role == "" {
		role = "none"
	}
	return "role_" + role
}

// Guard checks page access for the session held in a store
type Guard struct {
	enforcer   *casbin.Enforcer
	store      domain.SessionStore
	loginRoute func(domain.Role) string
}

// NewGuard loads rules into an in-memory enforcer. loginRoute maps a role to
// the page an anonymous visitor is sent to.
func NewGuard(rules []config.AccessRule, store domain.SessionStore, loginRoute func(domain.Role) string) (*Guard, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	for _, r := range rules {
		if err := r.Check(); err != nil {
			return nil, fmt.Errorf("invalid access rule: %w", err)
		}
		if _, err := e.AddPolicy(subject(r.Role), r.Path, "^("+r.Action+")$"); err != nil {
			return nil, fmt.Errorf("failed to add policy for %s %s: %w", r.Role, r.Path, err)
		}
	}
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleExecutive, domain.RoleStudent} {
		if _, err := e.AddRoleForUser(subject(string(role)), subject("")); err != nil {
			return nil, fmt.Errorf("failed to add role inheritance for %s: %w", role, err)
		}
	}

	return &Guard{enforcer: e, store: store, loginRoute: loginRoute}, nil
}

// Allowed reports whether role may perform action on path
func (g *Guard) Allowed(role domain.Role, path, action string) (bool, error) {
	ok, err := g.enforcer.Enforce(subject(string(role)), path, action)
	if err != nil {
		return false, fmt.Errorf("failed to enforce policy: %w", err)
	}
	return ok, nil
}

// Check decides whether the current session may open path. An anonymous
// visitor gets domain.ErrNotAuthenticated and the login page to go to; a
// logged in user without the permission gets domain.ErrForbidden.
func (g *Guard) Check(path, action string) (redirect string, err error) {
	role := g.store.Role()
	ok, err := g.Allowed(role, path, action)
	if err != nil {
		return "", err
	}
	if ok {
		return "", nil
	}
	if role == domain.RoleNone {
		return g.loginRoute(areaRole(path)), domain.ErrNotAuthenticated
	}
	return "", fmt.Errorf("%w: %s cannot %s %s", domain.ErrForbidden, role, action, path)
}

// areaRole guesses whose login page protects path
func areaRole(path string) domain.Role {
	if path == "/student" || strings.HasPrefix(path, "/student/") {
		return domain.RoleStudent
	}
	return domain.RoleAdmin
}
