package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/config"
	"github.com/you/tutorportal/internal/session"
)

func loginRoutes(role domain.Role) string {
	switch role {
	case domain.RoleStudent:
		return "/"
	case domain.RoleExecutive:
		return "/executive/login"
	default:
		return "/login"
	}
}

func newTestGuard(t *testing.T) (*Guard, *session.Store) {
	t.Helper()
	store := session.NewStore()
	g, err := NewGuard(config.DefaultAccessRules(), store, loginRoutes)
	require.NoError(t, err)
	return g, store
}

func TestGuard_Allowed(t *testing.T) {
	g, _ := newTestGuard(t)

	tests := []struct {
		name     string
		role     domain.Role
		path     string
		action   string
		expected bool
	}{
		{name: "anonymous home", role: domain.RoleNone, path: "/", action: config.ActionView, expected: true},
		{name: "anonymous course detail", role: domain.RoleNone, path: "/courses/42", action: config.ActionView, expected: true},
		{name: "anonymous cannot manage courses", role: domain.RoleNone, path: "/courses/42", action: config.ActionManage, expected: false},
		{name: "anonymous back office", role: domain.RoleNone, path: "/admin", action: config.ActionView, expected: false},
		{name: "student inherits public pages", role: domain.RoleStudent, path: "/courses", action: config.ActionView, expected: true},
		{name: "student bookings", role: domain.RoleStudent, path: "/student/bookings", action: config.ActionManage, expected: true},
		{name: "student back office", role: domain.RoleStudent, path: "/admin/staffs", action: config.ActionView, expected: false},
		{name: "executive staffs", role: domain.RoleExecutive, path: "/admin/staffs", action: config.ActionManage, expected: true},
		{name: "executive views nested category", role: domain.RoleExecutive, path: "/admin/categories/7", action: config.ActionView, expected: true},
		{name: "executive cannot edit categories", role: domain.RoleExecutive, path: "/admin/categories/7", action: config.ActionManage, expected: false},
		{name: "executive logs", role: domain.RoleExecutive, path: "/admin/logs", action: config.ActionView, expected: false},
		{name: "admin deep page", role: domain.RoleAdmin, path: "/admin/app-updates/3", action: config.ActionManage, expected: true},
		{name: "admin student area", role: domain.RoleAdmin, path: "/student/profile", action: config.ActionView, expected: false},
		{name: "unknown action", role: domain.RoleAdmin, path: "/admin/logs", action: "viewer", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := g.Allowed(tt.role, tt.path, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestNewGuard_RejectsBadRule(t *testing.T) {
	_, err := NewGuard([]config.AccessRule{{Role: "tutor", Path: "/", Action: config.ActionView}}, session.NewStore(), loginRoutes)
	assert.Error(t, err)
}

func TestGuard_Check(t *testing.T) {
	g, store := newTestGuard(t)

	redirect, err := g.Check("/admin/staffs", config.ActionView)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Equal(t, "/login", redirect)

	redirect, err = g.Check("/student/bookings", config.ActionView)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Equal(t, "/", redirect)

	store.Login("tok", domain.RoleStudent)
	redirect, err = g.Check("/admin/staffs", config.ActionView)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, redirect)

	_, err = g.Check("/student/bookings", config.ActionView)
	assert.NoError(t, err)
}

func TestRouter_Navigate(t *testing.T) {
	g, store := newTestGuard(t)
	r := NewRouter(g, nil)
	var seen []string
	r.OnChange(func(route string) { seen = append(seen, route) })

	assert.ErrorIs(t, r.Navigate("/admin/categories", config.ActionView), domain.ErrNotAuthenticated)
	assert.Equal(t, "/login", r.Current())

	store.Login("tok", domain.RoleExecutive)
	require.NoError(t, r.Navigate("/admin/categories", config.ActionView))
	assert.Equal(t, "/admin/categories", r.Current())

	assert.ErrorIs(t, r.Navigate("/admin/logs", config.ActionView), domain.ErrForbidden)
	assert.Equal(t, "/admin/categories", r.Current(), "forbidden navigation stays put")

	r.Redirect("/executive/login")
	assert.Equal(t, []string{"/login", "/admin/categories", "/executive/login"}, r.History())
	assert.Equal(t, r.History(), seen)
}
