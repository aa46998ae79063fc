package e2e

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/app"
	"github.com/you/tutorportal/internal/config"
)

const (
	AdminEmail        = "admin@tutorportal.test"
	ExecutiveUsername = "ops.lead"
	ExecutivePassword = "Exec123!@#"
	StudentEmail      = "asha@student.test"
)

// TestConfig points a client at ts with the default routes and rules
func TestConfig(ts *TestServer) *config.Config {
	return &config.Config{
		AppName:      "Tutor Portal E2E",
		Env:          "test",
		APIBaseURL:   ts.BaseURL,
		HTTPTimeout:  5 * time.Second,
		OTPCountdown: 300 * time.Second,
		OTPLength:    6,
		LoginRoutes: map[domain.Role]string{
			domain.RoleAdmin:     "/login",
			domain.RoleExecutive: "/executive/login",
			domain.RoleStudent:   "/",
		},
		AccessRules: config.DefaultAccessRules(),
	}
}

// NewTestApp builds a fully wired client against ts
func NewTestApp(t *testing.T, ts *TestServer) *app.Container {
	t.Helper()
	c, err := app.Build(TestConfig(ts))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// SeedUsers registers one account per persona
func SeedUsers(ts *TestServer) {
	ts.AddAdmin(AdminEmail)
	ts.AddExecutive(ExecutiveUsername, ExecutivePassword)
}
