package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"API_BASE_URL", "APP_NAME", "APP_ENV", "HTTP_TIMEOUT", "OTP_COUNTDOWN", "ROLLBAR_TOKEN", "DEBUG"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, "missing.yml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 300*time.Second, cfg.OTPCountdown)
	assert.Equal(t, 6, cfg.OTPLength)
	assert.Equal(t, "/login", cfg.LoginRoute(domain.RoleAdmin))
	assert.Equal(t, "/executive/login", cfg.LoginRoute(domain.RoleExecutive))
	assert.Equal(t, "/", cfg.LoginRoute(domain.RoleStudent))
	assert.Equal(t, "/login", cfg.LoginRoute(domain.RoleNone))
	assert.NotEmpty(t, cfg.AccessRules)
}

func TestLoadFrom_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
app:
  name: Tutor Admin
api:
  base_url: https://api.example.com/api/
  timeout: 5s
otp:
  countdown: 120s
routes:
  student_login: /student/login
access:
  rules:
    - role: admin
      path: /admin/*
      action: view|manage
`)
	envPath := writeFile(t, dir, ".env", "ROLLBAR_TOKEN=abc123\n")
	t.Setenv("APP_NAME", "From Env")

	cfg, err := LoadFrom(path, envPath)
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.AppName)
	assert.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 120*time.Second, cfg.OTPCountdown)
	assert.Equal(t, "/student/login", cfg.LoginRoute(domain.RoleStudent))
	assert.Equal(t, "abc123", cfg.RollbarToken)
	require.Len(t, cfg.AccessRules, 1)
	assert.Equal(t, "admin", cfg.AccessRules[0].Role)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "bad yaml", yaml: "app: [", wantErr: "could not parse config yaml"},
		{name: "bad timeout", yaml: "api:\n  timeout: soon\n", wantErr: "invalid HTTP timeout"},
		{name: "bad countdown", yaml: "otp:\n  countdown: 10ms\n", wantErr: "invalid OTP countdown"},
		{name: "bad rule role", yaml: "access:\n  rules:\n    - role: root\n      path: /\n      action: view\n", wantErr: "unsupported role"},
		{name: "bad rule action", yaml: "access:\n  rules:\n    - role: admin\n      path: /admin\n      action: delete\n", wantErr: "unsupported action"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := writeFile(t, t.TempDir(), "config.yml", tt.yaml)
			_, err := LoadFrom(path, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefaultAccessRules_AreValid(t *testing.T) {
	for _, rule := range DefaultAccessRules() {
		assert.NoError(t, rule.Check(), rule.Path)
	}
}
