package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/session"
)

func TestAuthServiceImpl_AdminOTP(t *testing.T) {
	backend, api := newTestBackend(t)
	backend.on("POST /send-otp", http.StatusOK, map[string]string{"message": "OTP sent"})
	backend.on("POST /verify-otp", http.StatusOK, map[string]string{"token": "adm-token"})

	svc := NewAuthService(api, session.NewStore())

	require.NoError(t, svc.SendAdminOTP(context.Background(), "admin@tutor.io"))
	var sent map[string]string
	require.NoError(t, json.Unmarshal(backend.last(t).Body, &sent))
	assert.Equal(t, "admin@tutor.io", sent["email"])

	res, err := svc.VerifyAdminOTP(context.Background(), "admin@tutor.io", "123456")
	require.NoError(t, err)
	assert.Equal(t, &domain.AuthResult{Token: "adm-token", Role: domain.RoleAdmin}, res)
}

func TestAuthServiceImpl_ExecutiveLogin(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		response      interface{}
		expectedToken string
		expectedCode  int
	}{
		{name: "success", status: http.StatusOK, response: map[string]string{"accessToken": "exec", "role": "executive"}, expectedToken: "exec"},
		{name: "bad password", status: http.StatusBadRequest, response: map[string]string{"message": "Invalid credentials"}, expectedCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, api := newTestBackend(t)
			backend.on("POST /executive/login", tt.status, tt.response)

			res, err := NewAuthService(api, session.NewStore()).ExecutiveLogin(context.Background(), "exec1", "pw")

			if tt.expectedCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.expectedCode, domain.StatusCode(err))
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedToken, res.Token)
			assert.Equal(t, domain.RoleExecutive, res.Role)
		})
	}
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		expectErr bool
	}{
		{name: "backend accepts", status: http.StatusOK},
		{name: "backend fails, session still cleared", status: http.StatusInternalServerError, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, api := newTestBackend(t)
			backend.on("POST /auth/logout", tt.status, nil)

			store := session.NewStore()
			store.Login("tok", domain.RoleAdmin)

			err := NewAuthService(api, store).Logout(context.Background())

			assert.Equal(t, tt.expectErr, err != nil)
			assert.Equal(t, domain.Session{}, store.Snapshot())
		})
	}
}
