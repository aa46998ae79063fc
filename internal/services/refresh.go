package services

import (
	"context"
	"fmt"

	"github.com/you/tutorportal/domain"
)

// Refresh endpoints
const (
	GeneralRefreshPath   = "/auth/refresh"
	ExecutiveRefreshPath = "/executive/refresh"
	StudentRefreshPath   = "/students/refresh"
)

// EndpointForRole picks the refresh endpoint from the role alone. An unset role uses the general endpoint.
func EndpointForRole(role domain.Role) string {
	switch role {
	case domain.RoleExecutive:
		return ExecutiveRefreshPath
	case domain.RoleStudent:
		return StudentRefreshPath
	default:
		return GeneralRefreshPath
	}
}

// endpointRole is the role implied by a refresh endpoint, used when the response carries none
func endpointRole(path string) domain.Role {
	switch path {
	case ExecutiveRefreshPath:
		return domain.RoleExecutive
	case StudentRefreshPath:
		return domain.RoleStudent
	default:
		return domain.RoleAdmin
	}
}

// RefreshDispatcher implements domain.Refresher. It must use a client that does
// not itself refresh on 401.
type RefreshDispatcher struct {
	api   API
	store domain.SessionStore
}

var _ domain.Refresher = (*RefreshDispatcher)(nil)

func NewRefreshDispatcher(api API, store domain.SessionStore) *RefreshDispatcher {
	return &RefreshDispatcher{api: api, store: store}
}

// RefreshByRole refreshes with the endpoint of the current role and logs the new token in.
// On failure the session is left untouched.
func (d *RefreshDispatcher) RefreshByRole(ctx context.Context) (*domain.AuthResult, error) {
	return d.refresh(ctx, EndpointForRole(d.store.Role()))
}

// RefreshStudent always uses the student endpoint
func (d *RefreshDispatcher) RefreshStudent(ctx context.Context) (*domain.AuthResult, error) {
	return d.refresh(ctx, StudentRefreshPath)
}

func (d *RefreshDispatcher) refresh(ctx context.Context, path string) (*domain.AuthResult, error) {
	var payload authPayload
	if err := d.api.Get(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
	}
	res, err := payload.result(endpointRole(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
	}
	d.store.Login(res.Token, res.Role)
	return res, nil
}
