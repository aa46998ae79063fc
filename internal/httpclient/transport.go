package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/logger"
	"github.com/you/tutorportal/internal/metrics"
)

// Client names, also used as metric labels
const (
	GeneralClient = "general"
	StudentClient = "student"
)

// TokenPolicy decides which token a transport attaches and how it refreshes
type TokenPolicy struct {
	Name string
	// Token returns the bearer token to attach, or "" for none
	Token func(s domain.Session) string
	// Refresh obtains a new token and stores it in the session
	Refresh func(ctx context.Context) (*domain.AuthResult, error)
	// LoginRole picks the login page after an unrecoverable refresh
	LoginRole func(current domain.Role) domain.Role
}

// GeneralPolicy attaches any token and refreshes through the role dispatcher
func GeneralPolicy(r domain.Refresher) TokenPolicy {
	return TokenPolicy{
		Name:      GeneralClient,
		Token:     func(s domain.Session) string { return s.Token },
		Refresh:   r.RefreshByRole,
		LoginRole: func(current domain.Role) domain.Role { return current },
	}
}

// StudentPolicy attaches the token only for student sessions and always refreshes as a student
func StudentPolicy(r domain.Refresher) TokenPolicy {
	return TokenPolicy{
		Name: StudentClient,
		Token: func(s domain.Session) string {
			if s.Role != domain.RoleStudent {
				return ""
			}
			return s.Token
		},
		Refresh:   r.RefreshStudent,
		LoginRole: func(domain.Role) domain.Role { return domain.RoleStudent },
	}
}

// DefaultRefreshTimeout bounds a shared refresh call when none is configured
const DefaultRefreshTimeout = 30 * time.Second

// AuthTransport attaches bearer tokens and recovers from a 401 with exactly one
// refresh and one replay. A refresh failure ends the session and redirects to login.
// A request whose own context ends while it waits for the refresh returns the
// context error and leaves the session alone.
type AuthTransport struct {
	base       http.RoundTripper
	store      domain.SessionStore
	policy     TokenPolicy
	redirector domain.Redirector
	loginRoute func(domain.Role) string
	log        logger.Logger
	metrics    *metrics.Transport
	timeout    time.Duration

	refreshes singleflight.Group
}

var _ http.RoundTripper = (*AuthTransport)(nil)

type TransportConfig struct {
	Base       http.RoundTripper
	Store      domain.SessionStore
	Policy     TokenPolicy
	Redirector domain.Redirector
	LoginRoute func(domain.Role) string
	Logger     logger.Logger
	Metrics    *metrics.Transport
	// RefreshTimeout bounds the shared refresh call, which outlives the
	// request that started it
	RefreshTimeout time.Duration
}

func NewAuthTransport(cfg TransportConfig) *AuthTransport {
	if cfg.Base == nil {
		cfg.Base = http.DefaultTransport
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	if cfg.LoginRoute == nil {
		cfg.LoginRoute = func(domain.Role) string { return "/login" }
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = DefaultRefreshTimeout
	}
	return &AuthTransport{
		base:       cfg.Base,
		store:      cfg.Store,
		policy:     cfg.Policy,
		redirector: cfg.Redirector,
		loginRoute: cfg.LoginRoute,
		log:        cfg.Logger,
		metrics:    cfg.Metrics,
		timeout:    cfg.RefreshTimeout,
	}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := bufferBody(req); err != nil {
		return nil, err
	}

	first, err := cloneWithToken(req, t.policy.Token(t.store.Snapshot()))
	if err != nil {
		return nil, err
	}
	resp, err := t.base.RoundTrip(first)
	if err != nil {
		return nil, err
	}
	t.metrics.ObserveResponse(t.policy.Name, resp.StatusCode)
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	discard(resp)

	role := t.store.Role()
	result, err := t.refresh(req.Context())
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		t.fail(role, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionExpired, err)
	}

	replay, err := cloneWithToken(req, result.Token)
	if err != nil {
		return nil, err
	}
	t.metrics.ObserveReplay(t.policy.Name)
	resp, err = t.base.RoundTrip(replay)
	if err != nil {
		return nil, err
	}
	t.metrics.ObserveResponse(t.policy.Name, resp.StatusCode)
	return resp, nil
}

// refresh collapses concurrent 401s of this transport into one refresh call.
// The call runs detached from ctx so one caller leaving does not fail the others;
// a caller whose ctx ends stops waiting and gets ctx.Err().
func (t *AuthTransport) refresh(ctx context.Context) (*domain.AuthResult, error) {
	ch := t.refreshes.DoChan(t.policy.Name, func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
		defer cancel()

		res, err := t.policy.Refresh(rctx)
		if err == nil && (res == nil || res.Token == "") {
			err = domain.ErrTokenMissing
		}
		if err != nil {
			t.metrics.ObserveRefresh(t.policy.Name, metrics.RefreshFailure)
			return nil, err
		}
		t.metrics.ObserveRefresh(t.policy.Name, metrics.RefreshSuccess)
		t.log.Debug("session refreshed", map[string]interface{}{"client": t.policy.Name, "role": res.Role.String()})
		t.store.Publish(domain.NewSessionEvent(domain.SessionRefreshedEvent, res.Role).WithClient(t.policy.Name))
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*domain.AuthResult), nil
	}
}

func (t *AuthTransport) fail(role domain.Role, err error) {
	t.log.Warn("session refresh failed, logging out", err, map[string]interface{}{"client": t.policy.Name})

	t.store.Publish(domain.NewSessionEvent(domain.SessionRefreshFailedEvent, role).WithClient(t.policy.Name).WithError(err))
	t.store.Logout()
	if t.redirector != nil {
		t.redirector.Redirect(t.loginRoute(t.policy.LoginRole(role)))
	}
}

// bufferBody makes the request body replayable
func bufferBody(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody || req.GetBody != nil {
		return nil
	}
	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to buffer request body: %w", err)
	}
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	req.Body, _ = req.GetBody()
	return nil
}

func cloneWithToken(req *http.Request, token string) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", err)
		}
		out.Body = body
	}
	out.Header.Del("Authorization")
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	return out, nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
