package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/tutorportal/domain"
)

// Store is the in-memory session shared by both transports. Nothing is persisted.
type Store struct {
	mu      sync.RWMutex
	session domain.Session

	obsMu     sync.RWMutex
	observers map[int]domain.SessionObserver
	nextID    int
}

var _ domain.SessionStore = (*Store)(nil)

// NewStore creates an empty, unauthenticated store
func NewStore() *Store {
	return &Store{observers: make(map[int]domain.SessionObserver)}
}

// Snapshot returns a copy of the current session. The profile is copied too.
func (s *Store) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	if out.Profile != nil {
		p := *out.Profile
		out.Profile = &p
	}
	return out
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

func (s *Store) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Role
}

// Login replaces token and role. The profile is kept. An empty token stores no role.
func (s *Store) Login(token string, role domain.Role) {
	if token == "" {
		role = domain.RoleNone
	}
	s.mu.Lock()
	s.session.Token = token
	s.session.Role = role
	s.mu.Unlock()

	s.Publish(domain.NewSessionEvent(domain.SessionLoginEvent, role))
}

// SetStudentProfile caches the profile regardless of the current role
func (s *Store) SetStudentProfile(profile *domain.StudentProfile) {
	var p *domain.StudentProfile
	if profile != nil {
		cp := *profile
		p = &cp
	}
	s.mu.Lock()
	s.session.Profile = p
	role := s.session.Role
	s.mu.Unlock()

	s.Publish(domain.NewSessionEvent(domain.SessionProfileEvent, role))
}

// Logout clears token, role and profile in one step
func (s *Store) Logout() {
	s.mu.Lock()
	role := s.session.Role
	s.session = domain.Session{}
	s.mu.Unlock()

	s.Publish(domain.NewSessionEvent(domain.SessionLogoutEvent, role))
}

// Subscribe registers an observer and returns its unsubscribe func
func (s *Store) Subscribe(observer domain.SessionObserver) func() {
	s.obsMu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

// Publish delivers event to every observer. Observers run outside the session lock.
func (s *Store) Publish(event domain.SessionEvent) {
	s.obsMu.RLock()
	observers := make([]domain.SessionObserver, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.obsMu.RUnlock()

	for _, o := range observers {
		o.OnSessionEvent(event)
	}
}

// Expiry reads the exp claim of the current token without verifying it.
// ok is false when there is no token or it carries no expiry.
func (s *Store) Expiry() (exp time.Time, ok bool) {
	return TokenExpiry(s.Token())
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
