package permission

import (
	"sync"

	"github.com/google/uuid"

	"go-pricing-sim/internal/model"
)

// sessionResolver lets tests substitute a slow or scripted resolver.
type sessionResolver interface {
	Resolve(user *model.User) Resolution
}

// Session tracks the capability state of one authenticated identity
// across permission refreshes.
//
// Resolution runs against the role store and may overlap with identity
// changes; the rules are: last resolution wins, a resolution that
// completes after the identity changed is discarded, and every
// capability query fails closed while a resolution is in flight.
type Session struct {
	mu sync.Mutex

	resolver sessionResolver

	// gen increments on every refresh and logout; a resolution may only
	// commit if it still carries the current generation.
	gen         uint64
	resolvedGen uint64

	userID uuid.UUID
	state  Resolution
}

func NewSession(resolver sessionResolver) *Session {
	return &Session{resolver: resolver, state: EmptyResolution()}
}

// Refresh re-resolves capabilities for the given user. Passing nil
// resets to the unauthenticated empty state immediately (logout). Safe
// to call repeatedly and from concurrent goroutines.
func (s *Session) Refresh(user *model.User) {
	s.mu.Lock()
	s.gen++
	token := s.gen
	if user == nil {
		s.userID = uuid.Nil
		s.state = EmptyResolution()
		s.resolvedGen = token
		s.mu.Unlock()
		return
	}
	s.userID = user.ID
	s.mu.Unlock()

	// Role lookup happens outside the lock; commit is guarded below.
	resolved := s.resolver.Resolve(user)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.gen || s.userID != user.ID {
		// A newer refresh or a logout superseded this resolution.
		return
	}
	s.state = resolved
	s.resolvedGen = token
}

// IsLoading reports whether the latest refresh has not settled yet.
// Consumers must render this distinctly from resolved-empty, but action
// gating treats it as denied.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolvedGen != s.gen
}

// RoleName returns the resolved role name, empty when none resolved.
func (s *Session) RoleName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RoleName
}

// Current returns the settled resolution (empty while loading).
func (s *Session) Current() Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolvedGen != s.gen {
		return EmptyResolution()
	}
	return s.state
}

// Has fails closed: false for missing keys and while loading.
func (s *Session) Has(key string) bool {
	return s.Current().Set.Has(key)
}

// HasAny fails closed like Has.
func (s *Session) HasAny(keys ...string) bool {
	return s.Current().Set.HasAny(keys...)
}

// HasAll fails closed like Has.
func (s *Session) HasAll(keys ...string) bool {
	return s.Current().Set.HasAll(keys...)
}
