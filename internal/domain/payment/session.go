package payment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyReference     = errors.New("payment reference is empty")
	ErrEmptyAuthorization = errors.New("authorization url is empty")
	ErrInvalidTransition  = errors.New("invalid payment phase transition")
)

// Session is one payment attempt handed to the external gateway.
type Session struct {
	reference        string
	authorizationURL string
	phase            Phase
}

func NewSession(reference, authorizationURL string) (*Session, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrEmptyReference
	}
	if strings.TrimSpace(authorizationURL) == "" {
		return nil, ErrEmptyAuthorization
	}
	return &Session{
		reference:        reference,
		authorizationURL: authorizationURL,
		phase:            PhaseCreated,
	}, nil
}

func (s *Session) Reference() string        { return s.reference }
func (s *Session) AuthorizationURL() string { return s.authorizationURL }
func (s *Session) Phase() Phase             { return s.phase }

func (s *Session) Matches(reference string) bool {
	return s.reference == strings.TrimSpace(reference)
}

func (s *Session) TransitionTo(next Phase) error {
	if !s.phase.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, next)
	}
	s.phase = next
	return nil
}

// Snapshot is an immutable copy of a session for callers.
type Snapshot struct {
	Reference        string
	AuthorizationURL string
	Phase            Phase
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Reference:        s.reference,
		AuthorizationURL: s.authorizationURL,
		Phase:            s.phase,
	}
}
