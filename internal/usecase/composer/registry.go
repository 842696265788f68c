package composer

import (
	"log/slog"
	"sync"
	"time"

	"fleet-console/internal/domain/request"
	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errs.New("composer session not found")

// Sessions is what the HTTP host needs from the registry.
type Sessions interface {
	Open(kind request.ServiceKind) (*Session, error)
	Get(id string) (*Session, error)
	Close(id string) bool
}

var _ Sessions = (*Registry)(nil)

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Registry holds the open composer sessions. A session idle for longer than
// the configured TTL is closed on the next registry access.
type Registry struct {
	backends Backends
	clock    clock.Clock
	cfg      config.ComposerConfig
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(
	places shared.PlaceProvider,
	directory shared.Directory,
	fuel shared.FuelPricing,
	services shared.ServiceBackend,
	subs shared.SubscriptionBackend,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		backends: Backends{
			Places:        places,
			Directory:     directory,
			Pricing:       fuel,
			Services:      services,
			Subscriptions: subs,
		},
		clock:    clk,
		cfg:      cfg.Composer,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Open starts a composer for kind with a default draft.
func (r *Registry) Open(kind request.ServiceKind) (*Session, error) {
	id := uuid.NewString()
	s, err := newSession(id, kind, r.backends, r.clock, r.cfg, r.logger)
	if err != nil {
		return nil, err
	}
	s.release = func() { r.Close(id) }

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.sessions[id] = &entry{session: s, lastSeen: r.clock.Now()}
	r.logger.Info("composer opened", "session_id", id, "kind", kind)
	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.clock.Now()
	return e.session, nil
}

// Close discards the session. Closing an unknown id is a no-op.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	e.session.close()
	r.logger.Info("composer closed", "session_id", id)
	return true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// CloseAll is used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()
	for _, e := range all {
		e.session.close()
	}
}

func (r *Registry) sweepLocked() {
	if r.cfg.SessionTTL <= 0 {
		return
	}
	cutoff := r.clock.Now().Add(-r.cfg.SessionTTL)
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			e.session.close()
			r.logger.Info("composer expired", "session_id", id)
		}
	}
}
