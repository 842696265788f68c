// Package token issues monotonically increasing generation tokens per logical
// field or operation, so that asynchronous responses can be applied with
// last-issued-wins semantics.
package token

import "sync"

type Token struct {
	Key string
	Gen uint64
}

type Sequencer struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{latest: make(map[string]uint64)}
}

// Next issues a new token for key. Every token issued earlier for the same key
// becomes stale.
func (s *Sequencer) Next(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[key]++
	return Token{Key: key, Gen: s.latest[key]}
}

// Invalidate makes every outstanding token for key stale without handing out
// a new one.
func (s *Sequencer) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[key]++
}

func (s *Sequencer) IsLatest(t Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[t.Key] == t.Gen
}

// Guard runs apply only if t is still the latest token for its key. No token
// can be issued for any key while apply runs, so apply must not call back
// into the Sequencer.
func (s *Sequencer) Guard(t Token, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest[t.Key] != t.Gen {
		return false
	}
	apply()
	return true
}
