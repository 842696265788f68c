//go:build unit

package token_test

import (
	"sync"
	"testing"

	"fleet-console/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencer(t *testing.T) {
	t.Run("newer token makes older one stale", func(t *testing.T) {
		seq := token.NewSequencer()
		first := seq.Next("pickup")
		second := seq.Next("pickup")

		assert.False(t, seq.IsLatest(first))
		assert.True(t, seq.IsLatest(second))
		assert.Greater(t, second.Gen, first.Gen)
	})

	t.Run("keys are independent", func(t *testing.T) {
		seq := token.NewSequencer()
		pickup := seq.Next("pickup")
		_ = seq.Next("dropoff")

		assert.True(t, seq.IsLatest(pickup))
	})

	t.Run("invalidate without issuing", func(t *testing.T) {
		seq := token.NewSequencer()
		tok := seq.Next("init")
		seq.Invalidate("init")

		assert.False(t, seq.IsLatest(tok))
	})

	t.Run("guard only applies latest", func(t *testing.T) {
		seq := token.NewSequencer()
		stale := seq.Next("amount")
		latest := seq.Next("amount")

		var applied []uint64
		assert.False(t, seq.Guard(stale, func() { applied = append(applied, stale.Gen) }))
		assert.True(t, seq.Guard(latest, func() { applied = append(applied, latest.Gen) }))
		assert.Equal(t, []uint64{latest.Gen}, applied)
	})

	t.Run("only the maximum issued token applies under concurrency", func(t *testing.T) {
		seq := token.NewSequencer()
		const n = 64
		tokens := make([]token.Token, n)
		for i := range tokens {
			tokens[i] = seq.Next("field")
		}

		var mu sync.Mutex
		var winners []uint64
		var wg sync.WaitGroup
		for _, tok := range tokens {
			wg.Add(1)
			go func(tok token.Token) {
				defer wg.Done()
				seq.Guard(tok, func() {
					mu.Lock()
					winners = append(winners, tok.Gen)
					mu.Unlock()
				})
			}(tok)
		}
		wg.Wait()

		require.Len(t, winners, 1)
		assert.Equal(t, tokens[n-1].Gen, winners[0])
	})
}
