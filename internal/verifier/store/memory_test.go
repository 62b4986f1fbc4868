package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) interfaces.AttestationStore {
		return NewMemoryStore()
	})
}

func TestMemoryStore_ConcurrentCreate_OnlyOneWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WriteIfMatch(ctx, testAddress, types.AttestationRecord{Handle: "racer"}, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, interfaces.ErrVersionConflict) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 19, conflicts)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WriteIfMatch(ctx, testAddress, types.AttestationRecord{Handle: "alice"}, "")

	assert.ErrorIs(t, err, context.Canceled)
}
