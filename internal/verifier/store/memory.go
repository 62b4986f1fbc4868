package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

type memoryEntry struct {
	record  types.AttestationRecord
	version uint64
}

// MemoryStore keeps attestations in process memory. Versions are a per-key
// write counter.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Read(ctx context.Context, address string) (types.AttestationRecord, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.records[address]
	if !ok {
		return types.AttestationRecord{}, "", interfaces.ErrRecordNotFound
	}
	return entry.record, strconv.FormatUint(entry.version, 10), nil
}

func (s *MemoryStore) WriteIfMatch(ctx context.Context, address string, record types.AttestationRecord, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := ""
	entry, ok := s.records[address]
	if ok {
		current = strconv.FormatUint(entry.version, 10)
	}
	if current != version {
		return interfaces.ErrVersionConflict
	}

	s.records[address] = memoryEntry{record: record, version: entry.version + 1}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
