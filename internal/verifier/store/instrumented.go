package store

import (
	"context"
	"errors"
	"time"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/metrics"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

type instrumentedStore struct {
	next    interfaces.AttestationStore
	backend string
}

// WithMetrics records operation counts and latency for next under the given
// backend label.
func WithMetrics(next interfaces.AttestationStore, backend string) interfaces.AttestationStore {
	return &instrumentedStore{next: next, backend: backend}
}

func operationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, interfaces.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, interfaces.ErrVersionConflict):
		return "conflict"
	default:
		return "error"
	}
}

func (s *instrumentedStore) observe(operation string, start time.Time, err error) {
	metrics.StoreOperationDuration.WithLabelValues(s.backend, operation).Observe(time.Since(start).Seconds())
	metrics.StoreOperationsTotal.WithLabelValues(s.backend, operation, operationResult(err)).Inc()
}

func (s *instrumentedStore) Read(ctx context.Context, address string) (types.AttestationRecord, string, error) {
	start := time.Now()
	record, version, err := s.next.Read(ctx, address)
	s.observe("read", start, err)
	return record, version, err
}

func (s *instrumentedStore) WriteIfMatch(ctx context.Context, address string, record types.AttestationRecord, version string) error {
	start := time.Now()
	err := s.next.WriteIfMatch(ctx, address, record, version)
	s.observe("write", start, err)
	return err
}

func (s *instrumentedStore) Close() error {
	return s.next.Close()
}
