package source

import (
	"context"
	"errors"
	"time"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/metrics"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

type instrumentedSource struct {
	next interfaces.SourceLookup
	name string
}

// WithMetrics records fetch latency for next, labelled with name and outcome
func WithMetrics(next interfaces.SourceLookup, name string) interfaces.SourceLookup {
	return &instrumentedSource{next: next, name: name}
}

func (s *instrumentedSource) FetchPost(ctx context.Context, postID string) (types.Post, error) {
	start := time.Now()
	post, err := s.next.FetchPost(ctx, postID)

	status := "ok"
	switch {
	case errors.Is(err, interfaces.ErrPostNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	metrics.SourceFetchDuration.WithLabelValues(s.name, status).Observe(time.Since(start).Seconds())
	return post, err
}
