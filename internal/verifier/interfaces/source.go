package interfaces

import (
	"context"
	"errors"

	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// ErrPostNotFound is returned by a SourceLookup when the post or its author is missing.
var ErrPostNotFound = errors.New("post not found")

// SourceLookup fetches a post and its author handle from the social platform.
type SourceLookup interface {
	FetchPost(ctx context.Context, postID string) (types.Post, error)
}
