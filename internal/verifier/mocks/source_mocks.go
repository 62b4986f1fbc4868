package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// MockSourceLookup is a mock implementation of interfaces.SourceLookup
type MockSourceLookup struct {
	mock.Mock
}

func (m *MockSourceLookup) FetchPost(ctx context.Context, postID string) (types.Post, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(types.Post), args.Error(1)
}
