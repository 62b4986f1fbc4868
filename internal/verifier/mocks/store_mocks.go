package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// MockAttestationStore is a mock implementation of interfaces.AttestationStore
type MockAttestationStore struct {
	mock.Mock
}

func (m *MockAttestationStore) Read(ctx context.Context, address string) (types.AttestationRecord, string, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(types.AttestationRecord), args.String(1), args.Error(2)
}

func (m *MockAttestationStore) WriteIfMatch(ctx context.Context, address string, record types.AttestationRecord, version string) error {
	args := m.Called(ctx, address, record, version)
	return args.Error(0)
}

func (m *MockAttestationStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
