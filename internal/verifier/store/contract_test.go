package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

const testAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// runStoreContract exercises check-and-set semantics shared by every backend.
func runStoreContract(t *testing.T, newStore func(t *testing.T) interfaces.AttestationStore) {
	ctx := context.Background()
	alice := types.AttestationRecord{Handle: "alice", Timestamp: 1700000000, PostID: "1"}
	bob := types.AttestationRecord{Handle: "bob", Timestamp: 1700000100, PostID: "2"}

	t.Run("read missing returns not found", func(t *testing.T) {
		s := newStore(t)

		_, version, err := s.Read(ctx, testAddress)

		assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)
		assert.Empty(t, version)
	})

	t.Run("create then read", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.WriteIfMatch(ctx, testAddress, alice, ""))

		record, version, err := s.Read(ctx, testAddress)
		require.NoError(t, err)
		assert.Equal(t, alice, record)
		assert.NotEmpty(t, version)
	})

	t.Run("create over existing record conflicts", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.WriteIfMatch(ctx, testAddress, alice, ""))

		err := s.WriteIfMatch(ctx, testAddress, bob, "")

		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
		record, _, err := s.Read(ctx, testAddress)
		require.NoError(t, err)
		assert.Equal(t, "alice", record.Handle)
	})

	t.Run("update with current version succeeds", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.WriteIfMatch(ctx, testAddress, alice, ""))
		_, version, err := s.Read(ctx, testAddress)
		require.NoError(t, err)

		require.NoError(t, s.WriteIfMatch(ctx, testAddress, bob, version))

		record, newVersion, err := s.Read(ctx, testAddress)
		require.NoError(t, err)
		assert.Equal(t, bob, record)
		assert.NotEqual(t, version, newVersion)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.WriteIfMatch(ctx, testAddress, alice, ""))
		_, stale, err := s.Read(ctx, testAddress)
		require.NoError(t, err)

		// A concurrent writer moves the record on.
		require.NoError(t, s.WriteIfMatch(ctx, testAddress, bob, stale))

		err = s.WriteIfMatch(ctx, testAddress, alice, stale)
		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
	})

	t.Run("version on missing record conflicts", func(t *testing.T) {
		s := newStore(t)

		err := s.WriteIfMatch(ctx, testAddress, alice, "1")

		assert.ErrorIs(t, err, interfaces.ErrVersionConflict)
	})

	t.Run("addresses are independent", func(t *testing.T) {
		s := newStore(t)
		other := "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"

		require.NoError(t, s.WriteIfMatch(ctx, testAddress, alice, ""))
		require.NoError(t, s.WriteIfMatch(ctx, other, bob, ""))

		record, _, err := s.Read(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, "bob", record.Handle)
	})
}
