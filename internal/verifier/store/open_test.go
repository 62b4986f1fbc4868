package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

func TestOpen_Backends(t *testing.T) {
	logger := logging.NewNoOpLogger()

	s, err := Open(Options{}, logger)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(Options{Backend: BackendLevelDB, LevelDBPath: filepath.Join(t.TempDir(), "db")}, logger)
	require.NoError(t, err)
	require.NoError(t, s.WriteIfMatch(context.Background(), testAddress, types.AttestationRecord{Handle: "alice"}, ""))
	_, _, err = s.Read(context.Background(), testAddress)
	assert.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(Options{Backend: BackendGitHub}, logger)
	assert.Error(t, err)

	_, err = Open(Options{Backend: "postgres"}, logger)
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestOperationResult(t *testing.T) {
	assert.Equal(t, "ok", operationResult(nil))
	assert.Equal(t, "not_found", operationResult(interfaces.ErrRecordNotFound))
	assert.Equal(t, "conflict", operationResult(interfaces.ErrVersionConflict))
	assert.Equal(t, "error", operationResult(assert.AnError))
}
