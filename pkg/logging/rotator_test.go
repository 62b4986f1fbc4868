package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSequentialRotator_ValidParameters_ReturnsCorrectInstance(t *testing.T) {
	rotator := NewSequentialRotator("/tmp/test.log", 2, 7, 3)

	assert.Equal(t, "/tmp/test.log", rotator.filename)
	assert.Equal(t, int64(2*1024*1024), rotator.maxSize)
	assert.Equal(t, 7, rotator.maxAge)
	assert.Equal(t, 3, rotator.maxBackups)
	assert.Nil(t, rotator.file)
}

func TestSequentialRotator_Write_CreatesFileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "nested", "2025-07-01.log")
	rotator := NewSequentialRotator(filename, 1, 0, 0)
	defer func() { _ = rotator.Close() }()

	n, err := rotator.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(content))
}

func TestSequentialRotator_Write_RotatesWhenSizeExceeded(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "2025-07-01.log")
	rotator := NewSequentialRotator(filename, 1, 0, 0)
	rotator.maxSize = 10
	defer func() { _ = rotator.Close() }()

	_, err := rotator.Write([]byte("0123456789"))
	require.NoError(t, err)
	_, err = rotator.Write([]byte("abc"))
	require.NoError(t, err)

	rotated, err := os.ReadFile(filepath.Join(dir, "2025-07-01.1.log"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(rotated))

	current, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(current))
}

func TestSequentialRotator_Write_OversizedFirstWriteDoesNotRotate(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "big.log")
	rotator := NewSequentialRotator(filename, 1, 0, 0)
	rotator.maxSize = 4
	defer func() { _ = rotator.Close() }()

	_, err := rotator.Write([]byte(strings.Repeat("x", 16)))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "big.*.log"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSequentialRotator_Prune_KeepsMaxBackups(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "app.log")
	rotator := NewSequentialRotator(filename, 1, 0, 2)
	rotator.maxSize = 1
	defer func() { _ = rotator.Close() }()

	for i := 0; i < 5; i++ {
		_, err := rotator.Write([]byte("ab"))
		require.NoError(t, err)
	}

	backups := rotator.backups()
	require.Len(t, backups, 2)
	assert.Equal(t, 4, backups[0].seq)
	assert.Equal(t, 3, backups[1].seq)
}

func TestSequentialRotator_Close_Idempotent(t *testing.T) {
	rotator := NewSequentialRotator(filepath.Join(t.TempDir(), "x.log"), 1, 0, 0)

	assert.NoError(t, rotator.Close())
	_, err := rotator.Write([]byte("x"))
	require.NoError(t, err)
	assert.NoError(t, rotator.Close())
	assert.NoError(t, rotator.Close())
}
