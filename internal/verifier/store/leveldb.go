package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

const levelDBKeyPrefix = "attestation:"

// LevelDBStore persists attestations in an embedded LevelDB. Check-and-set
// runs inside a LevelDB transaction, which excludes concurrent writers.
type LevelDBStore struct {
	db     *leveldb.DB
	logger logging.Logger
}

// NewLevelDBStore opens (or creates) the database at path
func NewLevelDBStore(path string, logger logging.Logger) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	logger.Infof("Opened LevelDB attestation store at %s", path)
	return WrapLevelDB(db, logger), nil
}

// WrapLevelDB uses an already opened database
func WrapLevelDB(db *leveldb.DB, logger logging.Logger) *LevelDBStore {
	return &LevelDBStore{db: db, logger: logger}
}

func levelDBKey(address string) []byte {
	return []byte(levelDBKeyPrefix + address)
}

func (s *LevelDBStore) Read(ctx context.Context, address string) (types.AttestationRecord, string, error) {
	if err := ctx.Err(); err != nil {
		return types.AttestationRecord{}, "", err
	}

	raw, err := s.db.Get(levelDBKey(address), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return types.AttestationRecord{}, "", interfaces.ErrRecordNotFound
	}
	if err != nil {
		return types.AttestationRecord{}, "", fmt.Errorf("leveldb get: %w", err)
	}

	record, err := decodeRecord(raw)
	if err != nil {
		return types.AttestationRecord{}, "", err
	}
	version, err := contentVersion(record)
	if err != nil {
		return types.AttestationRecord{}, "", err
	}
	return record, version, nil
}

func (s *LevelDBStore) WriteIfMatch(ctx context.Context, address string, record types.AttestationRecord, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	encoded, err := encodeRecord(record)
	if err != nil {
		return err
	}

	tr, err := s.db.OpenTransaction()
	if err != nil {
		return fmt.Errorf("leveldb open transaction: %w", err)
	}

	current, err := s.currentVersion(tr, address)
	if err != nil {
		tr.Discard()
		return err
	}
	if current != version {
		tr.Discard()
		return interfaces.ErrVersionConflict
	}

	if err := tr.Put(levelDBKey(address), encoded, &opt.WriteOptions{Sync: true}); err != nil {
		tr.Discard()
		return fmt.Errorf("leveldb put: %w", err)
	}
	if err := tr.Commit(); err != nil {
		return fmt.Errorf("leveldb commit: %w", err)
	}
	return nil
}

func (s *LevelDBStore) currentVersion(tr *leveldb.Transaction, address string) (string, error) {
	raw, err := tr.Get(levelDBKey(address), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("leveldb get: %w", err)
	}
	existing, err := decodeRecord(raw)
	if err != nil {
		return "", err
	}
	return contentVersion(existing)
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
