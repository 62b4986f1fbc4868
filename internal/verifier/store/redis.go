package store

import (
	"context"
	"fmt"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/redis"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

const DefaultRedisKeyPrefix = "sybil:attestation:"

// writeIfMatchScript stores ARGV[2] under KEYS[1] only when the hash's version
// field equals ARGV[1] (an absent key has version "").
const writeIfMatchScript = `
local current = redis.call('HGET', KEYS[1], 'version')
if not current then current = '' end
if current ~= ARGV[1] then return 0 end
local nextVersion = 1
if current ~= '' then nextVersion = tonumber(current) + 1 end
redis.call('HSET', KEYS[1], 'record', ARGV[2], 'version', tostring(nextVersion))
return 1
`

// RedisStore keeps each attestation in a hash {record, version}
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    logging.Logger
}

func NewRedisStore(client *redis.Client, keyPrefix string, logger logging.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, logger: logger}
}

func (s *RedisStore) key(address string) string {
	return s.keyPrefix + address
}

func (s *RedisStore) Read(ctx context.Context, address string) (types.AttestationRecord, string, error) {
	values, err := s.client.HMGet(ctx, s.key(address), "record", "version")
	if err != nil {
		return types.AttestationRecord{}, "", fmt.Errorf("redis hmget: %w", err)
	}

	raw, ok := values[0].(string)
	if !ok {
		return types.AttestationRecord{}, "", interfaces.ErrRecordNotFound
	}
	version, _ := values[1].(string)

	record, err := decodeRecord([]byte(raw))
	if err != nil {
		return types.AttestationRecord{}, "", err
	}
	return record, version, nil
}

func (s *RedisStore) WriteIfMatch(ctx context.Context, address string, record types.AttestationRecord, version string) error {
	encoded, err := encodeRecord(record)
	if err != nil {
		return err
	}

	result, err := s.client.Eval(ctx, writeIfMatchScript, []string{s.key(address)}, version, string(encoded))
	if err != nil {
		return fmt.Errorf("redis eval: %w", err)
	}

	applied, ok := result.(int64)
	if !ok {
		return fmt.Errorf("unexpected redis script result %T", result)
	}
	if applied == 0 {
		return interfaces.ErrVersionConflict
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
