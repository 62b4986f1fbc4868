package store

import (
	"fmt"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	httppkg "github.com/trigg3rX/sybil-verifier/pkg/http"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/redis"
)

const (
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
	BackendRedis   = "redis"
	BackendGitHub  = "github"
)

// Options selects and configures an attestation store backend
type Options struct {
	Backend        string
	LevelDBPath    string
	RedisURL       string
	RedisKeyPrefix string
	GitHub         GitHubConfig
	HTTPClient     httppkg.HTTPClientInterface
}

// Open builds the configured backend wrapped with metrics
func Open(opts Options, logger logging.Logger) (interfaces.AttestationStore, error) {
	var (
		backend interfaces.AttestationStore
		err     error
	)

	switch opts.Backend {
	case BackendMemory, "":
		backend = NewMemoryStore()
	case BackendLevelDB:
		backend, err = NewLevelDBStore(opts.LevelDBPath, logger)
	case BackendRedis:
		var client *redis.Client
		client, err = redis.NewClient(opts.RedisURL, logger)
		if err == nil {
			backend = NewRedisStore(client, opts.RedisKeyPrefix, logger)
		}
	case BackendGitHub:
		if opts.HTTPClient == nil {
			return nil, fmt.Errorf("github store requires an HTTP client")
		}
		backend, err = NewGitHubStore(opts.GitHub, opts.HTTPClient, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	name := opts.Backend
	if name == "" {
		name = BackendMemory
	}
	logger.Infof("Attestation store backend: %s", name)
	return WithMetrics(backend, name), nil
}
