package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/trigg3rX/sybil-verifier/pkg/env"
)

const (
	SourceTwitterV2 = "twitter_v2"
	SourceTwitterV1 = "twitter_v1"
)

type Config struct {
	devMode bool

	// Server
	verifierHost    string
	verifierRPCPort string
	requestTimeout  time.Duration

	// Verification
	signatureMarker string

	// Source
	sourceBackend         string
	twitterAPIURL         string
	twitterBearer         string
	twitterConsumerKey    string
	twitterConsumerSecret string
	twitterAccessToken    string
	twitterAccessSecret   string

	// Store
	storeBackend   string
	levelDBPath    string
	redisURL       string
	redisKeyPrefix string
	githubAPIURL   string
	githubToken    string
	githubRepo     string
	githubFilePath string
	githubBranch   string

	httpTimeout time.Duration
}

var cfg Config

// Init loads an optional .env file, then reads and validates the environment.
func Init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}

	cfg = Config{
		devMode:               env.GetEnvBool("DEV_MODE", false),
		verifierHost:          env.GetEnvString("VERIFIER_HOST", "0.0.0.0"),
		verifierRPCPort:       env.GetEnvString("VERIFIER_RPC_PORT", "9011"),
		requestTimeout:        env.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
		signatureMarker:       env.GetEnvString("SIGNATURE_MARKER", "Signature:"),
		sourceBackend:         env.GetEnvString("SOURCE_BACKEND", SourceTwitterV2),
		twitterAPIURL:         env.GetEnvString("TWITTER_API_URL", "https://api.twitter.com"),
		twitterBearer:         env.GetEnvSecret("TWITTER_BEARER"),
		twitterConsumerKey:    env.GetEnvSecret("TWITTER_CONSUMER_KEY"),
		twitterConsumerSecret: env.GetEnvSecret("TWITTER_CONSUMER_SECRET"),
		twitterAccessToken:    env.GetEnvSecret("TWITTER_ACCESS_TOKEN"),
		twitterAccessSecret:   env.GetEnvSecret("TWITTER_ACCESS_SECRET"),
		storeBackend:          env.GetEnvString("STORE_BACKEND", "memory"),
		levelDBPath:           env.GetEnvString("LEVELDB_PATH", "data/attestations"),
		redisURL:              env.GetEnvSecret("REDIS_URL"),
		redisKeyPrefix:        env.GetEnvString("REDIS_KEY_PREFIX", "sybil:attestation:"),
		githubAPIURL:          env.GetEnvString("GITHUB_API_URL", "https://api.github.com"),
		githubToken:           env.GetEnvSecret("GITHUB_TOKEN"),
		githubRepo:            env.GetEnvString("GITHUB_REPO", ""),
		githubFilePath:        env.GetEnvString("GITHUB_FILE_PATH", "verified.json"),
		githubBranch:          env.GetEnvString("GITHUB_BRANCH", "main"),
		httpTimeout:           env.GetEnvDuration("HTTP_TIMEOUT", 10*time.Second),
	}

	return validateConfig()
}

func validateConfig() error {
	if !env.IsValidIPAddress(cfg.verifierHost) {
		return fmt.Errorf("invalid verifier host: %s", cfg.verifierHost)
	}
	if !env.IsValidPort(cfg.verifierRPCPort) {
		return fmt.Errorf("invalid verifier RPC port: %s", cfg.verifierRPCPort)
	}
	if env.IsEmpty(cfg.signatureMarker) {
		return fmt.Errorf("signature marker must not be empty")
	}
	if cfg.requestTimeout <= 0 || cfg.httpTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	switch cfg.sourceBackend {
	case SourceTwitterV2:
		if !env.IsValidURL(cfg.twitterAPIURL) {
			return fmt.Errorf("invalid twitter API URL: %s", cfg.twitterAPIURL)
		}
		if env.IsEmpty(cfg.twitterBearer) {
			return fmt.Errorf("TWITTER_BEARER is required for %s", SourceTwitterV2)
		}
	case SourceTwitterV1:
		if env.IsEmpty(cfg.twitterConsumerKey) || env.IsEmpty(cfg.twitterConsumerSecret) ||
			env.IsEmpty(cfg.twitterAccessToken) || env.IsEmpty(cfg.twitterAccessSecret) {
			return fmt.Errorf("twitter OAuth1 credentials are required for %s", SourceTwitterV1)
		}
	default:
		return fmt.Errorf("unknown source backend: %s", cfg.sourceBackend)
	}

	switch cfg.storeBackend {
	case "memory":
	case "leveldb":
		if env.IsEmpty(cfg.levelDBPath) {
			return fmt.Errorf("LEVELDB_PATH is required for the leveldb store")
		}
	case "redis":
		if env.IsEmpty(cfg.redisURL) {
			return fmt.Errorf("REDIS_URL is required for the redis store")
		}
	case "github":
		if !env.IsValidGitHubRepo(cfg.githubRepo) {
			return fmt.Errorf("invalid GITHUB_REPO: %q", cfg.githubRepo)
		}
		if !env.IsValidURL(cfg.githubAPIURL) {
			return fmt.Errorf("invalid github API URL: %s", cfg.githubAPIURL)
		}
		if env.IsEmpty(cfg.githubToken) || env.IsEmpty(cfg.githubFilePath) {
			return fmt.Errorf("GITHUB_TOKEN and GITHUB_FILE_PATH are required for the github store")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", cfg.storeBackend)
	}
	return nil
}

func IsDevMode() bool {
	return cfg.devMode
}

func GetVerifierHost() string {
	return cfg.verifierHost
}

func GetVerifierRPCPort() string {
	return cfg.verifierRPCPort
}

func GetRequestTimeout() time.Duration {
	return cfg.requestTimeout
}

func GetSignatureMarker() string {
	return cfg.signatureMarker
}

func GetSourceBackend() string {
	return cfg.sourceBackend
}

func GetTwitterAPIURL() string {
	return cfg.twitterAPIURL
}

func GetTwitterBearer() string {
	return cfg.twitterBearer
}

// GetTwitterOAuth returns consumer key, consumer secret, access token and access secret
func GetTwitterOAuth() (string, string, string, string) {
	return cfg.twitterConsumerKey, cfg.twitterConsumerSecret, cfg.twitterAccessToken, cfg.twitterAccessSecret
}

func GetStoreBackend() string {
	return cfg.storeBackend
}

func GetLevelDBPath() string {
	return cfg.levelDBPath
}

func GetRedisURL() string {
	return cfg.redisURL
}

func GetRedisKeyPrefix() string {
	return cfg.redisKeyPrefix
}

func GetGitHubAPIURL() string {
	return cfg.githubAPIURL
}

func GetGitHubToken() string {
	return cfg.githubToken
}

func GetGitHubRepo() string {
	return cfg.githubRepo
}

func GetGitHubFilePath() string {
	return cfg.githubFilePath
}

func GetGitHubBranch() string {
	return cfg.githubBranch
}

func GetHTTPTimeout() time.Duration {
	return cfg.httpTimeout
}
