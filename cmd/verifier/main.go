package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/api"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/config"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/core"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/service"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/source"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/source/twitter"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/store"
	httppkg "github.com/trigg3rX/sybil-verifier/pkg/http"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := config.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize config: %v", err))
	}

	logConfig := logging.LoggerConfig{
		ProcessName:   logging.VerifierProcess,
		IsDevelopment: config.IsDevMode(),
	}

	logger, err := logging.NewZapLogger(logConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	logger.Info("Starting sybil verifier...",
		"mode", config.IsDevMode(),
		"port", config.GetVerifierRPCPort(),
		"source", config.GetSourceBackend(),
		"store", config.GetStoreBackend(),
	)

	httpConfig := httppkg.DefaultHTTPConfig()
	httpConfig.Timeout = config.GetHTTPTimeout()
	httpClient, err := httppkg.NewHTTPClient(httpConfig, logger)
	if err != nil {
		logger.Fatalf("Failed to create HTTP client: %v", err)
	}
	defer httpClient.Close()

	attestations, err := store.Open(store.Options{
		Backend:        config.GetStoreBackend(),
		LevelDBPath:    config.GetLevelDBPath(),
		RedisURL:       config.GetRedisURL(),
		RedisKeyPrefix: config.GetRedisKeyPrefix(),
		GitHub: store.GitHubConfig{
			APIURL:   config.GetGitHubAPIURL(),
			Token:    config.GetGitHubToken(),
			Repo:     config.GetGitHubRepo(),
			FilePath: config.GetGitHubFilePath(),
			Branch:   config.GetGitHubBranch(),
		},
		HTTPClient: httpClient,
	}, logger)
	if err != nil {
		logger.Fatalf("Failed to open attestation store: %v", err)
	}

	svc := service.NewService(newSource(httpClient, logger), attestations, core.NewParser(config.GetSignatureMarker()), logger)

	server := api.NewServer(api.Config{
		Host:           config.GetVerifierHost(),
		Port:           config.GetVerifierRPCPort(),
		RequestTimeout: config.GetRequestTimeout(),
		DevMode:        config.IsDevMode(),
	}, api.Dependencies{
		Logger:  logger,
		Service: svc,
	})

	var wg sync.WaitGroup
	serverErrors := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Start(); err != nil {
			serverErrors <- err
		}
	}()

	logger.Infof("Sybil verifier initialized, listening on port %s...", config.GetVerifierRPCPort())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error received", "error", err)
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", "signal", sig.String())
	}

	performGracefulShutdown(server, attestations, &wg, logger)

	if err := logger.Shutdown(); err != nil {
		fmt.Printf("Error shutting down logger: %v\n", err)
	}
}

func newSource(httpClient *httppkg.HTTPClient, logger logging.Logger) interfaces.SourceLookup {
	if config.GetSourceBackend() == config.SourceTwitterV1 {
		consumerKey, consumerSecret, accessToken, accessSecret := config.GetTwitterOAuth()
		client := twitter.NewV1Client(twitter.OAuth{
			ConsumerKey:    consumerKey,
			ConsumerSecret: consumerSecret,
			AccessToken:    accessToken,
			AccessSecret:   accessSecret,
		}, httpClient.GetClient(), logger)
		return source.WithMetrics(client, config.SourceTwitterV1)
	}

	client := twitter.NewV2Client(config.GetTwitterAPIURL(), config.GetTwitterBearer(), httpClient, logger)
	return source.WithMetrics(client, config.SourceTwitterV2)
}

func performGracefulShutdown(server *api.Server, attestations interfaces.AttestationStore, wg *sync.WaitGroup, logger logging.Logger) {
	logger.Info("Initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	wg.Wait()

	if err := attestations.Close(); err != nil {
		logger.Error("Failed to close attestation store", "error", err)
	}

	logger.Info("Shutdown complete")
}
