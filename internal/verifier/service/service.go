package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/core"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/metrics"
	"github.com/trigg3rX/sybil-verifier/pkg/logging"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// ErrStoreDisabled is returned by Account when no attestation store is configured
var ErrStoreDisabled = errors.New("attestation store is not configured")

// Service runs the verification pipeline against a source and an optional
// attestation store.
type Service struct {
	verifier *core.Verifier
	source   interfaces.SourceLookup
	store    interfaces.AttestationStore
	logger   logging.Logger
	now      func() time.Time
}

// NewService wires the pipeline. store may be nil, in which case verified
// pairs are returned but never persisted.
func NewService(source interfaces.SourceLookup, store interfaces.AttestationStore, parser core.Parser, logger logging.Logger) *Service {
	return &Service{
		verifier: core.NewVerifier(parser),
		source:   source,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// Verify checks that postID carries a signature over its author's handle.
// With a claimed address the signer must match it and the pair is persisted;
// without one the recovered signer is reported and nothing is written.
func (s *Service) Verify(ctx context.Context, postID, claimedAddress string) (*core.Verified, error) {
	logger := s.logger.With("post_id", postID)

	verified, err := s.verify(ctx, postID, claimedAddress)
	recordOutcome(err)
	if err != nil {
		if rejection, ok := core.AsRejection(err); ok {
			logger.Info("Verification rejected", "reason", rejection.Reason, "stage", rejection.Stage, "error", err)
		} else {
			logger.Error("Verification failed", "error", err)
		}
		return nil, err
	}

	logger.Info("Verification succeeded",
		"handle", verified.Handle,
		"address", verified.ChecksumAddress(),
		"persisted", verified.Persisted)
	return verified, nil
}

func (s *Service) verify(ctx context.Context, postID, claimedAddress string) (*core.Verified, error) {
	// The address is checked before any network call.
	claim, err := core.ParseClaim(claimedAddress)
	if err != nil {
		return nil, err
	}

	post, err := s.source.FetchPost(ctx, postID)
	if errors.Is(err, interfaces.ErrPostNotFound) {
		return nil, core.NewSourceNotFound(postID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch post %s: %w", postID, err)
	}

	verified, err := s.verifier.VerifyPost(post, claim)
	if err != nil {
		return nil, err
	}

	if !claim.Present() || s.store == nil {
		return verified, nil
	}

	if err := s.persist(ctx, verified); err != nil {
		return nil, err
	}
	verified.Persisted = true
	return verified, nil
}

// persist performs one read and one check-and-set write. A concurrent
// writer surfaces as a persistence failure.
func (s *Service) persist(ctx context.Context, verified *core.Verified) error {
	address := verified.ChecksumAddress()

	_, version, err := s.store.Read(ctx, address)
	if err != nil && !errors.Is(err, interfaces.ErrRecordNotFound) {
		return core.NewPersistenceFailure("read attestation", err)
	}

	record := types.AttestationRecord{
		Handle:    verified.Handle,
		Timestamp: s.now().Unix(),
		PostID:    verified.PostID,
	}
	if err := s.store.WriteIfMatch(ctx, address, record, version); err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return core.NewPersistenceFailure("attestation changed concurrently", err)
		}
		return core.NewPersistenceFailure("write attestation", err)
	}
	return nil
}

// Account returns the stored attestation for an address.
func (s *Service) Account(ctx context.Context, address string) (types.AttestationRecord, string, error) {
	claim, err := core.ParseClaim(address)
	if err != nil {
		return types.AttestationRecord{}, "", err
	}
	if !claim.Present() {
		return types.AttestationRecord{}, "", core.NewInvalidAddress("address is required", nil)
	}
	if s.store == nil {
		return types.AttestationRecord{}, "", ErrStoreDisabled
	}

	checksummed := claim.Address().Hex()
	record, _, err := s.store.Read(ctx, checksummed)
	if err != nil {
		return types.AttestationRecord{}, "", err
	}
	return record, checksummed, nil
}

func recordOutcome(err error) {
	result := "verified"
	if err != nil {
		result = "transport_error"
		if rejection, ok := core.AsRejection(err); ok {
			result = string(rejection.Reason)
		}
	}
	metrics.VerificationsTotal.WithLabelValues(result).Inc()
}
