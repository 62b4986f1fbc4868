package interfaces

import (
	"context"
	"errors"

	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

var (
	// ErrRecordNotFound is returned by Read when no attestation exists for the address.
	ErrRecordNotFound = errors.New("attestation record not found")
	// ErrVersionConflict is returned by WriteIfMatch when the stored version moved on.
	ErrVersionConflict = errors.New("attestation version conflict")
)

// AttestationStore persists address -> handle attestations with check-and-set.
//
// Read returns the record and an opaque version token. WriteIfMatch stores the
// record only if the current version still equals version; an empty version
// means the address must not have a record yet.
type AttestationStore interface {
	Read(ctx context.Context, address string) (types.AttestationRecord, string, error)
	WriteIfMatch(ctx context.Context, address string, record types.AttestationRecord, version string) error
	Close() error
}
