package core

import (
	"errors"
	"fmt"
)

// Reason classifies why a verification did not produce an accepted pair.
type Reason string

const (
	ReasonInvalidAddress     Reason = "invalid-address"
	ReasonSourceNotFound     Reason = "source-not-found"
	ReasonNoSignature        Reason = "no-signature-found"
	ReasonMalformedSignature Reason = "malformed-source-data"
	ReasonSignerMismatch     Reason = "signer-mismatch"
	ReasonPersistence        Reason = "persistence-failure"
)

// Stage is the pipeline step that produced a rejection.
type Stage string

const (
	StageValidateAddress Stage = "validate-address"
	StageFetchSource     Stage = "fetch-source"
	StageExtract         Stage = "extract-signature"
	StageRecover         Stage = "recover-signer"
	StageCompare         Stage = "compare"
	StagePersist         Stage = "persist"
)

// Rejection is a terminal, non-retryable verification outcome.
type Rejection struct {
	Reason Reason
	Stage  Stage
	Detail string
	Err    error
}

func (r *Rejection) Error() string {
	msg := fmt.Sprintf("%s at %s", r.Reason, r.Stage)
	if r.Detail != "" {
		msg += ": " + r.Detail
	}
	if r.Err != nil {
		msg += ": " + r.Err.Error()
	}
	return msg
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

// Is matches any Rejection carrying the same Reason, so callers can use
// errors.Is(err, core.ErrSignerMismatch).
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	if !ok {
		return false
	}
	return t.Reason == r.Reason
}

var (
	ErrInvalidAddressFormat = &Rejection{Reason: ReasonInvalidAddress, Stage: StageValidateAddress}
	ErrSourceNotFound       = &Rejection{Reason: ReasonSourceNotFound, Stage: StageFetchSource}
	ErrNoSignatureFound     = &Rejection{Reason: ReasonNoSignature, Stage: StageExtract}
	ErrMalformedSignature   = &Rejection{Reason: ReasonMalformedSignature, Stage: StageRecover}
	ErrSignerMismatch       = &Rejection{Reason: ReasonSignerMismatch, Stage: StageCompare}
	ErrPersistenceFailure   = &Rejection{Reason: ReasonPersistence, Stage: StagePersist}
)

func reject(reason Reason, stage Stage, detail string, err error) *Rejection {
	return &Rejection{Reason: reason, Stage: stage, Detail: detail, Err: err}
}

// NewPersistenceFailure wraps a store error raised after a successful verification.
func NewPersistenceFailure(detail string, err error) *Rejection {
	return reject(ReasonPersistence, StagePersist, detail, err)
}

// NewInvalidAddress reports a caller-supplied address that is not a valid
// 20-byte hex address.
func NewInvalidAddress(detail string, err error) *Rejection {
	return reject(ReasonInvalidAddress, StageValidateAddress, detail, err)
}

// NewSourceNotFound reports a post the source could not find.
func NewSourceNotFound(postID string, err error) *Rejection {
	return reject(ReasonSourceNotFound, StageFetchSource, fmt.Sprintf("post %s", postID), err)
}

// AsRejection returns the Rejection in err's chain, if any.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
