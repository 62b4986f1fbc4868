package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trigg3rX/sybil-verifier/pkg/cryptography"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

const (
	signerKey = "1234567890abcdef1234567890abcdef1234567890abcdef1234567890abcdef"
	otherKey  = "fedcba0987654321fedcba0987654321fedcba0987654321fedcba0987654321"
)

func signedPost(t *testing.T, handle, key string) types.Post {
	t.Helper()
	token, err := cryptography.SignHandle(handle, key)
	require.NoError(t, err)
	return types.Post{
		ID:           "1324801485453119488",
		AuthorHandle: handle,
		Text:         "hello world Signature:" + token,
	}
}

func addressOf(t *testing.T, key string) string {
	t.Helper()
	addr, err := cryptography.AddressFromPrivateKey(key)
	require.NoError(t, err)
	return addr.Hex()
}

func TestVerifyPost_ClaimMatchesSigner_ReturnsVerified(t *testing.T) {
	verifier := NewVerifier(NewParser(""))
	claim, err := ParseClaim(strings.ToLower(addressOf(t, signerKey)))
	require.NoError(t, err)

	result, err := verifier.VerifyPost(signedPost(t, "alice", signerKey), claim)

	require.NoError(t, err)
	assert.Equal(t, "alice", result.Handle)
	assert.Equal(t, addressOf(t, signerKey), result.ChecksumAddress())
	assert.Equal(t, "1324801485453119488", result.PostID)
}

func TestVerifyPost_NoClaim_AcceptsAnySigner(t *testing.T) {
	verifier := NewVerifier(NewParser(""))

	result, err := verifier.VerifyPost(signedPost(t, "alice", otherKey), Claim{})

	require.NoError(t, err)
	assert.Equal(t, addressOf(t, otherKey), result.ChecksumAddress())
}

func TestVerifyPost_ClaimDiffersFromSigner_ReturnsSignerMismatch(t *testing.T) {
	verifier := NewVerifier(NewParser(""))
	claim, err := ParseClaim(addressOf(t, otherKey))
	require.NoError(t, err)

	result, err := verifier.VerifyPost(signedPost(t, "alice", signerKey), claim)

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrSignerMismatch))
	rejection, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, StageCompare, rejection.Stage)
	assert.Contains(t, rejection.Detail, addressOf(t, signerKey))
}

func TestVerifyPost_NoMarker_ReturnsNoSignatureFound(t *testing.T) {
	verifier := NewVerifier(NewParser(""))
	post := types.Post{ID: "1", AuthorHandle: "alice", Text: "just vibes, no signature here"}

	_, err := verifier.VerifyPost(post, Claim{})

	assert.ErrorIs(t, err, ErrNoSignatureFound)
}

func TestVerifyPost_GarbageToken_ReturnsMalformedSignature(t *testing.T) {
	verifier := NewVerifier(NewParser(""))
	post := types.Post{
		ID:           "1",
		AuthorHandle: "alice",
		Text:         "Signature:" + strings.Repeat("q", cryptography.SignatureTokenLength),
	}

	_, err := verifier.VerifyPost(post, Claim{})

	assert.ErrorIs(t, err, ErrMalformedSignature)
	assert.ErrorIs(t, err, cryptography.ErrInvalidSignature)
}

func TestVerifyPost_TokenForOtherHandle_RejectsClaim(t *testing.T) {
	verifier := NewVerifier(NewParser(""))
	post := signedPost(t, "alice", signerKey)
	post.AuthorHandle = "mallory"
	claim, err := ParseClaim(addressOf(t, signerKey))
	require.NoError(t, err)

	_, err = verifier.VerifyPost(post, claim)

	require.Error(t, err)
	rejection, ok := AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, ReasonSignerMismatch, rejection.Reason)
	assert.Equal(t, StageCompare, rejection.Stage)
}

func TestVerifyPost_EmptyHandle_ReturnsMalformedSignature(t *testing.T) {
	verifier := NewVerifier(NewParser(""))
	post := signedPost(t, "alice", signerKey)
	post.AuthorHandle = ""

	_, err := verifier.VerifyPost(post, Claim{})

	assert.ErrorIs(t, err, ErrMalformedSignature)
	assert.ErrorIs(t, err, cryptography.ErrEmptyHandle)
}

func TestParseClaim(t *testing.T) {
	claim, err := ParseClaim("")
	require.NoError(t, err)
	assert.False(t, claim.Present())

	for _, bad := range []string{"0x123", "not-an-address", "0x" + strings.Repeat("z", 40)} {
		_, err := ParseClaim(bad)
		assert.ErrorIs(t, err, ErrInvalidAddressFormat, bad)
	}
}

func TestParseClaim_BadChecksum_ReturnsInvalidAddressFormat(t *testing.T) {
	_, err := ParseClaim("0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	assert.ErrorIs(t, err, ErrInvalidAddressFormat)
	assert.ErrorIs(t, err, cryptography.ErrBadChecksum)

	claim, err := ParseClaim("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)
	assert.True(t, claim.Present())
}

func TestRejection_IsMatchesOnReasonOnly(t *testing.T) {
	err := NewPersistenceFailure("write conflict", errors.New("boom"))

	assert.ErrorIs(t, err, ErrPersistenceFailure)
	assert.NotErrorIs(t, err, ErrSignerMismatch)
	assert.Equal(t, "persistence-failure at persist: write conflict: boom", err.Error())
}
