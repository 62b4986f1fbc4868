package core

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/trigg3rX/sybil-verifier/pkg/cryptography"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// Verified is an accepted handle/address pair. Persisted is set once the
// pair has been written to the attestation store.
type Verified struct {
	Handle    string
	Address   common.Address
	PostID    string
	Persisted bool
}

// ChecksumAddress is the EIP-55 form used as the attestation key.
func (v *Verified) ChecksumAddress() string {
	return v.Address.Hex()
}

// Claim is an optional caller-supplied address. The zero Claim means lookup
// mode: any recovered signer is accepted.
type Claim struct {
	address common.Address
	present bool
}

func (c Claim) Present() bool {
	return c.present
}

func (c Claim) Address() common.Address {
	return c.address
}

// ParseClaim validates a claimed address. An empty string yields the zero Claim.
func ParseClaim(claimed string) (Claim, error) {
	if claimed == "" {
		return Claim{}, nil
	}
	addr, err := cryptography.ParseAddress(claimed)
	if err != nil {
		return Claim{}, NewInvalidAddress("", err)
	}
	return Claim{address: addr, present: true}, nil
}

// Verifier runs the pure part of the pipeline: extract, recover, compare.
type Verifier struct {
	parser Parser
}

func NewVerifier(parser Parser) *Verifier {
	return &Verifier{parser: parser}
}

// VerifyPost checks that post carries a signature over its author's handle and,
// when claim is present, that the signer is the claimed address.
func (v *Verifier) VerifyPost(post types.Post, claim Claim) (*Verified, error) {
	token, ok := v.parser.Extract(post.Text)
	if !ok {
		return nil, reject(ReasonNoSignature, StageExtract, "no "+v.parser.Marker()+" token of the expected length", nil)
	}

	signer, err := cryptography.RecoverHandleSigner(post.AuthorHandle, token)
	if err != nil {
		return nil, reject(ReasonMalformedSignature, StageRecover, "", err)
	}

	if claim.Present() && claim.Address() != signer {
		return nil, reject(ReasonSignerMismatch, StageCompare,
			"claimed "+claim.Address().Hex()+", signed by "+signer.Hex(), nil)
	}

	return &Verified{
		Handle:  post.AuthorHandle,
		Address: signer,
		PostID:  post.ID,
	}, nil
}
