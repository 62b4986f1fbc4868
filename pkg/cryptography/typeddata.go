package cryptography

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	DomainName    = "Sybil Verifier"
	DomainVersion = "1"
	PrimaryType   = "Permit"

	// SignatureLength is r (32) + s (32) + v (1).
	SignatureLength = crypto.SignatureLength
	// SignatureTokenLength is the hex wire form: "0x" + 130 hex characters.
	SignatureTokenLength = 2 + 2*SignatureLength
)

var (
	ErrEmptyHandle      = errors.New("handle must not be empty")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrBadChecksum      = errors.New("bad address checksum")
)

// HandlePayload returns the EIP-712 structure a user signs to bind their handle
// to an address. Field order and types must match the signing client exactly.
func HandlePayload(handle string) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
			},
			PrimaryType: {
				{Name: "handle", Type: "string"},
			},
		},
		PrimaryType: PrimaryType,
		Domain: apitypes.TypedDataDomain{
			Name:    DomainName,
			Version: DomainVersion,
		},
		Message: apitypes.TypedDataMessage{
			"handle": handle,
		},
	}
}

// HandleDigest is keccak256("\x19\x01" || domainSeparator || hashStruct(Permit)).
func HandleDigest(handle string) ([]byte, error) {
	if handle == "" {
		return nil, ErrEmptyHandle
	}
	digest, _, err := apitypes.TypedDataAndHash(HandlePayload(handle))
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return digest, nil
}

// DecodeSignature parses a 0x-prefixed 65 byte signature and normalises v to 0/1.
func DecodeSignature(token string) ([]byte, error) {
	if len(token) != SignatureTokenLength {
		return nil, fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidSignature, SignatureTokenLength, len(token))
	}
	sig, err := hexutil.Decode(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, SignatureLength, len(sig))
	}

	switch v := sig[crypto.RecoveryIDOffset]; v {
	case 0, 1:
	case 27, 28:
		sig[crypto.RecoveryIDOffset] = v - 27
	default:
		return nil, fmt.Errorf("%w: invalid recovery id %d", ErrInvalidSignature, v)
	}
	return sig, nil
}

// RecoverHandleSigner returns the address that signed the handle payload.
// The checksummed form is address.Hex().
func RecoverHandleSigner(handle, token string) (common.Address, error) {
	digest, err := HandleDigest(handle)
	if err != nil {
		return common.Address{}, err
	}

	sig, err := DecodeSignature(token)
	if err != nil {
		return common.Address{}, err
	}

	pubKey, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: failed to recover public key: %v", ErrInvalidSignature, err)
	}

	return crypto.PubkeyToAddress(*pubKey), nil
}

// SignHandle produces a signature token for handle in the same format wallets emit
// for eth_signTypedData_v4 (v = 27/28).
func SignHandle(handle string, privateKey string) (string, error) {
	privateKeyECDSA, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return "", fmt.Errorf("invalid private key: %w", err)
	}

	digest, err := HandleDigest(handle)
	if err != nil {
		return "", err
	}

	signature, err := crypto.Sign(digest, privateKeyECDSA)
	if err != nil {
		return "", fmt.Errorf("failed to sign handle: %w", err)
	}
	signature[crypto.RecoveryIDOffset] += 27

	return hexutil.Encode(signature), nil
}

// AddressFromPrivateKey derives the checksummed address for a hex private key.
func AddressFromPrivateKey(privateKey string) (common.Address, error) {
	privateKeyECDSA, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid private key: %w", err)
	}
	return crypto.PubkeyToAddress(privateKeyECDSA.PublicKey), nil
}

// ParseAddress validates a 20 byte hex address with an optional "0x" prefix.
// All-lowercase and all-uppercase hex are accepted as is. Mixed case must carry
// a valid EIP-55 checksum.
func ParseAddress(address string) (common.Address, error) {
	hex := strings.TrimPrefix(address, "0x")
	if len(hex) != 2*common.AddressLength || !common.IsHexAddress(hex) {
		return common.Address{}, fmt.Errorf("invalid address %q: expected 40 hex characters with optional 0x prefix", address)
	}
	addr := common.HexToAddress(hex)
	if strings.ToLower(hex) != hex && strings.ToUpper(hex) != hex && addr.Hex()[2:] != hex {
		return common.Address{}, fmt.Errorf("invalid address %q: %w", address, ErrBadChecksum)
	}
	return addr, nil
}
