package store

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

func encodeRecord(record types.AttestationRecord) ([]byte, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attestation: %w", err)
	}
	return raw, nil
}

func decodeRecord(raw []byte) (types.AttestationRecord, error) {
	var record types.AttestationRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return types.AttestationRecord{}, fmt.Errorf("failed to decode attestation: %w", err)
	}
	return record, nil
}

// contentVersion derives a version token from the canonical encoding of a
// record, for backends without a native per-key version.
func contentVersion(record types.AttestationRecord) (string, error) {
	raw, err := encodeRecord(record)
	if err != nil {
		return "", err
	}
	return crypto.Keccak256Hash(raw).Hex(), nil
}
