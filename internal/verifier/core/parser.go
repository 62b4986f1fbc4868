package core

import (
	"strings"

	"github.com/trigg3rX/sybil-verifier/pkg/cryptography"
)

// DefaultMarker precedes the signature token in a post.
const DefaultMarker = "Signature:"

// Parser extracts the signature token that follows a fixed marker.
//
// Only the leftmost marker is considered. The token is the SignatureTokenLength
// bytes right after it; anything beyond is ignored and a shorter span yields
// no token. The span is returned verbatim, so whitespace or non-hex content
// inside it surfaces later as a malformed signature.
type Parser struct {
	marker string
}

func NewParser(marker string) Parser {
	if marker == "" {
		marker = DefaultMarker
	}
	return Parser{marker: marker}
}

func (p Parser) Marker() string {
	return p.marker
}

func (p Parser) Extract(text string) (string, bool) {
	return ExtractSignatureWithMarker(text, p.marker)
}

// ExtractSignature uses DefaultMarker.
func ExtractSignature(text string) (string, bool) {
	return ExtractSignatureWithMarker(text, DefaultMarker)
}

func ExtractSignatureWithMarker(text, marker string) (string, bool) {
	if marker == "" {
		return "", false
	}
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "", false
	}
	span := text[idx+len(marker):]
	if len(span) < cryptography.SignatureTokenLength {
		return "", false
	}
	return span[:cryptography.SignatureTokenLength], true
}
