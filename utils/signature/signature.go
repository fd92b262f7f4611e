// Package signature checks the ed25519 signature Discord attaches to every
// interaction callback.
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
)

// Header names set by Discord on interaction callbacks
const (
	SignatureHeader = "X-Signature-Ed25519"
	TimestampHeader = "X-Signature-Timestamp"
)

var (
	// ErrBadSignatureEncoding is returned when the signature is not 64 hex-encoded bytes
	ErrBadSignatureEncoding = errors.New("bad signature encoding")
	// ErrSignatureInvalid is returned when the signature does not match the message
	ErrSignatureInvalid = errors.New("signature invalid")
	// ErrBadPublicKey is returned when the configured key cannot be decoded
	ErrBadPublicKey = errors.New("bad public key")
)

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap func
func (e *Error) Unwrap() error {
	return e.Err
}

// ParsePublicKey decodes a hex-encoded ed25519 public key
func ParsePublicKey(hexKey string) (ed25519.PublicKey, *Error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, &Error{
			Message: "Public key is not valid hex",
			Err:     fmt.Errorf("%w: %s", ErrBadPublicKey, err.Error()),
		}
	}

	if len(key) != ed25519.PublicKeySize {
		return nil, &Error{
			Message: fmt.Sprintf("Public key must be %d bytes", ed25519.PublicKeySize),
			Err:     fmt.Errorf("%w: got %d bytes", ErrBadPublicKey, len(key)),
		}
	}

	return ed25519.PublicKey(key), nil
}

// Verify checks signature over timestamp || body with key
func Verify(body []byte, signature string, timestamp string, key ed25519.PublicKey) *Error {
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return &Error{
			Message: "Signature is not valid hex",
			Err:     fmt.Errorf("%w: %s", ErrBadSignatureEncoding, err.Error()),
		}
	}

	if len(sig) != ed25519.SignatureSize {
		return &Error{
			Message: fmt.Sprintf("Signature must be %d bytes", ed25519.SignatureSize),
			Err:     fmt.Errorf("%w: got %d bytes", ErrBadSignatureEncoding, len(sig)),
		}
	}

	if len(key) != ed25519.PublicKeySize {
		return &Error{
			Message: "Verification key is not configured",
			Err:     ErrBadPublicKey,
		}
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)

	if !ed25519.Verify(key, msg, sig) {
		return &Error{
			Message: "Unable to verify signature",
			Err:     ErrSignatureInvalid,
		}
	}

	return nil
}
