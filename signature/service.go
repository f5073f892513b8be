// Package signature signs and verifies messages with RSA PKCS#1 v1.5 over SHA-256
package signature

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sentinel errors
var (
	ErrInvalidInput       = fmt.Errorf("invalid input: must be a non-empty string")
	ErrKeyLoad            = fmt.Errorf("failed to load key")
	ErrSigning            = fmt.Errorf("failed to sign")
	ErrMalformedSignature = fmt.Errorf("malformed signature")
	ErrVerification       = fmt.Errorf("failed to verify")
)

// KeyStore provides key material. Implementations may re-read keys on every call.
type KeyStore interface {
	PrivateKey() (*rsa.PrivateKey, error)
	PublicKey() (*rsa.PublicKey, error)
}

// SignResult is the outcome of Sign
type SignResult struct {
	Data string
	// Standard base64 of the raw signature
	Signature string
}

// Service signs and verifies messages. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	keys   KeyStore
	signer DigestSigner
}

// NewService creates a service using RSA PKCS#1 v1.5 with SHA-256
func NewService(keys KeyStore) *Service {
	return NewServiceWithSigner(keys, PKCS1v15SHA256{})
}

// NewServiceWithSigner creates a service with a custom primitive
func NewServiceWithSigner(keys KeyStore, signer DigestSigner) *Service {
	return &Service{
		keys:   keys,
		signer: signer,
	}
}

// ValidateMessage rejects messages that are blank after trimming
func ValidateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrInvalidInput
	}
	return nil
}

// Sign signs the SHA-256 digest of message
func (s *Service) Sign(message string) (*SignResult, error) {
	if err := ValidateMessage(message); err != nil {
		return nil, err
	}

	prv, err := s.keys.PrivateKey()
	if err != nil {
		return nil, keyLoadError(err)
	}

	digest := sha256.Sum256([]byte(message))
	rawSig, err := s.signer.SignDigest(prv, digest[:])
	if err != nil {
		return nil, errors.Wrap(ErrSigning, err.Error())
	}

	return &SignResult{
		Data:      message,
		Signature: base64.StdEncoding.EncodeToString(rawSig),
	}, nil
}

// Verify reports whether signatureB64 is a valid signature of message.
// A mismatch, including a signature of the wrong length, is (false, nil);
// an error means verification could not be attempted.
func (s *Service) Verify(message, signatureB64 string) (bool, error) {
	pub, err := s.keys.PublicKey()
	if err != nil {
		return false, keyLoadError(err)
	}

	rawSig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false, errors.Wrap(ErrMalformedSignature, err.Error())
	}

	digest := sha256.Sum256([]byte(message))
	err = s.signer.VerifyDigest(pub, digest[:], rawSig)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, rsa.ErrVerification):
		return false, nil
	default:
		return false, errors.Wrap(ErrVerification, err.Error())
	}
}

// keyLoadError keeps the store's error in the chain next to ErrKeyLoad
func keyLoadError(err error) error {
	return fmt.Errorf("%w: %w", ErrKeyLoad, err)
}

// Kind names the error category for logging
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrKeyLoad):
		return "key_load"
	case errors.Is(err, ErrSigning):
		return "signing"
	case errors.Is(err, ErrMalformedSignature):
		return "malformed_signature"
	case errors.Is(err, ErrVerification):
		return "verification"
	default:
		return "internal"
	}
}
