package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
)

// DigestSigner is the RSA primitive the Service delegates to
type DigestSigner interface {
	SignDigest(key *rsa.PrivateKey, digest []byte) ([]byte, error)
	VerifyDigest(key *rsa.PublicKey, digest, sig []byte) error
}

// PKCS1v15SHA256 signs SHA-256 digests with RSASSA-PKCS1-v1_5
type PKCS1v15SHA256 struct{}

// SignDigest signs a precomputed SHA-256 digest
func (PKCS1v15SHA256) SignDigest(key *rsa.PrivateKey, digest []byte) ([]byte, error) {
	return rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest)
}

// VerifyDigest returns rsa.ErrVerification when the signature does not match
func (PKCS1v15SHA256) VerifyDigest(key *rsa.PublicKey, digest, sig []byte) error {
	return rsa.VerifyPKCS1v15(key, crypto.SHA256, digest, sig)
}
