package keystore

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// MinKeyBits is the smallest modulus GenerateKeyPair accepts
const MinKeyBits = 2048

// ErrKeyExists is returned by WriteKeyPair when a target file exists and overwrite is off
var ErrKeyExists = fmt.Errorf("key file already exists")

// GenerateKeyPair creates a new RSA private key of the given size
func GenerateKeyPair(bits int) (*rsa.PrivateKey, error) {
	if bits < MinKeyBits {
		return nil, errors.Errorf("key size %d is below minimum %d", bits, MinKeyBits)
	}
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate RSA key")
	}
	return key, nil
}

// WriteKeyPair stores the private key as PKCS#8 PEM (0600) and its public half
// as PKIX PEM (0644) at the configured paths.
func WriteKeyPair(cfg Config, key *rsa.PrivateKey, overwrite bool) error {
	if !overwrite {
		for _, path := range []string{cfg.PrivateKeyPath, cfg.PublicKeyPath} {
			if _, err := os.Stat(path); err == nil {
				return errors.Wrapf(ErrKeyExists, "path %s", path)
			}
		}
	}

	prvDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return errors.Wrap(err, "failed to marshal private key")
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return errors.Wrap(err, "failed to marshal public key")
	}

	if err := writePEM(cfg.PrivateKeyPath, "PRIVATE KEY", prvDER, 0600); err != nil {
		return err
	}
	return writePEM(cfg.PublicKeyPath, "PUBLIC KEY", pubDER, 0644)
}

func writePEM(path, blockType string, der []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "failed to create key directory")
	}
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
	if err := os.WriteFile(path, data, mode); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
