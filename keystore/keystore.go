// Package keystore loads RSA key material from PEM files on disk.
package keystore

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Environment variables and their defaults
const (
	EnvPrivateKeyPath = "PRIVATE_KEY_PATH"
	EnvPublicKeyPath  = "PUBLIC_KEY_PATH"

	DefaultPrivateKeyPath = "./public/certificates/private_key.pem"
	DefaultPublicKeyPath  = "./public/certificates/public_key.pem"
)

// Sentinel errors
var (
	ErrKeyFileRead = fmt.Errorf("failed to read key file")
	ErrNoPEMBlock  = fmt.Errorf("no PEM block found")
	ErrNotRSAKey   = fmt.Errorf("key is not an RSA key")
)

// Config holds key file locations. It is set once at start and never mutated.
type Config struct {
	PrivateKeyPath string
	PublicKeyPath  string
}

// ConfigFromEnv reads key paths from the environment, falling back to defaults
func ConfigFromEnv() Config {
	return Config{
		PrivateKeyPath: envOr(EnvPrivateKeyPath, DefaultPrivateKeyPath),
		PublicKeyPath:  envOr(EnvPublicKeyPath, DefaultPublicKeyPath),
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// Store reads keys from the configured paths. Files are re-read on every call,
// so a rotated key on disk is picked up by the next request.
type Store struct {
	cfg Config
}

// New creates a key store for the given config
func New(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Config returns the paths the store reads from
func (s *Store) Config() Config {
	return s.cfg
}

// PrivateKey reads and parses the private key (PKCS#1 or PKCS#8)
func (s *Store) PrivateKey() (*rsa.PrivateKey, error) {
	data, err := readPEM(s.cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, classifyParseError(err, s.cfg.PrivateKeyPath)
	}
	return key, nil
}

// PublicKey reads and parses the public key (PKIX, PKCS#1 or certificate)
func (s *Store) PublicKey() (*rsa.PublicKey, error) {
	data, err := readPEM(s.cfg.PublicKeyPath)
	if err != nil {
		return nil, err
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, classifyParseError(err, s.cfg.PublicKeyPath)
	}
	return key, nil
}

func readPEM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrKeyFileRead, "path %s: %v", path, err)
	}
	return data, nil
}

func classifyParseError(err error, path string) error {
	switch {
	case errors.Is(err, jwt.ErrKeyMustBePEMEncoded):
		return errors.Wrapf(ErrNoPEMBlock, "path %s", path)
	case errors.Is(err, jwt.ErrNotRSAPrivateKey), errors.Is(err, jwt.ErrNotRSAPublicKey):
		return errors.Wrapf(ErrNotRSAKey, "path %s", path)
	default:
		return errors.Wrapf(err, "failed to parse key at %s", path)
	}
}
