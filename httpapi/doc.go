// Package httpapi provides HTTP handlers for RSA signing and verification.
//
// @title RSA Signer API
// @version 1.0
// @description HTTP API for signing messages with an RSA private key and verifying signatures with the matching public key.
// @description
// @description Supports:
// @description - RSASSA-PKCS1-v1_5 signatures
// @description - SHA-256 digest
// @description - PEM keys (PKCS#1, PKCS#8, PKIX)
//
// @contact.name API Support
// @contact.url https://github.com/LdDl/rsa-signer
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /
// @schemes http https
//
// @tag.name Health
// @tag.description Health check endpoints
//
// @tag.name Signing
// @tag.description Sign and verify messages with RSA
package httpapi
