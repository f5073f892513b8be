package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/LdDl/rsa-signer/keystore"
	"github.com/LdDl/rsa-signer/signature"
	"github.com/google/uuid"
)

const tmLayout = "2006.01.02 15:04:05 -0700"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Generate keys first via `keygen` CLI
	cfg := keystore.ConfigFromEnv()
	svc := signature.NewService(keystore.New(cfg))

	message := time.Now().UTC().Format(tmLayout) + uuid.New().String()
	slog.Info("message prepared", "message", message)

	res, err := svc.Sign(message)
	if err != nil {
		slog.Error("failed to sign", "kind", signature.Kind(err), "error", err)
		os.Exit(1)
	}
	slog.Info("signature created",
		"base64_chars", len(res.Signature),
		"signature", res.Signature,
	)

	ok, err := svc.Verify(message, res.Signature)
	if err != nil {
		slog.Error("failed to verify", "kind", signature.Kind(err), "error", err)
		os.Exit(1)
	}
	slog.Info("signature verified", "verify", ok)

	ok, err = svc.Verify(message+"x", res.Signature)
	if err != nil {
		slog.Error("failed to verify", "kind", signature.Kind(err), "error", err)
		os.Exit(1)
	}
	slog.Info("tampered message verified", "verify", ok)
}
