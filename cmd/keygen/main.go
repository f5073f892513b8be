package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/LdDl/rsa-signer/keystore"
	"github.com/joho/godotenv"
	"golang.org/x/term"
)

func main() {
	_ = godotenv.Load()
	cfg := keystore.ConfigFromEnv()

	var bits int
	var force bool
	flag.IntVar(&bits, "bits", 2048, "RSA modulus size in bits")
	flag.StringVar(&cfg.PrivateKeyPath, "private-key", cfg.PrivateKeyPath, "Output path for PEM private key")
	flag.StringVar(&cfg.PublicKeyPath, "public-key", cfg.PublicKeyPath, "Output path for PEM public key")
	flag.BoolVar(&force, "force", false, "Overwrite existing key files")
	flag.BoolVar(&force, "f", false, "Overwrite existing key files (shorthand)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if !force && anyExists(cfg.PrivateKeyPath, cfg.PublicKeyPath) {
		if !term.IsTerminal(int(syscall.Stdin)) {
			slog.Error("key files already exist, use -force to overwrite",
				"private_key_path", cfg.PrivateKeyPath,
				"public_key_path", cfg.PublicKeyPath,
			)
			os.Exit(1)
		}
		fmt.Printf("Key files already exist at %s / %s. Overwrite? [y/N]: ", cfg.PrivateKeyPath, cfg.PublicKeyPath)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			slog.Info("aborted")
			os.Exit(1)
		}
		force = true
	}

	key, err := keystore.GenerateKeyPair(bits)
	if err != nil {
		slog.Error("failed to generate key", "error", err)
		os.Exit(1)
	}

	if err := keystore.WriteKeyPair(cfg, key, force); err != nil {
		slog.Error("failed to write key pair", "error", err)
		os.Exit(1)
	}

	slog.Info("key pair written",
		"bits", bits,
		"private_key_path", cfg.PrivateKeyPath,
		"public_key_path", cfg.PublicKeyPath,
	)
}

func anyExists(paths ...string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}
