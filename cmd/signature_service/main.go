package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LdDl/rsa-signer/httpapi"
	"github.com/LdDl/rsa-signer/keystore"
	"github.com/LdDl/rsa-signer/signature"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment wins over it
	envErr := godotenv.Load()

	keys := keystore.ConfigFromEnv()

	var host string
	var port int
	var logLevel string
	flag.StringVar(&host, "host", "0.0.0.0", "HTTP server host")
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&keys.PrivateKeyPath, "private-key", keys.PrivateKeyPath, "Path to PEM private key (env "+keystore.EnvPrivateKeyPath+")")
	flag.StringVar(&keys.PublicKeyPath, "public-key", keys.PublicKeyPath, "Path to PEM public key (env "+keystore.EnvPublicKeyPath+")")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	slog.SetDefault(newLogger(logLevel))
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	// Keys are read per request, so a missing file is only a warning at start
	for _, path := range []string{keys.PrivateKeyPath, keys.PublicKeyPath} {
		if _, err := os.Stat(path); err != nil {
			slog.Warn("key file not accessible", "path", path, "error", err)
		}
	}

	svc := signature.NewService(keystore.New(keys))
	handler := httpapi.NewHandler(svc)

	addr := fmt.Sprintf("%s:%d", host, port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("failed to listen", "addr", addr, "error", err)
		os.Exit(1)
	}

	slog.Info("starting server",
		"host", host,
		"port", port,
		"private_key_path", keys.PrivateKeyPath,
		"public_key_path", keys.PublicKeyPath,
	)
	if err := serve(ctx, server, ln, shutdownTimeout); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// serve blocks until ctx is done and every in-flight request has finished
// or the grace period has expired.
func serve(ctx context.Context, server *http.Server, ln net.Listener, grace time.Duration) error {
	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		done <- server.Shutdown(shutdownCtx)
	}()

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	}))
}
