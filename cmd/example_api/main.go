package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

const (
	// HTTP API server address
	APIServer = "http://localhost:8080"

	tmLayout = "2006.01.02 15:04:05 -0700"
)

// SignRequest matches /sign request
type SignRequest struct {
	Data string `json:"data"`
}

// SignResponse matches /sign response
type SignResponse struct {
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

// VerifyRequest matches /verify request
type VerifyRequest struct {
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

// VerifyResponse matches /verify response
type VerifyResponse struct {
	Verify bool `json:"verify"`
}

// ErrorResponse matches error response
type ErrorResponse struct {
	Message string `json:"message"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Step 1: Prepare message
	state := uuid.New().String()
	timestamp := time.Now().UTC().Format(tmLayout)
	message := timestamp + state
	slog.Info("message prepared", "message", message)

	// Step 2: Sign message via API
	signResp, err := signMessage(message)
	if err != nil {
		slog.Error("failed to sign message", "error", err)
		os.Exit(1)
	}
	slog.Info("message signed", "signature_base64_len", len(signResp.Signature))

	// Step 3: Verify the signature
	ok, err := verifyMessage(message, signResp.Signature)
	if err != nil {
		slog.Error("failed to verify signature", "error", err)
		os.Exit(1)
	}
	slog.Info("signature verified", "verify", ok)

	// Step 4: Tampered message must not verify
	ok, err = verifyMessage(message+"x", signResp.Signature)
	if err != nil {
		slog.Error("failed to verify tampered message", "error", err)
		os.Exit(1)
	}
	slog.Info("tampered message verified", "verify", ok)
	if ok {
		slog.Error("tampered message accepted")
		os.Exit(1)
	}
}

// signMessage calls /sign
func signMessage(message string) (*SignResponse, error) {
	var result SignResponse
	if err := postJSON("/sign", SignRequest{Data: message}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// verifyMessage calls /verify
func verifyMessage(message, signature string) (bool, error) {
	var result VerifyResponse
	if err := postJSON("/verify", VerifyRequest{Data: message, Signature: signature}, &result); err != nil {
		return false, err
	}
	return result.Verify, nil
}

func postJSON(path string, reqBody interface{}, dst interface{}) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	resp, err := http.Post(APIServer+path, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			return fmt.Errorf("API error (request %s): %s", resp.Header.Get("X-Request-ID"), errResp.Message)
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
