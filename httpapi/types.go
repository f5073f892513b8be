package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// GenericErrorMessage is returned for every failure of /sign and /verify.
// The spelling is part of the wire contract.
const GenericErrorMessage = "An internal error occured"

// SignRequest is the JSON request for /sign
type SignRequest struct {
	Data *string `json:"data"`
}

// SignResponse is the JSON response for /sign
type SignResponse struct {
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

// VerifyRequest is the JSON request for /verify
type VerifyRequest struct {
	Data      *string `json:"data"`
	Signature *string `json:"signature"`
}

// VerifyResponse is the JSON response for /verify
type VerifyResponse struct {
	Verify bool `json:"verify"`
}

// ErrorResponse is the JSON error response
type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	requestLogger(r).Error("request error", "status", status, "message", message)
	writeJSON(w, status, ErrorResponse{Message: message})
}
