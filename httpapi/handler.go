package httpapi

import (
	"net/http"

	"github.com/LdDl/rsa-signer/signature"
)

const maxBodySize = 1 << 20 // 1 MB

// Handler serves the signing API on top of a signature.Service
type Handler struct {
	svc *signature.Service
}

// NewHandler creates API handlers bound to svc
func NewHandler(svc *signature.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers every endpoint and wraps them with request ID and recovery middleware
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sign", h.HandleSign)
	mux.HandleFunc("/verify", h.HandleVerify)
	mux.HandleFunc("/health", HandleHealth)
	mux.HandleFunc("/docs", HandleDocsUI)
	mux.HandleFunc("/docs/swagger.json", HandleDocsJSON)
	mux.HandleFunc("/", HandleIndex)
	return withRequestID(withRecover(mux))
}

// fail logs the full error and answers with the generic 500 body
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestLogger(r).Error("request failed",
		"kind", signature.Kind(err),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: GenericErrorMessage})
}
