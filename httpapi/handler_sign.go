package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/LdDl/rsa-signer/signature"
	"github.com/pkg/errors"
)

// HandleSign Sign a message with the configured private key
// @Summary Sign message
// @Description Signs the SHA-256 digest of data with RSA PKCS#1 v1.5 and returns the base64 signature
// @Tags Signing
// @Accept json
// @Produce json
// @Param request body httpapi.SignRequest true "Message to sign"
// @Success 200 {object} httpapi.SignResponse
// @Failure 405 {object} codes.Error405
// @Failure 500 {object} codes.Error500
// @Router /sign [POST]
func (h *Handler) HandleSign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req SignRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Data == nil {
		h.fail(w, r, errors.Wrap(signature.ErrInvalidInput, "data is required"))
		return
	}

	res, err := h.svc.Sign(*req.Data)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	requestLogger(r).Info("message signed",
		"message_len", len(res.Data),
		"signature_len", len(res.Signature),
	)

	writeJSON(w, http.StatusOK, SignResponse{
		Data:      res.Data,
		Signature: res.Signature,
	})
}

// decodeBody parses a JSON body; any shape or type mismatch is invalid input
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(signature.ErrInvalidInput, "failed to parse JSON: "+err.Error())
	}
	return nil
}
