package httpapi

import (
	"net/http"

	"github.com/LdDl/rsa-signer/signature"
	"github.com/pkg/errors"
)

// HandleVerify Verify a signature with the configured public key
// @Summary Verify signature
// @Description Checks a base64 RSA PKCS#1 v1.5 signature over the SHA-256 digest of data. A mismatch returns verify=false
// @Tags Signing
// @Accept json
// @Produce json
// @Param request body httpapi.VerifyRequest true "Message and signature"
// @Success 200 {object} httpapi.VerifyResponse
// @Failure 405 {object} codes.Error405
// @Failure 500 {object} codes.Error500
// @Router /verify [POST]
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req VerifyRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Data == nil {
		h.fail(w, r, errors.Wrap(signature.ErrInvalidInput, "data is required"))
		return
	}
	if req.Signature == nil {
		h.fail(w, r, errors.Wrap(signature.ErrInvalidInput, "signature is required"))
		return
	}

	ok, err := h.svc.Verify(*req.Data, *req.Signature)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	requestLogger(r).Info("signature verified",
		"message_len", len(*req.Data),
		"verify", ok,
	)

	writeJSON(w, http.StatusOK, VerifyResponse{Verify: ok})
}
