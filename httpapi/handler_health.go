package httpapi

import (
	"net/http"

	"github.com/LdDl/rsa-signer/httpapi/codes"
)

// HandleHealth reports liveness. Keys are not checked: they are read per request.
// @Summary Health check
// @Description Returns service health status
// @Tags Health
// @Produce json
// @Success 200 {object} codes.Success200
// @Router /health [GET]
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, codes.Success200{Status: "ok"})
}
