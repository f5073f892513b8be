package httpapi

import (
	"embed"
	"net/http"
)

//go:embed docs/swagger.json docs/index.html
var docsFS embed.FS

// HandleDocsUI RapiDoc UI endpoint
func HandleDocsUI(w http.ResponseWriter, r *http.Request) {
	serveEmbedded(w, r, "docs/index.html", "text/html; charset=utf-8")
}

// HandleDocsJSON Swagger JSON endpoint
func HandleDocsJSON(w http.ResponseWriter, r *http.Request) {
	serveEmbedded(w, r, "docs/swagger.json", "application/json")
}

func serveEmbedded(w http.ResponseWriter, r *http.Request, name, contentType string) {
	data, err := docsFS.ReadFile(name)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, name+" not found")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
