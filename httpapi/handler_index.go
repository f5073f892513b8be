package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// HandleIndex renders the landing page. Unknown paths get 404.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, struct{ Title string }{Title: "RSA Signer"}); err != nil {
		writeError(w, r, http.StatusInternalServerError, GenericErrorMessage)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
