package server

import (
	"embed"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed web
var assets embed.FS

// handleAsset serves the embedded web UI. Unknown paths fall back to
// index.html so the UI's client-side routing works.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" {
		name = "index.html"
	}

	data, err := assets.ReadFile("web/" + name)
	if err != nil {
		name = "index.html"
		data, err = assets.ReadFile("web/" + name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
	}

	ctype := mime.TypeByExtension(path.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}
