package http

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/3-lines-studio/storefront/internal/core"
)

// PublicHandler serves static assets from files and hands everything else to
// next. HTML documents and the build manifest are never served directly so
// that page routing stays manifest driven.
type PublicHandler struct {
	files fs.FS
	next  http.Handler
}

func NewPublicHandler(files fs.FS, next http.Handler) http.Handler {
	return &PublicHandler{
		files: files,
		next:  next,
	}
}

func (h *PublicHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimPrefix(path.Clean(req.URL.Path), "/")
	if h.files == nil || !servable(name) {
		h.next.ServeHTTP(w, req)
		return
	}

	info, err := fs.Stat(h.files, name)
	if err != nil || info.IsDir() {
		h.next.ServeHTTP(w, req)
		return
	}

	w.Header().Set("Content-Type", core.GetContentType(name))
	http.ServeFileFS(w, req, h.files, name)
}

func servable(name string) bool {
	if name == "" || name == "." || name == core.ManifestFile {
		return false
	}
	return path.Ext(name) != ".html"
}
