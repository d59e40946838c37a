package http

import (
	"bytes"
	"errors"
	"html"
	"io/fs"
	"net/http"
	"path"

	"go.uber.org/zap"

	"github.com/3-lines-studio/storefront/internal/core"
	"github.com/3-lines-studio/storefront/internal/usecase"
)

type Documents interface {
	RenderNotFound() ([]byte, error)
	RenderError(data core.ErrorData) ([]byte, error)
}

type PageHandlerOptions struct {
	Mode     core.Mode
	Manifest *core.Manifest
	// Site holds the exported output directory; only read in production.
	Site   fs.FS
	Reload *ReloadBroker
	Logger *zap.Logger
}

type PageHandler struct {
	service  *usecase.PageService
	docs     Documents
	mode     core.Mode
	manifest *core.Manifest
	site     fs.FS
	reload   *ReloadBroker
	logger   *zap.Logger
}

func NewPageHandler(service *usecase.PageService, docs Documents, opts PageHandlerOptions) *PageHandler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{
		service:  service,
		docs:     docs,
		mode:     opts.Mode,
		manifest: opts.Manifest,
		site:     opts.Site,
		reload:   opts.Reload,
		logger:   logger,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	output := h.service.ServePage(req.Context(), usecase.ServePageInput{
		Mode:        h.mode,
		Manifest:    h.manifest,
		RequestPath: req.URL.EscapedPath(),
	})

	if output.Error != nil {
		h.serveError(w, req, output.Error)
		return
	}

	switch output.Action {
	case core.ActionServeRouteFile:
		h.serveRouteFile(w, req, output.RoutePath, output.ETag)

	case core.ActionRenderLive:
		h.serveHTML(w, req, output.HTML, output.ETag)

	default:
		h.serveNotFound(w, req)
	}
}

func (h *PageHandler) serveRouteFile(w http.ResponseWriter, req *http.Request, htmlPath, etag string) {
	if h.site == nil {
		h.serveError(w, req, errors.New("no exported site to serve"))
		return
	}

	data, err := fs.ReadFile(h.site, path.Clean(htmlPath))
	if err != nil {
		h.serveError(w, req, err)
		return
	}
	h.serveHTML(w, req, data, etag)
}

func (h *PageHandler) serveHTML(w http.ResponseWriter, req *http.Request, data []byte, etag string) {
	if etag != "" {
		quoted := `"` + etag + `"`
		w.Header().Set("ETag", quoted)
		if req.Header.Get("If-None-Match") == quoted {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.reload.AppendScript(data))
}

// serveNotFound prefers the exported 404 page and falls back to rendering it.
func (h *PageHandler) serveNotFound(w http.ResponseWriter, req *http.Request) {
	var data []byte
	if !h.mode.IsDev() && h.site != nil {
		notFound := core.NotFoundFile
		if h.manifest != nil && h.manifest.NotFound != "" {
			notFound = h.manifest.NotFound
		}
		data, _ = fs.ReadFile(h.site, notFound)
	}
	if data == nil {
		rendered, err := h.docs.RenderNotFound()
		if err != nil {
			http.NotFound(w, req)
			return
		}
		data = rendered
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(h.reload.AppendScript(data))
}

func (h *PageHandler) serveError(w http.ResponseWriter, req *http.Request, err error) {
	h.logger.Error("serve page", zap.String("path", req.URL.Path), zap.Error(err))

	data := core.ErrorData{
		Message: err.Error(),
		IsDev:   h.mode.IsDev(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	body, renderErr := h.docs.RenderError(data)
	if renderErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		var buf bytes.Buffer
		buf.WriteString("<!doctype html><html><body><pre>")
		if data.IsDev {
			buf.WriteString(html.EscapeString(data.Message))
		}
		buf.WriteString("</pre></body></html>")
		_, _ = w.Write(buf.Bytes())
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(h.reload.AppendScript(body))
}
