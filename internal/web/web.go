// Package web はLeviProofの埋め込みページ（intake / dossier view）を提供する。
// ページは単一バイナリに埋め込まれ、外部アセットに依存しない。
package web

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*.css
var staticFS embed.FS

// Handler は埋め込みページを提供するHTTPハンドラー。
type Handler struct {
	templates *template.Template
	static    http.Handler
	logger    *slog.Logger
}

// NewHandler は埋め込みテンプレートをパースしてHandlerを返す。
func NewHandler(logger *slog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ページテンプレートのパースに失敗: %w", err)
	}

	return &Handler{
		templates: tmpl,
		static:    http.FileServer(http.FS(staticFS)),
		logger:    logger,
	}, nil
}

// ServeHTTP はパスに応じてintakeページ・dossierページ・静的アセットを振り分ける。
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/":
		h.renderPage(w, "intake.html", nil)
	case strings.HasPrefix(r.URL.Path, "/d/"):
		h.serveDossierPage(w, r)
	case strings.HasPrefix(r.URL.Path, "/static/"):
		h.static.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}

// dossierPageData はdossierページテンプレートに渡すデータ。
type dossierPageData struct {
	DossierID string
}

func (h *Handler) serveDossierPage(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/d/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	h.renderPage(w, "dossier.html", dossierPageData{DossierID: id})
}

func (h *Handler) renderPage(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		if h.logger != nil {
			h.logger.Error("page render failed",
				slog.String("template", name),
				slog.String("error", err.Error()),
			)
		}
	}
}
