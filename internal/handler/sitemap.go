package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"rentalhub-storefront-api/internal/sitemap"
	"rentalhub-storefront-api/pkg/apierror"
	"rentalhub-storefront-api/pkg/logger"
	"rentalhub-storefront-api/pkg/response"
)

// SitemapHandler serves the generated sitemap.
type SitemapHandler struct {
	gen     *sitemap.Generator
	baseURL string
	now     func() time.Time
	log     *slog.Logger
}

// NewSitemapHandler creates a new sitemap handler.
func NewSitemapHandler(gen *sitemap.Generator, baseURL string, log *slog.Logger) *SitemapHandler {
	return &SitemapHandler{
		gen:     gen,
		baseURL: baseURL,
		now:     time.Now,
		log:     log.With("component", "sitemap_handler"),
	}
}

// XML handles GET /sitemap.xml
func (h *SitemapHandler) XML(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	doc, err := h.gen.Document(h.baseURL, now)
	if err != nil {
		logger.FromContext(r.Context(), h.log).Error("sitemap generation failed, serving fallback", slog.String("error", err.Error()))
		doc = sitemap.FallbackDocument(h.baseURL, now)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.XML(w, http.StatusOK, doc)
}

// Paths handles GET /api/v1/sitemap/paths
func (h *SitemapHandler) Paths(w http.ResponseWriter, r *http.Request) {
	locales := h.gen.Locales()
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = locales[0]
	}
	if !slices.Contains(locales, locale) {
		response.Error(w, apierror.BadRequest("unsupported locale"))
		return
	}

	entries := h.gen.Entries(locale)
	response.OK(w, map[string]interface{}{
		"locale":  locale,
		"count":   len(entries),
		"entries": entries,
	})
}
