package handler

import (
	"log/slog"
	"net/http"

	"rentalhub-storefront-api/internal/metrics"
	"rentalhub-storefront-api/internal/model"
	"rentalhub-storefront-api/internal/seo"
	"rentalhub-storefront-api/internal/service"
	"rentalhub-storefront-api/pkg/apierror"
	"rentalhub-storefront-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// PageResponse is everything a renderer needs for one storefront page.
type PageResponse struct {
	Home     bool          `json:"home,omitempty"`
	Intent   *model.Intent `json:"intent,omitempty"`
	Metadata seo.Metadata  `json:"metadata"`
	Listing  model.Listing `json:"listing"`
}

// PageHandler resolves storefront paths into page content.
type PageHandler struct {
	resolver *seo.Resolver
	meta     *seo.MetadataBuilder
	svc      *service.InventoryService
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewPageHandler creates a new page handler.
func NewPageHandler(resolver *seo.Resolver, meta *seo.MetadataBuilder, svc *service.InventoryService, m *metrics.Metrics, log *slog.Logger) *PageHandler {
	return &PageHandler{
		resolver: resolver,
		meta:     meta,
		svc:      svc,
		metrics:  m,
		log:      log.With("component", "page_handler"),
	}
}

// Resolve handles GET /api/v1/pages/*
//
// Legacy shapes answer 301 with the canonical storefront path in Location;
// unknown shapes answer 404.
func (h *PageHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	intent := h.resolver.ResolvePath(chi.URLParam(r, "*"))

	if intent.IsNotFound() && intent.Path == "" {
		h.home(w, r, intent.Locale)
		return
	}
	h.metrics.Intent(string(intent.Kind))

	switch {
	case intent.IsNotFound():
		response.Error(w, apierror.NotFound("page not found"))
		return
	case intent.IsRedirect():
		response.Redirect(w, r, intent.RedirectPath)
		return
	}

	listing, err := h.svc.Listing(r.Context(), intent)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	response.OK(w, PageResponse{
		Intent:   &intent,
		Metadata: h.meta.Build(intent, intent.Locale),
		Listing:  listing,
	})
}

func (h *PageHandler) home(w http.ResponseWriter, r *http.Request, locale string) {
	h.metrics.Intent("home")

	listing, err := h.svc.Home(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	response.OK(w, PageResponse{
		Home:     true,
		Metadata: h.meta.Home(locale),
		Listing:  listing,
	})
}
