package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"rentalhub-storefront-api/internal/repository"
	"rentalhub-storefront-api/internal/service"
	"rentalhub-storefront-api/pkg/apierror"
	"rentalhub-storefront-api/pkg/logger"
	"rentalhub-storefront-api/pkg/response"
)

// writeError maps service and repository errors onto API errors.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if apiErr, ok := apierror.As(err); ok {
		response.Error(w, apiErr)
		return
	}

	l := logger.FromContext(r.Context(), log)
	switch {
	case repository.IsConfigurationError(err):
		l.Error("inventory index not configured", slog.String("error", err.Error()))
		response.Error(w, apierror.Misconfigured("inventory search is not configured"))
	case errors.Is(err, service.ErrNoMatch):
		response.Error(w, apierror.NotFound("no matching equipment found"))
	default:
		l.Error("request failed", slog.String("error", err.Error()))
		response.Error(w, apierror.InternalError(""))
	}
}
