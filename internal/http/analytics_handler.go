package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
)

type analyticsService interface {
	GetAnalytics(ctx context.Context, term application.Term) (application.Analytics, error)
}

type AnalyticsHandler struct {
	service   analyticsService
	responder responder
	logger    *slog.Logger
}

func NewAnalyticsHandler(service analyticsService, logger *slog.Logger) *AnalyticsHandler {
	base := defaultLogger(logger)
	return &AnalyticsHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	term, err := parseTermQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	analytics, err := h.service.GetAnalytics(r.Context(), term)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "AnalyticsHandler", "Get").
			ErrorContext(r.Context(), "failed to compute analytics", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, analytics)
}
