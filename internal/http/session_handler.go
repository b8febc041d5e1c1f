package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
)

type sessionService interface {
	ListSessions(ctx context.Context) ([]application.AcademicSession, error)
}

type SessionHandler struct {
	service   sessionService
	responder responder
	logger    *slog.Logger
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{service: service, responder: newResponder(base), logger: base}
}

// List returns every academic session, newest first.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		handlerLogger(r.Context(), h.logger, "SessionHandler", "List").
			ErrorContext(r.Context(), "failed to list sessions", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		dtos = append(dtos, toSessionDTO(s))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{Sessions: dtos})
}

type listSessionsResponse struct {
	Sessions []sessionDTO `json:"sessions"`
}
