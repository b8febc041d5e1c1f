package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/logging"
)

const (
	msgBadRequestBody      = "Invalid request body."
	msgMissingSessionToken = "Unauthorized"
	msgInternalError       = "Internal server error"
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	return responder{logger: defaultLogger(logger)}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeBytes(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	r.writeJSON(ctx, w, status, errorResponse{Error: message})
}

// handleServiceError renders err using the status and message of its
// application.Failure. Anything else is an opaque 500.
func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	failure := application.AsFailure(err, "")
	if failure == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, msgInternalError)
		return
	}
	r.writeError(ctx, w, failure.Status, failure.Message)
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, r.logger)
}

type errorResponse struct {
	Error string `json:"error"`
}
