package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

type venueService interface {
	GetVenue(ctx context.Context, code string) (application.Venue, error)
	GetTimetableView(ctx context.Context, code string, term application.Term) ([]scheduler.DayView, error)
}

type VenueHandler struct {
	service   venueService
	responder responder
	logger    *slog.Logger
}

func NewVenueHandler(service venueService, logger *slog.Logger) *VenueHandler {
	base := defaultLogger(logger)
	return &VenueHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *VenueHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	code := strings.TrimSpace(r.PathValue("code"))
	venue, err := h.service.GetVenue(r.Context(), code)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "VenueHandler", "Get", "venue_code", code).
			ErrorContext(r.Context(), "failed to load venue", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, venueResponse{Venue: venue})
}

// TimetableView shows what is booked into the venue, with double bookings
// flagged as clashes.
func (h *VenueHandler) TimetableView(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	term, err := parseTermQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	code := strings.TrimSpace(r.PathValue("code"))
	view, err := h.service.GetTimetableView(r.Context(), code, term)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "VenueHandler", "TimetableView", "venue_code", code).
			ErrorContext(r.Context(), "failed to build venue view", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, viewResponse{Days: toDayViewDTOs(view, scheduler.AudienceStudent)})
}

type venueResponse struct {
	Venue application.Venue `json:"venue"`
}
