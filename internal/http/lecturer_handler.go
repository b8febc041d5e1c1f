package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/calendar"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

type lecturerService interface {
	GetTimetable(ctx context.Context, workerNo int64, term application.Term) ([]application.TimetableEntry, error)
	GetTimetableView(ctx context.Context, workerNo int64, term application.Term) ([]scheduler.DayView, error)
	GetClashes(ctx context.Context, workerNo int64, term application.Term) ([]scheduler.ClashPair, error)
	Search(ctx context.Context, params application.SearchParams) ([]application.Lecturer, error)
}

type lecturerCalendar interface {
	ExportLecturerTimetable(ctx context.Context, workerNo int64, term application.Term) ([]byte, error)
}

type LecturerHandler struct {
	service   lecturerService
	calendar  lecturerCalendar
	responder responder
	logger    *slog.Logger
}

func NewLecturerHandler(service lecturerService, calendar lecturerCalendar, logger *slog.Logger) *LecturerHandler {
	base := defaultLogger(logger)
	return &LecturerHandler{service: service, calendar: calendar, responder: newResponder(base), logger: base}
}

func (h *LecturerHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "LecturerHandler", operation, attrs...)
}

func (h *LecturerHandler) Timetable(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	workerNo, term, err := parseLecturerQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	entries, err := h.service.GetTimetable(r.Context(), workerNo, term)
	if err != nil {
		h.log(r.Context(), "Timetable", "worker_no", workerNo).
			ErrorContext(r.Context(), "failed to load timetable", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, timetableResponse{Timetable: entries})
}

func (h *LecturerHandler) TimetableView(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	workerNo, term, err := parseLecturerQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	view, err := h.service.GetTimetableView(r.Context(), workerNo, term)
	if err != nil {
		h.log(r.Context(), "TimetableView", "worker_no", workerNo).
			ErrorContext(r.Context(), "failed to build timetable view", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, viewResponse{Days: toDayViewDTOs(view, scheduler.AudienceLecturer)})
}

func (h *LecturerHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.calendar == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	workerNo, term, err := parseLecturerQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	doc, err := h.calendar.ExportLecturerTimetable(r.Context(), workerNo, term)
	if err != nil {
		h.log(r.Context(), "Calendar", "worker_no", workerNo).
			ErrorContext(r.Context(), "failed to export calendar", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="timetable.ics"`)
	h.responder.writeBytes(w, http.StatusOK, calendar.ContentType, doc)
}

// Clashes lists pairs of the lecturer's classes that overlap.
func (h *LecturerHandler) Clashes(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	workerNo, term, err := parseLecturerQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	pairs, err := h.service.GetClashes(r.Context(), workerNo, term)
	if err != nil {
		h.log(r.Context(), "Clashes", "worker_no", workerNo).
			ErrorContext(r.Context(), "failed to detect clashes", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clashesResponse{Clashes: pairs})
}

func (h *LecturerHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	lecturers, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.log(r.Context(), "Search").
			ErrorContext(r.Context(), "lecturer search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, lecturerSearchResponse{Lecturers: lecturers})
}

type clashesResponse struct {
	Clashes []scheduler.ClashPair `json:"clashes"`
}

type lecturerSearchResponse struct {
	Lecturers []application.Lecturer `json:"lecturers"`
}
