package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/calendar"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

type studentService interface {
	GetTimetable(ctx context.Context, matricNo string, term application.Term) ([]application.TimetableEntry, error)
	GetTimetableView(ctx context.Context, matricNo string, term application.Term) ([]scheduler.DayView, error)
	Search(ctx context.Context, params application.SearchParams) ([]application.Student, error)
}

type studentCalendar interface {
	ExportStudentTimetable(ctx context.Context, matricNo string, term application.Term) ([]byte, error)
}

type StudentHandler struct {
	service   studentService
	calendar  studentCalendar
	responder responder
	logger    *slog.Logger
}

func NewStudentHandler(service studentService, calendar studentCalendar, logger *slog.Logger) *StudentHandler {
	base := defaultLogger(logger)
	return &StudentHandler{service: service, calendar: calendar, responder: newResponder(base), logger: base}
}

func (h *StudentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "StudentHandler", operation, attrs...)
}

// Timetable returns the raw timetable rows of a student.
func (h *StudentHandler) Timetable(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	matricNo, term, err := parseStudentQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	entries, err := h.service.GetTimetable(r.Context(), matricNo, term)
	if err != nil {
		h.log(r.Context(), "Timetable", "matric_no", matricNo).
			ErrorContext(r.Context(), "failed to load timetable", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, timetableResponse{Timetable: entries})
}

// TimetableView returns the per-day presentation of a student's timetable.
func (h *StudentHandler) TimetableView(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	matricNo, term, err := parseStudentQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	view, err := h.service.GetTimetableView(r.Context(), matricNo, term)
	if err != nil {
		h.log(r.Context(), "TimetableView", "matric_no", matricNo).
			ErrorContext(r.Context(), "failed to build timetable view", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, viewResponse{Days: toDayViewDTOs(view, scheduler.AudienceStudent)})
}

// Calendar downloads the student's timetable as an iCalendar file.
func (h *StudentHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.calendar == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	matricNo, term, err := parseStudentQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	doc, err := h.calendar.ExportStudentTimetable(r.Context(), matricNo, term)
	if err != nil {
		h.log(r.Context(), "Calendar", "matric_no", matricNo).
			ErrorContext(r.Context(), "failed to export calendar", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="timetable.ics"`)
	h.responder.writeBytes(w, http.StatusOK, calendar.ContentType, doc)
}

// Search finds students registered in a term.
func (h *StudentHandler) Search(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	students, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.log(r.Context(), "Search").
			ErrorContext(r.Context(), "student search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, studentSearchResponse{Students: students})
}

type studentSearchResponse struct {
	Students []application.Student `json:"students"`
}
