package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

const venueNotFound = "Venue not found"

// VenueService serves venue lookups and room timetables.
type VenueService struct {
	venues persistence.VenueRepository
	lunch  scheduler.LunchWindow
	logger *slog.Logger
}

// NewVenueService constructs a VenueService.
func NewVenueService(venues persistence.VenueRepository) *VenueService {
	return NewVenueServiceWithLogger(venues, nil)
}

// NewVenueServiceWithLogger constructs a VenueService with a specified logger.
func NewVenueServiceWithLogger(venues persistence.VenueRepository, logger *slog.Logger) *VenueService {
	return &VenueService{
		venues: venues,
		lunch:  scheduler.DefaultLunchWindow,
		logger: defaultLogger(logger),
	}
}

func (s *VenueService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "VenueService", operation, attrs...)
}

// GetVenue returns the venue with the given code.
func (s *VenueService) GetVenue(ctx context.Context, code string) (venue Venue, err error) {
	if s == nil {
		err = fmt.Errorf("VenueService is nil")
		return
	}

	code = strings.TrimSpace(code)
	logger := s.loggerWith(ctx, "GetVenue", "venue_code", code)
	defer func() {
		err = fail(err, venueNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to get venue", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "venue retrieved")
	}()

	var record persistence.Venue
	if record, err = s.lookup(ctx, code); err != nil {
		return
	}
	venue = toVenue(record)
	return
}

// GetTimetableView returns what is booked in the venue across the week. A
// clash here means two sections share the room at the same time.
func (s *VenueService) GetTimetableView(ctx context.Context, code string, term Term) (view []scheduler.DayView, err error) {
	if s == nil {
		err = fmt.Errorf("VenueService is nil")
		return
	}

	code = strings.TrimSpace(code)
	logger := s.loggerWith(ctx, "GetTimetableView",
		"venue_code", code,
		"session", term.Session,
		"semester", term.Semester,
	)
	defer func() {
		err = fail(err, venueNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to build venue timetable view", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("days", len(view)).InfoContext(ctx, "venue timetable view built")
	}()

	if err = validateTerm(term); err != nil {
		return
	}
	if _, err = s.lookup(ctx, code); err != nil {
		return
	}

	var rows []persistence.TimetableRow
	if rows, err = s.venues.GetTimetable(ctx, code, term.Session, term.Semester); err != nil {
		return
	}
	view, err = buildView(rows, s.lunch)
	return
}

func (s *VenueService) lookup(ctx context.Context, code string) (persistence.Venue, error) {
	if code == "" {
		return persistence.Venue{}, NewValidationError("code", "Venue code is required.")
	}
	record, err := s.venues.GetByCode(ctx, code)
	if err != nil {
		return persistence.Venue{}, mapRepoError(err)
	}
	return record, nil
}
