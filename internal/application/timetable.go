package application

import (
	"regexp"
	"strings"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

// DefaultSearchLimit is used when a search does not ask for a page size.
const DefaultSearchLimit = 10

var sessionPattern = regexp.MustCompile(`^\d{4}/\d{4}$`)

func validateTerm(term Term) error {
	switch {
	case strings.TrimSpace(term.Session) == "":
		return NewValidationError("session", "Academic session is required.")
	case !sessionPattern.MatchString(term.Session):
		return NewValidationError("session", "Invalid session format. Expected format: YYYY/YYYY.")
	case term.Semester == 0:
		return NewValidationError("semester", "Semester is required.")
	case term.Semester < 1 || term.Semester > 3:
		return NewValidationError("semester", "Invalid semester format. Expected format: 1, 2, or 3.")
	}
	return nil
}

func validateSearch(params SearchParams) error {
	if err := validateTerm(params.Term); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(params.Query) == "":
		return NewValidationError("query", "Query is required")
	case params.Limit < 0:
		return NewValidationError("limit", "Invalid limit")
	case params.Offset < 0:
		return NewValidationError("offset", "Invalid offset")
	}
	return nil
}

// timetableEntries converts stored rows into entries carrying their slot clock
// times. An unresolvable slot fails the whole conversion.
func timetableEntries(rows []persistence.TimetableRow) ([]TimetableEntry, error) {
	entries := make([]TimetableEntry, 0, len(rows))
	for i, row := range rows {
		slot, err := scheduler.ResolveSlot(scheduler.SlotCode(row.Time))
		if err != nil {
			return nil, &scheduler.MalformedRowError{Index: i, Reason: "unresolvable slot", Err: err}
		}
		entries = append(entries, TimetableEntry{
			CourseCode:     row.CourseCode,
			CourseName:     row.CourseName,
			Section:        row.Section,
			Day:            scheduler.Weekday(row.Day),
			Slot:           slot.Code,
			Start:          slot.Start,
			End:            slot.End,
			VenueCode:      row.VenueCode,
			VenueShortName: row.VenueShortName,
			LecturerNo:     row.LecturerNo,
			LecturerName:   row.LecturerName,
		})
	}
	return entries, nil
}

func rawRows(rows []persistence.TimetableRow) []scheduler.RawRow {
	raw := make([]scheduler.RawRow, len(rows))
	for i, row := range rows {
		raw[i] = scheduler.RawRow{
			Day:              scheduler.Weekday(row.Day),
			SlotCode:         scheduler.SlotCode(row.Time),
			CourseCode:       row.CourseCode,
			CourseName:       row.CourseName,
			Section:          row.Section,
			VenueCode:        deref(row.VenueCode),
			VenueShortName:   deref(row.VenueShortName),
			LecturerWorkerNo: row.LecturerNo,
			LecturerName:     row.LecturerName,
		}
	}
	return raw
}

func normalizeRows(rows []persistence.TimetableRow) (map[scheduler.Weekday][]scheduler.ClassItem, error) {
	return scheduler.Normalize(rawRows(rows))
}

func buildView(rows []persistence.TimetableRow, lunch scheduler.LunchWindow) ([]scheduler.DayView, error) {
	days, err := normalizeRows(rows)
	if err != nil {
		return nil, err
	}
	return scheduler.BuildView(days, lunch), nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func toAcademicSession(s persistence.AcademicSession) AcademicSession {
	return AcademicSession{Session: s.Session, Semester: s.Semester, StartsOn: s.StartsOn, EndsOn: s.EndsOn}
}

func toVenue(v persistence.Venue) Venue {
	return Venue{Code: v.Code, ShortName: v.ShortName, Name: v.Name, Capacity: v.Capacity}
}
