package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

// AnalyticsService summarises a term's timetable for staff.
type AnalyticsService struct {
	sessions persistence.AcademicSessionRepository
	courses  persistence.CourseRepository
	logger   *slog.Logger
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(sessions persistence.AcademicSessionRepository, courses persistence.CourseRepository) *AnalyticsService {
	return NewAnalyticsServiceWithLogger(sessions, courses, nil)
}

// NewAnalyticsServiceWithLogger constructs an AnalyticsService with a specified logger.
func NewAnalyticsServiceWithLogger(sessions persistence.AcademicSessionRepository, courses persistence.CourseRepository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{sessions: sessions, courses: courses, logger: defaultLogger(logger)}
}

func (s *AnalyticsService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AnalyticsService", operation, attrs...)
}

// GetAnalytics reports per-section load, classes per weekday, the busiest slot
// and every venue booked by two sections at once.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, term Term) (result Analytics, err error) {
	if s == nil {
		err = fmt.Errorf("AnalyticsService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetAnalytics", "session", term.Session, "semester", term.Semester)
	defer func() {
		err = fail(err, sessionNotFound)
		if err != nil {
			logger.ErrorContext(ctx, "failed to compute analytics", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"total_classes", result.TotalClasses,
			"venue_clashes", len(result.VenueClashes),
		).InfoContext(ctx, "analytics computed")
	}()

	if _, err = lookupSession(ctx, s.sessions, term); err != nil {
		return
	}

	var schedules []persistence.SectionSchedule
	if schedules, err = s.courses.GetSchedulesForAnalytics(ctx, term.Session, term.Semester); err != nil {
		return
	}

	rows := make([]persistence.TimetableRow, len(schedules))
	counts := make(map[string]int, len(schedules))
	for i, schedule := range schedules {
		rows[i] = schedule.TimetableRow
		counts[schedule.CourseCode+"/"+schedule.Section] = schedule.StudentCount
	}

	var days map[scheduler.Weekday][]scheduler.ClassItem
	if days, err = normalizeRows(rows); err != nil {
		return
	}

	result = summarise(term, days, counts)
	return
}

func summarise(term Term, days map[scheduler.Weekday][]scheduler.ClassItem, counts map[string]int) Analytics {
	result := Analytics{
		Session:      term.Session,
		Semester:     term.Semester,
		Courses:      make([]CourseLoad, 0),
		DayLoads:     make([]DayLoad, 0, len(scheduler.TeachingDays)),
		VenueClashes: make([]VenueClash, 0),
	}

	sections := make(map[string]*CourseLoad)
	byVenue := make(map[string][]scheduler.ClassItem)
	slots := make(map[scheduler.Weekday]map[scheduler.ClockTime]*SlotLoad)

	for _, day := range scheduler.AllWeekdays {
		classes := days[day]
		if len(classes) > 0 || isWeekday(day) {
			result.DayLoads = append(result.DayLoads, DayLoad{Day: day, Classes: len(classes)})
		}
		result.TotalClasses += len(classes)

		for _, class := range classes {
			key := class.SectionKey()
			load, ok := sections[key]
			if !ok {
				load = &CourseLoad{
					CourseCode:   class.CourseCode,
					Course:       class.Course,
					Section:      class.Section,
					StudentCount: counts[key],
				}
				sections[key] = load
			}
			load.Classes = append(load.Classes, class)
			load.Hours += class.Start.Hours(class.End)

			byVenue[class.VenueCode] = append(byVenue[class.VenueCode], class)

			if slots[day] == nil {
				slots[day] = make(map[scheduler.ClockTime]*SlotLoad)
			}
			slot, ok := slots[day][class.Start]
			if !ok {
				slot = &SlotLoad{Day: day, Start: class.Start, End: class.End}
				slots[day][class.Start] = slot
			}
			slot.Classes++
		}
	}

	for _, load := range sections {
		result.Courses = append(result.Courses, *load)
	}
	sort.Slice(result.Courses, func(i, j int) bool {
		if result.Courses[i].CourseCode == result.Courses[j].CourseCode {
			return result.Courses[i].Section < result.Courses[j].Section
		}
		return result.Courses[i].CourseCode < result.Courses[j].CourseCode
	})

	for _, day := range scheduler.AllWeekdays {
		for _, slot := range slots[day] {
			if result.BusiestSlot == nil || busier(*slot, *result.BusiestSlot) {
				copied := *slot
				result.BusiestSlot = &copied
			}
		}
	}

	venueCodes := make([]string, 0, len(byVenue))
	for code := range byVenue {
		venueCodes = append(venueCodes, code)
	}
	sort.Strings(venueCodes)
	for _, code := range venueCodes {
		classes := byVenue[code]
		perDay := make(map[scheduler.Weekday][]scheduler.ClassItem)
		for _, class := range classes {
			perDay[class.Day] = append(perDay[class.Day], class)
		}
		for _, day := range scheduler.AllWeekdays {
			for _, pair := range scheduler.DetectClashes(perDay[day]) {
				result.VenueClashes = append(result.VenueClashes, VenueClash{
					VenueCode: code,
					Venue:     pair.A.Venue,
					Pair:      pair,
				})
			}
		}
	}

	return result
}

// busier orders slots by class count, then earlier day, then earlier start.
func busier(a, b SlotLoad) bool {
	if a.Classes != b.Classes {
		return a.Classes > b.Classes
	}
	if a.Day != b.Day {
		return a.Day < b.Day
	}
	return a.Start < b.Start
}

func isWeekday(day scheduler.Weekday) bool {
	for _, d := range scheduler.TeachingDays {
		if d == day {
			return true
		}
	}
	return false
}
