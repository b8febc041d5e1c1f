// Package recurrence expands weekly class meetings into dated occurrences
// across the teaching weeks of an academic session.
package recurrence

import (
	"errors"
	"sort"
	"time"
)

var myt = time.FixedZone("MYT", 8*60*60)

// Frequency represents supported recurrence intervals.
type Frequency int

const (
	// FrequencyUnspecified indicates the rule frequency is not set.
	FrequencyUnspecified Frequency = iota
	// FrequencyDaily generates occurrences for each day within the range.
	FrequencyDaily
	// FrequencyWeekly generates occurrences for the selected weekdays.
	FrequencyWeekly
)

// Rule describes how a class meeting repeats within a session.
type Rule struct {
	ID        string
	ClassID   string
	Frequency Frequency
	Weekdays  []time.Weekday
	StartsOn  time.Time
	EndsOn    *time.Time
	// Skip lists dates with no teaching, such as public holidays. Only the
	// calendar date is compared.
	Skip []time.Time
}

// GenerateOptions defines optional range bounds for occurrence generation.
type GenerateOptions struct {
	RangeStart *time.Time
	RangeEnd   *time.Time
}

// Occurrence is one dated meeting of a class.
type Occurrence struct {
	ClassID string
	RuleID  string
	Start   time.Time
	End     time.Time
}

// Engine expands recurrence rules into occurrences.
type Engine struct {
	location *time.Location
}

// NewEngine constructs an Engine that normalizes results to the provided location.
// If loc is nil, Malaysia time (UTC+8) is used.
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = myt
	}
	return &Engine{location: loc}
}

// Location returns the zone occurrences are generated in.
func (e *Engine) Location() *time.Location {
	if e == nil || e.location == nil {
		return myt
	}
	return e.location
}

// ErrInvalidFrequency indicates the recurrence frequency is not supported.
var ErrInvalidFrequency = errors.New("recurrence: invalid frequency")

// ErrInvalidWindow indicates the generation window is unbounded.
var ErrInvalidWindow = errors.New("recurrence: generation window requires an end bound")

// ErrInvalidDuration indicates the meeting duration is invalid.
var ErrInvalidDuration = errors.New("recurrence: meeting duration must be positive")

// GenerateOccurrences produces the meetings of rule within the window. baseStart
// and baseEnd give the wall-clock time and length of one meeting; only their
// time of day is used.
//
//   - All timestamps are in the engine's location.
//   - The window is bounded by the rule's EndsOn and the optional range end; both
//     are inclusive calendar dates.
//   - Weekly rules need at least one weekday; daily rules treat weekdays as a filter.
func (e *Engine) GenerateOccurrences(rule Rule, baseStart, baseEnd time.Time, opts GenerateOptions) ([]Occurrence, error) {
	loc := e.Location()

	baseStart = baseStart.In(loc)
	baseEnd = baseEnd.In(loc)
	if !baseEnd.After(baseStart) {
		return nil, ErrInvalidDuration
	}
	duration := baseEnd.Sub(baseStart)

	lower := dateOf(rule.StartsOn, loc)
	if opts.RangeStart != nil {
		if start := dateOf(*opts.RangeStart, loc); start.After(lower) {
			lower = start
		}
	}

	var upper time.Time
	if rule.EndsOn != nil {
		upper = dateOf(*rule.EndsOn, loc)
	}
	if opts.RangeEnd != nil {
		end := dateOf(*opts.RangeEnd, loc)
		if upper.IsZero() || end.Before(upper) {
			upper = end
		}
	}
	if upper.IsZero() {
		return nil, ErrInvalidWindow
	}
	if lower.After(upper) {
		return nil, nil
	}

	weekdays := make(map[time.Weekday]struct{}, len(rule.Weekdays))
	for _, day := range rule.Weekdays {
		weekdays[day] = struct{}{}
	}
	skip := make(map[time.Time]struct{}, len(rule.Skip))
	for _, day := range rule.Skip {
		skip[dateOf(day, loc)] = struct{}{}
	}

	occurrences := make([]Occurrence, 0)
	for day := lower; !day.After(upper); day = day.AddDate(0, 0, 1) {
		include, err := shouldInclude(rule.Frequency, weekdays, day.Weekday())
		if err != nil {
			return nil, err
		}
		if !include {
			continue
		}
		if _, skipped := skip[day]; skipped {
			continue
		}
		start := atClock(day, baseStart, loc)
		occurrences = append(occurrences, Occurrence{
			ClassID: rule.ClassID,
			RuleID:  rule.ID,
			Start:   start,
			End:     start.Add(duration),
		})
	}

	return occurrences, nil
}

// Expand generates every rule and returns the occurrences in start order.
func (e *Engine) Expand(meetings []Meeting, opts GenerateOptions) ([]Occurrence, error) {
	all := make([]Occurrence, 0)
	for _, m := range meetings {
		occurrences, err := e.GenerateOccurrences(m.Rule, m.Start, m.End, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, occurrences...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start.Equal(all[j].Start) {
			return all[i].ClassID < all[j].ClassID
		}
		return all[i].Start.Before(all[j].Start)
	})
	return all, nil
}

// Meeting pairs a rule with the time of day it meets.
type Meeting struct {
	Rule  Rule
	Start time.Time
	End   time.Time
}

// At returns midnight of the date of t in loc plus the given offset.
func At(t time.Time, offset time.Duration, loc *time.Location) time.Time {
	if loc == nil {
		loc = myt
	}
	d := dateOf(t, loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).Add(offset)
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func atClock(day, template time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), template.Hour(), template.Minute(), template.Second(), template.Nanosecond(), loc)
}

func shouldInclude(freq Frequency, weekdaySet map[time.Weekday]struct{}, day time.Weekday) (bool, error) {
	switch freq {
	case FrequencyDaily:
		if len(weekdaySet) == 0 {
			return true, nil
		}
		_, ok := weekdaySet[day]
		return ok, nil
	case FrequencyWeekly:
		if len(weekdaySet) == 0 {
			return false, nil
		}
		_, ok := weekdaySet[day]
		return ok, nil
	case FrequencyUnspecified:
		fallthrough
	default:
		return false, ErrInvalidFrequency
	}
}
