package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMalformedRow indicates a raw schedule row could not be turned into a class.
var ErrMalformedRow = errors.New("scheduler: malformed schedule row")

// MalformedRowError describes which row failed normalisation and why.
type MalformedRowError struct {
	Index  int
	Reason string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scheduler: malformed schedule row %d: %s: %v", e.Index, e.Reason, e.Err)
	}
	return fmt.Sprintf("scheduler: malformed schedule row %d: %s", e.Index, e.Reason)
}

// Is lets errors.Is match ErrMalformedRow.
func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// RawRow is one schedule slot joined with its course, section, venue and lecturer data.
type RawRow struct {
	Day              Weekday
	SlotCode         SlotCode
	CourseCode       string
	CourseName       string
	Section          string
	VenueCode        string
	VenueShortName   string
	LecturerWorkerNo *int64
	LecturerName     *string
}

// LecturerRef identifies the lecturer teaching a class.
type LecturerRef struct {
	WorkerNo int64  `json:"worker_no"`
	Name     string `json:"name"`
}

// ClassItem is a single class meeting on one weekday.
type ClassItem struct {
	ID         string       `json:"id"`
	Day        Weekday      `json:"day"`
	Start      ClockTime    `json:"start"`
	End        ClockTime    `json:"end"`
	Course     string       `json:"course"`
	CourseCode string       `json:"course_code"`
	Section    string       `json:"section"`
	Venue      string       `json:"venue"`
	VenueCode  string       `json:"venue_code"`
	Lecturer   *LecturerRef `json:"lecturer,omitempty"`
}

// SectionKey identifies the course section a class belongs to.
func (c ClassItem) SectionKey() string {
	return c.CourseCode + "/" + c.Section
}

// Normalize resolves every row into a ClassItem and groups the result by weekday.
// Each day is ordered by start time, then course code, section and id, so the
// output does not depend on the order of rows.
func Normalize(rows []RawRow) (map[Weekday][]ClassItem, error) {
	days := make(map[Weekday][]ClassItem)
	for i, row := range rows {
		item, err := normalizeRow(i, row)
		if err != nil {
			return nil, err
		}
		days[item.Day] = append(days[item.Day], item)
	}
	for day := range days {
		SortDay(days[day])
	}
	return days, nil
}

func normalizeRow(index int, row RawRow) (ClassItem, error) {
	if !row.Day.Valid() {
		return ClassItem{}, &MalformedRowError{Index: index, Reason: fmt.Sprintf("invalid weekday %d", int(row.Day))}
	}
	slot, err := ResolveSlot(row.SlotCode)
	if err != nil {
		return ClassItem{}, &MalformedRowError{Index: index, Reason: "unresolvable slot", Err: err}
	}
	switch {
	case strings.TrimSpace(row.CourseCode) == "":
		return ClassItem{}, &MalformedRowError{Index: index, Reason: "missing course code"}
	case strings.TrimSpace(row.CourseName) == "":
		return ClassItem{}, &MalformedRowError{Index: index, Reason: "missing course name"}
	case strings.TrimSpace(row.Section) == "":
		return ClassItem{}, &MalformedRowError{Index: index, Reason: "missing section"}
	case strings.TrimSpace(row.VenueCode) == "" || strings.TrimSpace(row.VenueShortName) == "":
		return ClassItem{}, &MalformedRowError{Index: index, Reason: "missing venue"}
	}

	item := ClassItem{
		ID:         fmt.Sprintf("%s-%s-%d-%d", row.CourseCode, row.Section, int(row.Day), int(row.SlotCode)),
		Day:        row.Day,
		Start:      slot.Start,
		End:        slot.End,
		Course:     row.CourseCode + " - " + row.CourseName,
		CourseCode: row.CourseCode,
		Section:    row.Section,
		Venue:      row.VenueShortName,
		VenueCode:  row.VenueCode,
	}
	if row.LecturerWorkerNo != nil {
		ref := &LecturerRef{WorkerNo: *row.LecturerWorkerNo}
		if row.LecturerName != nil {
			ref.Name = *row.LecturerName
		}
		item.Lecturer = ref
	}
	return item, nil
}

// SortDay orders classes in place by start, course code, section and id.
func SortDay(items []ClassItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.CourseCode != b.CourseCode {
			return a.CourseCode < b.CourseCode
		}
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		return a.ID < b.ID
	})
}
