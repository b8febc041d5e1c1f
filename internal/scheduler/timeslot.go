// Package scheduler turns raw class-schedule rows into per-weekday timetables,
// detects time clashes between sections and classifies the idle time between
// consecutive classes.
//
// Every function in this package is pure: inputs are never mutated and no state
// is shared between calls, so callers may use them concurrently without
// coordination.
package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownSlotCode is returned when a slot code falls outside the time slot table.
var ErrUnknownSlotCode = errors.New("scheduler: unknown slot code")

// ClockTime is a wall-clock time of day expressed in minutes since midnight.
type ClockTime int

// Clock builds a ClockTime from an hour and minute.
func Clock(hour, minute int) ClockTime {
	return ClockTime(hour*60 + minute)
}

// ParseClockTime parses an "HH:MM" string.
func ParseClockTime(value string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, fmt.Errorf("scheduler: invalid clock time %q", value)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("scheduler: invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("scheduler: invalid minute in %q", value)
	}
	return Clock(hour, minute), nil
}

// Hour returns the hour component.
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c ClockTime) Minute() int { return int(c) % 60 }

// String formats the time as "HH:MM".
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Hours reports the signed distance from c to other in fractional hours.
func (c ClockTime) Hours(other ClockTime) float64 {
	return float64(other-c) / 60
}

// MarshalJSON encodes the time as an "HH:MM" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClockTime(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SlotCode identifies a teaching period. Higher codes start later in the day.
type SlotCode int

// Slot is the clock interval a slot code resolves to.
type Slot struct {
	Code  SlotCode
	Start ClockTime
	End   ClockTime
}

const (
	firstSlot SlotCode = 1
	lastSlot  SlotCode = 12
)

// slotTable is read-only after package initialisation.
var slotTable = buildSlotTable()

func buildSlotTable() [lastSlot + 1]Slot {
	var table [lastSlot + 1]Slot
	for code := firstSlot; code <= lastSlot; code++ {
		start := Clock(6+int(code), 0)
		table[code] = Slot{Code: code, Start: start, End: start + 60}
	}
	return table
}

// ResolveSlot maps a slot code to its clock interval.
func ResolveSlot(code SlotCode) (Slot, error) {
	if code < firstSlot || code > lastSlot {
		return Slot{}, fmt.Errorf("%w: %d", ErrUnknownSlotCode, code)
	}
	return slotTable[code], nil
}

// Slots returns every defined slot in ascending order.
func Slots() []Slot {
	out := make([]Slot, 0, lastSlot)
	for code := firstSlot; code <= lastSlot; code++ {
		out = append(out, slotTable[code])
	}
	return out
}

// Weekday enumerates the days of the week in calendar order starting on Monday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// AllWeekdays lists every weekday in calendar order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// TeachingDays lists the weekdays that always appear in a timetable view.
var TeachingDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Valid reports whether d is a defined weekday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the English day name.
func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// MarshalJSON encodes the weekday by name.
func (d Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a day name or its ISO number.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Weekday(n).Valid() {
			return fmt.Errorf("scheduler: weekday %d out of range", n)
		}
		*d = Weekday(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseWeekday(name)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseWeekday resolves a case-insensitive English day name.
func ParseWeekday(name string) (Weekday, error) {
	for _, day := range AllWeekdays {
		if strings.EqualFold(strings.TrimSpace(name), day.String()) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("scheduler: unknown weekday %q", name)
}
