package scheduler

import (
	"strconv"
	"strings"
)

// GapType classifies the idle interval between two consecutive classes.
type GapType string

const (
	// GapPlain is idle time that does not touch the lunch window.
	GapPlain GapType = "gap"
	// GapLunch is idle time that lies entirely within the lunch window.
	GapLunch GapType = "lunch"
	// GapMixed is idle time that starts before lunch and runs into it.
	GapMixed GapType = "mixed"
	// GapAfterLunch is the lunch window followed by further idle time.
	GapAfterLunch GapType = "after_lunch"
)

// LunchWindow is the half-open daily lunch interval.
type LunchWindow struct {
	Start ClockTime
	End   ClockTime
}

// DefaultLunchWindow is 12:00 to 13:00.
var DefaultLunchWindow = LunchWindow{Start: Clock(12, 0), End: Clock(13, 0)}

// GapInfo describes an idle interval. Durations are in fractional hours and
// only the fields meaningful for Type are set.
type GapInfo struct {
	Type           GapType  `json:"type"`
	Duration       *float64 `json:"duration,omitempty"`
	GapBeforeLunch *float64 `json:"gapBeforeLunch,omitempty"`
	GapAfterLunch  *float64 `json:"gapAfterLunch,omitempty"`
}

// ClassifyGap classifies the time between the end of one class and the start of
// the next. It returns nil when there is no idle time.
func ClassifyGap(prevEnd, nextStart ClockTime, lunch LunchWindow) *GapInfo {
	if nextStart <= prevEnd {
		return nil
	}
	if prevEnd >= lunch.End || nextStart <= lunch.Start {
		return &GapInfo{Type: GapPlain, Duration: hours(nextStart - prevEnd)}
	}

	before := min(nextStart, lunch.Start) - prevEnd
	if before < 0 {
		before = 0
	}
	after := nextStart - max(prevEnd, lunch.End)
	if after < 0 {
		after = 0
	}

	switch {
	case before == 0 && after == 0:
		return &GapInfo{Type: GapLunch}
	case before == 0:
		return &GapInfo{Type: GapAfterLunch, GapAfterLunch: hours(after)}
	default:
		info := &GapInfo{Type: GapMixed, GapBeforeLunch: hours(before)}
		if after > 0 {
			info.GapAfterLunch = hours(after)
		}
		return info
	}
}

func hours(minutes ClockTime) *float64 {
	v := float64(minutes) / 60
	return &v
}

// Audience selects the wording used when describing idle time.
type Audience string

const (
	AudienceStudent  Audience = "student"
	AudienceLecturer Audience = "lecturer"
)

const lunchBreakLabel = "1 hr lunch break"

// Label renders the gap as the text shown between two classes, for example
// "1 hr gap + 1 hr lunch break + 1 hr gap".
func (g *GapInfo) Label(audience Audience) string {
	if g == nil {
		return ""
	}
	idle := func(v *float64) string {
		word := "gap"
		if audience == AudienceLecturer {
			word = "free"
		}
		return strconv.FormatFloat(*v, 'f', -1, 64) + " hr " + word
	}

	var parts []string
	switch g.Type {
	case GapPlain:
		if g.Duration != nil {
			parts = append(parts, idle(g.Duration))
		}
	case GapLunch:
		parts = append(parts, lunchBreakLabel)
	case GapMixed:
		if g.GapBeforeLunch != nil {
			parts = append(parts, idle(g.GapBeforeLunch))
		}
		parts = append(parts, lunchBreakLabel)
		if g.GapAfterLunch != nil {
			parts = append(parts, idle(g.GapAfterLunch))
		}
	case GapAfterLunch:
		parts = append(parts, lunchBreakLabel)
		if g.GapAfterLunch != nil {
			parts = append(parts, idle(g.GapAfterLunch))
		}
	}
	return strings.Join(parts, " + ")
}
