package scheduler

// ViewEntry is one class in a day view together with its clash flag and the idle
// time that precedes it.
type ViewEntry struct {
	Class   ClassItem `json:"class"`
	IsClash bool      `json:"isClash"`
	Gap     *GapInfo  `json:"gap,omitempty"`
}

// DayView is the presentation-ready timetable for one weekday.
type DayView struct {
	Day     Weekday     `json:"day"`
	Entries []ViewEntry `json:"entries"`
}

// BuildView assembles per-day views from normalised classes. Teaching days are
// always present; weekend days only when they hold classes.
func BuildView(days map[Weekday][]ClassItem, lunch LunchWindow) []DayView {
	views := make([]DayView, 0, len(TeachingDays))
	for _, day := range AllWeekdays {
		classes := days[day]
		if len(classes) == 0 && !isTeachingDay(day) {
			continue
		}
		views = append(views, DayView{Day: day, Entries: buildEntries(classes, lunch)})
	}
	return views
}

func buildEntries(classes []ClassItem, lunch LunchWindow) []ViewEntry {
	marked := MarkClashes(classes)
	entries := make([]ViewEntry, 0, len(marked))
	var latestEnd ClockTime
	for i, m := range marked {
		entry := ViewEntry{Class: m.Class, IsClash: m.IsClash}
		if i > 0 {
			entry.Gap = ClassifyGap(latestEnd, m.Class.Start, lunch)
		}
		if i == 0 || m.Class.End > latestEnd {
			latestEnd = m.Class.End
		}
		entries = append(entries, entry)
	}
	return entries
}

func isTeachingDay(day Weekday) bool {
	return day >= Monday && day <= Friday
}
