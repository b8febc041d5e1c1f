package http

import (
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

type dayViewDTO struct {
	Day     scheduler.Weekday `json:"day"`
	Entries []viewEntryDTO    `json:"entries"`
}

type viewEntryDTO struct {
	Class   scheduler.ClassItem `json:"class"`
	IsClash bool                `json:"isClash"`
	Gap     *gapDTO             `json:"gap,omitempty"`
}

type gapDTO struct {
	scheduler.GapInfo
	Label string `json:"label"`
}

// toDayViewDTOs adds the gap wording for audience to each entry.
func toDayViewDTOs(view []scheduler.DayView, audience scheduler.Audience) []dayViewDTO {
	out := make([]dayViewDTO, 0, len(view))
	for _, day := range view {
		entries := make([]viewEntryDTO, 0, len(day.Entries))
		for _, entry := range day.Entries {
			dto := viewEntryDTO{Class: entry.Class, IsClash: entry.IsClash}
			if entry.Gap != nil {
				dto.Gap = &gapDTO{GapInfo: *entry.Gap, Label: entry.Gap.Label(audience)}
			}
			entries = append(entries, dto)
		}
		out = append(out, dayViewDTO{Day: day.Day, Entries: entries})
	}
	return out
}

type timetableResponse struct {
	Timetable []application.TimetableEntry `json:"timetable"`
}

type viewResponse struct {
	Days []dayViewDTO `json:"days"`
}

type sessionDTO struct {
	Session  string `json:"session"`
	Semester int    `json:"semester"`
	StartsOn string `json:"starts_on,omitempty"`
	EndsOn   string `json:"ends_on,omitempty"`
}

func toSessionDTO(s application.AcademicSession) sessionDTO {
	dto := sessionDTO{Session: s.Session, Semester: s.Semester}
	if s.StartsOn != nil {
		dto.StartsOn = s.StartsOn.Format(time.DateOnly)
	}
	if s.EndsOn != nil {
		dto.EndsOn = s.EndsOn.Format(time.DateOnly)
	}
	return dto
}
