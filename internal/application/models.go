package application

import (
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/scheduler"
)

// Role is the kind of account a login session belongs to.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLecturer Role = "lecturer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleLecturer
}

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	SubjectID string `json:"subject_id"`
	Role      Role   `json:"role"`
	Name      string `json:"name"`
}

// HasRole reports whether the principal holds one of roles. An empty list
// admits every role.
func (p Principal) HasRole(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// Term selects an academic session and semester.
type Term struct {
	Session  string
	Semester int
}

// TimetableEntry is one scheduled slot as returned by the timetable endpoints.
type TimetableEntry struct {
	CourseCode     string              `json:"course_code"`
	CourseName     string              `json:"course_name"`
	Section        string              `json:"section"`
	Day            scheduler.Weekday   `json:"day"`
	Slot           scheduler.SlotCode  `json:"time"`
	Start          scheduler.ClockTime `json:"start"`
	End            scheduler.ClockTime `json:"end"`
	VenueCode      *string             `json:"venue_code"`
	VenueShortName *string             `json:"venue_short_name"`
	LecturerNo     *int64              `json:"lecturer_no"`
	LecturerName   *string             `json:"lecturer_name"`
}

// SearchParams describes a paginated people search within a term.
type SearchParams struct {
	Term   Term
	Query  string
	Limit  int
	Offset int
}

// Student is a student as exposed to callers.
type Student struct {
	MatricNo   string `json:"matric_no"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code"`
}

// Lecturer is a lecturer as exposed to callers.
type Lecturer struct {
	WorkerNo int64  `json:"worker_no"`
	Name     string `json:"name"`
}

// Venue is a teaching room.
type Venue struct {
	Code      string `json:"code"`
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
}

// AcademicSession is a session and semester with optional teaching dates.
type AcademicSession struct {
	Session  string     `json:"session"`
	Semester int        `json:"semester"`
	StartsOn *time.Time `json:"starts_on,omitempty"`
	EndsOn   *time.Time `json:"ends_on,omitempty"`
}

// Analytics summarises how a term's timetable uses time and rooms.
type Analytics struct {
	Session      string       `json:"session"`
	Semester     int          `json:"semester"`
	TotalClasses int          `json:"total_classes"`
	Courses      []CourseLoad `json:"courses"`
	DayLoads     []DayLoad    `json:"classes_per_day"`
	BusiestSlot  *SlotLoad    `json:"busiest_slot,omitempty"`
	VenueClashes []VenueClash `json:"venue_clashes"`
}

// CourseLoad is the schedule footprint of one course section.
type CourseLoad struct {
	CourseCode   string                `json:"course_code"`
	Course       string                `json:"course"`
	Section      string                `json:"section"`
	StudentCount int                   `json:"student_count"`
	Hours        float64               `json:"hours"`
	Classes      []scheduler.ClassItem `json:"classes"`
}

// DayLoad counts the classes held on one weekday.
type DayLoad struct {
	Day     scheduler.Weekday `json:"day"`
	Classes int               `json:"classes"`
}

// SlotLoad counts the classes held in one weekday slot.
type SlotLoad struct {
	Day     scheduler.Weekday   `json:"day"`
	Start   scheduler.ClockTime `json:"start"`
	End     scheduler.ClockTime `json:"end"`
	Classes int                 `json:"classes"`
}

// VenueClash is a pair of different sections booked into one venue at
// overlapping times.
type VenueClash struct {
	VenueCode string              `json:"venue_code"`
	Venue     string              `json:"venue"`
	Pair      scheduler.ClashPair `json:"pair"`
}

// LoginParams carries the credentials of a login attempt. Identifier is a
// matric number for students and a worker number for lecturers.
type LoginParams struct {
	Role       Role
	Identifier string
	Password   string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Principal Principal `json:"principal"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
