package persistence

import "time"

// AcademicSession is one semester of an academic year, e.g. "2024/2025" semester 1.
type AcademicSession struct {
	Session  string
	Semester int
	StartsOn *time.Time
	EndsOn   *time.Time
}

// Student is a registered student. CourseCode is the programme the student is enrolled in.
type Student struct {
	MatricNo     string
	Name         string
	CourseCode   string
	PasswordHash string
}

// Lecturer is a member of teaching staff identified by worker number.
type Lecturer struct {
	WorkerNo     int64
	Name         string
	PasswordHash string
}

// Venue is a room where classes take place.
type Venue struct {
	Code      string
	ShortName string
	Name      string
	Capacity  int
}

// Course is a catalogue entry.
type Course struct {
	Code   string
	Name   string
	Credit int
}

// CourseSection is one teaching group of a course in a given session and semester.
type CourseSection struct {
	CourseCode string
	Section    string
	Session    string
	Semester   int
	LecturerNo *int64
}

// ScheduleSlot places a course section on a weekday and slot code.
type ScheduleSlot struct {
	CourseCode string
	Section    string
	Session    string
	Semester   int
	Day        int
	Time       int
	VenueCode  *string
}

// Registration enrols a student in a course section.
type Registration struct {
	MatricNo   string
	CourseCode string
	Section    string
	Session    string
	Semester   int
}

// TimetableRow is a schedule slot joined with its course, venue and lecturer.
// Venue and lecturer columns are nil when the join found nothing.
type TimetableRow struct {
	CourseCode     string
	CourseName     string
	Section        string
	Day            int
	Time           int
	VenueCode      *string
	VenueShortName *string
	LecturerNo     *int64
	LecturerName   *string
}

// SectionSchedule is a timetable row annotated with the number of registered students.
type SectionSchedule struct {
	TimetableRow
	StudentCount int
}

// StudentSearchEntry is a student search hit.
type StudentSearchEntry struct {
	MatricNo   string
	Name       string
	CourseCode string
}

// AuthSession is a login session held by a student or lecturer.
type AuthSession struct {
	ID        string
	Token     string
	SubjectID string
	Role      string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Catalog is a bulk set of reference and timetable data loaded in one transaction.
type Catalog struct {
	Sessions      []AcademicSession
	Courses       []Course
	Venues        []Venue
	Lecturers     []Lecturer
	Students      []Student
	Sections      []CourseSection
	Schedules     []ScheduleSlot
	Registrations []Registration
}
