package testfixtures

import (
	"time"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
)

// Location is the campus time zone used by fixtures.
var Location = time.FixedZone("MYT", 8*60*60)

var referenceTime = time.Date(2024, time.October, 7, 8, 0, 0, 0, Location)

// ReferenceTime returns the canonical baseline timestamp used by fixtures: the
// first Monday of the current term at 08:00.
func ReferenceTime() time.Time {
	return referenceTime
}

// HashParams keeps fixture password hashing fast.
var HashParams = application.Argon2idParams{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  8,
	KeyLength:   16,
}

// Plain text passwords of every fixture account.
const (
	StudentPassword  = "student-pass"
	LecturerPassword = "lecturer-pass"
)

// Terms present in the fixture catalog. DecoyTerm exists so that queries
// leaking across sessions show up in tests.
var (
	CurrentTerm = application.Term{Session: "2024/2025", Semester: 1}
	DecoyTerm   = application.Term{Session: "2023/2024", Semester: 2}
)

// Identifiers of fixture records.
const (
	StudentAisyah  = "A21EC0001"
	StudentHakim   = "A21EC0002"
	StudentWeiJie  = "A21EC0003"
	StudentDecoy   = "A20EC0099"
	LecturerAminah = int64(1001)
	LecturerRazak  = int64(1002)
	LecturerIdle   = int64(1003)
	VenueBK1       = "N28-BK1"
	VenueBK2       = "N28-BK2"
	VenueIdle      = "N28-MKSE"
)

// Document returns the fixture catalog in import form.
//
// In the current term:
//   - Aisyah takes SECJ3104-01, SECJ3203-01 and SECJ3483-01 (six weekly classes).
//   - Hakim takes SECJ3104-02 and SECJ3303-01.
//   - Wei Jie takes SECJ3104-01.
//   - Aminah teaches SECJ3104-01 and SECJ3203-01, which collide on Monday 09:00.
//   - Razak teaches SECJ3104-02 and SECJ3303-01.
//   - SECJ3483-01 has no lecturer assigned.
//   - BK1 is double booked on Monday 08:00 by SECJ3104-01 and SECJ3303-01.
//
// The decoy term only holds SECP1513-01, taken by Aisyah and the decoy student
// in BK1 on Monday 08:00.
func Document() application.CatalogDocument {
	bk1, bk2 := VenueBK1, VenueBK2
	aminah, razak := LecturerAminah, LecturerRazak

	cur, decoy := CurrentTerm, DecoyTerm
	section := func(term application.Term, course, sec string, lecturer *int64) application.CatalogSection {
		return application.CatalogSection{CourseCode: course, Section: sec, Session: term.Session, Semester: term.Semester, LecturerNo: lecturer}
	}
	schedule := func(term application.Term, course, sec string, day, slot int, venue *string) application.CatalogSchedule {
		return application.CatalogSchedule{CourseCode: course, Section: sec, Session: term.Session, Semester: term.Semester, Day: day, Time: slot, VenueCode: venue}
	}
	register := func(term application.Term, matric, course, sec string) application.CatalogRegistration {
		return application.CatalogRegistration{MatricNo: matric, CourseCode: course, Section: sec, Session: term.Session, Semester: term.Semester}
	}

	return application.CatalogDocument{
		Sessions: []application.CatalogSession{
			{Session: cur.Session, Semester: cur.Semester, StartsOn: "2024-10-07", EndsOn: "2025-02-14"},
			{Session: decoy.Session, Semester: decoy.Semester},
		},
		Courses: []application.CatalogCourse{
			{Code: "SECJ3104", Name: "Application Development", Credit: 4},
			{Code: "SECJ3203", Name: "Theory of Computer Science", Credit: 3},
			{Code: "SECJ3303", Name: "Internet Programming", Credit: 3},
			{Code: "SECJ3483", Name: "Web Technology", Credit: 3},
			{Code: "SECP1513", Name: "Technology and Information System", Credit: 3},
		},
		Venues: []application.CatalogVenue{
			{Code: VenueBK1, ShortName: "BK1", Name: "Bilik Kuliah 1", Capacity: 60},
			{Code: VenueBK2, ShortName: "BK2", Name: "Bilik Kuliah 2", Capacity: 40},
			{Code: VenueIdle, ShortName: "MK SE", Name: "Makmal Kejuruteraan Perisian", Capacity: 30},
		},
		Lecturers: []application.CatalogLecturer{
			{WorkerNo: LecturerAminah, Name: "Dr. Aminah Binti Ali", Password: LecturerPassword},
			{WorkerNo: LecturerRazak, Name: "Dr. Razak Bin Hassan", Password: LecturerPassword},
			{WorkerNo: LecturerIdle, Name: "Prof. Tan Kah Wai", Password: LecturerPassword},
		},
		Students: []application.CatalogStudent{
			{MatricNo: StudentAisyah, Name: "Nur Aisyah", CourseCode: "SECJH", Password: StudentPassword},
			{MatricNo: StudentHakim, Name: "Muhammad Hakim", CourseCode: "SECJH", Password: StudentPassword},
			{MatricNo: StudentWeiJie, Name: "Lim Wei Jie", CourseCode: "SECVH", Password: StudentPassword},
			{MatricNo: StudentDecoy, Name: "Ali Decoy", CourseCode: "SECJH", Password: StudentPassword},
		},
		Sections: []application.CatalogSection{
			section(cur, "SECJ3104", "01", &aminah),
			section(cur, "SECJ3104", "02", &razak),
			section(cur, "SECJ3203", "01", &aminah),
			section(cur, "SECJ3303", "01", &razak),
			section(cur, "SECJ3483", "01", nil),
			section(decoy, "SECP1513", "01", &aminah),
		},
		Schedules: []application.CatalogSchedule{
			schedule(cur, "SECJ3104", "01", 1, 2, &bk1),
			schedule(cur, "SECJ3104", "01", 1, 3, &bk1),
			schedule(cur, "SECJ3104", "01", 3, 4, &bk2),
			schedule(cur, "SECJ3104", "02", 2, 2, &bk1),
			schedule(cur, "SECJ3203", "01", 1, 3, &bk2),
			schedule(cur, "SECJ3203", "01", 4, 8, &bk2),
			schedule(cur, "SECJ3303", "01", 1, 2, &bk1),
			schedule(cur, "SECJ3483", "01", 3, 8, &bk1),
			schedule(decoy, "SECP1513", "01", 1, 2, &bk1),
		},
		Registrations: []application.CatalogRegistration{
			register(cur, StudentAisyah, "SECJ3104", "01"),
			register(cur, StudentAisyah, "SECJ3203", "01"),
			register(cur, StudentAisyah, "SECJ3483", "01"),
			register(cur, StudentHakim, "SECJ3104", "02"),
			register(cur, StudentHakim, "SECJ3303", "01"),
			register(cur, StudentWeiJie, "SECJ3104", "01"),
			register(decoy, StudentAisyah, "SECP1513", "01"),
			register(decoy, StudentDecoy, "SECP1513", "01"),
		},
	}
}
