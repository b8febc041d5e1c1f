// Package http provides HTTP handlers and middleware for the timetable API.
//
// The router exposes the following endpoints. Every endpoint except login
// requires a session token, sent as "Authorization: Bearer <token>" or in the
// session_token cookie.
//   - POST /auth/login: body {"role","identifier","password"} where identifier is
//     a matric number for students and a worker number for lecturers. Responds
//     201 with {"token","expires_at","principal"}; the token is also set as the
//     session_token cookie and the X-Session-Token header.
//   - POST /auth/logout: revokes the current token. 204 No Content.
//   - GET /sessions: academic sessions, newest first.
//   - GET /students/timetable, /students/timetable/view, /students/timetable/calendar:
//     query session, semester, matric_no.
//   - GET /students/search: query session, semester, query, limit, offset.
//   - GET /lecturers/timetable, /lecturers/timetable/view, /lecturers/timetable/calendar,
//     /lecturers/clashes: query session, semester, worker_no. Clashes require the
//     lecturer role.
//   - GET /lecturers/search: as for students.
//   - GET /venues/{code} and GET /venues/{code}/timetable?session&semester.
//   - GET /analytics?session&semester: lecturer role only.
//
// Failures are JSON {"error": "<message>"}.
package http
