package http

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aree6/SECJ3104-TTMS/internal/application"
)

// DefaultSearchLimit applies when a search request carries no limit.
const DefaultSearchLimit = application.DefaultSearchLimit

var sessionPattern = regexp.MustCompile(`^\d{4}/\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("academic_session", func(fl validator.FieldLevel) bool {
		return sessionPattern.MatchString(fl.Field().String())
	})
	return v
}

// Query structs are validated field by field in declaration order; the first
// failing rule decides the message.

type termQuery struct {
	Session  string `validate:"required,academic_session"`
	Semester string `validate:"required,oneof=1 2 3"`
}

type studentQuery struct {
	termQuery
	MatricNo string `validate:"required"`
}

type lecturerQuery struct {
	termQuery
	WorkerNo string `validate:"required,number"`
}

type searchQuery struct {
	termQuery
	Query  string `validate:"required"`
	Limit  string `validate:"omitempty,number"`
	Offset string `validate:"omitempty,number"`
}

var validationMessages = map[string]map[string]string{
	"Session": {
		"required":         "Academic session is required.",
		"academic_session": "Invalid session format. Expected format: YYYY/YYYY.",
	},
	"Semester": {
		"required": "Semester is required.",
		"oneof":    "Invalid semester format. Expected format: 1, 2, or 3.",
	},
	"MatricNo": {"required": "Matric number is required."},
	"WorkerNo": {
		"required": "Worker number is required.",
		"number":   "Invalid worker number.",
	},
	"Query":  {"required": "Query is required"},
	"Limit":  {"number": "Invalid limit"},
	"Offset": {"number": "Invalid offset"},
}

var fieldNames = map[string]string{
	"Session":  "session",
	"Semester": "semester",
	"MatricNo": "matric_no",
	"WorkerNo": "worker_no",
	"Query":    "query",
	"Limit":    "limit",
	"Offset":   "offset",
}

func validateQuery(query any) error {
	err := validate.Struct(query)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	first := fieldErrs[0]
	field := first.StructField()
	message := validationMessages[field][first.Tag()]
	if message == "" {
		message = "Invalid " + fieldNames[field]
	}
	return application.NewValidationError(fieldNames[field], message)
}

func readTerm(values url.Values) termQuery {
	return termQuery{
		Session:  strings.TrimSpace(values.Get("session")),
		Semester: strings.TrimSpace(values.Get("semester")),
	}
}

func (q termQuery) term() application.Term {
	semester, _ := strconv.Atoi(q.Semester)
	return application.Term{Session: q.Session, Semester: semester}
}

func parseTermQuery(values url.Values) (application.Term, error) {
	q := readTerm(values)
	if err := validateQuery(q); err != nil {
		return application.Term{}, err
	}
	return q.term(), nil
}

func parseStudentQuery(values url.Values) (string, application.Term, error) {
	q := studentQuery{termQuery: readTerm(values), MatricNo: strings.TrimSpace(values.Get("matric_no"))}
	if err := validateQuery(q); err != nil {
		return "", application.Term{}, err
	}
	return q.MatricNo, q.term(), nil
}

func parseLecturerQuery(values url.Values) (int64, application.Term, error) {
	q := lecturerQuery{termQuery: readTerm(values), WorkerNo: strings.TrimSpace(values.Get("worker_no"))}
	if err := validateQuery(q); err != nil {
		return 0, application.Term{}, err
	}
	workerNo, err := strconv.ParseInt(q.WorkerNo, 10, 64)
	if err != nil {
		return 0, application.Term{}, application.NewValidationError("worker_no", "Invalid worker number.")
	}
	return workerNo, q.term(), nil
}

func parseSearchQuery(values url.Values) (application.SearchParams, error) {
	q := searchQuery{
		termQuery: readTerm(values),
		Query:     strings.TrimSpace(values.Get("query")),
		Limit:     strings.TrimSpace(values.Get("limit")),
		Offset:    strings.TrimSpace(values.Get("offset")),
	}
	if err := validateQuery(q); err != nil {
		return application.SearchParams{}, err
	}

	params := application.SearchParams{Term: q.term(), Query: q.Query, Limit: DefaultSearchLimit}
	if q.Limit != "" {
		limit, err := strconv.Atoi(q.Limit)
		if err != nil {
			return application.SearchParams{}, application.NewValidationError("limit", "Invalid limit")
		}
		params.Limit = limit
	}
	if q.Offset != "" {
		offset, err := strconv.Atoi(q.Offset)
		if err != nil {
			return application.SearchParams{}, application.NewValidationError("offset", "Invalid offset")
		}
		params.Offset = offset
	}
	return params, nil
}
