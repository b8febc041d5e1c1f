package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

// VenueRepository implements persistence.VenueRepository.
type VenueRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

var _ persistence.VenueRepository = (*VenueRepository)(nil)

// NewVenueRepository creates a new venue repository
func NewVenueRepository(pool *ConnectionPool) *VenueRepository {
	return &VenueRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// GetByCode retrieves a venue by code.
func (r *VenueRepository) GetByCode(ctx context.Context, code string) (persistence.Venue, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return persistence.Venue{}, persistence.ErrNotFound
	}

	const query = `
		SELECT code, short_name, name, capacity
		FROM venues
		WHERE code = ?`

	var venue persistence.Venue
	err := r.helper.QueryRow(ctx, query, code).Scan(&venue.Code, &venue.ShortName, &venue.Name, &venue.Capacity)
	if err != nil {
		if err = r.mapper.MapError(err); errors.Is(err, persistence.ErrNotFound) {
			return persistence.Venue{}, err
		}
		return persistence.Venue{}, fmt.Errorf("failed to get venue %s: %w", code, err)
	}
	return venue, nil
}

// GetTimetable returns every class held in the venue in the given session and semester.
func (r *VenueRepository) GetTimetable(ctx context.Context, code, session string, semester int) ([]persistence.TimetableRow, error) {
	query := `
		SELECT ` + timetableColumns + `
		FROM course_sections cs` + timetableJoins + `
		WHERE s.venue_code = ? AND cs.session = ? AND cs.semester = ?` + timetableOrder

	rows, err := r.helper.Query(ctx, query, code, session, semester)
	if err != nil {
		return nil, fmt.Errorf("failed to query venue timetable: %w", r.mapper.MapError(err))
	}
	return collectTimetable(rows, r.mapper)
}
