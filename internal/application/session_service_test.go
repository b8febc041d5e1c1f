package application

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aree6/SECJ3104-TTMS/internal/logging"
	"github.com/aree6/SECJ3104-TTMS/internal/persistence"
)

func TestSessionService(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.October, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)
	repo := &sessionRepoStub{sessions: []persistence.AcademicSession{
		{Session: "2024/2025", Semester: 1, StartsOn: &start, EndsOn: &end},
		{Session: "2023/2024", Semester: 2},
	}}

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		svc := NewSessionServiceWithLogger(repo, logging.Discard())
		got, err := svc.ListSessions(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2024/2025", got[0].Session)
		assert.Equal(t, &start, got[0].StartsOn)
		assert.Nil(t, got[1].StartsOn)
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		svc := NewSessionServiceWithLogger(repo, logging.Discard())
		got, err := svc.GetSession(context.Background(), Term{Session: "2023/2024", Semester: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, got.Semester)

		_, err = svc.GetSession(context.Background(), Term{Session: "2030/2031", Semester: 1})
		requireFailure(t, err, http.StatusNotFound, "Academic session not found")
	})

	t.Run("storage failure", func(t *testing.T) {
		t.Parallel()

		svc := NewSessionServiceWithLogger(&sessionRepoStub{listErr: errors.New("timeout")}, logging.Discard())
		_, err := svc.ListSessions(context.Background())
		requireFailure(t, err, http.StatusInternalServerError, "Internal server error")
	})
}
