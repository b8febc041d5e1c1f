package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_GenerateOccurrences(t *testing.T) {
	t.Parallel()

	// Monday 7 October 2024, 08:00-10:00 MYT.
	baseStart := time.Date(2024, time.October, 7, 8, 0, 0, 0, myt)
	baseEnd := baseStart.Add(2 * time.Hour)
	engine := NewEngine(nil)

	t.Run("respects weekday selections", func(t *testing.T) {
		t.Parallel()

		endsOn := baseStart.AddDate(0, 0, 13)
		rule := Rule{
			ID:        "rule-1",
			ClassID:   "SECJ3104-01-1-2",
			Frequency: FrequencyWeekly,
			Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
			StartsOn:  baseStart,
			EndsOn:    &endsOn,
		}

		got, err := engine.GenerateOccurrences(rule, baseStart, baseEnd, GenerateOptions{})
		require.NoError(t, err)
		require.Len(t, got, 4)

		wantDays := []int{7, 9, 14, 16}
		for i, occ := range got {
			assert.Equal(t, wantDays[i], occ.Start.Day())
			assert.Equal(t, 8, occ.Start.Hour())
			assert.Equal(t, 2*time.Hour, occ.End.Sub(occ.Start))
		}
	})

	t.Run("clips occurrences to the requested period", func(t *testing.T) {
		t.Parallel()

		endsOn := baseStart.AddDate(0, 0, 30)
		rangeStart := baseStart.AddDate(0, 0, 3)
		rangeEnd := baseStart.AddDate(0, 0, 10)
		rule := Rule{
			Frequency: FrequencyDaily,
			Weekdays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
			StartsOn:  baseStart,
			EndsOn:    &endsOn,
		}

		got, err := engine.GenerateOccurrences(rule, baseStart, baseEnd, GenerateOptions{RangeStart: &rangeStart, RangeEnd: &rangeEnd})
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, 10, got[0].Start.Day())
		assert.Equal(t, 17, got[len(got)-1].Start.Day())
		assert.Len(t, got, 6)
	})

	t.Run("includes the end date", func(t *testing.T) {
		t.Parallel()

		endsOn := time.Date(2024, time.October, 21, 0, 0, 0, 0, myt)
		rule := Rule{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Monday}, StartsOn: baseStart, EndsOn: &endsOn}

		got, err := engine.GenerateOccurrences(rule, baseStart, baseEnd, GenerateOptions{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 21, got[2].Start.Day())
	})

	t.Run("skips listed dates", func(t *testing.T) {
		t.Parallel()

		endsOn := baseStart.AddDate(0, 0, 21)
		holiday := time.Date(2024, time.October, 14, 0, 0, 0, 0, time.UTC)
		rule := Rule{
			Frequency: FrequencyWeekly,
			Weekdays:  []time.Weekday{time.Monday},
			StartsOn:  baseStart,
			EndsOn:    &endsOn,
			Skip:      []time.Time{holiday},
		}

		got, err := engine.GenerateOccurrences(rule, baseStart, baseEnd, GenerateOptions{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, occ := range got {
			assert.NotEqual(t, 14, occ.Start.Day())
		}
	})

	t.Run("handles timezone normalization", func(t *testing.T) {
		t.Parallel()

		utcStart := baseStart.UTC()
		endsOn := baseStart.AddDate(0, 0, 7)
		rule := Rule{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Monday}, StartsOn: utcStart, EndsOn: &endsOn}

		got, err := engine.GenerateOccurrences(rule, utcStart, utcStart.Add(time.Hour), GenerateOptions{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, myt, got[0].Start.Location())
		assert.Equal(t, 8, got[0].Start.Hour())
		assert.True(t, got[0].Start.Equal(baseStart))
	})

	t.Run("links generated occurrences back to their class", func(t *testing.T) {
		t.Parallel()

		endsOn := baseStart
		rule := Rule{ID: "rule-9", ClassID: "class-9", Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Monday}, StartsOn: baseStart, EndsOn: &endsOn}

		got, err := engine.GenerateOccurrences(rule, baseStart, baseEnd, GenerateOptions{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "class-9", got[0].ClassID)
		assert.Equal(t, "rule-9", got[0].RuleID)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		endsOn := baseStart.AddDate(0, 0, 7)
		_, err := engine.GenerateOccurrences(Rule{Frequency: FrequencyWeekly, StartsOn: baseStart, EndsOn: &endsOn}, baseEnd, baseStart, GenerateOptions{})
		assert.ErrorIs(t, err, ErrInvalidDuration)

		_, err = engine.GenerateOccurrences(Rule{Frequency: FrequencyWeekly, StartsOn: baseStart}, baseStart, baseEnd, GenerateOptions{})
		assert.ErrorIs(t, err, ErrInvalidWindow)

		_, err = engine.GenerateOccurrences(Rule{StartsOn: baseStart, EndsOn: &endsOn}, baseStart, baseEnd, GenerateOptions{})
		assert.ErrorIs(t, err, ErrInvalidFrequency)
	})

	t.Run("returns nothing when the range ends before the rule starts", func(t *testing.T) {
		t.Parallel()

		endsOn := baseStart.AddDate(0, 0, 7)
		rangeEnd := baseStart.AddDate(0, 0, -1)
		rule := Rule{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Monday}, StartsOn: baseStart, EndsOn: &endsOn}

		got, err := engine.GenerateOccurrences(rule, baseStart, baseEnd, GenerateOptions{RangeEnd: &rangeEnd})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestEngine_Expand(t *testing.T) {
	t.Parallel()

	engine := NewEngine(myt)
	monday := time.Date(2024, time.October, 7, 0, 0, 0, 0, myt)
	endsOn := monday.AddDate(0, 0, 6)

	meetings := []Meeting{
		{
			Rule:  Rule{ClassID: "b", Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Tuesday}, StartsOn: monday, EndsOn: &endsOn},
			Start: At(monday, 9*time.Hour, myt),
			End:   At(monday, 10*time.Hour, myt),
		},
		{
			Rule:  Rule{ClassID: "a", Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Monday, time.Tuesday}, StartsOn: monday, EndsOn: &endsOn},
			Start: At(monday, 9*time.Hour, myt),
			End:   At(monday, 11*time.Hour, myt),
		},
	}

	got, err := engine.Expand(meetings, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].ClassID)
	assert.Equal(t, time.Monday, got[0].Start.Weekday())
	assert.Equal(t, "a", got[1].ClassID)
	assert.Equal(t, "b", got[2].ClassID)
	assert.True(t, got[1].Start.Equal(got[2].Start))
}

func TestAt(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, time.October, 6, 20, 0, 0, 0, time.UTC) // 7 Oct 04:00 MYT
	got := At(day, 8*time.Hour+30*time.Minute, myt)
	assert.Equal(t, time.Date(2024, time.October, 7, 8, 30, 0, 0, myt), got)
}
