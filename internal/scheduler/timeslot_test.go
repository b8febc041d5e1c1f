package scheduler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSlot(t *testing.T) {
	t.Parallel()

	t.Run("maps first and last codes", func(t *testing.T) {
		t.Parallel()

		first, err := ResolveSlot(1)
		require.NoError(t, err)
		assert.Equal(t, Slot{Code: 1, Start: Clock(7, 0), End: Clock(8, 0)}, first)

		last, err := ResolveSlot(12)
		require.NoError(t, err)
		assert.Equal(t, Slot{Code: 12, Start: Clock(18, 0), End: Clock(19, 0)}, last)
	})

	t.Run("is monotonic and non-empty", func(t *testing.T) {
		t.Parallel()

		slots := Slots()
		require.Len(t, slots, 12)
		for i, slot := range slots {
			assert.Less(t, slot.Start, slot.End)
			if i > 0 {
				assert.Greater(t, slot.Start, slots[i-1].Start)
			}
		}
	})

	t.Run("rejects codes outside the table", func(t *testing.T) {
		t.Parallel()

		for _, code := range []SlotCode{0, -1, 13, 99} {
			_, err := ResolveSlot(code)
			assert.ErrorIs(t, err, ErrUnknownSlotCode, "code %d", code)
		}
	})

	t.Run("returns a copy of the table", func(t *testing.T) {
		t.Parallel()

		slots := Slots()
		slots[0].Start = Clock(1, 0)

		again, err := ResolveSlot(1)
		require.NoError(t, err)
		assert.Equal(t, Clock(7, 0), again.Start)
	})
}

func TestClockTime(t *testing.T) {
	t.Parallel()

	t.Run("parses and formats", func(t *testing.T) {
		t.Parallel()

		c, err := ParseClockTime("08:30")
		require.NoError(t, err)
		assert.Equal(t, Clock(8, 30), c)
		assert.Equal(t, "08:30", c.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "8", "24:00", "10:60", "ab:cd"} {
			_, err := ParseClockTime(raw)
			assert.Error(t, err, raw)
		}
	})

	t.Run("json uses HH:MM", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(Clock(13, 5))
		require.NoError(t, err)
		assert.JSONEq(t, `"13:05"`, string(data))

		var decoded ClockTime
		require.NoError(t, json.Unmarshal([]byte(`"09:45"`), &decoded))
		assert.Equal(t, Clock(9, 45), decoded)
	})
}

func TestParseWeekday(t *testing.T) {
	t.Parallel()

	day, err := ParseWeekday("wednesday")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, day)
	assert.Equal(t, "Wednesday", day.String())

	_, err = ParseWeekday("Funday")
	assert.Error(t, err)
	assert.False(t, Weekday(0).Valid())
	assert.False(t, Weekday(8).Valid())
}

func TestWeekdayJSON(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Wednesday)
	require.NoError(t, err)
	assert.JSONEq(t, `"Wednesday"`, string(raw))

	var day Weekday
	require.NoError(t, json.Unmarshal([]byte(`"friday"`), &day))
	assert.Equal(t, Friday, day)
	require.NoError(t, json.Unmarshal([]byte(`2`), &day))
	assert.Equal(t, Tuesday, day)

	assert.Error(t, json.Unmarshal([]byte(`8`), &day))
	assert.Error(t, json.Unmarshal([]byte(`"Someday"`), &day))
}
