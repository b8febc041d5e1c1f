package scheduler

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func class(id, course, section string, start, end ClockTime) ClassItem {
	return ClassItem{ID: id, Day: Monday, Start: start, End: end, CourseCode: course, Section: section}
}

func clashFlags(marked []MarkedClass) map[string]bool {
	flags := make(map[string]bool, len(marked))
	for _, m := range marked {
		flags[m.Class.ID] = m.IsClash
	}
	return flags
}

func TestMarkClashes(t *testing.T) {
	t.Parallel()

	t.Run("overlapping sections clash", func(t *testing.T) {
		t.Parallel()

		a := class("a", "SECJ1013", "01", Clock(8, 0), Clock(9, 0))
		b := class("b", "SECJ2013", "01", Clock(8, 30), Clock(9, 30))

		flags := clashFlags(MarkClashes([]ClassItem{a, b}))
		assert.True(t, flags["a"])
		assert.True(t, flags["b"])
	})

	t.Run("touching intervals do not clash", func(t *testing.T) {
		t.Parallel()

		a := class("a", "SECJ1013", "01", Clock(8, 0), Clock(9, 0))
		b := class("b", "SECJ2013", "01", Clock(9, 0), Clock(10, 0))

		flags := clashFlags(MarkClashes([]ClassItem{a, b}))
		assert.False(t, flags["a"])
		assert.False(t, flags["b"])
	})

	t.Run("same section never clashes with itself", func(t *testing.T) {
		t.Parallel()

		a := class("a", "SECJ1013", "01", Clock(8, 0), Clock(10, 0))
		b := class("b", "SECJ1013", "01", Clock(9, 0), Clock(11, 0))

		flags := clashFlags(MarkClashes([]ClassItem{a, b}))
		assert.False(t, flags["a"])
		assert.False(t, flags["b"])
	})

	t.Run("different sections of one course clash", func(t *testing.T) {
		t.Parallel()

		a := class("a", "SECJ1013", "01", Clock(8, 0), Clock(9, 0))
		b := class("b", "SECJ1013", "02", Clock(8, 0), Clock(9, 0))

		flags := clashFlags(MarkClashes([]ClassItem{a, b}))
		assert.True(t, flags["a"])
		assert.True(t, flags["b"])
	})

	t.Run("long class clashes with a later one past the window", func(t *testing.T) {
		t.Parallel()

		long := class("long", "A", "01", Clock(8, 0), Clock(12, 0))
		short := class("short", "B", "01", Clock(8, 0), Clock(9, 0))
		late := class("late", "C", "01", Clock(11, 0), Clock(12, 0))
		free := class("free", "D", "01", Clock(13, 0), Clock(14, 0))

		flags := clashFlags(MarkClashes([]ClassItem{free, late, short, long}))
		assert.True(t, flags["long"])
		assert.True(t, flags["short"])
		assert.True(t, flags["late"])
		assert.False(t, flags["free"])
	})

	t.Run("empty and singleton input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, MarkClashes(nil))
		marked := MarkClashes([]ClassItem{class("a", "A", "01", Clock(8, 0), Clock(9, 0))})
		require.Len(t, marked, 1)
		assert.False(t, marked[0].IsClash)
	})

	t.Run("output follows day order without mutating input", func(t *testing.T) {
		t.Parallel()

		input := []ClassItem{
			class("b", "B", "01", Clock(10, 0), Clock(11, 0)),
			class("a", "A", "01", Clock(8, 0), Clock(9, 0)),
		}
		marked := MarkClashes(input)
		assert.Equal(t, "a", marked[0].Class.ID)
		assert.Equal(t, "b", input[0].ID)
	})
}

func TestDetectClashes_Symmetric(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	courses := []string{"A", "B", "C"}
	sections := []string{"01", "02"}

	for round := 0; round < 50; round++ {
		var day []ClassItem
		for i := 0; i < 8; i++ {
			start := Clock(7+rng.Intn(10), 30*rng.Intn(2))
			end := start + ClockTime(30*(1+rng.Intn(4)))
			id := string(rune('a' + i))
			day = append(day, class(id, courses[rng.Intn(len(courses))], sections[rng.Intn(len(sections))], start, end))
		}

		pairs := DetectClashes(day)
		found := make(map[[2]string]bool)
		for _, p := range pairs {
			found[[2]string{p.A.ID, p.B.ID}] = true
			found[[2]string{p.B.ID, p.A.ID}] = true
		}

		flags := clashFlags(MarkClashes(day))
		for i := range day {
			anyClash := false
			for j := range day {
				if i == j {
					continue
				}
				want := Clashes(day[i], day[j])
				assert.Equal(t, want, Clashes(day[j], day[i]))
				assert.Equal(t, want, found[[2]string{day[i].ID, day[j].ID}], "round %d: %s vs %s", round, day[i].ID, day[j].ID)
				anyClash = anyClash || want
			}
			assert.Equal(t, anyClash, flags[day[i].ID])
		}
	}
}

func TestDetectClashes_PairOrder(t *testing.T) {
	t.Parallel()

	late := class("late", "B", "01", Clock(8, 30), Clock(9, 30))
	early := class("early", "A", "01", Clock(8, 0), Clock(9, 0))

	pairs := DetectClashes([]ClassItem{late, early})
	require.Len(t, pairs, 1)
	assert.Equal(t, "early", pairs[0].A.ID)
	assert.Equal(t, "late", pairs[0].B.ID)
}
