package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestClassifyGap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prevEnd   ClockTime
		nextStart ClockTime
		want      *GapInfo
	}{
		{name: "back to back", prevEnd: Clock(9, 0), nextStart: Clock(9, 0), want: nil},
		{name: "overlapping", prevEnd: Clock(10, 0), nextStart: Clock(9, 0), want: nil},
		{name: "morning gap", prevEnd: Clock(8, 0), nextStart: Clock(10, 0), want: &GapInfo{Type: GapPlain, Duration: ptr(2)}},
		{name: "ends at lunch start", prevEnd: Clock(10, 0), nextStart: Clock(12, 0), want: &GapInfo{Type: GapPlain, Duration: ptr(2)}},
		{name: "afternoon gap", prevEnd: Clock(13, 0), nextStart: Clock(14, 30), want: &GapInfo{Type: GapPlain, Duration: ptr(1.5)}},
		{name: "exact lunch", prevEnd: Clock(12, 0), nextStart: Clock(13, 0), want: &GapInfo{Type: GapLunch}},
		{name: "inside lunch", prevEnd: Clock(12, 0), nextStart: Clock(12, 30), want: &GapInfo{Type: GapLunch}},
		{name: "lunch then free time", prevEnd: Clock(12, 0), nextStart: Clock(15, 0), want: &GapInfo{Type: GapAfterLunch, GapAfterLunch: ptr(2)}},
		{name: "straddles lunch", prevEnd: Clock(11, 0), nextStart: Clock(14, 0), want: &GapInfo{Type: GapMixed, GapBeforeLunch: ptr(1), GapAfterLunch: ptr(1)}},
		{name: "before and into lunch", prevEnd: Clock(11, 0), nextStart: Clock(13, 0), want: &GapInfo{Type: GapMixed, GapBeforeLunch: ptr(1)}},
		{name: "before and part of lunch", prevEnd: Clock(10, 0), nextStart: Clock(12, 30), want: &GapInfo{Type: GapMixed, GapBeforeLunch: ptr(2)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyGap(tt.prevEnd, tt.nextStart, DefaultLunchWindow))
		})
	}
}

func TestClassifyGap_Totality(t *testing.T) {
	t.Parallel()

	for prev := Clock(7, 0); prev <= Clock(19, 0); prev += 30 {
		for next := prev + 30; next <= Clock(19, 0); next += 30 {
			info := ClassifyGap(prev, next, DefaultLunchWindow)
			require.NotNil(t, info, "%s -> %s", prev, next)

			total := prev.Hours(next)
			var lunchOverlap float64
			if lo, hi := max(prev, DefaultLunchWindow.Start), min(next, DefaultLunchWindow.End); hi > lo {
				lunchOverlap = lo.Hours(hi)
			}

			var sum float64
			for _, v := range []*float64{info.Duration, info.GapBeforeLunch, info.GapAfterLunch} {
				if v != nil {
					assert.Greater(t, *v, 0.0)
					sum += *v
				}
			}
			if info.Type == GapPlain {
				assert.Equal(t, total, sum, "%s -> %s", prev, next)
			} else {
				assert.Equal(t, total, sum+lunchOverlap, "%s -> %s", prev, next)
			}
		}
	}
}

func TestClassifyGap_CustomLunchWindow(t *testing.T) {
	t.Parallel()

	lunch := LunchWindow{Start: Clock(13, 0), End: Clock(14, 0)}
	assert.Equal(t, &GapInfo{Type: GapPlain, Duration: ptr(1)}, ClassifyGap(Clock(12, 0), Clock(13, 0), lunch))
	assert.Equal(t, &GapInfo{Type: GapLunch}, ClassifyGap(Clock(13, 0), Clock(14, 0), lunch))
}

func TestGapInfo_Label(t *testing.T) {
	t.Parallel()

	mixed := ClassifyGap(Clock(11, 0), Clock(14, 0), DefaultLunchWindow)
	assert.Equal(t, "1 hr gap + 1 hr lunch break + 1 hr gap", mixed.Label(AudienceStudent))
	assert.Equal(t, "1 hr free + 1 hr lunch break + 1 hr free", mixed.Label(AudienceLecturer))

	plain := ClassifyGap(Clock(8, 0), Clock(9, 30), DefaultLunchWindow)
	assert.Equal(t, "1.5 hr gap", plain.Label(AudienceStudent))

	lunch := ClassifyGap(Clock(12, 0), Clock(13, 0), DefaultLunchWindow)
	assert.Equal(t, "1 hr lunch break", lunch.Label(AudienceStudent))

	after := ClassifyGap(Clock(12, 0), Clock(14, 0), DefaultLunchWindow)
	assert.Equal(t, "1 hr lunch break + 1 hr free", after.Label(AudienceLecturer))

	var none *GapInfo
	assert.Empty(t, none.Label(AudienceStudent))
}
