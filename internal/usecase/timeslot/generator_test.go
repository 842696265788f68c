//go:build unit

package timeslot_test

import (
	"testing"
	"time"

	"fleet-console/internal/pkg/clock"
	"fleet-console/internal/pkg/config"
	"fleet-console/internal/pkg/errs"
	"fleet-console/internal/usecase/timeslot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHours(opts []timeslot.Option) []int {
	out := []int{}
	for _, o := range opts[1:] {
		out = append(out, o.StartHour)
	}
	return out
}

func TestGenerate(t *testing.T) {
	cfg := config.NewTestConfig().Composer

	cases := []struct {
		name  string
		now   time.Time
		date  time.Time
		hours []int
	}{
		{
			name:  "before opening lists every window",
			now:   time.Date(2026, 3, 2, 4, 10, 0, 0, time.UTC),
			date:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			hours: []int{5, 7, 9, 11, 13, 15, 17, 19},
		},
		{
			name:  "a window starting in the current hour is gone",
			now:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			date:  time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC),
			hours: []int{11, 13, 15, 17, 19},
		},
		{
			name:  "mid-window drops the running window",
			now:   time.Date(2026, 3, 2, 10, 59, 0, 0, time.UTC),
			date:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			hours: []int{11, 13, 15, 17, 19},
		},
		{
			name:  "late evening leaves only immediate",
			now:   time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC),
			date:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			hours: []int{},
		},
		{
			name:  "other dates are never filtered",
			now:   time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC),
			date:  time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			hours: []int{5, 7, 9, 11, 13, 15, 17, 19},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := timeslot.NewGenerator(clock.NewMockClock(c.now), cfg)
			opts := g.Generate(c.date)
			require.NotEmpty(t, opts)
			assert.True(t, opts[0].Immediate)
			assert.Equal(t, c.hours, startHours(opts))
		})
	}

	t.Run("recomputed from the clock on every call", func(t *testing.T) {
		clk := clock.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
		g := timeslot.NewGenerator(clk, cfg)
		today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

		assert.Equal(t, []int{13, 15, 17, 19}, startHours(g.Generate(today)))
		clk.Add(4 * time.Hour)
		assert.Equal(t, []int{17, 19}, startHours(g.Generate(today)))
	})

	t.Run("window labels and bounds", func(t *testing.T) {
		g := timeslot.NewGenerator(clock.NewMockClock(time.Date(2026, 3, 2, 4, 0, 0, 0, time.UTC)), cfg)
		w := g.Generate(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))[1]
		assert.Equal(t, "05:00 - 07:00", w.Label)
		assert.Equal(t, 2*time.Hour, w.End.Sub(w.Start))
	})
}

func TestLookup(t *testing.T) {
	cfg := config.NewTestConfig().Composer
	g := timeslot.NewGenerator(clock.NewMockClock(time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)), cfg)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slot, err := g.Lookup(today, 13)
	require.NoError(t, err)
	assert.True(t, slot.IsScheduled())
	assert.Equal(t, time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC), slot.ScheduledAt())

	_, err = g.Lookup(today, 9)
	assert.True(t, errs.Is(err, timeslot.ErrUnknownWindow))
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestParseDate(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	g := timeslot.NewGenerator(clock.NewMockClock(time.Date(2026, 3, 2, 23, 30, 0, 0, lagos)), config.NewTestConfig().Composer)

	day, err := g.ParseDate("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, lagos), day)

	today, err := g.ParseDate("")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, lagos), today)

	_, err = g.ParseDate("05/03/2026")
	assert.True(t, errs.Is(err, errs.ErrValidation))
}
