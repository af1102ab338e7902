package calendar

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcSchedule() Schedule {
	s := DefaultSchedule()
	s.Location = time.UTC
	return s
}

func newTestCalendar(t *testing.T) *Calendar {
	cal, err := New(utcSchedule())
	require.NoError(t, err)
	return cal
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHoursFor(t *testing.T) {
	cal := newTestCalendar(t)

	tests := []struct {
		name      string
		day       time.Time
		open      bool
		openHour  int
		closeHour int
	}{
		{"sunday closed", date(2025, 3, 2), false, 0, 0},
		{"monday", date(2025, 3, 3), true, 10, 21},
		{"friday late close", date(2025, 3, 7), true, 10, 22},
		{"saturday early close", date(2025, 3, 8), true, 10, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Any instant of the day resolves to the same window
			w, ok := cal.HoursFor(tt.day.Add(15*time.Hour + 7*time.Minute))
			assert.Equal(t, tt.open, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.day.Add(time.Duration(tt.openHour)*time.Hour), w.Open)
			assert.Equal(t, tt.day.Add(time.Duration(tt.closeHour)*time.Hour), w.Close)
		})
	}
}

func TestNew_InvalidSchedule(t *testing.T) {
	s := utcSchedule()
	s.Days[time.Monday] = DayHours{Open: At(18, 0), Close: At(9, 0)}
	_, err := New(s)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("10:30")
	require.NoError(t, err)
	assert.Equal(t, At(10, 30), got)
	assert.Equal(t, "10:30", got.String())

	for _, bad := range []string{"", "1030", "25:00", "10:75", "aa:bb", "24:30"} {
		_, err := ParseTimeOfDay(bad)
		assert.Error(t, err, bad)
	}
}

func TestRandomTimestamp_WithinBusinessHours(t *testing.T) {
	cal := newTestCalendar(t)
	rng := rand.New(rand.NewPCG(7, 11))

	start := date(2024, 1, 1)
	end := date(2025, 12, 31).Add(24*time.Hour - time.Nanosecond)

	for i := 0; i < 5000; i++ {
		ts, err := cal.RandomTimestamp(rng, start, end)
		require.NoError(t, err)

		w, ok := cal.HoursFor(ts)
		require.True(t, ok, "drew a closed day: %s", ts)
		assert.True(t, w.Contains(ts), "%s outside %s-%s", ts, w.Open, w.Close)
		assert.NotEqual(t, time.Sunday, ts.Weekday())
		assert.False(t, ts.Before(start) || ts.After(end))
	}
}

func TestRandomTimestamp_ClipsToRange(t *testing.T) {
	cal := newTestCalendar(t)
	rng := rand.New(rand.NewPCG(3, 4))

	// Monday 12:00 to 13:00 only
	start := date(2025, 3, 3).Add(12 * time.Hour)
	end := start.Add(time.Hour)
	for i := 0; i < 200; i++ {
		ts, err := cal.RandomTimestamp(rng, start, end)
		require.NoError(t, err)
		assert.False(t, ts.Before(start) || ts.After(end))
	}
}

func TestRandomTimestamp_NoOpenDay(t *testing.T) {
	cal := newTestCalendar(t)

	t.Run("single sunday", func(t *testing.T) {
		sunday := date(2025, 3, 2)
		_, err := cal.RandomTimestamp(rand.New(rand.NewPCG(1, 1)), sunday, sunday.Add(24*time.Hour-time.Second))
		assert.ErrorIs(t, err, ErrNoOpenDayInRange)
	})

	t.Run("after hours only", func(t *testing.T) {
		monday := date(2025, 3, 3)
		_, err := cal.RandomTimestamp(nil, monday.Add(22*time.Hour), monday.Add(23*time.Hour))
		assert.ErrorIs(t, err, ErrNoOpenDayInRange)
	})

	t.Run("always closed", func(t *testing.T) {
		var s Schedule
		s.Location = time.UTC
		for i := range s.Days {
			s.Days[i].Closed = true
		}
		closed, err := New(s)
		require.NoError(t, err)

		_, err = closed.RandomTimestamp(nil, date(2024, 1, 1), date(2025, 1, 1))
		assert.ErrorIs(t, err, ErrNoOpenDayInRange)

		_, err = closed.LastOpenDayOnOrBefore(date(2025, 1, 1))
		assert.ErrorIs(t, err, ErrNoOpenDayInRange)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := cal.RandomTimestamp(nil, date(2025, 3, 4), date(2025, 3, 3))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestDraw_FallsBackToEnumeratedDays(t *testing.T) {
	// One attempt, range of one Sunday plus one Monday: the bounded loop may
	// miss but the enumeration fallback must still find Monday.
	cal := newTestCalendar(t).WithMaxAttempts(1)
	start := date(2025, 3, 2)
	end := date(2025, 3, 3).Add(24*time.Hour - time.Second)

	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 100; i++ {
		d, err := cal.Draw(rng, start, end)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, d.At.Weekday())
		assert.LessOrEqual(t, d.Rejections, 1)
	}
}

func TestLastOpenDayOnOrBefore(t *testing.T) {
	cal := newTestCalendar(t)

	got, err := cal.LastOpenDayOnOrBefore(date(2025, 3, 2).Add(9 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 1), got, "sunday walks back to saturday")

	got, err = cal.LastOpenDayOnOrBefore(date(2025, 3, 4).Add(9 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 4), got)
}

func TestOpenDays(t *testing.T) {
	cal := newTestCalendar(t)

	days, err := cal.OpenDays(date(2025, 3, 2), date(2025, 3, 8).Add(23*time.Hour))
	require.NoError(t, err)
	assert.Len(t, days, 6)
	for _, d := range days {
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}
