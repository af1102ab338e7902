package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/orderseed/internal/sampler"
)

const (
	// DefaultMaxAttempts bounds the day-rejection loop of RandomTimestamp
	DefaultMaxAttempts = 1000
)

var (
	// ErrNoOpenDayInRange is returned when a range contains no open day
	ErrNoOpenDayInRange = errors.New("no open day in range")
	// ErrInvalidRange is returned when a range ends before it starts
	ErrInvalidRange = errors.New("range end is before range start")
	// ErrInvalidHours is returned when a day closes before it opens
	ErrInvalidHours = errors.New("close time must be after open time")
)

// TimeOfDay is a wall-clock time relative to midnight
type TimeOfDay struct {
	Hour   int
	Minute int
}

// At returns a TimeOfDay
func At(hour, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

// ParseTimeOfDay parses "HH:MM" (24h)
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// String formats as HH:MM
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) offset() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

// DayHours is the schedule for one day of the week
type DayHours struct {
	Closed bool
	Open   TimeOfDay
	Close  TimeOfDay
}

// Schedule is a weekly business-hours table keyed by weekday
type Schedule struct {
	Location *time.Location
	Days     [7]DayHours // Indexed by time.Weekday
}

// DefaultSchedule returns the store's standard week: closed Sunday,
// 10:00-21:00 Monday to Thursday, a late close on Friday and an early
// close on Saturday.
func DefaultSchedule() Schedule {
	weekday := DayHours{Open: At(10, 0), Close: At(21, 0)}
	var s Schedule
	s.Location = time.Local
	s.Days[time.Sunday] = DayHours{Closed: true}
	s.Days[time.Monday] = weekday
	s.Days[time.Tuesday] = weekday
	s.Days[time.Wednesday] = weekday
	s.Days[time.Thursday] = weekday
	s.Days[time.Friday] = DayHours{Open: At(10, 0), Close: At(22, 0)}
	s.Days[time.Saturday] = DayHours{Open: At(10, 0), Close: At(20, 0)}
	return s
}

// Validate checks every open day closes after it opens
func (s Schedule) Validate() error {
	for wd, d := range s.Days {
		if d.Closed {
			continue
		}
		if d.Close.offset() <= d.Open.offset() {
			return fmt.Errorf("%w: %s %s-%s", ErrInvalidHours, time.Weekday(wd), d.Open, d.Close)
		}
	}
	return nil
}

// Window is the open interval of one calendar day
type Window struct {
	Open  time.Time
	Close time.Time
}

// Contains reports whether t lies in [Open, Close]
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Open) && !t.After(w.Close)
}

// Calendar answers business-hours questions and samples timestamps
type Calendar struct {
	schedule    Schedule
	maxAttempts int
}

// New creates a calendar for the given schedule
func New(schedule Schedule) (*Calendar, error) {
	if schedule.Location == nil {
		schedule.Location = time.Local
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return &Calendar{schedule: schedule, maxAttempts: DefaultMaxAttempts}, nil
}

// WithMaxAttempts sets the rejection bound; values < 1 are ignored
func (c *Calendar) WithMaxAttempts(n int) *Calendar {
	if n > 0 {
		c.maxAttempts = n
	}
	return c
}

// Location returns the time zone the schedule is expressed in
func (c *Calendar) Location() *time.Location {
	return c.schedule.Location
}

// StartOfDay returns midnight of t's calendar day in the schedule location
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.schedule.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.schedule.Location)
}

// HoursFor returns the business hours of date's calendar day.
// ok is false when the business is closed that day.
func (c *Calendar) HoursFor(date time.Time) (w Window, ok bool) {
	midnight := c.StartOfDay(date)
	d := c.schedule.Days[midnight.Weekday()]
	if d.Closed {
		return Window{}, false
	}
	return Window{
		Open:  wallClock(midnight, d.Open),
		Close: wallClock(midnight, d.Close),
	}, true
}

// wallClock resolves a time of day on midnight's date, surviving DST shifts
func wallClock(midnight time.Time, t TimeOfDay) time.Time {
	return time.Date(midnight.Year(), midnight.Month(), midnight.Day(), t.Hour, t.Minute, 0, 0, midnight.Location())
}

// IsOpen reports whether the business opens at all on date's day
func (c *Calendar) IsOpen(date time.Time) bool {
	_, ok := c.HoursFor(date)
	return ok
}

// LastOpenDayOnOrBefore walks back from date, one day at a time, to the
// nearest open day and returns its midnight.
func (c *Calendar) LastOpenDayOnOrBefore(date time.Time) (time.Time, error) {
	d := c.StartOfDay(date)
	for i := 0; i < 7; i++ {
		if c.IsOpen(d) {
			return d, nil
		}
		d = d.AddDate(0, 0, -1)
	}
	return time.Time{}, fmt.Errorf("%w: closed every day of the week", ErrNoOpenDayInRange)
}

// OpenDays lists the midnights of every open day touching [start, end]
func (c *Calendar) OpenDays(start, end time.Time) ([]time.Time, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	var days []time.Time
	for d := c.StartOfDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		if _, ok := c.clip(d, start, end); ok {
			days = append(days, d)
		}
	}
	return days, nil
}

// clip intersects day's business hours with [start, end]
func (c *Calendar) clip(day, start, end time.Time) (Window, bool) {
	w, ok := c.HoursFor(day)
	if !ok {
		return Window{}, false
	}
	if w.Open.Before(start) {
		w.Open = start
	}
	if w.Close.After(end) {
		w.Close = end
	}
	if w.Close.Before(w.Open) {
		return Window{}, false
	}
	return w, true
}

// DrawResult is the outcome of one timestamp draw
type DrawResult struct {
	At         time.Time
	Rejections int // Day draws discarded because the day was closed
}

// RandomTimestamp returns a uniformly drawn instant in [start, end] that
// falls within business hours
func (c *Calendar) RandomTimestamp(rng sampler.Source, start, end time.Time) (time.Time, error) {
	d, err := c.Draw(rng, start, end)
	if err != nil {
		return time.Time{}, err
	}
	return d.At, nil
}

// Draw samples a timestamp in two stages. A day is found by drawing an
// instant in [start, end] and rejecting it while its day is closed; then an
// instant is drawn inside that day's hours (clipped to the range). The
// day stage gives up after the attempt bound and falls back to picking
// uniformly among the enumerated open days, so a range without any open
// day fails with ErrNoOpenDayInRange instead of looping forever.
func (c *Calendar) Draw(rng sampler.Source, start, end time.Time) (DrawResult, error) {
	if end.Before(start) {
		return DrawResult{}, ErrInvalidRange
	}
	if rng == nil {
		rng = sampler.Default()
	}

	var rejections int
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		candidate := uniform(rng, start, end)
		w, ok := c.clip(candidate, start, end)
		if !ok {
			rejections++
			continue
		}
		return DrawResult{At: uniform(rng, w.Open, w.Close), Rejections: rejections}, nil
	}

	days, err := c.OpenDays(start, end)
	if err != nil {
		return DrawResult{}, err
	}
	if len(days) == 0 {
		return DrawResult{Rejections: rejections}, fmt.Errorf("%w: %s to %s",
			ErrNoOpenDayInRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	picked, err := sampler.Select(rng, days)
	if err != nil {
		return DrawResult{}, err
	}
	w, _ := c.clip(picked, start, end)
	return DrawResult{At: uniform(rng, w.Open, w.Close), Rejections: rejections}, nil
}

// uniform returns an instant in [from, to]
func uniform(rng sampler.Source, from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	return from.Add(time.Duration(rng.Float64() * float64(span)))
}
