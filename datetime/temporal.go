package datetime

import (
	"time"

	"github.com/pkg/errors"
)

// Temporal is a point in time, or a part of one, that converts to epoch seconds.
// The set of implementations is closed: Instant, Zoned, LocalDate, LocalTime,
// LocalDateTime, OffsetDateTime and OffsetTime.
type Temporal interface {
	// epoch returns the epoch seconds of the value; today is the current UTC
	// date, used by values without a date part.
	epoch(today LocalDate) int64
}

// Instant is an absolute point in time.
type Instant struct {
	Time time.Time
}

func (i Instant) epoch(LocalDate) int64 { return i.Time.Unix() }

// Zoned is a date and time in a named location.
type Zoned struct {
	Time time.Time
}

func (z Zoned) epoch(LocalDate) int64 { return z.Time.Unix() }

// LocalDate is a calendar date, taken at UTC midnight.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

func (d LocalDate) at(t LocalTime, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, loc)
}

func (d LocalDate) epoch(LocalDate) int64 { return d.at(LocalTime{}, time.UTC).Unix() }

// LocalTime is a wall-clock time without a date, taken on the current UTC date.
type LocalTime struct {
	Hour   int
	Minute int
	Second int
}

func (t LocalTime) epoch(today LocalDate) int64 { return today.at(t, time.UTC).Unix() }

// LocalDateTime is a date and wall-clock time without a zone, taken in UTC.
type LocalDateTime struct {
	Date LocalDate
	Time LocalTime
}

func (dt LocalDateTime) epoch(LocalDate) int64 { return dt.Date.at(dt.Time, time.UTC).Unix() }

// OffsetDateTime is a date and time at a fixed offset from UTC.
type OffsetDateTime struct {
	Local  LocalDateTime
	Offset time.Duration
}

func (o OffsetDateTime) epoch(LocalDate) int64 {
	return o.Local.Date.at(o.Local.Time, fixedZone(o.Offset)).Unix()
}

// OffsetTime is a wall-clock time at a fixed offset from UTC, taken on the current UTC date.
type OffsetTime struct {
	Time   LocalTime
	Offset time.Duration
}

func (o OffsetTime) epoch(today LocalDate) int64 {
	return today.at(o.Time, fixedZone(o.Offset)).Unix()
}

func fixedZone(offset time.Duration) *time.Location {
	return time.FixedZone("", int(offset/time.Second))
}

// Clock returns the current time.
type Clock func() time.Time

// EpochOf converts t to epoch seconds, using the system clock for values without a date.
func EpochOf(t Temporal) (int64, error) {
	return EpochAt(t, time.Now)
}

// EpochAt converts t to epoch seconds, using now for values without a date.
func EpochAt(t Temporal, now Clock) (int64, error) {
	if t == nil {
		return 0, errors.Wrap(ErrUnsupportedTemporal, "unable to convert <nil> to epoch seconds")
	}
	return t.epoch(DateOf(now().UTC())), nil
}
