package checkout

import (
	"encoding/json"
	"fmt"
	"time"
)

// BusinessTime is a wall-clock reading in the business time zone.
type BusinessTime struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday time.Weekday // 0 = Sunday
	Hour    int
	Minute  int
}

// Date returns the calendar date of the reading.
func (b BusinessTime) Date() Date {
	return Date{Year: b.Year, Month: b.Month, Day: b.Day}
}

// Clock supplies "now" in the business time zone.
type Clock interface {
	Now() BusinessTime
}

// ZoneClock reads an instant source and converts it to a fixed location,
// independent of the process's local zone.
type ZoneClock struct {
	loc *time.Location
	now func() time.Time
}

// NewZoneClock returns a clock for loc. A nil now uses time.Now.
func NewZoneClock(loc *time.Location, now func() time.Time) *ZoneClock {
	if now == nil {
		now = time.Now
	}
	return &ZoneClock{loc: loc, now: now}
}

// FixedClock returns a clock frozen at t.
func FixedClock(loc *time.Location, t time.Time) *ZoneClock {
	return NewZoneClock(loc, func() time.Time { return t })
}

func (c *ZoneClock) Location() *time.Location { return c.loc }

func (c *ZoneClock) Now() BusinessTime {
	t := c.now().In(c.loc)
	return BusinessTime{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Weekday: t.Weekday(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
	}
}

// Date is a civil calendar date with no time or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// AddDays returns the date n days later, normalizing month and year rollover.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}
