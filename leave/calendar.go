package leave

import (
	"context"
	"time"
)

// =============================================================================
// DATE - Calendar day, normalized to midnight UTC
// =============================================================================

// Date is a calendar day with no time-of-day component. Normalizing to
// midnight UTC removes the DST off-by-one fragility of comparing raw
// timestamps: two Dates for the same calendar day are always equal.
type Date struct {
	t time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// =============================================================================
// WORKING-DAY COUNTER
// =============================================================================

// WorkingDays counts the days in [start, end] inclusive that are not
// Saturday or Sunday. A reversed range (start after end) yields 0; this
// is a silent zero, not an error. Holidays are NOT excluded.
//
// This is the single shared counter for the whole system; callers must
// not reimplement the loop.
func WorkingDays(start, end Date) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDays(1) {
		if !d.IsWeekend() {
			count++
		}
	}
	return count
}

// =============================================================================
// HOLIDAY CALENDAR - Informational only
// =============================================================================

// Holiday is a company holiday. Holidays are reference data for display;
// WorkingDays never consults them.
type Holiday struct {
	ID        string
	CompanyID string // empty = global
	Date      Date
	Name      string
	Recurring bool // same month/day every year
}

// HolidayCalendar provides holiday lookup.
type HolidayCalendar interface {
	// IsHoliday checks if a date is a holiday for the given company.
	// Company-specific holidays are checked first, then global ones.
	IsHoliday(ctx context.Context, companyID string, date Date) (bool, error)

	// Holidays returns all holidays visible to a company.
	Holidays(ctx context.Context, companyID string) ([]Holiday, error)
}
