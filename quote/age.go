package quote

import (
	"fmt"
	"math"
	"time"
)

// DateOfBirthLayout is the stored date of birth format (DD/MM/YYYY)
const DateOfBirthLayout = "02/01/2006"

// AgeUnit selects the unit of an elapsed-time calculation
type AgeUnit string

const (
	AgeYears  AgeUnit = "years"
	AgeMonths AgeUnit = "months"
	AgeWeeks  AgeUnit = "weeks"
	AgeDays   AgeUnit = "days"
)

// ParseDateOfBirth parses value with DateOfBirthLayout in loc
func ParseDateOfBirth(value string, loc *time.Location) (time.Time, error) {
	dob, err := time.ParseInLocation(DateOfBirthLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidDateOfBirth, value, err)
	}
	return dob, nil
}

// Elapsed returns the whole units from since to now, floored.
// Calendar units count a month as complete once the day of month and
// time of day of since have been reached.
func Elapsed(now, since time.Time, unit AgeUnit) (int, error) {
	switch unit {
	case AgeYears:
		return floorDiv(monthsBetween(now, since), 12), nil
	case AgeMonths:
		return monthsBetween(now, since), nil
	case AgeWeeks:
		return int(math.Floor(now.Sub(since).Hours() / (24 * 7))), nil
	case AgeDays:
		return int(math.Floor(now.Sub(since).Hours() / 24)), nil
	default:
		return 0, fmt.Errorf("unsupported age unit %q", unit)
	}
}

func monthsBetween(now, since time.Time) int {
	months := (now.Year()-since.Year())*12 + int(now.Month()-since.Month())
	if dayClock(now) < dayClock(since) {
		months--
	}
	return months
}

// dayClock orders instants within a month by day then time of day
func dayClock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(t.Day())*24*time.Hour +
		time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond())
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
