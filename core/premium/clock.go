package premium

import (
	"strings"
	"time"

	"premium-estimator/core/types"
	"premium-estimator/internal/errors"
)

// Clock supplies the evaluation date of a calculation
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock in loc. A nil loc means time.Local.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return ClockFunc(func() time.Time { return time.Now().In(loc) })
}

// FixedClock always returns t
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// ParseDate reads a YYYY-MM-DD evaluation date in loc (nil means UTC)
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(types.DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.TypeInvalidInput, err, "invalid evaluation date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
