package feed

import (
	"fmt"
	"time"
)

// Window is the half-open-inclusive UTC range [Start, End] covering one
// calendar day in a fixed hour offset. End is exactly 1ms before the next
// day's start.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ComputeWindow converts a day given as "YYYYMMDD" plus a signed hour offset
// into the UTC window covering that calendar day in that offset. An offset of
// -8 shifts the window 8 hours later in UTC ("this day in UTC-8").
func ComputeWindow(day string, offsetHours int) (Window, error) {
	if len(day) != 8 {
		return Window{}, fmt.Errorf("%w: %q is not an 8-digit YYYYMMDD date", ErrInvalidDate, day)
	}

	// time.Parse rejects non-digits and out-of-range months/days, including
	// dates like 20240230 that never existed.
	start, err := time.Parse("20060102", day)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %w", ErrInvalidDate, day, err)
	}

	offset := time.Duration(offsetHours) * time.Hour
	start = start.UTC().Add(-offset)
	return Window{
		Start: start,
		End:   start.Add(24*time.Hour - time.Millisecond),
	}, nil
}
