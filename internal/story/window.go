package story

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// DateLayout is the YYYYMMDD layout used for story dates and window bounds.
const DateLayout = "20060102"

// ParseDate parses an 8-digit YYYYMMDD literal as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYYMMDD", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Window is a [Start, End) range of calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow parses both window bounds.
func NewWindow(start, end string) (Window, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Window{}, fmt.Errorf("start date: %w", err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return Window{}, fmt.Errorf("end date: %w", err)
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether t falls on or after Start and before End.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// String formats the window as "YYYYMMDD..YYYYMMDD".
func (w Window) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// Filter returns the stories dated inside the window, in input order.
// Stories whose date does not parse are skipped with a warning.
func Filter(stories []Story, w Window, logger *log.Logger) []Story {
	var kept []Story
	for _, s := range stories {
		d, err := ParseDate(s.Date)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping story with unparseable date", "id", s.ID, "date", s.Date, "err", err)
			}
			continue
		}
		if w.Contains(d) {
			kept = append(kept, s)
		}
	}
	return kept
}
