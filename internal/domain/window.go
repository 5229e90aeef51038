package domain

import (
	"errors"
	"time"
)

var ErrUnknownWindow = errors.New("unknown window")

// Window is the time range points are aggregated over for ranking.
type Window string

const (
	WindowLast7Days  Window = "last_7_days"
	WindowLast30Days Window = "last_30_days"
	WindowAllTime    Window = "all_time"
)

// DefaultWindow is what clients fall back to when they send nothing.
const DefaultWindow = WindowAllTime

// ParseWindow maps the client's query value to a Window.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowLast7Days, WindowLast30Days, WindowAllTime:
		return Window(s), nil
	}
	return "", ErrUnknownWindow
}

// Bounded reports whether the window has a lower time bound.
func (w Window) Bounded() bool {
	return w != WindowAllTime
}

// Duration returns the span of a bounded window. Zero for all_time.
func (w Window) Duration() time.Duration {
	switch w {
	case WindowLast7Days:
		return 7 * 24 * time.Hour
	case WindowLast30Days:
		return 30 * 24 * time.Hour
	}
	return 0
}

// CutoffFrom returns the inclusive lower bound of the window anchored at now.
// ok is false for unbounded windows. An event exactly at the cutoff counts;
// events after now do not.
func (w Window) CutoffFrom(now time.Time) (cutoff time.Time, ok bool) {
	if !w.Bounded() {
		return time.Time{}, false
	}
	return now.Add(-w.Duration()), true
}

// Contains reports whether an event at t falls inside the window anchored at now.
func (w Window) Contains(t, now time.Time) bool {
	if t.After(now) {
		return false
	}
	cutoff, bounded := w.CutoffFrom(now)
	if !bounded {
		return true
	}
	return !t.Before(cutoff)
}
