// Package period provides the shared date-window filter used by the
// dashboard, analytics and simulation history views.
package period

import "time"

// Kind selects a predefined trailing window or a custom range.
type Kind string

const (
	KindAll          Kind = "all"
	KindToday        Kind = "today"
	KindWeek         Kind = "week"
	KindMonth        Kind = "month"
	KindThreeMonths  Kind = "3months"
	KindSixMonths    Kind = "6months"
	KindTwelveMonths Kind = "12months"
	KindCustom       Kind = "custom"
)

// ParseKind maps a query value onto a Kind, defaulting to all.
func ParseKind(value string) Kind {
	switch Kind(value) {
	case KindToday, KindWeek, KindMonth, KindThreeMonths, KindSixMonths, KindTwelveMonths, KindCustom:
		return Kind(value)
	default:
		return KindAll
	}
}

// Range is a custom window. Both ends must be set for the window to
// apply; a half-open range is treated as no filter at all.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// Bounds resolves the kind to an inclusive [start, end] window relative
// to now. The second return value is false when no filtering applies
// (all, or an incomplete custom range).
func Bounds(kind Kind, custom Range, now time.Time) (time.Time, time.Time, bool) {
	switch kind {
	case KindToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, now, true
	case KindWeek:
		return now.AddDate(0, 0, -7), now, true
	case KindMonth:
		return now.AddDate(0, 0, -30), now, true
	case KindThreeMonths:
		return now.AddDate(0, 0, -90), now, true
	case KindSixMonths:
		return now.AddDate(0, 0, -180), now, true
	case KindTwelveMonths:
		return now.AddDate(0, 0, -365), now, true
	case KindCustom:
		if custom.Start == nil || custom.End == nil {
			return time.Time{}, time.Time{}, false
		}
		return *custom.Start, EndOfDay(*custom.End), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// EndOfDay normalizes a custom range end to 23:59:59.999 local time.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Filter returns the items whose date falls inside the window, bounds
// inclusive. The input is returned unchanged when no window applies.
func Filter[T any](items []T, at func(T) time.Time, kind Kind, custom Range, now time.Time) []T {
	start, end, ok := Bounds(kind, custom, now)
	if !ok {
		return items
	}
	var matched []T
	for _, item := range items {
		ts := at(item)
		if !ts.Before(start) && !ts.After(end) {
			matched = append(matched, item)
		}
	}
	return matched
}
