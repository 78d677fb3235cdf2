package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dated struct {
	name string
	at   time.Time
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func names(items []dated) []string {
	var out []string
	for _, item := range items {
		out = append(out, item.name)
	}
	return out
}

func TestFilter_TrailingMonthWindow(t *testing.T) {
	items := []dated{
		{"jan1", date(2025, time.January, 1)},
		{"jan15", date(2025, time.January, 15)},
		{"feb1", date(2025, time.February, 1)},
	}
	now := date(2025, time.February, 2)

	got := Filter(items, func(d dated) time.Time { return d.at }, KindMonth, Range{}, now)

	// Jan 1 is 32 days back, outside the trailing 30 days; the rest are in.
	assert.Equal(t, []string{"jan15", "feb1"}, names(got))
}

func TestFilter_AllReturnsInputUnchanged(t *testing.T) {
	items := []dated{{"old", date(2019, time.June, 1)}}
	got := Filter(items, func(d dated) time.Time { return d.at }, KindAll, Range{}, time.Now())
	assert.Equal(t, items, got)
}

func TestFilter_Today(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.Local)
	items := []dated{
		{"this-morning", time.Date(2025, time.March, 10, 8, 0, 0, 0, time.Local)},
		{"yesterday", time.Date(2025, time.March, 9, 23, 59, 0, 0, time.Local)},
	}

	got := Filter(items, func(d dated) time.Time { return d.at }, KindToday, Range{}, now)
	assert.Equal(t, []string{"this-morning"}, names(got))
}

func TestFilter_IncompleteCustomRangeIsNoOp(t *testing.T) {
	end := date(2025, time.April, 1)
	items := []dated{
		{"ancient", date(2000, time.January, 1)},
		{"recent", date(2025, time.March, 20)},
	}

	got := Filter(items, func(d dated) time.Time { return d.at }, KindCustom, Range{End: &end}, date(2025, time.April, 2))
	assert.Equal(t, items, got, "custom with missing start must return input unchanged")
}

func TestFilter_CustomRangeInclusiveEndOfDay(t *testing.T) {
	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.Local) // midnight; normalized to end of day
	items := []dated{
		{"start-day", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.Local)},
		{"last-evening", time.Date(2025, time.May, 31, 22, 45, 0, 0, time.Local)},
		{"june", time.Date(2025, time.June, 1, 0, 0, 1, 0, time.Local)},
	}

	got := Filter(items, func(d dated) time.Time { return d.at }, KindCustom, Range{Start: &start, End: &end}, time.Now())
	assert.Equal(t, []string{"start-day", "last-evening"}, names(got))
}

func TestBounds_WindowLengths(t *testing.T) {
	now := date(2025, time.July, 1)

	cases := []struct {
		kind Kind
		days int
	}{
		{KindWeek, 7},
		{KindMonth, 30},
		{KindThreeMonths, 90},
		{KindSixMonths, 180},
		{KindTwelveMonths, 365},
	}
	for _, tc := range cases {
		start, end, ok := Bounds(tc.kind, Range{}, now)
		require.True(t, ok, string(tc.kind))
		assert.Equal(t, now, end)
		assert.Equal(t, now.AddDate(0, 0, -tc.days), start, string(tc.kind))
	}
}

func TestParseKind_UnknownFallsBackToAll(t *testing.T) {
	assert.Equal(t, KindAll, ParseKind("fortnight"))
	assert.Equal(t, KindSixMonths, ParseKind("6months"))
}

func TestEndOfDay(t *testing.T) {
	end := EndOfDay(time.Date(2025, time.May, 31, 9, 0, 0, 0, time.Local))
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 59, end.Second())
}
