package clock

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOfWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2025, time.June, 2), date(2025, time.June, 2)},                          // a Monday maps to itself
		{time.Date(2025, time.June, 4, 15, 30, 0, 0, time.UTC), date(2025, time.June, 2)}, // mid-week afternoon
		{date(2025, time.June, 8), date(2025, time.June, 2)},                          // Sunday stays in the week begun the previous Monday
		{date(2025, time.June, 9), date(2025, time.June, 9)},                          // next Monday starts a new week
		{date(2025, time.January, 1), date(2024, time.December, 30)},                  // week spanning a year boundary
	}
	for _, c := range cases {
		got := MondayOfWeek(c.in)
		if !got.Equal(c.want) {
			t.Errorf("MondayOfWeek(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestSundayOfWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{date(2025, time.June, 2), date(2025, time.June, 8)},
		{date(2025, time.June, 8), date(2025, time.June, 8)},
		{date(2024, time.December, 31), date(2025, time.January, 5)},
	}
	for _, c := range cases {
		got := SundayOfWeek(c.in)
		if !got.Equal(c.want) {
			t.Errorf("SundayOfWeek(%s) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, time.March, 15, 23, 59, 59, 999, time.UTC)
	want := date(2025, time.March, 15)
	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("StartOfDay(%s) = %s, want %s", in, got, want)
	}
}

func TestMonthBoundaries(t *testing.T) {
	in := time.Date(2025, time.February, 14, 12, 0, 0, 0, time.UTC)
	if got := StartOfMonth(in); !got.Equal(date(2025, time.February, 1)) {
		t.Errorf("StartOfMonth = %s", got)
	}
	if got := EndOfMonth(in); !got.Equal(date(2025, time.March, 1)) {
		t.Errorf("EndOfMonth = %s", got)
	}
	// December rolls into the next year.
	dec := date(2024, time.December, 31)
	if got := EndOfMonth(dec); !got.Equal(date(2025, time.January, 1)) {
		t.Errorf("EndOfMonth(december) = %s", got)
	}
}

func TestStartOfYear(t *testing.T) {
	in := time.Date(2025, time.August, 31, 8, 0, 0, 0, time.UTC)
	if got := StartOfYear(in); !got.Equal(date(2025, time.January, 1)) {
		t.Errorf("StartOfYear = %s", got)
	}
}

func TestFixedClock(t *testing.T) {
	at := date(2025, time.June, 4)
	c := Fixed(at)
	if !c.Now().Equal(at) {
		t.Errorf("Fixed clock drifted: %s", c.Now())
	}
}
