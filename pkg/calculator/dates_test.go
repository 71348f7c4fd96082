package calculator

import (
	"errors"
	"testing"
	"time"

	"sales-watchlist/pkg/models"
)

func TestParseDateArg_Valid(t *testing.T) {
	for _, in := range []string{"31-03-2021", "start_date=31-03-2021", "31-3-2021"} {
		got, err := ParseDateArg(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		want := time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Fatalf("%q: got %v, want %v", in, got, want)
		}
	}
}

func TestParseDateArg_Invalid(t *testing.T) {
	for _, in := range []string{"2021-03-31", "32-01-2021", "end_date=", "tomorrow"} {
		if _, err := ParseDateArg(in); !errors.Is(err, models.ErrInvalidDate) {
			t.Fatalf("%q: got %v, want ErrInvalidDate", in, err)
		}
	}
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("start=01-03-2021", "end=31-05-2021")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Start.Month() != time.March || r.End.Month() != time.May {
		t.Fatalf("unexpected range: %+v", r)
	}
	if _, err := ParseRange("start=2021-03-01", "31-05-2021"); !errors.Is(err, models.ErrInvalidDate) {
		t.Fatalf("got %v, want ErrInvalidDate", err)
	}
}

func TestParseRange_ReversedIsAccepted(t *testing.T) {
	r, err := ParseRange("31-05-2021", "01-03-2021")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.End.Before(r.Start) {
		t.Fatalf("range must be kept as given: %+v", r)
	}
	if got := MonthlyPivot([]models.Order{order(1, "A", "Widget", 1, date(2021, 4, 1))}, r, date(2021, 6, 1)); len(got.Rows) != 0 || len(got.Products) != 0 {
		t.Fatalf("reversed range should yield an empty pivot, got %+v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2021, 3, 11, 17, 45, 0, 0, time.UTC)
	if got := daysBetween(a, b); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
	if got := daysBetween(a, a); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestMonthSpans(t *testing.T) {
	got := monthSpans(time.February, time.April, 2024)
	if len(got) != 3 {
		t.Fatalf("got %d months, want 3", len(got))
	}
	if got[0].End.Day() != 29 { // 2024 bissextile
		t.Fatalf("february end: got %v", got[0].End)
	}
	if got[2].Start.Month() != time.April || got[2].End.Day() != 30 {
		t.Fatalf("unexpected april span: %+v", got[2])
	}
	if len(monthSpans(time.November, time.February, 2024)) != 0 {
		t.Fatal("reversed months should yield no span")
	}
}
