package calculator

import (
	"testing"
	"time"

	"sales-watchlist/pkg/models"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestMonthlyPivot_ZeroFilledMonths(t *testing.T) {
	now := date(2021, 10, 1)
	orders := []models.Order{
		order(1, "A", "Widget", 3, date(2021, 4, 2)),
		order(2, "B", "Widget", 4, date(2021, 4, 30)),
		order(2, "B", "Gadget", 1, date(2021, 3, 15)),
		order(1, "A", "Widget", 9, date(2021, 6, 1)), // hors plage
	}
	r := models.DateRange{Start: date(2021, 3, 1), End: date(2021, 5, 31)}

	got := MonthlyPivot(orders, r, now)
	if len(got.Products) != 2 || got.Products[0] != "Widget" || got.Products[1] != "Gadget" {
		t.Fatalf("unexpected products: %v", got.Products)
	}
	if len(got.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(got.Rows))
	}
	want := map[int][2]int64{3: {0, 1}, 4: {7, 0}, 5: {0, 0}}
	for _, row := range got.Rows {
		w := want[row.Month]
		if !row.Values[0].Equal(decimal.NewFromInt(w[0])) || !row.Values[1].Equal(decimal.NewFromInt(w[1])) {
			t.Fatalf("month %d: got %v, want %v", row.Month, row.Values, w)
		}
	}
}

func TestMonthlyPivot_UsesCurrentYearForMonthBounds(t *testing.T) {
	orders := []models.Order{order(1, "A", "Widget", 5, date(2020, 4, 10))}
	r := models.DateRange{Start: date(2020, 4, 1), End: date(2020, 4, 30)}

	got := MonthlyPivot(orders, r, date(2021, 1, 1))
	if len(got.Products) != 1 || len(got.Rows) != 1 {
		t.Fatalf("unexpected table: %+v", got)
	}
	// bornes de mois en 2021 : la commande de 2020 n'y tombe pas
	if !got.Rows[0].Values[0].IsZero() {
		t.Fatalf("got %v, want 0", got.Rows[0].Values[0])
	}

	got = MonthlyPivot(orders, r, date(2020, 12, 31))
	if !got.Rows[0].Values[0].Equal(decimal.NewFromInt(5)) {
		t.Fatalf("got %v, want 5", got.Rows[0].Values[0])
	}
}

func TestMonthlyPivot_InclusiveBounds(t *testing.T) {
	orders := []models.Order{
		order(1, "A", "Widget", 1, date(2021, 3, 1)),
		order(1, "A", "Widget", 2, date(2021, 3, 31)),
	}
	r := models.DateRange{Start: date(2021, 3, 1), End: date(2021, 3, 31)}
	got := MonthlyPivot(orders, r, date(2021, 6, 1))
	if !got.Rows[0].Values[0].Equal(decimal.NewFromInt(3)) {
		t.Fatalf("got %v, want 3", got.Rows[0].Values[0])
	}
}

func TestMonthlyPivot_Empty(t *testing.T) {
	r := models.DateRange{Start: date(2021, 3, 1), End: date(2021, 4, 30)}
	got := MonthlyPivot(nil, r, date(2021, 6, 1))
	if len(got.Products) != 0 || len(got.Rows) != 2 {
		t.Fatalf("unexpected table: %+v", got)
	}
}
