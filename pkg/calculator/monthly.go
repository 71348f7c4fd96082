package calculator

import (
	"time"

	"sales-watchlist/pkg/models"

	"github.com/shopspring/decimal"
)

// MonthlyPivot somme les quantités par (mois, produit) sur la plage r.
// Les bornes de mois sont construites avec l'année de now, pas celle de r
// (comportement historique conservé).
func MonthlyPivot(orders []models.Order, r models.DateRange, now time.Time) models.PivotTable {
	var inRange []models.Order
	var products []string
	col := map[string]int{}
	for _, o := range orders {
		if !r.Contains(o.OrderDate) {
			continue
		}
		inRange = append(inRange, o)
		if _, ok := col[o.Product]; !ok {
			col[o.Product] = len(products)
			products = append(products, o.Product)
		}
	}

	table := models.PivotTable{Products: products}
	for _, span := range monthSpans(r.Start.Month(), r.End.Month(), now.Year()) {
		row := models.PivotRow{Month: int(span.Start.Month()), Values: make([]decimal.Decimal, len(products))}
		for i := range row.Values {
			row.Values[i] = decimal.Zero
		}
		for _, o := range inRange {
			if span.Contains(o.OrderDate) {
				j := col[o.Product]
				row.Values[j] = row.Values[j].Add(o.Quantity)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
