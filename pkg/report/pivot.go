package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"sales-watchlist/pkg/models"
)

// RenderPivot écrit "Month,<produit...>" puis une ligne numérique par mois.
func RenderPivot(w io.Writer, t models.PivotTable) error {
	cw := csv.NewWriter(w)
	header := append([]string{"Month"}, t.Products...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, 0, len(row.Values)+1)
		rec = append(rec, strconv.Itoa(row.Month))
		for _, v := range row.Values {
			rec = append(rec, v.String())
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePivot écrase path avec le tableau croisé.
func WritePivot(path string, t models.PivotTable) error {
	return writeAtomic(path, func(w io.Writer) error { return RenderPivot(w, t) })
}
