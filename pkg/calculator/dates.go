package calculator

import (
	"fmt"
	"strings"
	"time"

	"sales-watchlist/pkg/models"
)

// "D-M-YYYY", jour et mois sur 1 ou 2 chiffres
const argDateLayout = "2-1-2006"

// ParseDateArg("start_date=31-03-2021") -> 2021-03-31 00:00 UTC. Le préfixe "clé=" est optionnel.
func ParseDateArg(arg string) (time.Time, error) {
	if i := strings.LastIndex(arg, "="); i >= 0 {
		arg = arg[i+1:]
	}
	d, err := time.ParseInLocation(argDateLayout, arg, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: format attendu DD-MM-YYYY (ex: 31-03-2021)", models.ErrInvalidDate, arg)
	}
	return d, nil
}

// ParseRange construit la plage fermée [start, end] à partir des deux arguments CLI.
// Une plage inversée est acceptée : le pivot sera vide, la watchlist reste calculée.
func ParseRange(startArg, endArg string) (models.DateRange, error) {
	start, err := ParseDateArg(startArg)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("start_date: %w", err)
	}
	end, err := ParseDateArg(endArg)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("end_date: %w", err)
	}
	return models.DateRange{Start: start, End: end}, nil
}

// civilDate ramène t à minuit UTC de son jour calendaire local.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween renvoie le nombre de jours entiers de a à b.
func daysBetween(a, b time.Time) int {
	return int(civilDate(b).Sub(civilDate(a)).Hours() / 24)
}

// monthSpans renvoie [1er jour, dernier jour] de chaque mois first..last de l'année year.
func monthSpans(first, last time.Month, year int) []models.DateRange {
	var out []models.DateRange
	for m := first; m <= last; m++ {
		lb := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		out = append(out, models.DateRange{Start: lb, End: lb.AddDate(0, 1, -1)})
	}
	return out
}
