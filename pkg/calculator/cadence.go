package calculator

import (
	"sort"
	"time"

	"sales-watchlist/pkg/models"
)

// GroupByClient regroupe les commandes par ClientID, dans l'ordre de première apparition.
// Chaque historique est trié par date croissante (tri stable).
func GroupByClient(orders []models.Order) []models.ClientOrderHistory {
	index := map[uint64]int{}
	var out []models.ClientOrderHistory
	for _, o := range orders {
		i, ok := index[o.ClientID]
		if !ok {
			i = len(out)
			index[o.ClientID] = i
			out = append(out, models.ClientOrderHistory{ClientID: o.ClientID, ClientName: o.ClientName})
		}
		out[i].Orders = append(out[i].Orders, o)
	}
	for i := range out {
		h := out[i].Orders
		sort.SliceStable(h, func(a, b int) bool { return h[a].OrderDate.Before(h[b].OrderDate) })
	}
	return out
}

func distinctDates(h models.ClientOrderHistory) int {
	seen := map[time.Time]struct{}{}
	for _, o := range h.Orders {
		seen[civilDate(o.OrderDate)] = struct{}{}
	}
	return len(seen)
}

// Evaluate calcule le profil de cadence d'un historique trié.
// ok=false si le client n'a qu'une seule date de commande distincte (ou aucune),
// ou s'il est absent de la liste des clients (nom vide après la jointure gauche).
func Evaluate(h models.ClientOrderHistory, now time.Time) (models.CadenceProfile, *models.WatchlistEntry, bool) {
	if h.ClientName == "" || distinctDates(h) <= 1 {
		return models.CadenceProfile{}, nil, false
	}
	n := len(h.Orders)
	sum := 0
	for i := 0; i < n-1; i++ {
		sum += daysBetween(h.Orders[i].OrderDate, h.Orders[i+1].OrderDate)
	}
	last := h.Orders[n-1].OrderDate

	p := models.CadenceProfile{
		ClientID:            h.ClientID,
		AverageIntervalDays: float64(sum) / float64(n-1),
		DaysSinceLastOrder:  daysBetween(last, now),
	}
	p.IsFlagged = float64(p.DaysSinceLastOrder) > p.AverageIntervalDays
	if !p.IsFlagged {
		return p, nil, true
	}

	items := make([]models.LineItem, 0, n)
	for _, o := range h.Orders {
		items = append(items, models.LineItem{Product: o.Product, Quantity: o.Quantity})
	}
	return p, &models.WatchlistEntry{
		ClientName:          h.ClientName,
		AverageIntervalDays: p.AverageIntervalDays,
		DaysSinceLastOrder:  p.DaysSinceLastOrder,
		LastOrderDate:       last,
		Items:               items,
	}, true
}

// AnalyzeCadence renvoie les profils calculés et la watchlist, dans l'ordre de première apparition des clients.
func AnalyzeCadence(orders []models.Order, now time.Time) ([]models.CadenceProfile, []models.WatchlistEntry) {
	var (
		profiles []models.CadenceProfile
		entries  []models.WatchlistEntry
	)
	for _, h := range GroupByClient(orders) {
		p, e, ok := Evaluate(h, now)
		if !ok {
			continue
		}
		profiles = append(profiles, p)
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return profiles, entries
}
