// Package dataset joint factures brutes et clients en une table de ventes nettoyée.
package dataset

import (
	"fmt"
	"time"

	"sales-watchlist/pkg/models"
)

const invoiceDateLayout = "2006-01-02"

// Build éclate chaque facture en une ligne par article, fait la jointure
// gauche sur les clients et retire les pseudo-produits d'expédition.
func Build(invoices []models.Invoice, clients []models.Client, excluded []string) ([]models.Order, error) {
	names := make(map[uint64]string, len(clients))
	for _, c := range clients {
		names[c.ID] = displayName(c)
	}
	skip := make(map[string]struct{}, len(excluded))
	for _, p := range excluded {
		skip[p] = struct{}{}
	}

	var orders []models.Order
	for _, inv := range invoices {
		date, err := time.ParseInLocation(invoiceDateLayout, inv.InvoiceDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("client %d: %w: %q", inv.ClientID, models.ErrInvalidDate, inv.InvoiceDate)
		}
		for _, it := range inv.Items {
			if _, ok := skip[it.ProductKey]; ok {
				continue
			}
			if it.Qty.IsNegative() {
				return nil, fmt.Errorf("client %d product %q: negative quantity %s", inv.ClientID, it.ProductKey, it.Qty)
			}
			orders = append(orders, models.Order{
				ClientID:   inv.ClientID,
				ClientName: names[inv.ClientID], // vide si client inconnu (jointure gauche)
				Product:    it.ProductKey,
				Quantity:   it.Qty,
				OrderDate:  date,
			})
		}
	}
	return orders, nil
}

func displayName(c models.Client) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}
