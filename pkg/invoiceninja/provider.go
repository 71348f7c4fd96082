package invoiceninja

import (
	"context"
	"fmt"

	"sales-watchlist/pkg/dataset"
	"sales-watchlist/pkg/models"
)

// Provider expose l'API comme models.OrderSource : fetch, jointure, nettoyage.
type Provider struct {
	Client   *Client
	Excluded []string
}

// Orders implémente models.OrderSource.
func (p *Provider) Orders(ctx context.Context) ([]models.Order, error) {
	clients, err := p.Client.Clients(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := p.Client.Invoices(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := dataset.Build(invoices, clients, p.Excluded)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	return orders, nil
}
