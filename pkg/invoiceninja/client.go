// Package invoiceninja récupère factures et clients depuis l'API REST Invoice Ninja.
package invoiceninja

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sales-watchlist/pkg/models"
	"sales-watchlist/pkg/obs"
)

const (
	ModuleInvoices = "invoices"
	ModuleClients  = "clients"

	tokenHeader = "X-Ninja-Token"
)

// Client appelle l'API avec le jeton passé en en-tête (jamais dans l'URL).
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New construit un client pour baseURL (ex: https://app.invoiceninja.com/api/v1).
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type envelope[T any] struct {
	Data []T `json:"data"`
	Meta struct {
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

func checkModule(module string) error {
	if module != ModuleInvoices && module != ModuleClients {
		return fmt.Errorf("%w %q: choose %s or %s", models.ErrUnknownModule, module, ModuleInvoices, ModuleClients)
	}
	return nil
}

// Count renvoie le nombre total d'enregistrements du module (meta.pagination.total).
func (c *Client) Count(ctx context.Context, module string) (int, error) {
	if err := checkModule(module); err != nil {
		return 0, err
	}
	var env envelope[json.RawMessage]
	if err := c.get(ctx, module, nil, &env); err != nil {
		return 0, err
	}
	return env.Meta.Pagination.Total, nil
}

// Invoices récupère toutes les factures en un seul appel.
func (c *Client) Invoices(ctx context.Context) ([]models.Invoice, error) {
	return fetchAll[models.Invoice](ctx, c, ModuleInvoices)
}

// Clients récupère tous les clients en un seul appel.
func (c *Client) Clients(ctx context.Context) ([]models.Client, error) {
	return fetchAll[models.Client](ctx, c, ModuleClients)
}

// fetchAll demande per_page = total pour tout obtenir d'un coup, puis vérifie le compte.
func fetchAll[T any](ctx context.Context, c *Client, module string) ([]T, error) {
	total, err := c.Count(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("count %s: %w", module, err)
	}
	obs.Logger.Info("api_total", "module", module, "total", total)

	var env envelope[T]
	q := url.Values{"per_page": {fmt.Sprint(total)}}
	if err := c.get(ctx, module, q, &env); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", module, err)
	}
	if len(env.Data) != total {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", module, models.ErrShapeMismatch, len(env.Data), total)
	}
	obs.Logger.Info("api_fetched", "module", module, "records", len(env.Data))
	return env.Data, nil
}

func (c *Client) get(ctx context.Context, module string, q url.Values, out any) error {
	u := c.baseURL + "/" + module
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status code %d", models.ErrUpstream, resp.StatusCode)
	}
	obs.Logger.Debug("api_call_ok", "module", module, "status", resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", module, err)
	}
	return nil
}
