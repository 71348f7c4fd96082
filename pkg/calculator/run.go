package calculator

import (
	"context"
	"fmt"

	"sales-watchlist/pkg/clock"
	"sales-watchlist/pkg/models"
	"sales-watchlist/pkg/obs"

	"github.com/schollz/progressbar/v3"
)

// Run charge les ventes depuis src puis calcule le pivot mensuel et la watchlist.
// clk fournit "maintenant" pour la cadence et l'année du pivot ; cfg.Range borne le pivot.
func Run(ctx context.Context, src models.OrderSource, clk clock.Source, cfg models.Config) (models.Results, error) {
	orders, err := src.Orders(ctx)
	if err != nil {
		return models.Results{}, fmt.Errorf("load orders: %w", err)
	}
	obs.Logger.Info("orders_loaded", "rows", len(orders))
	now := clk.Now()

	res := models.Results{Pivot: MonthlyPivot(orders, cfg.Range, now)}
	obs.Logger.Info("pivot_built", "months", len(res.Pivot.Rows), "products", len(res.Pivot.Products))

	histories := GroupByClient(orders)
	var bar *progressbar.ProgressBar
	if cfg.Verbose {
		bar = progressbar.Default(int64(len(histories)), "clients")
	}
	for _, h := range histories {
		if err := ctx.Err(); err != nil {
			return models.Results{}, err
		}
		p, e, ok := Evaluate(h, now)
		if bar != nil {
			_ = bar.Add(1)
		}
		if !ok {
			obs.Logger.Debug("client_skipped", "client_id", h.ClientID, "orders", len(h.Orders))
			continue
		}
		res.Profiles = append(res.Profiles, p)
		if e != nil {
			res.Watchlist = append(res.Watchlist, *e)
			obs.Logger.Debug("client_flagged", "client", e.ClientName,
				"avg_days", p.AverageIntervalDays, "days_since_last", p.DaysSinceLastOrder)
		}
	}
	obs.Logger.Info("cadence_done", "profiled", len(res.Profiles), "flagged", len(res.Watchlist))
	return res, nil
}
