package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sales-watchlist/pkg/calculator"
	"sales-watchlist/pkg/clock"
	"sales-watchlist/pkg/config"
	"sales-watchlist/pkg/database"
	"sales-watchlist/pkg/invoiceninja"
	"sales-watchlist/pkg/models"
	"sales-watchlist/pkg/obs"
	"sales-watchlist/pkg/report"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		source     string
		dsn        string
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "sales-watchlist START_DATE END_DATE",
		Short: "Monthly sales pivot and overdue-client watchlist from Invoice Ninja data",
		Long: "Dates use DD-MM-YYYY and may be prefixed with key=, e.g. start_date=01-03-2021 end_date=31-05-2021.\n" +
			"The watchlist uses today's date; the pivot is limited to [START_DATE, END_DATE].",
		Version:       Version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// dates d'abord : une erreur ici ne doit pas déclencher d'appel réseau
			r, err := calculator.ParseRange(args[0], args[1])
			if err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("source") {
				cfg.Source = source
			}
			if cmd.Flags().Changed("dsn") {
				cfg.DSN = dsn
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbose = verbose
			}
			return run(cmd.Context(), cfg, r)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&source, "source", "api", "Data source: api or db")
	cmd.Flags().StringVar(&dsn, "dsn", "", "Snapshot DSN (mysql://, mariadb:// or sqlite://)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logs and progress bar")
	return cmd
}

func run(ctx context.Context, cfg config.Config, r models.DateRange) error {
	obs.InitLogger(cfg.Verbose)
	obs.Logger.Info("run_starting", "source", cfg.Source, "start", r.Start.Format("2006-01-02"), "end", r.End.Format("2006-01-02"))

	var store *database.Store
	if cfg.DSN != "" {
		s, dsnUsed, err := database.Open(cfg.DSN)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer s.Close()
		if err := s.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		obs.Logger.Debug("db_connected", "dsn", dsnUsed)
		store = s
	}

	var src models.OrderSource
	switch cfg.Source {
	case "api":
		src = &snapshotting{
			src: &invoiceninja.Provider{
				Client:   invoiceninja.New(cfg.APIURL, cfg.APIToken, cfg.HTTPTimeout),
				Excluded: cfg.ExcludedProducts,
			},
			store: store,
		}
	case "db":
		if store == nil {
			return errors.New("source db requires a DSN")
		}
		src = store
	default:
		return fmt.Errorf("%w %q: choose api or db", models.ErrUnknownSource, cfg.Source)
	}

	res, err := calculator.Run(ctx, src, clock.System{}, models.Config{Range: r, Verbose: cfg.Verbose})
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	if err := report.WritePivot(cfg.PivotPath, res.Pivot); err != nil {
		return fmt.Errorf("write pivot: %w", err)
	}
	if err := report.WriteWatchlist(cfg.WatchlistPath, res.Watchlist); err != nil {
		return fmt.Errorf("write watchlist: %w", err)
	}
	obs.Logger.Info("run_done", "pivot", cfg.PivotPath, "watchlist", cfg.WatchlistPath, "flagged", len(res.Watchlist))
	return nil
}

// snapshotting enregistre la table nettoyée dans la base, si elle est configurée.
type snapshotting struct {
	src   models.OrderSource
	store *database.Store
}

func (s *snapshotting) Orders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.src.Orders(ctx)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		if err := s.store.SaveOrders(ctx, orders); err != nil {
			return nil, fmt.Errorf("save snapshot: %w", err)
		}
	}
	return orders, nil
}
