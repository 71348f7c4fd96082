package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sales-watchlist/pkg/models"
	"sales-watchlist/pkg/obs"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const (
	tableName  = "sales"
	dateLayout = "2006-01-02"
)

// Store conserve un instantané de la table de ventes nettoyée.
type Store struct {
	db     *sql.DB
	driver string
}

// Open DSN mariadb://, mysql:// ou sqlite:// → driver + DSN natif
func Open(dsn string) (*Store, string, error) {
	driver, native, err := toDriverDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, native)
	if err != nil {
		return nil, "", err
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	return &Store{db: db, driver: driver}, native, nil
}

// Close ferme la connexion.
func (s *Store) Close() error { return s.db.Close() }

func toDriverDSN(dsn string) (string, string, error) {
	if strings.HasPrefix(dsn, "sqlite://") {
		path := strings.TrimPrefix(dsn, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("dsn incomplet (chemin sqlite)")
		}
		return "sqlite3", path, nil
	}
	native, err := toMySQLDSN(dsn)
	if err != nil {
		return "", "", err
	}
	return "mysql", native, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("dsn incomplet (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// Migrate crée la table des ventes si besoin.
func (s *Store) Migrate(ctx context.Context) error {
	q := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          INTEGER PRIMARY KEY %s,
			client_id   BIGINT NOT NULL,
			client_name VARCHAR(255) NOT NULL,
			product     VARCHAR(255) NOT NULL,
			qty         VARCHAR(64) NOT NULL,
			order_date  CHAR(10) NOT NULL
		)`, tableName, s.autoIncrement())
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *Store) autoIncrement() string {
	if s.driver == "sqlite3" {
		return "AUTOINCREMENT"
	}
	return "AUTO_INCREMENT"
}

// SaveOrders remplace l'instantané par orders, dans une seule transaction.
func (s *Store) SaveOrders(ctx context.Context, orders []models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+tableName); err != nil {
		return fmt.Errorf("clear %s: %w", tableName, err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (client_id, client_name, product, qty, order_date) VALUES (?, ?, ?, ?, ?)`, tableName))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range orders {
		if _, err := stmt.ExecContext(ctx, o.ClientID, o.ClientName, o.Product,
			o.Quantity.String(), o.OrderDate.UTC().Format(dateLayout)); err != nil {
			return fmt.Errorf("insert client=%d: %w", o.ClientID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	obs.Logger.Info("snapshot_saved", "rows", len(orders))
	return nil
}

// LoadOrders relit l'instantané dans l'ordre d'insertion.
func (s *Store) LoadOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT client_id, client_name, product, qty, order_date FROM %s ORDER BY id`, tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			o        models.Order
			qty, day string
		)
		if err := rows.Scan(&o.ClientID, &o.ClientName, &o.Product, &qty, &day); err != nil {
			return nil, err
		}
		if o.Quantity, err = decimal.NewFromString(qty); err != nil {
			return nil, fmt.Errorf("qty client=%d: %w", o.ClientID, err)
		}
		if o.OrderDate, err = time.ParseInLocation(dateLayout, day, time.UTC); err != nil {
			return nil, fmt.Errorf("client %d: %w: %q", o.ClientID, models.ErrInvalidDate, day)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	obs.Logger.Debug("snapshot_loaded", "rows", len(orders))
	return orders, nil
}

// Orders implémente models.OrderSource.
func (s *Store) Orders(ctx context.Context) ([]models.Order, error) {
	return s.LoadOrders(ctx)
}
