// Package config fournit la configuration d'exécution du pipeline.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultExcludedProducts : pseudo-produits d'expédition retirés de la table de ventes.
var DefaultExcludedProducts = []string{"Dakota Cargo", "Shipping JNE", "GoSend", "Shipping", "Go-Box", "Pura-Pura"}

// Config contient les réglages de la source de données et des rapports.
type Config struct {
	Source           string        `mapstructure:"source"`
	APIURL           string        `mapstructure:"api_url"`
	APIToken         string        `mapstructure:"api_token"`
	HTTPTimeout      time.Duration `mapstructure:"http_timeout"`
	DSN              string        `mapstructure:"dsn"`
	WatchlistPath    string        `mapstructure:"watchlist_path"`
	PivotPath        string        `mapstructure:"pivot_path"`
	ExcludedProducts []string      `mapstructure:"excluded_products"`
	Verbose          bool          `mapstructure:"verbose"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "api")
	v.SetDefault("api_url", "https://app.invoiceninja.com/api/v1")
	v.SetDefault("api_token", "")
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("dsn", "")
	v.SetDefault("watchlist_path", "watchlist.txt")
	v.SetDefault("pivot_path", "data/historical_sales_data.csv")
	v.SetDefault("excluded_products", DefaultExcludedProducts)
	v.SetDefault("verbose", false)
}

// Load lit .env, le fichier YAML optionnel puis les variables SALES_*,
// par ordre de priorité croissante.
func Load(path string) (Config, error) {
	// .env absent : pas une erreur
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SALES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.ExcludedProducts = splitList(strings.Join(cfg.ExcludedProducts, ","))
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
