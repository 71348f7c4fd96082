package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

/*
LOAD → enregistrements bruts de l'API de facturation.
*/

// Invoice représente une facture telle que renvoyée par l'API Invoice Ninja.
type Invoice struct {
	ClientID    uint64        `json:"client_id"`
	InvoiceDate string        `json:"invoice_date"` // "YYYY-MM-DD"
	Items       []InvoiceItem `json:"invoice_items"`
}

// InvoiceItem est une ligne de facture.
type InvoiceItem struct {
	ProductKey string          `json:"product_key"`
	Qty        decimal.Decimal `json:"qty"`
}

// Client représente un client tel que renvoyé par l'API Invoice Ninja.
type Client struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Order est une ligne de vente nettoyée (facture ⨝ client). Immuable après chargement.
type Order struct {
	ClientID   uint64
	ClientName string
	Product    string
	Quantity   decimal.Decimal // ≥ 0, en kg
	OrderDate  time.Time       // date civile, minuit UTC
}

// OrderSource fournit la table de ventes nettoyée.
type OrderSource interface {
	Orders(ctx context.Context) ([]Order, error)
}

/*
COMPUTE → structures dérivées, propres à une exécution
*/

// ClientOrderHistory regroupe les commandes d'un client, triées par date croissante.
type ClientOrderHistory struct {
	ClientID   uint64
	ClientName string
	Orders     []Order
}

// CadenceProfile contient le rythme de commande calculé pour un client.
type CadenceProfile struct {
	ClientID            uint64
	AverageIntervalDays float64
	DaysSinceLastOrder  int
	IsFlagged           bool
}

// LineItem est un couple (produit, quantité) listé dans la watchlist.
type LineItem struct {
	Product  string
	Quantity decimal.Decimal
}

// WatchlistEntry décrit un client en retard sur son rythme habituel.
type WatchlistEntry struct {
	ClientName          string
	AverageIntervalDays float64
	DaysSinceLastOrder  int
	LastOrderDate       time.Time
	Items               []LineItem // tout l'historique du client, pas seulement la dernière commande
}

// PivotRow est une ligne mois × produits du rapport mensuel.
type PivotRow struct {
	Month  int
	Values []decimal.Decimal // alignées sur PivotTable.Products
}

// PivotTable est le tableau croisé mois × produits.
type PivotTable struct {
	Products []string
	Rows     []PivotRow
}

// Results regroupe les deux rapports d'une exécution.
type Results struct {
	Pivot     PivotTable
	Watchlist []WatchlistEntry
	Profiles  []CadenceProfile
}

/*
CONFIG → paramètres globaux
*/

// DateRange est une plage de dates fermée [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains indique si d est dans la plage, bornes incluses.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Config contient les paramètres passés à la fonction de calcul.
type Config struct {
	Range   DateRange
	Verbose bool // active la barre de progression et les logs détaillés
}
