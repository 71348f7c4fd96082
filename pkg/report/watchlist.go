// Package report écrit la watchlist et le tableau croisé mensuel sur disque.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sales-watchlist/pkg/models"
)

const watchlistHeader = "Watchlist---\n"

// RenderWatchlist écrit l'en-tête puis un bloc par client signalé.
func RenderWatchlist(w io.Writer, entries []models.WatchlistEntry) error {
	var b bytes.Buffer
	b.WriteString(watchlistHeader)
	for _, e := range entries {
		fmt.Fprintf(&b, "Client: %s\n", e.ClientName)
		fmt.Fprintf(&b, "Average buying time: %s days\n", formatAverage(e.AverageIntervalDays))
		d := e.LastOrderDate
		fmt.Fprintf(&b, "Days since last PO: %d days, Last PO: %d-%d-%d\n",
			e.DaysSinceLastOrder, d.Day(), int(d.Month()), d.Year())
		b.WriteString("Items: ")
		for _, it := range e.Items {
			fmt.Fprintf(&b, "%s -- %s kgs, ", it.Product, it.Quantity.String())
		}
		b.WriteString("\n\n\n")
	}
	_, err := w.Write(b.Bytes())
	return err
}

// formatAverage : 10 -> "10.0", 3.5 -> "3.5"
func formatAverage(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteWatchlist écrase path en une seule fois (fichier temporaire puis rename).
func WriteWatchlist(path string, entries []models.WatchlistEntry) error {
	return writeAtomic(path, func(w io.Writer) error { return RenderWatchlist(w, entries) })
}

func writeAtomic(path string, render func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}

	if err := render(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
