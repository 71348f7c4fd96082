// Package obs regroupe les utilitaires d'observabilité (logs).
package obs

import (
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger est le logger structuré global du pipeline.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// InitLogger initialise Logger avec un handler texte sur stderr.
// Chaque enregistrement porte le run_id de l'exécution.
func InitLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	Logger = slog.New(h).With("run_id", uuid.NewString())
}
