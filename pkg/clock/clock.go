// Package clock fournit l'horloge murale utilisée par les analyses.
package clock

import "time"

// Source renvoie l'instant courant.
type Source interface {
	Now() time.Time
}

// System lit l'horloge système.
type System struct{}

// Now renvoie time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed renvoie toujours le même instant.
type Fixed time.Time

// Now renvoie l'instant figé.
func (f Fixed) Now() time.Time { return time.Time(f) }
