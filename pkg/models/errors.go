package models

import "errors"

var (
	// ErrInvalidDate : argument de date illisible.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUnknownModule : module API autre que "invoices" ou "clients".
	ErrUnknownModule = errors.New("unknown module")
	// ErrUnknownSource : source de données non supportée.
	ErrUnknownSource = errors.New("unknown data source")
	// ErrUpstream : réponse non-succès de l'API de facturation.
	ErrUpstream = errors.New("upstream error")
	// ErrShapeMismatch : nombre d'enregistrements reçus différent du total annoncé.
	ErrShapeMismatch = errors.New("record count mismatch")
)
