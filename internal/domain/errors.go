package domain

import "errors"

// Failure taxonomy for ingestion and load. None of these are fatal to the
// process; the service degrades to a "waiting for data" state and keeps
// answering health checks.
var (
	// ErrSourceNotFound reports a missing source document at ingestion time.
	ErrSourceNotFound = errors.New("source document not found")

	// ErrMalformedSource reports a source document that is unparseable or is
	// missing the expected nested forecast structure.
	ErrMalformedSource = errors.New("malformed source document")

	// ErrEmptyStore signals that the weather table has no rows yet. Callers
	// must distinguish this from an enrichment that matched nothing.
	ErrEmptyStore = errors.New("weather store is empty")
)
