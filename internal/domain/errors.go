package domain

import "errors"

var (
	// ErrRatesUnavailable means at least one endpoint answered definitively
	// and no complete quotation exists for the requested date. This is the
	// normal stop condition of the ingestion loop, not a failure.
	ErrRatesUnavailable = errors.New("no quotation available for date")

	// ErrSourceUnreachable means every endpoint failed at the transport
	// level, so nothing is known about the requested date.
	ErrSourceUnreachable = errors.New("rate source unreachable")

	ErrCodeNotFound = errors.New("currency code not found")
)
