package domain

// Snapshot is the result of one successful upstream query: a rate for every
// configured currency, keyed by the date the upstream reports the quotation
// is effective for. That date may differ from the requested one when the
// upstream normalizes to its most recent published quotation.
type Snapshot struct {
	EffectiveDate string
	Rates         map[string]float64
}
