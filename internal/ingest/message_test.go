package ingest

import (
	"testing"

	"ratewatch/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestComposeMessage_PositiveDelta(t *testing.T) {
	history := domain.History{
		"USD": {"2026-08-20": 2.50, "2026-08-21": 2.53},
	}

	msg := ComposeMessage("2026-08-21", []string{"USD"}, history)

	require.Equal(t, "💱 Official rates for 2026-08-21:\nUSD: 2.53 (🔺0.0300)", msg)
}

func TestComposeMessage_NegativeDelta(t *testing.T) {
	history := domain.History{
		"EUR": {"2026-08-20": 3.45, "2026-08-21": 3.4123},
	}

	msg := ComposeMessage("2026-08-21", []string{"EUR"}, history)

	require.Contains(t, msg, "EUR: 3.4123 (🔻0.0377)")
}

func TestComposeMessage_ZeroDelta_TreatedAsNonNegative(t *testing.T) {
	history := domain.History{
		"USD": {"2026-08-20": 2.97, "2026-08-21": 2.97},
	}

	msg := ComposeMessage("2026-08-21", []string{"USD"}, history)

	require.Contains(t, msg, "🔺0.0000")
}

func TestComposeMessage_GapAtPreviousDay_OmitsDelta(t *testing.T) {
	// Friday stored, Monday quoted: Sunday has no rate, so no delta.
	history := domain.History{
		"USD": {"2026-08-21": 2.90, "2026-08-24": 2.95},
	}

	msg := ComposeMessage("2026-08-24", []string{"USD"}, history)

	require.Equal(t, "💱 Official rates for 2026-08-24:\nUSD: 2.95", msg)
}

func TestComposeMessage_MultipleCurrencies_OneLineEach(t *testing.T) {
	history := domain.History{
		"USD": {"2026-08-20": 2.50, "2026-08-21": 2.53},
		"EUR": {"2026-08-21": 3.45},
	}

	msg := ComposeMessage("2026-08-21", []string{"USD", "EUR"}, history)

	require.Equal(t, "💱 Official rates for 2026-08-21:\nUSD: 2.53 (🔺0.0300)\nEUR: 3.45", msg)
}

func TestComposeMessage_Deterministic(t *testing.T) {
	history := domain.History{
		"USD": {"2026-08-20": 2.50, "2026-08-21": 2.53},
		"EUR": {"2026-08-20": 3.40, "2026-08-21": 3.45},
	}

	first := ComposeMessage("2026-08-21", []string{"USD", "EUR"}, history)
	second := ComposeMessage("2026-08-21", []string{"USD", "EUR"}, history)

	require.Equal(t, first, second)
}
