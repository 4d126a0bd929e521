package adapters

import (
	"context"
	"ratewatch/internal/domain"
)

type RateSource interface {
	// FetchDaily returns a snapshot with a rate for every code, or
	// domain.ErrRatesUnavailable when no complete quotation exists for the
	// date, or domain.ErrSourceUnreachable when every endpoint failed.
	FetchDaily(ctx context.Context, date string, codes []string) (*domain.Snapshot, error)
}

type HistoryStore interface {
	// Load returns the persisted history, or an empty one when nothing has
	// been persisted yet.
	Load(ctx context.Context) (domain.History, error)
	Save(ctx context.Context, h domain.History) error
}

type Notifier interface {
	SendText(ctx context.Context, text string) error
	SendPhoto(ctx context.Context, png []byte, caption string) error
}

type ChartRenderer interface {
	Render(points []domain.Point, label string) ([]byte, error)
}

type ChartCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, png []byte)
	Close()
}
