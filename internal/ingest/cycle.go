package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ratewatch/internal/adapters"
	"ratewatch/internal/domain"

	"github.com/sirupsen/logrus"
)

// Config is the immutable per-deployment configuration of the ingestion
// cycle. It is passed in at construction so tests can run arbitrary
// currency sets and window sizes side by side.
type Config struct {
	Codes      []string
	WindowDays int
}

// Cycle is the ingestion state machine. One Run catches up with every
// quotation date the upstream has published since the last stored one,
// sending exactly one notification per newly discovered date, in ascending
// order.
type Cycle struct {
	cfg      Config
	source   adapters.RateSource
	store    adapters.HistoryStore
	notifier adapters.Notifier
	charts   adapters.ChartRenderer
}

func NewCycle(cfg Config, source adapters.RateSource, store adapters.HistoryStore, notifier adapters.Notifier, charts adapters.ChartRenderer) *Cycle {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 30
	}
	return &Cycle{cfg: cfg, source: source, store: store, notifier: notifier, charts: charts}
}

// Run executes one ingestion cycle. The current date is injected so tests
// control the clock. It returns the number of newly processed quotation
// dates; a cycle that finds nothing new is a clean zero, not an error.
func (c *Cycle) Run(ctx context.Context, execID string, today time.Time) (int, error) {
	history, err := c.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load history: %w", err)
	}

	// STEP 1: determine the first candidate date. It is the day after the
	// latest stored date, or today when nothing is stored yet.
	todayDate := today.Format(domain.DateLayout)
	candidate := todayDate
	if last, ok := history.LatestDate(); ok {
		candidate = domain.NextDay(last)
	}

	logrus.WithFields(logrus.Fields{"execID": execID, "candidate": candidate}).
		Info("Starting ingestion cycle")

	// STEP 2: advance one calendar day at a time until the upstream has
	// nothing for the candidate. The candidate never passes today: the
	// upstream echoes its latest quotation for unpublished dates, so
	// without this bound the skip path below would advance forever.
	processed := 0
	for ; candidate <= todayDate; candidate = domain.NextDay(candidate) {
		snap, fetchErr := c.source.FetchDaily(ctx, candidate, c.cfg.Codes)
		switch {
		case errors.Is(fetchErr, domain.ErrRatesUnavailable):
			logrus.WithFields(logrus.Fields{"execID": execID, "candidate": candidate}).
				Info("No quotation published yet, cycle complete")
			return processed, nil
		case errors.Is(fetchErr, domain.ErrSourceUnreachable):
			if processed == 0 {
				c.notifyFailure(ctx, execID, candidate)
			}
			logrus.WithError(fetchErr).WithFields(logrus.Fields{"execID": execID, "candidate": candidate}).
				Warn("Rate source unreachable, ending cycle")
			return processed, nil
		case fetchErr != nil:
			return processed, fmt.Errorf("failed to fetch rates for %s: %w", candidate, fetchErr)
		}

		// STEP 3: the storage key is the upstream's effective date, not the
		// requested one. A date that is already fully stored means the
		// upstream echoed an old quotation for a not-yet-published day:
		// skip it and try the next candidate.
		effective := snap.EffectiveDate
		if history.HasAll(effective, c.cfg.Codes) {
			logrus.WithFields(logrus.Fields{"execID": execID, "candidate": candidate, "effective": effective}).
				Info("Effective date already stored, skipping")
			continue
		}

		// STEP 4: persist before notifying. A crash between the two costs
		// one notification, never a duplicate or an inconsistent store.
		history.Append(effective, snap.Rates)
		if err = c.store.Save(ctx, history); err != nil {
			return processed, fmt.Errorf("failed to persist history: %w", err)
		}
		processed++

		c.notify(ctx, execID, history, effective)
	}

	logrus.WithFields(logrus.Fields{"execID": execID, "processed": processed}).
		Info("Ingestion cycle caught up to today")
	return processed, nil
}

// notify sends the daily message and one trend chart per currency. Delivery
// is fire and forget: the date is already persisted, so transport failures
// are logged and never turned into ingestion errors.
func (c *Cycle) notify(ctx context.Context, execID string, history domain.History, date string) {
	msg := ComposeMessage(date, c.cfg.Codes, history)
	if err := c.notifier.SendText(ctx, msg); err != nil {
		logrus.WithError(err).WithField("execID", execID).Warn("Failed to send rate message")
	}

	for _, code := range c.cfg.Codes {
		points := TrailingWindow(history[code], c.cfg.WindowDays)
		png, err := c.charts.Render(points, code)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"execID": execID, "code": code}).
				Warn("Failed to render trend chart")
			continue
		}
		if err = c.notifier.SendPhoto(ctx, png, chartCaption); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{"execID": execID, "code": code}).
				Warn("Failed to send trend chart")
		}
	}
}

func (c *Cycle) notifyFailure(ctx context.Context, execID, candidate string) {
	msg := fmt.Sprintf("⚠️ Rate update failed: no endpoint reachable for %s", candidate)
	if err := c.notifier.SendText(ctx, msg); err != nil {
		logrus.WithError(err).WithField("execID", execID).Warn("Failed to send failure message")
	}
}
