package postgres

import (
	"context"
	"fmt"

	"ratewatch/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository is the Postgres-backed history store. Rows are
// append-only: a (code, rate_date) pair that already exists is left
// untouched on save, which keeps the never-rewritten invariant in the
// schema itself.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

func (r *HistoryRepository) Load(ctx context.Context) (domain.History, error) {
	const q = `
		select code, to_char(rate_date, 'YYYY-MM-DD'), rate
		from daily_rates
		order by code, rate_date;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily rates: %w", err)
	}
	defer rows.Close()

	h := domain.History{}
	for rows.Next() {
		var code, date string
		var rate float64
		if err = rows.Scan(&code, &date, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan daily rate: %w", err)
		}
		if _, ok := h[code]; !ok {
			h[code] = domain.Series{}
		}
		h[code][date] = rate
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily rates: %w", err)
	}
	return h, nil
}

func (r *HistoryRepository) Save(ctx context.Context, h domain.History) error {
	const q = `
		insert into daily_rates (code, rate_date, rate)
		values ($1, $2, $3)
		on conflict (code, rate_date) do nothing;
	`

	batch := &pgx.Batch{}
	for code, series := range h {
		for date, rate := range series {
			batch.Queue(q, code, date, rate)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert daily rates: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
