package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/guttosm/tickerpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// PricesRepository defines the contract for the persistent series cache.
type PricesRepository interface {
	ReplaceCloses(ctx context.Context, series models.Series, period models.Period) error
	GetCloses(ctx context.Context, ticker string, period models.Period) (models.Series, error)
	LatestFetch(ctx context.Context, ticker string, period models.Period) (time.Time, bool, error)
	Ping() error
}

type pricesRepository struct {
	db *sql.DB
}

func NewPricesRepository(db *sql.DB) PricesRepository {
	return &pricesRepository{db: db}
}

func (r *pricesRepository) Ping() error { return r.db.Ping() }

// ReplaceCloses swaps the stored closes of a ticker inside period for the given
// series and records the fetch, all in one transaction.
func (r *pricesRepository) ReplaceCloses(ctx context.Context, series models.Series, period models.Period) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM daily_closes WHERE ticker = $1 AND trade_date BETWEEN $2 AND $3`,
		series.Ticker, period.Start, period.End,
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("daily_closes", "ticker", "trade_date", "close_price", "source"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, p := range series.Points {
		if _, err := stmt.ExecContext(ctx, series.Ticker, p.Date, p.Close, series.Source); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO fetch_log (ticker, start_date, end_date, source, row_count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ticker, start_date, end_date)
		DO UPDATE SET source = EXCLUDED.source,
					  row_count = EXCLUDED.row_count,
					  fetched_at = NOW()
	`, series.Ticker, period.Start, period.End, series.Source, len(series.Points)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetCloses reads stored closes for a ticker inside period, oldest first.
func (r *pricesRepository) GetCloses(ctx context.Context, ticker string, period models.Period) (models.Series, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT trade_date, close_price, source
		FROM daily_closes
		WHERE ticker = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`, ticker, period.Start, period.End)
	if err != nil {
		return models.Series{}, err
	}
	defer func() { _ = rows.Close() }()

	s := models.Series{Ticker: ticker}
	for rows.Next() {
		var p models.PricePoint
		var source string
		if err := rows.Scan(&p.Date, &p.Close, &source); err != nil {
			return models.Series{}, err
		}
		p.Date = p.Date.UTC()
		s.Source = source
		s.Points = append(s.Points, p)
	}
	return s, rows.Err()
}

// LatestFetch returns when a fetch covering the whole period was last recorded.
func (r *pricesRepository) LatestFetch(ctx context.Context, ticker string, period models.Period) (time.Time, bool, error) {
	var fetchedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(fetched_at) FROM fetch_log
		WHERE ticker = $1 AND start_date <= $2 AND end_date >= $3
	`, ticker, period.Start, period.End).Scan(&fetchedAt)
	if err != nil {
		return time.Time{}, false, err
	}
	if !fetchedAt.Valid {
		return time.Time{}, false, nil
	}
	return fetchedAt.Time, true, nil
}
