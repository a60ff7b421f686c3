package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
	pkgch "MacroPulse/pkg/clickhouse"
	applogger "MacroPulse/pkg/logger"
)

// ClickHouseHistoryStore implements HistoryStore backed by ClickHouse.
type ClickHouseHistoryStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewClickHouseHistoryStore(ch *pkgch.Client, table string) *ClickHouseHistoryStore {
	return &ClickHouseHistoryStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *ClickHouseHistoryStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseHistoryStore) Init(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseHistoryStore) Store(ctx context.Context, indicator models.IndicatorType, sample models.IndicatorSample) error {
	q := fmt.Sprintf("INSERT INTO %s (indicator, ts, value) VALUES (?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q, string(indicator), sample.Timestamp, sample.Value)
	if err != nil {
		return fmt.Errorf("store sample: %w", err)
	}
	return nil
}

func (s *ClickHouseHistoryStore) StoreBatch(ctx context.Context, indicator models.IndicatorType, samples []models.IndicatorSample) error {
	if len(samples) == 0 {
		return nil
	}
	// Multi-row VALUES in chunks to limit round-trips.
	const chunkSize = 2000
	for start := 0; start < len(samples); start += chunkSize {
		end := start + chunkSize
		if end > len(samples) {
			end = len(samples)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*3)
		for _, smp := range samples[start:end] {
			if smp.Timestamp.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?)")
			args = append(args, string(indicator), smp.Timestamp, smp.Value)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (indicator, ts, value) VALUES %s", s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_batch error",
					applogger.String("indicator", string(indicator)),
					applogger.Int("rows", len(values)),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store batch: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseHistoryStore) Query(ctx context.Context, indicator models.IndicatorType, from, to time.Time, limit int) ([]models.IndicatorSample, error) {
	q := fmt.Sprintf("SELECT ts, value FROM %s WHERE indicator = ? AND ts >= ? AND ts <= ? ORDER BY ts ASC", s.table)
	args := []interface{}{string(indicator), from, to}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse query error",
				applogger.String("indicator", string(indicator)),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	return scanSamples(rows)
}

func (s *ClickHouseHistoryStore) LatestN(ctx context.Context, indicator models.IndicatorType, n int) ([]models.IndicatorSample, error) {
	q := fmt.Sprintf("SELECT ts, value FROM %s WHERE indicator = ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, string(indicator), n)
	if err != nil {
		return nil, fmt.Errorf("query latest samples: %w", err)
	}
	defer rows.Close()

	out, err := scanSamples(rows)
	if err != nil {
		return nil, err
	}
	// DESC query; callers expect ascending order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s *ClickHouseHistoryStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseHistoryStore) Close() error {
	return nil // connection owned by pkg client
}

func scanSamples(rows *sql.Rows) ([]models.IndicatorSample, error) {
	out := make([]models.IndicatorSample, 0, 512)
	for rows.Next() {
		var smp models.IndicatorSample
		if err := rows.Scan(&smp.Timestamp, &smp.Value); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		out = append(out, smp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

var _ domrepo.HistoryStore = (*ClickHouseHistoryStore)(nil)
