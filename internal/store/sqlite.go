package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"options-engine/internal/errors"
	"options-engine/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Price points table for historical OHLCV data
	CREATE TABLE IF NOT EXISTS price_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(symbol, timestamp)
	);
	CREATE INDEX IF NOT EXISTS idx_price_points_symbol_ts ON price_points(symbol, timestamp);

	-- Analysis snapshots, one row per pipeline run
	CREATE TABLE IF NOT EXISTS analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		regime_type TEXT NOT NULL,
		trend TEXT NOT NULL,
		volatility TEXT NOT NULL,
		confidence REAL NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol, created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SavePricePoints upserts price history for a symbol in one
// transaction.
func (s *SQLiteStore) SavePricePoints(ctx context.Context, symbol string, points []models.PricePoint) error {
	if symbol == "" {
		return errors.NewValidationError("symbol", symbol, "must not be empty")
	}
	if len(points) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO price_points (symbol, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, symbol, p.Timestamp, p.Open, p.High, p.Low, p.Close, p.Volume); err != nil {
			return errors.NewDataError("price_points", symbol, "insert failed", err)
		}
	}
	return tx.Commit()
}

// GetPricePoints returns up to limit most recent points for a symbol,
// in chronological order. A limit of zero or less returns everything.
func (s *SQLiteStore) GetPricePoints(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error) {
	query := `
		SELECT timestamp, open, high, low, close, volume
		FROM price_points WHERE symbol = ?
		ORDER BY timestamp DESC`
	args := []interface{}{symbol}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDataError("price_points", symbol, "query failed", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Timestamp, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			return nil, errors.NewDataError("price_points", symbol, "scan failed", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDataError("price_points", symbol, "iterate failed", err)
	}

	// Rows come back newest first; the analyzer wants chronological order.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

// GetFreshness returns the timestamp of the newest stored point for a
// symbol.
func (s *SQLiteStore) GetFreshness(ctx context.Context, symbol string) (time.Time, error) {
	var ts sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(timestamp) FROM price_points WHERE symbol = ?`, symbol).Scan(&ts)
	if err != nil {
		return time.Time{}, errors.NewDataError("price_points", symbol, "freshness query failed", err)
	}
	if !ts.Valid {
		return time.Time{}, errors.ErrDataNotFound
	}
	return ts.Time, nil
}

// SaveAnalysis appends one analysis snapshot for later review.
func (s *SQLiteStore) SaveAnalysis(ctx context.Context, symbol string, analysis *models.RegimeAnalysis) error {
	if analysis == nil {
		return errors.NewValidationError("analysis", nil, "must not be nil")
	}
	payload, err := json.Marshal(analysis)
	if err != nil {
		return errors.Wrap(err, "marshal analysis")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (symbol, created_at, regime_type, trend, volatility, confidence, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		symbol, time.Now(),
		string(analysis.CurrentRegime.Type),
		string(analysis.CurrentRegime.Trend),
		string(analysis.CurrentRegime.Volatility),
		analysis.CurrentRegime.Confidence,
		string(payload))
	if err != nil {
		return errors.NewDataError("analyses", symbol, "insert failed", err)
	}
	return nil
}

// GetAnalyses returns up to limit most recent analysis snapshots,
// newest first.
func (s *SQLiteStore) GetAnalyses(ctx context.Context, symbol string, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, symbol, created_at, payload
		FROM analyses WHERE symbol = ?
		ORDER BY created_at DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, errors.NewDataError("analyses", symbol, "query failed", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		var payload string
		if err := rows.Scan(&rec.ID, &rec.Symbol, &rec.CreatedAt, &payload); err != nil {
			return nil, errors.NewDataError("analyses", symbol, "scan failed", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Analysis); err != nil {
			return nil, errors.NewDataError("analyses", symbol, "unmarshal failed", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
