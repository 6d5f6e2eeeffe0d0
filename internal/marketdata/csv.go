package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"options-engine/internal/errors"
	"options-engine/internal/models"
)

// csvRow is the on-disk CSV schema for one OHLCV sample.
type csvRow struct {
	Date   string  `csv:"date"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume int64   `csv:"volume"`
}

var csvDateLayouts = []string{"2006-01-02", time.RFC3339}

// CSVProvider loads price history from <dir>/<symbol>.csv files.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a provider reading from the given directory.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// History implements HistoryProvider.
func (p *CSVProvider) History(ctx context.Context, symbol string, limit int) ([]models.PricePoint, error) {
	path := filepath.Join(p.dir, symbol+".csv")
	points, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	return points, nil
}

// LoadCSV parses one OHLCV CSV file into chronological price points.
func LoadCSV(path string) ([]models.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDataError("csv", path, "open failed", err)
	}
	defer f.Close()

	var rows []*csvRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, errors.NewDataError("csv", path, "parse failed", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewDataError("csv", path, "no rows", errors.ErrDataNotFound)
	}

	points := make([]models.PricePoint, 0, len(rows))
	for _, row := range rows {
		ts, err := parseDate(row.Date)
		if err != nil {
			return nil, errors.NewDataError("csv", path, "unparseable date "+row.Date, err)
		}
		points = append(points, models.PricePoint{
			Timestamp: ts,
			Open:      row.Open,
			High:      row.High,
			Low:       row.Low,
			Close:     row.Close,
			Volume:    row.Volume,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return points, nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range csvDateLayouts {
		ts, err := time.Parse(layout, s)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
