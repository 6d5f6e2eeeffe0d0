package marketdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"options-engine/internal/errors"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV_ParsesAndSorts(t *testing.T) {
	// Rows intentionally out of order: the loader must sort them.
	path := writeCSV(t, t.TempDir(), "AAPL.csv",
		"date,open,high,low,close,volume\n"+
			"2026-01-03,102,104,101,103,12000\n"+
			"2026-01-01,100,102,99,101,10000\n"+
			"2026-01-02,101,103,100,102,11000\n")

	points, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i := 1; i < len(points); i++ {
		if !points[i].Timestamp.After(points[i-1].Timestamp) {
			t.Errorf("points not chronological at index %d", i)
		}
	}
	if points[0].Close != 101 || points[2].Close != 103 {
		t.Errorf("closes out of order: first %v last %v", points[0].Close, points[2].Close)
	}
	if points[1].Volume != 11000 {
		t.Errorf("volume = %d, want 11000", points[1].Volume)
	}
}

func TestLoadCSV_RFC3339Dates(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "AAPL.csv",
		"date,open,high,low,close,volume\n"+
			"2026-01-01T09:30:00Z,100,102,99,101,10000\n")

	points, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	want := time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)
	if !points[0].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", points[0].Timestamp, want)
	}
}

func TestLoadCSV_BadDate(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "AAPL.csv",
		"date,open,high,low,close,volume\n"+
			"01/03/2026,102,104,101,103,12000\n")

	_, err := LoadCSV(path)
	if err == nil {
		t.Fatal("expected error for unparseable date")
	}
	var derr *errors.DataError
	if !errors.As(err, &derr) {
		t.Errorf("expected DataError, got %T (%v)", err, err)
	}
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "AAPL.csv", "date,open,high,low,close,volume\n")
	if _, err := LoadCSV(path); err == nil {
		t.Fatal("expected error for CSV with no rows")
	}
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCSVProvider_History(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "MSFT.csv",
		"date,open,high,low,close,volume\n"+
			"2026-01-01,100,102,99,101,10000\n"+
			"2026-01-02,101,103,100,102,11000\n"+
			"2026-01-03,102,104,101,103,12000\n"+
			"2026-01-04,103,105,102,104,13000\n")

	provider := NewCSVProvider(dir)
	points, err := provider.History(context.Background(), "MSFT", 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	// The limit keeps the newest points.
	if points[0].Close != 103 || points[1].Close != 104 {
		t.Errorf("limited window wrong: %v, %v", points[0].Close, points[1].Close)
	}
}
