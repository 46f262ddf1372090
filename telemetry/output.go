package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/petsim/config"
)

// OutputManager writes a session's CSV files into one directory.
// A nil manager discards everything.
type OutputManager struct {
	dir   string
	stats csvFile
	perf  csvFile
}

type csvFile struct {
	f      *os.File
	header bool
}

// NewOutputManager creates dir and opens stats.csv and perf.csv in it.
// It returns nil when dir is empty.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stats, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	perf, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		stats.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}

	return &OutputManager{
		dir:   dir,
		stats: csvFile{f: stats},
		perf:  csvFile{f: perf},
	}, nil
}

// WriteConfig saves the effective configuration next to the CSV files.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteStats appends a window to stats.csv.
func (om *OutputManager) WriteStats(s WindowStats) error {
	if om == nil {
		return nil
	}
	if err := appendRow(&om.stats, []WindowStats{s}); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WritePerf appends a timing window to perf.csv.
func (om *OutputManager) WritePerf(s PerfStats, session string, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := appendRow(&om.perf, []PerfStatsCSV{s.ToCSV(session, windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// appendRow writes the header only with the first row.
func appendRow[T any](c *csvFile, rows []T) error {
	if c.header {
		return gocsv.MarshalWithoutHeaders(rows, c.f)
	}
	if err := gocsv.Marshal(rows, c.f); err != nil {
		return err
	}
	c.header = true
	return nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes both files and returns the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, c := range []*csvFile{&om.stats, &om.perf} {
		if c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
