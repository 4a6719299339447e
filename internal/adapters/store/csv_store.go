package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/G0rocks/aishub-data-collector/internal/domain"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// Error describes a failed file operation on one vessel series. Any Error
// aborts the remainder of the batch being appended.
type Error struct {
	Series string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("series %s: %s: %v", e.Series, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// CSVStore persists one append-only CSV series per tracked vessel under
// <dir>/imo and <dir>/mmsi. The store exclusively owns this layout; nothing
// else reads or writes the series files.
type CSVStore struct {
	dir string
}

func New(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// Append routes each record to its series and appends it if its timestamp is
// strictly newer than the series tail. IMO takes precedence over MMSI; a
// record carrying neither cannot be identified and is dropped. Skips are not
// errors and are reported through SeriesStats.
func (s *CSVStore) Append(records []*domain.VesselRecord) (ports.SeriesStats, error) {
	var stats ports.SeriesStats
	for _, rec := range records {
		kind, key := seriesKey(rec)
		if kind == "" {
			stats.Dropped++
			continue
		}

		filename := fmt.Sprintf("%s_%d.csv", rec.Name, key)
		series := filepath.Join(kind, filename)
		dir := filepath.Join(s.dir, kind)
		path := filepath.Join(dir, filename)

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, &Error{Series: series, Op: "mkdir", Err: err}
		}

		last, err := tailTimestamp(path)
		if err != nil {
			return stats, &Error{Series: series, Op: "read tail", Err: err}
		}
		if rec.Timestamp <= last {
			stats.Deduped++
			continue
		}

		if err := appendRecord(path, rec); err != nil {
			return stats, &Error{Series: series, Op: "append", Err: err}
		}
		stats.Appended++
	}
	return stats, nil
}

// WriteBatch satisfies ports.Sink for callers that do not need the stats.
func (s *CSVStore) WriteBatch(records []*domain.VesselRecord) error {
	_, err := s.Append(records)
	return err
}

func (s *CSVStore) Name() string { return "csv-series" }

func seriesKey(rec *domain.VesselRecord) (kind string, key uint64) {
	if rec.IMO != 0 {
		return "imo", rec.IMO
	}
	if rec.MMSI != 0 {
		return "mmsi", rec.MMSI
	}
	return "", 0
}

// tailTimestamp returns the timestamp of the last record in a series file.
// Missing, empty, and header-only files all yield 0 so that a series created
// but never written (or truncated by a crash before the first append) does
// not fail the next run. A tail row whose timestamp cell cannot be located
// or parsed is a real corruption and surfaces as an error.
func tailTimestamp(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}

	tsCol := -1
	for i, name := range header {
		if name == "TSTAMP" {
			tsCol = i
			break
		}
	}
	if tsCol < 0 {
		return 0, fmt.Errorf("header lacks TSTAMP column")
	}

	var tail []string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		tail = row
	}
	if tail == nil {
		return 0, nil
	}
	if tsCol >= len(tail) {
		return 0, fmt.Errorf("tail row has %d cells, TSTAMP at %d", len(tail), tsCol)
	}
	ts, err := strconv.ParseUint(tail[tsCol], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse tail timestamp: %w", err)
	}
	return ts, nil
}

func appendRecord(path string, rec *domain.VesselRecord) error {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := createWithHeader(path); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	_ = w.Write(rec.Row())
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func createWithHeader(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	_ = w.Write(domain.Header())
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var (
	_ ports.SeriesStore = (*CSVStore)(nil)
	_ ports.Sink        = (*CSVStore)(nil)
)
