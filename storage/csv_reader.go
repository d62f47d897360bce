package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// CSVReader reads the raw rows of a delimited dataset file.
type CSVReader struct {
	path string
	// Malformed counts records dropped because they could not be tokenised.
	Malformed int
}

// NewCSVReader returns a reader for the file at path. The file is opened
// lazily by Rows.
func NewCSVReader(path string) *CSVReader {
	return &CSVReader{path: path}
}

// Name returns the file path, used as the snapshot source label.
func (r *CSVReader) Name() string {
	return r.path
}

// Rows opens the file and returns every row, header included. Rows may
// have any number of fields; validating them is the loader's job.
func (r *CSVReader) Rows() ([][]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w: %w", r.path, ErrSourceUnavailable, err)
	}
	defer f.Close()

	rows, malformed, err := ReadRows(f)
	r.Malformed = malformed
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w: %w", r.path, ErrSourceUnavailable, err)
	}
	return rows, nil
}

// ReadRows tokenises delimited text from in. Records that fail to parse
// are skipped and counted; only I/O failures are returned as errors.
func ReadRows(in io.Reader) ([][]string, int, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	malformed := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				malformed++
				continue
			}
			return nil, malformed, err
		}
		rows = append(rows, rec)
	}
	return rows, malformed, nil
}
