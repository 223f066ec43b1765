package file

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/healthdash/backend/internal/domain"
)

func readCSV(path string) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("file: failed to open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := parseCSV(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("file: failed to read %q: %w", path, err)
	}
	return rows, nil
}

// parseCSV reads a headed CSV table. Refs are "<name>:<line>".
func parseCSV(name string, r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are reported per row, not as a read failure
	reader.TrimLeadingSpace = true

	first, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty table", name)
	}
	if err != nil {
		return nil, err
	}
	header := canonicalHeader(first)

	var rows []domain.RawRow
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, rowFromCells(fmt.Sprintf("%s:%d", name, line), header, cells))
	}
	return rows, nil
}
