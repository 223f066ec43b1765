// Package file reads the raw input tables from CSV, JSON and XLSX files.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/healthdash/backend/internal/domain"
)

// Table base names looked up inside an input directory
const (
	RecordsTable      = "records"
	DemographicsTable = "demographics"
)

var tableExtensions = []string{".csv", ".json", ".xlsx"}

type tableLoader func() ([]domain.RawRow, error)

// Source implements domain.RawSource over files on disk
type Source struct {
	name             string
	loadRecords      tableLoader
	loadDemographics tableLoader
}

// Open picks a source from the shape of path:
//   - a directory containing records.{csv,json,xlsx} and demographics.{csv,json,xlsx}
//   - a .json bundle with "records" and "demographics" arrays
//   - a .xlsx workbook with "records" and "demographics" sheets
func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file: failed to open input %q: %w", path, err)
	}

	if info.IsDir() {
		return openDir(path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &Source{
			name:             path,
			loadRecords:      func() ([]domain.RawRow, error) { return readJSONBundle(path, RecordsTable) },
			loadDemographics: func() ([]domain.RawRow, error) { return readJSONBundle(path, DemographicsTable) },
		}, nil
	case ".xlsx":
		return &Source{
			name:             path,
			loadRecords:      func() ([]domain.RawRow, error) { return readXLSX(path, RecordsTable) },
			loadDemographics: func() ([]domain.RawRow, error) { return readXLSX(path, DemographicsTable) },
		}, nil
	default:
		return nil, fmt.Errorf("file: unsupported input %q (expected a directory, .json or .xlsx)", path)
	}
}

func openDir(dir string) (*Source, error) {
	records, err := findTable(dir, RecordsTable)
	if err != nil {
		return nil, err
	}
	demographics, err := findTable(dir, DemographicsTable)
	if err != nil {
		return nil, err
	}
	return &Source{
		name:             dir,
		loadRecords:      loaderFor(records),
		loadDemographics: loaderFor(demographics),
	}, nil
}

// findTable returns the first of <table>.csv, .json, .xlsx present in dir
func findTable(dir, table string) (string, error) {
	for _, ext := range tableExtensions {
		p := filepath.Join(dir, table+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("file: no %s table in %q (looked for %s.csv, %s.json, %s.xlsx)", table, dir, table, table, table)
}

func loaderFor(path string) tableLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return func() ([]domain.RawRow, error) { return readCSV(path) }
	case ".json":
		return func() ([]domain.RawRow, error) { return readJSONTable(path) }
	default:
		return func() ([]domain.RawRow, error) { return readXLSX(path, "") }
	}
}

// Name returns the input location
func (s *Source) Name() string {
	return s.name
}

// LoadRecords reads the state metric table
func (s *Source) LoadRecords(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.loadRecords()
}

// LoadDemographics reads the demographic table
func (s *Source) LoadDemographics(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.loadDemographics()
}

// rowFromCells maps positional cells onto canonical header names
func rowFromCells(ref string, header, cells []string) domain.RawRow {
	row := domain.RawRow{Ref: ref, Fields: make(map[string]string, len(header))}
	if len(cells) > len(header) {
		row.Malformed = fmt.Sprintf("row has %d cells but the header has %d columns", len(cells), len(header))
	}
	for i, col := range header {
		if i < len(cells) {
			row.Fields[col] = strings.TrimSpace(cells[i])
		}
	}
	return row
}

func canonicalHeader(cells []string) []string {
	header := make([]string, len(cells))
	for i, c := range cells {
		header[i] = domain.CanonicalColumn(strings.TrimPrefix(c, "\ufeff"))
	}
	return header
}
