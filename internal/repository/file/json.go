package file

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/healthdash/backend/internal/domain"
)

// readJSONTable reads a file holding one array of row objects
func readJSONTable(path string) ([]domain.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file: failed to open %q: %w", path, err)
	}
	var objects []map[string]any
	if err := decodeJSON(data, &objects); err != nil {
		return nil, fmt.Errorf("file: failed to decode %q: %w", path, err)
	}
	return rowsFromObjects(filepath.Base(path), objects), nil
}

// readJSONBundle reads one named table out of a {"records": [...], "demographics": [...]} file.
// Refs name the table too: "raw.json/records#3".
func readJSONBundle(path, table string) ([]domain.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file: failed to open %q: %w", path, err)
	}
	var bundle map[string][]map[string]any
	if err := decodeJSON(data, &bundle); err != nil {
		return nil, fmt.Errorf("file: failed to decode %q: %w", path, err)
	}
	objects, ok := bundle[table]
	if !ok {
		return nil, fmt.Errorf("file: %q has no %q array", path, table)
	}
	return rowsFromObjects(filepath.Base(path)+"/"+table, objects), nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber() // keep numbers as written so "14.20" and "14.2" validate alike
	return dec.Decode(v)
}

// rowsFromObjects flattens decoded objects into string fields. Refs are
// "<name>#<1-based index>".
func rowsFromObjects(name string, objects []map[string]any) []domain.RawRow {
	rows := make([]domain.RawRow, 0, len(objects))
	for i, obj := range objects {
		row := domain.RawRow{
			Ref:    fmt.Sprintf("%s#%d", name, i+1),
			Fields: make(map[string]string, len(obj)),
		}
		keys := make([]string, 0, len(obj))
		for key := range obj {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			val := obj[key]
			col := domain.CanonicalColumn(key)
			switch v := val.(type) {
			case nil:
				// null is treated like an absent field
			case string:
				row.Fields[col] = v
			case json.Number:
				row.Fields[col] = v.String()
			case bool:
				row.Fields[col] = strconv.FormatBool(v)
			default:
				row.Malformed = fmt.Sprintf("field %q holds a nested value", key)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
