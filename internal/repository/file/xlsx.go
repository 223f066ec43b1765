package file

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/healthdash/backend/internal/domain"
)

// readXLSX reads a headed table from one sheet of a workbook. An empty
// sheet name selects the first sheet. Refs are "<file>!<sheet>:<row>".
func readXLSX(path, sheet string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("file: failed to open workbook %q: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("file: workbook %q has no sheets", path)
		}
		sheet = sheets[0]
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("file: workbook %q has no %q sheet", path, sheet)
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("file: failed to read sheet %q of %q: %w", sheet, path, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("file: sheet %q of %q is empty", sheet, path)
	}

	header := canonicalHeader(cells[0])
	name := filepath.Base(path)
	rows := make([]domain.RawRow, 0, len(cells)-1)
	for i, line := range cells[1:] {
		if isBlank(line) {
			continue
		}
		// sheet rows are 1-based and the header occupies row 1
		rows = append(rows, rowFromCells(fmt.Sprintf("%s!%s:%d", name, sheet, i+2), header, line))
	}
	return rows, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
