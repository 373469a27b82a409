package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrFileNotFound indicates the workbook was not found in any of the
	// searched locations.
	ErrFileNotFound = errors.New("inventory file not found")

	// ErrEmptySheet indicates the worksheet has no header row.
	ErrEmptySheet = errors.New("inventory sheet is empty")
)

// searchDirs are the directories probed for the workbook, relative to the
// working directory, matching how the deployment lays files out.
var searchDirs = []string{".", "..", filepath.Join("..", ".."), "/opt/inventabot"}

// Load opens the Excel workbook and reads the given worksheet into a Table.
// The first row is the header; remaining rows become product records, each
// padded to the header width so positional access is always in range.
func Load(file, sheet string) (*Table, error) {
	path, err := locate(file)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySheet, sheet)
	}

	t := &Table{Columns: rows[0]}
	for _, row := range rows[1:] {
		padded := make([]string, len(t.Columns))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t, nil
}

// locate probes the search directories for the workbook.
func locate(file string) (string, error) {
	if filepath.IsAbs(file) {
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, file)
	}
	for _, dir := range searchDirs {
		path := filepath.Join(dir, file)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileNotFound, file)
}
