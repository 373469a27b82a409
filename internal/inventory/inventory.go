// Package inventory provides read access and aggregation over the product
// inventory loaded from an Excel workbook.
//
// The workbook is loaded once at startup into an immutable Table; every
// query runs against that in-memory snapshot. Column meaning is not fixed
// by schema: logical roles (category, stock, price) are resolved at query
// time by substring matching against the header names, so the bot keeps
// working when the spreadsheet owner renames "Stock" to "Stock_Actual".
//
// Aggregations never return errors. Every outcome, including "inventory
// not loaded" and "column not found", is rendered as a user-facing string
// ready to drop into a chat reply.
package inventory

import (
	"strconv"
	"strings"
)

// Role identifies a logical column the aggregations depend on.
type Role string

// Roles resolved against header names.
const (
	RoleCategory Role = "category"
	RoleStock    Role = "stock"
	RolePrice    Role = "price"
)

// roleCandidates lists header fragments per role, in rank order. A column
// matches a role when its lowercased name contains any fragment. Columns
// are scanned in workbook order and the first match wins, so totals stay
// stable when several headers match the same role.
var roleCandidates = map[Role][]string{
	RoleCategory: {"categoria", "categoría", "category", "tipo_categoria", "tipo"},
	RoleStock:    {"stock_actual", "stock", "cantidad", "existencias", "disponible"},
	RolePrice:    {"precio", "price", "valor", "costo"},
}

// displayFragments selects which columns are shown per product in search
// results. A column is display-relevant when its lowercased name contains
// any of these fragments.
var displayFragments = []string{
	"marca", "categoria", "tipo", "stock", "precio", "caracteristica", "observaciones",
}

// Table is an immutable snapshot of the inventory worksheet.
// Columns preserve workbook order; every row is padded to len(Columns).
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of product rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Cell returns the trimmed cell value at (row, col).
func (t *Table) Cell(row, col int) string {
	return strings.TrimSpace(t.Rows[row][col])
}

// ResolveColumn scans columns in workbook order and returns the index of
// the first column whose lowercased name contains any candidate fragment
// for the role. The second return is false when no column matches.
func (t *Table) ResolveColumn(role Role) (int, bool) {
	if t == nil {
		return 0, false
	}
	fragments, ok := roleCandidates[role]
	if !ok {
		return 0, false
	}
	for i, col := range t.Columns {
		name := strings.ToLower(col)
		for _, frag := range fragments {
			if strings.Contains(name, strings.ToLower(frag)) {
				return i, true
			}
		}
	}
	return 0, false
}

// Number is a numeric cell coercion result. Valid is false for cells that
// do not parse as a number; such cells are excluded from sums, counts and
// denominators.
type Number struct {
	Value float64
	Valid bool
}

// Numbers coerces every cell of a column to a number. The result always
// has Len() entries, one per row.
func (t *Table) Numbers(col int) []Number {
	if t == nil {
		return nil
	}
	out := make([]Number, len(t.Rows))
	for i := range t.Rows {
		out[i] = parseNumber(t.Cell(i, col))
	}
	return out
}

// parseNumber parses a cell into a Number. Currency prefixes and thousands
// separators from hand-edited spreadsheets are tolerated.
func parseNumber(s string) Number {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Number{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

// isDisplayColumn reports whether a column is shown in search results.
func isDisplayColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, frag := range displayFragments {
		if strings.Contains(lower, frag) {
			return true
		}
	}
	return false
}
