package inventory

import (
	"fmt"
	"strings"
	"unicode"
)

// RecordMarker is the heading each product block starts with in the
// rendered inventory text. The outbound segmenter splits long answers on
// this marker so a product is never cut across two messages.
const RecordMarker = "PRODUCTO "

// Text renders the full inventory as structured text for the AI prompt.
// Every non-empty field of every product is included; the model answers
// free-form questions from this block when no heuristic matched.
func (t *Table) Text() string {
	if t.Len() == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("=== INVENTARIO COMPLETO DE PRODUCTOS ===\n\n")
	fmt.Fprintf(&b, "Total de productos: %d\n", t.Len())
	fmt.Fprintf(&b, "Campos disponibles: %s\n\n", strings.Join(t.Columns, ", "))

	for i := range t.Rows {
		fmt.Fprintf(&b, "%s%d:\n", RecordMarker, i+1)
		for j, col := range t.Columns {
			val := t.Cell(i, j)
			if val == "" || strings.EqualFold(val, "nan") {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", fieldName(col), val)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// fieldName turns a header like "stock_actual" into "Stock Actual".
func fieldName(col string) string {
	words := strings.Fields(strings.ReplaceAll(col, "_", " "))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
