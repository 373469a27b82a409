package inventory

import (
	"fmt"
	"sort"
	"strings"
)

// User-facing outcome messages. Aggregations report every failure as chat
// text; callers never see an error value.
const (
	msgNoInventory      = "No hay inventario disponible"
	msgNoCategoryColumn = "No se encontró columna de categoría en el inventario"
	msgNoStockColumn    = "No se encontró columna de stock en el inventario"
	msgNoPriceColumn    = "No se encontró columna de precio en el inventario"
)

// CategoriesSummary lists every distinct category in the inventory as a
// numbered list with a total count.
func (t *Table) CategoriesSummary() string {
	if t.Len() == 0 {
		return msgNoInventory
	}
	col, ok := t.ResolveColumn(RoleCategory)
	if !ok {
		return msgNoCategoryColumn
	}

	seen := make(map[string]bool)
	var categories []string
	for i := range t.Rows {
		val := t.Cell(i, col)
		if val == "" || strings.EqualFold(val, "nan") || seen[val] {
			continue
		}
		seen[val] = true
		categories = append(categories, val)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("📋 **TODAS LAS CATEGORÍAS DISPONIBLES:**\n\n")
	for i, cat := range categories {
		fmt.Fprintf(&b, "%d. %s\n", i+1, cat)
	}
	fmt.Fprintf(&b, "\n**Total de categorías: %d**", len(categories))
	return b.String()
}

// StockSummary totals the stock column: sum, count of rows with a numeric
// stock value, and the average per product.
func (t *Table) StockSummary() string {
	if t.Len() == 0 {
		return msgNoInventory
	}
	col, ok := t.ResolveColumn(RoleStock)
	if !ok {
		return msgNoStockColumn
	}

	var total float64
	var count int
	for _, n := range t.Numbers(col) {
		if n.Valid {
			total += n.Value
			count++
		}
	}

	average := notAvailable
	if count > 0 {
		average = fmt.Sprintf("%.1f", total/float64(count))
	}

	var b strings.Builder
	b.WriteString("📊 **RESUMEN DE STOCK:**\n\n")
	fmt.Fprintf(&b, "• Stock total: **%s** unidades\n", formatUnits(total))
	fmt.Fprintf(&b, "• Productos con stock registrado: **%d**\n", count)
	fmt.Fprintf(&b, "• Promedio por producto: **%s** unidades", average)
	return b.String()
}

// ValueSummary computes the total inventory valuation. A row contributes
// price × stock only when both cells are numeric.
func (t *Table) ValueSummary() string {
	if t.Len() == 0 {
		return msgNoInventory
	}
	priceCol, ok := t.ResolveColumn(RolePrice)
	if !ok {
		return msgNoPriceColumn
	}
	stockCol, ok := t.ResolveColumn(RoleStock)
	if !ok {
		return msgNoStockColumn
	}

	prices := t.Numbers(priceCol)
	stocks := t.Numbers(stockCol)

	var total float64
	var valued int
	for i := range prices {
		if prices[i].Valid && stocks[i].Valid {
			total += prices[i].Value * stocks[i].Value
			valued++
		}
	}

	average := notAvailable
	if valued > 0 {
		average = "$" + formatMoney(total/float64(valued))
	}

	var b strings.Builder
	b.WriteString("💰 **VALOR DEL INVENTARIO:**\n\n")
	fmt.Fprintf(&b, "• Valor total: **$%s**\n", formatMoney(total))
	fmt.Fprintf(&b, "• Productos valorados: **%d**\n", valued)
	fmt.Fprintf(&b, "• Valor promedio por producto: **%s**", average)
	return b.String()
}

// SearchSummary selects every product where any column contains any of
// the terms (case-insensitive). Matching products are listed with their
// display-relevant fields; if price and stock columns both resolve, the
// matched stock and valuation totals are appended.
func (t *Table) SearchSummary(terms []string) string {
	if t.Len() == 0 {
		return msgNoInventory
	}

	lowered := make([]string, len(terms))
	for i, term := range terms {
		lowered[i] = strings.ToLower(term)
	}

	var matched []int
	for i := range t.Rows {
		if t.rowMatches(i, lowered) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("No se encontraron productos con: %s", strings.Join(terms, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 **PRODUCTOS ENCONTRADOS: %d**\n\n", len(matched))
	for _, row := range matched {
		fmt.Fprintf(&b, "**Producto %d:**\n", row+1)
		for j, col := range t.Columns {
			if !isDisplayColumn(col) {
				continue
			}
			val := t.Cell(row, j)
			if val == "" || strings.EqualFold(val, "nan") {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", fieldName(col), val)
		}
		b.WriteString("\n")
	}

	priceCol, hasPrice := t.ResolveColumn(RolePrice)
	stockCol, hasStock := t.ResolveColumn(RoleStock)
	if hasPrice && hasStock {
		prices := t.Numbers(priceCol)
		stocks := t.Numbers(stockCol)

		var totalStock, totalValue float64
		for _, row := range matched {
			if stocks[row].Valid {
				totalStock += stocks[row].Value
			}
			if prices[row].Valid && stocks[row].Valid {
				totalValue += prices[row].Value * stocks[row].Value
			}
		}

		b.WriteString("📊 **TOTALES:**\n")
		fmt.Fprintf(&b, "• Stock total: %s unidades\n", formatUnits(totalStock))
		fmt.Fprintf(&b, "• Valor total: $%s\n", formatMoney(totalValue))
	}

	return b.String()
}

// rowMatches reports whether any cell of the row contains any term.
func (t *Table) rowMatches(row int, loweredTerms []string) bool {
	for j := range t.Columns {
		cell := strings.ToLower(t.Cell(row, j))
		if cell == "" {
			continue
		}
		for _, term := range loweredTerms {
			if term != "" && strings.Contains(cell, term) {
				return true
			}
		}
	}
	return false
}
