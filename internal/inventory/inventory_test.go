package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTable builds a table from a header row and data rows, padding rows
// like the loader does.
func newTable(columns []string, rows ...[]string) *Table {
	t := &Table{Columns: columns}
	for _, row := range rows {
		padded := make([]string, len(columns))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t
}

func TestResolveColumn(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		role     Role
		wantCol  string
		wantluck bool
	}{
		{
			name:     "category resolves by exact fragment",
			columns:  []string{"SKU", "Categoria", "Precio"},
			role:     RoleCategory,
			wantCol:  "Categoria",
			wantluck: true,
		},
		{
			name:     "match is case-insensitive substring",
			columns:  []string{"SKU", "TIPO_CATEGORIA"},
			role:     RoleCategory,
			wantCol:  "TIPO_CATEGORIA",
			wantluck: true,
		},
		{
			name:     "first column in workbook order wins",
			columns:  []string{"SKU", "Stock", "Stock_Actual"},
			role:     RoleStock,
			wantCol:  "Stock",
			wantluck: true,
		},
		{
			name:     "price resolves on valor",
			columns:  []string{"Nombre", "Valor_Venta"},
			role:     RolePrice,
			wantCol:  "Valor_Venta",
			wantluck: true,
		},
		{
			name:     "absent role",
			columns:  []string{"SKU", "Nombre"},
			role:     RoleCategory,
			wantluck: false,
		},
		{
			name:     "unknown role never matches",
			columns:  []string{"SKU", "Marca"},
			role:     Role("brand"),
			wantluck: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := newTable(tt.columns)
			col, ok := tbl.ResolveColumn(tt.role)
			assert.Equal(t, tt.wantluck, ok)
			if ok {
				assert.Equal(t, tt.wantCol, tbl.Columns[col])
			}
		})
	}
}

func TestResolveColumn_NilTable(t *testing.T) {
	var tbl *Table
	_, ok := tbl.ResolveColumn(RoleStock)
	assert.False(t, ok)
}

func TestNumbers(t *testing.T) {
	tbl := newTable([]string{"Stock"},
		[]string{"10"},
		[]string{"abc"},
		[]string{" 5 "},
		[]string{""},
		[]string{"$1,250.50"},
	)

	nums := tbl.Numbers(0)
	require.Len(t, nums, 5)

	assert.Equal(t, Number{Value: 10, Valid: true}, nums[0])
	assert.False(t, nums[1].Valid)
	assert.Equal(t, Number{Value: 5, Valid: true}, nums[2])
	assert.False(t, nums[3].Valid)
	assert.Equal(t, Number{Value: 1250.50, Valid: true}, nums[4])
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"1234567", "1,234,567"},
		{"1234.56", "1,234.56"},
		{"-1234567.89", "-1,234,567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, groupThousands(tt.in))
		})
	}
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "Stock Actual", fieldName("stock_actual"))
	assert.Equal(t, "Precio", fieldName("PRECIO"))
	assert.Equal(t, "Valor De Venta", fieldName("valor_de_venta"))
}

func TestText(t *testing.T) {
	tbl := newTable([]string{"Marca", "Stock"},
		[]string{"Dahua", "12"},
		[]string{"HP", ""},
	)

	text := tbl.Text()
	assert.Contains(t, text, "=== INVENTARIO COMPLETO DE PRODUCTOS ===")
	assert.Contains(t, text, "Total de productos: 2")
	assert.Contains(t, text, "Campos disponibles: Marca, Stock")
	assert.Contains(t, text, RecordMarker+"1:")
	assert.Contains(t, text, "  Marca: Dahua")
	assert.Contains(t, text, "  Stock: 12")
	assert.Contains(t, text, RecordMarker+"2:")
	// Empty cells are omitted from the product block.
	assert.NotContains(t, text, "  Stock: \n")
}

func TestText_Empty(t *testing.T) {
	var tbl *Table
	assert.Empty(t, tbl.Text())
	assert.Empty(t, newTable([]string{"A"}).Text())
}
