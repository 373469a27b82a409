package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inventabot/inventabot/internal/config"
	"github.com/inventabot/inventabot/internal/inventory"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the inventory workbook and print a summary",
	Long: `Loads the configured inventory workbook and prints the column
headers, product count and the heuristic aggregation summaries. Useful to
verify a new spreadsheet before pointing the bot at it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInspect(cmd)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	table, err := inventory.Load(cfg.InventoryFile, cfg.InventorySheet)
	if err != nil {
		return fmt.Errorf("loading inventory: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File: %s (sheet %q)\n", cfg.InventoryFile, cfg.InventorySheet)
	fmt.Fprintf(out, "Products: %d\n", table.Len())
	fmt.Fprintf(out, "Columns: %v\n\n", table.Columns)

	for _, role := range []inventory.Role{inventory.RoleCategory, inventory.RoleStock, inventory.RolePrice} {
		if col, ok := table.ResolveColumn(role); ok {
			fmt.Fprintf(out, "Role %-8s -> %s\n", role, table.Columns[col])
		} else {
			fmt.Fprintf(out, "Role %-8s -> (not found)\n", role)
		}
	}

	fmt.Fprintf(out, "\n%s\n\n%s\n\n%s\n",
		table.CategoriesSummary(),
		table.StockSummary(),
		table.ValueSummary(),
	)
	return nil
}
