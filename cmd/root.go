// Package cmd implements the inventabot command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inventabot",
	Short: "inventabot - WhatsApp inventory assistant",
	Long: `inventabot answers natural-language inventory questions over WhatsApp.

It receives Evolution API webhook events, gates every conversation behind
an explicit session (/inventario to start, /fin to end), resolves questions
against an Excel inventory workbook, and generates answers with Gemini.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
