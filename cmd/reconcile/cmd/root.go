package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile an ERP ledger export against a bank statement",
	Long: `Reconcile pairs transaction records from an internal accounting (ERP)
export against records extracted from a bank statement, and classifies the
remainder as discrepancies.

Both inputs are JSON files containing arrays of structured records, as
produced by an upstream document extractor. The output is the classified
reconciliation result as JSON.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
