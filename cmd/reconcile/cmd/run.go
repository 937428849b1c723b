package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearledger/reconciler/internal/config"
	"github.com/clearledger/reconciler/internal/domain"
	"github.com/clearledger/reconciler/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one reconciliation over two record files",
	Long: `Run the normalize -> match -> classify pipeline over an ERP record
file and a bank record file, printing the classified result as JSON.

Example:
  reconcile run --erp testdata/erp_records.json --bank testdata/bank_records.json`,
	RunE: runRun,
}

var (
	runERPPath    string
	runBankPath   string
	runConfigPath string
	runDayFirst   bool
	runOutPath    string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runERPPath, "erp", "", "path to ERP records JSON file (required)")
	runCmd.Flags().StringVar(&runBankPath, "bank", "", "path to bank records JSON file (required)")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().BoolVar(&runDayFirst, "day-first", false, "interpret ambiguous numeric dates day-first")
	runCmd.Flags().StringVarP(&runOutPath, "out", "o", "", "write result JSON to file instead of stdout")
	runCmd.MarkFlagRequired("erp")
	runCmd.MarkFlagRequired("bank")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if runConfigPath != "" {
		loaded, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	erp, err := readRecords(runERPPath)
	if err != nil {
		return fmt.Errorf("read erp records: %w", err)
	}
	bank, err := readRecords(runBankPath)
	if err != nil {
		return fmt.Errorf("read bank records: %w", err)
	}

	opts := pipeline.Options{
		DayFirst:  cfg.Reconcile.DayFirst,
		Tolerance: cfg.Tolerance(),
	}
	if cmd.Flags().Changed("day-first") {
		opts.DayFirst = runDayFirst
	}

	result, err := pipeline.New(opts).Run(erp, bank)
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	out := os.Stdout
	if runOutPath != "" {
		f, err := os.Create(runOutPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if runOutPath != "" {
		fmt.Printf("Reconciled %d ERP against %d bank records: %d classified records written to %s\n",
			len(result.ERP), len(result.Bank), len(result.Records), runOutPath)
	}
	return nil
}

// readRecords loads a JSON array of raw records, keeping numbers as
// json.Number so amounts survive without float conversion.
func readRecords(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var records []domain.RawRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
