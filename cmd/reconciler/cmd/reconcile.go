package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bank-gl-reconciliation-service/cmd/reconciler/config"
	"bank-gl-reconciliation-service/internal/reconciler"
	"bank-gl-reconciliation-service/internal/reporter"
)

// Flags for the reconcile command
var (
	bankFile        string
	ledgerFile      string
	outputFile      string
	companyName     string
	summaryFormat   string
	matchThreshold  int
	amountTolerance float64
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a bank statement batch with a general ledger export",
	Long: `Reconcile scores each bank statement transaction against the general
ledger, assigns document numbers, and writes the accounting upload CSV.

This command requires:
- A bank statement batch (JSON, as produced by statement extraction)
- A general ledger export (CSV in check register column layout)

Examples:
  # Basic reconciliation, upload rows written to upload.csv
  reconciler reconcile --bank-file statement.json --ledger-file ledger.csv

  # Custom output location and JSON summary
  reconciler reconcile -b statement.json -l ledger.csv \
    -o /tmp/upload.csv --summary-format json

  # Looser scoring for noisy statements
  reconciler reconcile -b statement.json -l ledger.csv \
    --match-threshold 4 --amount-tolerance 0.05`,

	PreRunE: validateReconcileFlags,
	RunE:    runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().StringVarP(&bankFile, "bank-file", "b", "", "path to bank statement JSON file (required)")
	reconcileCmd.Flags().StringVarP(&ledgerFile, "ledger-file", "l", "", "path to general ledger CSV file (required)")

	reconcileCmd.Flags().StringVarP(&outputFile, "output-file", "o", "upload.csv", "upload CSV output path")
	reconcileCmd.Flags().StringVar(&companyName, "company-name", "", "company name recorded in the summary")
	reconcileCmd.Flags().StringVar(&summaryFormat, "summary-format", "console", "summary format: console, json")

	reconcileCmd.Flags().IntVar(&matchThreshold, "match-threshold", 5, "minimum score for a confirmed match")
	reconcileCmd.Flags().Float64Var(&amountTolerance, "amount-tolerance", 0.01, "absolute amount tolerance for exact-amount scoring")

	reconcileCmd.MarkFlagRequired("bank-file")
	reconcileCmd.MarkFlagRequired("ledger-file")

	viper.BindPFlag("bank-file", reconcileCmd.Flags().Lookup("bank-file"))
	viper.BindPFlag("ledger-file", reconcileCmd.Flags().Lookup("ledger-file"))
	viper.BindPFlag("output-file", reconcileCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("company-name", reconcileCmd.Flags().Lookup("company-name"))
	viper.BindPFlag("summary-format", reconcileCmd.Flags().Lookup("summary-format"))
	viper.BindPFlag("match-threshold", reconcileCmd.Flags().Lookup("match-threshold"))
	viper.BindPFlag("amount-tolerance", reconcileCmd.Flags().Lookup("amount-tolerance"))
}

func validateReconcileFlags(cmd *cobra.Command, args []string) error {
	// Viper values win so config files and GLRECON_* env vars can override.
	bankFile = viper.GetString("bank-file")
	ledgerFile = viper.GetString("ledger-file")
	outputFile = viper.GetString("output-file")
	companyName = viper.GetString("company-name")
	summaryFormat = viper.GetString("summary-format")
	matchThreshold = viper.GetInt("match-threshold")
	amountTolerance = viper.GetFloat64("amount-tolerance")

	if bankFile == "" {
		return fmt.Errorf("bank-file is required")
	}
	if ledgerFile == "" {
		return fmt.Errorf("ledger-file is required")
	}

	if err := validateFileExists(bankFile, "bank statement file"); err != nil {
		return err
	}
	if err := validateFileExists(ledgerFile, "ledger file"); err != nil {
		return err
	}

	if summaryFormat != "console" && summaryFormat != "json" {
		return fmt.Errorf("invalid summary format '%s'. Valid formats: console, json", summaryFormat)
	}

	if matchThreshold <= 0 {
		return fmt.Errorf("match threshold must be positive")
	}
	if amountTolerance < 0 {
		return fmt.Errorf("amount tolerance cannot be negative")
	}

	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting reconciliation...\n")
		fmt.Fprintf(os.Stderr, "Bank file:   %s\n", bankFile)
		fmt.Fprintf(os.Stderr, "Ledger file: %s\n", ledgerFile)
		fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
	}

	serviceConfig := config.CreateServiceConfig(matchThreshold, amountTolerance)
	service := reconciler.NewService(serviceConfig)

	result, err := service.ReconcileFiles(ctx, &reconciler.FileRequest{
		CompanyName: companyName,
		BankFile:    bankFile,
		LedgerFile:  ledgerFile,
	})
	if err != nil {
		return err
	}

	generator := reporter.NewGenerator(service.Rules(), nil)
	csvContent, err := generator.GenerateUploadCSV(result.Results)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, []byte(csvContent+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write upload file %s: %w", outputFile, err)
	}

	switch summaryFormat {
	case "json":
		data, err := reporter.MarshalJSONSummary(result)
		if err != nil {
			return fmt.Errorf("failed to render summary: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
	default:
		if err := reporter.WriteConsoleSummary(os.Stdout, result); err != nil {
			return err
		}
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Upload rows written to %s\n", outputFile)
	}

	return nil
}
