package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfsc/georef-verifier/internal/config"
	"github.com/rfsc/georef-verifier/internal/extraction"
	"github.com/rfsc/georef-verifier/internal/llm"
	"github.com/rfsc/georef-verifier/internal/observability"
	"github.com/rfsc/georef-verifier/internal/report"
)

var extractTablesCmd = &cobra.Command{
	Use:   "extract-tables",
	Short: "Read the coordinate table out of a document via the Gemini API",
	Long:  "Extract-tables sends an isolated memorial or planta PDF to the model, parses the returned coordinate table and exports it as an .xlsx workbook next to the source document.",
	RunE:  runExtractTables,
}

var (
	tablesConfigPath string
	tablesPDF        string
	tablesRole       string
	tablesAPIKey     string
	tablesOut        string
	tablesVerbose    bool
)

func init() {
	extractTablesCmd.Flags().StringVar(&tablesConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	extractTablesCmd.Flags().StringVar(&tablesPDF, "pdf", "", "Path to the isolated document PDF (required)")
	extractTablesCmd.Flags().StringVar(&tablesRole, "role", "memorial", "Document role of the PDF: memorial or planta")
	extractTablesCmd.Flags().StringVar(&tablesAPIKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	extractTablesCmd.Flags().StringVar(&tablesOut, "out", "", "Directory for the workbook (default: next to the PDF)")
	extractTablesCmd.Flags().BoolVarP(&tablesVerbose, "verbose", "v", false, "Print the extracted table")

	extractTablesCmd.MarkFlagRequired("pdf")

	rootCmd.AddCommand(extractTablesCmd)
}

func runExtractTables(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	role, err := parseRole(tablesRole)
	if err != nil {
		return err
	}

	var cfg config.Config
	if tablesConfigPath != "" {
		loaded, err := config.LoadConfig(tablesConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = tablesAPIKey
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			fmt.Printf("Warning: failed to close Gemini client: %v\n", err)
		}
	}()

	extractor := extraction.NewExtractor(client, llm.TierAdvanced)
	table, err := extractor.ExtractTable(ctx, tablesPDF, role)
	if err != nil {
		return err
	}
	if tablesVerbose {
		observability.NewPrinter(os.Stdout).PrintTable(strings.ToUpper(string(role)), table)
	}

	outDir := tablesOut
	if outDir == "" {
		outDir = filepath.Dir(tablesPDF)
	}
	xlsxPath := filepath.Join(outDir, report.XLSXFileName(tablesPDF))
	if err := report.WriteXLSX(table, xlsxPath); err != nil {
		return err
	}

	fmt.Printf("Successfully extracted %d row(s)\n", len(table.Data))
	fmt.Printf("Workbook: %s\n", xlsxPath)
	return nil
}
