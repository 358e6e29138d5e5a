package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfsc/georef-verifier/internal/config"
	"github.com/rfsc/georef-verifier/internal/observability"
	"github.com/rfsc/georef-verifier/internal/reconcile"
	"github.com/rfsc/georef-verifier/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Reconcile two previously exported workbooks",
	Long:  "Compare reads the INCRA and PROJETO workbooks produced by extract-tables, reconciles every vertex and segment field between them and writes the HTML conference report.",
	RunE:  runCompare,
}

var (
	compareConfigPath  string
	compareIncraXLSX   string
	compareProjetoXLSX string
	comparePrenotacao  string
	compareOut         string
)

func init() {
	compareCmd.Flags().StringVar(&compareConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	compareCmd.Flags().StringVar(&compareIncraXLSX, "incra-xlsx", "", "Workbook extracted from the INCRA memorial (required)")
	compareCmd.Flags().StringVar(&compareProjetoXLSX, "projeto-xlsx", "", "Workbook extracted from the PROJETO planta (required)")
	compareCmd.Flags().StringVarP(&comparePrenotacao, "prenotacao", "p", "", "Prenotação shown on the report (default: derived from the INCRA workbook name)")
	compareCmd.Flags().StringVar(&compareOut, "out", "", "Directory for the HTML report")

	compareCmd.MarkFlagRequired("incra-xlsx")
	compareCmd.MarkFlagRequired("projeto-xlsx")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if compareConfigPath != "" {
		loaded, err := config.LoadConfig(compareConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = compareOut
	}
	if cfg.OutputDir == "" {
		dir, err := config.DefaultOutputDir()
		if err != nil {
			return err
		}
		cfg.OutputDir = dir
	}

	label := comparePrenotacao
	if label == "" {
		stem := strings.TrimSuffix(filepath.Base(compareIncraXLSX), filepath.Ext(compareIncraXLSX))
		label = strings.TrimSuffix(stem, "_extraido")
	}

	incraTable, err := report.ReadXLSX(compareIncraXLSX)
	if err != nil {
		return err
	}
	projetoTable, err := report.ReadXLSX(compareProjetoXLSX)
	if err != nil {
		return err
	}

	vertices, err := reconcile.Compare(reconcile.KindVertex(), incraTable.VertexDataset("INCRA"), projetoTable.VertexDataset("PROJETO"))
	if err != nil {
		return err
	}
	segments, err := reconcile.Compare(reconcile.KindSegment(), incraTable.SegmentDataset("INCRA"), projetoTable.SegmentDataset("PROJETO"))
	if err != nil {
		return err
	}
	rep := reconcile.NewReport(label, vertices, segments)

	html, err := report.RenderHTML(rep)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	htmlPath := filepath.Join(cfg.OutputDir, report.HTMLFileName(label))
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintReportSummary(rep)
	if rep.Clean() {
		fmt.Printf("✅ All %d field(s) match between INCRA and PROJETO.\n", rep.TotalIdentical())
	} else {
		fmt.Printf("⚠️ Warning: %d field(s) diverge between INCRA and PROJETO — see the report.\n", rep.TotalDifferent())
	}
	fmt.Printf("Report: %s\n", htmlPath)
	return nil
}
