package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfsc/georef-verifier/internal/config"
	"github.com/rfsc/georef-verifier/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full verification pipeline end-to-end",
	Long: `Orchestrates the entire verification process: resolution -> conversion -> classification -> extraction -> reconciliation -> report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runPrenotacao   string
	runIncraPDF     string
	runProjetoPDF   string
	runIncraPages   string
	runProjetoPages string
	runBasePath     string
	runScratchDir   string
	runOutputDir    string
	runBackupDir    string
	runAPIKey       string
	runQuality      int
	runSaveBackups  bool
	runVerbose      bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runPrenotacao, "prenotacao", "p", "", "Prenotação identifying the filing (mutually exclusive with --incra-pdf)")
	runCommand.Flags().StringVar(&runIncraPDF, "incra-pdf", "", "Path to an already converted INCRA PDF (skips resolution and conversion)")
	runCommand.Flags().StringVar(&runProjetoPDF, "projeto-pdf", "", "Path to the PROJETO document PDF")
	runCommand.Flags().StringVar(&runIncraPages, "incra-pages", "", "Memorial pages of the INCRA document, e.g. \"2,3\" (skips classification)")
	runCommand.Flags().StringVar(&runProjetoPages, "projeto-pages", "", "Planta pages of the PROJETO document, e.g. \"1\" (skips classification)")
	runCommand.Flags().StringVar(&runBasePath, "base-path", "", "Base path of the document share")
	runCommand.Flags().StringVar(&runScratchDir, "scratch-dir", "", "Directory for intermediate files (default: system temp)")
	runCommand.Flags().StringVarP(&runOutputDir, "out", "o", "", "Directory for the report and exports")
	runCommand.Flags().StringVar(&runBackupDir, "backup-dir", "", "Directory for PDF backups (default: the output directory)")
	runCommand.Flags().IntVar(&runQuality, "quality", 0, "JPEG quality for rendered page rasters (default 85)")
	runCommand.Flags().BoolVar(&runSaveBackups, "save-backups", false, "Copy the isolated PDFs to the backup directory")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("base-path") {
		cfg.BasePath = runBasePath
	}
	if cmd.Flags().Changed("scratch-dir") {
		cfg.ScratchDir = runScratchDir
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("backup-dir") {
		cfg.BackupDir = runBackupDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("quality") {
		cfg.Quality = runQuality
	}
	if cmd.Flags().Changed("save-backups") {
		cfg.SaveBackups = runSaveBackups
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{})
	if cfg.OutputDir == "" {
		dir, err := config.DefaultOutputDir()
		if err != nil {
			return err
		}
		cfg.OutputDir = dir
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = cfg.OutputDir
	}

	// Step 4: Validate required fields
	if runPrenotacao == "" && runIncraPDF == "" {
		return fmt.Errorf("either --prenotacao or --incra-pdf must be provided")
	}
	if runPrenotacao != "" && runIncraPDF != "" {
		return fmt.Errorf("--prenotacao and --incra-pdf are mutually exclusive; provide only one")
	}
	if runProjetoPDF == "" {
		return fmt.Errorf("--projeto-pdf is required")
	}
	if runPrenotacao != "" && cfg.BasePath == "" {
		return fmt.Errorf("--base-path is required to resolve a prenotação (via flag or config)")
	}

	// Step 5: API Key handling
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	opts := pipeline.RunOptions{
		RawID:        runPrenotacao,
		IncraPDF:     runIncraPDF,
		ProjetoPDF:   runProjetoPDF,
		IncraPages:   runIncraPages,
		ProjetoPages: runProjetoPages,
		BasePath:     cfg.BasePath,
		ScratchDir:   cfg.ScratchDir,
		OutputDir:    cfg.OutputDir,
		BackupDir:    cfg.BackupDir,
		APIKey:       cfg.APIKey,
		Quality:      cfg.Quality,
		SaveBackups:  cfg.SaveBackups,
		Verbose:      cfg.Verbose,
	}

	return pipeline.RunPipeline(ctx, opts)
}
