package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rfsc/georef-verifier/internal/classify"
	"github.com/rfsc/georef-verifier/internal/config"
	"github.com/rfsc/georef-verifier/internal/document"
	"github.com/rfsc/georef-verifier/internal/llm"
	"github.com/rfsc/georef-verifier/internal/observability"
	"github.com/rfsc/georef-verifier/internal/raster"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Find the pages of a document that carry a given role",
	Long:  "Classify renders each page of a PDF or TIFF and asks the model, page by page, whether it belongs to the memorial descritivo or to the planta, printing the pages that match.",
	RunE:  runClassify,
}

var (
	classifyConfigPath string
	classifyPDF        string
	classifyTIFF       string
	classifyRole       string
	classifyAPIKey     string
	classifyQuality    int
	classifyScratch    string
	classifyVerbose    bool
)

func init() {
	classifyCmd.Flags().StringVar(&classifyConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	classifyCmd.Flags().StringVar(&classifyPDF, "pdf", "", "Path to the source PDF")
	classifyCmd.Flags().StringVar(&classifyTIFF, "tiff", "", "Path to the source TIFF")
	classifyCmd.Flags().StringVar(&classifyRole, "role", "memorial", "Document role to look for: memorial or planta")
	classifyCmd.Flags().StringVar(&classifyAPIKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	classifyCmd.Flags().IntVar(&classifyQuality, "quality", 0, "JPEG quality for rendered pages (default 85)")
	classifyCmd.Flags().StringVar(&classifyScratch, "scratch-dir", "", "Directory for intermediate page images (default: system temp)")
	classifyCmd.Flags().BoolVarP(&classifyVerbose, "verbose", "v", false, "Print per-page verdicts while classifying")

	rootCmd.AddCommand(classifyCmd)
}

// parseRole maps the user-facing role names onto the classifier's roles.
// Both the Portuguese and English spellings of the plan are accepted.
func parseRole(raw string) (classify.Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memorial":
		return classify.RoleMemorial, nil
	case "planta", "plan", "projeto":
		return classify.RolePlan, nil
	}
	return "", fmt.Errorf("unknown document role %q (use \"memorial\" or \"planta\")", raw)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	if classifyPDF == "" && classifyTIFF == "" {
		return fmt.Errorf("either --pdf or --tiff must be provided")
	}
	if classifyPDF != "" && classifyTIFF != "" {
		return fmt.Errorf("--pdf and --tiff are mutually exclusive")
	}
	role, err := parseRole(classifyRole)
	if err != nil {
		return err
	}

	var cfg config.Config
	if classifyConfigPath != "" {
		loaded, err := config.LoadConfig(classifyConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = classifyAPIKey
	}
	if cmd.Flags().Changed("quality") {
		cfg.Quality = classifyQuality
	}
	if cmd.Flags().Changed("scratch-dir") {
		cfg.ScratchDir = classifyScratch
	}
	cfg = cfg.MergeWithDefaults(config.Config{Quality: raster.DefaultQuality})

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

	var renderer document.PageRenderer
	if classifyTIFF != "" {
		renderer, err = document.NewFrameRenderer(classifyTIFF, cfg.ScratchDir, cfg.Quality)
	} else {
		renderer, err = document.NewImageRenderer(classifyPDF, cfg.ScratchDir, cfg.Quality)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			fmt.Printf("Warning: failed to clean up page renderer: %v\n", err)
		}
	}()

	classifier := classify.NewClassifier(client, llm.TierLite)
	classifier.Verbose = classifyVerbose
	outcome, err := classifier.FindPages(ctx, renderer, role)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintClassification(outcome)
	if len(outcome.Matches()) == 0 {
		return &classify.NoMatchingPagesError{Role: role}
	}
	return nil
}
