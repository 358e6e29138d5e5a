package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rfsc/georef-verifier/internal/config"
	"github.com/rfsc/georef-verifier/internal/observability"
	"github.com/rfsc/georef-verifier/internal/registry"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a prenotação to its scanned document on the share",
	Long:  "Resolve maps a prenotação to its storage bucket and expected file path under the configured base path, checks that the share is reachable and verifies the document exists.",
	RunE:  runResolve,
}

var (
	resolveConfigPath string
	resolvePrenotacao string
	resolveBasePath   string
)

func init() {
	resolveCmd.Flags().StringVar(&resolveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	resolveCmd.Flags().StringVarP(&resolvePrenotacao, "prenotacao", "p", "", "Prenotação identifying the filing (required)")
	resolveCmd.Flags().StringVar(&resolveBasePath, "base-path", "", "Base path of the document share")

	resolveCmd.MarkFlagRequired("prenotacao")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var cfg config.Config
	if resolveConfigPath != "" {
		loaded, err := config.LoadConfig(resolveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("base-path") {
		cfg.BasePath = resolveBasePath
	}
	if cfg.BasePath == "" {
		return fmt.Errorf("--base-path is required (via flag or config)")
	}

	resolver := registry.NewResolver(cfg.BasePath)
	if err := resolver.Preflight(ctx); err != nil {
		return fmt.Errorf("network preflight failed: %w", err)
	}
	res, err := resolver.Resolve(ctx, resolvePrenotacao)
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintResolution(res)
	return nil
}
