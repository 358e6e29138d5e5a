// Package main provides the georef_agent command line tool: it locates INCRA
// georeferencing filings, isolates and extracts their coordinate tables and
// reconciles them against the corresponding survey plan.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "georef_agent",
	Short: "INCRA georeferencing document verifier",
	Long:  "georef_agent resolves a filing by its prenotação, isolates the memorial and plan pages, extracts both coordinate tables through the Gemini API and reports every field that diverges between them.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
