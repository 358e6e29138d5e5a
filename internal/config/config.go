// Package config loads and validates the agent's file-based settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/rfsc/georef-verifier/internal/raster"
)

// Config holds the settings a JSON config file may carry. Every field is
// optional; whatever is missing comes from flags or built-in defaults.
type Config struct {
	// Paths
	BasePath   string `json:"base_path,omitempty"`   // Root of the registry share holding scanned documents
	ScratchDir string `json:"scratch_dir,omitempty"` // Working directory for intermediate files
	OutputDir  string `json:"output_dir,omitempty"`  // Where the HTML report and XLSX exports land
	BackupDir  string `json:"backup_dir,omitempty"`  // Where timestamped PDF backups land

	// Behavior
	APIKey      string `json:"api_key,omitempty"`                                    // Gemini API key
	Quality     int    `json:"quality,omitempty" validate:"omitempty,min=1,max=100"` // JPEG quality for rendered page rasters
	SaveBackups bool   `json:"save_backups,omitempty"`                               // Copy extracted PDFs to the backup directory
	Verbose     bool   `json:"verbose,omitempty"`                                    // Print detailed debug information
}

// LoadConfig reads a JSON config file. A relative path resolves against the
// current directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", abs, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return cfg, nil
}

// Validate applies the struct tags and checks that a configured base path
// names an existing directory. Required fields are left to flag validation,
// which runs after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.BasePath == "" {
		return nil
	}
	info, err := os.Stat(c.BasePath)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("config error: base path not found: %s", c.BasePath)
	case err == nil && !info.IsDir():
		return fmt.Errorf("config error: base path is not a directory: %s", c.BasePath)
	}
	return nil
}

// MergeWithDefaults fills the receiver's empty fields from defaults and
// returns the result. Flags overlay the merged value afterwards, so anything
// the user typed still wins. Bools are left alone: false and unset look the
// same after decoding.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	merged := *c

	merged.BasePath = firstNonEmpty(merged.BasePath, defaults.BasePath)
	merged.ScratchDir = firstNonEmpty(merged.ScratchDir, defaults.ScratchDir)
	merged.OutputDir = firstNonEmpty(merged.OutputDir, defaults.OutputDir)
	merged.BackupDir = firstNonEmpty(merged.BackupDir, defaults.BackupDir)
	merged.APIKey = firstNonEmpty(merged.APIKey, defaults.APIKey)

	if merged.Quality == 0 {
		merged.Quality = defaults.Quality
		if merged.Quality <= 0 {
			merged.Quality = raster.DefaultQuality
		}
	}

	return merged
}

func firstNonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// DefaultOutputDir picks the conventional reports directory: a documents
// folder under the user's home when one exists, the home directory otherwise.
func DefaultOutputDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config error: cannot determine home directory: %w", err)
	}
	for _, docs := range []string{"Documents", "Documentos"} {
		candidate := filepath.Join(home, docs)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return filepath.Join(candidate, "Relatórios INCRA"), nil
		}
	}
	return filepath.Join(home, "Relatórios INCRA"), nil
}
