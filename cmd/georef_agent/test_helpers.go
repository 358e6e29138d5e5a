package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath points the CLI tests at the compiled georef_agent binary.
// The suite execs it as a subprocess, so it has to exist beforehand.
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	path := filepath.Join("..", "..", "bin", "georef_agent")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", path)
	}
	return path
}
