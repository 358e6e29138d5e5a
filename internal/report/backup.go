package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Backup subdirectories, one per source document role.
const (
	incraBackupDir   = "PDF_INCRAS"
	projetoBackupDir = "PDF_PLANTAS"
)

const backupStamp = "20060102_150405"

// SaveBackups copies the per-role extracted PDFs into timestamped files under
// dir. Backups are best-effort: trouble is printed as a warning and never
// interrupts the run. Returns the paths that were written.
func SaveBackups(dir, registration string, when time.Time, incraPDF, projetoPDF string) []string {
	stamp := when.Format(backupStamp)
	targets := []struct {
		src    string
		subdir string
		prefix string
	}{
		{src: incraPDF, subdir: incraBackupDir, prefix: "INCRA"},
		{src: projetoPDF, subdir: projetoBackupDir, prefix: "PROJETO"},
	}

	saved := make([]string, 0, len(targets))
	for _, target := range targets {
		if target.src == "" {
			continue
		}
		if _, err := os.Stat(target.src); err != nil {
			fmt.Printf("Warning: skipping backup, source not found: %s\n", target.src)
			continue
		}
		dstDir := filepath.Join(dir, target.subdir)
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			fmt.Printf("Warning: could not create backup directory %s: %v\n", dstDir, err)
			continue
		}
		dst := filepath.Join(dstDir, fmt.Sprintf("%s_%s_%s.pdf", target.prefix, registration, stamp))
		if err := copyFile(target.src, dst); err != nil {
			fmt.Printf("Warning: could not back up %s: %v\n", target.src, err)
			continue
		}
		saved = append(saved, dst)
	}
	return saved
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
