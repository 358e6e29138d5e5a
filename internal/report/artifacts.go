package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/rfsc/georef-verifier/internal/extraction"
	"github.com/rfsc/georef-verifier/internal/reconcile"
)

// Artifacts writes every deliverable of a completed run. The writers are
// independent of each other, so they run concurrently.
type Artifacts struct {
	// OutputDir receives the HTML report and the XLSX exports.
	OutputDir string
	// BackupDir receives timestamped copies of the extracted PDFs.
	BackupDir string
	// SaveBackups toggles the PDF backup step.
	SaveBackups bool
}

// ArtifactPaths records where each deliverable landed.
type ArtifactPaths struct {
	HTML        string
	IncraXLSX   string
	ProjetoXLSX string
	Backups     []string
}

// Write renders and persists the HTML report, both table exports, and the
// optional PDF backups for one run.
func (a *Artifacts) Write(ctx context.Context, rep *reconcile.Report, incraTable, projetoTable *extraction.Table, incraPDF, projetoPDF string) (*ArtifactPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, &RenderError{Message: "no report to write"}
	}
	if err := os.MkdirAll(a.OutputDir, 0o755); err != nil {
		return nil, &ExportError{Path: a.OutputDir, Message: "creating output directory", Cause: err}
	}

	paths := &ArtifactPaths{
		HTML:        filepath.Join(a.OutputDir, HTMLFileName(rep.Registration)),
		IncraXLSX:   filepath.Join(a.OutputDir, XLSXFileName(incraPDF)),
		ProjetoXLSX: filepath.Join(a.OutputDir, XLSXFileName(projetoPDF)),
	}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		body, err := RenderHTML(rep)
		if err != nil {
			return err
		}
		if err := os.WriteFile(paths.HTML, body, 0o644); err != nil {
			return &ExportError{Path: paths.HTML, Message: "writing report", Cause: err}
		}
		return nil
	})
	g.Go(func() error {
		return WriteXLSX(incraTable, paths.IncraXLSX)
	})
	g.Go(func() error {
		return WriteXLSX(projetoTable, paths.ProjetoXLSX)
	})
	if a.SaveBackups {
		g.Go(func() error {
			paths.Backups = SaveBackups(a.BackupDir, rep.Registration, rep.GeneratedAt, incraPDF, projetoPDF)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("writing run artifacts: %w", err)
	}
	return paths, nil
}
