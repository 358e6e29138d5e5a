// Package pipeline provides the high-level orchestration for a verification
// run: acquire the INCRA document, isolate the relevant pages of both
// documents, extract their coordinate tables, reconcile them and write the
// report artifacts.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rfsc/georef-verifier/internal/classify"
	"github.com/rfsc/georef-verifier/internal/document"
	"github.com/rfsc/georef-verifier/internal/extraction"
	"github.com/rfsc/georef-verifier/internal/llm"
	"github.com/rfsc/georef-verifier/internal/observability"
	"github.com/rfsc/georef-verifier/internal/raster"
	"github.com/rfsc/georef-verifier/internal/reconcile"
	"github.com/rfsc/georef-verifier/internal/registry"
	"github.com/rfsc/georef-verifier/internal/report"
	"github.com/rfsc/georef-verifier/internal/selection"
)

// Step names attached to progress events, one per pipeline stage.
const (
	StepResolve   = "resolve_document"
	StepConvert   = "convert_raster"
	StepMemorial  = "isolate_memorial"
	StepPlan      = "isolate_plan"
	StepTables    = "extract_tables"
	StepReconcile = "reconcile_records"
	StepArtifacts = "write_artifacts"
)

// Progress event categories, grouping steps by pipeline phase.
const (
	CategoryAcquisition    = "acquisition"
	CategoryClassification = "classification"
	CategoryExtraction     = "extraction"
	CategoryReconciliation = "reconciliation"
	CategoryReporting      = "reporting"
)

// Dataset labels shown in the report.
const (
	labelIncra   = "INCRA"
	labelProjeto = "PROJETO"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	RawID      string // prenotação naming the INCRA document on the share
	IncraPDF   string // optional: supply the INCRA document directly, skipping resolution and conversion
	ProjetoPDF string // the plan document to verify against

	// Optional comma-separated 1-based page lists; when set, classification
	// for that document is skipped.
	IncraPages   string
	ProjetoPages string

	BasePath   string
	ScratchDir string
	OutputDir  string
	BackupDir  string

	APIKey  string
	Quality int

	SaveBackups bool
	Verbose     bool

	Client     llm.Client // optional: tests inject fakes
	OnProgress ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// reportLabel picks the identifier that names the run in the report and in
// the artifact file names: the canonical prenotação when one was given, the
// document's file stem otherwise.
func reportLabel(opts *RunOptions) (string, error) {
	if strings.TrimSpace(opts.RawID) != "" {
		reg, err := registry.ParseRegistration(opts.RawID)
		if err != nil {
			return "", err
		}
		return reg.Canonical(), nil
	}
	base := filepath.Base(opts.IncraPDF)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}

// pageQuality returns the JPEG quality for page rasters.
func pageQuality(opts *RunOptions) int {
	if opts.Quality > 0 {
		return opts.Quality
	}
	return raster.DefaultQuality
}

// RunPipeline orchestrates a full verification run. The stages run strictly
// in sequence; only the final artifact writes happen in parallel.
func RunPipeline(ctx context.Context, opts RunOptions) error {
	if opts.RawID == "" && opts.IncraPDF == "" {
		return fmt.Errorf("either a prenotação or an INCRA document path is required")
	}
	if opts.ProjetoPDF == "" {
		return fmt.Errorf("a PROJETO document path is required")
	}

	label, err := reportLabel(&opts)
	if err != nil {
		return fmt.Errorf("invalid prenotação: %w", err)
	}

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	client := opts.Client
	if client == nil {
		created, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return fmt.Errorf("creating API client failed: %w", err)
		}
		defer func() {
			if err := created.Close(); err != nil {
				fmt.Printf("Warning: could not close API client: %v\n", err)
			}
		}()
		client = created
	}
	if opts.Verbose {
		fmt.Printf("[VERBOSE] Models: %s for classification, %s for table extraction\n",
			client.GetModel(llm.TierLite), client.GetModel(llm.TierAdvanced))
	}

	// Step 1: Resolve the INCRA document (or take the one supplied)
	var rasterPath string
	incraPDF := opts.IncraPDF
	if incraPDF != "" {
		fmt.Printf("Step 1/7: Using supplied INCRA document: %s\n", incraPDF)
		emitProgress(&opts, StepResolve, CategoryAcquisition,
			fmt.Sprintf("Using supplied INCRA document %s", incraPDF), nil)
	} else {
		fmt.Printf("Step 1/7: Resolving prenotação %s under %s...\n", label, opts.BasePath)
		resolver := registry.NewResolver(opts.BasePath)
		if err := resolver.Preflight(ctx); err != nil {
			return fmt.Errorf("network preflight failed: %w", err)
		}
		res, err := resolver.Resolve(ctx, opts.RawID)
		if err != nil {
			return fmt.Errorf("resolving the INCRA document failed: %w", err)
		}
		if opts.Verbose {
			printer.PrintResolution(res)
		}
		rasterPath = res.Path
		emitProgress(&opts, StepResolve, CategoryAcquisition,
			fmt.Sprintf("Resolved prenotação %s to %s", label, res.Path), res)
	}

	// Step 2: Convert the TIFF into a PDF when the document came off the share
	if rasterPath != "" {
		fmt.Printf("Step 2/7: Converting %s to PDF...\n", filepath.Base(rasterPath))
		converter := &document.Converter{ScratchDir: opts.ScratchDir, Quality: pageQuality(&opts)}
		doc, err := converter.Convert(ctx, rasterPath, filepath.Join(opts.OutputDir, "INCRA_"+label+".pdf"))
		if err != nil {
			return fmt.Errorf("raster conversion failed: %w", err)
		}
		incraPDF = doc.Path
		emitProgress(&opts, StepConvert, CategoryAcquisition,
			fmt.Sprintf("Converted %s into a %d-page PDF", filepath.Base(rasterPath), doc.PageCount), doc)
	} else {
		fmt.Printf("Step 2/7: Document is already a PDF, conversion skipped.\n")
		emitProgress(&opts, StepConvert, CategoryAcquisition, "Source was already a PDF", nil)
	}

	// Step 3: Isolate the memorial pages of the INCRA document
	fmt.Printf("Step 3/7: Locating memorial pages in the INCRA document...\n")
	memorialDoc, err := isolateRolePages(ctx, &opts, client, printer, classify.RoleMemorial,
		incraPDF, rasterPath, opts.IncraPages, filepath.Join(opts.OutputDir, "Memorial_"+label+".pdf"))
	if err != nil {
		return fmt.Errorf("isolating memorial pages failed: %w", err)
	}
	emitProgress(&opts, StepMemorial, CategoryClassification,
		fmt.Sprintf("Memorial pages isolated into %s (%d page(s))", memorialDoc.Path, memorialDoc.PageCount), nil)

	// Step 4: Isolate the plan pages of the PROJETO document
	fmt.Printf("Step 4/7: Locating plan pages in the PROJETO document...\n")
	planDoc, err := isolateRolePages(ctx, &opts, client, printer, classify.RolePlan,
		opts.ProjetoPDF, "", opts.ProjetoPages, filepath.Join(opts.OutputDir, "Planta_"+label+".pdf"))
	if err != nil {
		return fmt.Errorf("isolating plan pages failed: %w", err)
	}
	emitProgress(&opts, StepPlan, CategoryClassification,
		fmt.Sprintf("Plan pages isolated into %s (%d page(s))", planDoc.Path, planDoc.PageCount), nil)

	// Step 5: Extract the coordinate tables from both role documents
	fmt.Printf("Step 5/7: Extracting coordinate tables...\n")
	extractor := extraction.NewExtractor(client, llm.TierAdvanced)

	incraTable, err := extractor.ExtractTable(ctx, memorialDoc.Path, classify.RoleMemorial)
	if err != nil {
		return fmt.Errorf("extracting the INCRA table failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintTable(labelIncra, incraTable)
	}

	projetoTable, err := extractor.ExtractTable(ctx, planDoc.Path, classify.RolePlan)
	if err != nil {
		return fmt.Errorf("extracting the PROJETO table failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintTable(labelProjeto, projetoTable)
	}
	emitProgress(&opts, StepTables, CategoryExtraction,
		fmt.Sprintf("Extracted %d INCRA and %d PROJETO records", len(incraTable.Data), len(projetoTable.Data)), nil)

	// Step 6: Reconcile the two tables field by field
	fmt.Printf("Step 6/7: Reconciling INCRA and PROJETO records...\n")
	vertices, err := reconcile.Compare(reconcile.KindVertex(),
		incraTable.VertexDataset(labelIncra), projetoTable.VertexDataset(labelProjeto))
	if err != nil {
		return fmt.Errorf("reconciling vertices failed: %w", err)
	}
	segments, err := reconcile.Compare(reconcile.KindSegment(),
		incraTable.SegmentDataset(labelIncra), projetoTable.SegmentDataset(labelProjeto))
	if err != nil {
		return fmt.Errorf("reconciling segments failed: %w", err)
	}
	rep := reconcile.NewReport(label, vertices, segments)
	if opts.Verbose {
		printer.PrintReportSummary(rep)
	}
	emitProgress(&opts, StepReconcile, CategoryReconciliation,
		fmt.Sprintf("%d identical field(s), %d diverging", rep.TotalIdentical(), rep.TotalDifferent()), rep)

	// Step 7: Write the report artifacts (HTML + XLSX + backups)
	fmt.Printf("Step 7/7: Writing report artifacts...\n")
	artifacts := &report.Artifacts{
		OutputDir:   opts.OutputDir,
		BackupDir:   opts.BackupDir,
		SaveBackups: opts.SaveBackups,
	}
	paths, err := artifacts.Write(ctx, rep, incraTable, projetoTable, memorialDoc.Path, planDoc.Path)
	if err != nil {
		return fmt.Errorf("writing report artifacts failed: %w", err)
	}
	emitProgress(&opts, StepArtifacts, CategoryReporting,
		fmt.Sprintf("Report written to %s", paths.HTML), paths)

	if rep.Clean() {
		fmt.Printf("✅ All %d field(s) match between INCRA and PROJETO.\n", rep.TotalIdentical())
	} else {
		fmt.Printf("⚠️ Warning: %d field(s) diverge between INCRA and PROJETO — see the report.\n", rep.TotalDifferent())
	}
	fmt.Printf("Done! Report written to %s\n", paths.HTML)
	return nil
}

// isolateRolePages builds a PDF at outPath holding only the pages of srcPDF
// that carry role. Pages come from the explicit pageSpec when one was given,
// otherwise from the classifier. rasterPath, when set, names the TIFF the
// PDF was converted from; its frames render faster than pulling the images
// back out of the PDF.
func isolateRolePages(ctx context.Context, opts *RunOptions, client llm.Client, printer *observability.Printer, role classify.Role, srcPDF, rasterPath, pageSpec, outPath string) (*document.Document, error) {
	src, err := document.Load(srcPDF)
	if err != nil {
		return nil, err
	}

	var indices []int
	if pageSpec != "" {
		selected, skipped, err := selection.Select(pageSpec, src.PageCount)
		if err != nil {
			return nil, err
		}
		for _, page := range skipped {
			fmt.Printf("Warning: page %d is outside the document (%d pages), skipping\n", page, src.PageCount)
		}
		indices = selected
	} else {
		renderer, err := newPageRenderer(srcPDF, rasterPath, opts.ScratchDir, pageQuality(opts))
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := renderer.Close(); err != nil {
				fmt.Printf("Warning: could not release renderer scratch space: %v\n", err)
			}
		}()

		classifier := classify.NewClassifier(client, llm.TierLite)
		classifier.Verbose = opts.Verbose
		outcome, err := classifier.FindPages(ctx, renderer, role)
		if err != nil {
			return nil, err
		}
		if opts.Verbose {
			printer.PrintClassification(outcome)
		}
		indices = outcome.Matches()
		if len(indices) == 0 {
			return nil, &classify.NoMatchingPagesError{Role: role}
		}
	}

	return document.Extract(ctx, srcPDF, indices, outPath)
}

// newPageRenderer picks the rendering path for classification: straight off
// the raster frames when the document was converted from a TIFF, embedded
// page image extraction when the PDF itself is the source.
func newPageRenderer(srcPDF, rasterPath, scratchDir string, quality int) (document.PageRenderer, error) {
	if rasterPath != "" {
		return document.NewFrameRenderer(rasterPath, scratchDir, quality)
	}
	return document.NewImageRenderer(srcPDF, scratchDir, quality)
}
