// Package observability renders the framed progress boxes the CLI prints
// between pipeline steps in verbose mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/rfsc/georef-verifier/internal/classify"
	"github.com/rfsc/georef-verifier/internal/extraction"
	"github.com/rfsc/georef-verifier/internal/reconcile"
	"github.com/rfsc/georef-verifier/internal/registry"
)

const (
	// boxWidth is the outer width of every frame, border included.
	boxWidth = 60
	// maxItemsToShow caps list previews; the rest collapses into a count.
	maxItemsToShow = 5
)

// Printer writes verbose-mode frames to a terminal.
type Printer struct {
	out io.Writer
}

// NewPrinter wraps out, usually os.Stdout.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox draws a title bar and content inside one frame.
func (p *Printer) printBox(title, content string) {
	p.rule("┌", "┐")
	p.row(title)
	p.rule("├", "┤")
	for _, line := range strings.Split(content, "\n") {
		p.row(line)
	}
	p.rule("└", "┘")
}

//nolint:errcheck // terminal output; nothing to do on write failure
func (p *Printer) rule(left, right string) {
	fmt.Fprintf(p.out, "%s%s%s\n", left, strings.Repeat("─", boxWidth-2), right)
}

// row pads or cuts one line to the frame width.
//
//nolint:errcheck // terminal output; nothing to do on write failure
func (p *Printer) row(line string) {
	if len(line) > boxWidth-4 {
		line = line[:boxWidth-7] + "..."
	}
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
}

// PrintResolution outputs where the registry share resolved a registration.
func (p *Printer) PrintResolution(res *registry.Resolution) {
	if res == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Registration: %s\n", res.Registration.Canonical()))
	sb.WriteString(fmt.Sprintf("Bucket:       %s\n", res.Bucket))
	sb.WriteString(fmt.Sprintf("Document:     %s", res.Path))

	p.printBox("DOCUMENT RESOLUTION", sb.String())
}

// PrintClassification outputs the per-page verdicts for one document role.
func (p *Printer) PrintClassification(outcome *classify.Outcome) {
	if outcome == nil || len(outcome.Results) == 0 {
		return
	}

	var sb strings.Builder
	matches := outcome.Matches()
	sb.WriteString(fmt.Sprintf("Pages scanned: %d, matched: %d\n\n", len(outcome.Results), len(matches)))

	count := min(len(outcome.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := outcome.Results[i]
		sb.WriteString(fmt.Sprintf("Page %d: %s", r.Index+1, r.State))
		if r.Attempts > 1 {
			sb.WriteString(fmt.Sprintf(" (%d attempts)", r.Attempts))
		}
		sb.WriteString("\n")
	}
	if len(outcome.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more pages\n", len(outcome.Results)-maxItemsToShow))
	}

	if len(matches) > 0 {
		pages := make([]string, len(matches))
		for i, idx := range matches {
			pages[i] = fmt.Sprintf("%d", idx+1)
		}
		sb.WriteString(fmt.Sprintf("\nMatched pages: %s", strings.Join(pages, ", ")))
	}

	title := fmt.Sprintf("PAGE CLASSIFICATION — %s", strings.ToUpper(string(outcome.Role)))
	p.printBox(title, sb.String())
}

// PrintTable outputs a preview of an extracted survey table.
func (p *Printer) PrintTable(label string, table *extraction.Table) {
	if table == nil || len(table.Data) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows extracted: %d\n\n", len(table.Data)))

	count := min(len(table.Data), maxItemsToShow)
	for i := 0; i < count; i++ {
		row := table.Data[i]
		code, longitude := "", ""
		if len(row) > 0 {
			code = row[0]
		}
		if len(row) > 1 {
			longitude = row[1]
		}
		sb.WriteString(fmt.Sprintf("• %s  %s\n", code, longitude))
	}
	if len(table.Data) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more rows", len(table.Data)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("EXTRACTED TABLE — %s", label), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReportSummary outputs the reconciliation verdict.
func (p *Printer) PrintReportSummary(rep *reconcile.Report) {
	if rep == nil || rep.Vertices == nil || rep.Segments == nil {
		return
	}

	if rep.Clean() {
		p.rule("┌", "┐")
		p.row("✅ NO DIVERGENCES FOUND")
		p.rule("└", "┘")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Vertices:  %d identical, %d different\n",
		rep.Vertices.Summary.Identical, rep.Vertices.Summary.Different))
	if len(rep.Vertices.Summary.RecordsWithDiffs) > 0 {
		sb.WriteString(fmt.Sprintf("  diverging: %s\n", joinRecordNumbers(rep.Vertices.Summary.RecordsWithDiffs)))
	}
	sb.WriteString(fmt.Sprintf("Segments:  %d identical, %d different\n",
		rep.Segments.Summary.Identical, rep.Segments.Summary.Different))
	if len(rep.Segments.Summary.RecordsWithDiffs) > 0 {
		sb.WriteString(fmt.Sprintf("  diverging: %s\n", joinRecordNumbers(rep.Segments.Summary.RecordsWithDiffs)))
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d identical, %d different", rep.TotalIdentical(), rep.TotalDifferent()))

	p.printBox("RECONCILIATION SUMMARY", sb.String())
}

func joinRecordNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("#%d", n)
	}
	return strings.Join(parts, ", ")
}
