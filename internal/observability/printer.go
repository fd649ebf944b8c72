// Package observability renders match results and progress for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/jonathan/resume-matcher/internal/flow"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/projection"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/jonathan/resume-matcher/internal/view"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// innerWidth is the usable width inside a box
	innerWidth = boxWidth - 4
)

// Printer renders controller state to a writer. The flow kind picks the
// layout: one result, or a chart plus one panel per pair. Each box and
// progress line is written under a lock, so a Printer may be shared by
// concurrent uploads.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	kind    flow.Kind
	verbose bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer, kind flow.Kind, verbose bool) *Printer {
	return &Printer{out: out, kind: kind, verbose: verbose}
}

// printBox prints a formatted box with a title and content. Long lines wrap.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", runewidth.FillRight(runewidth.Truncate(title, innerWidth, "..."), innerWidth))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range strings.Split(runewidth.Wrap(line, innerWidth), "\n") {
			fmt.Fprintf(p.out, "│ %s │\n", runewidth.FillRight(wrapped, innerWidth))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// Render draws the part of the view that the state's phase shows.
func (p *Printer) Render(s view.State) {
	switch s.Phase {
	case view.PhaseSubmitting:
		p.writeLine(fmt.Sprintf("Processing... (request %s)", s.RequestID))
	case view.PhaseDisplaying:
		if s.AppError != "" {
			p.printBox("ERROR", "Error: "+s.AppError)
			return
		}
		if s.Projection == nil {
			return
		}
		if p.kind == flow.KindSingle {
			p.PrintSingle(s.Projection, s.Response)
			return
		}
		p.PrintMulti(s.Projection)
	}
}

// PrintMulti outputs the résumé excerpt, the score chart and one panel per match.
func (p *Printer) PrintMulti(proj *types.Projection) {
	p.PrintExcerpt(proj.Excerpt)
	p.PrintChart(proj.ChartPoints)
	for _, record := range proj.Records {
		p.PrintRecord(record)
	}
}

// PrintSingle outputs the single-match layout: score, job description and
// the full extracted résumé text.
func (p *Printer) PrintSingle(proj *types.Projection, resp *types.MatchResponse) {
	if len(proj.Records) == 0 {
		return
	}
	match := proj.Records[0]
	p.printBox("MATCH SCORE", match.MatchScore)
	p.printBox("JOB DESCRIPTION", PlainText(match.JobDescription))
	if resp != nil {
		p.printBox("RESUME EXTRACTED TEXT", resp.ResumeText)
	}
}

// PrintExcerpt outputs the leading part of the extracted résumé text.
func (p *Printer) PrintExcerpt(excerpt types.Excerpt) {
	text := excerpt.Text
	if excerpt.Truncated {
		text += "..."
	}
	p.printBox(fmt.Sprintf("RESUME TEXT EXTRACTED (%d chars)", excerpt.Length), text)
}

// PrintChart outputs a horizontal bar chart of match scores.
func (p *Printer) PrintChart(points []types.ChartPoint) {
	p.printBox("MATCH SCORES BY COMPANY & ROLE", FormatChart(points))
}

// PrintRecord outputs one match panel.
func (p *Printer) PrintRecord(match types.MatchResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match Score: %s\n", match.MatchScore))
	if p.verbose && match.Timestamp != "" {
		sb.WriteString(fmt.Sprintf("Scored at:   %s\n", match.Timestamp))
	}
	sb.WriteString("\nJob Description:\n")
	sb.WriteString(PlainText(match.JobDescription))
	p.printBox(match.Label(), sb.String())
}

// PrintInspection outputs a local file report.
func (p *Printer) PrintInspection(report *ingestion.Report) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:   %s\n", report.ContentType))
	sb.WriteString(fmt.Sprintf("Size:   %d bytes\n", report.SizeBytes))
	sb.WriteString(fmt.Sprintf("SHA256: %s\n", report.Hash))
	if report.Pages > 0 {
		sb.WriteString(fmt.Sprintf("Pages:  %d\n", report.Pages))
	}
	sb.WriteString(fmt.Sprintf("Text:   %d chars", report.TextChars))
	if report.Warning != "" {
		sb.WriteString(fmt.Sprintf("\n\n⚠ %s", report.Warning))
	}
	p.printBox(report.Name, sb.String())
}

// PrintProgress outputs a pipeline progress line in verbose mode.
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	if !p.verbose {
		return
	}
	p.writeLine(fmt.Sprintf("[VERBOSE] %s: %s", event.Step, event.Message))
}

// PrintHistory outputs stored uploads, newest first, one score chart each.
// A positive limit caps how many are shown.
func (p *Printer) PrintHistory(entries []types.HistoryEntry, limit int) {
	if len(entries) == 0 {
		p.printBox("RESUME HISTORY", "No uploads yet.")
		return
	}

	shown := entries
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	for _, entry := range shown {
		title := entry.FileName
		if entry.UploadedAt != "" {
			title += " (" + entry.UploadedAt + ")"
		}

		var body string
		proj, err := projection.Project(entry.ToMatchResponse(), projection.Options{})
		if err != nil {
			body = err.Error()
		} else {
			body = FormatChart(proj.ChartPoints)
			if p.verbose {
				body += "\n\n" + proj.Excerpt.Text
			}
		}
		p.printBox(title, body)
	}

	if hidden := len(entries) - len(shown); hidden > 0 {
		p.writeLine(fmt.Sprintf("... and %d older uploads", hidden))
	}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) writeLine(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, line)
}
