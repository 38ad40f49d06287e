// Package observability provides formatted output utilities for CLI commands.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/careerforge/resume-builder/internal/types"
	"github.com/careerforge/resume-builder/internal/usage"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDocument outputs a human-readable summary of a resume document.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s %s\n", doc.Contact.FirstName, doc.Contact.LastName))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", doc.Contact.Email))
	sb.WriteString("\n")

	if doc.Summary != "" {
		sb.WriteString("Summary:\n")
		sb.WriteString(fmt.Sprintf("  %s\n\n", doc.Summary))
	}

	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n\n", strings.Join(doc.Skills, ", ")))
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", entry.Role, entry.Company))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(doc.Certifications) > 0 {
		sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(doc.Certifications)))
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStats outputs the aggregated usage report.
func (p *Printer) PrintStats(report *usage.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total users:      %d\n", report.TotalUsers))
	sb.WriteString(fmt.Sprintf("Active last 24h:  %d\n", report.Active24h))

	if len(report.Users) > 0 {
		sb.WriteString("\nMost recently seen:\n")
		count := min(len(report.Users), maxItemsToShow)
		for i := 0; i < count; i++ {
			row := report.Users[i]
			sb.WriteString(fmt.Sprintf("  • %s (%d logins)\n", row.Email, row.LoginCount))
		}
		if len(report.Users) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.Users)-maxItemsToShow))
		}
	}

	p.printBox("USAGE REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
