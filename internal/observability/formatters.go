package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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

// PrintSections outputs the segmented section names and sizes.
func (p *Printer) PrintSections(sections map[string]string) {
	if len(sections) == 0 {
		return
	}

	var sb strings.Builder
	for name, body := range sections {
		sb.WriteString(fmt.Sprintf("%-16s %d chars\n", name, len(body)))
	}

	p.printBox("SEGMENTED SECTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysisResult outputs a human-readable summary of the assembled result.
func (p *Printer) PrintAnalysisResult(result *types.ResumeAnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:      %s\n", result.ContactInfo.Name))
	if result.ContactInfo.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", result.ContactInfo.Email))
	}
	sb.WriteString(fmt.Sprintf("Language:  %s\n", result.DocumentLanguage))
	if result.FileFormat != "" {
		sb.WriteString(fmt.Sprintf("Format:    %s\n", result.FileFormat))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Education entries:  %d\n", len(result.Education)))
	sb.WriteString(fmt.Sprintf("Work experience:    %d\n", len(result.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Skills:             %d\n", len(result.Skills)))

	if len(result.Skills) > 0 {
		sb.WriteString("\nTop skills:\n")
		count := min(len(result.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := result.Skills[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s)\n", skill.Name, skill.Category))
		}
		if len(result.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Skills)-maxItemsToShow))
		}
	}

	sb.WriteString(fmt.Sprintf("\nMean confidence: %.2f\n", result.MeanConfidence()))

	if len(result.ParsingErrors) > 0 {
		sb.WriteString("\nParsing errors:\n")
		for _, e := range result.ParsingErrors {
			sb.WriteString(fmt.Sprintf("  • %s\n", e))
		}
	}

	p.printBox("ANALYSIS RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
