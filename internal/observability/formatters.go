// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/types"
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printBanner prints a single-line box
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBanner(text string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, text)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// clip shortens s to n runes, marking the cut with "..."
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintResume outputs a compact overview of a resume.
func (p *Printer) PrintResume(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	info := data.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(info.Name)))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", orDash(info.Title)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(info.Email)))
	sb.WriteString(fmt.Sprintf("Summary:  %d chars\n", len(info.Summary)))
	sb.WriteString("\n")

	if len(data.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(data.Experience)))
		count := min(len(data.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := data.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s @ %s", orDash(e.Position), orDash(e.Company)))
			if e.Current {
				sb.WriteString(" (current)")
			}
			sb.WriteString("\n")
		}
		if len(data.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Experience)-maxItemsToShow))
		}
	}

	if len(data.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(data.Education)))
		count := min(len(data.Education), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", orDash(data.Education[i].Institution)))
		}
		if len(data.Education) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Education)-maxItemsToShow))
		}
	}

	if len(data.Skills) > 0 {
		names := make([]string, len(data.Skills))
		for i, s := range data.Skills {
			names[i] = s.Name
		}
		sb.WriteString(fmt.Sprintf("Skills (%d): %s\n", len(data.Skills), strings.Join(names, ", ")))
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs generated skills with their levels.
func (p *Printer) PrintSkills(skills []types.Skill) {
	if len(skills) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range skills {
		sb.WriteString(fmt.Sprintf("• %-30s %s\n", clip(s.Name, 30), s.Level))
	}
	p.printBox(fmt.Sprintf("GENERATED SKILLS (%d)", len(skills)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAutofillReport outputs the per-field outcome of an autofill run.
func (p *Printer) PrintAutofillReport(report *generation.AutofillReport) {
	if report == nil || len(report.Events) == 0 {
		p.printBanner("NOTHING TO AUTOFILL")
		return
	}

	var sb strings.Builder
	for _, e := range report.Events {
		mark := "✓"
		if e.Status == generation.StatusFailed {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, e.Field))
		if e.Error != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", e.Error))
		}
	}
	failed := len(report.Failed())
	sb.WriteString(fmt.Sprintf("\n%d fields, %d failed", len(report.Events), failed))

	p.printBox("AUTOFILL", sb.String())
}

// PrintValidation outputs the issues found by ResumeData.Validate.
func (p *Printer) PrintValidation(err error) {
	if err == nil {
		p.printBanner("✅ NO ISSUES FOUND")
		return
	}

	verr, ok := err.(*types.ValidationError)
	if !ok {
		p.printBox("VALIDATION ERROR", err.Error())
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d issues:\n\n", len(verr.Issues)))
	for i, issue := range verr.Issues {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", issue.Field))
		sb.WriteString(fmt.Sprintf("  %s\n", issue.Message))
		if i < len(verr.Issues)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("VALIDATION ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplates outputs the template catalogue.
func (p *Printer) PrintTemplates(templates []types.Template) {
	var sb strings.Builder
	for i, t := range templates {
		sb.WriteString(fmt.Sprintf("%-13s %s\n", t.ID, t.Name))
		sb.WriteString(fmt.Sprintf("  %s", t.Description))
		if i < len(templates)-1 {
			sb.WriteString("\n\n")
		}
	}
	p.printBox("TEMPLATES", sb.String())
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
