// Package report lays out the gathered inventory sections and check results
// as flat fixed-width text and writes them to the single audit report file.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dvmontools/dvaudit/internal/check"
)

// DefaultFileName is the report file written to the output directory,
// overwritten on each run.
const DefaultFileName = "SystemAuditReport.txt"

const (
	dateFormat      = "02-01-2006"
	timestampFormat = "02-01-2006 15:04:05"

	ruleWidth = 72
	gutter    = "  "
)

// KV is one key:value line in a section body.
type KV struct {
	Key   string
	Value string
}

// Table is a fixed-width tabular section body. Column widths are computed
// from the widest cell per column.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Section is one labeled block of the report. A section carries key:value
// fields, a table, or a note explaining why its data is unavailable.
type Section struct {
	Title  string
	Fields []KV
	Table  *Table
	Note   string
}

// Header identifies the audited host at the top of the report.
type Header struct {
	Title       string
	Hostname    string
	Version     string
	GeneratedAt time.Time
}

// FormatDate renders a date-only value as DD-MM-YYYY.
func FormatDate(t time.Time) string {
	return t.Format(dateFormat)
}

// FormatTimestamp renders a full timestamp as DD-MM-YYYY HH:mm:ss.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampFormat)
}

// CheckSection converts the engine's results into the compliance test case
// table, followed by a pass/fail tally.
func CheckSection(results []check.Result) Section {
	table := &Table{
		Headers: []string{
			"Test ID", "Start Time", "End Time", "Rule Group", "Test Description",
			"Expected Result", "Actual Result", "Passing Criteria", "Pass/Fail Status",
		},
	}
	passed := 0
	for _, r := range results {
		if r.Status == check.StatusPass {
			passed++
		}
		table.Rows = append(table.Rows, []string{
			r.TestID,
			FormatTimestamp(r.StartTime),
			FormatTimestamp(r.EndTime),
			r.RuleGroup,
			r.Description,
			r.Expected.String(),
			r.Actual.String(),
			r.PassingCriteria,
			string(r.Status),
		})
	}
	return Section{
		Title: "Compliance Test Cases",
		Table: table,
		Note:  fmt.Sprintf("%d executed, %d passed, %d failed", len(results), passed, len(results)-passed),
	}
}

// Render writes the full report to w.
func Render(w io.Writer, hdr Header, sections []Section) error {
	var b strings.Builder

	rule := strings.Repeat("=", ruleWidth)
	b.WriteString(rule + "\n")
	b.WriteString(" " + hdr.Title + "\n")
	b.WriteString(rule + "\n")
	writeFields(&b, []KV{
		{"Host", hdr.Hostname},
		{"Generated", FormatDate(hdr.GeneratedAt)},
		{"Version", hdr.Version},
	})

	for _, s := range sections {
		b.WriteString("\n")
		writeSectionTitle(&b, s.Title)
		switch {
		case len(s.Fields) > 0:
			writeFields(&b, s.Fields)
		case s.Table != nil && len(s.Table.Rows) > 0:
			writeTable(&b, s.Table)
		case s.Note == "":
			b.WriteString("(no data)\n")
		}
		if s.Note != "" {
			b.WriteString(s.Note + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile renders the report to path, truncating any previous run's file.
func WriteFile(path string, hdr Header, sections []Section) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := Render(f, hdr, sections); err != nil {
		f.Close()
		return fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

func writeSectionTitle(b *strings.Builder, title string) {
	line := "---- " + title + " "
	if pad := ruleWidth - len(line); pad > 0 {
		line += strings.Repeat("-", pad)
	}
	b.WriteString(line + "\n")
}

func writeFields(b *strings.Builder, fields []KV) {
	width := 0
	for _, f := range fields {
		if len(f.Key) > width {
			width = len(f.Key)
		}
	}
	for _, f := range fields {
		fmt.Fprintf(b, "%-*s : %s\n", width, f.Key, f.Value)
	}
}

func writeTable(b *strings.Builder, t *Table) {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString(gutter)
			}
			// last column unpadded to avoid trailing spaces
			if i == len(widths)-1 {
				b.WriteString(cell)
			} else {
				fmt.Fprintf(b, "%-*s", widths[i], cell)
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.Headers)
	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w)
	}
	writeRow(dashes)
	for _, row := range t.Rows {
		writeRow(row)
	}
}
