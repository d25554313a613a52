// package formatter renders lists and merge records as CSV, Markdown, JSON, YAML or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/glamour"
	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/shared"
	"gopkg.in/yaml.v3"
)

// Formats accepted by [Export].
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Formats lists every accepted format name.
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON, FormatYAML}

// Export renders lists in the named format.
func Export(lists []models.List, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return ExportToText(lists)
	case FormatMarkdown, "md":
		return ExportToMarkdown(lists)
	case FormatCSV:
		return ExportToCSV(lists)
	case FormatJSON:
		return ExportToJSON(lists)
	case FormatYAML, "yml":
		return ExportToYAML(lists)
	default:
		if guess := Suggest(format); guess != "" {
			return nil, fmt.Errorf("%w: unknown format %q, did you mean %q?", shared.ErrInvalidFlag, format, guess)
		}
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}
}

// Suggest returns the format name closest to name, or "" when nothing is within two edits.
func Suggest(name string) string {
	name = strings.ToLower(name)
	best, bestDist := "", 3
	for _, f := range Formats {
		if d := levenshtein.ComputeDistance(name, f); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best
}

// ExportToCSV writes one row per item with columns: List, Position, ID, Name, Description
func ExportToCSV(lists []models.List) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"List", "Position", "ID", "Name", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, l := range lists {
		for i, it := range l.Items {
			record := []string{strconv.Itoa(l.Number), strconv.Itoa(i + 1), string(it.ID), it.Name, it.Description}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown writes a section per list with its items as a numbered list
func ExportToMarkdown(lists []models.List) ([]byte, error) {
	var buf bytes.Buffer

	for i, l := range lists {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "## %s (%d)\n\n", l.Title(), len(l.Items))
		if len(l.Items) == 0 {
			buf.WriteString("_empty_\n")
			continue
		}
		for j, it := range l.Items {
			fmt.Fprintf(&buf, "%d. **%s**", j+1, it.Name)
			if it.Description != "" {
				fmt.Fprintf(&buf, " - %s", it.Description)
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText writes each list as a header followed by indented items
func ExportToText(lists []models.List) ([]byte, error) {
	var buf bytes.Buffer

	for _, l := range lists {
		fmt.Fprintf(&buf, "%s (%d)\n", l.Title(), len(l.Items))
		for _, it := range l.Items {
			fmt.Fprintf(&buf, "  [%s] %s", it.ID, it.Name)
			if it.Description != "" {
				fmt.Fprintf(&buf, ": %s", it.Description)
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON writes the lists as an indented JSON array
func ExportToJSON(lists []models.List) ([]byte, error) {
	if lists == nil {
		lists = []models.List{}
	}
	data, err := json.MarshalIndent(lists, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportToYAML writes the lists as a YAML sequence
func ExportToYAML(lists []models.List) ([]byte, error) {
	if lists == nil {
		lists = []models.List{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(lists); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// MergeSummary is a one-line description of a journal entry.
func MergeSummary(rec *models.MergeRecord) string {
	return fmt.Sprintf("#%d  %s  List %d <- List %d + List %d  (%d items)",
		rec.Sequence(),
		rec.CreatedAt().Local().Format(time.DateTime),
		rec.ListNumber(),
		rec.FirstList(),
		rec.SecondList(),
		len(rec.Items()),
	)
}

// MergeDetail renders a journal entry with every item and the list it came from.
func MergeDetail(rec *models.MergeRecord) string {
	var b strings.Builder
	b.WriteString(MergeSummary(rec))
	b.WriteString("\n")
	for _, it := range rec.Items() {
		fmt.Fprintf(&b, "  %d. [%s] %s (from List %d)\n", it.Position+1, it.ID, it.Name, it.Origin)
	}
	return b.String()
}

// RenderMarkdown renders Markdown for a terminal of the given width.
func RenderMarkdown(md []byte, width int) ([]byte, error) {
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// IsMarkdown reports whether format names the Markdown exporter.
func IsMarkdown(format string) bool {
	format = strings.ToLower(format)
	return format == FormatMarkdown || format == "md"
}
