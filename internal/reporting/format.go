// Package reporting renders ranking outcomes for people and machines.
package reporting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/models"
	"gopkg.in/yaml.v3"
)

// Format names an output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format in display order.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// ParseFormat resolves a user-supplied format name. Common aliases such as
// "md" and "yml" are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of text, json, yaml, markdown, html)", s)
	}
}

// Extension is the file extension used when a format is written to disk.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatMarkdown:
		return "md"
	case FormatHTML:
		return "html"
	default:
		return "txt"
	}
}

// ContentType is the MIME type of a rendered format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Render writes outcome to w in the requested format. The text format is the
// variants file format, so its output can be fed back in as input.
func Render(w io.Writer, outcome *models.RankOutcome, f Format) error {
	switch f {
	case FormatText:
		return dataset.WriteScored(w, outcome.Variants)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(outcome); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, MarkdownReport(outcome))
		return err
	case FormatHTML:
		return WriteHTML(w, outcome)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// RenderBytes renders outcome into memory.
func RenderBytes(outcome *models.RankOutcome, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, outcome, f); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", f, err)
	}
	return buf.Bytes(), nil
}
