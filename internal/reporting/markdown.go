package reporting

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MarkdownReport renders the outcome as a markdown document with a summary
// section and one table row per ranked variant.
func MarkdownReport(outcome *models.RankOutcome) string {
	var b strings.Builder
	s := outcome.Summary
	cfg := outcome.Config

	fmt.Fprintf(&b, "# Ranking %s\n\n", outcome.RunID)
	fmt.Fprintf(&b, "Generated %s in %v.\n\n",
		outcome.Timestamp.UTC().Format(time.RFC3339),
		time.Duration(outcome.DurationMs)*time.Millisecond)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Selected variants | %d of %d |\n", s.Selected, s.TotalVariants)
	fmt.Fprintf(&b, "| Winning rounds | %d |\n", s.TotalRounds)
	fmt.Fprintf(&b, "| Average score | %.2f |\n", s.AvgScore*100)
	fmt.Fprintf(&b, "| Score range | %.2f to %.2f |\n", s.MinScore*100, s.MaxScore*100)
	fmt.Fprintf(&b, "| Standard deviation | %.2f |\n", s.StdDev*100)
	fmt.Fprintf(&b, "| With %d-number matches | %d |\n", cfg.NumbersPerCombo, s.WithMatch4)
	fmt.Fprintf(&b, "| With %d-number matches | %d |\n", cfg.NumbersPerCombo-1, s.WithMatch3)
	fmt.Fprintf(&b, "| With %d-number matches | %d |\n", cfg.NumbersPerCombo-2, s.WithMatch2)

	b.WriteString("\n## Weights\n\n")
	fmt.Fprintf(&b, "Frequency %d%%, complete match %d%%, partial match %d%%, distribution %d%%.\n",
		cfg.Weights.Frequency, cfg.Weights.MatchComplete, cfg.Weights.MatchPartial, cfg.Weights.Distribution)

	b.WriteString("\n## Variants\n\n")
	b.WriteString("| # | ID | Numbers | Score | Match 4 | Match 3 | Match 2 |\n")
	b.WriteString("|---:|---|---|---:|---:|---:|---:|\n")
	for i, v := range outcome.Variants {
		fmt.Fprintf(&b, "| %d | %s | %s | %.2f | %d | %d | %d |\n",
			i+1, escapeCell(v.ID), dataset.FormatNumbers(v.Numbers), v.Score*100, v.Match4, v.Match3, v.Match2)
	}

	return b.String()
}

// WriteHTML converts the markdown report to a standalone HTML page.
func WriteHTML(w io.Writer, outcome *models.RankOutcome) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(MarkdownReport(outcome)), &body); err != nil {
		return fmt.Errorf("converting markdown: %w", err)
	}

	_, err := fmt.Fprintf(w, htmlPage, html.EscapeString(outcome.RunID), body.String())
	return err
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; }
</style>
</head>
<body>
%s</body>
</html>
`

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
