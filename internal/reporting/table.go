package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spboyer/comborank/internal/dataset"
	"github.com/spboyer/comborank/internal/metrics"
	"github.com/spboyer/comborank/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer groups thousands in counts ("12,345").
var printer = message.NewPrinter(language.English)

// WriteSummary prints the results summary block shown after a run.
func WriteSummary(w io.Writer, outcome *models.RankOutcome) {
	s := outcome.Summary
	k := outcome.Config.NumbersPerCombo

	rows := [][2]string{
		{"Selected", printer.Sprintf("%d of %d variants", s.Selected, s.TotalVariants)},
		{"Rounds", printer.Sprintf("%d", s.TotalRounds)},
		{"Average score", fmt.Sprintf("%.2f", s.AvgScore*100)},
		{"Score range", fmt.Sprintf("%.2f to %.2f", s.MinScore*100, s.MaxScore*100)},
		{"Std deviation", fmt.Sprintf("%.2f", s.StdDev*100)},
		{fmt.Sprintf("With %d matches", k), printer.Sprintf("%d", s.WithMatch4)},
		{fmt.Sprintf("With %d matches", k-1), printer.Sprintf("%d", s.WithMatch3)},
		{fmt.Sprintf("With %d matches", k-2), printer.Sprintf("%d", s.WithMatch2)},
		{"Duration", fmt.Sprintf("%dms", outcome.DurationMs)},
	}
	writeKeyValues(w, "Results", rows)
}

// WriteStats prints input statistics as aligned tables, with a preview of
// the first few variants and rounds.
func WriteStats(w io.Writer, vs metrics.VariantStats, rs metrics.RoundStats, variants []models.Variant, rounds []models.Round) {
	vrows := [][2]string{
		{"Variants", printer.Sprintf("%d", vs.Count)},
		{"Unique numbers used", printer.Sprintf("%d of %d", vs.UniqueNumbers, vs.TotalNumbers)},
	}
	if vs.MostCommon != nil {
		vrows = append(vrows, [2]string{"Most common", printer.Sprintf("%d (%d times)", vs.MostCommon.Number, vs.MostCommon.Count)})
	}
	if vs.LeastCommon != nil {
		vrows = append(vrows, [2]string{"Least common", printer.Sprintf("%d (%d times)", vs.LeastCommon.Number, vs.LeastCommon.Count)})
	}
	if vs.OffSize > 0 {
		vrows = append(vrows, [2]string{"Off-size variants", printer.Sprintf("%d", vs.OffSize)})
	}
	writeKeyValues(w, "Variants", vrows)

	top := make([]string, len(rs.TopNumbers))
	for i, nc := range rs.TopNumbers {
		top[i] = fmt.Sprintf("%d (%d)", nc.Number, nc.Count)
	}
	rrows := [][2]string{
		{"Rounds", printer.Sprintf("%d", rs.Count)},
		{"Most frequent", strings.Join(top, ", ")},
		{"Even / odd", fmt.Sprintf("%.1f%% / %.1f%%", rs.EvenPct, rs.OddPct)},
		{"Average sum", fmt.Sprintf("%.1f", rs.AvgSum)},
	}
	writeKeyValues(w, "Rounds", rrows)

	fmt.Fprintf(w, "First variants:\n") //nolint:errcheck
	for _, v := range variants[:min(len(variants), previewSize)] {
		fmt.Fprintf(w, "  %s\n", dataset.FormatVariant(v.ID, v.Numbers)) //nolint:errcheck
	}
	fmt.Fprintf(w, "First rounds:\n") //nolint:errcheck
	for _, r := range rounds[:min(len(rounds), previewSize)] {
		fmt.Fprintf(w, "  %s\n", dataset.FormatRound(r)) //nolint:errcheck
	}
}

const previewSize = 5

func writeKeyValues(w io.Writer, title string, rows [][2]string) {
	keyWidth := 0
	for _, r := range rows {
		keyWidth = max(keyWidth, runewidth.StringWidth(r[0]))
	}
	totalWidth := keyWidth + 2
	for _, r := range rows {
		totalWidth = max(totalWidth, keyWidth+2+runewidth.StringWidth(r[1]))
	}

	fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("─", totalWidth)) //nolint:errcheck
	for _, r := range rows {
		fmt.Fprintf(w, "%s  %s\n", padRight(r[0], keyWidth), r[1]) //nolint:errcheck
	}
	fmt.Fprintf(w, "\n") //nolint:errcheck
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
