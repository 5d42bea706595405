package analysis

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	m := r.Messages()
	var b strings.Builder
	b.WriteString("[PARETO SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Summary.TotalRows))
	b.WriteString(fmt.Sprintf("Total value: %.4g\n", r.Summary.TotalValue))
	b.WriteString(fmt.Sprintf("Pareto threshold: %.0f%%\n\n", r.ParetoThreshold))

	b.WriteString("[PRIORITY TIERS]\n")
	for _, t := range []struct {
		tier  Tier
		count int
	}{
		{TierHigh, r.Summary.HighPriority},
		{TierMedium, r.Summary.MediumPriority},
		{TierLow, r.Summary.LowPriority},
	} {
		pct := 0.0
		if r.Summary.TotalRows > 0 {
			pct = float64(t.count) * 100.0 / float64(r.Summary.TotalRows)
		}
		b.WriteString(fmt.Sprintf("- %s: %d (%.1f%% of rows)\n", m.Label(t.tier), t.count, pct))
	}

	if len(r.RowAnalyses) > 0 {
		b.WriteString("\n[ROW ANALYSIS]\n")
		b.WriteString("| Rank | Row | Item | Classification | Value | Contribution | Cumulative | Score |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for i, row := range r.RowAnalyses {
			b.WriteString(fmt.Sprintf("| %d | %d | %s | %s | %.4g | %.1f%% | %.1f%% | %.1f |\n",
				i+1, row.RowNumber, safeVal(itemName(row.Data)), row.Classification,
				row.Metrics.TotalValue, row.Metrics.Contribution, row.Metrics.CumulativePercentage, row.ParetoScore))
		}

		b.WriteString("\n[RECOMMENDATIONS]\n")
		for _, row := range r.RowAnalyses {
			b.WriteString(fmt.Sprintf("- Row %d (%s):\n", row.RowNumber, row.Classification))
			for _, rec := range row.Recommendations {
				b.WriteString("  • ")
				b.WriteString(rec)
				b.WriteString("\n")
			}
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

const maxItemWidth = 32

// WriteTable writes an aligned plain-text table, one line per ranked row.
// Widths are measured in terminal cells so accented and wide characters line up.
func (r *Report) WriteTable(w io.Writer) error {
	header := []string{"RANK", "ROW", "ITEM", "CLASSIFICATION", "VALUE", "SHARE", "CUMULATIVE", "SCORE"}
	rows := make([][]string, 0, len(r.RowAnalyses))
	for i, row := range r.RowAnalyses {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(row.RowNumber),
			runewidth.Truncate(safeVal(itemName(row.Data)), maxItemWidth, "…"),
			row.Classification,
			fmt.Sprintf("%.4g", row.Metrics.TotalValue),
			fmt.Sprintf("%.1f%%", row.Metrics.Contribution),
			fmt.Sprintf("%.1f%%", row.Metrics.CumulativePercentage),
			fmt.Sprintf("%.1f", row.ParetoScore),
		})
	}
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if cw := runewidth.StringWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	writeLine := func(cells []string) error {
		var b strings.Builder
		for i, c := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(c)
				continue
			}
			b.WriteString(runewidth.FillRight(c, widths[i]))
		}
		b.WriteString("\n")
		_, err := io.WriteString(w, b.String())
		return err
	}
	if err := writeLine(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeLine(row); err != nil {
			return err
		}
	}
	s := r.Summary
	m := r.Messages()
	_, err := fmt.Fprintf(w, "\n%s: %d  %s: %d  %s: %d  total: %.4g\n",
		m.Label(TierHigh), s.HighPriority, m.Label(TierMedium), s.MediumPriority, m.Label(TierLow), s.LowPriority, s.TotalValue)
	return err
}

// itemName picks the first non-empty value as a human handle for the row.
func itemName(r Record) string {
	for _, v := range r.Values() {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return "(empty)"
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
