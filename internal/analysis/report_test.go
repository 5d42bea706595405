package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAnalyze_ScenarioA(t *testing.T) {
	rep, err := Analyze("name,val\nA,10\nB,90", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, Summary{TotalRows: 2, HighPriority: 0, MediumPriority: 1, LowPriority: 1, TotalValue: 100}, rep.Summary)
	assert.Equal(t, 80.0, rep.ParetoThreshold)
	require.Len(t, rep.RowAnalyses, 2)

	b := rep.RowAnalyses[0]
	assert.Equal(t, 2, b.RowNumber)
	assert.Equal(t, "Media Prioridad", b.Classification)
	assert.Equal(t, TierMedium, b.Tier)
	assert.InDelta(t, 105, b.ParetoScore, 1e-9)
	assert.Equal(t, 90.0, b.Metrics.TotalValue)
	assert.InDelta(t, 90, b.Metrics.Contribution, 1e-9)
	assert.InDelta(t, 90, b.Metrics.CumulativePercentage, 1e-9)
	assert.Equal(t, []string{
		"Aporta el 90.0% del valor total",
		Spanish.MediumReview,
		Spanish.MediumPromote,
	}, b.Recommendations)

	a := rep.RowAnalyses[1]
	assert.Equal(t, 1, a.RowNumber)
	assert.Equal(t, "Baja Prioridad", a.Classification)
	assert.InDelta(t, 100, a.Metrics.CumulativePercentage, 1e-9)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	rep, err := Analyze("name,val\n", DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, rep)

	rep, err = AnalyzeRecords(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Nil(t, rep)
}

func TestAnalyze_ZeroWeight(t *testing.T) {
	rep, err := Analyze("name,city\nAlice,Paris\nBob,Rome\nCarol,Lima", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, rep.Summary.TotalValue)
	assert.Equal(t, 3, rep.Summary.HighPriority)
	for i, row := range rep.RowAnalyses {
		assert.Equal(t, i+1, row.RowNumber)
		assert.Equal(t, TierHigh, row.Tier)
		assert.Equal(t, 30.0, row.ParetoScore)
		assert.Equal(t, 0.0, row.Metrics.CumulativePercentage)
		require.Len(t, row.Recommendations, 4)
		assert.Equal(t, Spanish.TopShare, row.Recommendations[3])
	}
}

func TestAnalyze_SummaryPartitionsRows(t *testing.T) {
	rep, err := Analyze("k,v\na,50\nb,25\nc,12\nd,8\ne,3\nf,2", DefaultOptions())
	require.NoError(t, err)
	s := rep.Summary
	assert.Equal(t, s.TotalRows, s.HighPriority+s.MediumPriority+s.LowPriority)
	assert.Equal(t, 100.0, s.TotalValue)
	// a=50, b=75 -> High; c=87 -> Medium; d=95 -> Medium; e, f -> Low
	assert.Equal(t, 2, s.HighPriority)
	assert.Equal(t, 2, s.MediumPriority)
	assert.Equal(t, 2, s.LowPriority)
}

func TestAnalyze_HugeWeightsStillEncode(t *testing.T) {
	huge := strings.Repeat("9", 308)
	rep, err := Analyze("k,v\na,"+huge+"\nb,"+huge+"\nc,1", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, rep.Summary.TotalValue)
	assert.Equal(t, 1, rep.Summary.HighPriority)
	assert.Equal(t, 2, rep.Summary.LowPriority)
	assert.InDelta(t, 50, rep.RowAnalyses[0].Metrics.CumulativePercentage, 1e-9)
	assert.Equal(t, TierHigh, rep.RowAnalyses[0].Tier)
	assert.Equal(t, TierLow, rep.RowAnalyses[1].Tier)

	_, err = json.Marshal(rep)
	require.NoError(t, err)
}

func TestAnalyze_MaxRowsWarns(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxRows = 2
	rep, err := Analyze("k,v\na,1\nb,2\nc,3", opt)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.TotalRows)
	require.Len(t, rep.Warnings, 1)
	assert.Contains(t, rep.Warnings[0], "processed only 2/3 rows")
}

func TestAnalyze_EnglishCatalog(t *testing.T) {
	opt := DefaultOptions()
	opt.Language = "en"
	rep, err := Analyze("name,val\nA,10\nB,90", opt)
	require.NoError(t, err)
	assert.Equal(t, "Medium Priority", rep.RowAnalyses[0].Classification)
	assert.Equal(t, "Contributes 90.0% of total value", rep.RowAnalyses[0].Recommendations[0])
	assert.Same(t, English, rep.Messages())
}

func TestReport_JSONShape(t *testing.T) {
	rep, err := Analyze("name,val\nA,10\nB,90", DefaultOptions())
	require.NoError(t, err)
	b, err := json.Marshal(rep)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, 80.0, out["paretoThreshold"])
	assert.NotContains(t, out, "warnings")
	assert.NotContains(t, out, "name")

	summary := out["summary"].(map[string]any)
	for _, k := range []string{"totalRows", "highPriority", "mediumPriority", "lowPriority", "totalValue"} {
		assert.Contains(t, summary, k)
	}
	rows := out["rowAnalyses"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	for _, k := range []string{"rowNumber", "data", "paretoScore", "classification", "metrics", "recommendations"} {
		assert.Contains(t, first, k)
	}
	assert.NotContains(t, first, "Tier")
	metrics := first["metrics"].(map[string]any)
	for _, k := range []string{"totalValue", "cumulativePercentage", "contribution"} {
		assert.Contains(t, metrics, k)
	}
	assert.Contains(t, string(b), `"data":{"name":"B","val":"90"}`)
}

func TestReport_YAML(t *testing.T) {
	rep, err := Analyze("name,val\nA,10\nB,90", DefaultOptions())
	require.NoError(t, err)
	b, err := yaml.Marshal(rep)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, "paretoThreshold: 80")
	assert.Contains(t, out, "classification: Media Prioridad")
	assert.Contains(t, out, "rowNumber: 2")
}

func TestReport_Markdown(t *testing.T) {
	rep, err := Analyze("name,val\nA,10\nB,90", DefaultOptions())
	require.NoError(t, err)
	rep.Name = "ventas.csv"
	md := rep.Markdown()
	for _, want := range []string{
		"[PARETO SUMMARY]",
		"Source: ventas.csv",
		"Rows: 2",
		"Pareto threshold: 80%",
		"[PRIORITY TIERS]",
		"- Media Prioridad: 1 (50.0% of rows)",
		"[ROW ANALYSIS]",
		"| 1 | 2 | B | Media Prioridad | 90 | 90.0% | 90.0% | 105.0 |",
		"[RECOMMENDATIONS]",
		"- Row 1 (Baja Prioridad):",
	} {
		assert.Contains(t, md, want)
	}
	assert.NotContains(t, md, "[NOTES]")
}

func TestReport_WriteTable(t *testing.T) {
	rep, err := Analyze("producto,ventas\nCafé molido,30\nTé verde,70", DefaultOptions())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, rep.WriteTable(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "RANK"))
	assert.Contains(t, lines[1], "Té verde")
	assert.Contains(t, lines[2], "Café molido")
	// columns after the item line up even with accented text
	col := func(line string) int { return runewidth.StringWidth(line[:strings.Index(line, "%")]) }
	assert.Equal(t, col(lines[1]), col(lines[2]))
	assert.Contains(t, buf.String(), "Alta Prioridad: 1")
}
