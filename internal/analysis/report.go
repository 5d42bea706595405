package analysis

import "fmt"

// Summary holds per-tier counts and the total weight.
type Summary struct {
	TotalRows      int     `json:"totalRows" yaml:"totalRows"`
	HighPriority   int     `json:"highPriority" yaml:"highPriority"`
	MediumPriority int     `json:"mediumPriority" yaml:"mediumPriority"`
	LowPriority    int     `json:"lowPriority" yaml:"lowPriority"`
	TotalValue     float64 `json:"totalValue" yaml:"totalValue"`
}

// RowMetrics are the numeric facts behind a row's classification.
type RowMetrics struct {
	// TotalValue is the row weight.
	TotalValue           float64 `json:"totalValue" yaml:"totalValue"`
	CumulativePercentage float64 `json:"cumulativePercentage" yaml:"cumulativePercentage"`
	Contribution         float64 `json:"contribution" yaml:"contribution"`
}

// RowAnalysis is the serialized form of a classified record.
type RowAnalysis struct {
	// RowNumber is the 1-based input position, not the ranked position.
	RowNumber       int        `json:"rowNumber" yaml:"rowNumber"`
	Data            Record     `json:"data" yaml:"data"`
	ParetoScore     float64    `json:"paretoScore" yaml:"paretoScore"`
	Classification  string     `json:"classification" yaml:"classification"`
	Metrics         RowMetrics `json:"metrics" yaml:"metrics"`
	Recommendations []string   `json:"recommendations" yaml:"recommendations"`

	Tier Tier `json:"-" yaml:"-"`
}

// Report is the outcome of one analysis. RowAnalyses are in descending-weight
// order.
type Report struct {
	Name            string        `json:"name,omitempty" yaml:"name,omitempty"`
	Summary         Summary       `json:"summary" yaml:"summary"`
	RowAnalyses     []RowAnalysis `json:"rowAnalyses" yaml:"rowAnalyses"`
	ParetoThreshold float64       `json:"paretoThreshold" yaml:"paretoThreshold"`
	Warnings        []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	messages *Messages
}

// Messages returns the catalog the report was built with.
func (r *Report) Messages() *Messages {
	if r.messages == nil {
		return Spanish
	}
	return r.messages
}

// Aggregate tallies tiers and assembles the report. recs must already be
// ranked, classified and annotated.
func Aggregate(m *Messages, recs []ClassifiedRecord, totalWeight float64) *Report {
	if m == nil {
		m = Spanish
	}
	rep := &Report{
		Summary:         Summary{TotalRows: len(recs), TotalValue: totalWeight},
		RowAnalyses:     make([]RowAnalysis, 0, len(recs)),
		ParetoThreshold: ParetoThreshold,
		messages:        m,
	}
	for _, r := range recs {
		switch r.Tier {
		case TierHigh:
			rep.Summary.HighPriority++
		case TierMedium:
			rep.Summary.MediumPriority++
		default:
			rep.Summary.LowPriority++
		}
		recsCopy := make([]string, len(r.Recommendations))
		copy(recsCopy, r.Recommendations)
		rep.RowAnalyses = append(rep.RowAnalyses, RowAnalysis{
			RowNumber:      r.OriginalIndex,
			Data:           r.Record,
			ParetoScore:    r.Score,
			Classification: m.Label(r.Tier),
			Metrics: RowMetrics{
				TotalValue:           r.Weight,
				CumulativePercentage: r.CumulativeShare,
				Contribution:         r.ContributionShare,
			},
			Recommendations: recsCopy,
			Tier:            r.Tier,
		})
	}
	return rep
}

// Analyze runs the full pipeline over comma-delimited text.
func Analyze(text string, opt Options) (*Report, error) {
	records, err := ParseTable(text, opt)
	if err != nil {
		return nil, err
	}
	return AnalyzeRecords(records, opt)
}

// AnalyzeRecords runs the pipeline from valuation on.
func AnalyzeRecords(records []Record, opt Options) (*Report, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	var warnings []string
	if opt.MaxRows > 0 && len(records) > opt.MaxRows {
		warnings = append(warnings, fmt.Sprintf("processed only %d/%d rows due to MaxRows", opt.MaxRows, len(records)))
		records = records[:opt.MaxRows]
	}
	m := MessagesFor(opt.Language)

	ranked, total := Rank(Valuate(records))
	classified := Classify(ranked)
	Annotate(m, classified)

	rep := Aggregate(m, classified, total)
	rep.Warnings = warnings
	return rep, nil
}
