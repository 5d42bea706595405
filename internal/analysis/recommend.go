package analysis

import "fmt"

// Recommend returns tier-specific guidance, most important first. The
// top-share marker is appended last whenever cumulativeShare <= 20.
func Recommend(m *Messages, tier Tier, contributionShare, cumulativeShare, weight float64) []string {
	if m == nil {
		m = Spanish
	}
	var out []string
	switch tier {
	case TierHigh:
		out = append(out,
			fmt.Sprintf(m.HighCritical, contributionShare),
			m.HighResources,
			m.HighMonitoring,
		)
		if weight > 0 {
			out = append(out, m.HighOptimize)
		}
	case TierMedium:
		out = append(out,
			fmt.Sprintf(m.MediumContribution, contributionShare),
			m.MediumReview,
			m.MediumPromote,
		)
	default:
		out = append(out,
			fmt.Sprintf(m.LowImpact, contributionShare),
			m.LowSimplify,
			m.LowProportionate,
		)
	}
	if cumulativeShare <= TopShareThreshold {
		out = append(out, m.TopShare)
	}
	return out
}

// Annotate fills Recommendations on every classified record in place.
func Annotate(m *Messages, recs []ClassifiedRecord) {
	for i := range recs {
		r := &recs[i]
		r.Recommendations = Recommend(m, r.Tier, r.ContributionShare, r.CumulativeShare, r.Weight)
	}
}
