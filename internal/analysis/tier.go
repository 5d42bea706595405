package analysis

import "fmt"

// Tier is a priority class derived from a record's cumulative share.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

const (
	// ParetoThreshold is the cumulative share (percent) that closes the High tier.
	ParetoThreshold = 80.0
	// MediumThreshold is the cumulative share (percent) that closes the Medium tier.
	MediumThreshold = 95.0
	// TopShareThreshold marks records inside the top 20% of cumulative share.
	TopShareThreshold = 20.0
)

// String returns the machine name of the tier.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Bonus is the score bonus granted to the tier.
func (t Tier) Bonus() float64 {
	switch t {
	case TierHigh:
		return 30
	case TierMedium:
		return 15
	default:
		return 0
	}
}

// TierFor classifies a cumulative share. Upper bounds are inclusive: exactly
// 80 is High and exactly 95 is Medium.
func TierFor(cumulativeShare float64) Tier {
	switch {
	case cumulativeShare <= ParetoThreshold:
		return TierHigh
	case cumulativeShare <= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// ClassifiedRecord is a ranked record with its tier, score and guidance.
type ClassifiedRecord struct {
	RankedRecord
	Tier            Tier
	Score           float64
	Recommendations []string
}

// Classify assigns tier and score to every ranked record, keeping order.
// Recommendations are left empty; see Recommend.
func Classify(ranked []RankedRecord) []ClassifiedRecord {
	out := make([]ClassifiedRecord, len(ranked))
	for i, r := range ranked {
		t := TierFor(r.CumulativeShare)
		out[i] = ClassifiedRecord{
			RankedRecord: r,
			Tier:         t,
			Score:        r.ContributionShare + t.Bonus(),
		}
	}
	return out
}
