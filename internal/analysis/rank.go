package analysis

import (
	"math"
	"sort"
)

// RankedRecord is a valued record placed in descending-weight order.
type RankedRecord struct {
	ValuedRecord
	// ContributionShare is weight / total weight, as a percentage.
	ContributionShare float64
	// CumulativeShare is the running sum of ContributionShare up to and
	// including this record.
	CumulativeShare float64
}

// Rank sorts records by weight, heaviest first, and computes contribution
// shares. Equal weights keep input order (OriginalIndex ascending). When the
// total weight is 0 every share is 0. A total beyond float64 range is
// reported as math.MaxFloat64. The input slice is not modified.
func Rank(valued []ValuedRecord) ([]RankedRecord, float64) {
	sorted := make([]ValuedRecord, len(valued))
	copy(sorted, valued)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Weight == sorted[j].Weight {
			return sorted[i].OriginalIndex < sorted[j].OriginalIndex
		}
		return sorted[i].Weight > sorted[j].Weight
	})

	var sum float64
	for _, v := range sorted {
		sum += v.Weight
	}
	// weights relative to the heaviest one keep shares finite when the plain
	// sum overflows
	total, scale := sum, 1.0
	if math.IsInf(sum, 0) {
		total = math.MaxFloat64
		scale = sorted[0].Weight
		sum = 0
		for _, v := range sorted {
			sum += v.Weight / scale
		}
	}

	out := make([]RankedRecord, len(sorted))
	var cum float64
	for i, v := range sorted {
		out[i] = RankedRecord{ValuedRecord: v}
		if sum == 0 {
			continue
		}
		share := v.Weight / scale / sum * 100
		cum += share
		out[i].ContributionShare = share
		out[i].CumulativeShare = cum
	}
	return out, total
}

// saturatingAdd adds non-negative weights, clamping at math.MaxFloat64.
func saturatingAdd(a, b float64) float64 {
	if sum := a + b; !math.IsInf(sum, 0) {
		return sum
	}
	return math.MaxFloat64
}
