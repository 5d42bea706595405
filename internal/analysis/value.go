package analysis

import (
	"math"
	"strconv"
	"strings"
)

// ValuedRecord is a record with its input position and weight.
type ValuedRecord struct {
	Record
	// OriginalIndex is the 1-based position among data rows.
	OriginalIndex int
	Weight        float64
}

// Valuate computes a weight for every record. It never fails: records
// without numeric values weigh 0.
func Valuate(records []Record) []ValuedRecord {
	out := make([]ValuedRecord, len(records))
	for i, r := range records {
		out[i] = ValuedRecord{Record: r, OriginalIndex: i + 1, Weight: RowWeight(r)}
	}
	return out
}

// RowWeight sums the absolute values of every numeric value in the record.
// Non-finite values are skipped and the sum saturates at math.MaxFloat64.
func RowWeight(r Record) float64 {
	var total float64
	for _, v := range r.Values() {
		if x, ok := ExtractNumber(v); ok && !math.IsInf(x, 0) && !math.IsNaN(x) {
			total = saturatingAdd(total, math.Abs(x))
		}
	}
	return total
}

// ExtractNumber keeps only digits, '.' and '-' and reads the longest leading
// decimal number from what is left: "$1,200.50" -> 1200.5,
// "2024-08-10" -> 2024, "1.2.3" -> 1.2. ok is false when no digit leads.
func ExtractNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	n := numericPrefix(b.String())
	if n == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// numericPrefix returns the longest prefix of the form -?digits[.digits]
// (either digit run may be empty, not both).
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	intStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits := i - intStart
	end := i
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if frac := j - i - 1; frac > 0 {
			digits += frac
			end = j
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:end]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
