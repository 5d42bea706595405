package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{"  42.5 ", 42.5, true},
		{"$1,200.50", 1200.5, true},
		{"-7", -7, true},
		{"-.5", -0.5, true},
		{".25", 0.25, true},
		{"5.", 5, true},
		{"12.5%", 12.5, true},
		{"2024-08-10", 2024, true},
		{"1.2.3", 1.2, true},
		{"1e3", 13, true},
		{"Alice", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"--5", 0, false},
	}
	for _, c := range cases {
		got, ok := ExtractNumber(c.in)
		assert.Equal(t, c.ok, ok, "ok for %q", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, "value for %q", c.in)
		}
	}
}

func TestRowWeight_IgnoresNonNumeric(t *testing.T) {
	recs, err := ParseTable("id,name\n1,Alice", DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, 1.0, RowWeight(recs[0]))
}

func TestRowWeight_SumsAbsoluteValues(t *testing.T) {
	r := NewRecord([]string{"a", "b", "c"}, []string{"-10", "5", "n/a"})
	assert.Equal(t, 15.0, RowWeight(r))
	assert.Equal(t, 0.0, RowWeight(NewRecord([]string{"a"}, []string{"none"})))
}

func TestValuate_AssignsOneBasedIndex(t *testing.T) {
	recs, err := ParseTable("k,v\nx,3\ny,oops\nz,4", DefaultOptions())
	assert.NoError(t, err)
	valued := Valuate(recs)
	if assert.Len(t, valued, 3) {
		assert.Equal(t, 1, valued[0].OriginalIndex)
		assert.Equal(t, 3, valued[2].OriginalIndex)
		assert.Equal(t, 3.0, valued[0].Weight)
		assert.Equal(t, 0.0, valued[1].Weight)
		assert.Equal(t, 4.0, valued[2].Weight)
	}
}

func TestRowWeight_SaturatesInsteadOfOverflowing(t *testing.T) {
	huge := strings.Repeat("9", 308)
	r := NewRecord([]string{"a", "b", "c"}, []string{huge, huge, "1"})
	assert.Equal(t, math.MaxFloat64, RowWeight(r))

	// too large for float64 at all
	r = NewRecord([]string{"a", "b"}, []string{strings.Repeat("9", 400), "7"})
	assert.Equal(t, 7.0, RowWeight(r))
}
