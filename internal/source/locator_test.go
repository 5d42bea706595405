package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL_GoogleSheets(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{
			"https://docs.google.com/spreadsheets/d/1AbC_d-9/edit#gid=42",
			"https://docs.google.com/spreadsheets/d/1AbC_d-9/export?format=csv&gid=42",
		},
		{
			"https://docs.google.com/spreadsheets/d/1AbC/edit?usp=sharing",
			"https://docs.google.com/spreadsheets/d/1AbC/export?format=csv",
		},
		{
			"https://docs.google.com/spreadsheets/d/1AbC/view?gid=7",
			"https://docs.google.com/spreadsheets/d/1AbC/export?format=csv&gid=7",
		},
		{
			"https://docs.google.com/spreadsheets/d/1AbC/export?format=xlsx",
			"https://docs.google.com/spreadsheets/d/1AbC/export?format=xlsx",
		},
		{
			"https://example.com/data.csv?x=1",
			"https://example.com/data.csv?x=1",
		},
	}
	for _, c := range cases {
		got, err := ResolveURL(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestResolveURL_RejectsOtherSchemes(t *testing.T) {
	_, err := ResolveURL("ftp://example.com/data.csv")
	assert.ErrorContains(t, err, "unsupported url scheme")
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, KindXLSX, KindFor("report.xlsx", ""))
	assert.Equal(t, KindXLSX, KindFor("/export", xlsxContentType+"; charset=binary"))
	assert.Equal(t, KindCSV, KindFor("report.csv", "text/csv"))
	assert.Equal(t, KindCSV, KindFor("notes.txt", ""))
}

func TestIsRemoteAndDisplayName(t *testing.T) {
	assert.True(t, IsRemote("HTTPS://example.com"))
	assert.False(t, IsRemote("./data.csv"))
	assert.Equal(t, "data.csv", displayName("https://example.com/a/data.csv?x=1"))
	assert.Equal(t, "example.com", displayName("https://example.com/"))
	assert.Equal(t, "b.csv", displayName(`C:\a\b.csv`))
}
