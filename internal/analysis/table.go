package analysis

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyInput is returned when the input holds no data rows after the header.
var ErrEmptyInput = errors.New("empty input: no data rows after header")

// Options controls analysis behavior for tabular data.
type Options struct {
	// StrictQuotes parses with an RFC 4180 reader so quoted fields may contain commas.
	// When false, lines are split on every comma.
	StrictQuotes bool
	// MaxRows limits data rows analyzed; 0 means unlimited.
	MaxRows int
	// Language selects the message catalog (BCP 47 tag). Empty means Spanish.
	Language string
}

// DefaultOptions returns reasonable defaults for dataset analysis.
func DefaultOptions() Options {
	return Options{Language: "es"}
}

// Record is one data row: an ordered mapping from column name to raw value.
// The zero value is an empty record.
type Record struct {
	cols []string
	vals map[string]string
}

// NewRecord pairs header names with values. Missing trailing values become
// empty strings, extra values are dropped. A repeated column name keeps its
// first position and takes the later value.
func NewRecord(header, values []string) Record {
	r := Record{vals: make(map[string]string, len(header))}
	for i, name := range header {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		if _, seen := r.vals[name]; !seen {
			r.cols = append(r.cols, name)
		}
		r.vals[name] = v
	}
	return r
}

// Columns returns column names in original order.
func (r Record) Columns() []string {
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Get returns the value for a column.
func (r Record) Get(col string) (string, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// Values returns the values in column order.
func (r Record) Values() []string {
	out := make([]string, len(r.cols))
	for i, c := range r.cols {
		out[i] = r.vals[c]
	}
	return out
}

// Len reports the number of columns.
func (r Record) Len() int { return len(r.cols) }

// MarshalJSON encodes the record as an object, keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, c := range r.cols {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.vals[c])
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping, keys in column order.
func (r Record) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range r.cols {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.vals[c]},
		)
	}
	return n, nil
}

// ParseTable turns comma-delimited text into records. The first non-blank
// line is the header. Blank lines are skipped. ErrEmptyInput is returned when
// no data line remains.
func ParseTable(text string, opt Options) ([]Record, error) {
	// spreadsheet exports often start with a UTF-8 byte order mark
	text = strings.TrimPrefix(text, "\ufeff")
	var rows [][]string
	if opt.StrictQuotes {
		rows = splitQuoted(text)
	} else {
		rows = splitNaive(text)
	}
	return RecordsFromRows(rows)
}

// RecordsFromRows builds records from pre-split rows (CSV or workbook). Each
// cell is trimmed and unquoted; blank rows are skipped.
func RecordsFromRows(rows [][]string) ([]Record, error) {
	var header []string
	var out []Record
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		vals := make([]string, len(row))
		for i, v := range row {
			vals[i] = cleanValue(v)
		}
		if header == nil {
			header = vals
			continue
		}
		out = append(out, NewRecord(header, vals))
	}
	if len(out) == 0 {
		return nil, ErrEmptyInput
	}
	return out, nil
}

// splitNaive splits every line on the raw delimiter. Quoted fields holding a
// comma are split too.
func splitNaive(text string) [][]string {
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, strings.Split(line, ","))
	}
	return rows
}

func splitQuoted(text string) [][]string {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	var rows [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// malformed quoting: fall back to the plain split for the whole text
			return splitNaive(text)
		}
		rows = append(rows, rec)
	}
	return rows
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// cleanValue trims whitespace and at most one enclosing quote on each side.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
