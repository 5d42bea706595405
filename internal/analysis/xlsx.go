package analysis

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// AnalyzeXLSX reads the selected sheet of a workbook on disk and analyzes it.
// If sheetName is empty, sheetIndex (1-based) picks the sheet; values <= 0 mean the first.
func AnalyzeXLSX(path string, opt Options, sheetName string, sheetIndex int) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()
	rep, err := AnalyzeWorkbook(f, opt, sheetName, sheetIndex)
	if err != nil {
		return nil, err
	}
	rep.Name = filepath.Base(path)
	if sheetName != "" {
		rep.Name = fmt.Sprintf("%s (sheet: %s)", rep.Name, sheetName)
	}
	return rep, nil
}

// AnalyzeWorkbook analyzes a workbook read from r.
func AnalyzeWorkbook(r io.Reader, opt Options, sheetName string, sheetIndex int) (*Report, error) {
	records, err := ReadWorkbook(r, sheetName, sheetIndex)
	if err != nil {
		return nil, err
	}
	return AnalyzeRecords(records, opt)
}

// ReadWorkbook extracts records from one sheet. Cells go through the same
// trimming, unquoting and padding as delimited text.
func ReadWorkbook(r io.Reader, sheetName string, sheetIndex int) ([]Record, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", ErrEmptyInput)
	}
	target := ""
	if sheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, sheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook.\nAvailable sheets: %s",
				sheetName, strings.Join(sheets, ", "))
		}
	} else {
		idx := sheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
		}
		target = sheets[idx-1]
	}

	rows, err := wb.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", target, err)
	}
	return RecordsFromRows(rows)
}
