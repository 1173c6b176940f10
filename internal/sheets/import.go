// Package sheets reads cutoff workbooks and writes prediction workbooks.
package sheets

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/eduvate/eduvate-api/internal/college"
)

// CutoffRow is one parsed line of a cutoff workbook. CollegeRef is either a
// numeric college id or a short name, resolved by the caller.
type CutoffRow struct {
	Line       int
	CollegeRef string
	ExamType   string
	Year       int
	college.CutoffSet
}

// RowError reports a malformed line; Line is 1-based as shown in spreadsheet apps.
type RowError struct {
	Line int
	Msg  string
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %s", e.Line, e.Msg) }

var categoryColumns = []string{"general", "obc", "sc", "st", "ews"}

// ParseCutoffs reads the first sheet. The first row is a header naming the
// columns (college_id or short_name, exam_type, year, general, obc, sc, st,
// ews) in any order. Blank rows are skipped; blank category cells are NULL.
func ParseCutoffs(r io.Reader) ([]CutoffRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "sheets: open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("sheets: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "sheets: read %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.New("sheets: missing header row")
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	refCol, ok := idx["college_id"]
	if !ok {
		if refCol, ok = idx["short_name"]; !ok {
			return nil, errors.New("sheets: missing column college_id or short_name")
		}
	}
	for _, k := range []string{"exam_type", "year", "general"} {
		if _, ok := idx[k]; !ok {
			return nil, errors.Errorf("sheets: missing column %s", k)
		}
	}

	cell := func(row []string, col int) string {
		if col < len(row) {
			return strings.TrimSpace(row[col])
		}
		return ""
	}

	var out []CutoffRow
	for i, row := range rows[1:] {
		line := i + 2
		if blank(row) {
			continue
		}
		cr := CutoffRow{
			Line:       line,
			CollegeRef: cell(row, refCol),
			ExamType:   strings.ToLower(cell(row, idx["exam_type"])),
		}
		if cr.CollegeRef == "" {
			return nil, &RowError{line, "college is empty"}
		}
		if cr.ExamType == "" {
			return nil, &RowError{line, "exam_type is empty"}
		}
		year, err := strconv.Atoi(cell(row, idx["year"]))
		if err != nil || year < 1900 {
			return nil, &RowError{line, fmt.Sprintf("invalid year %q", cell(row, idx["year"]))}
		}
		cr.Year = year

		vals := make([]*int64, len(categoryColumns))
		for j, name := range categoryColumns {
			col, ok := idx[name]
			if !ok {
				continue
			}
			raw := cell(row, col)
			if raw == "" {
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 0 {
				return nil, &RowError{line, fmt.Sprintf("invalid %s cutoff %q", name, raw)}
			}
			vals[j] = &n
		}
		cr.General, cr.OBC, cr.SC, cr.ST, cr.EWS = vals[0], vals[1], vals[2], vals[3], vals[4]
		out = append(out, cr)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
