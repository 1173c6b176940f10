package sheets

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/eduvate/eduvate-api/internal/college"
)

var exportHeader = []any{"#", "College", "Short Name", "Type", "Location", "State",
	"Ranking", "Fees", "Avg Package", "Highest Package", "Placement Rate (%)"}

// WritePrediction writes one sheet per tier (Safe, Likely, Competitive).
func WritePrediction(w io.Writer, p college.Prediction) error {
	f := excelize.NewFile()
	defer f.Close()

	tiers := []struct {
		name     string
		colleges []college.College
	}{
		{"Safe", p.Safe},
		{"Likely", p.Likely},
		{"Competitive", p.Competitive},
	}

	first := f.GetSheetName(0)
	for i, t := range tiers {
		if i == 0 {
			if err := f.SetSheetName(first, t.name); err != nil {
				return errors.Wrap(err, "sheets: rename sheet")
			}
		} else if _, err := f.NewSheet(t.name); err != nil {
			return errors.Wrapf(err, "sheets: new sheet %s", t.name)
		}
		if err := f.SetSheetRow(t.name, "A1", &exportHeader); err != nil {
			return errors.Wrap(err, "sheets: header")
		}
		for j, c := range t.colleges {
			cell, _ := excelize.CoordinatesToCellName(1, j+2)
			row := []any{j + 1, c.Name, c.ShortName, c.Type, c.Location, c.State,
				c.Ranking, c.Fees, c.AvgPackage, c.HighestPackage, c.PlacementRate}
			if err := f.SetSheetRow(t.name, cell, &row); err != nil {
				return errors.Wrapf(err, "sheets: %s row %d", t.name, j+2)
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "sheets: write workbook")
	}
	return nil
}
