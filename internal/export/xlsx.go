package export

import (
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gobeam/internal/beam"
)

const (
	SheetDistributions = "Distributions"
	SheetReactions     = "Reactions"
	SheetExpressions   = "Expressions"
)

// WriteXLSX writes a workbook with the sampled table, the reactions and the
// closed-form distributions.
func WriteXLSX(path string, sol *beam.Solution, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDistributions); err != nil {
		return err
	}
	header := make([]any, 0, len(t.Kinds)+1)
	for _, h := range t.Header() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(SheetDistributions, "A1", &header); err != nil {
		return err
	}
	for i, x := range t.X {
		row := make([]any, 0, len(t.Kinds)+1)
		row = append(row, x)
		for _, v := range t.Values[i] {
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetDistributions, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetReactions); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetReactions, "A1", &[]any{"reaction", "value"}); err != nil {
		return err
	}
	r := sol.Reactions().Map()
	for i, k := range sol.Reactions().Keys() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetReactions, cell, &[]any{k, r[k]}); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetExpressions); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetExpressions, "A1", &[]any{"distribution", "expression"}); err != nil {
		return err
	}
	for i, k := range beam.Kinds() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetExpressions, cell, &[]any{k.String(), sol.Text(k)}); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
