package iotesting

import (
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
	"github.com/xuri/excelize/v2"
)

// SaveXLSX writes a workbook to an .xlsx file. Numbers are saved as
// numbers and dates as date-formatted numbers.
func SaveXLSX(wb workbook.Workbook, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, g := range wb {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return err
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}
		if err := saveGrid(f, name, g); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

func saveGrid(f *excelize.File, sheet string, g *workbook.Grid) error {
	for r := range g.Rows() {
		for c := range g.Cols() {
			v := g.At(r, c)
			if v.IsNull() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err = f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func cellValue(v value.Value) any {
	switch v.Kind() {
	case value.Number:
		d, _ := v.AsNumber()
		return d.InexactFloat64()
	case value.Date:
		t, _ := v.AsTime()
		return t
	}
	return v.Text()
}
