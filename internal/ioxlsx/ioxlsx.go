// Package ioxlsx loads .xlsx reporting workbooks into in-memory grids.
//
// Numeric cells become decimal numbers, numeric cells with a date number
// format become dates, everything else is text with broken UTF-8
// repaired.
package ioxlsx

import (
	"io"
	"log/slog"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Load reads a workbook from an .xlsx file.
func Load(path string) (workbook.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	defer f.Close()

	return read(f)
}

// LoadReader reads a workbook from an .xlsx stream, for example an
// uploaded file.
func LoadReader(r io.Reader) (workbook.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, OpenError("stream", err)
	}
	defer f.Close()

	return read(f)
}

func read(f *excelize.File) (workbook.Workbook, error) {
	res := make(workbook.Workbook)
	dates := newDateFormats(f)
	for _, sheet := range f.GetSheetList() {
		g, err := readSheet(f, sheet, dates)
		if err != nil {
			return nil, err
		}
		res[sheet] = g
	}
	slog.Debug("Loaded workbook", "sheets", len(res))
	return res, nil
}

func readSheet(
	f *excelize.File,
	sheet string,
	dates *dateFormats,
) (*workbook.Grid, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, ReadError(sheet, err)
	}

	vals := make([][]value.Value, len(rows))
	for r, row := range rows {
		vals[r] = make([]value.Value, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, ReadError(sheet, err)
			}
			v, err := cellValue(f, sheet, cell, raw, dates)
			if err != nil {
				return nil, ReadError(sheet, err)
			}
			vals[r][c] = v
		}
	}
	return workbook.FromRows(vals), nil
}

func cellValue(
	f *excelize.File,
	sheet, cell, raw string,
	dates *dateFormats,
) (value.Value, error) {
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return value.NullValue, err
	}

	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			// formulas can return text
			return text(raw), nil
		}
		isDate, err := dates.isDate(sheet, cell)
		if err != nil {
			return value.NullValue, err
		}
		if !isDate {
			return value.Num(d), nil
		}
		t, err := excelize.ExcelDateToTime(d.InexactFloat64(), false)
		if err != nil {
			return value.Num(d), nil
		}
		return value.Time(t), nil
	}
	return text(raw), nil
}

func text(raw string) value.Value {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.TrimRight(s, "\r")
	return value.Str(gnlib.FixUtf8(s))
}
