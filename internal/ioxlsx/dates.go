package ioxlsx

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// dateFormats remembers which cell styles have a date number format.
type dateFormats struct {
	f      *excelize.File
	styles map[int]bool
}

func newDateFormats(f *excelize.File) *dateFormats {
	return &dateFormats{f: f, styles: make(map[int]bool)}
}

func (d *dateFormats) isDate(sheet, cell string) (bool, error) {
	idx, err := d.f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, err
	}
	if res, ok := d.styles[idx]; ok {
		return res, nil
	}

	st, err := d.f.GetStyle(idx)
	if err != nil {
		return false, err
	}
	res := builtinDate(st.NumFmt)
	if st.CustomNumFmt != nil {
		res = customDate(*st.CustomNumFmt)
	}
	d.styles[idx] = res
	return res, nil
}

// builtinDate is true for built-in number formats of dates and times.
func builtinDate(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) ||
		(id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// customDate is true for a custom number format with day, month or year
// placeholders outside of quoted literals and brackets.
func customDate(format string) bool {
	var quoted, bracket bool
	for _, r := range strings.ToLower(format) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case bracket:
		case r == 'd' || r == 'm' || r == 'y':
			return true
		}
	}
	return false
}
