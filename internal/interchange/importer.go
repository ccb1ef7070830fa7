package interchange

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
)

// ReadWorkbook parses an interchange workbook and decodes every data row of
// both sheets. It touches no storage, so a failure here changes nothing.
func ReadWorkbook(r io.Reader) (*Dataset, error) {
	sheets, err := parseWorkbook(r)
	if err != nil {
		return nil, err
	}

	itemTypes, err := decodeSheet(SheetItemTypes, sheets[SheetItemTypes], itemTypeFields)
	if err != nil {
		return nil, err
	}
	items, err := decodeSheet(SheetItems, sheets[SheetItems], itemFields)
	if err != nil {
		return nil, err
	}
	return &Dataset{ItemTypes: itemTypes, Items: items}, nil
}

// parseWorkbook returns the raw rows of the two required sheets.
func parseWorkbook(r io.Reader) (sheets map[string][][]string, err error) {
	// excelize can panic on a zip that is not a well formed workbook.
	defer func() {
		if p := recover(); p != nil {
			sheets, err = nil, &FormatError{Err: fmt.Errorf("%v", p)}
		}
	}()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	present := make(map[string]bool)
	for _, name := range f.GetSheetMap() {
		present[name] = true
	}
	var missing []string
	for _, name := range []string{SheetItemTypes, SheetItems} {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &FormatError{Missing: missing}
	}

	return map[string][][]string{
		SheetItemTypes: rawRows(f, SheetItemTypes),
		SheetItems:     rawRows(f, SheetItems),
	}, nil
}

// rawRows returns the stored cell values of sheet. GetRows renders cells
// carrying a built-in number format (dates, scientific, whole numbers)
// through that format, so the used range is reset to the default style
// before the values are read.
func rawRows(f *excelize.File, sheet string) [][]string {
	rows := f.GetRows(sheet)
	if len(rows) == 0 || len(rows[0]) == 0 {
		return rows
	}
	last := excelize.ToAlphaString(len(rows[0])-1) + strconv.Itoa(len(rows))
	f.SetCellStyle(sheet, "A1", last, 0)
	return f.GetRows(sheet)
}

// decodeSheet resolves the header in rows[0] and decodes every following
// row that has any content. The first failure aborts the whole sheet.
func decodeSheet[T any](sheet string, rows [][]string, fields []field[T]) ([]T, error) {
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	idx, err := ResolveColumns(sheet, header, fieldNames(fields))
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		if blankRow(rows[i]) {
			continue
		}
		v, err := decodeRow(sheet, i+1, fields, idx, rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
