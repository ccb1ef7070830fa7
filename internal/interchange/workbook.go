package interchange

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"
)

const (
	SheetItemTypes = "ItemTypes"
	SheetItems     = "Items"
)

// excelize names the first sheet of a new file Sheet1.
const defaultSheet = "Sheet1"

// DumpFilePattern matches every name produced by DumpFileName.
const DumpFilePattern = "DatabaseDump-*.xlsx"

// DumpFileName names an export taken at t. Names sort chronologically.
func DumpFileName(t time.Time) string {
	return "DatabaseDump-" + t.UTC().Format("20060102T150405Z") + ".xlsx"
}

type styles struct {
	header int
	column map[FieldKind]int
}

func newStyles(f *excelize.File) (*styles, error) {
	st := &styles{column: make(map[FieldKind]int)}

	var err error
	st.header, err = f.NewStyle(fmt.Sprintf(`{"font":{"bold":true},"number_format":%d}`, builtinFormatText))
	if err != nil {
		return nil, errors.Wrap(err, "header style")
	}

	defs := map[FieldKind]string{
		KindText:       fmt.Sprintf(`{"number_format":%d}`, builtinFormatText),
		KindStatus:     fmt.Sprintf(`{"number_format":%d}`, builtinFormatText),
		KindIdentifier: customFormat(formatIdentifier),
		KindMoney:      customFormat(formatMoney),
		KindTimestamp:  customFormat(formatTimestamp),
	}
	for kind, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			return nil, errors.Wrapf(err, "column style %s", def)
		}
		st.column[kind] = id
	}
	return st, nil
}

func customFormat(format string) string {
	return fmt.Sprintf(`{"custom_number_format":%s}`, strconv.Quote(format))
}

// WriteWorkbook assembles the ItemTypes and Items sheets from ds, rows in
// the order given, and writes the XLSX container to w.
func WriteWorkbook(w io.Writer, ds *Dataset) error {
	if ds == nil {
		ds = &Dataset{}
	}

	f := excelize.NewFile()
	f.SetSheetName(defaultSheet, SheetItemTypes)
	f.NewSheet(SheetItems)

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	writeSheet(f, SheetItemTypes, itemTypeFields, ds.ItemTypes, st)
	writeSheet(f, SheetItems, itemFields, ds.Items, st)

	return errors.Wrap(f.Write(w), "write workbook")
}

func writeSheet[T any](f *excelize.File, sheet string, fields []field[T], rows []T, st *styles) {
	for col, fd := range fields {
		letter := excelize.ToAlphaString(col)
		f.SetCellStr(sheet, letter+"1", fd.name)
		f.SetColWidth(sheet, letter, letter, fd.width)
	}

	for i := range rows {
		row := strconv.Itoa(i + 2)
		for col, cell := range encodeRow(fields, &rows[i]) {
			if cell.Blank {
				continue
			}
			axis := excelize.ToAlphaString(col) + row
			if cell.Numeric() {
				f.SetCellDefault(sheet, axis, cell.Value)
			} else {
				f.SetCellStr(sheet, axis, cell.Value)
			}
		}
	}

	last := excelize.ToAlphaString(len(fields) - 1)
	f.SetCellStyle(sheet, "A1", last+"1", st.header)
	if len(rows) == 0 {
		return
	}
	end := strconv.Itoa(len(rows) + 1)
	for col, fd := range fields {
		letter := excelize.ToAlphaString(col)
		f.SetCellStyle(sheet, letter+"2", letter+end, st.column[fd.kind])
	}
}
