package interchange

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrImportFailed matches every import failure. Whatever the cause, a failed
// import leaves storage exactly as it was.
var ErrImportFailed = errors.New("import failed, nothing changed")

// FormatError means the stream is not a readable workbook or lacks a
// required sheet.
type FormatError struct {
	Missing []string // required sheets not present
	Err     error    // container error, nil when only sheets are missing
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("not a valid workbook: %v", e.Err)
	}
	return fmt.Sprintf("workbook is missing sheet(s): %s", strings.Join(e.Missing, ", "))
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrImportFailed }

// SchemaError means a sheet header row does not describe the expected columns.
type SchemaError struct {
	Sheet     string   `json:"sheet"`
	Missing   []string `json:"missing,omitempty"`
	Duplicate []string `json:"duplicate,omitempty"`
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing column(s) "+strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicate) > 0 {
		parts = append(parts, "duplicate column(s) "+strings.Join(e.Duplicate, ", "))
	}
	return fmt.Sprintf("sheet %s: %s", e.Sheet, strings.Join(parts, "; "))
}

func (e *SchemaError) Is(target error) bool { return target == ErrImportFailed }

// RowDecodeError means one cell could not be coerced to its field type.
// Row is the 1-based spreadsheet row number, as a user sees it.
type RowDecodeError struct {
	Sheet  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowDecodeError) Error() string {
	return fmt.Sprintf("sheet %s row %d column %s: cannot decode %q: %v",
		e.Sheet, e.Row, e.Column, e.Value, e.Err)
}

func (e *RowDecodeError) Unwrap() error { return e.Err }

func (e *RowDecodeError) Is(target error) bool { return target == ErrImportFailed }

// TransactionError means storage rejected the replace step; the transaction
// was rolled back.
type TransactionError struct {
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("replace rolled back: %v", e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

func (e *TransactionError) Is(target error) bool { return target == ErrImportFailed }
