package interchange

// cell.go converts single domain values to and from the raw text excelize
// stores in a sheet.
//
// Numeric cells are written from their exact textual form (integer,
// decimal string or date serial), so nothing passes through a float on the
// way out. Reading back, excelize hands over the stored text untouched
// because every numeric column carries a custom number format.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
	"github.com/tkreindler/InventoryManagementAPI/pkg/common"
)

// FieldKind selects how a field is encoded, styled and decoded.
type FieldKind int

const (
	KindText FieldKind = iota
	KindIdentifier
	KindMoney
	KindStatus
	KindTimestamp
)

// Number formats applied to each kind of column.
const (
	formatIdentifier  = `0`
	formatMoney       = `$#,##0.00_);[Red]($#,##0.00)`
	formatTimestamp   = `[$-en-US]m/d/yy h:mm AM/PM;@`
	builtinFormatText = 49 // "@"
)

// Cell is one encoded value ready to be placed in a sheet.
type Cell struct {
	Kind  FieldKind
	Value string
	Blank bool
}

// Numeric reports whether the cell is stored as a number rather than text.
func (c Cell) Numeric() bool {
	switch c.Kind {
	case KindIdentifier, KindMoney, KindTimestamp:
		return true
	}
	return false
}

// SentinelTime is the value of a timestamp that was never set. It is always
// exported, as serial 0 (the spreadsheet epoch, shown as 1/0/00), and every
// blank or non-positive date cell, or text that is not a date, imports as it.
var SentinelTime = time.Time{}

// spreadsheetEpoch is serial day 0 of the 1900 date system. Using
// 1899-12-30 rather than 12-31 absorbs the phantom 1900-02-29.
var spreadsheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const (
	msPerDay = 24 * 60 * 60 * 1000
	// maxSerial is 9999-12-31, the last date spreadsheets can display.
	maxSerial = 2958465
)

func EncodeText(s *string) Cell {
	if s == nil || *s == "" {
		return Cell{Kind: KindText, Blank: true}
	}
	return Cell{Kind: KindText, Value: *s}
}

// DecodeText maps an empty cell to nil so "no value" stays distinct from a
// present value.
func DecodeText(raw string) *string {
	if raw == "" {
		return nil
	}
	s := raw
	return &s
}

func EncodeIdentifier(v int64) Cell {
	return Cell{Kind: KindIdentifier, Value: strconv.FormatInt(v, 10)}
}

// DecodeIdentifier parses the rendered decimal text of an identifier cell.
// Exponent forms are accepted only when they denote an exact int64 and
// spell out every significant digit of it ("2e+11" for 194735012345 is
// rejected rather than rounded).
func DecodeIdentifier(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("identifier is empty")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("not a whole number")
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || d.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, fmt.Errorf("out of 64-bit range")
	}
	v := d.IntPart()
	if truncatedExponent(s, v) {
		return 0, fmt.Errorf("exponent form drops digits")
	}
	return v, nil
}

// truncatedExponent reports whether s, in exponent notation, has fewer
// mantissa digits than v has digits.
func truncatedExponent(s string, v int64) bool {
	e := strings.IndexAny(s, "eE")
	if e < 0 {
		return false
	}
	mantissa := strings.NewReplacer("+", "", "-", "", ".", "").Replace(s[:e])
	mantissa = strings.TrimLeft(mantissa, "0")
	digits := strings.TrimPrefix(strconv.FormatInt(v, 10), "-")
	return len(mantissa) < len(digits)
}

// decodeOptionalIdentifier is DecodeIdentifier with a blank cell allowed.
func decodeOptionalIdentifier(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return DecodeIdentifier(raw)
}

func EncodeMoney(d decimal.Decimal) Cell {
	return Cell{Kind: KindMoney, Value: d.String()}
}

// DecodeMoney reads a currency cell as an exact decimal. A blank cell is
// zero. Text that a user typed over a number ("$1,234.50", "(3.00)") is
// cleaned up the way it is displayed.
func DecodeMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.NewReplacer("$", "", ",", "").Replace(s)

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number")
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func EncodeStatus(s domain.ItemStatus) Cell {
	return Cell{Kind: KindStatus, Value: s.String()}
}

func DecodeStatus(raw string) (domain.ItemStatus, error) {
	return domain.ParseItemStatus(raw)
}

// EncodeTimestamp writes t as a spreadsheet date serial with millisecond
// precision. Unset times, and anything at or before the epoch, are written
// as the sentinel serial 0.
func EncodeTimestamp(t time.Time) Cell {
	ms := t.UnixMilli() - spreadsheetEpoch.UnixMilli()
	if t.IsZero() || ms <= 0 {
		return Cell{Kind: KindTimestamp, Value: "0"}
	}
	serial := float64(ms) / msPerDay
	return Cell{Kind: KindTimestamp, Value: strconv.FormatFloat(serial, 'f', -1, 64)}
}

// DecodeTimestamp never fails. A positive date serial decodes to its UTC
// time; a date typed as text is read as UTC; anything else becomes
// SentinelTime.
func DecodeTimestamp(raw string) time.Time {
	s := strings.TrimSpace(raw)
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decodeDateText(s)
	}
	if math.IsNaN(serial) || serial <= 0 || serial > maxSerial {
		return SentinelTime
	}
	ms := int64(math.Round(serial * msPerDay))
	return time.UnixMilli(spreadsheetEpoch.UnixMilli() + ms).UTC()
}

func decodeDateText(s string) time.Time {
	if common.IsEmptyOrNA(s) {
		return SentinelTime
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || !t.After(spreadsheetEpoch) || t.Year() > 9999 {
		return SentinelTime
	}
	return t.UTC().Truncate(time.Millisecond)
}
