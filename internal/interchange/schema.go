package interchange

// ColumnIndex maps a field name to its zero-based column in a sheet.
type ColumnIndex map[string]int

// ResolveColumns locates every required field in a sheet header row.
// Matching is exact and case-sensitive; column order is irrelevant and
// unknown columns are ignored. A required name that is absent or appears
// more than once is a SchemaError.
func ResolveColumns(sheet string, header []string, required []string) (ColumnIndex, error) {
	want := make(map[string]bool, len(required))
	for _, name := range required {
		want[name] = true
	}

	idx := make(ColumnIndex, len(required))
	var dup []string
	for col, name := range header {
		if !want[name] {
			continue
		}
		if _, seen := idx[name]; seen {
			dup = appendOnce(dup, name)
			continue
		}
		idx[name] = col
	}

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 || len(dup) > 0 {
		return nil, &SchemaError{Sheet: sheet, Missing: missing, Duplicate: dup}
	}
	return idx, nil
}

// Cell returns the raw text of field in row, or "" past the end of the row.
func (c ColumnIndex) Cell(row []string, field string) string {
	col, ok := c[field]
	if !ok || col >= len(row) {
		return ""
	}
	return row[col]
}

func appendOnce(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
