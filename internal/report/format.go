package report

import (
	"fmt"
	"unicode/utf8"
)

// Fill colours applied to every sheet.
const (
	HeaderFill = "82ACF5"
	BandFill   = "E0E0E0"
	PlainFill  = "FFFFFF"
)

// RowFill returns the fill colour for a 1-based worksheet row.
// Row 1 is the header; data rows alternate starting with a banded row 2.
func RowFill(row int) string {
	if row <= 1 {
		return HeaderFill
	}
	if row%2 == 0 {
		return BandFill
	}
	return PlainFill
}

// ColumnWidths returns the display width of each column: the longest cell text
// (header included) plus two, scaled by 1.2.
func ColumnWidths(s Sheet) []float64 {
	cols := len(s.Header)
	for _, row := range s.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	maxLen := make([]int, cols)
	for i, h := range s.Header {
		maxLen[i] = utf8.RuneCountInString(h)
	}
	for _, row := range s.Rows {
		for i, v := range row {
			if v == nil {
				continue
			}
			if n := utf8.RuneCountInString(cellText(v)); n > maxLen[i] {
				maxLen[i] = n
			}
		}
	}

	widths := make([]float64, cols)
	for i, n := range maxLen {
		widths[i] = float64(n+2) * 1.2
	}
	return widths
}

func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
