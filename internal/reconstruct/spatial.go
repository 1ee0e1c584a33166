package reconstruct

import (
	"sort"
	"strings"
)

// RowTolerance is the fixed vertical distance (in source pixels) under which
// two fragment anchors are judged to lie on the same visual line. Tuned for
// typical phone-camera document-page resolution; deliberately not
// configurable.
const RowTolerance = 10

// groupRows partitions fragments into visual rows. Fragments are sorted by
// anchor y (x breaks ties), then grouped greedily: a fragment joins the
// current row while its y is within RowTolerance of the row's first
// (representative) y. The sort is stable, so fragments sharing an anchor keep
// their original horizontal order.
func groupRows(fragments []TextFragment) [][]TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]TextFragment
	row := []TextFragment{sorted[0]}
	rowY := sorted[0].Y
	for _, f := range sorted[1:] {
		if f.Y-rowY < RowTolerance {
			row = append(row, f)
			continue
		}
		rows = append(rows, row)
		row = []TextFragment{f}
		rowY = f.Y
	}
	rows = append(rows, row)

	// Within a row, reading order is left to right regardless of the y-sort.
	for _, r := range rows {
		sort.SliceStable(r, func(i, j int) bool { return r[i].X < r[j].X })
	}
	return rows
}

// mergeRows joins fragments within a row with single spaces and rows with
// newlines. Interior whitespace inside fragment contents is left untouched.
func mergeRows(rows [][]TextFragment) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, f := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f.Content)
		}
	}
	return b.String()
}
