package spreadsheet

import (
	"strconv"
	"strings"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

const emptyHeader = "__EMPTY"

// buildSheet turns a worksheet grid into a Sheet. The table spans the used
// range: the first non-blank row is the header and columns run from the
// leftmost to the rightmost non-blank cell of any row. Every following
// non-blank row becomes a Row holding every column, with empty cells as null.
func buildSheet(name string, grid [][]domain.Value) domain.Sheet {
	sheet := domain.Sheet{Name: name, Columns: []string{}, Rows: []domain.Row{}}

	headerIdx := -1
	first, last := -1, -1
	for i, cells := range grid {
		for col, v := range cells {
			if isBlank(v) {
				continue
			}
			if headerIdx < 0 {
				headerIdx = i
			}
			if first < 0 || col < first {
				first = col
			}
			last = max(last, col)
		}
	}
	if headerIdx < 0 {
		return sheet
	}

	width := last - first + 1
	sheet.Columns = headerNames(labels(grid[headerIdx], first, width), width)

	for _, cells := range grid[headerIdx+1:] {
		if blankRow(cells) {
			continue
		}
		row := make(domain.Row, width)
		for i, key := range sheet.Columns {
			col := first + i
			if col >= len(cells) || cells[col].IsNull() {
				row[key] = domain.Null()
				continue
			}
			row[key] = cells[col]
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

func labels(cells []domain.Value, first, width int) []string {
	out := make([]string, 0, width)
	for col := first; col < first+width && col < len(cells); col++ {
		out = append(out, cells[col].Text())
	}
	return out
}

// headerNames names width columns from the header cells. Blank headers
// become __EMPTY, __EMPTY_1, ...; repeated headers get _1, _2, ... suffixes.
func headerNames(cells []string, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int, width)
	for i := range names {
		base := ""
		if i < len(cells) {
			base = strings.TrimSpace(cells[i])
		}
		if base == "" {
			base = emptyHeader
		}

		name := base
		for used[name] {
			suffix[base]++
			name = base + "_" + strconv.Itoa(suffix[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func isBlank(v domain.Value) bool {
	return strings.TrimSpace(v.Text()) == ""
}

func blankRow(cells []domain.Value) bool {
	for _, v := range cells {
		if !isBlank(v) {
			return false
		}
	}
	return true
}
