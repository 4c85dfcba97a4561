package spreadsheet

import (
	"context"
	"fmt"
	"strconv"

	"github.com/extrame/xls"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

const biffCharset = "utf-8"

// parseBIFF reads a legacy .xls workbook. The reader panics on some damaged
// files, so panics come back as errors.
func parseBIFF(ctx context.Context, path string) (sheets []domain.Sheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			sheets, err = nil, fmt.Errorf("read xls: %v", r)
		}
	}()

	wb, closer, err := xls.OpenWithCloser(path, biffCharset)
	if err != nil {
		return nil, fmt.Errorf("read xls: %w", err)
	}
	defer closer.Close()

	n := wb.NumSheets()
	sheets = make([]domain.Sheet, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		sheets = append(sheets, buildSheet(ws.Name, biffGrid(ws)))
	}
	return sheets, nil
}

func biffGrid(ws *xls.WorkSheet) [][]domain.Value {
	grid := make([][]domain.Value, 0, int(ws.MaxRow)+1)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]domain.Value, row.LastCol()+1)
		for c := row.FirstCol(); c <= row.LastCol(); c++ {
			cells[c] = biffValue(row.Col(c))
		}
		grid = append(grid, cells)
	}
	return grid
}

// biffValue maps the reader's rendered cell text back to a value. The
// reader renders numbers in their shortest form, so text that does not
// round-trip ("007", "1.50") was a text cell.
func biffValue(text string) domain.Value {
	if text == "" {
		return domain.Null()
	}
	if n, ok := finite(text); ok && strconv.FormatFloat(n, 'f', -1, 64) == text {
		return domain.Number(n)
	}
	return domain.String(text)
}
