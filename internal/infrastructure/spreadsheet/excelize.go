// Package spreadsheet reads uploaded workbooks into row records.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

// oleMagic opens every compound document, which is how BIFF .xls files are
// stored.
var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Parser reads OOXML workbooks with excelize and legacy BIFF workbooks with
// the xls reader, picking by the file's leading bytes.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// Parse returns one Sheet per worksheet in workbook order.
func (p *Parser) Parse(ctx context.Context, path string) ([]domain.Sheet, error) {
	legacy, err := isCompoundDocument(path)
	if err != nil {
		return nil, err
	}
	if legacy {
		return parseBIFF(ctx, path)
	}
	return parseOOXML(ctx, path)
}

func isCompoundDocument(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, len(oleMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(head, oleMagic), nil
}

func parseOOXML(ctx context.Context, path string) ([]domain.Sheet, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]domain.Sheet, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grid, err := readGrid(f, name)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", name, err)
		}
		sheets = append(sheets, buildSheet(name, grid))
	}
	return sheets, nil
}

func readGrid(f *excelize.File, name string) ([][]domain.Value, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	grid := make([][]domain.Value, len(rows))
	for i, cells := range rows {
		grid[i] = make([]domain.Value, len(cells))
		for col, raw := range cells {
			if raw == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return nil, err
			}
			grid[i][col] = cellValue(f, name, ref, raw)
		}
	}
	return grid, nil
}

// cellValue keeps text cells as strings even when they look numeric, so
// codes such as "007" survive.
func cellValue(f *excelize.File, sheet, ref, raw string) domain.Value {
	typ, err := f.GetCellType(sheet, ref)
	if err != nil {
		typ = excelize.CellTypeUnset
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return domain.String(raw)
	case excelize.CellTypeBool:
		return domain.String(strconv.FormatBool(raw == "1"))
	}
	if n, ok := finite(raw); ok {
		return domain.Number(n)
	}
	return domain.String(raw)
}

func finite(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
