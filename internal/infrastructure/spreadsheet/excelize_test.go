package spreadsheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/y-sudharshan/SheetWise/internal/core/domain"
)

func writeWorkbook(t *testing.T, sheets map[string]map[string]any, order []string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for cell, v := range sheets[name] {
			require.NoError(t, f.SetCellValue(name, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParser_Parse_MultipleSheets(t *testing.T) {
	path := writeWorkbook(t, map[string]map[string]any{
		"People": {
			"A1": "name", "B1": "age", "D1": "name",
			"A2": "Ann", "B2": 31, "C2": "note", "D2": "Ann2",
			// row 3 left blank
			"A4": "Bob", "D4": "Bob2",
			"A5": "007", "B5": 2.5,
		},
		"Notes": {
			"A1": "note",
			"A2": "hello",
		},
		"Blank": {},
	}, []string{"People", "Notes", "Blank"})

	sheets, err := NewParser().Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, sheets, 3)

	people := sheets[0]
	assert.Equal(t, "People", people.Name)
	assert.Equal(t, []string{"name", "age", "__EMPTY", "name_1"}, people.Columns)
	require.Len(t, people.Rows, 3, "blank rows are skipped")

	first := people.Rows[0]
	assert.Equal(t, domain.String("Ann"), first["name"])
	assert.Equal(t, domain.Number(31), first["age"])
	assert.Equal(t, domain.String("note"), first["__EMPTY"])
	assert.Equal(t, domain.String("Ann2"), first["name_1"])

	second := people.Rows[1]
	assert.Len(t, second, 4, "every row carries the full key set")
	assert.True(t, second["age"].IsNull())
	assert.True(t, second["__EMPTY"].IsNull())

	third := people.Rows[2]
	assert.Equal(t, domain.String("007"), third["name"], "text cells stay text")
	assert.Equal(t, domain.Number(2.5), third["age"])
	assert.True(t, third["name_1"].IsNull())

	assert.Equal(t, "Notes", sheets[1].Name)
	require.Len(t, sheets[1].Rows, 1)
	assert.Equal(t, domain.String("hello"), sheets[1].Rows[0]["note"])

	assert.Empty(t, sheets[2].Columns)
	assert.Empty(t, sheets[2].Rows)
}

func TestParser_Parse_TableAwayFromA1(t *testing.T) {
	path := writeWorkbook(t, map[string]map[string]any{
		"Stock": {
			"C1": "name", "D1": "qty",
			"C2": "bolt", "D2": 4,
			"C3": "nut", "E3": "loose",
		},
	}, []string{"Stock"})

	sheets, err := NewParser().Parse(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	stock := sheets[0]
	assert.Equal(t, []string{"name", "qty", "__EMPTY"}, stock.Columns)
	require.Len(t, stock.Rows, 2)
	for _, row := range stock.Rows {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, domain.String("bolt"), stock.Rows[0]["name"])
	assert.Equal(t, domain.Number(4), stock.Rows[0]["qty"])
	assert.True(t, stock.Rows[0]["__EMPTY"].IsNull())
	assert.True(t, stock.Rows[1]["qty"].IsNull())
	assert.Equal(t, domain.String("loose"), stock.Rows[1]["__EMPTY"])
}

func TestParser_Parse_DamagedLegacyWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.xls")
	require.NoError(t, os.WriteFile(path, append(append([]byte{}, oleMagic...), " truncated"...), 0o644))

	var err error
	require.NotPanics(t, func() {
		_, err = NewParser().Parse(context.Background(), path)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read xls")
}

func TestParser_Parse_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, err := NewParser().Parse(context.Background(), path)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "read xls")
}

func TestIsCompoundDocument(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"ole.xls", append(append([]byte{}, oleMagic...), 0, 0), true},
		{"zip.xlsx", []byte("PK\x03\x04rest"), false},
		{"short.xls", oleMagic[:4], false},
		{"empty.xls", nil, false},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name)
		require.NoError(t, os.WriteFile(path, tt.data, 0o644))
		got, err := isCompoundDocument(path)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := isCompoundDocument(filepath.Join(dir, "missing.xls"))
	assert.Error(t, err)
}

func TestBuildSheet(t *testing.T) {
	s, n, null := domain.String, domain.Number, domain.Null()
	grid := [][]domain.Value{
		nil,
		{null, null, s("city"), s(" "), s("city")},
		{null, null, s("Oslo"), n(3)},
		{null, s("  ")},
		{null, null, null, null, s("Bergen"), s("x")},
	}

	sheet := buildSheet("Towns", grid)
	assert.Equal(t, "Towns", sheet.Name)
	assert.Equal(t, []string{"city", "__EMPTY", "city_1", "__EMPTY_1"}, sheet.Columns)
	require.Len(t, sheet.Rows, 2, "whitespace-only rows are skipped")
	assert.Equal(t, domain.Row{"city": s("Oslo"), "__EMPTY": n(3), "city_1": null, "__EMPTY_1": null}, sheet.Rows[0])
	assert.Equal(t, domain.Row{"city": null, "__EMPTY": null, "city_1": s("Bergen"), "__EMPTY_1": s("x")}, sheet.Rows[1])

	empty := buildSheet("Empty", [][]domain.Value{nil, {null, s("")}})
	assert.Empty(t, empty.Columns)
	assert.Empty(t, empty.Rows)
}

func TestBiffValue(t *testing.T) {
	assert.True(t, biffValue("").IsNull())
	assert.Equal(t, domain.Number(12), biffValue("12"))
	assert.Equal(t, domain.Number(-0.25), biffValue("-0.25"))
	assert.Equal(t, domain.String("007"), biffValue("007"))
	assert.Equal(t, domain.String("1.50"), biffValue("1.50"))
	assert.Equal(t, domain.String("12kg"), biffValue("12kg"))
}

func TestParser_Parse_Cancelled(t *testing.T) {
	path := writeWorkbook(t, map[string]map[string]any{"S": {"A1": "h", "A2": 1}}, []string{"S"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().Parse(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHeaderNames(t *testing.T) {
	got := headerNames([]string{"a", "", "a", " ", "a"}, 6)
	assert.Equal(t, []string{"a", "__EMPTY", "a_1", "__EMPTY_1", "a_2", "__EMPTY_2"}, got)
}
