package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "orderetl/internal/errors"
	"orderetl/internal/shared/textenc"
)

// writeWorkbook saves rows to the first sheet of a new workbook
func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, f.SaveAs(path))
}

func writeText(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	content := string(textenc.BOM()) + "Order #,Carrier\nDT1,\"Standard, Ground\"\n\n,\n2,Premium\n"
	writeText(t, path, content)

	sheet, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Order #", "Carrier"}, sheet.Header)
	assert.Equal(t, [][]string{{"DT1", "Standard, Ground"}, {"2", "Premium"}}, sheet.Rows)
	assert.Equal(t, textenc.CharsetUTF8, sheet.Charset)
}

func TestReadFile_CSVWindows1252(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.csv")
	writeText(t, path, "Order Number,Name\nDT1,M\xfcller\nDT\xc92,Ren\xe9e\n")

	sheet, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, textenc.CharsetWindows1252, sheet.Charset)
	assert.Equal(t, [][]string{{"DT1", "Müller"}, {"DTÉ2", "Renée"}}, sheet.Rows)
	for _, row := range sheet.Rows {
		for _, cell := range row {
			assert.NotContains(t, cell, "\uFFFD")
		}
	}
}

func TestReadFile_CSVRaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.CSV")
	writeText(t, path, "a,b,c\n1\n1,2,3,4\n")

	sheet, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}, {"1", "2", "3", "4"}}, sheet.Rows)
}

func TestReadFile_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"Order #", "Carrier", "Status"},
		{"DT10", "Standard", "Shipped"},
		{"DT11", "Premium", "Open"},
	})

	sheet, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Order #", "Carrier", "Status"}, sheet.Header)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []string{"DT11", "Premium", "Open"}, sheet.Rows[1])
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	writeText(t, empty, "")
	_, err := ReadFile(empty)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	corrupt := filepath.Join(dir, "corrupt.xlsx")
	writeText(t, corrupt, "not a workbook")
	_, err = ReadFile(corrupt)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	legacy := filepath.Join(dir, "legacy.xls")
	writeText(t, legacy, "\xd0\xcf\x11\xe0 not really biff")
	_, err = ReadFile(legacy)
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "notes.txt"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
