package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "orderetl/internal/errors"
	"orderetl/internal/shared/textenc"
)

// Sheet is the raw content of one input file: a header row and the data rows under it
type Sheet struct {
	Header []string
	Rows   [][]string
	// Charset is the text encoding a csv file was read as. Workbooks are
	// always utf-8.
	Charset string
}

// ReadFile reads a csv, xlsx or xls file. Every cell is returned as a string.
// Blank rows are skipped.
func ReadFile(path string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xls":
		return readExcel(path)
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported input file %s", filepath.Base(path)))
	}
}

func readCSV(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", filepath.Base(path)), err)
	}
	defer f.Close()

	data, charset, err := textenc.ReadAll(f)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to decode %s", filepath.Base(path)), err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse %s", filepath.Base(path)), err)
		}
		rows = append(rows, row)
	}
	sheet, err := newSheet(path, rows)
	if err != nil {
		return nil, err
	}
	sheet.Charset = charset
	return sheet, nil
}

// readExcel reads the first worksheet. Legacy BIFF .xls content is not
// supported by excelize and surfaces as a parsing error.
func readExcel(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to open workbook %s", filepath.Base(path)), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("workbook %s has no worksheets", filepath.Base(path)), nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q of %s", sheets[0], filepath.Base(path)), err)
	}

	sheet, err := newSheet(path, rows)
	if err != nil {
		return nil, err
	}
	sheet.Charset = textenc.CharsetUTF8
	return sheet, nil
}

func newSheet(path string, rows [][]string) (*Sheet, error) {
	var kept [][]string
	for _, row := range rows {
		if !isBlank(row) {
			kept = append(kept, row)
		}
	}
	if len(kept) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("%s has no header row", filepath.Base(path)), nil)
	}

	return &Sheet{Header: kept[0], Rows: kept[1:]}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
