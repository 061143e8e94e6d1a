package transit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderetl/internal/config"
	apperrors "orderetl/internal/errors"
	"orderetl/internal/files"
	"orderetl/internal/shared/textenc"
	"orderetl/pkg/contracts/domain"
)

func newTestUpdater(t *testing.T, dir string) *Updater {
	t.Helper()
	return NewUpdater(files.NewManager(&config.Paths{ProgramDataDir: dir}, nil), nil)
}

func TestParse(t *testing.T) {
	input := string(textenc.BOM()) + "Country,Ship Q,Transit Time,Notes\n" +
		" Germany ,Standard, 3-5 days ,x\n" +
		"germany,PREMIUM,1-2 days,\n" +
		"UK,standard,4 days\n" +
		"uk, Standard ,5 days\n"

	times, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, domain.TransitTimes{
		"germany": {"standard": "3-5 days", "premium": "1-2 days"},
		"uk":      {"standard": "5 days"},
	}, times)
}

func TestParse_MissingColumn(t *testing.T) {
	tests := []struct {
		header  string
		missing string
	}{
		{"Ship Q,Transit Time", CountryHeader},
		{"Country,Transit Time", ShipQueueHeader},
		{"Country,Ship Q", TransitTimeHeader},
		{"country,ship q,transit time", CountryHeader},
	}

	for _, tt := range tests {
		t.Run(tt.missing, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.header + "\na,b\n"))
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingHeaders))
			assert.Equal(t, []string{tt.missing}, apperrors.MissingHeaders(err))
		})
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestUpdater_Update(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "transit_times.csv")
	jsonPath := filepath.Join(dir, "config", "transit_times.json")
	require.NoError(t, os.WriteFile(csvPath, []byte("Country,Ship Q,Transit Time\nPoland,Premium,2\nItaly,Standard,6\n"), 0644))

	times, err := newTestUpdater(t, dir).Update(csvPath, jsonPath)
	require.NoError(t, err)
	assert.Len(t, times, 2)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	expected := `{
    "italy": {
        "standard": "6"
    },
    "poland": {
        "premium": "2"
    }
}
`
	assert.Equal(t, expected, string(data))

	loaded, err := Load(jsonPath)
	require.NoError(t, err)
	v, ok := loaded.Lookup(" ITALY ", "Standard")
	assert.True(t, ok)
	assert.Equal(t, "6", v)
}

func TestUpdater_UpdateLeavesTargetOnError(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "transit_times.csv")
	jsonPath := filepath.Join(dir, "transit_times.json")
	require.NoError(t, os.WriteFile(csvPath, []byte("Country,Transit Time\nPoland,2\n"), 0644))
	require.NoError(t, os.WriteFile(jsonPath, []byte("{\"old\": {}}"), 0644))

	_, err := newTestUpdater(t, dir).Update(csvPath, jsonPath)
	require.Error(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "{\"old\": {}}", string(data))
}

func TestUpdater_MissingCSV(t *testing.T) {
	dir := t.TempDir()
	_, err := newTestUpdater(t, dir).Update(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,2]"), 0644))
	_, err = Load(bad)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestParse_Windows1252(t *testing.T) {
	input := "Country,Ship Q,Transit Time\nC\xf4te d'Ivoire,Standard,9\n"

	times, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	v, ok := times.Lookup("côte d'ivoire", "standard")
	assert.True(t, ok)
	assert.Equal(t, "9", v)
}

func TestEncode_EscapesNonASCII(t *testing.T) {
	times := domain.TransitTimes{}
	times.Set("Österreich", "Standard", "4")

	data, err := Encode(times)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"\\u00f6sterreich\": {\n        \"standard\": \"4\"\n    }\n}\n", string(data))
}
