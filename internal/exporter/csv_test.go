package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderetl/internal/shared/textenc"
)

func TestCSVWriter_WriteCSV(t *testing.T) {
	tests := []struct {
		name     string
		options  WriteOptions
		expected string
	}{
		{
			name: "headers and records",
			options: WriteOptions{
				Headers: []string{"a", "b"},
				Records: [][]string{{"1", "2"}, {"3", "4"}},
			},
			expected: "a,b\n1,2\n3,4\n",
		},
		{
			name: "quoting",
			options: WriteOptions{
				Headers: []string{"name"},
				Records: [][]string{{"Smith, John"}, {`say "hi"`}},
			},
			expected: "name\n\"Smith, John\"\n\"say \"\"hi\"\"\"\n",
		},
		{
			name: "with BOM",
			options: WriteOptions{
				Headers:   []string{"a"},
				BOMPrefix: true,
			},
			expected: string(textenc.BOM()) + "a\n",
		},
		{
			name:     "empty",
			options:  WriteOptions{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.csv")
			w := NewCSVWriter(nil)

			require.NoError(t, w.WriteCSV(path, tt.options))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestCSVWriter_WriteCSVTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,content,that,is,longer\n"), 0644))

	w := NewCSVWriter(nil)
	require.NoError(t, w.WriteCSV(path, WriteOptions{Headers: []string{"x"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}

func TestCSVWriter_WriteOrders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program_data", "on_hold_data.csv")
	w := NewCSVWriter(nil)

	require.NoError(t, w.WriteOrders(path, sampleSet(), true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, textenc.BOM()))

	rows, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"order_number", "ship_via", "ship_to_country"},
		{"200", "standard", "uk"},
		{"100", "<premium> & co", "österreich"},
	}, rows)
	assert.NotContains(t, string(data), "\r\n")
}
