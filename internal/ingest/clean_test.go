package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanOrderNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DT12345_DOTERRA", "12345"},
		{"12345_DOTERRA", "12345"},
		{"DT12345", "12345"},
		{"12345", "12345"},
		{"A_DOTERRA_DOTERRA", "A"},
		{"DTDT1", "1"},
		// _DOTERRA is removed before DT, so its letters never form a DT pair
		{"1_DOTERRADT", "1"},
		{"dt123", "dt123"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanOrderNumber(tt.input))
		})
	}
}
