// Package transit maintains the transit-times lookup table: average shipping
// time per destination country and ship queue.
package transit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	apperrors "orderetl/internal/errors"
	"orderetl/internal/files"
	"orderetl/internal/shared/textenc"
	"orderetl/pkg/contracts/domain"
)

// Column headers of the transit times CSV
const (
	CountryHeader     = "Country"
	ShipQueueHeader   = "Ship Q"
	TransitTimeHeader = "Transit Time"
)

// Updater rewrites the transit times JSON from its CSV source
type Updater struct {
	manager *files.Manager
	logger  *slog.Logger
}

// NewUpdater creates an updater writing through manager
func NewUpdater(manager *files.Manager, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{manager: manager, logger: logger}
}

// Update reads csvPath and overwrites jsonPath with the nested
// country -> queue -> transit time table. Nothing is written on error.
func (u *Updater) Update(csvPath, jsonPath string) (domain.TransitTimes, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transit times file %s", csvPath))
		}
		return nil, apperrors.NewStorageError("failed to open transit times file", err)
	}
	defer f.Close()

	times, err := Parse(f)
	if err != nil {
		return nil, err
	}

	data, err := Encode(times)
	if err != nil {
		return nil, err
	}
	if err := u.manager.WriteFile(jsonPath, data); err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to write %s", jsonPath), err)
	}

	u.logger.Info("Transit times updated",
		slog.String("source", csvPath),
		slog.String("target", jsonPath),
		slog.Int("countries", len(times)))
	return times, nil
}

// Parse reads the transit times CSV. Keys are trimmed and lower-cased,
// values trimmed. Later rows overwrite earlier ones for the same pair.
func Parse(r io.Reader) (domain.TransitTimes, error) {
	data, _, err := textenc.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to decode transit times", err)
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewParsingError("transit times file is empty", nil)
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read transit times header", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	var idx [3]int
	for i, name := range []string{CountryHeader, ShipQueueHeader, TransitTimeHeader} {
		pos, ok := cols[name]
		if !ok {
			return nil, apperrors.NewMissingHeadersError("transit times", []string{name})
		}
		idx[i] = pos
	}

	times := make(domain.TransitTimes)
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("failed to parse transit times line %d", line), err)
		}
		times.Set(cell(row, idx[0]), cell(row, idx[1]), cell(row, idx[2]))
	}
	return times, nil
}

// Encode formats the table with 4-space indentation, sorted keys and
// non-ASCII characters escaped
func Encode(times domain.TransitTimes) ([]byte, error) {
	data, err := json.MarshalIndent(times, "", "    ")
	if err != nil {
		return nil, apperrors.NewStorageError("failed to encode transit times", err)
	}
	return append(textenc.EscapeNonASCII(data), '\n'), nil
}

// Load reads a transit times JSON file
func Load(path string) (domain.TransitTimes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transit times file %s", path))
		}
		return nil, apperrors.NewStorageError("failed to read transit times", err)
	}
	data, err = textenc.Decode(data)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to decode transit times", err)
	}

	times := make(domain.TransitTimes)
	if err := json.Unmarshal(data, &times); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("invalid transit times file %s", path), err)
	}
	return times, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
