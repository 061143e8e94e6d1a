package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "orderetl/internal/errors"
	"orderetl/internal/shared/textenc"
	"orderetl/pkg/contracts/domain"
)

// ReadMetadata loads the run metadata file. A leading BOM is tolerated.
// Returns a NOT_FOUND error when the file does not exist.
func ReadMetadata(path string) (*domain.RunMetadata, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("metadata file %s", path))
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read metadata file", err)
	}

	data, err = textenc.Decode(data)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to decode metadata file", err)
	}

	meta := domain.NewRunMetadata()
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("invalid metadata file %s", path), err)
	}
	return meta, nil
}

// WriteMetadata writes the run metadata as an indented flat JSON object,
// prefixed with a UTF-8 BOM and with non-ASCII characters escaped
func WriteMetadata(path string, meta *domain.RunMetadata) error {
	data, err := json.MarshalIndent(meta, "", jsonIndent)
	if err != nil {
		return apperrors.NewStorageError("failed to encode metadata", err)
	}
	data = append(textenc.BOM(), textenc.EscapeNonASCII(data)...)
	data = append(data, '\n')
	if err := writeFile(path, data); err != nil {
		return apperrors.NewStorageError("failed to write metadata file", err)
	}
	return nil
}
