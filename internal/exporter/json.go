package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"orderetl/internal/shared/textenc"
	"orderetl/pkg/contracts/domain"
)

// jsonIndent matches the indentation of the hand-maintained config files
const jsonIndent = "    "

// JSONWriter writes order sets as a single JSON object keyed by order number
type JSONWriter struct {
	logger *slog.Logger
}

// NewJSONWriter creates a new JSON writer instance
func NewJSONWriter(logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{logger: logger}
}

// WriteOrders writes {"<order_number>": {"<column>": "<value>", ...}, ...}.
// Key order and column order follow the set.
func (w *JSONWriter) WriteOrders(filePath string, set *domain.OrderSet) error {
	w.logger.Info("Writing JSON file",
		slog.String("file_path", filePath),
		slog.Int("record_count", set.Len()))

	data, err := MarshalOrders(set)
	if err != nil {
		return err
	}
	return writeFile(filePath, data)
}

// MarshalOrders encodes the set with 4-space indentation and a trailing newline.
// Non-ASCII characters are written as \uXXXX escapes.
func MarshalOrders(set *domain.OrderSet) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	first := true
	var encErr error
	set.Each(func(key string, r domain.Record) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString("\n" + jsonIndent)
		if encErr = writeJSONString(&buf, key); encErr != nil {
			return false
		}
		buf.WriteString(": ")
		encErr = writeRecord(&buf, set.Columns, r)
		return encErr == nil
	})
	if encErr != nil {
		return nil, fmt.Errorf("failed to encode orders: %w", encErr)
	}

	if !first {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return textenc.EscapeNonASCII(buf.Bytes()), nil
}

func writeRecord(buf *bytes.Buffer, columns []string, r domain.Record) error {
	if len(columns) == 0 {
		buf.WriteString("{}")
		return nil
	}
	buf.WriteByte('{')
	for i, c := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n" + jsonIndent + jsonIndent)
		if err := writeJSONString(buf, c); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := writeJSONString(buf, r[c]); err != nil {
			return err
		}
	}
	buf.WriteString("\n" + jsonIndent + "}")
	return nil
}

// writeJSONString encodes s without HTML escaping
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

func writeFile(filePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	return nil
}
