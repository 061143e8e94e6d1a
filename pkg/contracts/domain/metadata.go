package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// LastInputDateKey is the metadata key holding the run timestamp
const LastInputDateKey = "last_input_date"

// LastInputDateLayout is the timestamp format of LastInputDate
const LastInputDateLayout = "2006-01-02 15:04:05"

// RunMetadata records what a single ingest run read.
// It serializes to one flat object: every source is a key holding a
// file -> record count object, next to the last_input_date string.
type RunMetadata struct {
	Sources       map[string]map[string]int
	LastInputDate time.Time
}

// NewRunMetadata returns empty metadata
func NewRunMetadata() *RunMetadata {
	return &RunMetadata{Sources: make(map[string]map[string]int)}
}

// AddSource registers a source with no files yet
func (m *RunMetadata) AddSource(source string) {
	if _, ok := m.Sources[source]; !ok {
		m.Sources[source] = make(map[string]int)
	}
}

// SetFileCount records how many records were read from a file of a source
func (m *RunMetadata) SetFileCount(source, file string, count int) {
	m.AddSource(source)
	m.Sources[source][file] = count
}

// SourceNames returns the source names sorted
func (m *RunMetadata) SourceNames() []string {
	names := make([]string, 0, len(m.Sources))
	for name := range m.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormattedLastInputDate returns the timestamp in the on-disk layout
func (m *RunMetadata) FormattedLastInputDate() string {
	if m.LastInputDate.IsZero() {
		return ""
	}
	return m.LastInputDate.Format(LastInputDateLayout)
}

// MarshalJSON writes sources in sorted order followed by last_input_date
func (m RunMetadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.SourceNames() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		files, err := json.Marshal(m.Sources[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(files)
	}
	if !m.LastInputDate.IsZero() {
		if len(m.Sources) > 0 {
			buf.WriteByte(',')
		}
		date, _ := json.Marshal(m.FormattedLastInputDate())
		buf.WriteString(`"` + LastInputDateKey + `":`)
		buf.Write(date)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the flat object written by MarshalJSON
func (m *RunMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Sources = make(map[string]map[string]int)
	m.LastInputDate = time.Time{}
	for key, value := range raw {
		if key == LastInputDateKey {
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("%s: %w", LastInputDateKey, err)
			}
			if s == "" {
				continue
			}
			t, err := time.ParseInLocation(LastInputDateLayout, s, time.Local)
			if err != nil {
				return fmt.Errorf("%s: %w", LastInputDateKey, err)
			}
			m.LastInputDate = t
			continue
		}
		files := make(map[string]int)
		if err := json.Unmarshal(value, &files); err != nil {
			return fmt.Errorf("source %q: %w", key, err)
		}
		m.Sources[key] = files
	}
	return nil
}
