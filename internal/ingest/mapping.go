package ingest

import (
	"orderetl/internal/config"
	apperrors "orderetl/internal/errors"
	"orderetl/pkg/contracts/domain"
)

// MapColumns selects the mapped source columns of the sheet and renames them
// to their canonical names. Column order follows the mapping. Returns a
// MISSING_HEADERS error naming every mapped column absent from the sheet.
func MapColumns(file string, sheet *Sheet, mapping config.HeaderMapping) (*domain.Table, error) {
	index := make(map[string]int, len(sheet.Header))
	for i, h := range sheet.Header {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	positions := make([]int, len(mapping))
	for i, m := range mapping {
		pos, ok := index[m.Source]
		if !ok {
			missing = append(missing, m.Source)
			continue
		}
		positions[i] = pos
	}
	if len(missing) > 0 {
		return nil, apperrors.NewMissingHeadersError(file, missing)
	}

	table := &domain.Table{Rows: make([]domain.Record, 0, len(sheet.Rows))}
	for _, target := range mapping.Targets() {
		table.AddColumn(target)
	}
	for _, row := range sheet.Rows {
		record := make(domain.Record, len(mapping))
		for i, m := range mapping {
			if positions[i] < len(row) {
				record[m.Target] = row[positions[i]]
			} else {
				record[m.Target] = ""
			}
		}
		if v, ok := record[domain.FieldOrderNumber]; ok {
			record[domain.FieldOrderNumber] = CleanOrderNumber(v)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}
