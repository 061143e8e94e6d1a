package ingest

import (
	"fmt"

	"orderetl/pkg/contracts/domain"
)

// Dedup policies
const (
	// DedupLast keeps the last record seen for an order number
	DedupLast = "last"
	// DedupFirst keeps the first record seen for an order number
	DedupFirst = "first"
)

// Dedup collapses the table to one record per order number. Keys keep the
// position where they were first seen; policy decides which record wins.
func Dedup(t *domain.Table, policy string) (*domain.OrderSet, error) {
	if policy == "" {
		policy = DedupLast
	}
	if policy != DedupLast && policy != DedupFirst {
		return nil, fmt.Errorf("unknown dedup policy %q", policy)
	}

	set := domain.NewOrderSet(t.Columns)
	for _, row := range t.Rows {
		key := row.OrderNumber()
		if policy == DedupFirst && set.Has(key) {
			continue
		}
		set.Put(key, row)
	}
	return set, nil
}
