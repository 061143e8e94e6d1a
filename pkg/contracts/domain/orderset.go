package domain

// OrderSet is an insertion-ordered collection of records keyed by order number.
// A key keeps the position where it was first stored.
type OrderSet struct {
	Columns []string

	keys  []string
	byKey map[string]Record
}

// NewOrderSet creates an empty set carrying the given columns
func NewOrderSet(columns []string) *OrderSet {
	return &OrderSet{
		Columns: append([]string(nil), columns...),
		byKey:   make(map[string]Record),
	}
}

// Put stores the record under key, replacing any earlier record for that key
func (s *OrderSet) Put(key string, r Record) {
	if _, ok := s.byKey[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.byKey[key] = r
}

// Has reports whether a record is stored under key
func (s *OrderSet) Has(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// Get returns the record stored under key
func (s *OrderSet) Get(key string) (Record, bool) {
	r, ok := s.byKey[key]
	return r, ok
}

// Keys returns the keys in first-seen order
func (s *OrderSet) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of distinct keys
func (s *OrderSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Each calls fn for every record in key order until fn returns false
func (s *OrderSet) Each(fn func(key string, r Record) bool) {
	for _, k := range s.keys {
		if !fn(k, s.byKey[k]) {
			return
		}
	}
}
