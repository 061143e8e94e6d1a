package domain

// Canonical field names produced by the header mapping
const (
	FieldOrderNumber   = "order_number"
	FieldShipToCountry = "ship_to_country"
	FieldShipToAddr3   = "ship_to_addr_3"
	FieldShipToAddress = "ship_to_address"
	FieldShipVia       = "ship_via"
	FieldOrderStatus   = "order_status"
)

// Record is a single order row keyed by canonical field name
type Record map[string]string

// OrderNumber returns the record's order number, empty if absent
func (r Record) OrderNumber() string {
	return r[FieldOrderNumber]
}

// Table is an ordered set of columns with the rows that carry them.
// Column order follows the header mapping of the source.
type Table struct {
	Columns []string
	Rows    []Record
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of the column or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddColumn appends a column if it is not already present
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// DropColumn removes the column from the header and from every row
func (t *Table) DropColumn(name string) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return
	}
	t.Columns = append(t.Columns[:idx:idx], t.Columns[idx+1:]...)
	for _, row := range t.Rows {
		delete(row, name)
	}
}

// Append adds the rows of other to t. Columns of other missing from t are appended.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	for _, c := range other.Columns {
		t.AddColumn(c)
	}
	t.Rows = append(t.Rows, other.Rows...)
}

// Values returns the row's values in column order
func (t *Table) Values(r Record) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = r[c]
	}
	return out
}
