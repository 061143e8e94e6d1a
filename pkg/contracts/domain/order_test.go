package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_DropColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"order_number", "ship_to_addr_3", "ship_via"},
		Rows: []Record{
			{"order_number": "1", "ship_to_addr_3": "Spain", "ship_via": "std"},
		},
	}

	table.DropColumn("ship_to_addr_3")

	assert.Equal(t, []string{"order_number", "ship_via"}, table.Columns)
	assert.Equal(t, Record{"order_number": "1", "ship_via": "std"}, table.Rows[0])

	// Dropping an absent column is a no-op
	table.DropColumn("nope")
	assert.Len(t, table.Columns, 2)
}

func TestTable_Append(t *testing.T) {
	a := &Table{Columns: []string{"order_number"}, Rows: []Record{{"order_number": "1"}}}
	b := &Table{Columns: []string{"order_number", "ship_via"}, Rows: []Record{{"order_number": "2", "ship_via": "x"}}}

	a.Append(b)
	a.Append(nil)

	assert.Equal(t, []string{"order_number", "ship_via"}, a.Columns)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"2", "x"}, a.Values(a.Rows[1]))
	assert.Equal(t, []string{"1", ""}, a.Values(a.Rows[0]))
}

func TestTransitTimes_Lookup(t *testing.T) {
	tt := TransitTimes{}
	tt.Set(" Germany ", "Standard", " 5 ")
	tt.Set("germany", "PREMIUM", "2")

	v, ok := tt.Lookup("GERMANY", " standard")
	assert.True(t, ok)
	assert.Equal(t, "5", v)

	v, ok = tt.Lookup("germany", "premium")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = tt.Lookup("italy", "standard")
	assert.False(t, ok)
	_, ok = tt.Lookup("germany", "express")
	assert.False(t, ok)
}
