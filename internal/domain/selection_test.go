package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func machineListing(id string) Listing {
	return Listing{ID: id, Kind: KindMachine, IsActive: true}
}

func eventListing(id string, limit int) Listing {
	return Listing{ID: id, Kind: KindEvent, TicketLimit: &limit, IsActive: true}
}

func TestSelection_StartsEmpty(t *testing.T) {
	sel := NewSelection()
	assert.Equal(t, 0, sel.Quantity("laser-cutter"))
}

func TestSelection_SeededStartsAtOne(t *testing.T) {
	sel := NewSeededSelection("laser-cutter")
	assert.Equal(t, 1, sel.Quantity("laser-cutter"))
	assert.Equal(t, 0, sel.Quantity("cnc-router"))
}

func TestSelection_SeededWithEmptyIDStaysEmpty(t *testing.T) {
	sel := NewSeededSelection("")
	assert.Equal(t, 0, sel.Quantity(""))
}

func TestSelection_IncrementAccumulates(t *testing.T) {
	sel := NewSelection()
	m := machineListing("laser-cutter")

	assert.True(t, sel.Increment(m))
	assert.True(t, sel.Increment(m))
	assert.Equal(t, 2, sel.Quantity(m.ID))
}

func TestSelection_IncrementUnboundedForMachines(t *testing.T) {
	sel := NewSelection()
	m := machineListing("3d-printer")

	for i := 0; i < 500; i++ {
		assert.True(t, sel.Increment(m))
	}
	assert.Equal(t, 500, sel.Quantity(m.ID))
}

func TestSelection_IncrementStopsAtTicketLimit(t *testing.T) {
	sel := NewSelection()
	ev := eventListing("soldering-workshop", 3)

	assert.True(t, sel.Increment(ev))
	assert.True(t, sel.Increment(ev))
	assert.True(t, sel.Increment(ev))
	assert.False(t, sel.Increment(ev))
	assert.Equal(t, 3, sel.Quantity(ev.ID))
}

func TestSelection_DecrementFloorsAtZero(t *testing.T) {
	sel := NewSelection()
	m := machineListing("laser-cutter")

	sel.Decrement(m.ID)
	assert.Equal(t, 0, sel.Quantity(m.ID))

	sel.Increment(m)
	sel.Decrement(m.ID)
	sel.Decrement(m.ID)
	assert.Equal(t, 0, sel.Quantity(m.ID))
}

func TestSelection_SetRejectsNegative(t *testing.T) {
	sel := NewSelection()
	m := machineListing("laser-cutter")

	assert.False(t, sel.Set(m, -1))
	assert.Equal(t, 0, sel.Quantity(m.ID))
}

func TestSelection_SetRejectsOverTicketLimit(t *testing.T) {
	sel := NewSelection()
	ev := eventListing("soldering-workshop", 5)

	assert.False(t, sel.Set(ev, 6))
	assert.Equal(t, 0, sel.Quantity(ev.ID))

	assert.True(t, sel.Set(ev, 5))
	assert.Equal(t, 5, sel.Quantity(ev.ID))
}

func TestSelection_SetZeroClearsListing(t *testing.T) {
	sel := NewSelection()
	m := machineListing("laser-cutter")

	sel.Increment(m)
	assert.True(t, sel.Set(m, 0))
	assert.Equal(t, 0, sel.Quantity(m.ID))
}

func TestSelection_IndependentPerListing(t *testing.T) {
	sel := NewSelection()
	a := machineListing("laser-cutter")
	b := machineListing("cnc-router")

	sel.Increment(a)
	sel.Increment(a)
	sel.Increment(b)

	assert.Equal(t, 2, sel.Quantity(a.ID))
	assert.Equal(t, 1, sel.Quantity(b.ID))
}
