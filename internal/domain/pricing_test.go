package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSurcharges(t *testing.T) {
	s := DefaultSurcharges()
	assert.Equal(t, 90.0, s.Taxes)
	assert.Equal(t, 5.0, s.PlatformFee)
	assert.Equal(t, 50.0, s.Insurance)
	assert.Equal(t, 145.0, s.Sum())
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 1500.0, LineTotal(500, 3))
	assert.Equal(t, 0.0, LineTotal(500, 0))
}

func TestCartTotal_SumsLines(t *testing.T) {
	items := []CartItem{
		{UnitPrice: 200, Quantity: 2},
		{UnitPrice: 350, Quantity: 1},
	}
	assert.Equal(t, 750.0, CartTotal(items))
}

func TestCartTotal_EmptyCart(t *testing.T) {
	assert.Equal(t, 0.0, CartTotal(nil))
}

// Two units at 500 plus one at 155 gives a line total of 1155; adding the
// flat surcharges lands on a payable amount of 1300.
func TestGrandTotal_MachineBooking(t *testing.T) {
	items := []CartItem{
		{UnitPrice: 500, Quantity: 2},
		{UnitPrice: 155, Quantity: 1},
	}
	lineTotal := CartTotal(items)
	assert.Equal(t, 1155.0, lineTotal)
	assert.Equal(t, 1300.0, GrandTotal(lineTotal, DefaultSurcharges()))
}

// A single ticket at 500 comes out to 645 payable.
func TestGrandTotal_SingleTicket(t *testing.T) {
	lineTotal := LineTotal(500, 1)
	assert.Equal(t, 645.0, GrandTotal(lineTotal, DefaultSurcharges()))
}

func TestGrandTotal_EmptyCartStillCarriesSurcharges(t *testing.T) {
	assert.Equal(t, 145.0, GrandTotal(0, DefaultSurcharges()))
}
