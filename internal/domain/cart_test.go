package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testDate() time.Time {
	return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
}

func TestBuildCart_CollectsPositiveQuantities(t *testing.T) {
	listings := []Listing{
		{ID: "laser-cutter", Kind: KindMachine, Name: "Laser Cutter", UnitPrice: 500, Makerspace: "Banjara Workbench"},
		{ID: "cnc-router", Kind: KindMachine, Name: "CNC Router", UnitPrice: 350, Makerspace: "Banjara Workbench"},
		{ID: "3d-printer", Kind: KindMachine, Name: "3D Printer", UnitPrice: 155, Makerspace: "Banjara Workbench"},
	}

	sel := NewSelection()
	sel.Set(listings[0], 2)
	sel.Set(listings[1], 0)
	sel.Set(listings[2], 1)

	cart := BuildCart(KindMachine, listings, sel, testDate())

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "laser-cutter", cart.Items[0].ListingID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "3d-printer", cart.Items[1].ListingID)
	assert.Equal(t, 1, cart.Items[1].Quantity)
	assert.Equal(t, "Banjara Workbench", cart.Makerspace)
	assert.Equal(t, testDate(), cart.Date)
}

func TestBuildCart_SkipsOtherKinds(t *testing.T) {
	listings := []Listing{
		{ID: "laser-cutter", Kind: KindMachine, UnitPrice: 500},
		{ID: "soldering-workshop", Kind: KindEvent, UnitPrice: 300},
	}

	sel := NewSelection()
	sel.Set(listings[0], 1)
	sel.Set(listings[1], 1)

	machineCart := BuildCart(KindMachine, listings, sel, testDate())
	assert.Len(t, machineCart.Items, 1)
	assert.Equal(t, "laser-cutter", machineCart.Items[0].ListingID)

	eventCart := BuildCart(KindEvent, listings, sel, testDate())
	assert.Len(t, eventCart.Items, 1)
	assert.Equal(t, "soldering-workshop", eventCart.Items[0].ListingID)
}

func TestBuildCart_EmptySelection(t *testing.T) {
	listings := []Listing{
		{ID: "laser-cutter", Kind: KindMachine, UnitPrice: 500},
	}

	cart := BuildCart(KindMachine, listings, NewSelection(), testDate())
	assert.Empty(t, cart.Items)
	assert.Equal(t, "", cart.Makerspace)
}

func TestBuildCart_CarriesDisplayMetadata(t *testing.T) {
	inCharge := "Ravi"
	experts := "Ravi, Meera"
	listings := []Listing{
		{
			ID:             "laser-cutter",
			Kind:           KindMachine,
			Name:           "Laser Cutter",
			UnitPrice:      500,
			Makerspace:     "Banjara Workbench",
			Specifications: map[string]string{"bed": "600x400mm"},
			ImageURL:       "https://cdn.example.com/laser.jpg",
			Location:       "Bay 2",
			TimeSlot:       TimeSlot{Start: "10:00", End: "18:00"},
			InCharge:       &inCharge,
			Experts:        &experts,
		},
	}

	sel := NewSeededSelection("laser-cutter")
	cart := BuildCart(KindMachine, listings, sel, testDate())

	assert.Len(t, cart.Items, 1)
	item := cart.Items[0]
	assert.Equal(t, "Laser Cutter", item.Name)
	assert.Equal(t, map[string]string{"bed": "600x400mm"}, item.Specifications)
	assert.Equal(t, "https://cdn.example.com/laser.jpg", item.ImageURL)
	assert.Equal(t, "Bay 2", item.Location)
	assert.Equal(t, TimeSlot{Start: "10:00", End: "18:00"}, item.TimeSlot)
	assert.Equal(t, &inCharge, item.InCharge)
	assert.Equal(t, &experts, item.Experts)
}

func TestBuildCart_RebuildDropsStaleLines(t *testing.T) {
	listings := []Listing{
		{ID: "laser-cutter", Kind: KindMachine, UnitPrice: 500},
		{ID: "cnc-router", Kind: KindMachine, UnitPrice: 350},
	}

	sel := NewSelection()
	sel.Set(listings[0], 2)
	sel.Set(listings[1], 1)
	first := BuildCart(KindMachine, listings, sel, testDate())
	assert.Len(t, first.Items, 2)

	sel.Set(listings[1], 0)
	second := BuildCart(KindMachine, listings, sel, testDate())
	assert.Len(t, second.Items, 1)
	assert.Equal(t, "laser-cutter", second.Items[0].ListingID)
}
