package domain

import "time"

type CartItem struct {
	ListingID      string
	Kind           ListingKind
	Name           string
	UnitPrice      float64
	Quantity       int
	Specifications map[string]string
	ImageURL       string
	Location       string
	TimeSlot       TimeSlot
	InCharge       *string
	Experts        *string
	Makerspace     string
}

type Cart struct {
	Kind       ListingKind
	Makerspace string
	Date       time.Time
	Items      []CartItem
}

// BuildCart rebuilds the cart from scratch for one listing kind: every
// listing of that kind with a positive selected quantity becomes a line
// item carrying its full display metadata. A single date applies to the
// whole cart. Because the cart is rebuilt on every submission, a cart can
// only ever hold one kind.
func BuildCart(kind ListingKind, listings []Listing, sel *Selection, date time.Time) Cart {
	cart := Cart{Kind: kind, Date: date}

	for _, l := range listings {
		if l.Kind != kind {
			continue
		}
		qty := sel.Quantity(l.ID)
		if qty <= 0 {
			continue
		}
		cart.Makerspace = l.Makerspace
		cart.Items = append(cart.Items, CartItem{
			ListingID:      l.ID,
			Kind:           l.Kind,
			Name:           l.Name,
			UnitPrice:      l.UnitPrice,
			Quantity:       qty,
			Specifications: l.Specifications,
			ImageURL:       l.ImageURL,
			Location:       l.Location,
			TimeSlot:       l.TimeSlot,
			InCharge:       l.InCharge,
			Experts:        l.Experts,
			Makerspace:     l.Makerspace,
		})
	}

	return cart
}
