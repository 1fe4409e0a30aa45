package domain

// Selection holds the per-listing quantities chosen before a booking is
// submitted. Quantities never go below zero, and event listings are capped
// at their ticket limit.
type Selection struct {
	quantities map[string]int
}

func NewSelection() *Selection {
	return &Selection{quantities: make(map[string]int)}
}

// NewSeededSelection pre-selects one listing at quantity 1, matching the
// deep-link behavior where a booking page is opened for a specific machine
// or event.
func NewSeededSelection(listingID string) *Selection {
	s := NewSelection()
	if listingID != "" {
		s.quantities[listingID] = 1
	}
	return s
}

func (s *Selection) Quantity(listingID string) int {
	return s.quantities[listingID]
}

// Increment raises the quantity for the listing by one. For event listings
// at their ticket limit the call is a no-op and returns false.
func (s *Selection) Increment(l Listing) bool {
	if limit, capped := l.CapacityFor(); capped && s.quantities[l.ID] >= limit {
		return false
	}
	s.quantities[l.ID]++
	return true
}

// Decrement lowers the quantity by one, flooring at zero.
func (s *Selection) Decrement(listingID string) {
	if s.quantities[listingID] > 0 {
		s.quantities[listingID]--
	}
}

// Set assigns a quantity directly, subject to the same floor and capacity
// rules as repeated increments. Used when a submission carries explicit
// quantities rather than a click sequence.
func (s *Selection) Set(l Listing, quantity int) bool {
	if quantity < 0 {
		return false
	}
	if limit, capped := l.CapacityFor(); capped && quantity > limit {
		return false
	}
	s.quantities[l.ID] = quantity
	return true
}
