package domain

// Surcharges are the flat checkout add-ons applied on top of the line
// total. Flat amounts, not percentages.
type Surcharges struct {
	Taxes       float64
	PlatformFee float64
	Insurance   float64
}

func DefaultSurcharges() Surcharges {
	return Surcharges{Taxes: 90, PlatformFee: 5, Insurance: 50}
}

func (s Surcharges) Sum() float64 {
	return s.Taxes + s.PlatformFee + s.Insurance
}

// LineTotal is unit price times quantity for a single line.
func LineTotal(unitPrice float64, quantity int) float64 {
	return unitPrice * float64(quantity)
}

// CartTotal sums line totals across the cart.
func CartTotal(items []CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += LineTotal(item.UnitPrice, item.Quantity)
	}
	return total
}

// GrandTotal is the payable amount at checkout: line total plus the flat
// surcharges.
func GrandTotal(lineTotal float64, s Surcharges) float64 {
	return lineTotal + s.Sum()
}
