package domain

import "time"

type ListingKind string

const (
	KindMachine ListingKind = "MACHINE"
	KindEvent   ListingKind = "EVENT"
)

type TimeSlot struct {
	Start string
	End   string
}

type Listing struct {
	ID             string
	MakerspaceID   uint
	Makerspace     string
	Kind           ListingKind
	Name           string
	Description    string
	UnitPrice      float64
	TicketLimit    *int
	TimeSlot       TimeSlot
	Category       string
	Specifications map[string]string
	ImageURL       string
	Location       string
	InCharge       *string
	Experts        *string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CapacityFor returns the maximum quantity purchasable in one order.
// Machines have no client-side cap.
func (l Listing) CapacityFor() (int, bool) {
	if l.Kind != KindEvent || l.TicketLimit == nil {
		return 0, false
	}
	return *l.TicketLimit, true
}
