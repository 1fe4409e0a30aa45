package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusProcessing BookingStatus = "PROCESSING"
	BookingStatusFailed     BookingStatus = "FAILED"
	BookingStatusPaid       BookingStatus = "PAID"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusApproved   BookingStatus = "APPROVED"
)

// bookingTransitions encodes the checkout state machine. Forward
// transitions are irreversible except FAILED, which returns to PENDING so
// the user can retry after a declined or timed-out charge.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusProcessing},
	BookingStatusProcessing: {BookingStatusPaid, BookingStatusFailed},
	BookingStatusFailed:     {BookingStatusPending},
	BookingStatusPaid:       {BookingStatusConfirmed},
	BookingStatusConfirmed:  {BookingStatusApproved},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type Booking struct {
	ID           uint
	Reference    string
	UserID       uint
	MakerspaceID uint
	Makerspace   string
	Kind         ListingKind
	Date         time.Time
	Status       BookingStatus
	LineTotal    float64
	GrandTotal   float64
	PaymentKey   string
	GatewayRef   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BookingItem struct {
	ID        uint
	BookingID uint
	ListingID string
	Kind      ListingKind
	Name      string
	UnitPrice float64
	Quantity  int
	SlotStart string
	SlotEnd   string
	HoldToken *string
}
