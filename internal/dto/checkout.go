package dto

import "karkhana/internal/domain"

type CheckoutOutcome struct {
	Booking       *domain.Booking
	Status        domain.BookingStatus
	GatewayRef    string
	FailureReason string
}
