package dto

import "time"

type SubmitBookingResponse struct {
	TraceID    string           `json:"traceId"`
	BookingID  uint             `json:"bookingId"`
	Reference  string           `json:"reference"`
	Status     string           `json:"status"`
	LineTotal  float64          `json:"lineTotal"`
	AddedItems []string         `json:"addedItems"`
	Successes  []LineSuccessDTO `json:"successes"`
	Failures   []LineFailureDTO `json:"failures"`
	Timestamp  time.Time        `json:"timestamp"`
}

type LineSuccessDTO struct {
	ListingID string `json:"listingId"`
	Quantity  int    `json:"quantity"`
}

type LineFailureDTO struct {
	ListingID string `json:"listingId"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

type BookingItemDTO struct {
	ListingID string  `json:"listingId"`
	Kind      string  `json:"kind"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	SlotStart string  `json:"slotStart"`
	SlotEnd   string  `json:"slotEnd"`
}

type BookingResponse struct {
	TraceID     string           `json:"traceId"`
	BookingID   uint             `json:"bookingId"`
	Reference   string           `json:"reference"`
	Makerspace  string           `json:"makerspace"`
	Kind        string           `json:"kind"`
	Date        string           `json:"date"`
	Status      string           `json:"status"`
	Items       []BookingItemDTO `json:"items"`
	LineTotal   float64          `json:"lineTotal"`
	Taxes       float64          `json:"taxes"`
	PlatformFee float64          `json:"platformFee"`
	Insurance   float64          `json:"insurance"`
	GrandTotal  float64          `json:"grandTotal"`
	Timestamp   time.Time        `json:"timestamp"`
}

type CheckoutResponse struct {
	TraceID       string    `json:"traceId"`
	BookingID     uint      `json:"bookingId"`
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	LineTotal     float64   `json:"lineTotal"`
	Taxes         float64   `json:"taxes"`
	PlatformFee   float64   `json:"platformFee"`
	Insurance     float64   `json:"insurance"`
	GrandTotal    float64   `json:"grandTotal"`
	GatewayRef    string    `json:"gatewayRef,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type BookingErrorResponse struct {
	TraceID   string               `json:"traceId"`
	Status    int                  `json:"status"`
	Message   string               `json:"message"`
	Code      string               `json:"code"`
	BookingID uint                 `json:"bookingId,omitempty"`
	Details   *BookingErrorDetails `json:"details,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

type BookingErrorDetails struct {
	Failures []LineFailureDTO `json:"failures"`
}
