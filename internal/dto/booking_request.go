package dto

type SubmitBookingRequest struct {
	Makerspace    string               `json:"makerspace"`
	Kind          string               `json:"kind"`
	Date          string               `json:"date"`
	PreselectedID string               `json:"preselectedId,omitempty"`
	Items         []BookingItemRequest `json:"items"`
}

type BookingItemRequest struct {
	ListingID string `json:"listingId"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	TermsAccepted bool `json:"termsAccepted"`
}
