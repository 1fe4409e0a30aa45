package dto

type SubmissionStatus string

const (
	SubmissionAllSuccess SubmissionStatus = "ALL_SUCCESS"
	SubmissionPartial    SubmissionStatus = "PARTIAL"
	SubmissionAllFailed  SubmissionStatus = "ALL_FAILED"
)

type FailureReason string

const (
	ReasonNotFound            FailureReason = "NOT_FOUND"
	ReasonListingInactive     FailureReason = "LISTING_INACTIVE"
	ReasonKindMismatch        FailureReason = "KIND_MISMATCH"
	ReasonInvalidQuantity     FailureReason = "INVALID_QUANTITY"
	ReasonTicketLimitExceeded FailureReason = "TICKET_LIMIT_EXCEEDED"
	ReasonSlotHeld            FailureReason = "SLOT_HELD"
)

type LineSuccess struct {
	ListingID string
	Quantity  int
}

type LineFailure struct {
	ListingID string
	Quantity  int
	Reason    FailureReason
}

type SubmissionResult struct {
	Status    SubmissionStatus
	BookingID uint
	Reference string
	LineTotal float64
	Successes []LineSuccess
	Failures  []LineFailure
}

type SubmissionItem struct {
	ListingID string
	Quantity  int
}
