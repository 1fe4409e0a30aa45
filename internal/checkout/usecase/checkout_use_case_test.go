package usecase

import (
	"context"
	"errors"
	"testing"

	"karkhana/internal/checkout/gateway"
	"karkhana/internal/domain"
	"karkhana/internal/dto"
	apperrors "karkhana/internal/errors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type mockBookingRepository struct {
	FindByIDFunc         func(ctx context.Context, id uint) (*domain.Booking, error)
	TransitionStatusFunc func(ctx context.Context, id uint, from, to domain.BookingStatus) error
	SetGatewayRefFunc    func(ctx context.Context, id uint, ref string) error
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBookingRepository) TransitionStatus(ctx context.Context, id uint, from, to domain.BookingStatus) error {
	return m.TransitionStatusFunc(ctx, id, from, to)
}

func (m *mockBookingRepository) SetGatewayRef(ctx context.Context, id uint, ref string) error {
	return m.SetGatewayRefFunc(ctx, id, ref)
}

type mockGateway struct {
	ChargeFunc func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error)
}

func (m *mockGateway) Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
	return m.ChargeFunc(ctx, req)
}

type transition struct {
	from domain.BookingStatus
	to   domain.BookingStatus
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:         7,
		Reference:  "ref-7",
		UserID:     42,
		Makerspace: "Banjara Workbench",
		Status:     domain.BookingStatusPending,
		LineTotal:  1155,
		GrandTotal: 1300,
		PaymentKey: "pay-key-7",
	}
}

func recordingRepo(booking *domain.Booking, transitions *[]transition) *mockBookingRepository {
	return &mockBookingRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Booking, error) {
			return booking, nil
		},
		TransitionStatusFunc: func(ctx context.Context, id uint, from, to domain.BookingStatus) error {
			*transitions = append(*transitions, transition{from, to})
			return nil
		},
		SetGatewayRefFunc: func(ctx context.Context, id uint, ref string) error {
			return nil
		},
	}
}

func acceptedRequest() dto.CheckoutRequest {
	return dto.CheckoutRequest{TermsAccepted: true}
}

func TestCheckout_SuccessfulPayment(t *testing.T) {
	booking := pendingBooking()
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	var chargedAmount float64
	var chargedRef string
	pg := &mockGateway{
		ChargeFunc: func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
			chargedAmount = req.Amount
			chargedRef = req.Reference
			return &gateway.ChargeResult{Authorized: true, Reference: "ch_999"}, nil
		},
	}

	uc := NewCheckoutUseCase(repo, pg, domain.DefaultSurcharges(), zap.NewNop())
	outcome, err := uc.Checkout(context.Background(), 7, 42, acceptedRequest())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, outcome.Status)
	assert.Equal(t, "ch_999", outcome.GatewayRef)
	assert.Equal(t, 1300.0, chargedAmount)
	assert.Equal(t, "pay-key-7", chargedRef)
	assert.Equal(t, []transition{
		{domain.BookingStatusPending, domain.BookingStatusProcessing},
		{domain.BookingStatusProcessing, domain.BookingStatusPaid},
		{domain.BookingStatusPaid, domain.BookingStatusConfirmed},
	}, transitions)
}

func TestCheckout_DeclinedCharge(t *testing.T) {
	booking := pendingBooking()
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	pg := &mockGateway{
		ChargeFunc: func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
			return &gateway.ChargeResult{Authorized: false, Reason: "insufficient funds"}, nil
		},
	}

	uc := NewCheckoutUseCase(repo, pg, domain.DefaultSurcharges(), zap.NewNop())
	outcome, err := uc.Checkout(context.Background(), 7, 42, acceptedRequest())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusFailed, outcome.Status)
	assert.Equal(t, "insufficient funds", outcome.FailureReason)
	assert.Equal(t, []transition{
		{domain.BookingStatusPending, domain.BookingStatusProcessing},
		{domain.BookingStatusProcessing, domain.BookingStatusFailed},
	}, transitions)
}

func TestCheckout_GatewayNetworkFailure(t *testing.T) {
	booking := pendingBooking()
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	pg := &mockGateway{
		ChargeFunc: func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
			return nil, apperrors.NewGatewayError("charge request failed", "NETWORK", errors.New("connection refused"))
		},
	}

	uc := NewCheckoutUseCase(repo, pg, domain.DefaultSurcharges(), zap.NewNop())
	outcome, err := uc.Checkout(context.Background(), 7, 42, acceptedRequest())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusFailed, outcome.Status)
	assert.Equal(t, "charge request failed", outcome.FailureReason)
}

func TestCheckout_RetryAfterFailure(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.BookingStatusFailed
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	pg := &mockGateway{
		ChargeFunc: func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
			return &gateway.ChargeResult{Authorized: true, Reference: "ch_retry"}, nil
		},
	}

	uc := NewCheckoutUseCase(repo, pg, domain.DefaultSurcharges(), zap.NewNop())
	outcome, err := uc.Checkout(context.Background(), 7, 42, acceptedRequest())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, outcome.Status)
	assert.Equal(t, transition{domain.BookingStatusFailed, domain.BookingStatusPending}, transitions[0])
}

func TestCheckout_TermsNotAccepted(t *testing.T) {
	booking := pendingBooking()
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	uc := NewCheckoutUseCase(repo, &mockGateway{}, domain.DefaultSurcharges(), zap.NewNop())
	_, err := uc.Checkout(context.Background(), 7, 42, dto.CheckoutRequest{TermsAccepted: false})

	ve, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "termsAccepted", ve.Details[0].Field)
	assert.Empty(t, transitions)
}

func TestCheckout_WrongUser(t *testing.T) {
	booking := pendingBooking()
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	uc := NewCheckoutUseCase(repo, &mockGateway{}, domain.DefaultSurcharges(), zap.NewNop())
	_, err := uc.Checkout(context.Background(), 7, 99, acceptedRequest())

	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Empty(t, transitions)
}

func TestCheckout_AlreadyProcessing(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.BookingStatusProcessing
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	uc := NewCheckoutUseCase(repo, &mockGateway{}, domain.DefaultSurcharges(), zap.NewNop())
	_, err := uc.Checkout(context.Background(), 7, 42, acceptedRequest())

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Empty(t, transitions)
}

func TestCheckout_ConcurrentSubmissionLosesCAS(t *testing.T) {
	booking := pendingBooking()
	repo := &mockBookingRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Booking, error) {
			return booking, nil
		},
		TransitionStatusFunc: func(ctx context.Context, id uint, from, to domain.BookingStatus) error {
			return apperrors.NewConflictError("booking status changed concurrently")
		},
		SetGatewayRefFunc: func(ctx context.Context, id uint, ref string) error {
			return nil
		},
	}

	charged := false
	pg := &mockGateway{
		ChargeFunc: func(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error) {
			charged = true
			return &gateway.ChargeResult{Authorized: true}, nil
		},
	}

	uc := NewCheckoutUseCase(repo, pg, domain.DefaultSurcharges(), zap.NewNop())
	_, err := uc.Checkout(context.Background(), 7, 42, acceptedRequest())

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.False(t, charged)
}

func TestApprove_ConfirmedBooking(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.BookingStatusConfirmed
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	uc := NewCheckoutUseCase(repo, &mockGateway{}, domain.DefaultSurcharges(), zap.NewNop())
	approved, err := uc.Approve(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusApproved, approved.Status)
	assert.Equal(t, []transition{
		{domain.BookingStatusConfirmed, domain.BookingStatusApproved},
	}, transitions)
}

func TestApprove_RejectsUnpaidBooking(t *testing.T) {
	booking := pendingBooking()
	var transitions []transition
	repo := recordingRepo(booking, &transitions)

	uc := NewCheckoutUseCase(repo, &mockGateway{}, domain.DefaultSurcharges(), zap.NewNop())
	_, err := uc.Approve(context.Background(), 7)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Empty(t, transitions)
}
