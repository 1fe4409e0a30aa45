package usecase

import (
	"context"
	"fmt"

	"karkhana/internal/checkout/gateway"
	"karkhana/internal/domain"
	"karkhana/internal/dto"
	apperrors "karkhana/internal/errors"

	"go.uber.org/zap"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Booking, error)
	TransitionStatus(ctx context.Context, id uint, from, to domain.BookingStatus) error
	SetGatewayRef(ctx context.Context, id uint, ref string) error
}

type PaymentGateway interface {
	Charge(ctx context.Context, req gateway.ChargeRequest) (*gateway.ChargeResult, error)
}

type CheckoutUseCase struct {
	bookings BookingRepository
	gateway  PaymentGateway
	fees     domain.Surcharges
	logger   *zap.Logger
}

func NewCheckoutUseCase(bookings BookingRepository, pg PaymentGateway, fees domain.Surcharges, logger *zap.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		bookings: bookings,
		gateway:  pg,
		fees:     fees,
		logger:   logger,
	}
}

// Checkout drives a booking through payment. The status sequence on
// success is PENDING -> PROCESSING -> PAID -> CONFIRMED; a decline or
// transport failure lands in FAILED, from which a retry returns to
// PENDING. Every persisted move is guarded by a compare-and-set, so a
// second concurrent checkout of the same booking loses cleanly.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, bookingID uint, userID uint, req dto.CheckoutRequest) (*dto.CheckoutOutcome, error) {
	logger := uc.logger.With(zap.Uint("bookingId", bookingID))

	booking, err := uc.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID {
		return nil, apperrors.NewForbiddenError("booking belongs to another user")
	}

	if !req.TermsAccepted {
		return nil, apperrors.NewValidationError("terms must be accepted", apperrors.ValidationDetail{
			Field:   "termsAccepted",
			Message: "the terms and conditions must be accepted before payment",
		})
	}

	// A failed checkout recovers to PENDING before the retry.
	if booking.Status == domain.BookingStatusFailed {
		if err := uc.transition(ctx, booking, domain.BookingStatusPending); err != nil {
			return nil, err
		}
	}

	if booking.Status != domain.BookingStatusPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("booking is in status %s, not awaiting payment", booking.Status))
	}

	if err := uc.transition(ctx, booking, domain.BookingStatusProcessing); err != nil {
		return nil, err
	}

	result, err := uc.gateway.Charge(ctx, gateway.ChargeRequest{
		Amount:      booking.GrandTotal,
		Currency:    "INR",
		Reference:   booking.PaymentKey,
		Description: fmt.Sprintf("booking %s at %s", booking.Reference, booking.Makerspace),
	})
	if err != nil {
		ge, _ := apperrors.IsGatewayError(err)
		reason := "payment failed"
		if ge != nil {
			reason = ge.Message
		}
		logger.Warn("charge failed", zap.Error(err))
		if terr := uc.transition(ctx, booking, domain.BookingStatusFailed); terr != nil {
			return nil, terr
		}
		return &dto.CheckoutOutcome{
			Booking:       booking,
			Status:        domain.BookingStatusFailed,
			FailureReason: reason,
		}, nil
	}

	if !result.Authorized {
		logger.Warn("charge declined", zap.String("reason", result.Reason))
		if terr := uc.transition(ctx, booking, domain.BookingStatusFailed); terr != nil {
			return nil, terr
		}
		return &dto.CheckoutOutcome{
			Booking:       booking,
			Status:        domain.BookingStatusFailed,
			FailureReason: result.Reason,
		}, nil
	}

	if err := uc.transition(ctx, booking, domain.BookingStatusPaid); err != nil {
		return nil, err
	}

	if err := uc.bookings.SetGatewayRef(ctx, booking.ID, result.Reference); err != nil {
		logger.Warn("failed to store gateway reference", zap.Error(err))
	}

	// Payment settled: the booking request goes to the makerspace operator
	// for approval.
	if err := uc.transition(ctx, booking, domain.BookingStatusConfirmed); err != nil {
		return nil, err
	}

	logger.Info("checkout completed",
		zap.String("reference", booking.Reference),
		zap.String("gatewayRef", result.Reference),
		zap.Float64("grandTotal", booking.GrandTotal))

	return &dto.CheckoutOutcome{
		Booking:    booking,
		Status:     domain.BookingStatusConfirmed,
		GatewayRef: result.Reference,
	}, nil
}

// Approve records the makerspace operator's decision on a confirmed
// booking request.
func (uc *CheckoutUseCase) Approve(ctx context.Context, bookingID uint) (*domain.Booking, error) {
	booking, err := uc.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status != domain.BookingStatusConfirmed {
		return nil, apperrors.NewConflictError(fmt.Sprintf("booking is in status %s, not awaiting approval", booking.Status))
	}

	if err := uc.transition(ctx, booking, domain.BookingStatusApproved); err != nil {
		return nil, err
	}

	uc.logger.Info("booking approved", zap.Uint("bookingId", bookingID), zap.String("reference", booking.Reference))
	return booking, nil
}

// Fees exposes the configured surcharges for the checkout response.
func (uc *CheckoutUseCase) Fees() domain.Surcharges {
	return uc.fees
}

func (uc *CheckoutUseCase) transition(ctx context.Context, booking *domain.Booking, to domain.BookingStatus) error {
	if !booking.Status.CanTransitionTo(to) {
		return apperrors.NewConflictError(fmt.Sprintf("cannot move booking from %s to %s", booking.Status, to))
	}

	if err := uc.bookings.TransitionStatus(ctx, booking.ID, booking.Status, to); err != nil {
		return err
	}

	booking.Status = to
	return nil
}
