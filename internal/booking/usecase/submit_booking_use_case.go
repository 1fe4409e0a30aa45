package usecase

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"

	"karkhana/internal/domain"
	"karkhana/internal/dto"
	apperrors "karkhana/internal/errors"

	"go.uber.org/zap"
)

type CartPersister interface {
	CreateBooking(
		ctx context.Context,
		userID uint,
		makerspaceID uint,
		cart domain.Cart,
		priorFailures []dto.LineFailure,
	) (*dto.SubmissionResult, error)
}

type ListingFinder interface {
	FindByIDs(ctx context.Context, ids []string, makerspace string) ([]domain.Listing, error)
}

type MakerspaceFinder interface {
	FindByName(ctx context.Context, name string) (*domain.Makerspace, error)
}

type BookingReader interface {
	FindByID(ctx context.Context, id uint) (*domain.Booking, error)
}

type BookingItemReader interface {
	FindByBookingID(ctx context.Context, bookingID uint) ([]domain.BookingItem, error)
}

type SubmitBookingUseCase struct {
	makerspaces      MakerspaceFinder
	listings         ListingFinder
	bookings         BookingReader
	bookingItems     BookingItemReader
	submission       CartPersister
	fees             domain.Surcharges
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewSubmitBookingUseCase(
	makerspaces MakerspaceFinder,
	listings ListingFinder,
	bookings BookingReader,
	bookingItems BookingItemReader,
	submission CartPersister,
	fees domain.Surcharges,
	logger *zap.Logger,
	maxRetryAttempts int,
) *SubmitBookingUseCase {
	return &SubmitBookingUseCase{
		makerspaces:      makerspaces,
		listings:         listings,
		bookings:         bookings,
		bookingItems:     bookingItems,
		submission:       submission,
		fees:             fees,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

// Submit turns the requested selection into a booking. The cart is rebuilt
// from scratch on every call, so a submission can only ever carry one
// listing kind.
func (uc *SubmitBookingUseCase) Submit(
	ctx context.Context,
	userID uint,
	kind domain.ListingKind,
	makerspace string,
	date time.Time,
	items []dto.SubmissionItem,
	preselectedID string,
) (*dto.SubmissionResult, error) {
	uc.logger.Info("booking submission started",
		zap.Uint("userId", userID),
		zap.String("makerspace", makerspace),
		zap.String("kind", string(kind)),
		zap.Int("itemCount", len(items)))

	ms, err := uc.makerspaces.FindByName(ctx, makerspace)
	if err != nil {
		return nil, err
	}

	// A deep link carries only the referenced listing: seed it at 1.
	if len(items) == 0 && preselectedID != "" {
		items = []dto.SubmissionItem{{ListingID: preselectedID, Quantity: 1}}
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ListingID)
	}
	sort.Strings(ids)

	found, err := uc.listings.FindByIDs(ctx, ids, makerspace)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}

	sel := domain.NewSelection()
	var failures []dto.LineFailure
	var listable []domain.Listing

	for _, item := range items {
		listing, ok := byID[item.ListingID]
		if !ok {
			failures = append(failures, dto.LineFailure{
				ListingID: item.ListingID, Quantity: item.Quantity, Reason: dto.ReasonNotFound,
			})
			continue
		}
		if !listing.IsActive {
			failures = append(failures, dto.LineFailure{
				ListingID: item.ListingID, Quantity: item.Quantity, Reason: dto.ReasonListingInactive,
			})
			continue
		}
		if listing.Kind != kind {
			failures = append(failures, dto.LineFailure{
				ListingID: item.ListingID, Quantity: item.Quantity, Reason: dto.ReasonKindMismatch,
			})
			continue
		}
		if item.Quantity <= 0 {
			failures = append(failures, dto.LineFailure{
				ListingID: item.ListingID, Quantity: item.Quantity, Reason: dto.ReasonInvalidQuantity,
			})
			continue
		}
		if !sel.Set(listing, item.Quantity) {
			failures = append(failures, dto.LineFailure{
				ListingID: item.ListingID, Quantity: item.Quantity, Reason: dto.ReasonTicketLimitExceeded,
			})
			continue
		}
		listable = append(listable, listing)
	}

	cart := domain.BuildCart(kind, listable, sel, date)
	if cart.Makerspace == "" {
		cart.Makerspace = ms.Name
	}

	if len(cart.Items) == 0 {
		return &dto.SubmissionResult{
			Status:   dto.SubmissionAllFailed,
			Failures: failures,
		}, nil
	}

	// Stable ordering keeps concurrent submissions from interleaving
	// their row inserts in opposite orders.
	sort.Slice(cart.Items, func(i, j int) bool { return cart.Items[i].ListingID < cart.Items[j].ListingID })

	return uc.submitWithRetry(ctx, userID, ms.ID, cart, failures)
}

func (uc *SubmitBookingUseCase) submitWithRetry(
	ctx context.Context,
	userID uint,
	makerspaceID uint,
	cart domain.Cart,
	failures []dto.LineFailure,
) (*dto.SubmissionResult, error) {
	maxAttempts := uc.maxRetryAttempts
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := uc.submission.CreateBooking(ctx, userID, makerspaceID, cart, failures)
		if err == nil {
			return result, nil
		}

		if isDeadlockError(err) {
			if attempt < maxAttempts {
				base := backoffs[(attempt-1)%len(backoffs)]
				jitter := time.Duration(float64(base) * (0.8 + rand.Float64()*0.4))
				time.Sleep(jitter)
				uc.logger.Warn("deadlock detected, retrying",
					zap.Int("attempt", attempt),
					zap.Int("maxAttempts", maxAttempts))
				continue
			}
			break
		}

		return nil, err
	}

	return nil, apperrors.NewDeadlockError("max retries exceeded")
}

// GetBooking returns a booking with its items and pricing breakdown,
// restricted to the booking's owner.
func (uc *SubmitBookingUseCase) GetBooking(ctx context.Context, bookingID uint, userID uint) (*domain.Booking, []domain.BookingItem, error) {
	booking, err := uc.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	if booking.UserID != userID {
		return nil, nil, apperrors.NewForbiddenError("booking belongs to another user")
	}

	items, err := uc.bookingItems.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	return booking, items, nil
}

// Fees exposes the configured surcharges so the controller can render the
// same breakdown the checkout will charge.
func (uc *SubmitBookingUseCase) Fees() domain.Surcharges {
	return uc.fees
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
