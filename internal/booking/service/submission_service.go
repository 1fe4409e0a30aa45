package service

import (
	"context"
	"database/sql"
	"time"

	"karkhana/internal/domain"
	"karkhana/internal/dto"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, b domain.Booking) (uint, error)
	UpdateTotals(ctx context.Context, tx *sql.Tx, id uint, lineTotal, grandTotal float64) error
}

type BookingItemRepository interface {
	Insert(ctx context.Context, tx *sql.Tx, item domain.BookingItem) (uint, error)
}

type SlotHolder interface {
	Acquire(ctx context.Context, makerspace, listingID, date, slotStart string) (string, bool, error)
	Release(ctx context.Context, makerspace, listingID, date, slotStart string) error
}

// SubmissionService persists a built cart as a booking. Machine lines must
// win their slot hold before they are written; lines that lose the hold
// race become per-line failures rather than failing the whole submission.
type SubmissionService struct {
	db          TransactionManager
	bookingRepo BookingRepository
	itemRepo    BookingItemRepository
	holds       SlotHolder
	fees        domain.Surcharges
	logger      *zap.Logger
	txTimeout   time.Duration
}

func NewSubmissionService(
	db TransactionManager,
	bookingRepo BookingRepository,
	itemRepo BookingItemRepository,
	holds SlotHolder,
	fees domain.Surcharges,
	logger *zap.Logger,
	txTimeout time.Duration,
) *SubmissionService {
	return &SubmissionService{
		db:          db,
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		holds:       holds,
		fees:        fees,
		logger:      logger,
		txTimeout:   txTimeout,
	}
}

type heldSlot struct {
	listingID string
	slotStart string
	token     string
}

func (s *SubmissionService) CreateBooking(
	ctx context.Context,
	userID uint,
	makerspaceID uint,
	cart domain.Cart,
	priorFailures []dto.LineFailure,
) (*dto.SubmissionResult, error) {
	date := cart.Date.Format("2006-01-02")

	successes := []dto.LineSuccess{}
	failures := append([]dto.LineFailure{}, priorFailures...)
	var held []heldSlot
	var items []domain.CartItem

	tokens := make(map[string]string)

	for _, item := range cart.Items {
		if item.Kind == domain.KindMachine {
			token, ok, err := s.holds.Acquire(ctx, cart.Makerspace, item.ListingID, date, item.TimeSlot.Start)
			if err != nil {
				s.releaseHolds(ctx, cart.Makerspace, date, held)
				return nil, err
			}
			if !ok {
				failures = append(failures, dto.LineFailure{
					ListingID: item.ListingID,
					Quantity:  item.Quantity,
					Reason:    dto.ReasonSlotHeld,
				})
				s.logger.Warn("slot already held",
					zap.String("listingId", item.ListingID),
					zap.String("date", date),
					zap.String("slotStart", item.TimeSlot.Start))
				continue
			}
			held = append(held, heldSlot{listingID: item.ListingID, slotStart: item.TimeSlot.Start, token: token})
			tokens[item.ListingID] = token
		}

		items = append(items, item)
		successes = append(successes, dto.LineSuccess{ListingID: item.ListingID, Quantity: item.Quantity})
	}

	if len(items) == 0 {
		s.logger.Warn("booking submission failed for every line", zap.Int("failureCount", len(failures)))
		return &dto.SubmissionResult{
			Status:   dto.SubmissionAllFailed,
			Failures: failures,
		}, nil
	}

	result, err := s.persistBooking(ctx, userID, makerspaceID, cart, items, tokens)
	if err != nil {
		// The booking rows are gone with the rollback; the holds are not.
		s.releaseHolds(ctx, cart.Makerspace, date, held)
		return nil, err
	}

	status := dto.SubmissionAllSuccess
	if len(failures) > 0 {
		status = dto.SubmissionPartial
	}

	result.Status = status
	result.Successes = successes
	result.Failures = failures
	return result, nil
}

func (s *SubmissionService) persistBooking(
	ctx context.Context,
	userID uint,
	makerspaceID uint,
	cart domain.Cart,
	items []domain.CartItem,
	tokens map[string]string,
) (*dto.SubmissionResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(txCtx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Rollback after commit is a no-op.
	defer tx.Rollback()

	booking := domain.Booking{
		Reference:    uuid.New().String(),
		UserID:       userID,
		MakerspaceID: makerspaceID,
		Makerspace:   cart.Makerspace,
		Kind:         cart.Kind,
		Date:         cart.Date,
		Status:       domain.BookingStatusPending,
		PaymentKey:   uuid.New().String(),
	}

	bookingID, err := s.bookingRepo.Insert(txCtx, tx, booking)
	if err != nil {
		s.logger.Error("failed to insert booking", zap.Error(err))
		return nil, err
	}

	lineTotal := 0.0
	for _, item := range items {
		var holdToken *string
		if token, ok := tokens[item.ListingID]; ok {
			holdToken = &token
		}

		_, err := s.itemRepo.Insert(txCtx, tx, domain.BookingItem{
			BookingID: bookingID,
			ListingID: item.ListingID,
			Kind:      item.Kind,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			SlotStart: item.TimeSlot.Start,
			SlotEnd:   item.TimeSlot.End,
			HoldToken: holdToken,
		})
		if err != nil {
			s.logger.Error("failed to insert booking item",
				zap.Uint("bookingId", bookingID),
				zap.String("listingId", item.ListingID),
				zap.Error(err))
			return nil, err
		}
		lineTotal += domain.LineTotal(item.UnitPrice, item.Quantity)
	}

	grandTotal := domain.GrandTotal(lineTotal, s.fees)
	if err := s.bookingRepo.UpdateTotals(txCtx, tx, bookingID, lineTotal, grandTotal); err != nil {
		s.logger.Error("failed to update booking totals", zap.Uint("bookingId", bookingID), zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("bookingId", bookingID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Uint("bookingId", bookingID),
		zap.String("reference", booking.Reference),
		zap.Int("itemCount", len(items)),
		zap.Float64("lineTotal", lineTotal))

	return &dto.SubmissionResult{
		BookingID: bookingID,
		Reference: booking.Reference,
		LineTotal: lineTotal,
	}, nil
}

func (s *SubmissionService) releaseHolds(ctx context.Context, makerspace, date string, held []heldSlot) {
	for _, h := range held {
		if err := s.holds.Release(ctx, makerspace, h.listingID, date, h.slotStart); err != nil {
			s.logger.Warn("failed to release slot hold",
				zap.String("listingId", h.listingID),
				zap.Error(err))
		}
	}
}
