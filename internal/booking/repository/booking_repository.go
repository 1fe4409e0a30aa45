package repository

import (
	"context"
	"database/sql"
	"fmt"

	"karkhana/internal/domain"
	"karkhana/internal/errors"
)

type MySQLBookingRepository struct {
	db *sql.DB
}

func NewMySQLBookingRepository(db *sql.DB) *MySQLBookingRepository {
	return &MySQLBookingRepository{db: db}
}

func (r *MySQLBookingRepository) Insert(ctx context.Context, tx *sql.Tx, b domain.Booking) (uint, error) {
	query := `
		INSERT INTO Bookings (reference, userId, makerspaceId, makerspace, kind, bookingDate,
		                      status, lineTotal, grandTotal, paymentKey)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		b.Reference, b.UserID, b.MakerspaceID, b.Makerspace, string(b.Kind),
		b.Date.Format("2006-01-02"), string(b.Status), b.LineTotal, b.GrandTotal, b.PaymentKey,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting booking: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLBookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	query := `
		SELECT id, reference, userId, makerspaceId, makerspace, kind, bookingDate,
		       status, lineTotal, grandTotal, paymentKey, gatewayRef, createdAt, updatedAt
		FROM Bookings
		WHERE id = ?
	`

	var b domain.Booking
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Reference, &b.UserID, &b.MakerspaceID, &b.Makerspace, &b.Kind, &b.Date,
		&b.Status, &b.LineTotal, &b.GrandTotal, &b.PaymentKey, &b.GatewayRef,
		&b.CreatedAt, &b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying booking by id: %w", err)
	}

	return &b, nil
}

// TransitionStatus moves a booking between statuses with a compare-and-set
// on the current status, so two concurrent checkout calls cannot both win
// the PENDING -> PROCESSING transition.
func (r *MySQLBookingRepository) TransitionStatus(ctx context.Context, id uint, from, to domain.BookingStatus) error {
	query := `UPDATE Bookings SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("transitioning booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewConflictError(fmt.Sprintf("booking %d is not in status %s", id, from))
	}

	return nil
}

func (r *MySQLBookingRepository) UpdateTotals(ctx context.Context, tx *sql.Tx, id uint, lineTotal, grandTotal float64) error {
	query := `UPDATE Bookings SET lineTotal = ?, grandTotal = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, lineTotal, grandTotal, id)
	if err != nil {
		return fmt.Errorf("updating booking totals: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("booking with id %d not found", id))
	}

	return nil
}

func (r *MySQLBookingRepository) SetGatewayRef(ctx context.Context, id uint, ref string) error {
	query := `UPDATE Bookings SET gatewayRef = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, ref, id); err != nil {
		return fmt.Errorf("setting gateway reference: %w", err)
	}
	return nil
}
