package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"karkhana/internal/domain"
	"karkhana/internal/errors"

	"github.com/google/uuid"
)

type MySQLListingRepository struct {
	db *sql.DB
}

func NewMySQLListingRepository(db *sql.DB) *MySQLListingRepository {
	return &MySQLListingRepository{db: db}
}

const listingColumns = `l.id, l.makerspaceId, m.name, l.kind, l.name, l.description, l.unitPrice,
	       l.ticketLimit, l.slotStart, l.slotEnd, l.category, l.specifications,
	       l.imageUrl, l.location, l.inCharge, l.experts, l.isActive, l.createdAt, l.updatedAt`

func (r *MySQLListingRepository) FindByFilter(ctx context.Context, kind domain.ListingKind, makerspace, city, category string) ([]domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM Listings l
		JOIN Makerspaces m ON m.id = l.makerspaceId
		WHERE l.kind = ?`, listingColumns)
	args := []interface{}{string(kind)}

	if makerspace != "" {
		query += " AND m.name = ?"
		args = append(args, makerspace)
	}
	if city != "" {
		query += " AND m.city = ?"
		args = append(args, city)
	}
	if category != "" {
		query += " AND l.category = ?"
		args = append(args, category)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func (r *MySQLListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM Listings l
		JOIN Makerspaces m ON m.id = l.makerspaceId
		WHERE l.id = ?`, listingColumns)

	listing, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("listing %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing by id: %w", err)
	}

	return listing, nil
}

func (r *MySQLListingRepository) FindByIDs(ctx context.Context, ids []string, makerspace string) ([]domain.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+1)
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, makerspace)

	query := fmt.Sprintf(`
		SELECT %s
		FROM Listings l
		JOIN Makerspaces m ON m.id = l.makerspaceId
		WHERE l.id IN (%s)
		  AND m.name = ?`,
		listingColumns, strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings by ids: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func (r *MySQLListingRepository) Insert(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	specs, err := json.Marshal(l.Specifications)
	if err != nil {
		return nil, fmt.Errorf("marshaling specifications: %w", err)
	}

	query := `
		INSERT INTO Listings (id, makerspaceId, kind, name, description, unitPrice,
		                      ticketLimit, slotStart, slotEnd, category, specifications,
		                      imageUrl, location, inCharge, experts, isActive)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		l.ID, l.MakerspaceID, string(l.Kind), l.Name, l.Description, l.UnitPrice,
		l.TicketLimit, l.TimeSlot.Start, l.TimeSlot.End, l.Category, specs,
		l.ImageURL, l.Location, l.InCharge, l.Experts, l.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting listing: %w", err)
	}

	return r.FindByID(ctx, l.ID)
}

func (r *MySQLListingRepository) Update(ctx context.Context, l domain.Listing) error {
	specs, err := json.Marshal(l.Specifications)
	if err != nil {
		return fmt.Errorf("marshaling specifications: %w", err)
	}

	query := `
		UPDATE Listings
		SET name = ?, description = ?, unitPrice = ?, ticketLimit = ?,
		    slotStart = ?, slotEnd = ?, category = ?, specifications = ?,
		    imageUrl = ?, location = ?, inCharge = ?, experts = ?, isActive = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		l.Name, l.Description, l.UnitPrice, l.TicketLimit,
		l.TimeSlot.Start, l.TimeSlot.End, l.Category, specs,
		l.ImageURL, l.Location, l.InCharge, l.Experts, l.IsActive,
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("updating listing: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("listing %s not found", l.ID))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var l domain.Listing
	var specs []byte

	err := row.Scan(
		&l.ID, &l.MakerspaceID, &l.Makerspace, &l.Kind, &l.Name, &l.Description, &l.UnitPrice,
		&l.TicketLimit, &l.TimeSlot.Start, &l.TimeSlot.End, &l.Category, &specs,
		&l.ImageURL, &l.Location, &l.InCharge, &l.Experts, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(specs) > 0 {
		if err := json.Unmarshal(specs, &l.Specifications); err != nil {
			return nil, fmt.Errorf("unmarshaling specifications: %w", err)
		}
	}

	return &l, nil
}

func scanListings(rows *sql.Rows) ([]domain.Listing, error) {
	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing row: %w", err)
		}
		listings = append(listings, *l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listing rows: %w", err)
	}

	return listings, nil
}
