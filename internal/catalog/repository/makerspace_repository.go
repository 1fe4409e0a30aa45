package repository

import (
	"context"
	"database/sql"
	"fmt"

	"karkhana/internal/domain"
	"karkhana/internal/errors"
)

type MySQLMakerspaceRepository struct {
	db *sql.DB
}

func NewMySQLMakerspaceRepository(db *sql.DB) *MySQLMakerspaceRepository {
	return &MySQLMakerspaceRepository{db: db}
}

func (r *MySQLMakerspaceRepository) FindByName(ctx context.Context, name string) (*domain.Makerspace, error) {
	query := `
		SELECT id, name, city, address, email, phone, imageUrl, ownerId, createdAt, updatedAt
		FROM Makerspaces
		WHERE name = ?
	`

	var ms domain.Makerspace
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&ms.ID, &ms.Name, &ms.City, &ms.Address, &ms.Email, &ms.Phone,
		&ms.ImageURL, &ms.OwnerID, &ms.CreatedAt, &ms.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("makerspace %q not found", name))
	}
	if err != nil {
		return nil, fmt.Errorf("querying makerspace by name: %w", err)
	}

	return &ms, nil
}

func (r *MySQLMakerspaceRepository) FindByID(ctx context.Context, id uint) (*domain.Makerspace, error) {
	query := `
		SELECT id, name, city, address, email, phone, imageUrl, ownerId, createdAt, updatedAt
		FROM Makerspaces
		WHERE id = ?
	`

	var ms domain.Makerspace
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ms.ID, &ms.Name, &ms.City, &ms.Address, &ms.Email, &ms.Phone,
		&ms.ImageURL, &ms.OwnerID, &ms.CreatedAt, &ms.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("makerspace with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying makerspace by id: %w", err)
	}

	return &ms, nil
}

func (r *MySQLMakerspaceRepository) FindByCity(ctx context.Context, city string) ([]domain.Makerspace, error) {
	query := `
		SELECT id, name, city, address, email, phone, imageUrl, ownerId, createdAt, updatedAt
		FROM Makerspaces
		WHERE city = ?
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, city)
	if err != nil {
		return nil, fmt.Errorf("querying makerspaces by city: %w", err)
	}
	defer rows.Close()

	var spaces []domain.Makerspace
	for rows.Next() {
		var ms domain.Makerspace
		err := rows.Scan(
			&ms.ID, &ms.Name, &ms.City, &ms.Address, &ms.Email, &ms.Phone,
			&ms.ImageURL, &ms.OwnerID, &ms.CreatedAt, &ms.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning makerspace row: %w", err)
		}
		spaces = append(spaces, ms)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating makerspace rows: %w", err)
	}

	return spaces, nil
}

func (r *MySQLMakerspaceRepository) Insert(ctx context.Context, m domain.Makerspace) (uint, error) {
	query := `
		INSERT INTO Makerspaces (name, city, address, email, phone, imageUrl, ownerId)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, m.Name, m.City, m.Address, m.Email, m.Phone, m.ImageURL, m.OwnerID)
	if err != nil {
		return 0, fmt.Errorf("inserting makerspace: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLMakerspaceRepository) Update(ctx context.Context, m domain.Makerspace) error {
	query := `
		UPDATE Makerspaces
		SET city = ?, address = ?, email = ?, phone = ?, imageUrl = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, m.City, m.Address, m.Email, m.Phone, m.ImageURL, m.ID)
	if err != nil {
		return fmt.Errorf("updating makerspace: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("makerspace with id %d not found", m.ID))
	}

	return nil
}
