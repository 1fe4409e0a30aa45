package repository

import (
	"context"
	"database/sql"
	"fmt"

	"karkhana/internal/domain"
	"karkhana/internal/errors"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, passwordHash, role, createdAt, updatedAt
		FROM Users
		WHERE email = ?
	`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return &user, nil
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	query := `
		SELECT id, name, email, passwordHash, role, createdAt, updatedAt
		FROM Users
		WHERE id = ?
	`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	return &user, nil
}

func (r *MySQLUserRepository) Insert(ctx context.Context, user domain.User) (uint, error) {
	query := `INSERT INTO Users (name, email, passwordHash, role) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}
