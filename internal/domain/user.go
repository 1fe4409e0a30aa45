package domain

import "time"

type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	RoleUser     = "USER"
	RoleOperator = "OPERATOR"
)
