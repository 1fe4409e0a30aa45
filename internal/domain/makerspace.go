package domain

import "time"

type Makerspace struct {
	ID        uint
	Name      string
	City      string
	Address   string
	Email     string
	Phone     *string
	ImageURL  string
	OwnerID   uint
	CreatedAt time.Time
	UpdatedAt time.Time
}
