package catalog

type ListListingsRequest struct {
	Kind       string
	Makerspace string
	City       string
	Category   string
}

type ListListingsResponse struct {
	Listings []ListingDTO `json:"listings"`
}

type ListingDTO struct {
	ID             string            `json:"id"`
	Makerspace     string            `json:"makerspace"`
	Kind           string            `json:"kind"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	UnitPrice      float64           `json:"unitPrice"`
	TicketLimit    *int              `json:"ticketLimit,omitempty"`
	SlotStart      string            `json:"slotStart"`
	SlotEnd        string            `json:"slotEnd"`
	Category       string            `json:"category"`
	Specifications map[string]string `json:"specifications"`
	ImageURL       string            `json:"imageUrl"`
	Location       string            `json:"location"`
	InCharge       *string           `json:"inCharge,omitempty"`
	Experts        *string           `json:"experts,omitempty"`
	IsActive       bool              `json:"isActive"`
}

type CreateListingRequest struct {
	Makerspace     string            `json:"makerspace"`
	Kind           string            `json:"kind"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	UnitPrice      float64           `json:"unitPrice"`
	TicketLimit    *int              `json:"ticketLimit,omitempty"`
	SlotStart      string            `json:"slotStart"`
	SlotEnd        string            `json:"slotEnd"`
	Category       string            `json:"category"`
	Specifications map[string]string `json:"specifications"`
	ImageURL       string            `json:"imageUrl"`
	Location       string            `json:"location"`
	InCharge       *string           `json:"inCharge,omitempty"`
	Experts        *string           `json:"experts,omitempty"`
}

type UpdateListingRequest struct {
	Name           *string           `json:"name,omitempty"`
	Description    *string           `json:"description,omitempty"`
	UnitPrice      *float64          `json:"unitPrice,omitempty"`
	TicketLimit    *int              `json:"ticketLimit,omitempty"`
	SlotStart      *string           `json:"slotStart,omitempty"`
	SlotEnd        *string           `json:"slotEnd,omitempty"`
	Category       *string           `json:"category,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	ImageURL       *string           `json:"imageUrl,omitempty"`
	Location       *string           `json:"location,omitempty"`
	InCharge       *string           `json:"inCharge,omitempty"`
	Experts        *string           `json:"experts,omitempty"`
	IsActive       *bool             `json:"isActive,omitempty"`
}

type MakerspaceDTO struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Address  string  `json:"address"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	ImageURL string  `json:"imageUrl"`
}

type CreateMakerspaceRequest struct {
	Name     string  `json:"name"`
	City     string  `json:"city"`
	Address  string  `json:"address"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	ImageURL string  `json:"imageUrl"`
}

type UpdateMakerspaceRequest struct {
	City     *string `json:"city,omitempty"`
	Address  *string `json:"address,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}
