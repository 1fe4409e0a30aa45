package catalog

import (
	"context"

	"karkhana/internal/domain"
)

type useCase struct {
	service Service
}

func NewUseCase(service Service) UseCase {
	return &useCase{service: service}
}

func (uc *useCase) ListListings(ctx context.Context, req ListListingsRequest) (*ListListingsResponse, error) {
	listings, err := uc.service.FindListings(ctx, domain.ListingKind(req.Kind), req.Makerspace, req.City, req.Category)
	if err != nil {
		return nil, err
	}

	dtos := make([]ListingDTO, 0, len(listings))
	for _, l := range listings {
		dtos = append(dtos, toListingDTO(l))
	}

	return &ListListingsResponse{Listings: dtos}, nil
}

func (uc *useCase) GetMakerspace(ctx context.Context, name string) (*MakerspaceDTO, error) {
	ms, err := uc.service.FindMakerspaceByName(ctx, name)
	if err != nil {
		return nil, err
	}
	dto := toMakerspaceDTO(*ms)
	return &dto, nil
}

func (uc *useCase) ListMakerspaces(ctx context.Context, city string) ([]MakerspaceDTO, error) {
	spaces, err := uc.service.FindMakerspacesByCity(ctx, city)
	if err != nil {
		return nil, err
	}

	dtos := make([]MakerspaceDTO, 0, len(spaces))
	for _, ms := range spaces {
		dtos = append(dtos, toMakerspaceDTO(ms))
	}
	return dtos, nil
}

func (uc *useCase) CreateListing(ctx context.Context, req CreateListingRequest) (*ListingDTO, error) {
	listing := domain.Listing{
		Makerspace:     req.Makerspace,
		Kind:           domain.ListingKind(req.Kind),
		Name:           req.Name,
		Description:    req.Description,
		UnitPrice:      req.UnitPrice,
		TicketLimit:    req.TicketLimit,
		TimeSlot:       domain.TimeSlot{Start: req.SlotStart, End: req.SlotEnd},
		Category:       req.Category,
		Specifications: req.Specifications,
		ImageURL:       req.ImageURL,
		Location:       req.Location,
		InCharge:       req.InCharge,
		Experts:        req.Experts,
		IsActive:       true,
	}

	created, err := uc.service.SaveListing(ctx, listing)
	if err != nil {
		return nil, err
	}
	dto := toListingDTO(*created)
	return &dto, nil
}

func (uc *useCase) UpdateListing(ctx context.Context, id string, req UpdateListingRequest) (*ListingDTO, error) {
	listing, err := uc.service.FindListingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		listing.Name = *req.Name
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.UnitPrice != nil {
		listing.UnitPrice = *req.UnitPrice
	}
	if req.TicketLimit != nil {
		listing.TicketLimit = req.TicketLimit
	}
	if req.SlotStart != nil {
		listing.TimeSlot.Start = *req.SlotStart
	}
	if req.SlotEnd != nil {
		listing.TimeSlot.End = *req.SlotEnd
	}
	if req.Category != nil {
		listing.Category = *req.Category
	}
	if req.Specifications != nil {
		listing.Specifications = req.Specifications
	}
	if req.ImageURL != nil {
		listing.ImageURL = *req.ImageURL
	}
	if req.Location != nil {
		listing.Location = *req.Location
	}
	if req.InCharge != nil {
		listing.InCharge = req.InCharge
	}
	if req.Experts != nil {
		listing.Experts = req.Experts
	}
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}

	updated, err := uc.service.AmendListing(ctx, *listing)
	if err != nil {
		return nil, err
	}
	dto := toListingDTO(*updated)
	return &dto, nil
}

func (uc *useCase) CreateMakerspace(ctx context.Context, req CreateMakerspaceRequest, ownerID uint) (*MakerspaceDTO, error) {
	ms := domain.Makerspace{
		Name:     req.Name,
		City:     req.City,
		Address:  req.Address,
		Email:    req.Email,
		Phone:    req.Phone,
		ImageURL: req.ImageURL,
		OwnerID:  ownerID,
	}

	created, err := uc.service.SaveMakerspace(ctx, ms)
	if err != nil {
		return nil, err
	}
	dto := toMakerspaceDTO(*created)
	return &dto, nil
}

func (uc *useCase) UpdateMakerspace(ctx context.Context, id uint, req UpdateMakerspaceRequest) (*MakerspaceDTO, error) {
	ms, err := uc.service.FindMakerspaceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.City != nil {
		ms.City = *req.City
	}
	if req.Address != nil {
		ms.Address = *req.Address
	}
	if req.Email != nil {
		ms.Email = *req.Email
	}
	if req.Phone != nil {
		ms.Phone = req.Phone
	}
	if req.ImageURL != nil {
		ms.ImageURL = *req.ImageURL
	}

	updated, err := uc.service.AmendMakerspace(ctx, *ms)
	if err != nil {
		return nil, err
	}
	dto := toMakerspaceDTO(*updated)
	return &dto, nil
}

func toListingDTO(l domain.Listing) ListingDTO {
	return ListingDTO{
		ID:             l.ID,
		Makerspace:     l.Makerspace,
		Kind:           string(l.Kind),
		Name:           l.Name,
		Description:    l.Description,
		UnitPrice:      l.UnitPrice,
		TicketLimit:    l.TicketLimit,
		SlotStart:      l.TimeSlot.Start,
		SlotEnd:        l.TimeSlot.End,
		Category:       l.Category,
		Specifications: l.Specifications,
		ImageURL:       l.ImageURL,
		Location:       l.Location,
		InCharge:       l.InCharge,
		Experts:        l.Experts,
		IsActive:       l.IsActive,
	}
}

func toMakerspaceDTO(m domain.Makerspace) MakerspaceDTO {
	return MakerspaceDTO{
		ID:       m.ID,
		Name:     m.Name,
		City:     m.City,
		Address:  m.Address,
		Email:    m.Email,
		Phone:    m.Phone,
		ImageURL: m.ImageURL,
	}
}
