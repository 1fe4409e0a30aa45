package catalog

import (
	"context"
	"fmt"

	"karkhana/internal/domain"
	apperrors "karkhana/internal/errors"
)

type service struct {
	listings    ListingRepository
	makerspaces MakerspaceRepository
}

func NewService(listings ListingRepository, makerspaces MakerspaceRepository) Service {
	return &service{listings: listings, makerspaces: makerspaces}
}

func (s *service) FindListings(ctx context.Context, kind domain.ListingKind, makerspace, city, category string) ([]domain.Listing, error) {
	return s.listings.FindByFilter(ctx, kind, makerspace, city, category)
}

func (s *service) FindListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.FindByID(ctx, id)
}

func (s *service) FindMakerspaceByName(ctx context.Context, name string) (*domain.Makerspace, error) {
	return s.makerspaces.FindByName(ctx, name)
}

func (s *service) FindMakerspaceByID(ctx context.Context, id uint) (*domain.Makerspace, error) {
	return s.makerspaces.FindByID(ctx, id)
}

func (s *service) FindMakerspacesByCity(ctx context.Context, city string) ([]domain.Makerspace, error) {
	return s.makerspaces.FindByCity(ctx, city)
}

func (s *service) SaveListing(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	// The owning makerspace must exist before a listing can reference it.
	ms, err := s.makerspaces.FindByName(ctx, l.Makerspace)
	if err != nil {
		return nil, err
	}
	l.MakerspaceID = ms.ID
	return s.listings.Insert(ctx, l)
}

func (s *service) AmendListing(ctx context.Context, l domain.Listing) (*domain.Listing, error) {
	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	return s.listings.FindByID(ctx, l.ID)
}

func (s *service) SaveMakerspace(ctx context.Context, m domain.Makerspace) (*domain.Makerspace, error) {
	if existing, err := s.makerspaces.FindByName(ctx, m.Name); err == nil && existing != nil {
		return nil, apperrors.NewConflictError(fmt.Sprintf("makerspace %q already exists", m.Name))
	} else if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); !ok {
			return nil, err
		}
	}

	id, err := s.makerspaces.Insert(ctx, m)
	if err != nil {
		return nil, err
	}
	return s.makerspaces.FindByID(ctx, id)
}

func (s *service) AmendMakerspace(ctx context.Context, m domain.Makerspace) (*domain.Makerspace, error) {
	if err := s.makerspaces.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.makerspaces.FindByID(ctx, m.ID)
}
