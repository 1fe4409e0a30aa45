package catalog

import (
	"context"

	"karkhana/internal/domain"
)

type UseCase interface {
	ListListings(ctx context.Context, req ListListingsRequest) (*ListListingsResponse, error)
	GetMakerspace(ctx context.Context, name string) (*MakerspaceDTO, error)
	ListMakerspaces(ctx context.Context, city string) ([]MakerspaceDTO, error)
	CreateListing(ctx context.Context, req CreateListingRequest) (*ListingDTO, error)
	UpdateListing(ctx context.Context, id string, req UpdateListingRequest) (*ListingDTO, error)
	CreateMakerspace(ctx context.Context, req CreateMakerspaceRequest, ownerID uint) (*MakerspaceDTO, error)
	UpdateMakerspace(ctx context.Context, id uint, req UpdateMakerspaceRequest) (*MakerspaceDTO, error)
}

type Service interface {
	FindListings(ctx context.Context, kind domain.ListingKind, makerspace, city, category string) ([]domain.Listing, error)
	FindListingByID(ctx context.Context, id string) (*domain.Listing, error)
	FindMakerspaceByName(ctx context.Context, name string) (*domain.Makerspace, error)
	FindMakerspaceByID(ctx context.Context, id uint) (*domain.Makerspace, error)
	FindMakerspacesByCity(ctx context.Context, city string) ([]domain.Makerspace, error)
	SaveListing(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	AmendListing(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	SaveMakerspace(ctx context.Context, m domain.Makerspace) (*domain.Makerspace, error)
	AmendMakerspace(ctx context.Context, m domain.Makerspace) (*domain.Makerspace, error)
}

type ListingRepository interface {
	FindByFilter(ctx context.Context, kind domain.ListingKind, makerspace, city, category string) ([]domain.Listing, error)
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	FindByIDs(ctx context.Context, ids []string, makerspace string) ([]domain.Listing, error)
	Insert(ctx context.Context, l domain.Listing) (*domain.Listing, error)
	Update(ctx context.Context, l domain.Listing) error
}

type MakerspaceRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Makerspace, error)
	FindByID(ctx context.Context, id uint) (*domain.Makerspace, error)
	FindByCity(ctx context.Context, city string) ([]domain.Makerspace, error)
	Insert(ctx context.Context, m domain.Makerspace) (uint, error)
	Update(ctx context.Context, m domain.Makerspace) error
}
