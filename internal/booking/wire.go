package booking

import (
	"database/sql"

	goredis "github.com/redis/go-redis/v9"

	"karkhana/internal/booking/controller"
	bookingrepo "karkhana/internal/booking/repository"
	"karkhana/internal/booking/service"
	"karkhana/internal/booking/usecase"
	catalogrepo "karkhana/internal/catalog/repository"
	"karkhana/internal/config"
	"karkhana/internal/domain"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, redisClient *goredis.Client, cfg *config.Config, logger *zap.Logger) (*controller.BookingController, *usecase.SubmitBookingUseCase, *service.SlotHoldService) {
	bookingRepo := bookingrepo.NewMySQLBookingRepository(db)
	itemRepo := bookingrepo.NewMySQLBookingItemRepository(db)
	listingRepo := catalogrepo.NewMySQLListingRepository(db)
	makerspaceRepo := catalogrepo.NewMySQLMakerspaceRepository(db)

	fees := domain.Surcharges{
		Taxes:       cfg.Fees.Taxes,
		PlatformFee: cfg.Fees.PlatformFee,
		Insurance:   cfg.Fees.Insurance,
	}

	holds := service.NewSlotHoldService(redisClient, cfg.Booking.HoldTTL, logger)

	submissionSvc := service.NewSubmissionService(
		db,
		bookingRepo,
		itemRepo,
		holds,
		fees,
		logger,
		cfg.Booking.TxTimeout,
	)

	uc := usecase.NewSubmitBookingUseCase(
		makerspaceRepo,
		listingRepo,
		bookingRepo,
		itemRepo,
		submissionSvc,
		fees,
		logger,
		cfg.Booking.MaxRetryAttempts,
	)

	return controller.NewBookingController(uc, logger), uc, holds
}
