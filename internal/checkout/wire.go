package checkout

import (
	"database/sql"

	bookingrepo "karkhana/internal/booking/repository"
	"karkhana/internal/checkout/controller"
	"karkhana/internal/checkout/gateway"
	"karkhana/internal/checkout/usecase"
	"karkhana/internal/config"
	"karkhana/internal/domain"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.CheckoutController {
	bookingRepo := bookingrepo.NewMySQLBookingRepository(db)
	client := gateway.NewClient(cfg.Payment)

	fees := domain.Surcharges{
		Taxes:       cfg.Fees.Taxes,
		PlatformFee: cfg.Fees.PlatformFee,
		Insurance:   cfg.Fees.Insurance,
	}

	uc := usecase.NewCheckoutUseCase(bookingRepo, client, fees, logger)
	return controller.NewCheckoutController(uc, logger)
}
