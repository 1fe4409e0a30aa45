package catalog

import (
	"database/sql"

	"karkhana/internal/catalog/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	listingRepo := repository.NewMySQLListingRepository(db)
	makerspaceRepo := repository.NewMySQLMakerspaceRepository(db)
	svc := NewService(listingRepo, makerspaceRepo)
	uc := NewUseCase(svc)
	return NewController(uc, logger)
}
