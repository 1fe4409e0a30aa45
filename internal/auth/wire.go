package auth

import (
	"database/sql"

	"karkhana/internal/auth/controller"
	"karkhana/internal/auth/repository"
	"karkhana/internal/auth/service"
	"karkhana/internal/auth/usecase"
	"karkhana/internal/config"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, cfg config.AuthConfig, logger *zap.Logger) (*controller.AuthController, *service.TokenService) {
	userRepo := repository.NewMySQLUserRepository(db)
	tokens := service.NewTokenService(cfg)
	uc := usecase.NewAuthUseCase(userRepo, tokens, logger)
	return controller.NewAuthController(uc, logger), tokens
}
