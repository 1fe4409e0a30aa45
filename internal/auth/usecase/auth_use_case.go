package usecase

import (
	"context"

	"karkhana/internal/domain"
	"karkhana/internal/dto"
	apperrors "karkhana/internal/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	Insert(ctx context.Context, user domain.User) (uint, error)
}

type TokenIssuer interface {
	Issue(user domain.User) (string, error)
	Verify(token string) (uint, string, string, error)
}

type AuthUseCase struct {
	userRepo UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

func NewAuthUseCase(userRepo UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

func (uc *AuthUseCase) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if _, err := uc.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	} else if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("hashing password", err)
	}

	user := domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	id, err := uc.userRepo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	uc.logger.Info("user signed up", zap.Uint("userId", id))
	return uc.respondWithToken(user)
}

func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			// Same response as a wrong password, so login cannot be used
			// to probe which emails are registered.
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	return uc.respondWithToken(*user)
}

// Reauthorize exchanges a still-valid token for a fresh one, re-reading
// the user so role changes take effect.
func (uc *AuthUseCase) Reauthorize(ctx context.Context, token string) (*dto.AuthResponse, error) {
	userID, _, _, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError("account no longer exists")
		}
		return nil, err
	}

	return uc.respondWithToken(*user)
}

func (uc *AuthUseCase) respondWithToken(user domain.User) (*dto.AuthResponse, error) {
	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.NewInternalError("issuing token", err)
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
