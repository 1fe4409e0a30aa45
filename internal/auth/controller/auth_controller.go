package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"karkhana/internal/dto"
	apperrors "karkhana/internal/errors"

	"go.uber.org/zap"
)

type AuthUseCase interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Reauthorize(ctx context.Context, token string) (*dto.AuthResponse, error)
}

type AuthController struct {
	useCase AuthUseCase
	logger  *zap.Logger
}

func NewAuthController(useCase AuthUseCase, logger *zap.Logger) *AuthController {
	return &AuthController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *AuthController) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "a valid email is required"})
	}
	if len(req.Password) < 8 {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(details) > 0 {
		c.writeValidationError(w, "invalid signup request", details...)
		return
	}

	resp, err := c.useCase.Signup(r.Context(), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.writeValidationError(w, "email and password are required",
			apperrors.ValidationDetail{Field: "email", Message: "email is required"},
			apperrors.ValidationDetail{Field: "password", Message: "password is required"},
		)
		return
	}

	resp, err := c.useCase.Login(r.Context(), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *AuthController) HandleReauthorize(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "bearer token required",
		})
		return
	}

	resp, err := c.useCase.Reauthorize(r.Context(), token)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func (c *AuthController) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": err.Error(),
		})
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{
			"error":   "CONFLICT",
			"message": err.Error(),
		})
		return
	}

	c.logger.Error("auth request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *AuthController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *AuthController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
