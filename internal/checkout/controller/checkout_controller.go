package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"karkhana/internal/auth"
	"karkhana/internal/domain"
	"karkhana/internal/dto"
	apperrors "karkhana/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutUseCase interface {
	Checkout(ctx context.Context, bookingID uint, userID uint, req dto.CheckoutRequest) (*dto.CheckoutOutcome, error)
	Approve(ctx context.Context, bookingID uint) (*domain.Booking, error)
	Fees() domain.Surcharges
}

type CheckoutController struct {
	useCase CheckoutUseCase
	logger  *zap.Logger
}

func NewCheckoutController(useCase CheckoutUseCase, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *CheckoutController) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		c.writeErrorResponse(w, traceID, 0, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	bookingID, ok := c.bookingIDFromPath(w, r, traceID)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	outcome, err := c.useCase.Checkout(r.Context(), bookingID, principal.UserID, req)
	if err != nil {
		c.handleUseCaseError(w, traceID, bookingID, err, logger)
		return
	}

	fees := c.useCase.Fees()
	resp := dto.CheckoutResponse{
		TraceID:       traceID,
		BookingID:     outcome.Booking.ID,
		Reference:     outcome.Booking.Reference,
		Status:        string(outcome.Status),
		LineTotal:     outcome.Booking.LineTotal,
		Taxes:         fees.Taxes,
		PlatformFee:   fees.PlatformFee,
		Insurance:     fees.Insurance,
		GrandTotal:    outcome.Booking.GrandTotal,
		GatewayRef:    outcome.GatewayRef,
		FailureReason: outcome.FailureReason,
		Timestamp:     time.Now().UTC(),
	}

	statusCode := http.StatusOK
	if outcome.Status == domain.BookingStatusFailed {
		statusCode = http.StatusPaymentRequired
	}

	c.writeJSON(w, statusCode, resp)
}

func (c *CheckoutController) HandleApprove(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	bookingID, ok := c.bookingIDFromPath(w, r, traceID)
	if !ok {
		return
	}

	booking, err := c.useCase.Approve(r.Context(), bookingID)
	if err != nil {
		c.handleUseCaseError(w, traceID, bookingID, err, logger)
		return
	}

	fees := c.useCase.Fees()
	c.writeJSON(w, http.StatusOK, dto.CheckoutResponse{
		TraceID:     traceID,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		Status:      string(domain.BookingStatusApproved),
		LineTotal:   booking.LineTotal,
		Taxes:       fees.Taxes,
		PlatformFee: fees.PlatformFee,
		Insurance:   fees.Insurance,
		GrandTotal:  booking.GrandTotal,
		Timestamp:   time.Now().UTC(),
	})
}

func (c *CheckoutController) bookingIDFromPath(w http.ResponseWriter, r *http.Request, traceID string) (uint, bool) {
	bookingIDStr := chi.URLParam(r, "id")
	bookingID, err := strconv.ParseUint(bookingIDStr, 10, 64)
	if err != nil {
		c.writeValidationError(w, traceID, "invalid booking id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return 0, false
	}
	return uint(bookingID), true
}

func (c *CheckoutController) handleUseCaseError(w http.ResponseWriter, traceID string, bookingID uint, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, bookingID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, bookingID, http.StatusConflict, "CONFLICT", err.Error())
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeErrorResponse(w, traceID, bookingID, http.StatusForbidden, "FORBIDDEN", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, bookingID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *CheckoutController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *CheckoutController) writeErrorResponse(w http.ResponseWriter, traceID string, bookingID uint, statusCode int, code string, message string) {
	c.writeJSON(w, statusCode, dto.BookingErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Message:   message,
		Code:      code,
		BookingID: bookingID,
		Timestamp: time.Now().UTC(),
	})
}

func (c *CheckoutController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
