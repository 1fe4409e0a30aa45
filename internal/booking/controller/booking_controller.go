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

type SubmitBookingUseCase interface {
	Submit(
		ctx context.Context,
		userID uint,
		kind domain.ListingKind,
		makerspace string,
		date time.Time,
		items []dto.SubmissionItem,
		preselectedID string,
	) (*dto.SubmissionResult, error)
	GetBooking(ctx context.Context, bookingID uint, userID uint) (*domain.Booking, []domain.BookingItem, error)
	Fees() domain.Surcharges
}

type BookingController struct {
	useCase SubmitBookingUseCase
	logger  *zap.Logger
}

func NewBookingController(useCase SubmitBookingUseCase, logger *zap.Logger) *BookingController {
	return &BookingController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *BookingController) HandleSubmitBooking(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		c.writeErrorResponse(w, traceID, 0, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	var req dto.SubmitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	date, validationErr := c.validateSubmitRequest(req)
	if validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	items := make([]dto.SubmissionItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = dto.SubmissionItem{
			ListingID: item.ListingID,
			Quantity:  item.Quantity,
		}
	}

	result, err := c.useCase.Submit(r.Context(), principal.UserID, domain.ListingKind(req.Kind), req.Makerspace, date, items, req.PreselectedID)
	if err != nil {
		c.handleUseCaseError(w, traceID, 0, err, logger)
		return
	}

	c.writeSubmitResponse(w, traceID, result)
}

func (c *BookingController) HandleGetBooking(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		c.writeErrorResponse(w, traceID, 0, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}

	bookingIDStr := chi.URLParam(r, "id")
	bookingID, err := strconv.ParseUint(bookingIDStr, 10, 64)
	if err != nil {
		logger.Warn("invalid booking id in path", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid booking id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	booking, items, err := c.useCase.GetBooking(r.Context(), uint(bookingID), principal.UserID)
	if err != nil {
		c.handleUseCaseError(w, traceID, uint(bookingID), err, logger)
		return
	}

	fees := c.useCase.Fees()
	itemDTOs := make([]dto.BookingItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = dto.BookingItemDTO{
			ListingID: item.ListingID,
			Kind:      string(item.Kind),
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			SlotStart: item.SlotStart,
			SlotEnd:   item.SlotEnd,
		}
	}

	c.writeJSON(w, http.StatusOK, dto.BookingResponse{
		TraceID:     traceID,
		BookingID:   booking.ID,
		Reference:   booking.Reference,
		Makerspace:  booking.Makerspace,
		Kind:        string(booking.Kind),
		Date:        booking.Date.Format("2006-01-02"),
		Status:      string(booking.Status),
		Items:       itemDTOs,
		LineTotal:   booking.LineTotal,
		Taxes:       fees.Taxes,
		PlatformFee: fees.PlatformFee,
		Insurance:   fees.Insurance,
		GrandTotal:  booking.GrandTotal,
		Timestamp:   time.Now().UTC(),
	})
}

func (c *BookingController) validateSubmitRequest(req dto.SubmitBookingRequest) (time.Time, error) {
	var details []apperrors.ValidationDetail

	if req.Makerspace == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "makerspace",
			Message: "makerspace is required",
		})
	}

	kind := domain.ListingKind(req.Kind)
	if kind != domain.KindMachine && kind != domain.KindEvent {
		details = append(details, apperrors.ValidationDetail{
			Field:   "kind",
			Message: "kind must be MACHINE or EVENT",
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(req.Items) == 0 && req.PreselectedID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty unless preselectedId is set",
		})
	}

	if len(req.Items) > 100 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items exceeds maximum of 100",
		})
	}

	listingIDMap := make(map[string]bool)
	for idx, item := range req.Items {
		if item.ListingID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].listingId",
				Message: "listingId is required",
			})
		}

		if listingIDMap[item.ListingID] {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].listingId",
				Message: "listingId must not be duplicated",
			})
		}
		listingIDMap[item.ListingID] = true

		if item.Quantity < 1 || item.Quantity > 10000 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be between 1 and 10000",
			})
		}
	}

	if len(details) > 0 {
		return time.Time{}, apperrors.NewValidationError("invalid booking request", details...)
	}

	return date, nil
}

func (c *BookingController) handleUseCaseError(w http.ResponseWriter, traceID string, bookingID uint, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, bookingID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeErrorResponse(w, traceID, bookingID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeErrorResponse(w, traceID, bookingID, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsDeadlockError(err); ok {
		c.writeErrorResponse(w, traceID, bookingID, http.StatusConflict, "DEADLOCK", err.Error(), nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, bookingID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (c *BookingController) writeSubmitResponse(w http.ResponseWriter, traceID string, result *dto.SubmissionResult) {
	successes := make([]dto.LineSuccessDTO, len(result.Successes))
	addedItems := make([]string, len(result.Successes))
	for i, success := range result.Successes {
		successes[i] = dto.LineSuccessDTO{
			ListingID: success.ListingID,
			Quantity:  success.Quantity,
		}
		addedItems[i] = success.ListingID
	}

	failures := make([]dto.LineFailureDTO, len(result.Failures))
	for i, failure := range result.Failures {
		failures[i] = dto.LineFailureDTO{
			ListingID: failure.ListingID,
			Quantity:  failure.Quantity,
			Reason:    string(failure.Reason),
		}
	}

	response := dto.SubmitBookingResponse{
		TraceID:    traceID,
		BookingID:  result.BookingID,
		Reference:  result.Reference,
		Status:     string(result.Status),
		LineTotal:  result.LineTotal,
		AddedItems: addedItems,
		Successes:  successes,
		Failures:   failures,
		Timestamp:  time.Now().UTC(),
	}

	statusCode := http.StatusCreated
	if result.Status == dto.SubmissionPartial {
		statusCode = http.StatusPartialContent
	} else if result.Status == dto.SubmissionAllFailed {
		statusCode = http.StatusUnprocessableEntity
	}

	c.writeJSON(w, statusCode, response)
}

type validationErrorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *BookingController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		TraceID: traceID,
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *BookingController) writeErrorResponse(w http.ResponseWriter, traceID string, bookingID uint, statusCode int, code string, message string, details *dto.BookingErrorDetails) {
	c.writeJSON(w, statusCode, dto.BookingErrorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Message:   message,
		Code:      code,
		BookingID: bookingID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func (c *BookingController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
