package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"karkhana/internal/auth"
	"karkhana/internal/domain"
	apperrors "karkhana/internal/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Controller struct {
	useCase UseCase
	logger  *zap.Logger
}

func NewController(useCase UseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleListMachines(w http.ResponseWriter, r *http.Request) {
	c.handleListListings(w, r, domain.KindMachine)
}

func (c *Controller) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	c.handleListListings(w, r, domain.KindEvent)
}

func (c *Controller) handleListListings(w http.ResponseWriter, r *http.Request, kind domain.ListingKind) {
	req := ListListingsRequest{
		Kind:       string(kind),
		Makerspace: r.URL.Query().Get("makerspace"),
		City:       r.URL.Query().Get("city"),
		Category:   r.URL.Query().Get("category"),
	}

	if req.Makerspace == "" && req.City == "" {
		c.writeValidationError(w, "a makerspace or city filter is required", apperrors.ValidationDetail{
			Field:   "makerspace",
			Message: "either makerspace or city must be provided",
		})
		return
	}

	resp, err := c.useCase.ListListings(r.Context(), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleGetMakerspace(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		c.writeValidationError(w, "name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "makerspace name must not be empty",
		})
		return
	}

	resp, err := c.useCase.GetMakerspace(r.Context(), name)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleListMakerspaces(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		c.writeValidationError(w, "city is required", apperrors.ValidationDetail{
			Field:   "city",
			Message: "city must not be empty",
		})
		return
	}

	spaces, err := c.useCase.ListMakerspaces(r.Context(), city)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{"makerspaces": spaces})
}

func (c *Controller) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.validateCreateListing(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	resp, err := c.useCase.CreateListing(r.Context(), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *Controller) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.UnitPrice != nil && *req.UnitPrice < 0 {
		c.writeValidationError(w, "unitPrice must not be negative", apperrors.ValidationDetail{
			Field:   "unitPrice",
			Message: "unitPrice must not be negative",
		})
		return
	}
	if req.TicketLimit != nil && *req.TicketLimit < 1 {
		c.writeValidationError(w, "ticketLimit must be positive", apperrors.ValidationDetail{
			Field:   "ticketLimit",
			Message: "ticketLimit must be a positive integer",
		})
		return
	}

	resp, err := c.useCase.UpdateListing(r.Context(), id, req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) HandleCreateMakerspace(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":   "UNAUTHORIZED",
			"message": "authentication required",
		})
		return
	}

	var req CreateMakerspaceRequest
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
	if req.City == "" {
		details = append(details, apperrors.ValidationDetail{Field: "city", Message: "city is required"})
	}
	if req.Email == "" {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email is required"})
	}
	if len(details) > 0 {
		c.writeValidationError(w, "invalid makerspace", details...)
		return
	}

	resp, err := c.useCase.CreateMakerspace(r.Context(), req, principal.UserID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, resp)
}

func (c *Controller) HandleUpdateMakerspace(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid id", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id must be a positive integer",
		})
		return
	}

	var req UpdateMakerspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	resp, err := c.useCase.UpdateMakerspace(r.Context(), uint(id), req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *Controller) validateCreateListing(req CreateListingRequest) error {
	var details []apperrors.ValidationDetail

	if req.Makerspace == "" {
		details = append(details, apperrors.ValidationDetail{Field: "makerspace", Message: "makerspace is required"})
	}

	kind := domain.ListingKind(req.Kind)
	if kind != domain.KindMachine && kind != domain.KindEvent {
		details = append(details, apperrors.ValidationDetail{Field: "kind", Message: "kind must be MACHINE or EVENT"})
	}

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}

	if req.UnitPrice < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "unitPrice", Message: "unitPrice must not be negative"})
	}

	if kind == domain.KindEvent {
		if req.TicketLimit == nil {
			details = append(details, apperrors.ValidationDetail{Field: "ticketLimit", Message: "ticketLimit is required for events"})
		} else if *req.TicketLimit < 1 {
			details = append(details, apperrors.ValidationDetail{Field: "ticketLimit", Message: "ticketLimit must be a positive integer"})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid listing", details...)
	}
	return nil
}

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
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

	c.logger.Error("catalog request failed", zap.Error(err))
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

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
