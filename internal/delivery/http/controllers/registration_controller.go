package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"seminarbooking/internal/delivery/http/helpers"
	"seminarbooking/internal/domain"
)

// RegistrationController sequences the registration pipeline. It holds no
// business logic of its own: eligibility lives in the guard, the build steps
// in the registration service.
type RegistrationController struct {
	Logger       *slog.Logger
	EventRepo    domain.EventRepository
	Guard        domain.RegistrationGuard
	Registration domain.RegistrationService
}

func NewRegistrationController(
	logger *slog.Logger,
	eventRepo domain.EventRepository,
	guard domain.RegistrationGuard,
	registration domain.RegistrationService,
) *RegistrationController {
	return &RegistrationController{
		Logger:       logger,
		EventRepo:    eventRepo,
		Guard:        guard,
		Registration: registration,
	}
}

// CreateRegistrationRequest is the request body for POST /events/{eventID}/registrations.
type CreateRegistrationRequest struct {
	Seats     int                    `json:"seats"`
	PriceTier domain.PriceTier       `json:"price_tier"`
	Attendees []domain.AttendeeInput `json:"attendees,omitempty"`
}

// Register godoc
// @Summary Register for an event
// @Description Registers the current session identity (authenticated user or one-time account) for the event, subject to seat limits, the registration window, and conflict rules. Returns 201 with the persisted registration; on_waiting_list marks waiting-list placements.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param request body controllers.CreateRegistrationRequest true "Registration request"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	var req CreateRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
		return
	}
	if req.Seats < 1 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "seats must be at least 1")
		return
	}
	if req.PriceTier == "" {
		req.PriceTier = domain.TierStandard
	}

	ctx := r.Context()
	event, err := c.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.internalError(w, r, err)
		return
	}

	if err := c.Guard.AssertBookableKind(event); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "event is not bookable")
		return
	}
	if !c.Guard.IsRegistrationPossibleAtAnyTime(event) || !c.Guard.IsRegistrationPossibleByDate(event) {
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "registration is not open for this event")
		return
	}

	userID, ok := c.Guard.UserIDFromSession(ctx)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "no user in session")
		return
	}
	free, err := c.Guard.IsFreeFromConflicts(ctx, event, userID)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	if !free {
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "already registered for this event")
		return
	}

	reg := domain.NewRegistration(req.Seats, req.PriceTier)
	if len(req.Attendees) > 0 {
		payload, err := json.Marshal(req.Attendees)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid attendees")
			return
		}
		reg.AttendeesPayload = string(payload)
	}

	if err := c.Registration.EnrichWithMetadata(ctx, reg, event); err != nil {
		switch {
		case errors.Is(err, domain.ErrNoUserInSession):
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "no user in session")
		case errors.Is(err, domain.ErrUserNotFound):
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unknown user")
		default:
			c.internalError(w, r, err)
		}
		return
	}
	if err := c.Registration.CalculateTotalPrice(reg); err != nil {
		if errors.Is(err, domain.ErrPriceTierUnavailable) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "price tier not available")
			return
		}
		c.internalError(w, r, err)
		return
	}
	c.Registration.CreateAdditionalAttendees(reg, reg.StoragePID)
	if err := c.Registration.Persist(ctx, reg); err != nil {
		c.internalError(w, r, err)
		return
	}
	if err := c.Registration.SendEmails(ctx, reg); err != nil {
		// The registration is already stored; a failed notification must not
		// roll it back or fail the request.
		c.Logger.ErrorContext(ctx, "registration emails failed", "registration", reg.ID, "err", err)
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

func (c *RegistrationController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}
