package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"seminarbooking/internal/delivery/http/helpers"
	"seminarbooking/internal/domain"
)

// EventController serves the read side used by registration UIs: the event
// itself plus everything needed to enable or gray out the register button.
type EventController struct {
	Logger     *slog.Logger
	EventRepo  domain.EventRepository
	Guard      domain.RegistrationGuard
	Statistics domain.StatisticsCalculator
	Now        domain.Clock
}

func NewEventController(
	logger *slog.Logger,
	eventRepo domain.EventRepository,
	guard domain.RegistrationGuard,
	statistics domain.StatisticsCalculator,
	now domain.Clock,
) *EventController {
	if now == nil {
		now = time.Now
	}
	return &EventController{
		Logger:     logger,
		EventRepo:  eventRepo,
		Guard:      guard,
		Statistics: statistics,
		Now:        now,
	}
}

// EventAvailability is the response body for GET /events/{eventID}/availability.
type EventAvailability struct {
	Event            *domain.Event                     `json:"event"`
	Bookable         bool                              `json:"bookable"`
	RegistrationOpen bool                              `json:"registration_open"`
	Vacancies        *int                              `json:"vacancies"` // null when unbounded
	Statistics       *domain.Statistics                `json:"statistics,omitempty"`
	Prices           map[domain.PriceTier]domain.Price `json:"prices"`
}

// Availability godoc
// @Summary Get registration availability for an event
// @Description Returns the event together with its seat statistics, remaining vacancies (null when unbounded), the currently applicable prices, and whether registration is open right now.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/availability [get]
func (c *EventController) Availability(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	ctx := r.Context()
	event, err := c.EventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(ctx, "get event failed", "event", eventID, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}

	availability := &EventAvailability{
		Event:  event,
		Prices: event.AvailablePrices(c.Now()),
	}
	availability.Bookable = c.Guard.IsRegistrationPossibleAtAnyTime(event)
	availability.RegistrationOpen = availability.Bookable && c.Guard.IsRegistrationPossibleByDate(event)

	// Topics carry neither statistics nor vacancies.
	if event.IsBookableKind() {
		if err := c.Statistics.EnrichWithStatistics(ctx, event); err != nil {
			c.Logger.ErrorContext(ctx, "enrich statistics failed", "event", eventID, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
			return
		}
		availability.Statistics = event.Stats
		vacancies, limited, err := c.Guard.Vacancies(ctx, event)
		if err != nil {
			c.Logger.ErrorContext(ctx, "get vacancies failed", "event", eventID, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
			return
		}
		if limited {
			availability.Vacancies = &vacancies
		}
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, availability)
}
