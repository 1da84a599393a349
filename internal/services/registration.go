package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"seminarbooking/internal/domain"
)

const attendeeUsernamePrefix = "additional-attendee-"

type registrationService struct {
	guard            domain.RegistrationGuard
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	emails           domain.EmailService
	storagePID       int64
	organizerEmail   string
	now              domain.Clock
}

// NewRegistrationService creates the registration processor. storagePID is
// the record storage location new registrations and attendee users are filed
// under; organizerEmail receives the notification copy. A nil clock defaults
// to time.Now.
func NewRegistrationService(
	guard domain.RegistrationGuard,
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emails domain.EmailService,
	storagePID int64,
	organizerEmail string,
	now domain.Clock,
) domain.RegistrationService {
	if now == nil {
		now = time.Now
	}
	return &registrationService{
		guard:            guard,
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		emails:           emails,
		storagePID:       storagePID,
		organizerEmail:   organizerEmail,
		now:              now,
	}
}

// EnrichWithMetadata attaches the event, the acting user, the storage
// location, and the waiting-list placement to the registration.
//
// The registration goes on the waiting list only when the list is enabled and
// the vacancy count resolves to exactly zero. Unbounded vacancies never place
// anyone on the waiting list, and a full event without a waiting list is not
// blocked here: the guard's date and conflict checks are the actual gate.
func (s *registrationService) EnrichWithMetadata(ctx context.Context, reg *domain.Registration, event *domain.Event) error {
	reg.Event = event

	userID, ok := s.guard.UserIDFromSession(ctx)
	if !ok {
		return domain.ErrNoUserInSession
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
		}
		return fmt.Errorf("get user: %w", err)
	}
	reg.User = user
	reg.StoragePID = s.storagePID

	vacancies, limited, err := s.guard.Vacancies(ctx, event)
	if err != nil {
		return fmt.Errorf("get vacancies: %w", err)
	}
	reg.OnWaitingList = event.WaitingList && limited && vacancies == 0
	return nil
}

// CalculateTotalPrice sets the total from the registration's tier and seat
// count. The tier must be one the event currently offers; asking for an
// unavailable tier is a caller error.
func (s *registrationService) CalculateTotalPrice(reg *domain.Registration) error {
	if reg.Event == nil {
		return domain.ErrNoEvent
	}
	prices := reg.Event.AvailablePrices(s.now())
	price, ok := prices[reg.Tier]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrPriceTierUnavailable, reg.Tier)
	}
	reg.TotalPrice = price.Amount * float64(reg.Seats)
	return nil
}

// CreateAdditionalAttendees materializes user records from the registration's
// free-form attendee payload. Parsing is lenient: a malformed payload, a
// non-object entry, or an entry without a name is skipped silently rather
// than failing the registration. Entries are not deduplicated.
func (s *registrationService) CreateAdditionalAttendees(reg *domain.Registration, storagePID int64) {
	if strings.TrimSpace(reg.AttendeesPayload) == "" {
		return
	}
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(reg.AttendeesPayload), &entries); err != nil {
		return
	}
	for _, entry := range entries {
		var in domain.AttendeeInput
		if err := json.Unmarshal(entry, &in); err != nil {
			continue
		}
		if strings.TrimSpace(in.Name) == "" {
			continue
		}
		reg.AdditionalAttendees = append(reg.AdditionalAttendees, &domain.User{
			Username:   generateAttendeeUsername(),
			Name:       in.Name,
			Email:      in.Email,
			StoragePID: storagePID,
			OneTime:    true,
		})
	}
}

// generateAttendeeUsername returns the fixed prefix followed by 32 hex chars.
func generateAttendeeUsername() string {
	b := make([]byte, 16)
	// crypto/rand.Read does not fail on supported platforms.
	_, _ = rand.Read(b)
	return attendeeUsernamePrefix + hex.EncodeToString(b)
}

// Persist stores the attendee users and the registration, then refreshes the
// event's denormalized registration counter so the two caches stay in step.
func (s *registrationService) Persist(ctx context.Context, reg *domain.Registration) error {
	if reg.Event == nil {
		return domain.ErrNoEvent
	}
	now := s.now()
	for _, attendee := range reg.AdditionalAttendees {
		attendee.CreatedAt = now
		attendee.UpdatedAt = now
		if err := s.userRepo.Create(ctx, attendee); err != nil {
			return fmt.Errorf("create attendee user: %w", err)
		}
	}
	reg.CreatedAt = now
	reg.UpdatedAt = now
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	if err := s.eventRepo.RefreshRegistrationCounter(ctx, reg.Event.ID); err != nil {
		return fmt.Errorf("refresh registration counter: %w", err)
	}
	return nil
}

// SendEmails sends the attendee confirmation (or waiting-list notice) and the
// organizer notification. It requires a persisted registration.
func (s *registrationService) SendEmails(ctx context.Context, reg *domain.Registration) error {
	if reg.ID == "" || reg.ID == "0" {
		return domain.ErrNotPersisted
	}
	if reg.Event == nil {
		return domain.ErrNoEvent
	}
	if err := s.emails.SendRegistrationConfirmation(ctx, &domain.RegistrationEmailData{
		Email:         reg.User.Email,
		Name:          reg.User.Name,
		EventTitle:    reg.Event.Title,
		Seats:         reg.Seats,
		TotalPrice:    reg.TotalPrice,
		OnWaitingList: reg.OnWaitingList,
	}); err != nil {
		return fmt.Errorf("send confirmation: %w", err)
	}
	if s.organizerEmail == "" {
		return nil
	}
	if err := s.emails.SendOrganizerNotification(ctx, &domain.OrganizerNotificationData{
		OrganizerEmail: s.organizerEmail,
		EventTitle:     reg.Event.Title,
		AttendeeName:   reg.User.Name,
		Seats:          reg.Seats,
		OnWaitingList:  reg.OnWaitingList,
	}); err != nil {
		return fmt.Errorf("send organizer notification: %w", err)
	}
	return nil
}
