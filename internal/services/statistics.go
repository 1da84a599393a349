package services

import (
	"context"
	"fmt"

	"seminarbooking/internal/domain"
)

type statisticsService struct {
	registrationRepo domain.RegistrationRepository
}

// NewStatisticsService creates a StatisticsCalculator backed by the given
// registration repository.
func NewStatisticsService(registrationRepo domain.RegistrationRepository) domain.StatisticsCalculator {
	return &statisticsService{registrationRepo: registrationRepo}
}

// EnrichWithStatistics attaches a seat statistics snapshot to the event.
// Topics stay without statistics. The snapshot is cached on the event
// instance: a second call does not hit the repository again.
func (s *statisticsService) EnrichWithStatistics(ctx context.Context, event *domain.Event) error {
	switch event.Kind {
	case domain.KindTopic:
		return nil
	case domain.KindSingleEvent, domain.KindEventDate:
	}
	if event.Stats != nil {
		return nil
	}

	// Counts are fetched regardless of whether registration or the waiting
	// list is currently enabled: historical seats stay visible even after an
	// editor turns registration off.
	regular, err := s.registrationRepo.CountRegularByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("count regular seats: %w", err)
	}
	waiting, err := s.registrationRepo.CountWaitingListByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("count waiting list seats: %w", err)
	}

	event.Stats = &domain.Statistics{
		RegularSeats:       event.OfflineRegistrations + regular,
		WaitingListSeats:   waiting,
		SeatsLimit:         event.MaxRegistrations,
		MinimumSeats:       event.MinRegistrations,
		WaitingListEnabled: event.WaitingList,
	}
	return nil
}
