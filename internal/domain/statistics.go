package domain

// Statistics is a snapshot of an event's seat accounting, computed from the
// live registration counts plus the offline registrations recorded on the
// event. A SeatsLimit of 0 means the event has no numeric ceiling.
// swagger:model Statistics
type Statistics struct {
	RegularSeats       int  `json:"regular_seats"`
	WaitingListSeats   int  `json:"waiting_list_seats"`
	SeatsLimit         int  `json:"seats_limit"`
	MinimumSeats       int  `json:"minimum_seats"`
	WaitingListEnabled bool `json:"waiting_list_enabled"`
}

// HasRegularVacancies reports whether a regular seat can still be taken.
// Always true for unlimited events.
func (s *Statistics) HasRegularVacancies() bool {
	if s.SeatsLimit == 0 {
		return true
	}
	return s.RegularSeats < s.SeatsLimit
}

// HasWaitingListVacancies reports whether the waiting list is open: the list
// must be enabled and the regular seats must be exhausted.
func (s *Statistics) HasWaitingListVacancies() bool {
	return s.WaitingListEnabled && !s.HasRegularVacancies()
}

// Vacancies returns the remaining regular seats. limited is false when the
// event has no seat limit, in which case the count carries no meaning.
// An overbooked event reports zero, not a negative count.
func (s *Statistics) Vacancies() (vacancies int, limited bool) {
	if s.SeatsLimit == 0 {
		return 0, false
	}
	vacancies = s.SeatsLimit - s.RegularSeats
	if vacancies < 0 {
		vacancies = 0
	}
	return vacancies, true
}
