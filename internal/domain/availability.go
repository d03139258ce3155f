package domain

import "time"

// Snapshot is one parsed availability reading from the backend.
type Snapshot struct {
	AvailableSpaces int
	TotalSpaces     int
	OccupiedSpaces  int // 0 if the backend did not report it
	UnknownSpaces   int // 0 if the backend did not report it
}

// Phase is the synchronizer's position in the poll cycle
type Phase int

const (
	PhaseLoading Phase = iota // an attempt is in flight
	PhaseSettled              // the last attempt resolved, successfully or not
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// State is the observable availability state published to the UI.
// ErrorMessage is non-empty only after a failed attempt and is cleared
// when the next attempt starts.
type State struct {
	AvailableSpaces int
	TotalSpaces     int
	OccupiedSpaces  int
	UnknownSpaces   int

	IsLoading    bool
	ErrorMessage string

	UpdatedAt time.Time // last successful fetch, zero before the first one
	Attempts  int       // attempts started since launch
	Failures  int       // consecutive failed attempts
}

// Phase returns PhaseLoading while an attempt is in flight
func (s State) Phase() Phase {
	if s.IsLoading {
		return PhaseLoading
	}
	return PhaseSettled
}

// HasError reports whether the last attempt failed.
func (s State) HasError() bool {
	return s.ErrorMessage != ""
}

// HasData reports whether at least one snapshot has been received.
func (s State) HasData() bool {
	return !s.UpdatedAt.IsZero()
}

// Apply folds a snapshot into the state.
func (s State) Apply(snap Snapshot, at time.Time) State {
	s.AvailableSpaces = snap.AvailableSpaces
	s.TotalSpaces = snap.TotalSpaces
	s.OccupiedSpaces = snap.OccupiedSpaces
	s.UnknownSpaces = snap.UnknownSpaces
	s.UpdatedAt = at
	return s
}

// Occupancy returns the occupied fraction in [0,1] derived from free spaces.
// Returns 0 when the total is unknown.
func (s State) Occupancy() float64 {
	if s.TotalSpaces <= 0 {
		return 0
	}
	free := s.AvailableSpaces
	if free > s.TotalSpaces {
		free = s.TotalSpaces
	}
	return float64(s.TotalSpaces-free) / float64(s.TotalSpaces)
}
