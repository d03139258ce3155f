package domain

import "context"

// AvailabilitySource fetches one availability snapshot from the backend.
type AvailabilitySource interface {
	// Fetch returns *NetworkError or *DecodeError on failure.
	Fetch(ctx context.Context) (Snapshot, error)
}

// StateObserver receives every published State.
// Implementations must not block: they run on the polling goroutine.
type StateObserver interface {
	OnState(state State)
}

// StateObserverFunc adapts a plain function to StateObserver.
type StateObserverFunc func(state State)

// OnState calls f(state).
func (f StateObserverFunc) OnState(state State) { f(state) }
