package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmcdole/parkwatch/internal/domain"
)

// DefaultPollInterval is the pause between the end of one attempt and the start of the next.
const DefaultPollInterval = 300 * time.Millisecond

// ErrAlreadyRunning is returned when Run is called while another Run is active.
var ErrAlreadyRunning = errors.New("availability polling already running")

// AvailabilityService polls an AvailabilitySource and publishes the resulting
// State to its observers. It is the only writer of that state.
type AvailabilityService struct {
	source   domain.AvailabilitySource
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	running atomic.Bool

	// attemptMu serializes fetch attempts from Run and PollOnce.
	attemptMu sync.Mutex
	// notifyMu orders deliveries so observers see states in publish order.
	// Observers must not call Subscribe from OnState.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	state     domain.State
	observers map[int]domain.StateObserver
	nextID    int
}

// NewAvailabilityService creates a new availability service.
// The initial state is Loading with zero counts.
func NewAvailabilityService(source domain.AvailabilitySource, interval time.Duration, logger *slog.Logger) (*AvailabilityService, error) {
	if source == nil {
		return nil, errors.New("availability source is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be > 0, got %s", interval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AvailabilityService{
		source:    source,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
		state:     domain.State{IsLoading: true},
		observers: make(map[int]domain.StateObserver),
	}, nil
}

// State returns a copy of the current state.
func (s *AvailabilityService) State() domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers an observer and returns a function that removes it.
// The observer is called immediately with the current state, before any later publish.
func (s *AvailabilityService) Subscribe(obs domain.StateObserver) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = obs
	current := s.state
	s.mu.Unlock()

	obs.OnState(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// Run polls until ctx is cancelled and then returns ctx.Err().
// The next attempt is scheduled only after the previous one has resolved,
// so at most one fetch is ever in flight.
func (s *AvailabilityService) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.logger.Info("availability polling started", "interval", s.interval)
	defer s.logger.Info("availability polling stopped")

	timer := time.NewTimer(s.interval)
	timer.Stop()
	defer timer.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.PollOnce(ctx)

		timer.Reset(s.interval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// PollOnce performs exactly one fetch attempt and returns the settled state.
// A call made while another attempt is in flight waits for it to settle first.
func (s *AvailabilityService) PollOnce(ctx context.Context) domain.State {
	s.attemptMu.Lock()
	defer s.attemptMu.Unlock()

	s.update(func(st *domain.State) {
		st.IsLoading = true
		st.ErrorMessage = ""
		st.Attempts++
	})

	snap, err := s.source.Fetch(ctx)

	switch {
	case err == nil:
		return s.update(func(st *domain.State) {
			if st.Failures > 0 {
				s.logger.Info("availability recovered", "failures", st.Failures)
			}
			*st = st.Apply(snap, s.now())
			st.IsLoading = false
			st.Failures = 0
			s.logger.Debug("availability updated",
				"available", snap.AvailableSpaces,
				"total", snap.TotalSpaces,
			)
		})

	case ctx.Err() != nil:
		// Shutdown, not a fetch failure: settle without an error message.
		return s.update(func(st *domain.State) {
			st.IsLoading = false
		})

	default:
		msg := domain.DisplayMessage(err)
		return s.update(func(st *domain.State) {
			st.IsLoading = false
			st.ErrorMessage = msg
			st.Failures++
			s.logger.Warn("availability fetch failed",
				"error", err,
				"failures", st.Failures,
			)
		})
	}
}

// update mutates the state under the lock and notifies observers outside it.
func (s *AvailabilityService) update(fn func(st *domain.State)) domain.State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	state := s.state
	observers := make([]domain.StateObserver, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	for _, obs := range observers {
		obs.OnState(state)
	}
	return state
}
