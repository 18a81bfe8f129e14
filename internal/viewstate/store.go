package viewstate

import (
	"sync"
	"time"
)

// Store owns the state of a single session and serializes every update.
type Store struct {
	mu       sync.Mutex
	model    Model
	state    State
	lastSeen time.Time
}

func NewStore(model Model, initial State) *Store {
	return &Store{model: model, state: initial, lastSeen: time.Now()}
}

// Dispatch runs msg through the model and returns the resulting state.
func (s *Store) Dispatch(msg Msg) (State, Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, eff := s.model.Update(s.state, msg)
	s.state = next
	s.lastSeen = time.Now()
	return next, eff
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastSeen is the time of the most recent dispatch or Touch.
func (s *Store) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Store) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}
