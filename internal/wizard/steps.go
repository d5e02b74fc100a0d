// Package wizard sequences one submission: the three visible steps of the
// wizard and the call that moves between them.
package wizard

import "sync"

// State is one of the three mutually exclusive wizard steps
type State int

const (
	StateWelcome State = iota
	StateLoading
	StateResult
)

// States lists every state in display order
var States = []State{StateWelcome, StateLoading, StateResult}

// String returns the state name
func (s State) String() string {
	switch s {
	case StateWelcome:
		return "welcome"
	case StateLoading:
		return "loading"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the three known states
func (s State) Valid() bool {
	return s >= StateWelcome && s <= StateResult
}

// Steps owns which state is visible. It is the only thing that changes
// visibility; views ask Active or IsActive.
type Steps struct {
	mu       sync.RWMutex
	active   map[State]bool
	onScroll func()
	onChange func(from, to State)
}

// NewSteps creates a controller with StateWelcome active
func NewSteps() *Steps {
	s := &Steps{active: make(map[State]bool, len(States))}
	for _, st := range States {
		s.active[st] = false
	}
	s.active[StateWelcome] = true
	return s
}

// OnScroll registers the scroll-to-top side effect run on every activation
func (s *Steps) OnScroll(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onScroll = fn
}

// OnChange registers a hook observing every activation
func (s *Steps) OnChange(fn func(from, to State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Activate deactivates every state, activates target and scrolls to top.
// Every transition is legal, including to the state already active.
// Values outside the three states are ignored.
func (s *Steps) Activate(target State) {
	if !target.Valid() {
		return
	}

	s.mu.Lock()
	from := s.activeLocked()
	for st := range s.active {
		s.active[st] = false
	}
	s.active[target] = true
	scroll, change := s.onScroll, s.onChange
	s.mu.Unlock()

	if scroll != nil {
		scroll()
	}
	if change != nil {
		change(from, target)
	}
}

// Active returns the visible state
func (s *Steps) Active() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

// IsActive reports whether st is the visible state
func (s *Steps) IsActive(st State) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[st]
}

// Visible returns every active state. It always has exactly one element.
func (s *Steps) Visible() []State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []State
	for _, st := range States {
		if s.active[st] {
			out = append(out, st)
		}
	}
	return out
}

func (s *Steps) activeLocked() State {
	for _, st := range States {
		if s.active[st] {
			return st
		}
	}
	return StateWelcome
}
