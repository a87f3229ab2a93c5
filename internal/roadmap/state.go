// internal/roadmap/state.go
//
// State is the whole roadmap: the ordered initiatives plus the north star.
// It is a value; every mutation returns a new State and leaves the receiver
// untouched, so renderers can hold a snapshot while the UI keeps editing.

package roadmap

import "github.com/google/uuid"

// State holds the roadmap being edited.
type State struct {
	NorthStar   string
	Initiatives []Initiative

	newID func() string
}

// Option customizes State construction.
type Option func(*State)

// WithIDSource overrides how initiative identities are minted.
func WithIDSource(next func() string) Option {
	return func(s *State) {
		if next != nil {
			s.newID = next
		}
	}
}

// WithNorthStar sets the starting north star text.
func WithNorthStar(text string) Option {
	return func(s *State) {
		s.NorthStar = text
	}
}

// WithInitiatives seeds the roadmap. Seeds get fresh identities; quarter and
// status must already be registry members.
func WithInitiatives(seed ...Initiative) Option {
	return func(s *State) {
		for _, init := range seed {
			init.ID = s.mintID()
			s.Initiatives = append(s.Initiatives, init)
		}
	}
}

// New returns an empty roadmap.
func New(opts ...Option) State {
	s := State{newID: newUUID}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// newUUID mints time-ordered identities; v7 UUIDs are monotonic within a
// process so two adds in the same millisecond still differ.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (s State) mintID() string {
	next := s.newID
	if next == nil {
		next = newUUID
	}
	for {
		id := next()
		if _, ok := s.index(id); !ok {
			return id
		}
	}
}

// Len returns the number of initiatives.
func (s State) Len() int {
	return len(s.Initiatives)
}

// Find looks up an initiative by identity.
func (s State) Find(id string) (Initiative, bool) {
	idx, ok := s.index(id)
	if !ok {
		return Initiative{}, false
	}
	return s.Initiatives[idx], true
}

// Add appends an initiative with default field values.
func (s State) Add() (State, Initiative) {
	init := Initiative{
		ID:      s.mintID(),
		Quarter: DefaultQuarter(),
		Status:  StatusAvailable,
	}
	next := s.clone()
	next.Initiatives = append(next.Initiatives, init)
	return next, init
}

// Update sets one field of the initiative with the given identity. An
// unknown identity leaves the state as it was.
func (s State) Update(id string, f Field, value string) (State, error) {
	idx, ok := s.index(id)
	if !ok {
		if _, err := (Initiative{}).Get(f); err != nil {
			return s, err
		}
		return s, nil
	}
	updated, err := s.Initiatives[idx].With(f, value)
	if err != nil {
		return s, err
	}
	next := s.clone()
	next.Initiatives[idx] = updated
	return next, nil
}

// Get reads one field of the initiative with the given identity.
func (s State) Get(id string, f Field) (string, bool) {
	init, ok := s.Find(id)
	if !ok {
		return "", false
	}
	value, err := init.Get(f)
	if err != nil {
		return "", false
	}
	return value, true
}

// Delete removes the initiative with the given identity. Deleting an unknown
// identity is a no-op.
func (s State) Delete(id string) State {
	idx, ok := s.index(id)
	if !ok {
		return s
	}
	next := s.clone()
	next.Initiatives = append(next.Initiatives[:idx], next.Initiatives[idx+1:]...)
	return next
}

// Move shifts an initiative delta places within the collection, clamped to
// the ends.
func (s State) Move(id string, delta int) State {
	idx, ok := s.index(id)
	if !ok || delta == 0 {
		return s
	}
	target := idx + delta
	if target < 0 {
		target = 0
	}
	if target > len(s.Initiatives)-1 {
		target = len(s.Initiatives) - 1
	}
	if target == idx {
		return s
	}
	next := s.clone()
	moved := next.Initiatives[idx]
	next.Initiatives = append(next.Initiatives[:idx], next.Initiatives[idx+1:]...)
	next.Initiatives = append(next.Initiatives[:target], append([]Initiative{moved}, next.Initiatives[target:]...)...)
	return next
}

// SetNorthStar replaces the north star text.
func (s State) SetNorthStar(text string) State {
	next := s.clone()
	next.NorthStar = text
	return next
}

func (s State) index(id string) (int, bool) {
	for i := range s.Initiatives {
		if s.Initiatives[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s State) clone() State {
	next := s
	next.Initiatives = make([]Initiative, len(s.Initiatives))
	copy(next.Initiatives, s.Initiatives)
	return next
}
