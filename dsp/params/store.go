package params

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// ErrUnknownParameter is returned for IDs that name no control.
var ErrUnknownParameter = errors.New("params: unknown parameter")

// Store holds the live value of every control as an atomic float64.
// It is safe for one writer and any number of readers without locking.
type Store struct {
	values [numControls]atomic.Uint64
}

// NewStore returns a store initialized to Defaults.
func NewStore() *Store {
	s := &Store{}
	s.Load(Defaults())
	return s
}

// Set stores v for control id, clamped to its range.
func (s *Store) Set(id ID, v float64) error {
	i, ok := indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	s.values[i].Store(math.Float64bits(descriptors[i].Clamp(v)))
	return nil
}

// SetNormalized stores a host-normalized [0, 1] value for control id.
func (s *Store) SetNormalized(id ID, norm float64) error {
	i, ok := indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	s.values[i].Store(math.Float64bits(descriptors[i].Denormalize(norm)))
	return nil
}

// Get returns the current value of control id.
func (s *Store) Get(id ID) (float64, error) {
	i, ok := indexOf(id)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	return math.Float64frombits(s.values[i].Load()), nil
}

// Load stores every value of set, clamped.
func (s *Store) Load(set Set) {
	for i := range descriptors {
		s.values[i].Store(math.Float64bits(descriptors[i].Clamp(*set.field(i))))
	}
}

// Snapshot reads each control with a single atomic load. Values are clamped
// again so that a reader never depends on the writer having done so.
func (s *Store) Snapshot() Set {
	var set Set
	for i := range descriptors {
		*set.field(i) = descriptors[i].Clamp(math.Float64frombits(s.values[i].Load()))
	}
	return set
}
