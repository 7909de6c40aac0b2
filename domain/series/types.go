package series

import "fmt"

// Observation is a single labeled cost reading for one reporting period.
type Observation struct {
	Period string  `json:"period"` // e.g. "Q1 2024"
	Value  float64 `json:"value"`  // non-negative monetary amount
}

// Series is an ordered run of observations. Insertion order is
// chronological order; period labels are unique within a series.
// A constructed Series is immutable - accessors hand out copies.
type Series struct {
	observations []Observation
}

// New validates and builds a series. An empty series is constructible;
// length requirements are enforced by the operations that need them.
func New(observations ...Observation) (Series, error) {
	seen := make(map[string]struct{}, len(observations))
	for i, obs := range observations {
		if obs.Period == "" {
			return Series{}, fmt.Errorf("observation %d: period label must be set", i)
		}
		if obs.Value < 0 {
			return Series{}, fmt.Errorf("observation %q: value must be non-negative, got %f", obs.Period, obs.Value)
		}
		if _, dup := seen[obs.Period]; dup {
			return Series{}, fmt.Errorf("duplicate period label %q", obs.Period)
		}
		seen[obs.Period] = struct{}{}
	}

	owned := make([]Observation, len(observations))
	copy(owned, observations)
	return Series{observations: owned}, nil
}

// MustNew builds a series and panics on invalid input.
// Use only in tests and fixtures - production code should handle validation errors.
func MustNew(observations ...Observation) Series {
	s, err := New(observations...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.observations)
}

// Observations returns a copy of the ordered observations.
func (s Series) Observations() []Observation {
	out := make([]Observation, len(s.observations))
	copy(out, s.observations)
	return out
}

// Values returns a copy of the values in chronological order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.observations))
	for i, obs := range s.observations {
		out[i] = obs.Value
	}
	return out
}

// Periods returns a copy of the period labels in chronological order.
func (s Series) Periods() []string {
	out := make([]string, len(s.observations))
	for i, obs := range s.observations {
		out[i] = obs.Period
	}
	return out
}

// At returns the observation at index i.
func (s Series) At(i int) Observation {
	return s.observations[i]
}

// First returns the earliest observation, ok=false for an empty series.
func (s Series) First() (Observation, bool) {
	if len(s.observations) == 0 {
		return Observation{}, false
	}
	return s.observations[0], true
}

// Last returns the latest observation, ok=false for an empty series.
func (s Series) Last() (Observation, bool) {
	if len(s.observations) == 0 {
		return Observation{}, false
	}
	return s.observations[len(s.observations)-1], true
}
