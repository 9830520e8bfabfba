package rng

// Sequence replays a fixed list of draws, wrapping around at the end.
// Tests use it to script combat rolls and AI choices.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence returns a Sequence over values. With no values it always returns 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Uniform returns the next scripted value.
func (s *Sequence) Uniform() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
