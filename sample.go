package dubins

import (
	"iter"
	"slices"
)

// at returns the state at the given progress along the longitudinal path.
// m must be feasible.
func (m Maneuver3D) at(progress float64) State {
	lat, lon := m.path[0], m.path[1]
	sz := lon.At(progress)
	xy := lat.At(sz.X)
	return State{
		X:     xy.X,
		Y:     xy.Y,
		Z:     sz.Y,
		Yaw:   xy.Heading,
		Pitch: sz.Heading,
	}
}

// Samples returns an iterator over n states evenly spaced along the
// maneuver. The first state is the start and, for n ≥ 2, the last state is
// the goal. Yaw and pitch are normalized to [0, 2π).
//
// The iterator can be used any number of times.
func (m Maneuver3D) Samples(n int) (iter.Seq[State], error) {
	if !m.Feasible() {
		return nil, ErrInfeasibleManeuver
	}
	return func(yield func(State) bool) {
		for i := range n {
			if !yield(m.at(m.length * spacing(i, n))) {
				return
			}
		}
	}, nil
}

// Sample is like [Maneuver3D.Samples] but collects the states into a slice.
func (m Maneuver3D) Sample(n int) ([]State, error) {
	seq, err := m.Samples(n)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}
