package dubins

import (
	"fmt"
	"math"
)

// SegmentType is the kind of a single path segment.
type SegmentType uint8

const (
	// None marks a missing segment. It is never part of a feasible path.
	None SegmentType = iota
	Left
	Straight
	Right
)

func (s SegmentType) String() string {
	switch s {
	case Left:
		return "L"
	case Straight:
		return "S"
	case Right:
		return "R"
	case None:
		return "X"
	default:
		return fmt.Sprintf("SegmentType(%d)", uint8(s))
	}
}

// ManeuverCase is the sequence of segment types of a path: the first turn,
// the middle segment and the last turn.
type ManeuverCase [3]SegmentType

var (
	LSL = ManeuverCase{Left, Straight, Left}
	RSR = ManeuverCase{Right, Straight, Right}
	LSR = ManeuverCase{Left, Straight, Right}
	RSL = ManeuverCase{Right, Straight, Left}
	RLR = ManeuverCase{Right, Left, Right}
	LRL = ManeuverCase{Left, Right, Left}

	// FullCircle is the case of a path that starts and ends at the same
	// pose. Its middle segment is a complete right-hand circle.
	FullCircle = ManeuverCase{Right, Right, Right}

	// Unsolved is the case of a maneuver for which no path was found.
	Unsolved = ManeuverCase{None, None, None}
)

func (c ManeuverCase) String() string {
	return c[0].String() + c[1].String() + c[2].String()
}

// IsCCC reports whether the case consists of three turns.
func (c ManeuverCase) IsCCC() bool {
	return c == RLR || c == LRL
}

// Solution describes one path of a family. T, P and Q are the lengths of the
// three segments, normalized by the turning radius; turn lengths are thus
// angles. Length is the total length in world units.
//
// Infeasible solutions have infinite (or NaN) parameters and length.
type Solution struct {
	T      float64
	P      float64
	Q      float64
	Length float64
	Case   ManeuverCase
}

func unsolved() Solution {
	inf := math.Inf(1)
	return Solution{Length: inf, Case: Unsolved}
}

func infeasible(c ManeuverCase) Solution {
	inf := math.Inf(1)
	return Solution{T: inf, P: inf, Q: inf, Length: inf, Case: c}
}

// Params returns the normalized segment lengths.
func (s Solution) Params() [3]float64 {
	return [3]float64{s.T, s.P, s.Q}
}

// Feasible reports whether s describes an actual path.
func (s Solution) Feasible() bool {
	return s.Case != Unsolved && !math.IsInf(s.Length, 0) && !math.IsNaN(s.Length)
}

func (s Solution) String() string {
	return fmt.Sprintf("%s(%g, %g, %g) = %g", s.Case, s.T, s.P, s.Q, s.Length)
}

// compareLength orders solutions by ascending length. NaN and +∞ sort after
// every finite length and compare equal to each other.
func compareLength(a, b Solution) int {
	aBad := math.IsNaN(a.Length) || math.IsInf(a.Length, 1)
	bBad := math.IsNaN(b.Length) || math.IsInf(b.Length, 1)
	switch {
	case aBad && bBad:
		return 0
	case aBad:
		return 1
	case bBad:
		return -1
	case a.Length < b.Length:
		return -1
	case a.Length > b.Length:
		return 1
	default:
		return 0
	}
}
