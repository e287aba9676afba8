package dubins

import (
	"iter"
	"math"
	"slices"
)

// Maneuver2D is a path of bounded curvature between two planar poses.
//
// A maneuver for which no path could be found has an Unsolved solution
// with infinite length.
type Maneuver2D struct {
	Start  Pose
	Goal   Pose
	Radius float64

	Solution Solution
}

// Options2D configures [NewManeuver2DOpt].
type Options2D struct {
	// MinLength is the shortest acceptable path length. The shortest
	// feasible path at least this long is chosen. Values <= 0 select the
	// shortest path.
	MinLength float64

	// DisableCCC excludes the RLR and LRL families.
	DisableCCC bool
}

// NewManeuver2D returns the shortest path from qi to qf with the given
// turning radius, considering all six families.
func NewManeuver2D(qi, qf Pose, radius float64) Maneuver2D {
	return NewManeuver2DOpt(qi, qf, radius, Options2D{})
}

// NewManeuver2DOpt is like [NewManeuver2D] but allows restricting the
// families and setting a minimum path length.
func NewManeuver2DOpt(qi, qf Pose, radius float64, opts Options2D) Maneuver2D {
	m := Maneuver2D{
		Start:    qi,
		Goal:     qf,
		Radius:   radius,
		Solution: unsolved(),
	}

	paths := candidates(qi, qf, radius, !opts.DisableCCC)
	slices.SortStableFunc(paths, compareLength)

	if opts.MinLength <= 0 {
		if paths[0].Feasible() {
			m.Solution = paths[0]
		}
		return m
	}
	for _, p := range paths {
		if p.Feasible() && p.Length >= opts.MinLength {
			m.Solution = p
			break
		}
	}
	return m
}

// candidates computes one solution per family, unsorted. Infeasible families
// are represented by solutions with infinite length.
func candidates(qi, qf Pose, radius float64, ccc bool) []Solution {
	chord := qf.Point().Sub(qi.Point())
	w := newWord(qi.Heading, qf.Heading, chord, radius)

	var paths []Solution
	thresh := radius * 1e-5
	if w.d < thresh && math.Abs(AngleDiff(w.a, w.b)) < thresh &&
		qi.Point().ChebyshevDistance(qf.Point()) < thresh {
		// Already at the goal: go around once.
		paths = []Solution{{P: twoPi, Case: FullCircle}}
	} else {
		paths = []Solution{w.lsl(), w.rsr(), w.lsr(), w.rsl()}
		if ccc {
			paths = append(paths, w.rlr(), w.lrl())
		}
	}
	for i := range paths {
		p := &paths[i]
		p.Length = (p.T + p.P + p.Q) * radius
	}
	return paths
}

// word holds the problem normalized to a unit turning radius in the frame
// whose x axis points from the start to the goal.
type word struct {
	a, b, d        float64
	sa, ca, sb, cb float64
	cab            float64
}

func newWord(startHeading, goalHeading float64, chord Vec2, radius float64) word {
	rot := Mod2Pi(chord.Angle())
	w := word{
		a: Mod2Pi(startHeading - rot),
		b: Mod2Pi(goalHeading - rot),
		d: chord.Hypot() / radius,
	}
	w.sa, w.ca = math.Sincos(w.a)
	w.sb, w.cb = math.Sincos(w.b)
	w.cab = math.Cos(w.a - w.b)
	return w
}

// The squared straight lengths are written in terms of 1-cab so that nearly
// straight paths on large radii, where d is tiny, keep their precision.
func (w word) lsl() Solution {
	aux := math.Atan2(w.cb-w.ca, w.d+w.sa-w.sb)
	return Solution{
		T:    Mod2Pi(-w.a + aux),
		P:    math.Sqrt(max(0, w.d*w.d+2*(1-w.cab)+2*w.d*(w.sa-w.sb))),
		Q:    Mod2Pi(w.b - aux),
		Case: LSL,
	}
}

func (w word) rsr() Solution {
	aux := math.Atan2(w.ca-w.cb, w.d-w.sa+w.sb)
	return Solution{
		T:    Mod2Pi(w.a - aux),
		P:    math.Sqrt(max(0, w.d*w.d+2*(1-w.cab)+2*w.d*(w.sb-w.sa))),
		Q:    Mod2Pi(Mod2Pi(-w.b) + aux),
		Case: RSR,
	}
}

func (w word) lsr() Solution {
	pSq := w.d*w.d - 2*(1-w.cab) + 2*w.d*(w.sa+w.sb)
	if pSq <= 0 {
		return infeasible(LSR)
	}
	p := math.Sqrt(pSq)
	aux := math.Atan2(-w.ca-w.cb, w.d+w.sa+w.sb) - math.Atan(-2/p)
	return Solution{
		T:    Mod2Pi(-w.a + aux),
		P:    p,
		Q:    Mod2Pi(-w.b + aux),
		Case: LSR,
	}
}

func (w word) rsl() Solution {
	pSq := w.d*w.d - 2*(1-w.cab) - 2*w.d*(w.sa+w.sb)
	if pSq <= 0 {
		return infeasible(RSL)
	}
	p := math.Sqrt(pSq)
	aux := math.Atan2(w.ca+w.cb, w.d-w.sa-w.sb) - math.Atan(2/p)
	return Solution{
		T:    Mod2Pi(w.a - aux),
		P:    p,
		Q:    Mod2Pi(w.b - aux),
		Case: RSL,
	}
}

func (w word) rlr() Solution {
	aux := (6 - w.d*w.d + 2*w.cab + 2*w.d*(w.sa-w.sb)) / 8
	if math.Abs(aux) > 1 {
		return infeasible(RLR)
	}
	p := Mod2Pi(-math.Acos(aux))
	t := Mod2Pi(w.a - math.Atan2(w.ca-w.cb, w.d-w.sa+w.sb) + p/2)
	return Solution{
		T:    t,
		P:    p,
		Q:    Mod2Pi(w.a - w.b - t + p),
		Case: RLR,
	}
}

func (w word) lrl() Solution {
	aux := (6 - w.d*w.d + 2*w.cab + 2*w.d*(w.sb-w.sa)) / 8
	if math.Abs(aux) > 1 {
		return infeasible(LRL)
	}
	p := Mod2Pi(-math.Acos(aux))
	t := Mod2Pi(-w.a + math.Atan2(w.cb-w.ca, w.d+w.sa-w.sb) + p/2)
	return Solution{
		T:    t,
		P:    p,
		Q:    Mod2Pi(w.b - w.a - t + p),
		Case: LRL,
	}
}

// Feasible reports whether a path was found.
func (m Maneuver2D) Feasible() bool {
	return m.Solution.Feasible()
}

// Length returns the length of the path, or +∞ if there is none.
func (m Maneuver2D) Length() float64 {
	return m.Solution.Length
}

// At returns the pose at the given arc length along the path. Offsets past
// the end extrapolate the last segment. The heading is normalized to
// [0, 2π).
func (m Maneuver2D) At(offset float64) Pose {
	s := m.Solution
	u := offset / m.Radius

	// Segments are walked in a frame with unit radius whose origin is the
	// start position.
	q0 := Pose{Heading: m.Start.Heading}
	q1 := advance(q0, s.T, s.Case[0])
	q2 := advance(q1, s.P, s.Case[1])

	var q Pose
	switch {
	case u < s.T:
		q = advance(q0, u, s.Case[0])
	case u < s.T+s.P:
		q = advance(q1, u-s.T, s.Case[1])
	default:
		q = advance(q2, u-s.T-s.P, s.Case[2])
	}

	toWorld := Scale(m.Radius, m.Radius).ThenTranslate(Vec2(m.Start.Point()))
	pt := q.Point().Transform(toWorld)
	return Pose{X: pt.X, Y: pt.Y, Heading: Mod2Pi(q.Heading)}
}

// Samples returns n poses evenly spaced by arc length, including both end
// points.
func (m Maneuver2D) Samples(n int) iter.Seq[Pose] {
	return func(yield func(Pose) bool) {
		for i := range n {
			if !yield(m.At(m.Length() * spacing(i, n))) {
				return
			}
		}
	}
}

// advance moves q along a segment of the given type by the normalized length
// u.
func advance(q Pose, u float64, typ SegmentType) Pose {
	switch typ {
	case Left:
		return Pose{
			X:       q.X + math.Sin(q.Heading+u) - math.Sin(q.Heading),
			Y:       q.Y - math.Cos(q.Heading+u) + math.Cos(q.Heading),
			Heading: q.Heading + u,
		}
	case Right:
		return Pose{
			X:       q.X - math.Sin(q.Heading-u) + math.Sin(q.Heading),
			Y:       q.Y + math.Cos(q.Heading-u) - math.Cos(q.Heading),
			Heading: q.Heading - u,
		}
	case Straight:
		return Pose{
			X:       q.X + math.Cos(q.Heading)*u,
			Y:       q.Y + math.Sin(q.Heading)*u,
			Heading: q.Heading,
		}
	default:
		return q
	}
}

// spacing returns the fraction of the total length at which sample i of n is
// taken.
func spacing(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}
