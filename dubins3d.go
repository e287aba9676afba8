package dubins

import (
	"errors"
	"log/slog"
	"math"
)

// ErrInfeasibleManeuver is returned when sampling a maneuver that has no
// path.
var ErrInfeasibleManeuver = errors.New("dubins: infeasible maneuver")

const (
	// DefaultMaxDoublings is the default number of times the horizontal
	// radius is doubled while looking for any feasible decomposition.
	DefaultMaxDoublings = 32

	// DefaultMaxIterations is the default cap on the number of steps of
	// the horizontal radius refinement.
	DefaultMaxIterations = 1000
)

const (
	// minVerticalCurvature is the smallest vertical curvature that a
	// horizontal radius has to leave for the vertical path.
	minVerticalCurvature = 1e-5

	// refineStep is the initial step of the radius refinement, relative to
	// the minimum radius. Refinement stops once the step drops below
	// refineTolerance.
	refineStep      = 0.1
	refineTolerance = 1e-10

	// closureTolerance is the relative distance by which a vertical path
	// may miss the goal and still be accepted.
	closureTolerance = 1e-9
)

// Maneuver3D is a path of bounded curvature and bounded pitch between two 3D
// states, decomposed into a lateral path in the (x, y) plane and a
// longitudinal path in the (progress, z) plane.
//
// Length reports -1 for a maneuver that was never constructed, +∞ for one
// that is known to be infeasible, and the length of the path otherwise.
type Maneuver3D struct {
	start     State
	goal      State
	minRadius float64
	limits    PitchLimits

	// path is either empty or holds the lateral and longitudinal paths, in
	// that order.
	path   []Maneuver2D
	length float64
}

// Options3D configures [NewManeuver3DOpt].
type Options3D struct {
	// MaxDoublings caps the search for a first feasible horizontal radius.
	// Zero means DefaultMaxDoublings.
	MaxDoublings int

	// MaxIterations caps the refinement of the horizontal radius. Zero
	// means DefaultMaxIterations.
	MaxIterations int

	// Logger receives debug output of the search. Nil disables logging.
	Logger *slog.Logger
}

func (opts Options3D) withDefaults() Options3D {
	if opts.MaxDoublings <= 0 {
		opts.MaxDoublings = DefaultMaxDoublings
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return opts
}

// NewManeuver3D constructs the shortest maneuver from qi to qf that it can
// find, given the vehicle's minimum turning radius and pitch limits.
//
// The horizontal turning radius is searched for with a greedy line search
// starting at minRadius; the result is not guaranteed to be globally
// optimal.
func NewManeuver3D(qi, qf State, minRadius float64, lims PitchLimits) Maneuver3D {
	return NewManeuver3DOpt(qi, qf, minRadius, lims, Options3D{})
}

// NewManeuver3DOpt is like [NewManeuver3D] but allows configuring the
// search.
func NewManeuver3DOpt(qi, qf State, minRadius float64, lims PitchLimits, opts Options3D) Maneuver3D {
	opts = opts.withDefaults()
	log := opts.Logger
	m := newUnconstructed(qi, qf, minRadius, lims)
	if !(minRadius > 0) || math.IsInf(minRadius, 1) || !lims.Valid() {
		log.Debug("invalid maneuver parameters", "minRadius", minRadius, "pitchMin", lims.Min, "pitchMax", lims.Max)
		return m
	}

	// Find any horizontal radius that leaves enough curvature for a
	// feasible vertical path.
	b := 1.0
	fb, ok := m.tryToConstruct(minRadius * b)
	for i := 0; !ok; i++ {
		if i == opts.MaxDoublings {
			log.Warn("no feasible horizontal radius found", "doublings", i, "lastRadius", minRadius*b)
			return m
		}
		b *= 2
		fb, ok = m.tryToConstruct(minRadius * b)
	}
	log.Debug("found feasible horizontal radius", "radius", minRadius*b, "length", fb[1].Length())

	// Refine the radius: accelerate while the vertical path gets shorter,
	// reverse and decelerate otherwise.
	step := refineStep
	for i := 0; math.Abs(step) > refineTolerance; i++ {
		if i == opts.MaxIterations {
			log.Warn("radius refinement did not converge", "iterations", i, "step", step)
			break
		}
		c := max(b+step, 1)
		if fc, ok := m.tryToConstruct(minRadius * c); ok && fc[1].Length() < fb[1].Length() {
			b, fb = c, fc
			step *= 2
			log.Debug("refined horizontal radius", "radius", minRadius*b, "length", fb[1].Length())
			continue
		}
		step *= -0.1
	}

	m.path = fb
	m.length = fb[1].Length()
	return m
}

func newUnconstructed(qi, qf State, minRadius float64, lims PitchLimits) Maneuver3D {
	return Maneuver3D{
		start:     qi,
		goal:      qf,
		minRadius: minRadius,
		limits:    lims,
		length:    -1,
	}
}

// tryToConstruct decomposes the maneuver using the given horizontal radius.
// It reports false if the remaining curvature does not permit a vertical
// path that respects the pitch limits and reaches the goal.
func (m Maneuver3D) tryToConstruct(horizontalRadius float64) ([]Maneuver2D, bool) {
	lat := NewManeuver2D(m.start.Lateral(), m.goal.Lateral(), horizontalRadius)
	if !lat.Feasible() {
		return nil, false
	}

	k := math.Sqrt(1/(m.minRadius*m.minRadius) - 1/(horizontalRadius*horizontalRadius))
	if !(k >= minVerticalCurvature) {
		return nil, false
	}

	// Fallback and clamped vertical paths are estimates that may miss the
	// goal; only paths that end on it are usable here.
	lon := newVerticalManeuver(
		m.start.longitudinal(0),
		m.goal.longitudinal(lat.Length()),
		1/k,
		m.limits,
		closes,
	)
	if !usableVertical(lon.Solution, m.start.Pitch, m.limits) {
		return nil, false
	}
	return []Maneuver2D{lat, lon}, true
}

// usableVertical reports whether s can serve as the longitudinal path of a
// maneuver starting at the given pitch. Three-turn paths are never usable,
// even though the vertical solver does not currently produce them, and the
// first turn must stay within the pitch limits.
func usableVertical(s Solution, pitch float64, lims PitchLimits) bool {
	if !s.Feasible() || s.Case.IsCCC() {
		return false
	}
	if s.Case[0] == Right {
		return pitch-s.T >= lims.Min
	}
	return pitch+s.T <= lims.Max
}

// closes reports whether the path of m ends at its goal position.
func closes(m Maneuver2D) bool {
	end := m.At(m.Length()).Point()
	tol := closureTolerance * max(1, m.Length())
	return end.Distance(m.Goal.Point()) <= tol
}

// LowerBound returns a cheap, optimistic estimate of the maneuver length. The
// lateral path is solved on the tightest helix radius the pitch limits
// allow. If that decomposition is infeasible, the length is 0.
func LowerBound(qi, qf State, minRadius float64, lims PitchLimits) Maneuver3D {
	m := newUnconstructed(qi, qf, minRadius, lims)

	spiralRadius := minRadius * math.Pow(math.Cos(lims.steepest()), 2)
	lat := NewManeuver2D(qi.Lateral(), qf.Lateral(), spiralRadius)
	lon := NewVerticalManeuver(qi.longitudinal(0), qf.longitudinal(lat.Length()), minRadius, lims)
	if !lon.Feasible() {
		m.length = 0
		return m
	}
	m.path = []Maneuver2D{lat, lon}
	m.length = lon.Length()
	return m
}

// UpperBound returns a cheap, conservative estimate of the maneuver length,
// using a horizontal and vertical radius of √2·minRadius. Goals closer than
// four such radii, horizontally, are out of its reach and get an infinite
// length, as do infeasible decompositions.
func UpperBound(qi, qf State, minRadius float64, lims PitchLimits) Maneuver3D {
	m := newUnconstructed(qi, qf, minRadius, lims)

	safeRadius := math.Sqrt2 * minRadius
	if qi.Lateral().Point().Distance(qf.Lateral().Point()) < 4*safeRadius {
		m.length = math.Inf(1)
		return m
	}

	lat := NewManeuver2D(qi.Lateral(), qf.Lateral(), safeRadius)
	lon := NewVerticalManeuver(qi.longitudinal(0), qf.longitudinal(lat.Length()), safeRadius, lims)
	if !lon.Feasible() {
		m.length = math.Inf(1)
		return m
	}
	m.path = []Maneuver2D{lat, lon}
	m.length = lon.Length()
	return m
}

func (m Maneuver3D) Start() State             { return m.start }
func (m Maneuver3D) Goal() State              { return m.goal }
func (m Maneuver3D) MinRadius() float64       { return m.minRadius }
func (m Maneuver3D) PitchLimits() PitchLimits { return m.limits }

// Length returns the length of the maneuver. See [Maneuver3D] for the
// meaning of negative and infinite lengths.
func (m Maneuver3D) Length() float64 {
	return m.length
}

// Feasible reports whether the maneuver has a path that can be sampled.
func (m Maneuver3D) Feasible() bool {
	return len(m.path) == 2 && !math.IsInf(m.length, 0) && !math.IsNaN(m.length) && m.length >= 0
}

// Lateral returns the path in the (x, y, yaw) plane.
func (m Maneuver3D) Lateral() (Maneuver2D, bool) {
	if len(m.path) != 2 {
		return Maneuver2D{}, false
	}
	return m.path[0], true
}

// Longitudinal returns the path in the (progress, z, pitch) plane.
func (m Maneuver3D) Longitudinal() (Maneuver2D, bool) {
	if len(m.path) != 2 {
		return Maneuver2D{}, false
	}
	return m.path[1], true
}
