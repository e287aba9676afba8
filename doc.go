// Package dubins computes paths of bounded curvature between oriented poses,
// in the plane and in 3D.
//
// # Planar paths
//
// A Dubins path is the shortest path between two oriented points in the plane
// for a vehicle that moves forward and cannot turn tighter than a given
// radius. It consists of at most three segments, each a left turn (L), a
// straight line (S) or a right turn (R). [NewManeuver2D] evaluates the six
// candidate families LSL, RSR, LSR, RSL, RLR and LRL in closed form and picks
// the shortest. [NewManeuver2DOpt] can exclude the three-turn families and
// ask for the shortest path of at least a given length.
//
// # 3D maneuvers
//
// [NewManeuver3D] connects two [State] values, which add altitude and pitch
// to a planar pose. The maneuver is decomposed into a lateral path in the
// (x, y) plane and a longitudinal path in the plane spanned by the progress
// along the lateral path and the altitude. The vehicle's curvature budget is
// split between the two planes: a horizontal radius r leaves a vertical
// curvature of √(1/ρ² − 1/r²), where ρ is the minimum turning radius. The
// longitudinal path is computed by [NewVerticalManeuver], which respects
// lower and upper pitch limits. The horizontal radius is chosen by a line
// search that minimizes the length of the longitudinal path.
//
// [LowerBound] and [UpperBound] estimate the length of a maneuver without
// searching and are suitable for pruning in planners.
//
// # Feasibility
//
// No function in this package returns an error for an infeasible problem.
// Instead, infeasibility is encoded in the results: planar solutions with
// the [Unsolved] case and infinite length, and 3D maneuvers with a length of
// -1 (never constructed) or +∞ (infeasible). Sampling a maneuver without a
// path returns [ErrInfeasibleManeuver].
//
// # Sampling
//
// [Maneuver3D.Samples] walks the maneuver by arc length of the longitudinal
// path and returns an iterator over states, including both end points. Use
// [slices.Collect] or [Maneuver3D.Sample] to obtain a slice.
//
// # Angles
//
// All angles are in radians. Headings of poses returned by this package are
// normalized to [0, 2π) with [Mod2Pi].
package dubins
