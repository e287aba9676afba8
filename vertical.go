package dubins

import (
	"math"
	"slices"
)

// NewVerticalManeuver returns the shortest pitch-constrained path from qi to
// qf in the longitudinal plane, where X is the progress along the lateral
// path, Y is the altitude and headings are pitch angles.
//
// Headings do not wrap in this plane. Only the LSL, RSR, LSR and RSL
// families are considered, and a path is only accepted if its first turn
// ends within lims. Crossing tangents steeper than lims are clamped to the
// limit, which makes the result an estimate that need not end exactly at
// qf.
func NewVerticalManeuver(qi, qf Pose, radius float64, lims PitchLimits) Maneuver2D {
	return newVerticalManeuver(qi, qf, radius, lims, nil)
}

// newVerticalManeuver is like NewVerticalManeuver but additionally skips
// candidates for which accept returns false.
func newVerticalManeuver(qi, qf Pose, radius float64, lims PitchLimits, accept func(Maneuver2D) bool) Maneuver2D {
	m := Maneuver2D{
		Start:    qi,
		Goal:     qf,
		Radius:   radius,
		Solution: unsolved(),
	}

	paths := []Solution{
		verticalLSR(qi, qf, radius, lims),
		verticalLSL(qi, qf, radius),
		verticalRSR(qi, qf, radius),
		verticalRSL(qi, qf, radius, lims),
	}
	for i := range paths {
		p := &paths[i]
		p.Length = (p.T + p.P + p.Q) * radius
	}
	slices.SortStableFunc(paths, compareLength)

	for _, p := range paths {
		if !p.Feasible() || p.P < 0 {
			continue
		}
		if math.Abs(p.T) >= math.Pi || math.Abs(p.Q) >= math.Pi {
			continue
		}
		center := qi.Heading - p.T
		if p.Case[0] == Left {
			center = qi.Heading + p.T
		}
		if !lims.Contains(center) {
			continue
		}
		c := m
		c.Solution = p
		if accept != nil && !accept(c) {
			continue
		}
		return c
	}
	return m
}

// singleTurnStraight returns the normalized length of a straight segment
// with the given pitch that climbs by dy, and whether such a segment exists.
func singleTurnStraight(dy, pitch, radius float64) (float64, bool) {
	if math.Abs(pitch) <= 1e-5 || (dy < 0) != (pitch < 0) {
		return 0, false
	}
	return dy / math.Sin(pitch) / radius, true
}

func verticalLSL(qi, qf Pose, radius float64) Solution {
	th1, th2 := qi.Heading, qf.Heading
	if th1 > th2 {
		return infeasible(LSL)
	}

	c1 := turnCircle(qi, radius, Left)
	c2 := turnCircle(qf, radius, Left)
	diff := c2.Center.Sub(c1.Center)
	angle := diff.Angle()

	t := Mod2Pi(angle - th1)
	p := diff.Hypot() / radius
	q := Mod2Pi(th2 - angle)

	if t > math.Pi {
		// Straight at the initial pitch, then a single turn.
		t, q = 0, th2-th1
		var ok bool
		p, ok = singleTurnStraight(c2.Tangent(th1, Left).Y-qi.Y, th1, radius)
		if !ok {
			t, p, q = math.Inf(1), math.Inf(1), math.Inf(1)
		}
	}
	if q > math.Pi {
		// A single turn, then straight at the final pitch.
		t, q = th2-th1, 0
		var ok bool
		p, ok = singleTurnStraight(qf.Y-c1.Tangent(th2, Left).Y, th2, radius)
		if !ok {
			return infeasible(LSL)
		}
	}
	return Solution{T: t, P: p, Q: q, Case: LSL}
}

func verticalRSR(qi, qf Pose, radius float64) Solution {
	th1, th2 := qi.Heading, qf.Heading
	if th2 > th1 {
		return infeasible(RSR)
	}

	c1 := turnCircle(qi, radius, Right)
	c2 := turnCircle(qf, radius, Right)
	diff := c2.Center.Sub(c1.Center)
	angle := diff.Angle()

	t := Mod2Pi(th1 - angle)
	p := diff.Hypot() / radius
	q := Mod2Pi(angle - th2)

	if t > math.Pi {
		t, q = 0, th1-th2
		var ok bool
		p, ok = singleTurnStraight(c2.Tangent(th1, Right).Y-qi.Y, th1, radius)
		if !ok {
			t, p, q = math.Inf(1), math.Inf(1), math.Inf(1)
		}
	}
	if q > math.Pi {
		t, q = th1-th2, 0
		var ok bool
		p, ok = singleTurnStraight(qf.Y-c1.Tangent(th2, Right).Y, th2, radius)
		if !ok {
			return infeasible(RSR)
		}
	}
	return Solution{T: t, P: p, Q: q, Case: RSR}
}

// crossingAngle returns the angle of the vector between the centers of two
// circles of the given radius, and the angle between that vector and their
// crossing tangent. Circles closer than 2·radius are pushed apart
// horizontally until they touch.
func crossingAngle(c1, c2 Circle, radius float64) (centers, alpha, dist float64) {
	diff := c2.Center.Sub(c1.Center)
	dist = diff.Hypot()
	alpha = math.Asin(2 * radius / dist)
	if dist < 2*radius {
		diff.X = math.Sqrt(4*radius*radius - diff.Y*diff.Y)
		alpha = math.Pi / 2
	}
	return diff.Angle(), alpha, dist
}

func verticalLSR(qi, qf Pose, radius float64, lims PitchLimits) Solution {
	th1, th2 := qi.Heading, qf.Heading
	c1 := turnCircle(qi, radius, Left)
	c2 := turnCircle(qf, radius, Right)

	centers, alpha, dist := crossingAngle(c1, c2, radius)
	angle := centers + alpha

	var p float64
	if angle < lims.Max {
		p = math.Sqrt(max(0, dist*dist-4*radius*radius)) / radius
	} else {
		angle = lims.Max
		w1 := c1.Tangent(angle, Left)
		w2 := c2.Tangent(angle, Right)
		p = (w2.Y - w1.Y) / math.Sin(angle) / radius
	}
	return Solution{
		T:    Mod2Pi(angle - th1),
		P:    p,
		Q:    Mod2Pi(angle - th2),
		Case: LSR,
	}
}

func verticalRSL(qi, qf Pose, radius float64, lims PitchLimits) Solution {
	th1, th2 := qi.Heading, qf.Heading
	c1 := turnCircle(qi, radius, Right)
	c2 := turnCircle(qf, radius, Left)

	centers, alpha, dist := crossingAngle(c1, c2, radius)
	angle := centers - alpha

	var p float64
	if angle > lims.Min {
		p = math.Sqrt(max(0, dist*dist-4*radius*radius)) / radius
	} else {
		angle = lims.Min
		w1 := c1.Tangent(angle, Right)
		w2 := c2.Tangent(angle, Left)
		p = (w2.Y - w1.Y) / math.Sin(angle) / radius
	}
	return Solution{
		T:    Mod2Pi(th1 - angle),
		P:    p,
		Q:    Mod2Pi(th2 - angle),
		Case: RSL,
	}
}
