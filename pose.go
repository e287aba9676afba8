package dubins

import (
	"fmt"
	"math"
)

// Pose is an oriented point in a plane.
//
// In the lateral plane X and Y are world coordinates and Heading is the yaw.
// In the longitudinal plane X is the progress along the lateral path, Y is
// the altitude and Heading is the pitch.
type Pose struct {
	X       float64
	Y       float64
	Heading float64
}

func (p Pose) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

func (p Pose) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Heading)
}

// Transform applies aff to the position of p and rotates its heading with the
// linear part of aff.
func (p Pose) Transform(aff Affine) Pose {
	pt := p.Point().Transform(aff)
	return Pose{
		X:       pt.X,
		Y:       pt.Y,
		Heading: aff.linear(VecFromAngle(p.Heading)).Angle(),
	}
}

// State is a full 3D pose. Yaw and Pitch are in radians.
type State struct {
	X     float64
	Y     float64
	Z     float64
	Yaw   float64
	Pitch float64
}

func (s State) String() string {
	return fmt.Sprintf("(%g, %g, %g, yaw %g, pitch %g)", s.X, s.Y, s.Z, s.Yaw, s.Pitch)
}

// Lateral returns the projection of s onto the (x, y, yaw) plane.
func (s State) Lateral() Pose {
	return Pose{X: s.X, Y: s.Y, Heading: s.Yaw}
}

// longitudinal returns the pose of s in the (progress, z, pitch) plane.
func (s State) longitudinal(progress float64) Pose {
	return Pose{X: progress, Y: s.Z, Heading: s.Pitch}
}

// PitchLimits bounds the pitch angle of a 3D maneuver.
type PitchLimits struct {
	Min float64
	Max float64
}

// Valid reports whether the limits describe a non-empty interval.
func (l PitchLimits) Valid() bool {
	return l.Min < l.Max
}

// Contains reports whether angle lies within the limits, inclusively.
func (l PitchLimits) Contains(angle float64) bool {
	return angle >= l.Min && angle <= l.Max
}

// steepest returns the largest absolute pitch that the limits allow.
func (l PitchLimits) steepest() float64 {
	return math.Max(-l.Min, l.Max)
}
