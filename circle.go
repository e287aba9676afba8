package dubins

import (
	"math"
)

// Circle is a turning circle of a pose.
type Circle struct {
	Center Point
	Radius float64
}

// turnCircle returns the circle that a vehicle at pose p follows when it
// turns in direction dir with the given radius. dir must be Left or Right.
func turnCircle(p Pose, radius float64, dir SegmentType) Circle {
	side := math.Pi / 2
	if dir == Right {
		side = -side
	}
	return Circle{
		Center: pointOnCircle(p.Point(), radius, p.Heading+side),
		Radius: radius,
	}
}

// Tangent returns the point of the circle at which a vehicle turning in
// direction dir has the given heading.
func (c Circle) Tangent(heading float64, dir SegmentType) Point {
	side := -math.Pi / 2
	if dir == Right {
		side = -side
	}
	return pointOnCircle(c.Center, c.Radius, heading+side)
}

func pointOnCircle(center Point, radius float64, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return center.Translate(
		Vec2{
			X: cos * radius,
			Y: sin * radius,
		})
}
