package dubins

import "math"

const twoPi = 2 * math.Pi

// Mod2Pi reduces th to its representative in [0, 2π).
func Mod2Pi(th float64) float64 {
	t := math.Mod(th, twoPi)
	if t < 0 {
		t += twoPi
	}
	// -ε + 2π rounds to 2π for tiny ε.
	if t >= twoPi {
		return 0
	}
	return t
}

// AngleDiff returns the signed shortest rotation from b to a, in [-π, π).
func AngleDiff(a, b float64) float64 {
	return Mod2Pi(a-b+math.Pi) - math.Pi
}
