package dubins

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

var (
	climbStart = State{}
	climbGoal  = State{X: 100, Y: 100, Z: 100}
)

func assertSameState(t *testing.T, got, want State, epsilon float64) {
	t.Helper()
	d := math.Sqrt((got.X-want.X)*(got.X-want.X) + (got.Y-want.Y)*(got.Y-want.Y) + (got.Z-want.Z)*(got.Z-want.Z))
	if d > epsilon {
		t.Fatalf("got %s, expected %s", got, want)
	}
	assertSameHeading(t, got.Yaw, want.Yaw, epsilon)
	assertSameHeading(t, got.Pitch, want.Pitch, epsilon)
}

func TestManeuver3DClimb(t *testing.T) {
	m := NewManeuver3D(climbStart, climbGoal, 10, testLimits)
	if !m.Feasible() {
		t.Fatalf("got length %g, want a feasible maneuver", m.Length())
	}
	straight := math.Sqrt(3 * 100 * 100)
	if m.Length() < straight {
		t.Errorf("got length %g, shorter than the distance %g", m.Length(), straight)
	}

	lat, ok := m.Lateral()
	if !ok {
		t.Fatal("no lateral path")
	}
	lon, _ := m.Longitudinal()
	if lat.Radius < 10 {
		t.Errorf("horizontal radius %g is below the minimum", lat.Radius)
	}
	// The curvature budget is split between the two planes.
	got := 1/(lat.Radius*lat.Radius) + 1/(lon.Radius*lon.Radius)
	diff(t, 1/100.0, got, approx(1e-12))

	diff(t, lon.Length(), m.Length())
	diff(t, lat.Length(), lon.Goal.X)
	diff(t, 100.0, lon.Goal.Y)
}

func TestManeuver3DDescent(t *testing.T) {
	goal := State{X: 100, Y: 100, Z: -100}
	m := NewManeuver3D(climbStart, goal, 10, testLimits)
	if !m.Feasible() {
		t.Fatalf("got length %g, want a feasible maneuver", m.Length())
	}
	states, err := m.Sample(200)
	if err != nil {
		t.Fatal(err)
	}
	assertSameState(t, states[0], climbStart, 1e-6)
	assertSameState(t, states[len(states)-1], goal, 1e-6)
	for i, s := range states {
		if p := AngleDiff(s.Pitch, 0); p < testLimits.Min-1e-9 || p > testLimits.Max+1e-9 {
			t.Errorf("sample %d has pitch %g outside %v", i, p, testLimits)
		}
	}
}

func TestManeuver3DSamples(t *testing.T) {
	m := NewManeuver3D(climbStart, climbGoal, 10, testLimits)
	for _, n := range []int{2, 3, 10, 500} {
		states, err := m.Sample(n)
		if err != nil {
			t.Fatal(err)
		}
		if len(states) != n {
			t.Fatalf("got %d samples, want %d", len(states), n)
		}
		assertSameState(t, states[0], climbStart, 1e-6)
		assertSameState(t, states[n-1], climbGoal, 1e-6)
	}

	states, _ := m.Sample(500)
	step := m.Length() / 499
	for i := 1; i < len(states); i++ {
		prev, cur := states[i-1], states[i]
		d := math.Sqrt((cur.X-prev.X)*(cur.X-prev.X) + (cur.Y-prev.Y)*(cur.Y-prev.Y) + (cur.Z-prev.Z)*(cur.Z-prev.Z))
		if d > step+1e-9 {
			t.Errorf("samples %d and %d are %g apart, more than the step %g", i-1, i, d, step)
		}
		if cur.Z < prev.Z-1e-9 {
			t.Errorf("sample %d descends while climbing", i)
		}
		if p := AngleDiff(cur.Pitch, 0); p < testLimits.Min-1e-9 || p > testLimits.Max+1e-9 {
			t.Errorf("sample %d has pitch %g outside %v", i, p, testLimits)
		}
	}
}

func TestManeuver3DFewSamples(t *testing.T) {
	m := NewManeuver3D(climbStart, climbGoal, 10, testLimits)

	states, err := m.Sample(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 {
		t.Fatalf("got %d samples, want 1", len(states))
	}
	assertSameState(t, states[0], climbStart, 1e-9)

	states, err = m.Sample(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 0 {
		t.Errorf("got %d samples, want none", len(states))
	}
}

func TestManeuver3DStopIteration(t *testing.T) {
	m := NewManeuver3D(climbStart, climbGoal, 10, testLimits)
	seq, err := m.Samples(100)
	if err != nil {
		t.Fatal(err)
	}
	var n int
	for range seq {
		n++
		if n == 5 {
			break
		}
	}
	diff(t, 5, n)
}

func TestManeuver3DRefinementCap(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := NewManeuver3DOpt(climbStart, climbGoal, 10, testLimits, Options3D{MaxIterations: 1, Logger: log})
	if !m.Feasible() {
		t.Fatalf("got length %g, want a feasible maneuver", m.Length())
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "radius refinement did not converge") {
		t.Errorf("missing warning in log output:\n%s", out)
	}

	// The capped search cannot be better than the full one.
	full := NewManeuver3D(climbStart, climbGoal, 10, testLimits)
	if full.Length() > m.Length()+1e-9 {
		t.Errorf("full search found %g, capped search %g", full.Length(), m.Length())
	}
}

func TestManeuver3DDoublingCap(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	m := NewManeuver3DOpt(climbStart, climbGoal, 10, testLimits, Options3D{MaxDoublings: 1, Logger: log})
	diff(t, -1.0, m.Length())
	if m.Feasible() {
		t.Error("maneuver without a path reports as feasible")
	}
	if _, ok := m.Lateral(); ok {
		t.Error("maneuver without a path has a lateral path")
	}
	if !strings.Contains(buf.String(), "no feasible horizontal radius found") {
		t.Errorf("missing warning in log output:\n%s", buf.String())
	}

	_, err := m.Sample(10)
	if !errors.Is(err, ErrInfeasibleManeuver) {
		t.Errorf("got error %v, want %v", err, ErrInfeasibleManeuver)
	}
}

func TestUsableVertical(t *testing.T) {
	lims := PitchLimits{Min: -0.5, Max: 0.5}
	tests := []struct {
		name  string
		sol   Solution
		pitch float64
		want  bool
	}{
		{"LSL", Solution{T: 0.2, P: 1, Q: 0.2, Length: 5, Case: LSL}, 0, true},
		{"RSR", Solution{T: 0.2, P: 1, Q: 0.2, Length: 5, Case: RSR}, 0, true},
		{"LSR", Solution{T: 0.2, P: 1, Q: 0.2, Length: 5, Case: LSR}, 0, true},
		{"RSL", Solution{T: 0.2, P: 1, Q: 0.2, Length: 5, Case: RSL}, 0, true},
		{"RLR", Solution{T: 0.2, P: 1, Q: 0.2, Length: 5, Case: RLR}, 0, false},
		{"LRL", Solution{T: 0.2, P: 1, Q: 0.2, Length: 5, Case: LRL}, 0, false},
		{"infeasible", infeasible(LSL), 0, false},
		{"unsolved", unsolved(), 0, false},
		{"climb too steep", Solution{T: 0.4, P: 1, Q: 0.4, Length: 5, Case: LSR}, 0.2, false},
		{"dive too steep", Solution{T: 0.4, P: 1, Q: 0.4, Length: 5, Case: RSL}, -0.2, false},
		{"climb at limit", Solution{T: 0.25, P: 1, Q: 0.25, Length: 5, Case: LSR}, 0.25, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, usableVertical(tt.sol, tt.pitch, lims))
		})
	}
}

func TestManeuver3DSamplesUnattempted(t *testing.T) {
	for _, m := range []Maneuver3D{
		{},
		NewManeuver3D(climbStart, climbGoal, 0, testLimits),
	} {
		if _, err := m.Samples(5); !errors.Is(err, ErrInfeasibleManeuver) {
			t.Errorf("got error %v, want %v", err, ErrInfeasibleManeuver)
		}
		states, err := m.Sample(5)
		if !errors.Is(err, ErrInfeasibleManeuver) {
			t.Errorf("got error %v, want %v", err, ErrInfeasibleManeuver)
		}
		if states != nil {
			t.Errorf("got states %v, want none", states)
		}
	}
}

func TestManeuver3DInvalid(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		lims   PitchLimits
	}{
		{"zero radius", 0, testLimits},
		{"negative radius", -3, testLimits},
		{"infinite radius", math.Inf(1), testLimits},
		{"NaN radius", math.NaN(), testLimits},
		{"inverted limits", 10, PitchLimits{Min: 0.3, Max: -0.3}},
		{"empty limits", 10, PitchLimits{Min: 0.1, Max: 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManeuver3D(climbStart, climbGoal, tt.radius, tt.lims)
			diff(t, -1.0, m.Length())
			if m.Feasible() {
				t.Error("invalid maneuver reports as feasible")
			}
		})
	}
}

func TestManeuver3DAccessors(t *testing.T) {
	m := NewManeuver3D(climbStart, climbGoal, 10, testLimits)
	diff(t, climbStart, m.Start())
	diff(t, climbGoal, m.Goal())
	diff(t, 10.0, m.MinRadius())
	diff(t, testLimits, m.PitchLimits())
}

func TestLowerBound(t *testing.T) {
	far := State{X: 400, Z: 50}
	m := LowerBound(climbStart, far, 10, testLimits)
	if !m.Feasible() {
		t.Fatalf("got length %g, want a finite estimate", m.Length())
	}
	if d := math.Hypot(400, 50); m.Length() < d-1e-9 {
		t.Errorf("got length %g, shorter than the distance %g", m.Length(), d)
	}
	lat, _ := m.Lateral()
	diff(t, 10*math.Pow(math.Cos(testLimits.Max), 2), lat.Radius, approx(1e-12))

	// Level flight is outside these limits.
	m = LowerBound(climbStart, State{X: 200, Z: 20}, 10, PitchLimits{Min: 0.2, Max: 0.3})
	diff(t, 0.0, m.Length())
	if m.Feasible() {
		t.Error("estimate without a path reports as feasible")
	}
}

func TestUpperBound(t *testing.T) {
	far := State{X: 400, Z: 50}
	m := UpperBound(climbStart, far, 10, testLimits)
	if !m.Feasible() {
		t.Fatalf("got length %g, want a finite estimate", m.Length())
	}
	if d := math.Hypot(400, 50); m.Length() < d-1e-9 {
		t.Errorf("got length %g, shorter than the distance %g", m.Length(), d)
	}
	lon, _ := m.Longitudinal()
	diff(t, math.Sqrt2*10, lon.Radius, approx(1e-12))

	near := State{X: 10, Y: 10, Z: 5}
	m = UpperBound(climbStart, near, 10, testLimits)
	if !math.IsInf(m.Length(), 1) {
		t.Errorf("got length %g, want +Inf", m.Length())
	}
	if m.Feasible() {
		t.Error("out of reach estimate reports as feasible")
	}
}
