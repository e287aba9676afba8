package dubins

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, got Point, want Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

func assertSameHeading(t *testing.T, got, want, epsilon float64) {
	t.Helper()
	if d := math.Abs(AngleDiff(got, want)); d > epsilon {
		t.Fatalf("got heading %g, expected %g (mod 2π)", got, want)
	}
}

func approx(epsilon float64) cmp.Option {
	return cmpopts.EquateApprox(0, epsilon)
}
