package simutil

import (
	"math"
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestSortedIdKeysAscending(t *testing.T) {
	m := map[ids.Id]float64{5: 1, 1: 2, 3: 3}
	keys := SortedIdKeys(m)
	want := []ids.Id{1, 3, 5}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("SortedIdKeys = %v, want %v", keys, want)
		}
	}
}

func TestKahanSumMatchesPlainSumForWellConditionedInputs(t *testing.T) {
	var k KahanSum
	plain := 0.0
	vals := []float64{1.5, 2.25, 3.75, 100.125}
	for _, v := range vals {
		k.Add(v)
		plain += v
	}
	if math.Abs(k.Value()-plain) > 1e-9 {
		t.Fatalf("KahanSum = %f, plain sum = %f", k.Value(), plain)
	}
}

func TestKahanSumOrderIndependentForSameMultiset(t *testing.T) {
	a := []float64{1e16, 1, 1, 1, 1, 1, 1, 1, 1}
	var forward, reverse KahanSum
	for _, v := range a {
		forward.Add(v)
	}
	for i := len(a) - 1; i >= 0; i-- {
		reverse.Add(a[i])
	}
	if forward.Value() != reverse.Value() {
		t.Fatalf("Kahan sum differs by summation order: %v vs %v", forward.Value(), reverse.Value())
	}
}

func TestSolveEccentricAnomalyCircularOrbit(t *testing.T) {
	E := SolveEccentricAnomaly(1.2345, 0)
	if math.Abs(E-1.2345) > 1e-9 {
		t.Fatalf("circular orbit E = %f, want M unchanged (1.2345)", E)
	}
}

func TestSolveEccentricAnomalySatisfiesKeplerEquation(t *testing.T) {
	M := 2.1
	e := 0.6
	E := SolveEccentricAnomaly(M, e)
	residual := E - e*math.Sin(E) - M
	if math.Abs(residual) > 1e-8 {
		t.Fatalf("Kepler residual too large: %e", residual)
	}
}

func TestLocalPositionAtPeriapsis(t *testing.T) {
	el := OrbitalElements{
		SemiMajorAxisMkm:  100,
		Eccentricity:      0.5,
		PeriodDays:        365,
		ArgPeriapsisRad:   0,
		MeanAnomalyPhase0: 0,
	}
	x, y := LocalPosition(el, 0)
	// At M=0, E=0: x = a(1-e) = 50, y = 0.
	if math.Abs(x-50) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Fatalf("periapsis position = (%f, %f), want (50, 0)", x, y)
	}
}

func TestAbsolutePositionStopsOnCycle(t *testing.T) {
	resolve := func(parent ids.Id) (float64, float64, bool, ids.Id) {
		// A -> B -> A cycle.
		if parent == ids.Id(1) {
			return 10, 0, true, ids.Id(2)
		}
		return 5, 0, true, ids.Id(1)
	}
	x, y := AbsolutePosition(0, 0, ids.Id(1), resolve)
	if x != 15 || y != 0 {
		t.Fatalf("AbsolutePosition with cycle = (%f, %f), want (15, 0)", x, y)
	}
}
