// Package simutil collects the small numeric helpers every tick pass
// relies on to stay deterministic: sorted-key iteration, extended-precision
// reduction, and Keplerian orbit integration. None of it is specific to any
// one subsystem, which is why it lives apart from galaxy/ships/colonies.
package simutil

import (
	"math"
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// SortedKeys returns the keys of m in ascending order. Every pass over a
// map-keyed container (mineral deposits, cargo holds, per-faction totals)
// goes through this first — ranging a Go map directly is the one thing
// that would make tick output depend on process-local iteration order.
func SortedKeys[K ~int64 | ~int | ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// SortedIdKeys is SortedKeys specialized for ids.Id-keyed maps, since Id is
// a defined type rather than a literal int64/int/string and Go's generic
// constraint above only matches by underlying type through ~.
func SortedIdKeys[V any](m map[ids.Id]V) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	ids.Sort(keys)
	return keys
}

// KahanSum accumulates non-negative floating point values with a running
// compensation term, the "extended precision" reduction the spec calls for
// in lieu of a true long double. Values should be fed in a stable order
// (via SortedKeys/SortedIdKeys) for the result to be reproducible across
// platforms.
type KahanSum struct {
	sum float64
	c   float64
}

// Add folds v into the running sum.
func (k *KahanSum) Add(v float64) {
	y := v - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

// Value returns the accumulated total.
func (k *KahanSum) Value() float64 {
	return k.sum
}

// SumSorted is a convenience wrapper: given keys already in their canonical
// sorted order and a lookup function, it returns the Kahan-compensated sum
// of their values.
func SumSorted[K comparable](keys []K, value func(K) float64) float64 {
	var acc KahanSum
	for _, k := range keys {
		acc.Add(value(k))
	}
	return acc.Value()
}

// OrbitalElements describes a Keplerian orbit relative to a parent body.
type OrbitalElements struct {
	SemiMajorAxisMkm  float64
	Eccentricity      float64
	PeriodDays        float64
	ArgPeriapsisRad   float64
	MeanAnomalyPhase0 float64 // φ: mean anomaly at t=0
}

// maxKeplerIterations bounds the Newton solve; the spec requires at most 12
// steps with early exit once the residual is tiny.
const maxKeplerIterations = 12

// keplerResidualTolerance is the |M − (E − e·sin E)| threshold below which
// Newton iteration stops early.
const keplerResidualTolerance = 1e-10

// twoPi is 2π, used repeatedly for mean-anomaly wrapping.
const twoPi = 2 * math.Pi

// SolveEccentricAnomaly solves Kepler's equation M = E − e·sin(E) for E via
// Newton's method, seeding E = M when e < 0.8 and E = π otherwise (the
// high-eccentricity seed converges faster near the periapsis cusp).
func SolveEccentricAnomaly(meanAnomaly, eccentricity float64) float64 {
	e := eccentricity
	E := meanAnomaly
	if e >= 0.8 {
		E = math.Pi
	}
	for i := 0; i < maxKeplerIterations; i++ {
		f := E - e*math.Sin(E) - meanAnomaly
		if math.Abs(f) < keplerResidualTolerance {
			break
		}
		fPrime := 1 - e*math.Cos(E)
		if fPrime == 0 {
			break
		}
		E -= f / fPrime
	}
	return E
}

// LocalPosition computes a body's (x, y) position in its parent's local
// frame at time t (days since epoch): mean anomaly, eccentric anomaly, the
// standard ellipse parametrization, then rotation by the argument of
// periapsis.
func LocalPosition(el OrbitalElements, tDays float64) (x, y float64) {
	if el.PeriodDays <= 0 {
		// A zero-period "orbit" is a fixed point (e.g. a barycenter
		// placeholder); avoid dividing by zero.
		return el.SemiMajorAxisMkm, 0
	}
	M := math.Mod(el.MeanAnomalyPhase0+twoPi*tDays/el.PeriodDays, twoPi)
	if M < 0 {
		M += twoPi
	}
	E := SolveEccentricAnomaly(M, el.Eccentricity)
	a := el.SemiMajorAxisMkm
	e := el.Eccentricity
	px := a * (math.Cos(E) - e)
	py := a * math.Sqrt(1-e*e) * math.Sin(E)

	// Rotate by the argument of periapsis.
	cosW := math.Cos(el.ArgPeriapsisRad)
	sinW := math.Sin(el.ArgPeriapsisRad)
	x = px*cosW - py*sinW
	y = px*sinW + py*cosW
	return x, y
}

// ParentPositionFunc resolves the absolute position of a parent body by id,
// used by AbsolutePosition to recurse up a body's ancestry (moon → planet
// → star → galaxy origin).
type ParentPositionFunc func(parent ids.Id) (x, y float64, hasParent bool, grandparent ids.Id)

// AbsolutePosition walks up a body's parent chain, summing local positions,
// starting from body id with the given orbital elements and local position
// already computed by the caller at tDays. visited guards against an
// accidental cycle in the parent graph: if a cycle is detected, remaining
// ancestors are treated as sitting at the system origin rather than
// recursing forever.
func AbsolutePosition(startX, startY float64, parent ids.Id, resolve ParentPositionFunc) (x, y float64) {
	x, y = startX, startY
	visited := map[ids.Id]struct{}{}
	cur := parent
	for cur != ids.Invalid {
		if _, seen := visited[cur]; seen {
			break
		}
		visited[cur] = struct{}{}
		px, py, hasParent, next := resolve(cur)
		x += px
		y += py
		if !hasParent {
			break
		}
		cur = next
	}
	return x, y
}
