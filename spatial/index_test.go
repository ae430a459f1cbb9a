package spatial

import (
	"reflect"
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestQueryRadiusFindsExactAndExcludesFar(t *testing.T) {
	ix := NewIndex2D(DefaultCellSizeMkm)
	ix.Add(ids.Id(1), Point{X: 0, Y: 0})
	ix.Add(ids.Id(2), Point{X: 10, Y: 0})
	ix.Add(ids.Id(3), Point{X: 1000, Y: 1000})

	got := ix.QueryRadius(Point{X: 0, Y: 0}, 15, 1e-6)
	want := []ids.Id{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("QueryRadius = %v, want %v", got, want)
	}
}

func TestQueryRadiusResultsAreSortedAndDeduped(t *testing.T) {
	ix := NewIndex2D(5)
	for i := 10; i >= 1; i-- {
		ix.Add(ids.Id(i), Point{X: float64(i % 3), Y: float64(i % 2)})
	}
	got := ix.QueryRadius(Point{X: 0, Y: 0}, 100, 0)
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("results not strictly increasing at index %d: %v", i, got)
		}
	}
	if len(got) != 10 {
		t.Fatalf("expected all 10 entities within radius, got %d", len(got))
	}
}

func TestBuildFromPositionsIsOrderIndependent(t *testing.T) {
	positions := map[ids.Id]Point{
		5: {X: 1, Y: 1},
		2: {X: 2, Y: 2},
		9: {X: -5, Y: 3},
	}
	a := NewIndex2D(25)
	a.BuildFromPositions(positions)
	b := NewIndex2D(25)
	b.BuildFromPositions(positions)

	qa := a.QueryRadius(Point{0, 0}, 50, 0)
	qb := b.QueryRadius(Point{0, 0}, 50, 0)
	if !reflect.DeepEqual(qa, qb) {
		t.Fatalf("two builds from the same map diverged: %v != %v", qa, qb)
	}
}

func TestNegativeCoordinatesBucketCorrectly(t *testing.T) {
	ix := NewIndex2D(25)
	ix.Add(ids.Id(1), Point{X: -30, Y: -30})
	got := ix.QueryRadius(Point{X: -30, Y: -30}, 1, 1e-6)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected to find id 1 near its own negative-coordinate cell, got %v", got)
	}
}
