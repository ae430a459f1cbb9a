// Package spatial implements the uniform-grid 2D spatial index used for
// sensor contact queries, weapon range checks, and gathering-target lookups.
// It is a direct port of the original engine's SpatialIndex2D: positions are
// bucketed into square cells, and a radius query visits only the cells the
// query circle can touch.
package spatial

import (
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// DefaultCellSizeMkm is the default cell edge length, in million km (Mkm),
// matching the original index's default.
const DefaultCellSizeMkm = 25.0

// Point is a 2D position in million km (Mkm).
type Point struct {
	X, Y float64
}

type cellKey struct {
	cx, cy int64
}

// Index2D buckets entity positions into a uniform grid for fast radius
// queries. It is rebuilt from scratch each tick (BuildFromPositions) rather than
// incrementally maintained, since entity positions change every tick
// anyway and a full rebuild keeps the data structure simple and
// order-independent.
type Index2D struct {
	cellSize float64
	cells    map[cellKey][]ids.Id
	pos      map[ids.Id]Point
}

// NewIndex2D constructs an empty index with the given cell size. A
// non-positive size falls back to DefaultCellSizeMkm.
func NewIndex2D(cellSizeMkm float64) *Index2D {
	if cellSizeMkm <= 0 {
		cellSizeMkm = DefaultCellSizeMkm
	}
	return &Index2D{
		cellSize: cellSizeMkm,
		cells:    make(map[cellKey][]ids.Id),
		pos:      make(map[ids.Id]Point),
	}
}

func (ix *Index2D) cellCoord(v float64) int64 {
	return int64(floorDiv(v, ix.cellSize))
}

func floorDiv(v, size float64) float64 {
	q := v / size
	if q < 0 {
		// emulate floor for negative coordinates (systems may have
		// negative galactic positions).
		fq := float64(int64(q))
		if fq != q {
			fq -= 1
		}
		return fq
	}
	return float64(int64(q))
}

// Reset clears the index for a fresh build, reusing the backing maps.
func (ix *Index2D) Reset() {
	for k := range ix.cells {
		delete(ix.cells, k)
	}
	for k := range ix.pos {
		delete(ix.pos, k)
	}
}

// Add inserts or moves an entity to the given position.
func (ix *Index2D) Add(id ids.Id, p Point) {
	if old, ok := ix.pos[id]; ok {
		ix.remove(id, old)
	}
	ix.pos[id] = p
	k := cellKey{ix.cellCoord(p.X), ix.cellCoord(p.Y)}
	ix.cells[k] = append(ix.cells[k], id)
}

func (ix *Index2D) remove(id ids.Id, p Point) {
	k := cellKey{ix.cellCoord(p.X), ix.cellCoord(p.Y)}
	bucket := ix.cells[k]
	for i, v := range bucket {
		if v == id {
			bucket[i] = bucket[len(bucket)-1]
			ix.cells[k] = bucket[:len(bucket)-1]
			break
		}
	}
}

// BuildFromPositions rebuilds the whole index from a map of id -> position.
// Callers pass a plain map; BuildFromPositions sorts the keys internally
// before inserting so the resulting bucket orderings never depend on Go's
// randomized map iteration.
func (ix *Index2D) BuildFromPositions(positions map[ids.Id]Point) {
	ix.Reset()
	keys := make([]ids.Id, 0, len(positions))
	for id := range positions {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	for _, id := range keys {
		ix.Add(id, positions[id])
	}
}

// QueryRadius returns every id within radius (plus a small epsilon, to
// absorb floating point rounding at exact boundary distances) of center,
// sorted ascending by Id with no duplicates. epsilon should normally be a
// tiny positive value (e.g. 1e-6); zero is accepted.
func (ix *Index2D) QueryRadius(center Point, radius, epsilon float64) []ids.Id {
	if radius < 0 {
		radius = 0
	}
	effRadius := radius + epsilon
	r2 := effRadius * effRadius

	minCx := ix.cellCoord(center.X - effRadius)
	maxCx := ix.cellCoord(center.X + effRadius)
	minCy := ix.cellCoord(center.Y - effRadius)
	maxCy := ix.cellCoord(center.Y + effRadius)

	seen := make(map[ids.Id]struct{})
	var out []ids.Id
	for cx := minCx; cx <= maxCx; cx++ {
		for cy := minCy; cy <= maxCy; cy++ {
			bucket := ix.cells[cellKey{cx, cy}]
			for _, id := range bucket {
				if _, dup := seen[id]; dup {
					continue
				}
				p := ix.pos[id]
				dx := p.X - center.X
				dy := p.Y - center.Y
				if dx*dx+dy*dy <= r2 {
					seen[id] = struct{}{}
					out = append(out, id)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Position returns the last position Add assigned to id, and whether id
// is present in the index.
func (ix *Index2D) Position(id ids.Id) (Point, bool) {
	p, ok := ix.pos[id]
	return p, ok
}

// Len returns the number of distinct entities currently indexed.
func (ix *Index2D) Len() int {
	return len(ix.pos)
}
