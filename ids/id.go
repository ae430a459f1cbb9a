// Package ids defines the stable integer handle type shared by every entity
// in the simulation. Nebula4X never cross-references entities by pointer —
// every relationship (fleet membership, order targets, contacts, salvo
// attacker/target) is an Id, and "not found" is simply the zero value.
package ids

import "sort"

// Id is a monotonically allocated 64-bit identifier. The zero value, Invalid,
// is reserved and never assigned to a real entity.
type Id int64

// Invalid is the sentinel for "no entity" / "not yet assigned".
const Invalid Id = 0

// Allocator hands out strictly increasing Ids starting at 1. It is embedded
// in engine.State so that save/load round-trips preserve the high-water mark.
type Allocator struct {
	next Id
}

// NewAllocator returns an Allocator that will hand out 1 next.
func NewAllocator() *Allocator {
	return &Allocator{next: 1}
}

// Next returns and increments the allocator's cursor.
func (a *Allocator) Next() Id {
	if a.next < 1 {
		a.next = 1
	}
	id := a.next
	a.next++
	return id
}

// Peek returns the id that Next would return, without consuming it.
func (a *Allocator) Peek() Id {
	if a.next < 1 {
		return 1
	}
	return a.next
}

// Observe advances the allocator's cursor so that it never hands out an id
// less than or equal to seen, so a loader that persisted next_id as a plain
// scalar can restore the cursor from it.
func (a *Allocator) Observe(seen Id) {
	if seen >= a.next {
		a.next = seen + 1
	}
}

// Sort is a tiny helper satisfying the "sorted-key iteration" discipline
// (§4.A/§9): callers collect map keys into a []Id and sort it with this
// before iterating, rather than ranging a map directly.
func Sort(xs []Id) {
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
}
