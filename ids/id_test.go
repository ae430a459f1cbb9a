package ids

import "testing"

func TestAllocatorStartsAtOne(t *testing.T) {
	a := NewAllocator()
	if got := a.Next(); got != 1 {
		t.Fatalf("first Next() = %d, want 1", got)
	}
	if got := a.Next(); got != 2 {
		t.Fatalf("second Next() = %d, want 2", got)
	}
}

func TestAllocatorPeekDoesNotConsume(t *testing.T) {
	a := NewAllocator()
	a.Next()
	peeked := a.Peek()
	got := a.Next()
	if peeked != got {
		t.Fatalf("Peek() = %d but following Next() = %d", peeked, got)
	}
}

func TestAllocatorObserveAdvancesPastSeen(t *testing.T) {
	a := NewAllocator()
	a.Observe(50)
	if got := a.Next(); got != 51 {
		t.Fatalf("Next() after Observe(50) = %d, want 51", got)
	}
}

func TestAllocatorObserveNeverRewinds(t *testing.T) {
	a := NewAllocator()
	a.Next()
	a.Next()
	a.Next()
	a.Observe(1)
	if got := a.Next(); got != 4 {
		t.Fatalf("Observe(1) rewound the allocator: Next() = %d, want 4", got)
	}
}

func TestSortIsStableAscending(t *testing.T) {
	xs := []Id{5, 3, 1, 4, 2}
	Sort(xs)
	want := []Id{1, 2, 3, 4, 5}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("Sort result = %v, want %v", xs, want)
		}
	}
}
