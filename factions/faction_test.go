package factions

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestNormalizePairIsOrderIndependent(t *testing.T) {
	p1 := NormalizePair(5, 2)
	p2 := NormalizePair(2, 5)
	if p1 != p2 {
		t.Fatalf("NormalizePair not order-independent: %+v vs %+v", p1, p2)
	}
	if p1.A != 2 || p1.B != 5 {
		t.Fatalf("pair = %+v, want A=2 B=5", p1)
	}
}

func TestTreatyIsActiveHandlesIndefiniteAndExpired(t *testing.T) {
	indefinite := Treaty{StartDay: 0, DurationDays: 0}
	if !indefinite.IsActive(10000) {
		t.Fatalf("expected indefinite treaty to stay active")
	}
	timed := Treaty{StartDay: 10, DurationDays: 5}
	if !timed.IsActive(14) {
		t.Fatalf("expected treaty active at day 14")
	}
	if timed.IsActive(15) {
		t.Fatalf("expected treaty expired at day 15")
	}
}

func TestFactionKnowsTechAndLearnTechDeduplicates(t *testing.T) {
	f := NewFaction(1, "Test", ControlPlayer)
	f.LearnTech("a")
	f.LearnTech("a")
	f.LearnTech("b")
	if len(f.KnownTechs) != 2 {
		t.Fatalf("known techs = %v, want 2 unique entries", f.KnownTechs)
	}
	if !f.KnowsTech("a") || !f.KnowsTech("b") {
		t.Fatalf("expected both techs known")
	}
}

func TestStatusWithDefaultsToNeutral(t *testing.T) {
	f := NewFaction(1, "Test", ControlPlayer)
	if f.StatusWith(2) != StatusNeutral {
		t.Fatalf("expected default status Neutral for an unset pair")
	}
	f.SetStatusWith(2, StatusAlliance)
	if f.StatusWith(2) != StatusAlliance {
		t.Fatalf("expected status Alliance after SetStatusWith")
	}
}

type fakeProvider struct {
	allies  map[[2]ids.Id]bool
	enemies map[[2]ids.Id]bool
}

func (p fakeProvider) AreAllies(a, b ids.Id) bool  { return p.allies[[2]ids.Id{a, b}] }
func (p fakeProvider) AreEnemies(a, b ids.Id) bool { return p.enemies[[2]ids.Id{a, b}] }

func TestAreShipsEnemiesAndAlliesDelegateToProvider(t *testing.T) {
	p := fakeProvider{
		allies:  map[[2]ids.Id]bool{{1, 2}: true},
		enemies: map[[2]ids.Id]bool{{1, 3}: true},
	}
	if !AreShipsAllies(p, 1, 2) {
		t.Fatalf("expected 1,2 to be allies")
	}
	if !AreShipsEnemies(p, 1, 3) {
		t.Fatalf("expected 1,3 to be enemies")
	}
	if AreShipsEnemies(p, 1, 2) {
		t.Fatalf("expected 1,2 to not be enemies")
	}
}

func TestSortedFactionKeysIsAscending(t *testing.T) {
	m := map[ids.Id]*Faction{
		5: NewFaction(5, "E", ControlPlayer),
		1: NewFaction(1, "A", ControlPlayer),
		3: NewFaction(3, "C", ControlPlayer),
	}
	keys := SortedFactionKeys(m)
	want := []ids.Id{1, 3, 5}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
