package engine

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/colonies"
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestShipsInSystemReturnsSortedCopy(t *testing.T) {
	db := content.New()
	e := New(db, DefaultConfig())
	sysId := e.state.allocateId()
	s3, s1, s2 := e.state.allocateId(), e.state.allocateId(), e.state.allocateId()
	e.state.Systems[sysId] = &galaxy.StarSystem{Id: sysId, Ships: []ids.Id{s3, s1, s2}}

	got := e.ShipsInSystem(sysId)
	if len(got) != 3 || got[0] != s1 || got[1] != s2 || got[2] != s3 {
		t.Fatalf("expected sorted [%d %d %d], got %v", s1, s2, s3, got)
	}

	got[0] = 0
	if e.state.Systems[sysId].Ships[0] == 0 {
		t.Fatalf("ShipsInSystem must return a copy, not the underlying slice")
	}
}

func TestColoniesForFactionFiltersByOwner(t *testing.T) {
	db := content.New()
	e := New(db, DefaultConfig())
	a := e.state.allocateId()
	b := e.state.allocateId()
	c1 := e.state.allocateId()
	c2 := e.state.allocateId()
	e.state.Colonies[c1] = &colonies.Colony{Id: c1, FactionId: a}
	e.state.Colonies[c2] = &colonies.Colony{Id: c2, FactionId: b}

	got := e.ColoniesForFaction(a)
	if len(got) != 1 || got[0] != c1 {
		t.Fatalf("expected only colony %d for faction %d, got %v", c1, a, got)
	}
}

func TestIsShipDetectedByFactionRequiresCurrentDayContact(t *testing.T) {
	db := content.New()
	e := New(db, DefaultConfig())
	f := factions.NewFaction(e.state.allocateId(), "Alpha", factions.ControlPlayer)
	e.state.Factions[f.Id] = f
	shipId := e.state.allocateId()
	e.state.Day = 5

	if e.IsShipDetectedByFaction(f.Id, shipId) {
		t.Fatalf("no contact recorded yet, expected false")
	}

	f.Contacts[shipId] = factions.Contact{LastSeenDay: 5}
	if !e.IsShipDetectedByFaction(f.Id, shipId) {
		t.Fatalf("contact seen this day should report detected")
	}

	f.Contacts[shipId] = factions.Contact{LastSeenDay: 3}
	if e.IsShipDetectedByFaction(f.Id, shipId) {
		t.Fatalf("a stale contact from an earlier day should not report as currently detected")
	}
}
