package engine

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
)

func newTwoFactionEngine(t *testing.T) (*Engine, *factions.Faction, *factions.Faction) {
	t.Helper()
	db := content.New()
	e := New(db, DefaultConfig())
	a := factions.NewFaction(e.state.allocateId(), "Alpha", factions.ControlPlayer)
	b := factions.NewFaction(e.state.allocateId(), "Beta", factions.ControlAIPassive)
	e.state.Factions[a.Id] = a
	e.state.Factions[b.Id] = b
	return e, a, b
}

func TestAreAlliesDefaultsToFalse(t *testing.T) {
	e, a, b := newTwoFactionEngine(t)
	if e.AreAllies(a.Id, b.Id) {
		t.Fatalf("fresh factions should not default to allied")
	}
	if !e.AreAllies(a.Id, a.Id) {
		t.Fatalf("a faction is always allied with itself")
	}
}

func TestAreEnemiesDefaultsToFalse(t *testing.T) {
	e, a, b := newTwoFactionEngine(t)
	if e.AreEnemies(a.Id, b.Id) {
		t.Fatalf("neutral factions should not default to enemies")
	}
}

func TestSetDiplomaticStatusIsSymmetric(t *testing.T) {
	e, a, b := newTwoFactionEngine(t)
	if !e.SetDiplomaticStatus(a.Id, b.Id, factions.StatusHostile) {
		t.Fatalf("SetDiplomaticStatus returned false for known factions")
	}
	if !e.AreEnemies(a.Id, b.Id) || !e.AreEnemies(b.Id, a.Id) {
		t.Fatalf("hostile status should make both directions report enemies")
	}
}

func TestProposeTreatyUpgradesStatusToAlliance(t *testing.T) {
	e, a, b := newTwoFactionEngine(t)
	id, ok := e.ProposeTreaty(a.Id, b.Id, factions.TreatyAlliance, 0)
	if !ok || id == 0 {
		t.Fatalf("expected a treaty id, got id=%d ok=%v", id, ok)
	}
	if !e.AreAllies(a.Id, b.Id) {
		t.Fatalf("an alliance treaty should make AreAllies true")
	}
	if _, ok := e.state.Treaties[id]; !ok {
		t.Fatalf("treaty was not stored in state")
	}
}

func TestPruneExpiredTreatiesRelaxesStatus(t *testing.T) {
	e, a, b := newTwoFactionEngine(t)
	id, _ := e.ProposeTreaty(a.Id, b.Id, factions.TreatyCeasefire, 5)
	e.state.Day = 10

	e.pruneExpiredTreaties()

	if _, ok := e.state.Treaties[id]; ok {
		t.Fatalf("expired treaty should have been removed")
	}
	if e.AreEnemies(a.Id, b.Id) {
		t.Fatalf("relaxed status after an expired ceasefire should not be hostile")
	}
	if a.StatusWith(b.Id) != factions.StatusNeutral {
		t.Fatalf("expired ceasefire with no stronger treaty should relax to neutral, got %s", a.StatusWith(b.Id))
	}
}

func TestPruneExpiredTreatiesDoesNotClobberStrongerTreaty(t *testing.T) {
	e, a, b := newTwoFactionEngine(t)
	ceasefireId, _ := e.ProposeTreaty(a.Id, b.Id, factions.TreatyCeasefire, 5)
	_, _ = e.ProposeTreaty(a.Id, b.Id, factions.TreatyAlliance, 0)
	delete(e.state.Treaties, ceasefireId)
	e.state.Treaties[ceasefireId] = &factions.Treaty{
		Id: ceasefireId, Type: factions.TreatyCeasefire,
		Pair: factions.NormalizePair(a.Id, b.Id), StartDay: 0, DurationDays: 5,
	}
	e.state.Day = 10

	e.pruneExpiredTreaties()

	if !e.AreAllies(a.Id, b.Id) {
		t.Fatalf("expiring a weaker superseded treaty must not relax the still-active alliance")
	}
}
