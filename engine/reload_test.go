package engine

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

func newReloadTestDB() *content.ContentDB {
	db := content.New()
	db.Components["engine_1"] = content.ComponentDef{Key: "engine_1", Name: "Ion Drive", MassTons: 10, SpeedKmS: 5}
	return db
}

func TestReloadContentDBRecomputesDesignsAndClampsShips(t *testing.T) {
	oldDB := newReloadTestDB()
	e := New(oldDB, DefaultConfig())

	designId := e.state.allocateId()
	design := &ships.ShipDesign{Id: designId, Name: "Scout", Components: []content.ComponentKey{"engine_1"}}
	ships.RecomputeDerivedStats(design, oldDB)
	e.state.Designs[designId] = design

	shipId := e.state.allocateId()
	ship := &ships.Ship{Id: shipId, DesignId: designId, HP: -1, Fuel: -1}
	e.state.Ships[shipId] = ship

	newDB := content.New()
	newDB.Components["engine_1"] = content.ComponentDef{Key: "engine_1", Name: "Ion Drive Mk2", MassTons: 8, SpeedKmS: 9}

	result := e.ReloadContentDB(newDB, true)

	if !result.Ok {
		t.Fatalf("expected Ok reload, got errors: %v", result.Errors)
	}
	if result.CustomDesignsUpdated != 1 || result.ShipsUpdated != 1 {
		t.Fatalf("expected 1 design and 1 ship updated, got %+v", result)
	}
	if design.Derived.MassTons != 8 {
		t.Fatalf("expected design mass recomputed to 8, got %v", design.Derived.MassTons)
	}
}

func TestReloadContentDBWarnsOnMissingComponent(t *testing.T) {
	oldDB := newReloadTestDB()
	e := New(oldDB, DefaultConfig())

	designId := e.state.allocateId()
	design := &ships.ShipDesign{Id: designId, Name: "Scout", Components: []content.ComponentKey{"engine_1"}}
	ships.RecomputeDerivedStats(design, oldDB)
	e.state.Designs[designId] = design

	newDB := content.New() // no components at all

	result := e.ReloadContentDB(newDB, true)

	if result.CustomDesignsFailed != 1 || result.CustomDesignsUpdated != 0 {
		t.Fatalf("expected the design missing its component to fail validation, got %+v", result)
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("expected a warning recorded for the missing component")
	}
}

func TestReloadContentDBPrunesStaleFactionUnlocks(t *testing.T) {
	oldDB := newReloadTestDB()
	e := New(oldDB, DefaultConfig())
	f := factions.NewFaction(e.state.allocateId(), "Alpha", factions.ControlPlayer)
	f.UnlockedComponents["engine_1"] = true
	f.UnlockedComponents["gone_component"] = true
	e.state.Factions[f.Id] = f

	newDB := content.New()
	newDB.Components["engine_1"] = content.ComponentDef{Key: "engine_1"}

	e.ReloadContentDB(newDB, false)

	if !f.UnlockedComponents["engine_1"] {
		t.Fatalf("still-valid unlock should survive a reload")
	}
	if f.UnlockedComponents["gone_component"] {
		t.Fatalf("unlock referencing a removed component should be pruned")
	}
}

func TestReloadContentDBRejectsNilDB(t *testing.T) {
	e := New(newReloadTestDB(), DefaultConfig())
	result := e.ReloadContentDB(nil, false)
	if result.Ok {
		t.Fatalf("expected a nil content database to fail the reload")
	}
}
