package ai

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/colonies"
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestPirateShipTargetsScalesWithTechTier(t *testing.T) {
	f := factions.NewFaction(1, "Raiders", factions.ControlAIPirate)
	base := PirateShipTargets(f)
	if base.Combatants != 4 {
		t.Fatalf("base combatants = %d, want 4", base.Combatants)
	}
	f.LearnTech("nuclear_1")
	f.LearnTech("propulsion_1")
	bumped := PirateShipTargets(f)
	if bumped.Combatants != 8 {
		t.Fatalf("bumped combatants = %d, want 8", bumped.Combatants)
	}
}

func TestExplorerShipTargetsBumpsFreightersAtTwoColonies(t *testing.T) {
	one := ExplorerShipTargets(1)
	if one.Freighters != 2 {
		t.Fatalf("one-colony freighters = %d, want 2", one.Freighters)
	}
	two := ExplorerShipTargets(2)
	if two.Freighters != 3 {
		t.Fatalf("two-colony freighters = %d, want 3", two.Freighters)
	}
}

func TestBestDesignForRolePicksHighestScoreLowestIdTiebreak(t *testing.T) {
	candidates := []DesignStats{
		{DesignId: 3, WeaponDamage: 10, MaxHP: 100, SpeedKmS: 5, SensorRangeMkm: 1},
		{DesignId: 1, WeaponDamage: 10, MaxHP: 100, SpeedKmS: 5, SensorRangeMkm: 1},
		{DesignId: 2, WeaponDamage: 5, MaxHP: 50, SpeedKmS: 1, SensorRangeMkm: 1},
	}
	best, ok := BestDesignForRole(candidates, RoleCombatant)
	if !ok || best != 1 {
		t.Fatalf("best = %d, ok = %v, want 1 (tie broken by lowest id)", best, ok)
	}
}

func TestEnsureResearchPlanPopulatesFromRecommendedList(t *testing.T) {
	db := content.New()
	for _, key := range recommendedTechs[factions.ControlAIExplorer] {
		db.Techs[key] = content.TechDef{Key: key, Cost: 100}
	}
	f := factions.NewFaction(1, "Explorers", factions.ControlAIExplorer)
	EnsureResearchPlan(db, f)
	if len(f.ResearchQueue) == 0 {
		t.Fatalf("expected research queue to be populated from recommended list")
	}
	if f.ResearchQueue[0] != recommendedTechs[factions.ControlAIExplorer][0] {
		t.Fatalf("queue[0] = %s, want %s", f.ResearchQueue[0], recommendedTechs[factions.ControlAIExplorer][0])
	}
}

func TestEnsureResearchPlanFallsBackToCheapestResearchable(t *testing.T) {
	db := content.New()
	db.Techs["cheap"] = content.TechDef{Key: "cheap", Cost: 10}
	db.Techs["expensive"] = content.TechDef{Key: "expensive", Cost: 500}
	f := factions.NewFaction(1, "Passive", factions.ControlPlayer)
	EnsureResearchPlan(db, f)
	if len(f.ResearchQueue) != 1 || f.ResearchQueue[0] != "cheap" {
		t.Fatalf("queue = %v, want [cheap]", f.ResearchQueue)
	}
}

func TestEnsureResearchPlanLeavesActiveInProgressTechAlone(t *testing.T) {
	db := content.New()
	db.Techs["active"] = content.TechDef{Key: "active", Cost: 100}
	f := factions.NewFaction(1, "Passive", factions.ControlPlayer)
	f.ActiveTechId = "active"
	EnsureResearchPlan(db, f)
	if len(f.ResearchQueue) != 0 {
		t.Fatalf("expected queue untouched while a valid tech is active, got %v", f.ResearchQueue)
	}
}

func TestRepairPrerequisitesInsertsInTopologicalOrder(t *testing.T) {
	db := content.New()
	db.Techs["a"] = content.TechDef{Key: "a"}
	db.Techs["b"] = content.TechDef{Key: "b", Prereqs: []content.TechKey{"a"}}
	db.Techs["c"] = content.TechDef{Key: "c", Prereqs: []content.TechKey{"b"}}
	f := factions.NewFaction(1, "Passive", factions.ControlPlayer)
	f.ResearchQueue = []content.TechKey{"c"}
	RepairPrerequisites(db, f)
	want := []content.TechKey{"a", "b", "c"}
	if len(f.ResearchQueue) != 3 {
		t.Fatalf("queue = %v, want %v", f.ResearchQueue, want)
	}
	for i, k := range want {
		if f.ResearchQueue[i] != k {
			t.Fatalf("queue[%d] = %s, want %s (full queue %v)", i, f.ResearchQueue[i], k, f.ResearchQueue)
		}
	}
}

func TestMineTargetForColonyScalesWithShipyardThroughput(t *testing.T) {
	c := colonies.NewColony(1, 1, 1, "Outpost")
	c.Installations["shipyard"] = 2
	costs := map[string]float64{"Duranium": 1.0}
	perDay := map[string]float64{"Duranium": 10}
	got := MineTargetForColony(c, 50, costs, perDay)
	// required = 50*2*1.0 = 100 tons/day; 100/10 = 10, +2 buffer = 12.
	if got != 12 {
		t.Fatalf("mine target = %d, want 12", got)
	}
}

func TestMineTargetForColonyZeroWithNoShipyard(t *testing.T) {
	c := colonies.NewColony(1, 1, 1, "Outpost")
	got := MineTargetForColony(c, 50, map[string]float64{"Duranium": 1.0}, map[string]float64{"Duranium": 10})
	if got != 0 {
		t.Fatalf("mine target = %d, want 0 with no shipyard", got)
	}
}

func TestPrimaryShipyardColonyPicksMostYardsThenLowestId(t *testing.T) {
	cols := map[ids.Id]*colonies.Colony{
		2: colonies.NewColony(2, 1, 1, "B"),
		3: colonies.NewColony(3, 1, 1, "C"),
		5: colonies.NewColony(5, 1, 2, "Other faction"),
	}
	cols[2].Installations["shipyard"] = 2
	cols[3].Installations["shipyard"] = 2
	cols[5].Installations["shipyard"] = 10
	cols[2].FactionId = 1
	cols[3].FactionId = 1
	cols[5].FactionId = 2

	isShipyard := func(k string) bool { return k == "shipyard" }
	best, ok := PrimaryShipyardColony(cols, 1, isShipyard)
	if !ok || best != 2 {
		t.Fatalf("best = %d, ok = %v, want 2 (tie on yards, lowest id, other faction excluded)", best, ok)
	}
}

func TestSolveAutoFreightAssignsCheapestRoute(t *testing.T) {
	needs := []FreightNeed{{ColonyId: 1, Resource: "Duranium", Shortfall: 50}}
	surpluses := []FreightSurplus{
		{ColonyId: 2, Resource: "Duranium", Surplus: 100},
		{ColonyId: 3, Resource: "Duranium", Surplus: 100},
	}
	freighters := []FreightCandidate{
		{ShipId: 10, CapacityTons: 200, EtaToSurplus: func(c ids.Id) float64 {
			if c == 2 {
				return 1
			}
			return 5
		}},
	}
	assignments := SolveAutoFreight(needs, surpluses, freighters)
	if len(assignments) != 1 {
		t.Fatalf("expected one assignment, got %d", len(assignments))
	}
	if assignments[0].FromColony != 2 {
		t.Fatalf("chose colony %d, want 2 (lower eta/cost)", assignments[0].FromColony)
	}
}

func TestBestColonizeTargetPicksHighestScore(t *testing.T) {
	candidates := []ColonizeCandidate{
		{Id: 1, HabitabilityScore: 0.9, MineralTotalTons: 1000, EtaDays: 5},
		{Id: 2, HabitabilityScore: 0.2, MineralTotalTons: 100, EtaDays: 1},
	}
	best, ok := BestColonizeTarget(candidates)
	if !ok || best != 1 {
		t.Fatalf("best = %d, ok = %v, want 1 (habitability dominates)", best, ok)
	}
}
