// Package ai implements the deterministic default AI policy: research-queue
// repair, shipbuilding targets, installation baselines, and per-ship
// automation loops (§4.H). It is grounded on original_source/ai_economy.cpp.
package ai

import (
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/colonies"
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/simutil"
)

// ShipRole is the coarse auto-build role a design is scored against.
type ShipRole string

const (
	RoleCombatant ShipRole = "Combatant"
	RoleSurveyor  ShipRole = "Surveyor"
	RoleFreighter ShipRole = "Freighter"
)

// ShipTargets is the desired hull counts by role for one faction.
type ShipTargets struct {
	Freighters int
	Surveyors  int
	Combatants int
}

// PirateShipTargets computes a pirate faction's combatant target, scaling
// with propulsion/nuclear tech tiers — a supplemented feature carried over
// from ai_economy.cpp's desired_ship_counts that the distilled spec only
// implies.
func PirateShipTargets(f *factions.Faction) ShipTargets {
	combatants := 4
	if f.KnowsTech("nuclear_1") {
		combatants += 2
	}
	if f.KnowsTech("propulsion_1") {
		combatants += 2
	}
	if f.KnowsTech("propulsion_2") {
		combatants += 2
	}
	return ShipTargets{Combatants: combatants}
}

// ExplorerShipTargets computes an explorer faction's ship targets,
// bumping the freighter target once it holds 2+ colonies.
func ExplorerShipTargets(colonyCount int) ShipTargets {
	t := ShipTargets{Freighters: 2, Surveyors: 2, Combatants: 1}
	if colonyCount >= 2 {
		t.Freighters = 3
	}
	return t
}

// DesiredShipCounts dispatches to the per-control-mode target function.
func DesiredShipCounts(f *factions.Faction, colonyCount int) ShipTargets {
	switch f.Control {
	case factions.ControlAIExplorer:
		return ExplorerShipTargets(colonyCount)
	case factions.ControlAIPirate:
		return PirateShipTargets(f)
	default:
		return ShipTargets{}
	}
}

// DesignScoreForRole scores a design for a role per ai_economy.cpp's
// design_score_for_role.
func DesignScoreForRole(d DesignStats, role ShipRole) float64 {
	switch role {
	case RoleCombatant:
		return d.WeaponDamage*1000 + d.MaxHP*10 + d.SpeedKmS*20 + d.SensorRangeMkm
	case RoleSurveyor:
		return d.SensorRangeMkm*100 + d.SpeedKmS*20
	case RoleFreighter:
		return d.CargoTons*10 + d.SpeedKmS*5
	default:
		return 0
	}
}

// DesignStats is the subset of ships.DerivedStats the scoring functions
// need, kept separate to avoid importing the ships package purely for a
// handful of fields.
type DesignStats struct {
	DesignId       ids.Id
	WeaponDamage   float64
	MaxHP          float64
	SpeedKmS       float64
	SensorRangeMkm float64
	CargoTons      float64
}

// BestDesignForRole picks the highest-scoring buildable design for role,
// tiebreaking by lowest id (ties within 1e-9 of the best score).
func BestDesignForRole(candidates []DesignStats, role ShipRole) (ids.Id, bool) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].DesignId < candidates[j].DesignId })
	best := ids.Invalid
	bestScore := -1.0
	for _, d := range candidates {
		score := DesignScoreForRole(d, role)
		if best == ids.Invalid || score > bestScore+1e-9 {
			best = d.DesignId
			bestScore = score
		}
	}
	return best, best != ids.Invalid
}

// PruneResearchQueue drops empty/unknown/already-known tech ids and
// deduplicates, preserving order.
func PruneResearchQueue(db *content.ContentDB, f *factions.Faction) {
	seen := make(map[content.TechKey]bool)
	cleaned := f.ResearchQueue[:0]
	for _, tid := range f.ResearchQueue {
		if tid == "" || f.KnowsTech(tid) || !db.TechKnown(tid) || seen[tid] {
			continue
		}
		seen[tid] = true
		cleaned = append(cleaned, tid)
	}
	f.ResearchQueue = cleaned
}

// recommendedTechs is the role-specific tech wishlist from
// ai_economy.cpp's ensure_research_plan.
var recommendedTechs = map[factions.ControlMode][]content.TechKey{
	factions.ControlAIExplorer: {"chemistry_1", "nuclear_1", "propulsion_1", "sensors_1", "armor_1", "weapons_1", "reactors_2", "propulsion_2"},
	factions.ControlAIPirate:   {"chemistry_1", "nuclear_1", "propulsion_1", "weapons_1", "sensors_1", "armor_1", "reactors_2", "propulsion_2"},
}

// EnsureResearchPlan repairs a faction's research queue: prune, leave a
// valid in-progress tech alone, otherwise append the role-specific
// recommended list (skipping known/queued), falling back to the cheapest
// currently-researchable tech if the queue is still empty.
func EnsureResearchPlan(db *content.ContentDB, f *factions.Faction) {
	PruneResearchQueue(db, f)

	if f.ActiveTechId != "" && db.TechKnown(f.ActiveTechId) && !f.KnowsTech(f.ActiveTechId) {
		return
	}

	queued := make(map[content.TechKey]bool, len(f.ResearchQueue))
	for _, t := range f.ResearchQueue {
		queued[t] = true
	}
	for _, tid := range recommendedTechs[f.Control] {
		if !db.TechKnown(tid) || f.KnowsTech(tid) || tid == f.ActiveTechId || queued[tid] {
			continue
		}
		f.ResearchQueue = append(f.ResearchQueue, tid)
		queued[tid] = true
	}

	if len(f.ResearchQueue) == 0 {
		best := content.TechKey("")
		bestCost := 0.0
		keys := make([]content.TechKey, 0, len(db.Techs))
		for k := range db.Techs {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, tid := range keys {
			t := db.Techs[tid]
			if f.KnowsTech(tid) {
				continue
			}
			if !db.PrerequisitesSatisfied(tid, f.KnownTechSet()) {
				continue
			}
			if best == "" || t.Cost < bestCost || (t.Cost == bestCost && tid < best) {
				best = tid
				bestCost = t.Cost
			}
		}
		if best != "" {
			f.ResearchQueue = append(f.ResearchQueue, best)
		}
	}
}

// RepairPrerequisites inserts any missing prerequisites of each queued tech
// immediately before it, in topological order, so a faction never gets
// stuck on a tech it can't yet research.
func RepairPrerequisites(db *content.ContentDB, f *factions.Faction) {
	var repaired []content.TechKey
	inResult := make(map[content.TechKey]bool)
	var insert func(tid content.TechKey, visiting map[content.TechKey]bool)
	insert = func(tid content.TechKey, visiting map[content.TechKey]bool) {
		if inResult[tid] || f.KnowsTech(tid) || visiting[tid] {
			return
		}
		def, ok := db.Techs[tid]
		if !ok {
			return
		}
		visiting[tid] = true
		for _, p := range def.Prereqs {
			insert(p, visiting)
		}
		delete(visiting, tid)
		if !inResult[tid] {
			repaired = append(repaired, tid)
			inResult[tid] = true
		}
	}
	for _, tid := range f.ResearchQueue {
		insert(tid, make(map[content.TechKey]bool))
	}
	f.ResearchQueue = repaired
}

// PrimaryShipyardColony picks the faction's colony with the most shipyard
// units, breaking ties by lowest id.
func PrimaryShipyardColony(cols map[ids.Id]*colonies.Colony, factionId ids.Id, isShipyard func(string) bool) (ids.Id, bool) {
	best := ids.Invalid
	bestYards := -1
	keys := simutil.SortedIdKeys(cols)
	for _, cid := range keys {
		c := cols[cid]
		if c.FactionId != factionId {
			continue
		}
		yards := c.ShipyardCount(isShipyard)
		if yards > bestYards || (yards == bestYards && (best == ids.Invalid || cid < best)) {
			best = cid
			bestYards = yards
		}
	}
	return best, best != ids.Invalid
}

// MineTargetForColony ties a colony's desired automated-mine count to its
// shipyard's mineral throughput: for every resource the shipyard consumes
// per ton built, ceil(required/per_day) rounds up the mine count needed to
// keep pace, plus a small buffer of 2.
func MineTargetForColony(c *colonies.Colony, shipyardRateTonsPerDay float64, yardCostPerTon map[string]float64, minePerDay map[string]float64) int {
	yards := c.Installations["shipyard"]
	if yards <= 0 {
		return 0
	}
	ratePerDay := shipyardRateTonsPerDay * float64(yards)
	if ratePerDay <= 1e-9 {
		return 0
	}
	target := 0
	keys := simutil.SortedKeys(yardCostPerTon)
	for _, mineral := range keys {
		costPerTon := yardCostPerTon[mineral]
		if costPerTon <= 0 {
			continue
		}
		required := ratePerDay * costPerTon
		perDay, ok := minePerDay[mineral]
		if !ok || perDay <= 1e-9 {
			continue
		}
		needed := int(ceilDiv(required, perDay))
		if needed > target {
			target = needed
		}
	}
	if target == 0 {
		return 0
	}
	return target + 2
}

func ceilDiv(a, b float64) float64 {
	q := a / b
	i := float64(int64(q))
	if i < q {
		i++
	}
	return i
}

// EnsureInstallationBaselines applies the baseline installation targets
// from ai_economy.cpp's ensure_installations_for_colony: shipyard/sensor
// station targets of 1, factory/lab counts scaled by faction control mode,
// and a mine target from MineTargetForColony (with pirate/explorer floors).
func EnsureInstallationBaselines(c *colonies.Colony, control factions.ControlMode, mineTarget int) map[string]int {
	desiredFactories := 5
	desiredLabs := 20
	if control == factions.ControlAIPirate {
		desiredFactories = 3
		desiredLabs = 5
	}
	if control == factions.ControlAIPirate && mineTarget < 12 {
		mineTarget = 12
	}
	if control == factions.ControlAIExplorer && mineTarget < 20 {
		mineTarget = 20
	}
	return map[string]int{
		"shipyard":         1,
		"sensor_station":   1,
		"construction_factory": desiredFactories,
		"research_lab":     desiredLabs,
		"automated_mine":   mineTarget,
	}
}
