package ai

import (
	"math"
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// ShipSnapshot is the subset of ship state the automation scorers need,
// kept separate from the ships package to avoid a combat/ai import cycle
// through ships -> content and ai -> colonies -> content.
type ShipSnapshot struct {
	Id             ids.Id
	FactionId      ids.Id
	SystemId       ids.Id
	X, Y           float64
	FuelFraction   float64
	HPFraction     float64
	CargoTons      float64
	IsIdle         bool
}

// ColonyCandidate is a friendly colony a ship might route to.
type ColonyCandidate struct {
	Id          ids.Id
	SystemId    ids.Id
	HasFuel     bool
	ShipyardCount int
	EtaDays     float64
}

// BestRefuelColony picks the nearest friendly colony with fuel in stock,
// per §4.H auto-refuel.
func BestRefuelColony(candidates []ColonyCandidate) (ids.Id, bool) {
	best := ids.Invalid
	bestEta := math.Inf(1)
	for _, c := range candidates {
		if !c.HasFuel {
			continue
		}
		if c.EtaDays < bestEta || (c.EtaDays == bestEta && c.Id < best) {
			best = c.Id
			bestEta = c.EtaDays
		}
	}
	return best, best != ids.Invalid
}

// BestRepairColony picks the friendly colony minimizing eta + repair_time,
// approximated here as eta + 1/shipyard_count (more yards, faster repair).
func BestRepairColony(candidates []ColonyCandidate) (ids.Id, bool) {
	best := ids.Invalid
	bestScore := math.Inf(1)
	for _, c := range candidates {
		if c.ShipyardCount <= 0 {
			continue
		}
		score := c.EtaDays + 1.0/float64(c.ShipyardCount)
		if score < bestScore || (score == bestScore && c.Id < best) {
			best = c.Id
			bestScore = score
		}
	}
	return best, best != ids.Invalid
}

// WreckCandidate is a salvageable wreck an auto-salvage ship might claim.
type WreckCandidate struct {
	Id       ids.Id
	TotalTons float64
	EtaDays  float64
}

// WreckScore is log10(total_tons+1)*100 - eta, per §4.H.
func WreckScore(w WreckCandidate) float64 {
	return math.Log10(w.TotalTons+1)*100 - w.EtaDays
}

// BestSalvageTarget picks the highest-scoring wreck, tiebreaking by id.
func BestSalvageTarget(candidates []WreckCandidate) (ids.Id, bool) {
	best := ids.Invalid
	bestScore := math.Inf(-1)
	for _, w := range candidates {
		score := WreckScore(w)
		if score > bestScore+1e-9 || (math.Abs(score-bestScore) <= 1e-9 && (best == ids.Invalid || w.Id < best)) {
			best = w.Id
			bestScore = score
		}
	}
	return best, best != ids.Invalid
}

// ColonizeCandidate is an uncolonized body a ship might settle.
type ColonizeCandidate struct {
	Id             ids.Id
	HabitabilityScore float64 // already in [0,1]-ish scale
	MineralTotalTons  float64
	EtaDays           float64
}

// ColonizeScore is habitability*1000 + log10(minerals+1)*100 - eta*5, per §4.H.
func ColonizeScore(c ColonizeCandidate) float64 {
	return c.HabitabilityScore*1000 + math.Log10(c.MineralTotalTons+1)*100 - c.EtaDays*5
}

// BestColonizeTarget picks the highest-scoring uncolonized body.
func BestColonizeTarget(candidates []ColonizeCandidate) (ids.Id, bool) {
	best := ids.Invalid
	bestScore := math.Inf(-1)
	for _, c := range candidates {
		score := ColonizeScore(c)
		if score > bestScore+1e-9 || (math.Abs(score-bestScore) <= 1e-9 && (best == ids.Invalid || c.Id < best)) {
			best = c.Id
			bestScore = score
		}
	}
	return best, best != ids.Invalid
}

// FreightNeed is one colony's shortfall of a mineral against its reserve.
type FreightNeed struct {
	ColonyId ids.Id
	Resource string
	Shortfall float64
}

// FreightSurplus is one colony's exportable surplus of a mineral.
type FreightSurplus struct {
	ColonyId  ids.Id
	Resource  string
	Surplus   float64
}

// FreightAssignment is one solved freighter run.
type FreightAssignment struct {
	ShipId     ids.Id
	FromColony ids.Id
	ToColony   ids.Id
	Resource   string
	Tons       float64
	Cost       float64 // eta/total_tons
}

// FreightCandidate is an idle freighter available to assign.
type FreightCandidate struct {
	ShipId   ids.Id
	CapacityTons float64
	// EtaToSurplus returns the eta in days from this ship to the given
	// surplus colony.
	EtaToSurplus func(colonyId ids.Id) float64
}

// SolveAutoFreight greedily assigns idle freighters to the best-efficiency
// (need, surplus) pairing by eta/total_tons cost, matching §4.H's
// best-efficient assignment description without a full optimal-matching
// solver (greedy is deterministic given sorted inputs, which is what
// determinism requires here, not global optimality).
func SolveAutoFreight(needs []FreightNeed, surpluses []FreightSurplus, freighters []FreightCandidate) []FreightAssignment {
	sort.Slice(needs, func(i, j int) bool {
		if needs[i].ColonyId != needs[j].ColonyId {
			return needs[i].ColonyId < needs[j].ColonyId
		}
		return needs[i].Resource < needs[j].Resource
	})
	sort.Slice(surpluses, func(i, j int) bool {
		if surpluses[i].ColonyId != surpluses[j].ColonyId {
			return surpluses[i].ColonyId < surpluses[j].ColonyId
		}
		return surpluses[i].Resource < surpluses[j].Resource
	})
	sort.Slice(freighters, func(i, j int) bool { return freighters[i].ShipId < freighters[j].ShipId })

	usedFreighter := make(map[ids.Id]bool)
	var out []FreightAssignment
	for _, need := range needs {
		var bestShip ids.Id
		var bestSurplus ids.Id
		bestCost := math.Inf(1)
		var bestTons float64
		for _, surplus := range surpluses {
			if surplus.Resource != need.Resource || surplus.Surplus <= 0 {
				continue
			}
			for _, f := range freighters {
				if usedFreighter[f.ShipId] {
					continue
				}
				tons := math.Min(f.CapacityTons, math.Min(need.Shortfall, surplus.Surplus))
				if tons <= 0 {
					continue
				}
				eta := f.EtaToSurplus(surplus.ColonyId)
				cost := eta / tons
				if cost < bestCost {
					bestCost = cost
					bestShip = f.ShipId
					bestSurplus = surplus.ColonyId
					bestTons = tons
				}
			}
		}
		if bestShip != ids.Invalid {
			out = append(out, FreightAssignment{
				ShipId: bestShip, FromColony: bestSurplus, ToColony: need.ColonyId,
				Resource: need.Resource, Tons: bestTons, Cost: bestCost,
			})
			usedFreighter[bestShip] = true
		}
	}
	return out
}

// PirateTargetPriority orders hostile role priorities for AI_Pirate combat
// targeting: Freighter > Surveyor > Combatant > other.
var PirateTargetPriority = []string{"Freighter", "Surveyor", "Combatant"}

// RankPirateTarget returns a sort key for a hostile's role under pirate
// priority; lower is preferred. Unknown roles sort last.
func RankPirateTarget(role string) int {
	for i, r := range PirateTargetPriority {
		if r == role {
			return i
		}
	}
	return len(PirateTargetPriority)
}
