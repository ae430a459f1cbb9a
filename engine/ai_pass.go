package engine

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/ai"
	"github.com/masterblaster1999/Nebula4X-sub000/colonies"
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// runFactionPlanning drives research-queue upkeep and colony installation
// targets for every non-player faction, once per day boundary (§4.I).
func (e *Engine) runFactionPlanning() {
	for _, factionId := range factionKeys(e.state.Factions) {
		faction := e.state.Factions[factionId]
		if faction.Control == factions.ControlPlayer {
			continue
		}
		ai.PruneResearchQueue(e.content, faction)
		ai.RepairPrerequisites(e.content, faction)
		ai.EnsureResearchPlan(e.content, faction)

		for _, colonyId := range colonyKeys(e.state.Colonies) {
			colony := e.state.Colonies[colonyId]
			if colony.FactionId != factionId {
				continue
			}
			shipyardRate := e.primaryShipyardRate(colony)
			mineTarget := ai.MineTargetForColony(colony, shipyardRate, e.buildCostFallback(), e.minePerDayFor(colony))
			targets := ai.EnsureInstallationBaselines(colony, faction.Control, mineTarget)
			for _, key := range sortedStringKeys(targets) {
				colonies.EnsureInstallationAutoTargets(colony, key, targets[key])
			}
		}
	}
	e.runAutoFreight()
	e.dispatchAutomatedShips()
}

func (e *Engine) primaryShipyardRate(colony *colonies.Colony) float64 {
	best := 0.0
	for _, key := range sortedStringKeys(colony.Installations) {
		def, ok := e.content.Installations[content.InstallationKey(key)]
		if ok && def.IsShipyard && def.ShipyardBaseRateTonsPerDay > best {
			best = def.ShipyardBaseRateTonsPerDay
		}
	}
	return best
}

func (e *Engine) buildCostFallback() map[string]float64 {
	return map[string]float64{"Duranium": 1.0, "Neutronium": 0.1}
}

// minePerDayFor returns the colony's current per-mineral mining output,
// used to size the mine installation target to shipyard throughput.
func (e *Engine) minePerDayFor(colony *colonies.Colony) map[string]float64 {
	out := make(map[string]float64)
	for _, key := range sortedStringKeys(colony.Installations) {
		count := colony.Installations[key]
		def, ok := e.content.Installations[content.InstallationKey(key)]
		if !ok || !def.IsMiningInstallation {
			continue
		}
		for mineral, perDay := range def.OutputsPerDay {
			out[string(mineral)] += perDay * float64(count)
		}
	}
	return out
}

func sortedStringKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// dispatchAutomatedShips issues refuel/colonize/salvage/tanker/explore orders
// for idle automation-flagged ships, then lets faction policy (AI_Explorer,
// AI_Pirate) take over any ship still idle afterward, per §4.H.
func (e *Engine) dispatchAutomatedShips() {
	for _, shipId := range shipKeys(e.state.Ships) {
		ship := e.state.Ships[shipId]
		so := e.orderQueueFor(shipId)
		if len(so.Queue) > 0 {
			continue
		}
		design, ok := e.state.Designs[ship.DesignId]
		if !ok {
			continue
		}
		fuelFraction := 1.0
		if design.Derived.FuelCapacityTons > 0 {
			fuelFraction = ship.Fuel / design.Derived.FuelCapacityTons
		}

		hpFraction := 1.0
		if design.Derived.MaxHP > 0 {
			hpFraction = ship.HP / design.Derived.MaxHP
		}
		repairThreshold := ship.Automation.RepairThresholdFraction
		if repairThreshold <= 0 {
			repairThreshold = 0.5
		}
		if ship.Automation.AutoRepair && hpFraction < repairThreshold {
			if e.tryAutoRepair(shipId, ship) {
				continue
			}
		}
		if ship.Automation.AutoRefuel && fuelFraction < e.config.AutoTanker.RequestThreshold {
			if e.tryAutoRefuel(shipId, ship) {
				continue
			}
		}
		if ship.Automation.AutoSalvage && e.config.Wrecks.Enabled {
			if e.tryAutoSalvage(shipId, ship) {
				continue
			}
		}
		if ship.Automation.AutoColonize && ship.Colonists > 0 {
			if e.tryAutoColonize(shipId, ship) {
				continue
			}
		}
		if ship.Automation.AutoTanker && e.config.AutoTanker.Enabled {
			if e.tryAutoTanker(shipId, ship) {
				continue
			}
		}
		if ship.Automation.AutoExplore {
			if e.tryAutoExplore(shipId, ship) {
				continue
			}
		}

		faction, ok := e.state.Factions[ship.FactionId]
		if !ok {
			continue
		}
		switch faction.Control {
		case factions.ControlAIExplorer:
			e.tryAutoExplore(shipId, ship)
		case factions.ControlAIPirate:
			e.tryPirateAttack(shipId, ship)
		}
	}
}

// tryAutoTanker routes a tanker-flagged ship with fuel to spare to the
// nearest friendly ship whose fuel fraction has dropped below its (or the
// fleet default) tanker request threshold, then transfers half its own
// fuel, per §4.H auto-tanker.
func (e *Engine) tryAutoTanker(shipId ids.Id, ship *ships.Ship) bool {
	design, ok := e.state.Designs[ship.DesignId]
	if !ok || design.Derived.FuelCapacityTons <= 0 || ship.Fuel <= 0 {
		return false
	}
	_, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}

	var bestId ids.Id
	var bestSystem ids.Id
	var bestPos galaxy.Point
	bestEta := math.Inf(1)
	for _, otherId := range shipKeys(e.state.Ships) {
		if otherId == shipId {
			continue
		}
		other := e.state.Ships[otherId]
		if other.FactionId != ship.FactionId {
			continue
		}
		otherDesign, ok := e.state.Designs[other.DesignId]
		if !ok || otherDesign.Derived.FuelCapacityTons <= 0 {
			continue
		}
		fraction := other.Fuel / otherDesign.Derived.FuelCapacityTons
		threshold := other.Automation.TankerRequestFraction
		if threshold <= 0 {
			threshold = e.config.AutoTanker.RequestThreshold
		}
		if fraction >= threshold {
			continue
		}
		otherPos := galaxy.Point{X: other.PositionX, Y: other.PositionY}
		route := e.PlanJumpRoute(RoutePlanRequest{
			StartSystemId: ship.SystemId, StartPos: pos, FactionId: ship.FactionId, ShipSpeedKmS: speed,
			GoalSystemId: other.SystemId, HasGoalPosition: true, GoalPos: otherPos,
		})
		if !route.Found {
			continue
		}
		if route.EtaDays < bestEta || (route.EtaDays == bestEta && otherId < bestId) {
			bestEta = route.EtaDays
			bestId = otherId
			bestSystem = other.SystemId
			bestPos = otherPos
		}
	}
	if bestId == ids.Invalid {
		return false
	}
	tons := ship.Fuel * 0.5
	return e.injectRouteToSystem(shipId, bestSystem, bestPos, true, ship.FactionId, e.config.RestrictToDiscoveredDefault,
		ships.Order{Kind: ships.OrderTransferFuelToShip, TargetShipId: bestId, Quantity: tons})
}

// tryAutoExplore routes an idle explorer-flagged ship to the nearest jump
// point its faction has not yet fully surveyed, per §4.H auto-explore.
func (e *Engine) tryAutoExplore(shipId ids.Id, ship *ships.Ship) bool {
	faction, ok := e.state.Factions[ship.FactionId]
	if !ok {
		return false
	}
	_, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}

	var bestJumpId ids.Id
	bestEta := math.Inf(1)
	for _, systemId := range systemKeys(e.state.Systems) {
		sys := e.state.Systems[systemId]
		for _, jpId := range sys.JumpPoints {
			if faction.SurveyedJumpPoints[jpId] >= 1.0 {
				continue
			}
			jp, ok := e.state.JumpPoints[jpId]
			if !ok {
				continue
			}
			route := e.PlanJumpRoute(RoutePlanRequest{
				StartSystemId: ship.SystemId, StartPos: pos, FactionId: ship.FactionId, ShipSpeedKmS: speed,
				GoalSystemId: systemId, HasGoalPosition: true, GoalPos: jp.Position,
				RestrictToDiscovered: e.config.RestrictToDiscoveredDefault,
			})
			if !route.Found {
				continue
			}
			if route.EtaDays < bestEta || (route.EtaDays == bestEta && jpId < bestJumpId) {
				bestEta = route.EtaDays
				bestJumpId = jpId
			}
		}
	}
	if bestJumpId == ids.Invalid {
		return false
	}
	return e.IssueSurveyJumpPoint(ship.FactionId, shipId, bestJumpId, true)
}

// runAutoFreight matches colonies short of a mineral against colonies
// holding surplus of it, assigns idle freight-flagged ships to ferry the
// shortfall via ai.SolveAutoFreight, and queues the pickup/drop-off legs
// directly (colony-targeted orders aren't reachable through
// ApplyTemplateSmart's jump-injection, so each leg is staged by hand here
// the same way tryAutoRepair/tryAutoRefuel stage a single leg), per §4.H
// auto-freight.
func (e *Engine) runAutoFreight() {
	if !e.config.AutoFreight.Enabled {
		return
	}
	var needs []ai.FreightNeed
	var surpluses []ai.FreightSurplus
	for _, colonyId := range colonyKeys(e.state.Colonies) {
		colony := e.state.Colonies[colonyId]
		for _, resource := range sortedStringKeys(colony.Minerals) {
			have := colony.Minerals[resource]
			reserve := colony.MineralReserves[resource]
			if have < reserve {
				needs = append(needs, ai.FreightNeed{ColonyId: colonyId, Resource: resource, Shortfall: reserve - have})
				continue
			}
			surplus := (have - reserve) * e.config.AutoFreight.MaxTakeFractionOfSurplus
			if surplus >= e.config.AutoFreight.MinTransferTons {
				surpluses = append(surpluses, ai.FreightSurplus{ColonyId: colonyId, Resource: resource, Surplus: surplus})
			}
		}
	}
	if len(needs) == 0 || len(surpluses) == 0 {
		return
	}

	type freighterInfo struct {
		ship *ships.Ship
	}
	infos := make(map[ids.Id]freighterInfo)
	var freighters []ai.FreightCandidate
	for _, shipId := range shipKeys(e.state.Ships) {
		ship := e.state.Ships[shipId]
		if !ship.Automation.AutoFreight {
			continue
		}
		so := e.orderQueueFor(shipId)
		if len(so.Queue) > 0 {
			continue
		}
		design, ok := e.state.Designs[ship.DesignId]
		if !ok || design.Derived.CargoTons <= 0 {
			continue
		}
		_, pos, speed, ok := e.navStateFor(shipId)
		if !ok {
			continue
		}
		sid := shipId
		startSystem, startPos, startSpeed := ship.SystemId, pos, speed
		freighters = append(freighters, ai.FreightCandidate{
			ShipId:       sid,
			CapacityTons: design.Derived.CargoTons,
			EtaToSurplus: func(colonyId ids.Id) float64 {
				colony, ok := e.state.Colonies[colonyId]
				if !ok {
					return math.Inf(1)
				}
				body, ok := e.state.Bodies[colony.BodyId]
				if !ok {
					return math.Inf(1)
				}
				route := e.PlanJumpRoute(RoutePlanRequest{
					StartSystemId: startSystem, StartPos: startPos, FactionId: ship.FactionId, ShipSpeedKmS: startSpeed,
					GoalSystemId: body.SystemId, HasGoalPosition: true, GoalPos: body.LocalPosition(float64(e.state.Day)),
				})
				if !route.Found {
					return math.Inf(1)
				}
				return route.EtaDays
			},
		})
		infos[sid] = freighterInfo{ship: ship}
	}
	if len(freighters) == 0 {
		return
	}

	for _, a := range ai.SolveAutoFreight(needs, surpluses, freighters) {
		info, ok := infos[a.ShipId]
		if !ok {
			continue
		}
		fromColony, ok := e.state.Colonies[a.FromColony]
		if !ok {
			continue
		}
		toColony, ok := e.state.Colonies[a.ToColony]
		if !ok {
			continue
		}
		fromBody, ok := e.state.Bodies[fromColony.BodyId]
		if !ok {
			continue
		}
		toBody, ok := e.state.Bodies[toColony.BodyId]
		if !ok {
			continue
		}
		loaded := e.injectRouteToSystem(a.ShipId, fromBody.SystemId, fromBody.LocalPosition(float64(e.state.Day)), true,
			info.ship.FactionId, e.config.RestrictToDiscoveredDefault,
			ships.Order{Kind: ships.OrderLoadMineral, TargetColonyId: a.FromColony, ResourceKey: a.Resource, Quantity: a.Tons})
		if !loaded {
			continue
		}
		e.injectRouteToSystem(a.ShipId, toBody.SystemId, toBody.LocalPosition(float64(e.state.Day)), true,
			info.ship.FactionId, e.config.RestrictToDiscoveredDefault,
			ships.Order{Kind: ships.OrderUnloadMineral, TargetColonyId: a.ToColony, ResourceKey: a.Resource, Quantity: a.Tons})
	}
}

// shipRoleOf classifies a design into the coarse role buckets
// ai.PirateTargetPriority ranks, since the codebase carries no explicit
// ship role field: any weapon makes it a Combatant, cargo capacity without
// a weapon makes it a Freighter, and anything else falls to Surveyor.
func shipRoleOf(design *ships.ShipDesign) string {
	if design == nil {
		return "Surveyor"
	}
	if design.Derived.HasBeamWeapon || design.Derived.MissileLaunchers > 0 {
		return "Combatant"
	}
	if design.Derived.CargoTons > 0 {
		return "Freighter"
	}
	return "Surveyor"
}

// tryPirateAttack drives an AI_Pirate faction's ship: attack the
// highest-priority hostile in its own system if one is present, else chase
// its faction's best-ranked known contact in another system, else roam
// through the lowest-id jump point in its current system, per §4.H's
// AI_Pirate policy.
func (e *Engine) tryPirateAttack(shipId ids.Id, ship *ships.Ship) bool {
	faction, ok := e.state.Factions[ship.FactionId]
	if !ok {
		return false
	}
	sys, ok := e.state.Systems[ship.SystemId]
	if !ok {
		return false
	}

	var bestTargetId ids.Id
	bestRank := len(ai.PirateTargetPriority) + 1
	for _, otherId := range sys.Ships {
		if otherId == shipId {
			continue
		}
		other, ok := e.state.Ships[otherId]
		if !ok || e.AreAllies(ship.FactionId, other.FactionId) {
			continue
		}
		otherDesign := e.state.Designs[other.DesignId]
		rank := ai.RankPirateTarget(shipRoleOf(otherDesign))
		if rank < bestRank || (rank == bestRank && (bestTargetId == ids.Invalid || otherId < bestTargetId)) {
			bestRank = rank
			bestTargetId = otherId
		}
	}
	if bestTargetId != ids.Invalid {
		return e.IssueAttackShip(e, ship.FactionId, shipId, bestTargetId)
	}

	var bestContactShipId ids.Id
	var bestContact factions.Contact
	bestContactRank := len(ai.PirateTargetPriority) + 1
	for _, contactShipId := range contactKeys(faction.Contacts) {
		c := faction.Contacts[contactShipId]
		if c.LastSeenSystemId == ids.Invalid || c.LastSeenSystemId == ship.SystemId {
			continue
		}
		rank := ai.RankPirateTarget(shipRoleOf(e.state.Designs[c.LastSeenDesignId]))
		if rank < bestContactRank || (rank == bestContactRank && (bestContactShipId == ids.Invalid || contactShipId < bestContactShipId)) {
			bestContactRank = rank
			bestContactShipId = contactShipId
			bestContact = c
		}
	}
	if bestContactShipId != ids.Invalid {
		return e.injectRouteToSystem(shipId, bestContact.LastSeenSystemId,
			galaxy.Point{X: bestContact.LastSeenX, Y: bestContact.LastSeenY}, true,
			ship.FactionId, e.config.RestrictToDiscoveredDefault,
			ships.Order{Kind: ships.OrderAttackShip, TargetShipId: bestContactShipId})
	}

	if len(sys.JumpPoints) == 0 {
		return false
	}
	roamJumpIds := append([]ids.Id(nil), sys.JumpPoints...)
	ids.Sort(roamJumpIds)
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderTravelViaJump, TargetJumpId: roamJumpIds[0], TransitWhenDone: true})
	return true
}

// tryAutoRepair docks an idle, damaged ship at the nearest friendly
// shipyard colony for a refit-to-full-health, or routes it there if not
// already in-system, per §4.H auto-repair.
func (e *Engine) tryAutoRepair(shipId ids.Id, ship *ships.Ship) bool {
	design, ok := e.state.Designs[ship.DesignId]
	if !ok {
		return false
	}
	_, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}
	var candidates []ai.ColonyCandidate
	for _, colonyId := range colonyKeys(e.state.Colonies) {
		colony := e.state.Colonies[colonyId]
		if colony.FactionId != ship.FactionId {
			continue
		}
		yards := colony.ShipyardCount(func(key string) bool {
			def, ok := e.content.Installations[content.InstallationKey(key)]
			return ok && def.IsShipyard
		})
		if yards <= 0 {
			continue
		}
		body, ok := e.state.Bodies[colony.BodyId]
		if !ok {
			continue
		}
		route := e.PlanJumpRoute(RoutePlanRequest{
			StartSystemId: ship.SystemId, StartPos: pos, FactionId: ship.FactionId, ShipSpeedKmS: speed,
			GoalSystemId: body.SystemId, HasGoalPosition: true, GoalPos: body.LocalPosition(float64(e.state.Day)),
		})
		if !route.Found {
			continue
		}
		candidates = append(candidates, ai.ColonyCandidate{Id: colonyId, SystemId: body.SystemId, ShipyardCount: yards, EtaDays: route.EtaDays})
	}
	bestId, ok := ai.BestRepairColony(candidates)
	if !ok {
		return false
	}
	colony := e.state.Colonies[bestId]
	body := e.state.Bodies[colony.BodyId]
	if ship.SystemId == body.SystemId {
		damageFraction := 1.0
		if design.Derived.MaxHP > 0 {
			damageFraction = 1 - ship.HP/design.Derived.MaxHP
		}
		colony.ShipyardQueue = append(colony.ShipyardQueue, colonies.BuildOrder{
			DesignId: ship.DesignId, TonsRemaining: damageFraction * design.Derived.MassTons * 0.1,
			RefitShipId: shipId, AutoQueued: true,
		})
		return true
	}
	return e.IssueMoveToBody(ship.FactionId, shipId, body.Id, e.config.RestrictToDiscoveredDefault)
}

func (e *Engine) tryAutoRefuel(shipId ids.Id, ship *ships.Ship) bool {
	_, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}
	var candidates []ai.ColonyCandidate
	for _, colonyId := range colonyKeys(e.state.Colonies) {
		colony := e.state.Colonies[colonyId]
		if colony.FactionId != ship.FactionId {
			continue
		}
		body, ok := e.state.Bodies[colony.BodyId]
		if !ok {
			continue
		}
		route := e.PlanJumpRoute(RoutePlanRequest{
			StartSystemId: ship.SystemId, StartPos: pos, FactionId: ship.FactionId, ShipSpeedKmS: speed,
			GoalSystemId: body.SystemId, HasGoalPosition: true, GoalPos: body.LocalPosition(float64(e.state.Day)),
		})
		if !route.Found {
			continue
		}
		candidates = append(candidates, ai.ColonyCandidate{
			Id: colonyId, SystemId: body.SystemId, HasFuel: colony.Minerals["Fuel"] > 0, EtaDays: route.EtaDays,
		})
	}
	bestId, ok := ai.BestRefuelColony(candidates)
	if !ok {
		return false
	}
	body := e.state.Bodies[e.state.Colonies[bestId].BodyId]
	return e.IssueMoveToBody(ship.FactionId, shipId, body.Id, e.config.RestrictToDiscoveredDefault)
}

func (e *Engine) tryAutoSalvage(shipId ids.Id, ship *ships.Ship) bool {
	_, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}
	var candidates []ai.WreckCandidate
	for _, wreckId := range wreckKeys(e.state.Wrecks) {
		w := e.state.Wrecks[wreckId]
		route := e.PlanJumpRoute(RoutePlanRequest{
			StartSystemId: ship.SystemId, StartPos: pos, FactionId: ship.FactionId, ShipSpeedKmS: speed,
			GoalSystemId: w.SystemId, HasGoalPosition: true, GoalPos: galaxy.Point{X: w.X, Y: w.Y},
		})
		if !route.Found {
			continue
		}
		var tons float64
		for _, t := range w.Minerals {
			tons += t
		}
		candidates = append(candidates, ai.WreckCandidate{Id: wreckId, TotalTons: tons, EtaDays: route.EtaDays})
	}
	bestId, ok := ai.BestSalvageTarget(candidates)
	if !ok {
		return false
	}
	return e.IssueSalvageWreck(ship.FactionId, shipId, bestId, e.config.RestrictToDiscoveredDefault)
}

func (e *Engine) tryAutoColonize(shipId ids.Id, ship *ships.Ship) bool {
	_, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}
	var candidates []ai.ColonizeCandidate
	keys := make([]ids.Id, 0, len(e.state.Bodies))
	for id := range e.state.Bodies {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	for _, bodyId := range keys {
		body := e.state.Bodies[bodyId]
		if body.HasColony {
			continue
		}
		route := e.PlanJumpRoute(RoutePlanRequest{
			StartSystemId: ship.SystemId, StartPos: pos, FactionId: ship.FactionId, ShipSpeedKmS: speed,
			GoalSystemId: body.SystemId, HasGoalPosition: true, GoalPos: body.LocalPosition(float64(e.state.Day)),
		})
		if !route.Found {
			continue
		}
		var mineralTotal float64
		for _, v := range body.MineralDeposits {
			mineralTotal += v
		}
		candidates = append(candidates, ai.ColonizeCandidate{
			Id: bodyId, HabitabilityScore: e.habitabilityScore(body), MineralTotalTons: mineralTotal, EtaDays: route.EtaDays,
		})
	}
	bestId, ok := ai.BestColonizeTarget(candidates)
	if !ok {
		return false
	}
	return e.IssueColonizeBody(ship.FactionId, shipId, bestId, e.config.RestrictToDiscoveredDefault)
}

// habitabilityScore rates body on [0,1] closeness to Earth-like temperature
// and pressure; returns a neutral 0.5 when habitability scoring is disabled.
func (e *Engine) habitabilityScore(body *galaxy.Body) float64 {
	if !e.config.Habitability.Enabled {
		return 0.5
	}
	const earthTempK = 288.0
	const earthAtm = 1.0
	tempScore := 1.0 / (1.0 + math.Abs(body.SurfaceTempK-earthTempK)/50.0)
	atmScore := 1.0 / (1.0 + math.Abs(body.AtmospherePressureAtm-earthAtm))
	return (tempScore + atmScore) / 2.0
}
