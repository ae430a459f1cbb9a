package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/combat"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/rng"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// runInstantOrder resolves the non-travel orders §4.C routes away from
// stepShipMovement: cargo/troop/colonist transfers, ground actions, and
// duration orders that tick down without the ship moving. The ship must
// already be wherever the order needs it, same convention as MineBody.
func (e *Engine) runInstantOrder(shipId ids.Id, dt float64) {
	so, ok := e.state.Orders[shipId]
	if !ok || len(so.Queue) == 0 {
		return
	}
	order := so.Queue[0]
	switch order.Kind {
	case ships.OrderWaitDays:
		so.Queue[0].WaitDaysRemaining -= dt
		if so.Queue[0].WaitDaysRemaining <= 0 {
			so.Pop()
		}
	case ships.OrderLoadMineral:
		e.resolveMineralTransfer(shipId, order, true)
		so.Pop()
	case ships.OrderUnloadMineral:
		e.resolveMineralTransfer(shipId, order, false)
		so.Pop()
	case ships.OrderLoadTroops:
		e.resolveTroopTransfer(shipId, order, true)
		so.Pop()
	case ships.OrderUnloadTroops:
		e.resolveTroopTransfer(shipId, order, false)
		so.Pop()
	case ships.OrderLoadColonists:
		e.resolveColonistTransfer(shipId, order, true)
		so.Pop()
	case ships.OrderUnloadColonists:
		e.resolveColonistTransfer(shipId, order, false)
		so.Pop()
	case ships.OrderTransferCargoToShip:
		e.resolveShipToShipCargo(shipId, order)
		so.Pop()
	case ships.OrderTransferFuelToShip:
		e.resolveShipToShipFuel(shipId, order)
		so.Pop()
	case ships.OrderTransferTroopsToShip:
		e.resolveShipToShipTroops(shipId, order)
		so.Pop()
	case ships.OrderInvadeColony:
		e.resolveInvadeColony(shipId, order)
		so.Pop()
	case ships.OrderBombardColony:
		e.resolveBombardColony(shipId, dt)
	case ships.OrderScrapShip:
		e.resolveScrapShip(shipId)
	}
}

// resolveMineralTransfer moves minerals between a ship's cargo and a
// colony's stockpile. An empty ResourceKey means every mineral the source
// side is carrying; Quantity <= 0 means "as much as possible".
func (e *Engine) resolveMineralTransfer(shipId ids.Id, order ships.Order, isLoad bool) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	colony, ok := e.state.Colonies[order.TargetColonyId]
	if !ok {
		return
	}
	if ship.Cargo == nil {
		ship.Cargo = make(map[string]float64)
	}

	var keys []string
	if order.ResourceKey != "" {
		keys = []string{order.ResourceKey}
	} else if isLoad {
		keys = sortedResourceKeys(colony.Minerals)
	} else {
		keys = sortedResourceKeys(ship.Cargo)
	}

	for _, key := range keys {
		if isLoad {
			take := colony.Minerals[key]
			if order.Quantity > 0 && order.Quantity < take {
				take = order.Quantity
			}
			if take <= 0 {
				continue
			}
			colony.AddMineral(key, -take)
			ship.Cargo[key] += take
		} else {
			take := ship.Cargo[key]
			if order.Quantity > 0 && order.Quantity < take {
				take = order.Quantity
			}
			if take <= 0 {
				continue
			}
			ship.Cargo[key] -= take
			colony.AddMineral(key, take)
		}
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "mineral transfer completed",
		FactionId: ship.FactionId, ShipId: shipId, ColonyId: colony.Id, SystemId: ship.SystemId,
	})
}

// resolveTroopTransfer moves troop strength between a ship's embarked
// complement and a colony's ground defense, clamped to the ship's design
// troop capacity.
func (e *Engine) resolveTroopTransfer(shipId ids.Id, order ships.Order, isLoad bool) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	colony, ok := e.state.Colonies[order.TargetColonyId]
	if !ok {
		return
	}
	design, ok := e.state.Designs[ship.DesignId]
	if !ok {
		return
	}

	if isLoad {
		room := design.Derived.TroopCapacity - ship.Troops
		take := colony.TroopStrength
		if order.Quantity > 0 && order.Quantity < take {
			take = order.Quantity
		}
		if take > room {
			take = room
		}
		if take <= 0 {
			return
		}
		colony.TroopStrength -= take
		ship.Troops += take
	} else {
		take := ship.Troops
		if order.Quantity > 0 && order.Quantity < take {
			take = order.Quantity
		}
		if take <= 0 {
			return
		}
		ship.Troops -= take
		colony.TroopStrength += take
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "troop transfer completed",
		FactionId: ship.FactionId, ShipId: shipId, ColonyId: colony.Id, SystemId: ship.SystemId,
	})
}

// resolveColonistTransfer moves colonist population between a ship and a
// colony, clamped to the ship's design colonist capacity.
func (e *Engine) resolveColonistTransfer(shipId ids.Id, order ships.Order, isLoad bool) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	colony, ok := e.state.Colonies[order.TargetColonyId]
	if !ok {
		return
	}
	design, ok := e.state.Designs[ship.DesignId]
	if !ok {
		return
	}

	if isLoad {
		room := design.Derived.ColonistCapacity - ship.Colonists
		take := colony.PopulationMillions
		if order.Quantity > 0 && order.Quantity < take {
			take = order.Quantity
		}
		if take > room {
			take = room
		}
		if take <= 0 {
			return
		}
		colony.PopulationMillions -= take
		ship.Colonists += take
	} else {
		take := ship.Colonists
		if order.Quantity > 0 && order.Quantity < take {
			take = order.Quantity
		}
		if take <= 0 {
			return
		}
		ship.Colonists -= take
		colony.PopulationMillions += take
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "colonist transfer completed",
		FactionId: ship.FactionId, ShipId: shipId, ColonyId: colony.Id, SystemId: ship.SystemId,
	})
}

// shipsInSameSystem reports whether two ships currently share a system, the
// precondition every ship-to-ship transfer order relies on.
func (e *Engine) shipsInSameSystem(a, b *ships.Ship) bool {
	return a.SystemId == b.SystemId
}

func (e *Engine) resolveShipToShipCargo(shipId ids.Id, order ships.Order) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	target, ok := e.state.Ships[order.TargetShipId]
	if !ok || !e.shipsInSameSystem(ship, target) {
		return
	}
	if target.Cargo == nil {
		target.Cargo = make(map[string]float64)
	}
	var keys []string
	if order.ResourceKey != "" {
		keys = []string{order.ResourceKey}
	} else {
		keys = sortedResourceKeys(ship.Cargo)
	}
	for _, key := range keys {
		take := ship.Cargo[key]
		if order.Quantity > 0 && order.Quantity < take {
			take = order.Quantity
		}
		if take <= 0 {
			continue
		}
		ship.Cargo[key] -= take
		target.Cargo[key] += take
	}
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "cargo transferred to ship",
		FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
	})
}

func (e *Engine) resolveShipToShipFuel(shipId ids.Id, order ships.Order) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	target, ok := e.state.Ships[order.TargetShipId]
	if !ok || !e.shipsInSameSystem(ship, target) {
		return
	}
	targetDesign, ok := e.state.Designs[target.DesignId]
	if !ok {
		return
	}
	room := targetDesign.Derived.FuelCapacityTons - target.Fuel
	take := ship.Fuel
	if order.Quantity > 0 && order.Quantity < take {
		take = order.Quantity
	}
	if take > room {
		take = room
	}
	if take <= 0 {
		return
	}
	ship.Fuel -= take
	target.Fuel += take
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "fuel transferred to ship",
		FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
	})
}

func (e *Engine) resolveShipToShipTroops(shipId ids.Id, order ships.Order) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	target, ok := e.state.Ships[order.TargetShipId]
	if !ok || !e.shipsInSameSystem(ship, target) {
		return
	}
	targetDesign, ok := e.state.Designs[target.DesignId]
	if !ok {
		return
	}
	room := targetDesign.Derived.TroopCapacity - target.Troops
	take := ship.Troops
	if order.Quantity > 0 && order.Quantity < take {
		take = order.Quantity
	}
	if take > room {
		take = room
	}
	if take <= 0 {
		return
	}
	ship.Troops -= take
	target.Troops += take
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "troops transferred to ship",
		FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
	})
}

// resolveInvadeColony rolls a ground-assault attempt using the same
// attacker/defender-effectiveness model boarding uses (§4.G), substituting
// the colony's ground troop strength for a target ship's troops/HP.
func (e *Engine) resolveInvadeColony(shipId ids.Id, order ships.Order) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	colony, ok := e.state.Colonies[order.TargetColonyId]
	if !ok {
		return
	}
	cfg := e.config.Boarding
	if ship.Troops < cfg.MinAttackerTroops {
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Warn,
			Category: events.CategoryCombat, Message: "invasion called off, insufficient troops",
			FactionId: ship.FactionId, ShipId: shipId, ColonyId: colony.Id, SystemId: ship.SystemId,
		})
		return
	}
	defenderFaction := colony.FactionId

	aEff := ship.Troops * (1 + ship.CrewGradeBonus())
	dEff := colony.TroopStrength + colony.Ground.Strength
	chance := 1.0
	if aEff+dEff > 0 {
		chance = aEff / (aEff + dEff)
	}
	seed := uint64(e.state.Day)*1000003 + uint64(shipId)*97 + uint64(colony.Id)
	r := rng.New(rng.SplitMix64(seed))
	success := r.NextU01() < chance

	ship.Troops -= ship.Troops * cfg.AttackerCasualtyFraction
	if ship.Troops < 0 {
		ship.Troops = 0
	}
	colony.TroopStrength -= colony.TroopStrength * cfg.DefenderCasualtyFraction
	if colony.TroopStrength < 0 {
		colony.TroopStrength = 0
	}

	if success {
		colony.FactionId = ship.FactionId
		colony.TroopStrength = 0
		colony.Ground.Strength = 0
		if body, ok := e.state.Bodies[colony.BodyId]; ok {
			if faction, ok := e.state.Factions[ship.FactionId]; ok {
				if !faction.DiscoveredSystems[body.SystemId] {
					e.invalidateDiscovered(ship.FactionId)
				}
				faction.DiscoveredSystems[body.SystemId] = true
			}
		}
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
			Category: events.CategoryCombat, Message: "colony captured by invasion",
			FactionId: ship.FactionId, ShipId: shipId, ColonyId: colony.Id, SystemId: ship.SystemId,
		})
	} else {
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Warn,
			Category: events.CategoryCombat, Message: "invasion repelled",
			FactionId: defenderFaction, ShipId: shipId, ColonyId: colony.Id, SystemId: ship.SystemId,
		})
	}
}

// resolveBombardColony grinds down a colony's ground defenses and
// population over BombardProgressDays/DurationDays, per the OrbitBody-style
// "stays queued until duration elapses" pattern.
func (e *Engine) resolveBombardColony(shipId ids.Id, dt float64) {
	so := e.state.Orders[shipId]
	order := &so.Queue[0]
	ship, ok := e.state.Ships[shipId]
	if !ok {
		so.Pop()
		return
	}
	colony, ok := e.state.Colonies[order.TargetColonyId]
	if !ok {
		so.Pop()
		return
	}

	const troopsPerDay = 2.0
	const populationPerDay = 0.01
	colony.TroopStrength -= troopsPerDay * dt
	if colony.TroopStrength < 0 {
		colony.TroopStrength = 0
	}
	colony.PopulationMillions -= populationPerDay * dt
	if colony.PopulationMillions < 0 {
		colony.PopulationMillions = 0
	}

	order.BombardProgressDays += dt
	if order.BombardProgressDays >= order.DurationDays {
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
			Category: events.CategoryCombat, Message: "bombardment concluded",
			FactionId: ship.FactionId, ShipId: shipId, ColonyId: colony.Id, SystemId: ship.SystemId,
		})
		so.Pop()
	}
}

// resolveInvestigateAnomaly ticks down an anomaly investigation, reusing
// WaitDaysRemaining as the remaining-duration counter (set by
// IssueInvestigateAnomaly from the anomaly's InvestigationDays), then
// applies the anomaly's reward once elapsed.
func (e *Engine) resolveInvestigateAnomaly(shipId ids.Id, dt float64) {
	so := e.state.Orders[shipId]
	order := &so.Queue[0]
	ship, ok := e.state.Ships[shipId]
	if !ok {
		so.Pop()
		return
	}
	order.WaitDaysRemaining -= dt
	if order.WaitDaysRemaining > 0 {
		return
	}
	anomalyId := order.TargetBodyId
	if e.resolveAnomaly(anomalyId, ship.FactionId) {
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
			Category: events.CategoryProcgen, Message: "anomaly investigated",
			FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
		})
		e.completeContractFor(ship.FactionId, anomalyId)
	}
	so.Pop()
}

// completeContractFor marks the faction's first Accepted contract against
// targetId Completed and folds its research reward into the faction's
// active research progress, per §9's contract reward rule.
func (e *Engine) completeContractFor(factionId, targetId ids.Id) {
	faction, ok := e.state.Factions[factionId]
	if !ok {
		return
	}
	for _, id := range contractKeys(faction.Contracts) {
		c := faction.Contracts[id]
		if c.TargetId != targetId || c.Status != factions.ContractAccepted {
			continue
		}
		c.Status = factions.ContractCompleted
		c.ResolvedDay = e.state.Day
		faction.Contracts[id] = c
		e.applyResearch(factionId, c.ResearchPointReward)
		return
	}
}

// resolveScrapShip breaks a ship down at its current position for salvage,
// depositing recovered minerals into a colony if one occupies the body the
// ship sits over, otherwise leaving a cache wreck, then removes the ship.
func (e *Engine) resolveScrapShip(shipId ids.Id) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	design, ok := e.state.Designs[ship.DesignId]
	if !ok {
		e.state.removeShipEverywhere(shipId)
		return
	}
	recovered := combat.SalvageFraction(ship.Cargo, design.Derived.MassTons,
		e.config.Wrecks.CargoSalvageFraction, e.config.Wrecks.HullSalvageFraction, design.Derived.BuildCostsPerTon)

	if colonyId, ok := e.colonyAtShipPosition(ship); ok {
		colony := e.state.Colonies[colonyId]
		for key, tons := range recovered {
			colony.AddMineral(key, tons)
		}
	} else {
		wreckId := e.state.allocateId()
		e.state.Wrecks[wreckId] = &ships.Wreck{
			Id: wreckId, SystemId: ship.SystemId, X: ship.PositionX, Y: ship.PositionY,
			Minerals: recovered, OriginShipId: shipId, OriginFactionId: ship.FactionId,
			OriginDesignId: ship.DesignId, CreatedDay: e.state.Day, IsCache: true,
		}
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "ship scrapped for salvage",
		FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
	})
	e.state.removeShipEverywhere(shipId)
}

// colonyAtShipPosition finds a colony on a body the ship currently sits at
// (within arrival epsilon), used by ScrapShip to decide cache vs. stockpile.
func (e *Engine) colonyAtShipPosition(ship *ships.Ship) (ids.Id, bool) {
	for _, colonyId := range colonyKeys(e.state.Colonies) {
		colony := e.state.Colonies[colonyId]
		body, ok := e.state.Bodies[colony.BodyId]
		if !ok || body.SystemId != ship.SystemId {
			continue
		}
		pos := body.LocalPosition(float64(e.state.Day))
		dx, dy := pos.X-ship.PositionX, pos.Y-ship.PositionY
		if dx*dx+dy*dy <= e.config.ArrivalEpsilonMkm*e.config.ArrivalEpsilonMkm {
			return colonyId, true
		}
	}
	return ids.Invalid, false
}

// runMiningShips extracts minerals from a body into every ship currently
// executing an arrived MineBody order, capped by the ship's mining rate,
// remaining cargo room, and the body's deposit, popping the order when
// StopWhenFull is set and the hold fills.
func (e *Engine) runMiningShips(dt float64) {
	for _, shipId := range shipKeys(e.state.Ships) {
		ship := e.state.Ships[shipId]
		so, ok := e.state.Orders[shipId]
		if !ok || len(so.Queue) == 0 || so.Queue[0].Kind != ships.OrderMineBody {
			continue
		}
		order := so.Queue[0]
		body, ok := e.state.Bodies[order.TargetBodyId]
		if !ok || body.SystemId != ship.SystemId {
			continue
		}
		pos := body.LocalPosition(float64(e.state.Day))
		dx, dy := pos.X-ship.PositionX, pos.Y-ship.PositionY
		if dx*dx+dy*dy > e.config.ArrivalEpsilonMkm*e.config.ArrivalEpsilonMkm {
			continue
		}
		design, ok := e.state.Designs[ship.DesignId]
		if !ok {
			continue
		}
		if ship.Cargo == nil {
			ship.Cargo = make(map[string]float64)
		}

		var cargoUsed float64
		for _, tons := range ship.Cargo {
			cargoUsed += tons
		}
		room := design.Derived.CargoTons - cargoUsed
		if room <= 0 {
			if order.StopWhenFull {
				so.Pop()
			}
			continue
		}

		rate := design.Derived.CargoMiningRate * dt
		if rate > room {
			rate = room
		}
		extracted := 0.0
		for _, key := range sortedResourceKeys(body.MineralDeposits) {
			if rate-extracted <= 0 {
				break
			}
			avail := body.MineralDeposits[key]
			if avail <= 0 {
				continue
			}
			take := rate - extracted
			if take > avail {
				take = avail
			}
			body.MineralDeposits[key] -= take
			ship.Cargo[key] += take
			extracted += take
		}

		cargoUsed += extracted
		if order.StopWhenFull && design.Derived.CargoTons-cargoUsed <= 1e-9 {
			so.Pop()
		}
	}
}
