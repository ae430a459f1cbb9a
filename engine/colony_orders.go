package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/colonies"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// resolveColonizeBody founds a new colony on arrival, per §4.E: a body may
// carry at most one colony, so an already-settled body is a silent no-op
// (the issue-time check already rejected this case for a freshly issued
// order, but a queued order can race a second colonizer arriving first).
func (e *Engine) resolveColonizeBody(shipId, bodyId ids.Id) {
	body, ok := e.state.Bodies[bodyId]
	if !ok || body.HasColony {
		return
	}
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	if ship.Colonists <= 0 {
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Warn,
			Category: events.CategoryConstructed, Message: "colonize order arrived with no colonists aboard",
			FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
		})
		return
	}

	colonyId := e.state.allocateId()
	colony := colonies.NewColony(colonyId, bodyId, ship.FactionId, "")
	colony.PopulationMillions = ship.Colonists
	e.state.Colonies[colonyId] = colony

	body.HasColony = true
	body.ColonyId = colonyId
	ship.Colonists = 0

	if faction, ok := e.state.Factions[ship.FactionId]; ok {
		if !faction.DiscoveredSystems[body.SystemId] {
			e.invalidateDiscovered(ship.FactionId)
		}
		faction.DiscoveredSystems[body.SystemId] = true
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryConstructed, Message: "colony founded",
		FactionId: ship.FactionId, ShipId: shipId, ColonyId: colonyId, SystemId: body.SystemId,
	})
}

// resolveSalvageWreck transfers a wreck's surviving cargo fraction into the
// salvaging ship's hold and removes the wreck once drained, per §4.H/§9.
func (e *Engine) resolveSalvageWreck(shipId ids.Id) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	so := e.state.Orders[shipId]
	order, hasOrder := so.Current()
	if !hasOrder {
		return
	}

	var wreckId ids.Id
	for _, id := range wreckKeys(e.state.Wrecks) {
		w := e.state.Wrecks[id]
		if w.SystemId == ship.SystemId && w.X == order.TargetPointX && w.Y == order.TargetPointY {
			wreckId = id
			break
		}
	}
	if wreckId == ids.Invalid {
		return
	}
	w := e.state.Wrecks[wreckId]
	if ship.Cargo == nil {
		ship.Cargo = make(map[string]float64)
	}
	fraction := e.config.Wrecks.CargoSalvageFraction
	if fraction <= 0 {
		fraction = 1
	}
	for _, key := range sortedResourceKeys(w.Minerals) {
		take := w.Minerals[key] * fraction
		ship.Cargo[key] += take
		delete(w.Minerals, key)
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryMining, Message: "wreck salvaged",
		FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
	})

	e.completeContractFor(ship.FactionId, wreckId)
	delete(e.state.Wrecks, wreckId)
}

func wreckKeys[T any](m map[ids.Id]T) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}

func sortedResourceKeys(m map[string]float64) []string {
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
