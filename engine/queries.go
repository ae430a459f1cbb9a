package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/procgen"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// FindDesign looks up a ship design by id.
func (e *Engine) FindDesign(designId ids.Id) (*ships.ShipDesign, bool) {
	d, ok := e.state.Designs[designId]
	return d, ok
}

// FleetForShip returns the fleet a ship currently belongs to, if any.
func (e *Engine) FleetForShip(shipId ids.Id) (*ships.Fleet, bool) {
	return e.state.fleetForShip(shipId)
}

// IsShipDetectedByFaction reports whether viewerFactionId currently holds a
// live contact on shipId, i.e. the contact was last seen on the current day
// rather than only remembered from an earlier day. Callers that only care about
// "known at all, even stale" should read Faction.Contacts directly instead.
func (e *Engine) IsShipDetectedByFaction(viewerFactionId, shipId ids.Id) bool {
	faction, ok := e.state.Factions[viewerFactionId]
	if !ok {
		return false
	}
	contact, ok := faction.Contacts[shipId]
	if !ok {
		return false
	}
	return contact.LastSeenDay == e.state.Day
}

// AnomalyAt returns the procgen-spawned anomaly at id, if it still exists
// and has not already been resolved.
func (e *Engine) AnomalyAt(anomalyId ids.Id) (*procgen.Anomaly, bool) {
	a, ok := e.state.Anomalies[anomalyId]
	if !ok || a.Resolved {
		return nil, false
	}
	return a, true
}

// ShipsInSystem returns the ship ids currently present in a system, in
// deterministic sorted order.
func (e *Engine) ShipsInSystem(systemId ids.Id) []ids.Id {
	sys, ok := e.state.Systems[systemId]
	if !ok {
		return nil
	}
	out := append([]ids.Id(nil), sys.Ships...)
	ids.Sort(out)
	return out
}

// ColoniesForFaction returns a faction's colony ids in deterministic sorted
// order, for UI/reporting callers that don't want to walk the full map.
func (e *Engine) ColoniesForFaction(factionId ids.Id) []ids.Id {
	var out []ids.Id
	for _, cid := range colonyKeys(e.state.Colonies) {
		if e.state.Colonies[cid].FactionId == factionId {
			out = append(out, cid)
		}
	}
	return out
}
