package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/sensors"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
	"github.com/masterblaster1999/Nebula4X-sub000/spatial"
)

// runSensorsForSystem rebuilds the spatial index for systemId, sweeps every
// faction's sensor sources against every ship present, and updates contacts,
// per §4.F. seenToday is keyed by (viewer, ship) pairs already detected in
// this tick's sweep; together with the contact's LastSeenDay it makes the
// 2-point snapshot shift trigger only once per day per contact.
func (e *Engine) runSensorsForSystem(systemId ids.Id, seenToday map[[2]ids.Id]bool) {
	sys, ok := e.state.Systems[systemId]
	if !ok {
		return
	}
	idx := e.rebuildSystemIndex(systemId)

	attenuation := galaxy.NebulaAttenuation(sys.NebulaDensity)

	var sources []sensors.Source
	targets := make(map[ids.Id]sensors.Target)
	for _, shipId := range sys.Ships {
		ship, ok := e.state.Ships[shipId]
		if !ok {
			continue
		}
		design, ok := e.state.Designs[ship.DesignId]
		if !ok {
			continue
		}
		effRange := design.Derived.SensorRangeMkm * attenuation
		if ship.PowerPolicy.IsOnline(ships.SubsystemSensors) && effRange > 0 {
			sources = append(sources, sensors.Source{
				OwnerFactionId: ship.FactionId,
				RangeMkm:       effRange,
				Position:       spatial.Point{X: ship.PositionX, Y: ship.PositionY},
			})
		}
		targets[shipId] = sensors.Target{
			ShipId:             shipId,
			FactionId:          ship.FactionId,
			Position:           spatial.Point{X: ship.PositionX, Y: ship.PositionY},
			EffectiveSignature: design.Derived.SignatureMultiplier,
			Name:               ship.Name,
			DesignId:           ship.DesignId,
		}
	}
	if len(sources) == 0 || len(targets) == 0 {
		return
	}

	detections := sensors.Sweep(sources, targets, idx, e.config.MaxSignatureOverConfig)
	for _, d := range detections {
		faction, ok := e.state.Factions[d.ViewerFactionId]
		if !ok {
			continue
		}
		key := [2]ids.Id{d.ViewerFactionId, d.Ship.ShipId}
		prior, existed := faction.Contacts[d.Ship.ShipId]
		first := !seenToday[key] && (!existed || prior.LastSeenDay < e.state.Day)
		seenToday[key] = true

		sensors.ApplyDetection(faction, d, e.state.Day, systemId, first)
		if !faction.DiscoveredSystems[systemId] {
			e.invalidateDiscovered(d.ViewerFactionId)
		}
		faction.DiscoveredSystems[systemId] = true

		if first {
			switch {
			case !existed:
				e.emitContactEvent(faction, d.Ship.FactionId, systemId, d.Ship.ShipId, "new sensor contact acquired")
			case prior.LastSeenDay < e.state.Day:
				e.emitContactEvent(faction, d.Ship.FactionId, systemId, d.Ship.ShipId, "sensor contact reacquired")
			}
		}
	}
}

// emitContactEvent records a sensor contact transition, gated by
// EmitDailyEvents and suppressed for contacts on a faction the viewer is
// allied with, per §4.F.
func (e *Engine) emitContactEvent(viewer *factions.Faction, targetFactionId, systemId, shipId ids.Id, message string) {
	if !e.config.EmitDailyEvents {
		return
	}
	if e.AreAllies(viewer.Id, targetFactionId) {
		return
	}
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategorySensors, Message: message,
		FactionId: viewer.Id, SystemId: systemId, ShipId: shipId,
	})
}

// runSensorsPass sweeps every system that currently has at least one ship.
func (e *Engine) runSensorsPass(seenToday map[[2]ids.Id]bool) {
	for _, systemId := range systemKeys(e.state.Systems) {
		if len(e.state.Systems[systemId].Ships) == 0 {
			continue
		}
		e.runSensorsForSystem(systemId, seenToday)
	}
}

// pruneAllContacts runs sensors.PruneContacts for every faction, dropping
// stale or destroyed-ship contacts, per §4.F. Called once per day boundary.
func (e *Engine) pruneAllContacts() {
	isDestroyed := func(id ids.Id) bool {
		_, ok := e.state.Ships[id]
		return !ok
	}
	for _, factionId := range factionKeys(e.state.Factions) {
		faction := e.state.Factions[factionId]
		for _, shipId := range contactKeys(faction.Contacts) {
			c := faction.Contacts[shipId]
			if e.state.Day-c.LastSeenDay > e.config.MaxContactAgeDays && !isDestroyed(shipId) {
				e.emitContactEvent(faction, c.LastSeenFactionId, c.LastSeenSystemId, shipId, "sensor contact lost")
			}
		}
		sensors.PruneContacts(faction, e.state.Day, e.config.MaxContactAgeDays, isDestroyed)
	}
}

// contactKeys returns a sorted copy of a contact map's keys for
// deterministic iteration.
func contactKeys(m map[ids.Id]factions.Contact) []ids.Id {
	out := make([]ids.Id, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	ids.Sort(out)
	return out
}
