package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// Contracts live on the assignee faction's own Faction.Contracts map (a
// value type, not a pointer, per factions.Faction) rather than a global
// State table, so a save/load round-trip never has to reconcile ownership
// back onto the right faction.

// runContractGeneration offers up to DailyNewOffersPerFaction new contracts
// per faction, capped at MaxOffersPerFaction outstanding offers, drawing
// targets from unresolved anomalies, un-decayed wrecks, and unsurveyed jump
// points the faction has already discovered. Called once per day boundary
// alongside the rest of the daily economy pass.
func (e *Engine) runContractGeneration() {
	cfg := e.config.Contracts
	if !cfg.Enabled {
		return
	}
	for _, factionId := range factionKeys(e.state.Factions) {
		faction := e.state.Factions[factionId]
		outstanding := 0
		for _, id := range contractKeys(faction.Contracts) {
			c := faction.Contracts[id]
			if c.Status == factions.ContractOffered || c.Status == factions.ContractAccepted {
				outstanding++
			}
		}
		offered := 0
		for _, t := range e.candidateContractTargets(faction) {
			if outstanding >= cfg.MaxOffersPerFaction || offered >= cfg.DailyNewOffersPerFaction {
				break
			}
			e.offerContract(faction, t)
			outstanding++
			offered++
		}
	}
	e.pruneExpiredContracts()
}

// contractTarget pairs a contract kind with the system/target ids it offers
// a ship to visit, used only to drive runContractGeneration's candidate scan.
type contractTarget struct {
	kind     factions.ContractKind
	systemId ids.Id
	targetId ids.Id
	hops     int
}

// candidateContractTargets scans discovered systems for unresolved anomalies,
// live wrecks, and unsurveyed jump points a faction could be offered a
// contract against, skipping anything it already holds a contract for.
func (e *Engine) candidateContractTargets(faction *factions.Faction) []contractTarget {
	held := make(map[ids.Id]bool)
	for _, id := range contractKeys(faction.Contracts) {
		held[faction.Contracts[id].TargetId] = true
	}

	var out []contractTarget
	for _, id := range wreckKeys(e.state.Anomalies) {
		a := e.state.Anomalies[id]
		if a.Resolved || held[id] || !faction.DiscoveredSystems[a.SystemId] {
			continue
		}
		out = append(out, contractTarget{kind: factions.ContractInvestigateAnomaly, systemId: a.SystemId, targetId: id})
	}
	for _, id := range wreckKeys(e.state.Wrecks) {
		w := e.state.Wrecks[id]
		if held[id] || !faction.DiscoveredSystems[w.SystemId] {
			continue
		}
		out = append(out, contractTarget{kind: factions.ContractSalvageWreck, systemId: w.SystemId, targetId: id})
	}
	for _, id := range wreckKeys(e.state.JumpPoints) {
		jp := e.state.JumpPoints[id]
		if held[id] || faction.SurveyedJumpPoints[id] >= 1.0 || !faction.DiscoveredSystems[jp.SystemId] {
			continue
		}
		out = append(out, contractTarget{kind: factions.ContractSurveyJumpPoint, systemId: jp.SystemId, targetId: id})
	}
	return out
}

// offerContract creates one Offered contract for the given target on the
// faction's own Contracts map, priced by the configured reward coefficients.
func (e *Engine) offerContract(faction *factions.Faction, t contractTarget) {
	id := e.state.allocateId()
	cfg := e.config.Contracts
	reward := cfg.RewardBase + cfg.RewardPerHop*float64(t.hops)
	faction.Contracts[id] = factions.Contract{
		Id:                  id,
		Kind:                t.kind,
		Status:              factions.ContractOffered,
		AssigneeFactionId:   faction.Id,
		SystemId:            t.systemId,
		TargetId:            t.targetId,
		OfferedDay:          e.state.Day,
		ExpiresDay:          e.state.Day + cfg.OfferExpiryDays,
		ResearchPointReward: reward,
		Name:                string(t.kind),
	}
}

// pruneExpiredContracts marks offers and accepted contracts past their
// ExpiresDay as Expired, leaving completed/failed history untouched.
func (e *Engine) pruneExpiredContracts() {
	for _, factionId := range factionKeys(e.state.Factions) {
		faction := e.state.Factions[factionId]
		for _, id := range contractKeys(faction.Contracts) {
			c := faction.Contracts[id]
			if (c.Status == factions.ContractOffered || c.Status == factions.ContractAccepted) && e.state.Day > c.ExpiresDay {
				c.Status = factions.ContractExpired
				faction.Contracts[id] = c
			}
		}
	}
}

// AcceptContract moves an Offered contract into Accepted, recording the
// acceptance day.
func (e *Engine) AcceptContract(factionId, contractId ids.Id) bool {
	faction, ok := e.state.Factions[factionId]
	if !ok {
		return false
	}
	c, ok := faction.Contracts[contractId]
	if !ok || c.Status != factions.ContractOffered {
		return false
	}
	c.Status = factions.ContractAccepted
	c.AcceptedDay = e.state.Day
	faction.Contracts[contractId] = c
	return true
}

// AbandonContract drops an accepted (or still-offered) contract without
// resolving it, freeing the faction to take another in its place.
func (e *Engine) AbandonContract(factionId, contractId ids.Id) bool {
	faction, ok := e.state.Factions[factionId]
	if !ok {
		return false
	}
	c, ok := faction.Contracts[contractId]
	if !ok || (c.Status != factions.ContractOffered && c.Status != factions.ContractAccepted) {
		return false
	}
	delete(faction.Contracts, contractId)
	return true
}

// AssignContractToShip accepts the contract if needed, then issues the
// underlying travel order to shipId and records the assignment.
func (e *Engine) AssignContractToShip(factionId, contractId, shipId ids.Id) bool {
	faction, ok := e.state.Factions[factionId]
	if !ok {
		return false
	}
	c, ok := faction.Contracts[contractId]
	if !ok {
		return false
	}
	if c.Status == factions.ContractOffered {
		c.Status = factions.ContractAccepted
		c.AcceptedDay = e.state.Day
	}
	if c.Status != factions.ContractAccepted {
		return false
	}

	var issued bool
	switch c.Kind {
	case factions.ContractInvestigateAnomaly:
		issued = e.IssueInvestigateAnomaly(factionId, shipId, c.TargetId, e.config.RestrictToDiscoveredDefault)
	case factions.ContractSalvageWreck:
		issued = e.IssueSalvageWreck(factionId, shipId, c.TargetId, e.config.RestrictToDiscoveredDefault)
	case factions.ContractSurveyJumpPoint:
		issued = e.IssueSurveyJumpPoint(factionId, shipId, c.TargetId, false)
	}
	if !issued {
		return false
	}
	c.AssignedShipId = shipId
	faction.Contracts[contractId] = c
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryOrders, Message: "contract assigned to ship",
		FactionId: factionId, ShipId: shipId, SystemId: c.SystemId,
	})
	return true
}

// AssignContractToFleet assigns a contract to a fleet's leader ship; the
// rest of the fleet is unaffected since a contract tracks one assignee ship.
func (e *Engine) AssignContractToFleet(factionId, contractId, fleetId ids.Id) bool {
	fleet, ok := e.state.Fleets[fleetId]
	if !ok || fleet.FactionId != factionId || fleet.LeaderId == ids.Invalid {
		return false
	}
	if !e.AssignContractToShip(factionId, contractId, fleet.LeaderId) {
		return false
	}
	faction := e.state.Factions[factionId]
	c := faction.Contracts[contractId]
	c.AssignedFleetId = fleetId
	faction.Contracts[contractId] = c
	return true
}

func contractKeys(m map[ids.Id]factions.Contract) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}
