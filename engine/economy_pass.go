package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/colonies"
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
	"github.com/masterblaster1999/Nebula4X-sub000/simutil"
)

// outputMultipliersFor folds a faction's known-tech effects into the
// per-output-class multiplier set §4.E's economy passes scale by: each
// effect's additive bonus sums, each explicit multiplier compounds.
func (e *Engine) outputMultipliersFor(factionId ids.Id) colonies.OutputMultipliers {
	out := colonies.OutputMultipliers{Mining: 1, Industry: 1, Research: 1, Construction: 1, Shipyard: 1, Terraforming: 1, TroopTraining: 1}
	faction, ok := e.state.Factions[factionId]
	if !ok {
		return out
	}
	apply := func(class content.OutputClass, additive, mult float64) {
		add := func(field *float64) {
			*field += additive
			if mult != 0 {
				*field *= mult
			}
		}
		switch class {
		case content.OutputMining:
			add(&out.Mining)
		case content.OutputIndustry:
			add(&out.Industry)
		case content.OutputResearch:
			add(&out.Research)
		case content.OutputConstruction:
			add(&out.Construction)
		case content.OutputShipyard:
			add(&out.Shipyard)
		case content.OutputTerraforming:
			add(&out.Terraforming)
		case content.OutputTroopTraining:
			add(&out.TroopTraining)
		case content.OutputAll:
			add(&out.Mining)
			add(&out.Industry)
			add(&out.Research)
			add(&out.Construction)
			add(&out.Shipyard)
			add(&out.Terraforming)
			add(&out.TroopTraining)
		}
	}
	for _, techKey := range faction.KnownTechs {
		def, ok := e.content.Techs[techKey]
		if !ok {
			continue
		}
		for _, eff := range def.Effects {
			if eff.OutputBonusAdditive != 0 || eff.OutputMultiplier != 0 {
				apply(eff.Class, eff.OutputBonusAdditive, eff.OutputMultiplier)
			}
		}
	}
	return out
}

// miningScarcityConfig adapts engine Config to colonies.MineScarcityConfig.
func (e *Engine) miningScarcityConfig() colonies.MineScarcityConfig {
	return colonies.MineScarcityConfig{
		Enabled:    e.config.MiningScarcity.Enabled,
		BufferDays: e.config.MiningScarcity.BufferDays,
		NeedBoost:  e.config.MiningScarcity.NeedBoost,
	}
}

// runDailyEconomy drives mining, industry, research, construction and
// shipyard for every colony, once per day boundary, per §4.E/§4.J.
func (e *Engine) runDailyEconomy() {
	for _, bodyId := range e.bodiesWithColonies() {
		e.runMiningForBody(bodyId)
	}
	for _, colonyId := range colonyKeys(e.state.Colonies) {
		colony := e.state.Colonies[colonyId]
		mult := e.outputMultipliersFor(colony.FactionId)

		colonies.RunIndustry(colony, e.content, mult.Industry, 1.0)

		research := colonies.ResearchOutput(colony, e.content, mult.Research)
		e.applyResearch(colony.FactionId, research)

		cp := colonies.ConstructionCPOutput(colony, e.content, mult.Construction)
		colonies.RunConstruction(colony, e.content, cp, e.state.Events, e.state.Day, e.state.HourOfDay)

		e.runShipyardForColony(colony, mult.Shipyard)
	}
}

// bodiesWithColonies lists every colonized body id, sorted.
func (e *Engine) bodiesWithColonies() []ids.Id {
	var out []ids.Id
	keys := make([]ids.Id, 0, len(e.state.Bodies))
	for id := range e.state.Bodies {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	for _, id := range keys {
		if e.state.Bodies[id].HasColony {
			out = append(out, id)
		}
	}
	return out
}

// runMiningForBody builds the mining request for the one colony settled on
// bodyId and resolves it through colonies.RunMining.
func (e *Engine) runMiningForBody(bodyId ids.Id) {
	body := e.state.Bodies[bodyId]
	colony, ok := e.state.Colonies[body.ColonyId]
	if !ok {
		return
	}
	mult := e.outputMultipliersFor(colony.FactionId)

	requestsByMineral := make(map[string][]colonies.MiningRequest)
	for _, key := range simutil.SortedKeys(colony.Installations) {
		count := colony.Installations[key]
		if count <= 0 {
			continue
		}
		def, ok := e.content.Installations[content.InstallationKey(key)]
		if !ok || !def.IsMiningInstallation {
			continue
		}
		for _, mineralKey := range simutil.SortedKeys(def.OutputsPerDay) {
			perDay := def.OutputsPerDay[mineralKey]
			tons := perDay * float64(count) * mult.Mining
			if tons <= 0 {
				continue
			}
			mk := string(mineralKey)
			requestsByMineral[mk] = append(requestsByMineral[mk], colonies.MiningRequest{ColonyId: colony.Id, Tons: tons})
		}
	}
	if len(requestsByMineral) == 0 {
		return
	}
	stockByColony := map[ids.Id]map[string]float64{colony.Id: colony.Minerals}
	colonies.RunMining(body, requestsByMineral, stockByColony, e.miningScarcityConfig(), e.state.Events, e.state.Day, e.state.HourOfDay)
}

// applyResearch advances a faction's active tech by researchPoints, rolling
// onto the next queued tech (if any) when the active one completes, per
// §4.E/§4.I.
func (e *Engine) applyResearch(factionId ids.Id, researchPoints float64) {
	if researchPoints <= 0 {
		return
	}
	faction, ok := e.state.Factions[factionId]
	if !ok {
		return
	}
	if faction.ActiveTechId == "" {
		if len(faction.ResearchQueue) == 0 {
			return
		}
		faction.ActiveTechId = faction.ResearchQueue[0]
		faction.ResearchQueue = faction.ResearchQueue[1:]
		faction.ActiveTechProgressPoints = 0
	}
	def, ok := e.content.Techs[faction.ActiveTechId]
	if !ok {
		faction.ActiveTechId = ""
		return
	}
	faction.ActiveTechProgressPoints += researchPoints
	if faction.ActiveTechProgressPoints < def.Cost {
		return
	}
	faction.KnownTechs = append(faction.KnownTechs, faction.ActiveTechId)
	for _, eff := range def.Effects {
		if eff.UnlocksComponent != "" {
			faction.UnlockedComponents[eff.UnlocksComponent] = true
		}
		if eff.UnlocksInstallation != "" {
			faction.UnlockedInstallations[eff.UnlocksInstallation] = true
		}
	}
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryResearch, Message: "research completed: " + string(faction.ActiveTechId),
		FactionId: factionId,
	})
	faction.ActiveTechId = ""
	if len(faction.ResearchQueue) > 0 {
		faction.ActiveTechId = faction.ResearchQueue[0]
		faction.ResearchQueue = faction.ResearchQueue[1:]
		faction.ActiveTechProgressPoints = 0
	}
}

// runShipyardForColony advances build queue progress and finalizes any
// order that completes this pass into a newly allocated ship.
func (e *Engine) runShipyardForColony(colony *colonies.Colony, shipyardMult float64) {
	teams := colony.ShipyardCount(func(key string) bool {
		def, ok := e.content.Installations[content.InstallationKey(key)]
		return ok && def.IsShipyard
	})
	if teams <= 0 || len(colony.ShipyardQueue) == 0 {
		return
	}
	baseRate := 0.0
	for _, key := range simutil.SortedKeys(colony.Installations) {
		def, ok := e.content.Installations[content.InstallationKey(key)]
		if ok && def.IsShipyard && def.ShipyardBaseRateTonsPerDay > baseRate {
			baseRate = def.ShipyardBaseRateTonsPerDay
		}
	}
	rates := colonies.ShipyardRates{BaseRateTonsPerDay: baseRate, ShipyardMult: shipyardMult, ProsperityMult: 1, BlockadeMult: 1}
	completed := colonies.RunShipyard(colony, teams, rates, 1.0, func(shipId uint64) bool { return false })
	if len(completed) == 0 {
		return
	}
	// Indices shift as completed orders are removed; walk in descending
	// order so earlier indices stay valid.
	for i := len(completed) - 1; i >= 0; i-- {
		idx := completed[i]
		order := colony.ShipyardQueue[idx]
		e.finalizeBuildOrder(colony, order)
		colony.ShipyardQueue = append(colony.ShipyardQueue[:idx], colony.ShipyardQueue[idx+1:]...)
	}
}

// finalizeBuildOrder materializes a completed shipyard order: a new hull,
// or a refit applied to an existing ship.
func (e *Engine) finalizeBuildOrder(colony *colonies.Colony, order colonies.BuildOrder) {
	design, ok := e.state.Designs[order.DesignId]
	if !ok {
		return
	}
	if order.RefitShipId != ids.Invalid {
		if ship, ok := e.state.Ships[order.RefitShipId]; ok {
			ship.DesignId = order.DesignId
			ship.HP = design.Derived.MaxHP
		}
		return
	}

	body := e.state.Bodies[colony.BodyId]
	shipId := e.state.allocateId()
	ship := &ships.Ship{
		Id:          shipId,
		FactionId:   colony.FactionId,
		SystemId:    body.SystemId,
		PositionX:   body.LocalPosition(float64(e.state.Day)).X,
		PositionY:   body.LocalPosition(float64(e.state.Day)).Y,
		DesignId:    order.DesignId,
		Name:        design.Name,
		HP:          design.Derived.MaxHP,
		Shields:     design.Derived.MaxShields,
		Fuel:        design.Derived.FuelCapacityTons,
		Cargo:       make(map[string]float64),
		MissileAmmo: design.Derived.MissileAmmoCapacity,
	}
	e.state.Ships[shipId] = ship
	if sys, ok := e.state.Systems[body.SystemId]; ok {
		sys.AddShip(shipId)
	}

	if order.AssignFleetId != ids.Invalid {
		if fleet, ok := e.state.Fleets[order.AssignFleetId]; ok {
			fleet.AddMember(shipId)
		}
	}
	if order.RallyBodyId != ids.Invalid {
		e.injectRouteToSystem(shipId, e.state.Bodies[order.RallyBodyId].SystemId,
			e.state.Bodies[order.RallyBodyId].LocalPosition(float64(e.state.Day)), true,
			colony.FactionId, false, ships.Order{Kind: ships.OrderMoveToBody, TargetBodyId: order.RallyBodyId})
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryConstructed, Message: "ship completed: " + design.Name,
		FactionId: colony.FactionId, ShipId: shipId, ColonyId: colony.Id,
	})
}
