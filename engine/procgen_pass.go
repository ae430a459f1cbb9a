package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/procgen"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// GenerateScenario populates the engine's (expected-empty) galaxy with a
// freshly generated one, per §4.I: pure function of cfg over the engine's
// id allocator, byte-identical for an identical cfg/allocator state.
func (e *Engine) GenerateScenario(cfg procgen.GalaxyGenConfig) {
	generated := procgen.GenerateGalaxy(cfg, e.state.IdAlloc)
	for id, region := range generated.Regions {
		e.state.Regions[id] = region
	}
	for id, sys := range generated.Systems {
		e.state.Systems[id] = sys
	}
	for id, body := range generated.Bodies {
		e.state.Bodies[id] = body
	}
	for id, jp := range generated.JumpPoints {
		e.state.JumpPoints[id] = jp
	}
	e.invalidateTopology()
}

// dynamicPOIConfig adapts engine Config to procgen.DynamicPOIConfig.
func (e *Engine) dynamicPOIConfig() procgen.DynamicPOIConfig {
	c := e.config.DynamicPOI
	return procgen.DynamicPOIConfig{
		Enabled:                         c.Enabled,
		MaxUnresolvedAnomaliesTotal:     c.MaxAnomaliesTotal,
		MaxActiveCachesTotal:            c.MaxCachesTotal,
		MaxUnresolvedAnomaliesPerSystem: c.MaxAnomaliesPerSystem,
		MaxActiveCachesPerSystem:        c.MaxCachesPerSystem,
		AnomalySpawnChancePerSystemPerDay: c.AnomalySpawnChancePerSystemPerDay,
		CacheSpawnChancePerSystemPerDay:   c.CacheSpawnChancePerSystemPerDay,
	}
}

// runDynamicPOISpawns runs one day's anomaly/cache spawn pass across every
// system and inserts the results into state, per §4.I. Called once per day
// boundary.
func (e *Engine) runDynamicPOISpawns() {
	colonySystems := make(map[ids.Id]bool)
	for _, colonyId := range colonyKeys(e.state.Colonies) {
		colony := e.state.Colonies[colonyId]
		if body, ok := e.state.Bodies[colony.BodyId]; ok {
			colonySystems[body.SystemId] = true
		}
	}

	result := procgen.TickDynamicPOISpawns(e.dynamicPOIConfig(), procgen.TickDynamicPOIInputs{
		Day:             e.state.Day,
		Systems:         e.state.Systems,
		Regions:         e.state.Regions,
		ColonySystemIds: colonySystems,
		Anomalies:       e.state.Anomalies,
		Caches:          e.state.Wrecks,
	}, e.state.IdAlloc)

	for _, anomaly := range result.NewAnomalies {
		e.state.Anomalies[anomaly.Id] = anomaly
	}
	for _, wreck := range result.NewCaches {
		e.state.Wrecks[wreck.Id] = wreck
	}
}

// resolveAnomaly applies an investigated anomaly's reward to factionId and
// removes it from the unresolved set, per §4.I/§4.H exploration automation.
func (e *Engine) resolveAnomaly(anomalyId, factionId ids.Id) bool {
	anomaly, ok := e.state.Anomalies[anomalyId]
	if !ok || anomaly.Resolved {
		return false
	}
	faction, ok := e.state.Factions[factionId]
	if !ok {
		return false
	}
	anomaly.Resolved = true
	if anomaly.ResearchReward > 0 {
		e.applyResearch(factionId, anomaly.ResearchReward)
	}
	if anomaly.UnlockComponentId != "" {
		faction.UnlockedComponents[content.ComponentKey(anomaly.UnlockComponentId)] = true
	}
	if len(anomaly.MineralReward) > 0 {
		wreckId := e.state.allocateId()
		e.state.Wrecks[wreckId] = &ships.Wreck{
			Id: wreckId, SystemId: anomaly.SystemId, X: anomaly.Position.X, Y: anomaly.Position.Y,
			Minerals: anomaly.MineralReward, CreatedDay: e.state.Day, IsCache: true,
		}
	}
	delete(e.state.Anomalies, anomalyId)
	return true
}
