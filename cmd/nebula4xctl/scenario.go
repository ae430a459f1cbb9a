package main

import (
	"github.com/masterblaster1999/Nebula4X-sub000/config"
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/engine"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/procgen"
)

// buildScenario generates a fresh galaxy of numSystems systems from seed,
// wraps it in a single-faction Engine using the configuration
// config.LoadOrDefault resolves for cfgPath (an empty cfgPath looks for
// nebula4x.yaml in . and ./configs), and returns the ready-to-advance
// engine. This is nebula4xctl's only scenario source — there is no
// save-file format in scope (see SPEC_FULL.md's engine-scope note), so
// every invocation regenerates the galaxy from the seed rather than
// loading state from disk.
func buildScenario(cfgPath string, seed uint64, numSystems int) *engine.Engine {
	cfg := config.LoadOrDefault(cfgPath)
	db := content.New()
	e := engine.New(db, cfg)

	galaxyCfg := procgen.GalaxyGenConfig{
		Seed:            seed,
		NumSystems:      numSystems,
		Shape:           procgen.ShapeSpiral,
		JumpNetwork:     procgen.JumpNetworkSparseTree,
		NumRegions:      3,
		GalaxyRadiusMkm: 5000,
	}

	state := e.State()
	generated := procgen.GenerateGalaxy(galaxyCfg, state.IdAlloc)
	state.Regions = generated.Regions
	state.Systems = generated.Systems
	state.Bodies = generated.Bodies
	state.JumpPoints = generated.JumpPoints

	player := factions.NewFaction(state.IdAlloc.Next(), "Sol Directorate", factions.ControlPlayer)
	state.Factions[player.Id] = player

	return e
}
