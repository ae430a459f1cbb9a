// Package procgen builds a scenario's galaxy (star systems, bodies, jump
// network, regions) and spawns the dynamic points of interest — anomalies
// and mineral caches — that appear during play (§4.I). It is grounded on
// original_source/src/core/simulation_procgen.h and
// simulation_tick_procgen.cpp, adapted to operate on plain value inputs so
// callers (engine) stay free of an import cycle.
package procgen

import "github.com/masterblaster1999/Nebula4X-sub000/rng"

var nameSyllablesOpen = []string{"Al", "Ber", "Cor", "Dra", "El", "Fen", "Gal", "Hy", "Il", "Jor", "Ka", "Lor", "Mer", "Nov", "Or", "Pyr", "Quen", "Ri", "Sol", "Tor", "Ul", "Vey", "Wren", "Xan", "Ys", "Zar"}
var nameSyllablesMid = []string{"an", "en", "ir", "ok", "ul", "yr", "ax", "on", "eth", "is"}
var nameSyllablesClose = []string{"ia", "us", "on", "ar", "eth", "os", "ix", "um", "ae", "or"}

// GenerateName builds a pronounceable, deterministic proper name from r,
// matching the syllable-concatenation style used throughout the original
// engine's procedural naming (generate_anomaly_name, generate_wreck_cache_name),
// generalized here into one reusable generator instead of per-kind copies.
func GenerateName(r *rng.HashRng) string {
	name := nameSyllablesOpen[r.Index(len(nameSyllablesOpen))]
	if r.Bool(0.7) {
		name += nameSyllablesMid[r.Index(len(nameSyllablesMid))]
	}
	name += nameSyllablesClose[r.Index(len(nameSyllablesClose))]
	return name
}

var systemDesignators = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// GenerateBodyName appends a Roman-numeral designator to a system name for
// a non-star body, matching the conventional "Sol III" pattern.
func GenerateBodyName(systemName string, orbitalIndex int) string {
	if orbitalIndex < 0 {
		orbitalIndex = 0
	}
	if orbitalIndex >= len(systemDesignators) {
		orbitalIndex = len(systemDesignators) - 1
	}
	return systemName + " " + systemDesignators[orbitalIndex]
}
