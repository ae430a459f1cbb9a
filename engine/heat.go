package engine

import "github.com/masterblaster1999/Nebula4X-sub000/ships"

// heatStateFor derives the throttle bucket from accumulated heat and hull
// mass, per §9: heat_state is never persisted, only recomputed from
// heat/capacity on load and after every heat update.
func heatStateFor(heat, massTons float64, cfg ShipHeatConfig) ships.HeatState {
	if !cfg.Enabled || massTons <= 0 || cfg.BaseCapacityPerMassTon <= 0 {
		return ships.HeatNominal
	}
	capacity := cfg.BaseCapacityPerMassTon * massTons
	if capacity <= 0 {
		return ships.HeatNominal
	}
	fraction := heat / capacity
	switch {
	case fraction >= cfg.DamageThresholdFraction && cfg.DamageThresholdFraction > 0:
		return ships.HeatCritical
	case fraction >= cfg.PenaltyFullFraction && cfg.PenaltyFullFraction > 0:
		return ships.HeatHot
	case fraction >= cfg.PenaltyStartFraction && cfg.PenaltyStartFraction > 0:
		return ships.HeatWarm
	default:
		return ships.HeatNominal
	}
}

// heatThrottleMultiplier maps a heat fraction to the [min,1] multiplier
// applied to speed/sensor/weapon/shield performance once past the penalty
// start fraction, linearly interpolating to the configured floor by the
// penalty-full fraction.
func heatThrottleMultiplier(fraction, startFraction, fullFraction, floor float64) float64 {
	if fraction <= startFraction || fullFraction <= startFraction {
		return 1
	}
	t := (fraction - startFraction) / (fullFraction - startFraction)
	if t > 1 {
		t = 1
	}
	return 1 - t*(1-floor)
}

// applyShipHeat advances one ship's accumulated heat for dt days: generate
// from power draw, dissipate toward zero, clamp to a reasonable ceiling,
// and recompute the derived HeatState bucket.
func applyShipHeat(ship *ships.Ship, massTons, powerDrawMW float64, cfg ShipHeatConfig, dt float64) {
	if !cfg.Enabled {
		return
	}
	generated := powerDrawMW * cfg.GenerationPerPowerUsePerDay * dt
	dissipated := cfg.BaseDissipationPerMassTonPerDay * massTons * dt
	ship.Heat += generated - dissipated
	if ship.Heat < 0 {
		ship.Heat = 0
	}
	capacity := cfg.BaseCapacityPerMassTon * massTons
	if capacity > 0 {
		ceiling := capacity * 3
		if ship.Heat > ceiling {
			ship.Heat = ceiling
		}
	}
	ship.HeatState = heatStateFor(ship.Heat, massTons, cfg)
}
