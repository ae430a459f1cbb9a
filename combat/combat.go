// Package combat implements beam fire, time-of-flight missile salvos with
// continuous point defense, colony batteries, boarding, and crew experience
// (§4.G). It operates on plain value/id inputs so the engine package can
// wire it against State without an import cycle.
package combat

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/rng"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// BeamHitChanceConfig mirrors enable_beam_hit_chance's tunables.
type BeamHitChanceConfig struct {
	Base                      float64
	Min                       float64
	RangePenaltyAtMax         float64
	TrackingRefAngPerDay      float64
	TrackingMinSensorRangeMkm float64
	TrackingRefSensorRangeMkm float64
	SignatureExponent         float64
}

// BeamHitChance computes the to-hit probability for one beam shot, per the
// formula in §4.G.
func BeamHitChance(cfg BeamHitChanceConfig, dist, weaponRange, attackerSensorMkm, ecm, eccm, signature, transverseVelocity, crewBonus float64) float64 {
	if weaponRange <= 0 {
		return 0
	}
	rangeRatio := dist / weaponRange
	rangeFactor := 1 - cfg.RangePenaltyAtMax*rangeRatio*rangeRatio
	if rangeFactor < 0 {
		rangeFactor = 0
	}

	sensorEff := attackerSensorMkm
	if sensorEff < cfg.TrackingMinSensorRangeMkm {
		sensorEff = cfg.TrackingMinSensorRangeMkm
	}
	refSensor := cfg.TrackingRefSensorRangeMkm
	if refSensor <= 0 {
		refSensor = 1
	}
	trackingAngle := cfg.TrackingRefAngPerDay * (sensorEff / refSensor) * (1 + eccm) / (1 + ecm) * math.Pow(signature, cfg.SignatureExponent)
	if trackingAngle <= 0 {
		trackingAngle = 1e-9
	}

	relativeAngular := math.Abs(transverseVelocity) / math.Max(dist, 1e-9)
	ratio := relativeAngular / trackingAngle
	trackingFactor := 1 / (1 + ratio*ratio)

	hit := cfg.Base * rangeFactor * trackingFactor * (1 + crewBonus)
	if hit < cfg.Min {
		hit = cfg.Min
	}
	if hit > 1 {
		hit = 1
	}
	return hit
}

// BeamShot is one resolved beam attack's damage contribution, to be folded
// into the per-target accumulator before shields/HP application.
type BeamShot struct {
	AttackerId ids.Id
	TargetId   ids.Id
	Damage     float64
	Hit        bool
}

// ResolveBeamShot rolls a single beam attack and returns the damage dealt
// (zero if the roll misses).
func ResolveBeamShot(r *rng.HashRng, attackerId, targetId ids.Id, weaponDamage, maintenanceMult, dt, hitChance float64) BeamShot {
	roll := r.NextU01()
	hit := roll < hitChance
	dmg := 0.0
	if hit {
		dmg = weaponDamage * maintenanceMult * dt
	}
	return BeamShot{AttackerId: attackerId, TargetId: targetId, Damage: dmg, Hit: hit}
}

// PDDefender is one friendly point-defense-capable ship inside a salvo's
// system, with its accumulated budget for this tick.
type PDDefender struct {
	ShipId          ids.Id
	Position        [2]float64
	PDRangeMkm      float64
	PDDamagePerDay  float64
	CrewMult        float64
	MaintenanceMult float64
}

// InterceptSalvos runs continuous PD integration for every given salvo
// against the defenders in its system for this tick's swept segment
// [u0, u1] along each salvo's flight path. Per §4.G, each defender's PD
// budget for the tick is summed once, then distributed among every salvo
// inside its disc this tick weighted by that salvo's exposure length,
// rather than being applied to each salvo independently. It mutates each
// salvo's RemainingEtaDays/RemainingDamage in place and returns the damage
// intercepted per salvo id.
func InterceptSalvos(salvos []*ships.MissileSalvo, defenders []PDDefender, dtDays float64) map[ids.Id]float64 {
	intercepted := make(map[ids.Id]float64, len(salvos))
	if len(salvos) == 0 {
		return intercepted
	}

	type sweep struct{ x0, y0, x1, y1 float64 }
	sweeps := make([]sweep, len(salvos))
	for i, salvo := range salvos {
		u0 := salvo.ProgressFraction()
		salvo.RemainingEtaDays -= dtDays
		if salvo.RemainingEtaDays < 0 {
			salvo.RemainingEtaDays = 0
		}
		if salvo.RemainingDamage <= 0 {
			continue
		}
		u1 := salvo.ProgressFraction()
		if u1 < u0 {
			u0, u1 = u1, u0
		}
		x0, y0 := salvo.PositionAt(u0)
		x1, y1 := salvo.PositionAt(u1)
		sweeps[i] = sweep{x0, y0, x1, y1}
	}

	exposure := make([][]float64, len(defenders))
	totalExposure := make([]float64, len(defenders))
	for d, def := range defenders {
		exposure[d] = make([]float64, len(salvos))
		for i, salvo := range salvos {
			if salvo.RemainingDamage <= 0 {
				continue
			}
			sw := sweeps[i]
			e := segmentDiscExposure(sw.x0, sw.y0, sw.x1, sw.y1, def.Position[0], def.Position[1], def.PDRangeMkm)
			exposure[d][i] = e
			totalExposure[d] += e
		}
	}

	for d, def := range defenders {
		if totalExposure[d] <= 0 {
			continue
		}
		budget := def.PDDamagePerDay * dtDays * def.CrewMult * def.MaintenanceMult
		for i, salvo := range salvos {
			e := exposure[d][i]
			if e <= 0 || salvo.RemainingDamage <= 0 {
				continue
			}
			share := budget * (e / totalExposure[d])
			if share > salvo.RemainingDamage {
				share = salvo.RemainingDamage
			}
			salvo.RemainingDamage -= share
			intercepted[salvo.Id] += share
		}
	}

	return intercepted
}

// InterceptSalvo is InterceptSalvos for a single salvo, kept for callers
// that resolve one salvo at a time; defender PD budgets are not pooled
// against any other salvo.
func InterceptSalvo(salvo *ships.MissileSalvo, defenders []PDDefender, dtDays float64) float64 {
	result := InterceptSalvos([]*ships.MissileSalvo{salvo}, defenders, dtDays)
	return result[salvo.Id]
}

// segmentDiscExposure returns the fraction, in [0,1], of the segment
// (x0,y0)-(x1,y1) that falls within radius r of (cx,cy) — a cheap proxy for
// "union_u", the union of time the salvo spends inside the defender's PD
// disc during this tick.
func segmentDiscExposure(x0, y0, x1, y1, cx, cy, r float64) float64 {
	dx := x1 - x0
	dy := y1 - y0
	length2 := dx*dx + dy*dy
	if length2 == 0 {
		ddx, ddy := x0-cx, y0-cy
		if ddx*ddx+ddy*ddy <= r*r {
			return 1
		}
		return 0
	}
	// Closest-approach parametrization along the segment.
	fx, fy := x0-cx, y0-cy
	a := length2
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - r*r
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 < 0 {
		t0 = 0
	}
	if t1 > 1 {
		t1 = 1
	}
	if t1 <= t0 {
		return 0
	}
	return t1 - t0
}

// ColonyBattery aggregates a colony's installed defenses into the same
// shape ship beam fire resolves against.
type ColonyBattery struct {
	ColonyId       ids.Id
	TotalDamage    float64
	RangeMkm       float64
	SensorRangeMkm float64
}

// CrewIntensityToGradePoints folds a ship's accumulated crew intensity into
// its grade points at tick end, per §4.G: points += intensity * k, clamped
// to [0, cap].
func CrewIntensityToGradePoints(currentPoints, intensity, k, cap float64) float64 {
	v := currentPoints + intensity*k
	if v < 0 {
		return 0
	}
	if v > cap {
		return cap
	}
	return v
}

// BoardingConfig mirrors enable_boarding's tunables.
type BoardingConfig struct {
	RangeMkm              float64
	MinAttackerTroops     float64
	TargetHPFraction      float64
	RequireShieldsDown    bool
	AttackerCasualtyFraction float64
	DefenderCasualtyFraction float64
	DefenseHPFactor       float64
}

// BoardingAttempt describes one resolved boarding roll.
type BoardingAttempt struct {
	AttackerId ids.Id
	TargetId   ids.Id
	Success    bool
	Chance     float64
}

// ResolveBoarding computes the boarding success chance and deterministic
// roll for one attacker/target pair, seeded from (day, attacker, target) so
// the outcome is reproducible regardless of processing order.
func ResolveBoarding(day int64, attackerId, targetId ids.Id, attackerTroops, crewBonusA, targetTroops, targetMaxHP, crewBonusD float64, cfg BoardingConfig) BoardingAttempt {
	aEff := attackerTroops * (1 + crewBonusA)
	dEff := (targetTroops + cfg.DefenseHPFactor*targetMaxHP) * (1 + crewBonusD)
	chance := 0.0
	if aEff+dEff > 0 {
		chance = aEff / (aEff + dEff)
	}
	seed := uint64(day)*1000003 + uint64(attackerId)*97 + uint64(targetId)
	r := rng.New(rng.SplitMix64(seed))
	roll := r.NextU01()
	return BoardingAttempt{AttackerId: attackerId, TargetId: targetId, Success: roll < chance, Chance: chance}
}

// SalvageFraction computes a wreck's mineral payload from a destroyed
// ship's cargo and hull, mapped through build-cost-per-ton with the
// fallback weights used when the design's costs are unavailable.
func SalvageFraction(cargo map[string]float64, hullTons, cargoSalvageFraction, hullSalvageFraction float64, buildCostsPerTon map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for k, v := range cargo {
		out[k] += v * cargoSalvageFraction
	}
	costs := buildCostsPerTon
	if len(costs) == 0 {
		costs = map[string]float64{"Duranium": 1.0, "Neutronium": 0.1}
	}
	for k, costPerTon := range costs {
		out[k] += hullTons * hullSalvageFraction * costPerTon
	}
	return out
}
