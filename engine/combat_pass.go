package engine

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/combat"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/rng"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

func (e *Engine) beamHitChanceConfig() combat.BeamHitChanceConfig {
	c := e.config.BeamHitChance
	return combat.BeamHitChanceConfig{
		Base: c.Base, Min: c.Min, RangePenaltyAtMax: c.RangePenaltyAtMax,
		TrackingRefAngPerDay: c.TrackingRefAngPerDay, TrackingMinSensorRangeMkm: c.TrackingMinSensorRangeMkm,
		TrackingRefSensorRangeMkm: c.TrackingRefSensorRangeMkm, SignatureExponent: c.SignatureExponent,
	}
}

func (e *Engine) boardingConfig() combat.BoardingConfig {
	c := e.config.Boarding
	return combat.BoardingConfig{
		RangeMkm: c.RangeMkm, MinAttackerTroops: c.MinAttackerTroops, TargetHPFraction: c.TargetHPFraction,
		RequireShieldsDown: c.RequireShieldsDown, AttackerCasualtyFraction: c.AttackerCasualtyFraction,
		DefenderCasualtyFraction: c.DefenderCasualtyFraction, DefenseHPFactor: c.DefenseHPFactor,
	}
}

// runCombatForSystem resolves beam fire between every attacker/target pair
// in weapon range for dt days, then advances in-flight missile salvos
// against the system's point-defense-capable ships, per §4.G.
func (e *Engine) runCombatForSystem(systemId ids.Id, dt float64) {
	if !e.config.EnableCombat {
		return
	}
	sys, ok := e.state.Systems[systemId]
	if !ok {
		return
	}

	var pdDefenders []combat.PDDefender
	for _, shipId := range sys.Ships {
		ship, ok := e.state.Ships[shipId]
		if !ok {
			continue
		}
		design, ok := e.state.Designs[ship.DesignId]
		if !ok || !design.Derived.IsPDCapable || !ship.PowerPolicy.IsOnline(ships.SubsystemPD) {
			continue
		}
		pdDefenders = append(pdDefenders, combat.PDDefender{
			ShipId: shipId, Position: [2]float64{ship.PositionX, ship.PositionY},
			PDRangeMkm: design.Derived.PDRangeMkm, PDDamagePerDay: design.Derived.PDDamagePerDay,
			CrewMult: 1 + ship.CrewGradeBonus(), MaintenanceMult: ship.MaintenanceFraction,
		})
	}

	salvoIds := salvoKeysInSystem(e.state.Salvos, systemId)
	salvos := make([]*ships.MissileSalvo, len(salvoIds))
	for i, id := range salvoIds {
		salvos[i] = e.state.Salvos[id]
	}
	intercepted := combat.InterceptSalvos(salvos, pdDefenders, dt)

	for _, salvoId := range salvoIds {
		salvo := e.state.Salvos[salvoId]
		if intercepted[salvoId] > 0 {
			e.state.appendEvent(events.Event{
				Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
				Category: events.CategoryCombat, Message: "point defense intercepted incoming salvo",
				FactionId: salvo.DefenderFactionId, SystemId: systemId,
			})
		}
		if salvo.RemainingEtaDays <= 0 {
			e.resolveSalvoImpact(salvo)
			delete(e.state.Salvos, salvoId)
		}
	}

	for _, shipId := range sys.Ships {
		attacker, ok := e.state.Ships[shipId]
		if !ok {
			continue
		}
		so, ok := e.state.Orders[shipId]
		if !ok || len(so.Queue) == 0 || so.Queue[0].Kind != ships.OrderAttackShip {
			continue
		}
		targetId := so.Queue[0].TargetShipId
		target, ok := e.state.Ships[targetId]
		if !ok || target.SystemId != systemId {
			continue
		}
		e.resolveBeamExchange(attacker, target, dt)
		if target.HP <= 0 {
			e.destroyShip(targetId)
			continue
		}
		e.maybeAttemptBoarding(attacker, target)
	}
}

func salvoKeysInSystem(m map[ids.Id]*ships.MissileSalvo, systemId ids.Id) []ids.Id {
	var out []ids.Id
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	for _, id := range keys {
		if m[id].SystemId == systemId {
			out = append(out, id)
		}
	}
	return out
}

// resolveBeamExchange fires the attacker's beam weapons at target for dt
// days, applying damage first to shields, then hull, and accumulating crew
// intensity on both participants.
func (e *Engine) resolveBeamExchange(attacker, target *ships.Ship, dt float64) {
	design, ok := e.state.Designs[attacker.DesignId]
	if !ok || !design.Derived.HasBeamWeapon || !attacker.PowerPolicy.IsOnline(ships.SubsystemWeapons) {
		return
	}
	dx := target.PositionX - attacker.PositionX
	dy := target.PositionY - attacker.PositionY
	dist := math.Hypot(dx, dy)
	if dist > design.Derived.WeaponRangeMkm {
		return
	}

	targetDesign, ok := e.state.Designs[target.DesignId]
	signature := 1.0
	if ok {
		signature = targetDesign.Derived.SignatureMultiplier
	}
	if signature <= 0 {
		signature = 1
	}

	hitChance := 1.0
	if e.config.BeamHitChance.Enabled {
		hitChance = combat.BeamHitChance(e.beamHitChanceConfig(), dist, design.Derived.WeaponRangeMkm,
			design.Derived.SensorRangeMkm, 0, 0, signature, 0, attacker.CrewGradeBonus())
	}

	seed := uint64(e.state.Day)*1000003 + uint64(e.state.HourOfDay)*9973 + uint64(attacker.Id)*97 + uint64(target.Id)
	r := rng.New(rng.SplitMix64(seed))
	shot := combat.ResolveBeamShot(r, attacker.Id, target.Id, design.Derived.WeaponDamage, attacker.MaintenanceFraction, dt, hitChance)
	if !shot.Hit || shot.Damage <= 0 {
		return
	}

	remaining := shot.Damage
	if target.Shields > 0 {
		absorbed := math.Min(target.Shields, remaining)
		target.Shields -= absorbed
		remaining -= absorbed
	}
	target.HP -= remaining

	if e.config.CrewExperience.Enabled {
		attacker.CrewIntensity += shot.Damage
		target.CrewIntensity += shot.Damage * 0.5
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryCombat, Message: "beam weapon hit",
		FactionId: attacker.FactionId, ShipId: attacker.Id, SystemId: attacker.SystemId,
	})
}

// maybeAttemptBoarding checks §4.G's boarding preconditions and, if met,
// resolves a deterministic boarding roll.
func (e *Engine) maybeAttemptBoarding(attacker, target *ships.Ship) {
	if !e.config.Boarding.Enabled || attacker.Troops < e.config.Boarding.MinAttackerTroops {
		return
	}
	designTarget, ok := e.state.Designs[target.DesignId]
	if !ok || designTarget.Derived.MaxHP <= 0 {
		return
	}
	if target.HP/designTarget.Derived.MaxHP > e.config.Boarding.TargetHPFraction {
		return
	}
	if e.config.Boarding.RequireShieldsDown && target.Shields > 0 {
		return
	}
	dx := target.PositionX - attacker.PositionX
	dy := target.PositionY - attacker.PositionY
	if math.Hypot(dx, dy) > e.config.Boarding.RangeMkm {
		return
	}

	attempt := combat.ResolveBoarding(e.state.Day, attacker.Id, target.Id, attacker.Troops,
		attacker.CrewGradeBonus(), target.Troops, designTarget.Derived.MaxHP, target.CrewGradeBonus(), e.boardingConfig())

	attacker.Troops -= attacker.Troops * e.config.Boarding.AttackerCasualtyFraction
	target.Troops -= target.Troops * e.config.Boarding.DefenderCasualtyFraction
	if target.Troops < 0 {
		target.Troops = 0
	}
	if attacker.Troops < 0 {
		attacker.Troops = 0
	}

	level := events.Info
	msg := "boarding action failed"
	if attempt.Success {
		msg = "boarding action succeeded"
		target.FactionId = attacker.FactionId
	} else if !e.config.Boarding.LogFailures {
		return
	} else {
		level = events.Warn
	}
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: level,
		Category: events.CategoryCombat, Message: msg,
		FactionId: attacker.FactionId, ShipId: attacker.Id, SystemId: attacker.SystemId,
	})
}

// resolveSalvoImpact applies whatever damage a salvo still carries to its
// target on arrival, shields first, then hull, destroying the target if its
// HP drops to zero.
func (e *Engine) resolveSalvoImpact(salvo *ships.MissileSalvo) {
	target, ok := e.state.Ships[salvo.TargetShipId]
	if !ok || salvo.RemainingDamage <= 0 {
		return
	}
	remaining := salvo.RemainingDamage
	if target.Shields > 0 {
		absorbed := math.Min(target.Shields, remaining)
		target.Shields -= absorbed
		remaining -= absorbed
	}
	target.HP -= remaining
	if e.config.CrewExperience.Enabled {
		target.CrewIntensity += salvo.RemainingDamage * 0.5
	}
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryCombat, Message: "missile salvo impact",
		FactionId: salvo.DefenderFactionId, ShipId: target.Id, SystemId: salvo.SystemId,
	})
	if target.HP <= 0 {
		e.destroyShip(target.Id)
	}
}

// destroyShip removes a destroyed ship from play and, if wrecks are
// enabled, spawns its salvage remains at the kill site.
func (e *Engine) destroyShip(shipId ids.Id) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	if e.config.Wrecks.Enabled {
		design, ok := e.state.Designs[ship.DesignId]
		var hullTons float64
		var costs map[string]float64
		if ok {
			hullTons = design.Derived.MassTons
			costs = design.Derived.BuildCostsPerTon
		}
		minerals := combat.SalvageFraction(ship.Cargo, hullTons, e.config.Wrecks.CargoSalvageFraction, e.config.Wrecks.HullSalvageFraction, costs)
		wreckId := e.state.allocateId()
		e.state.Wrecks[wreckId] = &ships.Wreck{
			Id: wreckId, SystemId: ship.SystemId, X: ship.PositionX, Y: ship.PositionY,
			Minerals: minerals, OriginShipId: shipId, OriginFactionId: ship.FactionId,
			OriginDesignId: ship.DesignId, CreatedDay: e.state.Day,
		}
	}
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryCombat, Message: "ship destroyed: " + ship.Name,
		FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
	})
	e.state.removeShipEverywhere(shipId)
}

// applyCrewExperience folds accumulated per-tick crew intensity into grade
// points for every ship, then resets the accumulator, per §4.G. Called once
// per day boundary.
func (e *Engine) applyCrewExperience() {
	if !e.config.CrewExperience.Enabled {
		return
	}
	for _, shipId := range shipKeys(e.state.Ships) {
		ship := e.state.Ships[shipId]
		if ship.CrewIntensity == 0 {
			continue
		}
		ship.CrewGradePoints = combat.CrewIntensityToGradePoints(ship.CrewGradePoints, ship.CrewIntensity,
			e.config.CrewExperience.CombatGradePointsPerDamage, e.config.CrewExperience.GradePointsCap)
		ship.CrewIntensity = 0
	}
}

// pruneExpiredWrecks removes wrecks past their decay timer, per §4.H.
func (e *Engine) pruneExpiredWrecks() {
	if !e.config.Wrecks.Enabled || e.config.Wrecks.DecayDays <= 0 {
		return
	}
	for _, id := range wreckKeys(e.state.Wrecks) {
		w := e.state.Wrecks[id]
		if w.IsCache {
			continue
		}
		if float64(e.state.Day-w.CreatedDay) >= e.config.Wrecks.DecayDays {
			delete(e.state.Wrecks, id)
		}
	}
}
