package engine

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// stepShipMovement advances one ship's current order by dt days, per §4.D's
// per-tick movement rule: step toward the target by speed_km_s * dt_days *
// 86400 / 1e6 mkm, clamped to the remaining distance, snapping onto the
// target once within arrival_epsilon_mkm.
func (e *Engine) stepShipMovement(shipId ids.Id, dt float64) {
	ship, ok := e.state.Ships[shipId]
	if !ok {
		return
	}
	so, ok := e.state.Orders[shipId]
	if !ok || len(so.Queue) == 0 {
		return
	}
	design, ok := e.state.Designs[ship.DesignId]
	if !ok {
		return
	}

	order, _ := so.Current()
	target, hasTarget := e.orderTargetPoint(order)
	if !hasTarget {
		return
	}

	maxStepMkm := design.Derived.SpeedKmS * dt * 86400 / 1e6
	curX, curY := ship.PositionX, ship.PositionY
	dx, dy := target.X-curX, target.Y-curY
	dist := math.Hypot(dx, dy)

	if dist <= e.config.ArrivalEpsilonMkm {
		ship.PositionX, ship.PositionY = target.X, target.Y
		if order.Kind == ships.OrderTravelViaJump {
			e.performJumpTransit(shipId, order)
			return
		}
		e.completeArrival(shipId, order, dt)
		return
	}

	if maxStepMkm >= dist {
		ship.PositionX, ship.PositionY = target.X, target.Y
		if order.Kind == ships.OrderTravelViaJump {
			e.performJumpTransit(shipId, order)
			return
		}
		e.completeArrival(shipId, order, dt)
		return
	}

	ratio := maxStepMkm / dist
	ship.PositionX = curX + dx*ratio
	ship.PositionY = curY + dy*ratio
}

// orderTargetPoint extracts the navigation point an order moves toward, in
// the ship's current system's coordinate frame.
func (e *Engine) orderTargetPoint(o ships.Order) (galaxy.Point, bool) {
	switch o.Kind {
	case ships.OrderMoveToPoint, ships.OrderSalvageWreck:
		return galaxy.Point{X: o.TargetPointX, Y: o.TargetPointY}, true
	case ships.OrderMoveToBody, ships.OrderColonizeBody, ships.OrderOrbitBody, ships.OrderMineBody:
		if body, ok := e.state.Bodies[o.TargetBodyId]; ok {
			return body.LocalPosition(float64(e.state.Day)), true
		}
	case ships.OrderAttackShip, ships.OrderEscortShip:
		if target, ok := e.state.Ships[o.TargetShipId]; ok {
			return galaxy.Point{X: target.PositionX, Y: target.PositionY}, true
		}
		if o.HasLastKnownPos {
			return galaxy.Point{X: o.LastKnownX, Y: o.LastKnownY}, true
		}
	case ships.OrderTravelViaJump, ships.OrderSurveyJumpPoint:
		if jp, ok := e.state.JumpPoints[o.TargetJumpId]; ok {
			return jp.Position, true
		}
	case ships.OrderInvestigateAnomaly:
		if anomaly, ok := e.state.Anomalies[o.TargetBodyId]; ok {
			return anomaly.Position, true
		}
	}
	return galaxy.Point{}, false
}

// performJumpTransit relocates a ship to the linked jump point's system,
// debits jump fuel, and drops the previous (2-point) snapshot from every
// faction's contact on the ship (a relocation invalidates everything a
// contact snapshot assumed about relative position), per §4.D/§9.
func (e *Engine) performJumpTransit(shipId ids.Id, order ships.Order) {
	ship := e.state.Ships[shipId]
	so := e.state.Orders[shipId]
	jp, ok := e.state.JumpPoints[order.TargetJumpId]
	if !ok {
		so.Pop()
		return
	}
	linked, ok := e.state.JumpPoints[jp.LinkedJumpId]
	if !ok {
		so.Pop()
		return
	}
	design, ok := e.state.Designs[ship.DesignId]
	if !ok {
		so.Pop()
		return
	}

	fuelCost := design.Derived.FuelUsePerMkm * e.config.JumpTransferCostMkm
	if ship.Fuel < fuelCost {
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Warn,
			Category: events.CategoryMovement, Message: "insufficient fuel for jump transit",
			FactionId: ship.FactionId, ShipId: shipId, SystemId: ship.SystemId,
		})
		return
	}
	ship.Fuel -= fuelCost
	if ship.Fuel < 0 {
		ship.Fuel = 0
	}

	if sys, ok := e.state.Systems[ship.SystemId]; ok {
		sys.RemoveShip(shipId)
	}
	ship.SystemId = linked.SystemId
	ship.PositionX = linked.Position.X
	ship.PositionY = linked.Position.Y
	if sys, ok := e.state.Systems[linked.SystemId]; ok {
		sys.AddShip(shipId)
	}
	for _, fid := range factionKeys(e.state.Factions) {
		f := e.state.Factions[fid]
		if c, ok := f.Contacts[shipId]; ok {
			c.HasPrevious = false
			f.Contacts[shipId] = c
		}
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryMovement, Message: "jump transit completed",
		FactionId: ship.FactionId, ShipId: shipId, SystemId: linked.SystemId,
	})

	so.Pop()
}

// completeArrival runs the non-travel effect a semantic order has once its
// target point is reached, then pops it. Orders the combat/sensors/colony
// passes execute over multiple ticks (MineBody, OrbitBody, AttackShip, ...)
// are left on the queue here; only the ones whose entire effect is "arrive"
// are resolved and popped immediately.
func (e *Engine) completeArrival(shipId ids.Id, order ships.Order, dt float64) {
	so := e.state.Orders[shipId]
	switch order.Kind {
	case ships.OrderMoveToPoint:
		so.Pop()
	case ships.OrderColonizeBody:
		e.resolveColonizeBody(shipId, order.TargetBodyId)
		so.Pop()
	case ships.OrderSalvageWreck:
		e.resolveSalvageWreck(shipId)
		so.Pop()
	case ships.OrderMoveToBody, ships.OrderMineBody, ships.OrderAttackShip, ships.OrderEscortShip:
		if order.Kind == ships.OrderMoveToBody {
			so.Pop()
		}
		// MineBody/AttackShip/EscortShip stay queued; the
		// combat/colonies passes detect arrival by proximity each tick.
	case ships.OrderOrbitBody:
		e.resolveOrbitTick(shipId, dt)
	case ships.OrderSurveyJumpPoint:
		e.resolveSurveyTick(shipId, order)
	case ships.OrderInvestigateAnomaly:
		e.resolveInvestigateAnomaly(shipId, dt)
	default:
		so.Pop()
	}
}

// resolveOrbitTick decrements an arrived OrbitBody order's remaining
// duration by this tick's dt and pops it once spent.
func (e *Engine) resolveOrbitTick(shipId ids.Id, dt float64) {
	so := e.state.Orders[shipId]
	order := &so.Queue[0]
	order.DurationDays -= dt
	if order.DurationDays <= 0 {
		so.Pop()
	}
}

// resolveSurveyTick marks a jump point surveyed for the owning faction once
// arrived, then either pops (done) or converts into a TravelViaJump order
// through the same jump point when TransitWhenDone was requested.
func (e *Engine) resolveSurveyTick(shipId ids.Id, order ships.Order) {
	so := e.state.Orders[shipId]
	ship, ok := e.state.Ships[shipId]
	if !ok {
		so.Pop()
		return
	}
	if faction, ok := e.state.Factions[ship.FactionId]; ok {
		faction.SurveyedJumpPoints[order.TargetJumpId] = 1.0
	}
	e.invalidateSurveyed(ship.FactionId)
	e.completeContractFor(ship.FactionId, order.TargetJumpId)
	so.Pop()
	if order.TransitWhenDone {
		so.Queue = append([]ships.Order{{Kind: ships.OrderTravelViaJump, TargetJumpId: order.TargetJumpId, TransitWhenDone: true}}, so.Queue...)
	}
}
