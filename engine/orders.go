package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// navStateFor predicts a ship's system and position after every order
// already in its queue completes travel, so a newly issued navigation order
// can plan its route from where the ship will actually be, not where it is
// right now (§4.C).
func (e *Engine) navStateFor(shipId ids.Id) (systemId ids.Id, pos galaxy.Point, speedKmS float64, ok bool) {
	ship, exists := e.state.Ships[shipId]
	if !exists {
		return ids.Invalid, galaxy.Point{}, 0, false
	}
	design, exists := e.state.Designs[ship.DesignId]
	if !exists {
		return ids.Invalid, galaxy.Point{}, 0, false
	}
	systemId = ship.SystemId
	pos = galaxy.Point{X: ship.PositionX, Y: ship.PositionY}
	speedKmS = design.Derived.SpeedKmS
	if orders, has := e.state.Orders[shipId]; has {
		for _, o := range orders.Queue {
			if o.Kind != ships.OrderTravelViaJump {
				continue
			}
			jp, found := e.state.JumpPoints[o.TargetJumpId]
			if !found {
				continue
			}
			linked, found := e.state.JumpPoints[jp.LinkedJumpId]
			if !found {
				continue
			}
			systemId = linked.SystemId
			pos = linked.Position
		}
	}
	return systemId, pos, speedKmS, true
}

// ownedByFaction validates that shipId exists and belongs to factionId.
func (e *Engine) ownedByFaction(shipId, factionId ids.Id) (*ships.Ship, bool) {
	ship, ok := e.state.Ships[shipId]
	if !ok || ship.FactionId != factionId {
		return nil, false
	}
	return ship, true
}

func (e *Engine) rejectOrder(day int64, hour int, factionId, shipId ids.Id, message string) bool {
	e.state.appendEvent(events.Event{
		Day: day, Hour: hour, Level: events.Warn, Category: events.CategoryOrders,
		Message: message, FactionId: factionId, ShipId: shipId,
	})
	return false
}

// injectRouteToSystem appends TravelViaJump orders (and the final
// semantic order) to bring a ship from its predicted nav state to
// targetSystem, used by every issue_<order> that names a target entity
// outside the ship's current predicted system.
func (e *Engine) injectRouteToSystem(shipId ids.Id, targetSystem ids.Id, goalPos galaxy.Point, hasGoalPos bool, factionId ids.Id, restrictToDiscovered bool, semantic ships.Order) bool {
	so, ok := e.state.Orders[shipId]
	if !ok {
		so = &ships.ShipOrders{}
		e.state.Orders[shipId] = so
	}
	curSystem, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}
	if curSystem != targetSystem {
		route := e.PlanJumpRoute(RoutePlanRequest{
			StartSystemId: curSystem, StartPos: pos, FactionId: factionId,
			ShipSpeedKmS: speed, GoalSystemId: targetSystem,
			RestrictToDiscovered: restrictToDiscovered,
			HasGoalPosition:      hasGoalPos, GoalPos: goalPos,
		})
		if !route.Found {
			return false
		}
		for _, jpId := range route.JumpPointIds {
			so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderTravelViaJump, TargetJumpId: jpId, TransitWhenDone: true})
		}
	}
	so.Queue = append(so.Queue, semantic)
	return true
}

// IssueMoveToPoint validates and enqueues a MoveToPoint order within the
// ship's current system.
func (e *Engine) IssueMoveToPoint(factionId, shipId ids.Id, x, y float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderMoveToPoint, TargetPointX: x, TargetPointY: y})
	return true
}

// IssueMoveToBody validates and enqueues travel (with jump hops as needed)
// to orbit range of a body.
func (e *Engine) IssueMoveToBody(factionId, shipId, bodyId ids.Id, restrictToDiscovered bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	body, ok := e.state.Bodies[bodyId]
	if !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown target body")
	}
	pos := body.LocalPosition(float64(e.state.Day))
	return e.injectRouteToSystem(shipId, body.SystemId, pos, true, factionId, restrictToDiscovered, ships.Order{Kind: ships.OrderMoveToBody, TargetBodyId: bodyId})
}

// IssueColonizeBody validates and enqueues colonization of a body.
func (e *Engine) IssueColonizeBody(factionId, shipId, bodyId ids.Id, restrictToDiscovered bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	body, ok := e.state.Bodies[bodyId]
	if !ok || body.HasColony {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "body unavailable for colonization")
	}
	pos := body.LocalPosition(float64(e.state.Day))
	return e.injectRouteToSystem(shipId, body.SystemId, pos, true, factionId, restrictToDiscovered, ships.Order{Kind: ships.OrderColonizeBody, TargetBodyId: bodyId})
}

// IssueAttackShip validates and enqueues an AttackShip order; the attacker
// and target must not be allies.
func (e *Engine) IssueAttackShip(p FactionProvider, factionId, shipId, targetId ids.Id) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	target, ok := e.state.Ships[targetId]
	if !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown attack target")
	}
	if p != nil && p.AreAllies(factionId, target.FactionId) {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "cannot attack an allied ship")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderAttackShip, TargetShipId: targetId})
	return true
}

// IssueMineBody enqueues a MineBody order at the ship's current body
// (the ship must already be there; a nav hop in front of it is the
// caller's job via IssueMoveToBody first, matching §4.C's "navigation
// required orders inject jump hops ahead of the semantic order" for the
// entity-targeting orders, while MineBody itself targets wherever the
// ship currently sits once arrived).
func (e *Engine) IssueMineBody(factionId, shipId, bodyId ids.Id, stopWhenFull bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderMineBody, TargetBodyId: bodyId, StopWhenFull: stopWhenFull})
	return true
}

// IssueSalvageWreck enqueues travel-then-salvage of a wreck.
func (e *Engine) IssueSalvageWreck(factionId, shipId, wreckId ids.Id, restrictToDiscovered bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	wreck, ok := e.state.Wrecks[wreckId]
	if !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown wreck")
	}
	pos := galaxy.Point{X: wreck.X, Y: wreck.Y}
	return e.injectRouteToSystem(shipId, wreck.SystemId, pos, true, factionId, restrictToDiscovered,
		ships.Order{Kind: ships.OrderSalvageWreck, TargetPointX: wreck.X, TargetPointY: wreck.Y})
}

// IssueUnloadMineral enqueues an UnloadMineral order at the ship's current
// location; resourceKey empty means "all".
func (e *Engine) IssueUnloadMineral(factionId, shipId, colonyId ids.Id, resourceKey string, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderUnloadMineral, TargetColonyId: colonyId, ResourceKey: resourceKey, Quantity: quantity})
	return true
}

// IssueLoadMineral enqueues a LoadMineral order at the ship's current
// location; resourceKey empty means "all the colony is holding".
func (e *Engine) IssueLoadMineral(factionId, shipId, colonyId ids.Id, resourceKey string, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderLoadMineral, TargetColonyId: colonyId, ResourceKey: resourceKey, Quantity: quantity})
	return true
}

// IssueLoadTroops/IssueUnloadTroops move ground troop strength between a
// colony and the ship's embarked complement; quantity <= 0 means "all".
func (e *Engine) IssueLoadTroops(factionId, shipId, colonyId ids.Id, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderLoadTroops, TargetColonyId: colonyId, Quantity: quantity})
	return true
}

func (e *Engine) IssueUnloadTroops(factionId, shipId, colonyId ids.Id, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderUnloadTroops, TargetColonyId: colonyId, Quantity: quantity})
	return true
}

// IssueLoadColonists/IssueUnloadColonists move colonist population between
// a colony and the ship; quantity <= 0 means "all".
func (e *Engine) IssueLoadColonists(factionId, shipId, colonyId ids.Id, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderLoadColonists, TargetColonyId: colonyId, Quantity: quantity})
	return true
}

func (e *Engine) IssueUnloadColonists(factionId, shipId, colonyId ids.Id, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderUnloadColonists, TargetColonyId: colonyId, Quantity: quantity})
	return true
}

// IssueTransferCargoToShip/IssueTransferTroopsToShip move resources between
// two friendly ships already sharing a system; the target must belong to
// the same faction.
func (e *Engine) IssueTransferCargoToShip(factionId, shipId, targetShipId ids.Id, resourceKey string, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	if _, ok := e.ownedByFaction(targetShipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "cargo transfer target must be a friendly ship")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderTransferCargoToShip, TargetShipId: targetShipId, ResourceKey: resourceKey, Quantity: quantity})
	return true
}

func (e *Engine) IssueTransferTroopsToShip(factionId, shipId, targetShipId ids.Id, quantity float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	if _, ok := e.ownedByFaction(targetShipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "troop transfer target must be a friendly ship")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderTransferTroopsToShip, TargetShipId: targetShipId, Quantity: quantity})
	return true
}

// IssueWaitDays enqueues a no-op delay of days.
func (e *Engine) IssueWaitDays(factionId, shipId ids.Id, days float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderWaitDays, WaitDaysRemaining: days})
	return true
}

// IssueOrbitBody validates and enqueues travel to a body followed by
// stationkeeping for durationDays.
func (e *Engine) IssueOrbitBody(factionId, shipId, bodyId ids.Id, durationDays float64, restrictToDiscovered bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	body, ok := e.state.Bodies[bodyId]
	if !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown target body")
	}
	pos := body.LocalPosition(float64(e.state.Day))
	return e.injectRouteToSystem(shipId, body.SystemId, pos, true, factionId, restrictToDiscovered,
		ships.Order{Kind: ships.OrderOrbitBody, TargetBodyId: bodyId, DurationDays: durationDays})
}

// IssueEscortShip validates and enqueues following another friendly ship
// at followDistanceMkm, matching IssueAttackShip's no-route-injection
// convention (the target's live position is tracked directly each tick).
func (e *Engine) IssueEscortShip(factionId, shipId, targetShipId ids.Id, followDistanceMkm float64, restrictToDiscovered bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	if _, ok := e.state.Ships[targetShipId]; !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown escort target")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{
		Kind: ships.OrderEscortShip, TargetShipId: targetShipId,
		FollowDistanceMkm: followDistanceMkm, RestrictToDiscovered: restrictToDiscovered,
	})
	return true
}

// IssueSurveyJumpPoint enqueues surveying a jump point in the ship's
// current system; transitWhenDone chains an immediate jump through it once
// the survey completes.
func (e *Engine) IssueSurveyJumpPoint(factionId, shipId, jumpId ids.Id, transitWhenDone bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	if _, ok := e.state.JumpPoints[jumpId]; !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown jump point")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderSurveyJumpPoint, TargetJumpId: jumpId, TransitWhenDone: transitWhenDone})
	return true
}

// IssueInvadeColony enqueues a ground-assault attempt at the ship's current
// location; the ship must already be in orbit of the target colony.
func (e *Engine) IssueInvadeColony(factionId, shipId, colonyId ids.Id) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	if _, ok := e.state.Colonies[colonyId]; !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown target colony")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderInvadeColony, TargetColonyId: colonyId})
	return true
}

// IssueBombardColony enqueues durationDays of orbital bombardment at the
// ship's current location.
func (e *Engine) IssueBombardColony(factionId, shipId, colonyId ids.Id, durationDays float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	if _, ok := e.state.Colonies[colonyId]; !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown target colony")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderBombardColony, TargetColonyId: colonyId, DurationDays: durationDays})
	return true
}

// IssueInvestigateAnomaly validates and enqueues travel to an unresolved
// anomaly followed by its investigation. The anomaly's id rides in
// TargetBodyId (Order has no dedicated anomaly-target field; anomalies and
// bodies never share an id space, so the reuse is unambiguous at resolve
// time) and WaitDaysRemaining seeds the investigation countdown.
func (e *Engine) IssueInvestigateAnomaly(factionId, shipId, anomalyId ids.Id, restrictToDiscovered bool) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	anomaly, ok := e.state.Anomalies[anomalyId]
	if !ok || anomaly.Resolved {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown or already-resolved anomaly")
	}
	return e.injectRouteToSystem(shipId, anomaly.SystemId, anomaly.Position, true, factionId, restrictToDiscovered,
		ships.Order{Kind: ships.OrderInvestigateAnomaly, TargetBodyId: anomalyId, WaitDaysRemaining: anomaly.InvestigationDays})
}

// IssueScrapShip enqueues breaking the ship down for salvage at its
// current position.
func (e *Engine) IssueScrapShip(factionId, shipId ids.Id) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderScrapShip})
	return true
}

// IssueTransferFuelToShip enqueues a fuel transfer to another friendly ship.
func (e *Engine) IssueTransferFuelToShip(factionId, shipId, targetShipId ids.Id, tons float64) bool {
	if _, ok := e.ownedByFaction(shipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "unknown ship or faction mismatch")
	}
	if _, ok := e.ownedByFaction(targetShipId, factionId); !ok {
		return e.rejectOrder(e.state.Day, e.state.HourOfDay, factionId, shipId, "fuel transfer target must be a friendly ship")
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, ships.Order{Kind: ships.OrderTransferFuelToShip, TargetShipId: targetShipId, Quantity: tons})
	return true
}

func (e *Engine) orderQueueFor(shipId ids.Id) *ships.ShipOrders {
	so, ok := e.state.Orders[shipId]
	if !ok {
		so = &ships.ShipOrders{}
		e.state.Orders[shipId] = so
	}
	return so
}

// DeleteQueuedOrder removes the order at index i from shipId's queue.
func (e *Engine) DeleteQueuedOrder(shipId ids.Id, i int) bool {
	so, ok := e.state.Orders[shipId]
	if !ok || i < 0 || i >= len(so.Queue) {
		return false
	}
	so.Queue = append(so.Queue[:i], so.Queue[i+1:]...)
	return true
}

// MoveQueuedOrder relocates the order at index from to index to.
func (e *Engine) MoveQueuedOrder(shipId ids.Id, from, to int) bool {
	so, ok := e.state.Orders[shipId]
	if !ok || from < 0 || from >= len(so.Queue) || to < 0 || to >= len(so.Queue) {
		return false
	}
	o := so.Queue[from]
	so.Queue = append(so.Queue[:from], so.Queue[from+1:]...)
	head := append([]ships.Order{}, so.Queue[:to]...)
	head = append(head, o)
	so.Queue = append(head, so.Queue[to:]...)
	return true
}

// DuplicateQueuedOrder inserts a copy of the order at index i immediately
// after it.
func (e *Engine) DuplicateQueuedOrder(shipId ids.Id, i int) bool {
	so, ok := e.state.Orders[shipId]
	if !ok || i < 0 || i >= len(so.Queue) {
		return false
	}
	o := so.Queue[i]
	out := append([]ships.Order{}, so.Queue[:i+1]...)
	out = append(out, o)
	out = append(out, so.Queue[i+1:]...)
	so.Queue = out
	return true
}

// ClearOrders empties a ship's queue and disables repeat.
func (e *Engine) ClearOrders(shipId ids.Id) bool {
	so, ok := e.state.Orders[shipId]
	if !ok {
		return false
	}
	so.Clear()
	return true
}

// CancelCurrentOrder pops the active order only.
func (e *Engine) CancelCurrentOrder(shipId ids.Id) bool {
	so, ok := e.state.Orders[shipId]
	if !ok || len(so.Queue) == 0 {
		return false
	}
	so.Pop()
	return true
}

// EnableOrderRepeat snapshots the current queue as a repeat template.
func (e *Engine) EnableOrderRepeat(shipId ids.Id, count int) bool {
	so, ok := e.state.Orders[shipId]
	if !ok || len(so.Queue) == 0 {
		return false
	}
	so.EnableRepeat(count)
	return true
}

// FactionProvider is the diplomacy lookup order issuance needs; Engine
// itself implements it (see diplomacy.go) and is the provider callers pass.
type FactionProvider interface {
	AreAllies(a, b ids.Id) bool
	AreEnemies(a, b ids.Id) bool
}

// SaveTemplate stores orders as a named, reusable template.
func (e *Engine) SaveTemplate(name string, orders []ships.Order) ids.Id {
	id := e.state.allocateId()
	e.state.Templates[id] = &ships.OrderTemplate{Id: id, Name: name, Orders: append([]ships.Order(nil), orders...)}
	return id
}

// DeleteTemplate removes a stored template.
func (e *Engine) DeleteTemplate(templateId ids.Id) bool {
	if _, ok := e.state.Templates[templateId]; !ok {
		return false
	}
	delete(e.state.Templates, templateId)
	return true
}

// RenameTemplate renames a stored template.
func (e *Engine) RenameTemplate(templateId ids.Id, name string) bool {
	t, ok := e.state.Templates[templateId]
	if !ok {
		return false
	}
	t.Name = name
	return true
}

// ApplyTemplate compiles a template onto a ship verbatim, with no
// route-injection smarts (the orders are appended exactly as stored).
func (e *Engine) ApplyTemplate(shipId, templateId ids.Id) bool {
	t, ok := e.state.Templates[templateId]
	if !ok {
		return false
	}
	so := e.orderQueueFor(shipId)
	so.Queue = append(so.Queue, t.Orders...)
	return true
}

// ApplyTemplateSmart compiles a template onto a ship, walking each order
// and injecting jump-route hops ahead of any order whose target lives in a
// different predicted system, per §4.C. Compilation is atomic: a route
// failure for any order aborts with nothing enqueued.
func (e *Engine) ApplyTemplateSmart(factionId, shipId, templateId ids.Id, restrictToDiscovered bool) bool {
	t, ok := e.state.Templates[templateId]
	if !ok {
		return false
	}
	staged := append([]ships.Order(nil), e.orderQueueFor(shipId).Queue...)
	curSystem, pos, speed, ok := e.navStateFor(shipId)
	if !ok {
		return false
	}
	for _, o := range t.Orders {
		targetSystem, targetPos, hasPos, needsNav := e.requiredSystemFor(o)
		if needsNav && targetSystem != curSystem {
			route := e.PlanJumpRoute(RoutePlanRequest{
				StartSystemId: curSystem, StartPos: pos, FactionId: factionId,
				ShipSpeedKmS: speed, GoalSystemId: targetSystem,
				RestrictToDiscovered: restrictToDiscovered,
				HasGoalPosition:      hasPos, GoalPos: targetPos,
			})
			if !route.Found {
				return false
			}
			for _, jpId := range route.JumpPointIds {
				staged = append(staged, ships.Order{Kind: ships.OrderTravelViaJump, TargetJumpId: jpId, TransitWhenDone: true})
			}
			curSystem = targetSystem
			pos = targetPos
		}
		staged = append(staged, o)
	}
	e.orderQueueFor(shipId).Queue = staged
	return true
}

// requiredSystemFor derives the system an order's target entity lives in,
// for apply_template_smart's per-order route injection.
func (e *Engine) requiredSystemFor(o ships.Order) (systemId ids.Id, pos galaxy.Point, hasPos bool, needsNav bool) {
	switch o.Kind {
	case ships.OrderMoveToBody, ships.OrderColonizeBody, ships.OrderOrbitBody, ships.OrderMineBody:
		if body, ok := e.state.Bodies[o.TargetBodyId]; ok {
			return body.SystemId, body.LocalPosition(float64(e.state.Day)), true, true
		}
	case ships.OrderAttackShip, ships.OrderEscortShip:
		if ship, ok := e.state.Ships[o.TargetShipId]; ok {
			return ship.SystemId, galaxy.Point{X: ship.PositionX, Y: ship.PositionY}, true, true
		}
	case ships.OrderSalvageWreck:
		// A template's SalvageWreck order only carries a point, not a wreck
		// id, so it cannot name a different system to route to here; the
		// smart-apply pass treats it as local to wherever the queue already
		// has the ship headed.
	}
	return ids.Invalid, galaxy.Point{}, false, false
}
