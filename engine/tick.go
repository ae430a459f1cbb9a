package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// AdvanceResult is returned by advance_until_event_hours: whether a stop
// condition fired, the matching event (zero value if none), and how far
// the clock actually moved.
type AdvanceResult struct {
	Hit          bool
	Event        events.Event
	HoursAdvanced float64
	DaysAdvanced  int64
}

const hoursPerDay = 24

// AdvanceHours splits h at midnight boundaries and runs one tick per chunk,
// per §4.J's advance_hours. A single outermost recover() guards the whole
// call so a panic deep in a pass surfaces as a Runtime-category error event
// instead of crashing the host process.
func (e *Engine) AdvanceHours(h float64) (daysAdvanced int64) {
	defer e.recoverTick()
	startDay := e.state.Day
	for h > 1e-9 {
		hoursLeftInDay := float64(hoursPerDay - e.state.HourOfDay)
		step := h
		if step > hoursLeftInDay {
			step = hoursLeftInDay
		}
		if step <= 1e-9 {
			step = h
		}
		e.tickOneTickHours(step)
		h -= step
	}
	return e.state.Day - startDay
}

// AdvanceDays runs n full days.
func (e *Engine) AdvanceDays(n int64) {
	for i := int64(0); i < n; i++ {
		e.AdvanceHours(hoursPerDay)
	}
}

// AdvanceUntilEventHours advances in step-hour ticks (never crossing
// midnight within one tick) until a newly appended event matches stop, or
// maxHours is exhausted, per §4.J.
func (e *Engine) AdvanceUntilEventHours(maxHours, step float64, stop events.StopCondition) AdvanceResult {
	defer e.recoverTick()
	if step <= 0 {
		step = 1
	}
	startDay := e.state.Day
	var advanced float64
	lastSeq := e.state.Events.NextSeq - 1

	for advanced < maxHours-1e-9 {
		hoursLeftInDay := float64(hoursPerDay - e.state.HourOfDay)
		chunk := step
		if chunk > hoursLeftInDay {
			chunk = hoursLeftInDay
		}
		if chunk <= 1e-9 {
			chunk = step
		}
		remaining := maxHours - advanced
		if chunk > remaining {
			chunk = remaining
		}

		e.tickOneTickHours(chunk)
		advanced += chunk
		e.throttleTick()

		newEvents := e.state.Events.SinceSeq(lastSeq)
		lastSeq = e.state.Events.NextSeq - 1
		for i := len(newEvents) - 1; i >= 0; i-- {
			if stop.Matches(newEvents[i]) {
				return AdvanceResult{Hit: true, Event: newEvents[i], HoursAdvanced: advanced, DaysAdvanced: e.state.Day - startDay}
			}
		}
	}
	return AdvanceResult{Hit: false, HoursAdvanced: advanced, DaysAdvanced: e.state.Day - startDay}
}

// recoverTick is the single outermost panic boundary for tick advancement,
// per §9: a pass that panics turns into a Runtime-category error event
// rather than an unrecovered crash, so a save taken just before the call
// remains usable.
func (e *Engine) recoverTick() {
	if r := recover(); r != nil {
		msg := "internal error during tick advance"
		if err, ok := r.(error); ok {
			msg = err.Error()
		}
		e.state.appendEvent(events.Event{
			Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Error,
			Category: events.CategoryRuntime, Message: msg,
		})
	}
}

// tickOneTickHours runs one sub-day chunk of stepHours (never crossing a
// midnight boundary, enforced by the caller), per §4.J's five-step pipeline.
func (e *Engine) tickOneTickHours(stepHours float64) {
	dt := stepHours / hoursPerDay

	e.state.HourOfDay += int(stepHours)
	dayBoundary := false
	for e.state.HourOfDay >= hoursPerDay {
		e.state.HourOfDay -= hoursPerDay
		e.state.Day++
		dayBoundary = true
	}

	runDaily := dayBoundary || !e.config.EnableSubdayEconomy
	if runDaily {
		e.runDailyEconomy()
		e.runFactionPlanning()
		e.applyCrewExperience()
		e.pruneAllContacts()
		e.runDynamicPOISpawns()
		e.pruneExpiredWrecks()
		e.runContractGeneration()
		e.pruneExpiredTreaties()
	}

	e.runOrdersAndMovement(dt)
	e.runMiningShips(dt)

	seenToday := make(map[[2]ids.Id]bool)
	e.runSensorsPass(seenToday)

	e.runShieldRegenAndHeat(dt)

	for _, systemId := range systemKeys(e.state.Systems) {
		if len(e.state.Systems[systemId].Ships) == 0 {
			continue
		}
		e.runCombatForSystem(systemId, dt)
	}

	if dayBoundary {
		e.runTerraforming()
	}
}

// runOrdersAndMovement advances every ship's current order by dt: travel
// orders step position via stepShipMovement, instant/duration orders
// resolve through runInstantOrder.
func (e *Engine) runOrdersAndMovement(dt float64) {
	for _, shipId := range shipKeys(e.state.Ships) {
		so, ok := e.state.Orders[shipId]
		if !ok || len(so.Queue) == 0 {
			continue
		}
		switch so.Queue[0].Kind {
		case ships.OrderWaitDays, ships.OrderLoadMineral, ships.OrderUnloadMineral,
			ships.OrderLoadTroops, ships.OrderUnloadTroops, ships.OrderLoadColonists, ships.OrderUnloadColonists,
			ships.OrderTransferCargoToShip, ships.OrderTransferFuelToShip, ships.OrderTransferTroopsToShip,
			ships.OrderInvadeColony, ships.OrderBombardColony, ships.OrderScrapShip:
			e.runInstantOrder(shipId, dt)
		default:
			e.stepShipMovement(shipId, dt)
		}
	}
}

// runShieldRegenAndHeat regenerates shields and accumulates heat for every
// ship, per §4.G/§9's ambient per-tick ship upkeep.
func (e *Engine) runShieldRegenAndHeat(dt float64) {
	for _, shipId := range shipKeys(e.state.Ships) {
		ship := e.state.Ships[shipId]
		design, ok := e.state.Designs[ship.DesignId]
		if !ok {
			continue
		}
		if ship.PowerPolicy.IsOnline(ships.SubsystemShields) && design.Derived.MaxShields > 0 {
			ship.Shields += design.Derived.ShieldRegenPerDay * dt
			if ship.Shields > design.Derived.MaxShields {
				ship.Shields = design.Derived.MaxShields
			}
		}
		if e.config.ShipHeat.Enabled {
			var powerDrawMW float64
			for subsystem, draw := range design.Derived.PowerDrawBySubsystem {
				if ship.PowerPolicy.IsOnline(subsystem) {
					powerDrawMW += draw
				}
			}
			applyShipHeat(ship, design.Derived.MassTons, powerDrawMW, e.config.ShipHeat, dt)
		}
	}
}
