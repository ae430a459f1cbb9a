package engine

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// RoutePlanRequest is the full input to the jump-route planner (§4.D).
type RoutePlanRequest struct {
	StartSystemId        ids.Id
	StartPos             galaxy.Point
	FactionId            ids.Id
	ShipSpeedKmS         float64
	GoalSystemId         ids.Id
	RestrictToDiscovered bool
	HasGoalPosition      bool
	GoalPos              galaxy.Point
}

// RoutePlanResult is the planner's output: the ordered source-side jump
// point ids forming the path, and the total ETA in days.
type RoutePlanResult struct {
	Found        bool
	JumpPointIds []ids.Id
	EtaDays      float64
}

// travelTimeDays converts a straight-line mkm distance at shipSpeedKmS into
// days: distance_km / speed_km_s / seconds_per_day.
func travelTimeDays(from, to galaxy.Point, shipSpeedKmS float64) float64 {
	if shipSpeedKmS <= 0 {
		return math.Inf(1)
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	distMkm := math.Hypot(dx, dy)
	distKm := distMkm * 1e6
	return distKm / shipSpeedKmS / 86400
}

// PlanJumpRoute runs §4.D's route planner, memoized by (start, faction,
// goal, restrict flag, discovered/surveyed/topology versions) so repeated
// lookups from the same intel state are free.
func (e *Engine) PlanJumpRoute(req RoutePlanRequest) RoutePlanResult {
	key := routeCacheKey{
		StartSystem:       req.StartSystemId,
		FactionId:         req.FactionId,
		GoalSystem:        req.GoalSystemId,
		RestrictFlag:      req.RestrictToDiscovered,
		DiscoveredVersion: e.discoveredVersion[req.FactionId],
		SurveyedVersion:   e.surveyedVersion[req.FactionId],
		TopologyVersion:   e.topologyVersion,
	}
	// The route cache only memoizes the system-to-system topology result;
	// a caller with a different start/goal position inside the same pair
	// of systems still gets a correct ETA because the cached entry stores
	// jump-point ids, and the final/leading leg distances are added back
	// in below using the request's live positions.
	if cached, ok := e.routeCache[key]; ok {
		return e.finishRoute(req, cached)
	}

	result := e.planJumpRouteUncached(req)
	e.routeCache[key] = result
	return e.finishRoute(req, result)
}

// finishRoute turns a cached system-to-system path into this request's ETA.
// The cache key (see PlanJumpRoute) is keyed by system pair, not position, so
// two requests sharing a cached entry can still carry different
// StartPos/GoalPos/ShipSpeedKmS (different ships, or the same ship at a
// different in-system point); the stored EtaDays belongs to whichever
// request first computed it and must not be reused verbatim. Recompute the
// leading leg (StartPos to the first hop), every inter-system leg (at the
// request's speed), and the trailing leg (the last hop's arrival to
// GoalPos) against the cached JumpPointIds path instead.
func (e *Engine) finishRoute(req RoutePlanRequest, r routeCacheEntry) RoutePlanResult {
	if !r.Found {
		return RoutePlanResult{Found: false}
	}
	if len(r.JumpPointIds) == 0 {
		eta := 0.0
		if req.HasGoalPosition {
			eta = travelTimeDays(req.StartPos, req.GoalPos, req.ShipSpeedKmS)
		}
		return RoutePlanResult{Found: true, EtaDays: eta}
	}

	first := e.findJumpPoint(r.JumpPointIds[0])
	if first == nil {
		return RoutePlanResult{Found: false}
	}
	eta := travelTimeDays(req.StartPos, first.Position, req.ShipSpeedKmS) + e.config.JumpDelayDays

	for i := 0; i < len(r.JumpPointIds)-1; i++ {
		cur := e.findJumpPoint(r.JumpPointIds[i])
		if cur == nil {
			return RoutePlanResult{Found: false}
		}
		arrival := e.findJumpPoint(cur.LinkedJumpId)
		next := e.findJumpPoint(r.JumpPointIds[i+1])
		if arrival == nil || next == nil {
			return RoutePlanResult{Found: false}
		}
		eta += travelTimeDays(arrival.Position, next.Position, req.ShipSpeedKmS) + e.config.JumpDelayDays
	}

	last := e.findJumpPoint(r.JumpPointIds[len(r.JumpPointIds)-1])
	if last == nil {
		return RoutePlanResult{Found: false}
	}
	if req.HasGoalPosition {
		arrival := e.findJumpPoint(last.LinkedJumpId)
		if arrival == nil {
			return RoutePlanResult{Found: false}
		}
		eta += travelTimeDays(arrival.Position, req.GoalPos, req.ShipSpeedKmS)
	}

	return RoutePlanResult{Found: true, JumpPointIds: r.JumpPointIds, EtaDays: eta}
}

func (e *Engine) planJumpRouteUncached(req RoutePlanRequest) routeCacheEntry {
	if req.StartSystemId == req.GoalSystemId {
		eta := 0.0
		if req.HasGoalPosition {
			eta = travelTimeDays(req.StartPos, req.GoalPos, req.ShipSpeedKmS)
		}
		return routeCacheEntry{Found: true, EtaDays: eta}
	}

	var faction *factionView
	if req.RestrictToDiscovered {
		f, ok := e.state.Factions[req.FactionId]
		if !ok {
			return routeCacheEntry{Found: false}
		}
		faction = &factionView{discovered: f.DiscoveredSystems, surveyed: f.SurveyedJumpPoints}
	}

	usable := func(jp *galaxy.JumpPoint) bool {
		if faction == nil {
			return true
		}
		if !faction.discovered[jp.SystemId] {
			return false
		}
		if _, surveyed := faction.surveyed[jp.Id]; !surveyed {
			return false
		}
		return true
	}

	// bySystem groups every jump point id by its owning system, sorted,
	// satisfying the tie-break-by-ascending-id requirement directly;
	// usability is checked where each id is consumed.
	bySystem := make(map[ids.Id][]ids.Id)
	for _, sysId := range systemKeys(e.state.Systems) {
		sys := e.state.Systems[sysId]
		var list []ids.Id
		for _, jpId := range sys.JumpPoints {
			list = append(list, jpId)
		}
		ids.Sort(list)
		bySystem[sysId] = list
	}

	dist := make(map[ids.Id]float64)
	prevNode := make(map[ids.Id]ids.Id)
	viaJump := make(map[ids.Id]ids.Id)
	visited := make(map[ids.Id]bool)

	// Seed the frontier: every usable jump point in the start system,
	// reached by simply flying there from req.StartPos.
	startJPs, ok := bySystem[req.StartSystemId]
	if !ok {
		return routeCacheEntry{Found: false}
	}
	for _, jpId := range startJPs {
		jp := e.findJumpPoint(jpId)
		if jp == nil || !usable(jp) {
			continue
		}
		dist[jpId] = travelTimeDays(req.StartPos, jp.Position, req.ShipSpeedKmS)
		prevNode[jpId] = ids.Invalid
		viaJump[jpId] = ids.Invalid
	}

	for {
		// Pick the unvisited node with smallest tentative distance
		// (ascending id as tiebreak, matching §4.D).
		best := ids.Invalid
		bestDist := math.Inf(1)
		keys := make([]ids.Id, 0, len(dist))
		for k := range dist {
			keys = append(keys, k)
		}
		ids.Sort(keys)
		for _, k := range keys {
			if visited[k] {
				continue
			}
			if dist[k] < bestDist-1e-12 {
				best = k
				bestDist = dist[k]
			}
		}
		if best == ids.Invalid {
			break
		}
		visited[best] = true

		bestJP := e.findJumpPoint(best)
		if bestJP == nil {
			continue
		}
		sameSystem := bySystem[bestJP.SystemId]
		for _, qId := range sameSystem {
			q := e.findJumpPoint(qId)
			if q == nil || !usable(q) {
				continue
			}
			linked := e.findJumpPoint(q.LinkedJumpId)
			if linked == nil {
				continue
			}
			walk := travelTimeDays(bestJP.Position, q.Position, req.ShipSpeedKmS)
			nd := dist[best] + walk + e.config.JumpDelayDays
			target := linked.Id
			if cur, ok := dist[target]; !ok || nd < cur-1e-12 {
				dist[target] = nd
				prevNode[target] = best
				viaJump[target] = qId
			}
		}
	}

	// Find the best arrival into the goal system.
	goalJPs := bySystem[req.GoalSystemId]
	bestGoal := ids.Invalid
	bestTotal := math.Inf(1)
	for _, jpId := range goalJPs {
		d, ok := dist[jpId]
		if !ok {
			continue
		}
		jp := e.findJumpPoint(jpId)
		total := d
		if req.HasGoalPosition && jp != nil {
			total += travelTimeDays(jp.Position, req.GoalPos, req.ShipSpeedKmS)
		}
		if total < bestTotal-1e-12 {
			bestTotal = total
			bestGoal = jpId
		}
	}
	if bestGoal == ids.Invalid {
		return routeCacheEntry{Found: false}
	}

	// Reconstruct the ordered list of source-side jump-point ids.
	var hops []ids.Id
	node := bestGoal
	for node != ids.Invalid {
		if via := viaJump[node]; via != ids.Invalid {
			hops = append(hops, via)
		}
		node = prevNode[node]
	}
	// hops was built goal-to-start; reverse it.
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}
	return routeCacheEntry{Found: true, JumpPointIds: hops, EtaDays: bestTotal}
}

type factionView struct {
	discovered map[ids.Id]bool
	surveyed   map[ids.Id]float64
}

func (e *Engine) findJumpPoint(id ids.Id) *galaxy.JumpPoint {
	if id == ids.Invalid {
		return nil
	}
	return e.state.JumpPoints[id]
}
