package colonies

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/simutil"
)

// ShipyardRates carries the per-colony multipliers the spec's per-team
// capacity formula folds in: per_team_capacity = base_rate * shipyard_mult
// * prosperity_mult * blockade_mult * dt.
type ShipyardRates struct {
	BaseRateTonsPerDay float64
	ShipyardMult       float64
	ProsperityMult     float64
	BlockadeMult       float64
}

// RunShipyard advances one colony's build queue for dt days, distributing
// team capacity across workable orders and retaining unused capacity
// across orders within the same tick (§4.E). It returns the ids (by
// queue index) of orders that completed this pass; the caller (engine)
// is responsible for the id allocation and world-mutation side effects
// of a completed build, since those require access to State.
func RunShipyard(c *Colony, teams int, rates ShipyardRates, dt float64, isDockedForRefit func(shipId uint64) bool) []int {
	if teams <= 0 || len(c.ShipyardQueue) == 0 {
		return nil
	}
	perTeamCapacity := rates.BaseRateTonsPerDay * rates.ShipyardMult * rates.ProsperityMult * rates.BlockadeMult * dt
	totalCapacity := perTeamCapacity * float64(teams)

	var completed []int
	remaining := totalCapacity
	for i := range c.ShipyardQueue {
		if remaining <= 1e-9 {
			break
		}
		order := &c.ShipyardQueue[i]
		if order.TonsRemaining <= 0 {
			continue
		}
		advance := math.Min(remaining, order.TonsRemaining)
		order.TonsRemaining -= advance
		remaining -= advance
		if order.TonsRemaining <= 1e-9 {
			completed = append(completed, i)
		}
	}
	return completed
}

// MaxTonsByMinerals computes how many tons of build progress the colony's
// current mineral stockpile can still pay for, given a design's per-ton
// build costs: min over costs of (stock / cost_per_ton).
func MaxTonsByMinerals(c *Colony, costsPerTon map[string]float64) float64 {
	best := math.Inf(1)
	keys := simutil.SortedKeys(costsPerTon)
	for _, k := range keys {
		cost := costsPerTon[k]
		if cost <= 0 {
			continue
		}
		afford := c.Minerals[k] / cost
		if afford < best {
			best = afford
		}
	}
	if math.IsInf(best, 1) {
		return math.Inf(1)
	}
	return best
}

// AutoShipTargetDelta computes how many additional ships of a design should
// be auto-queued to close the gap to target, given how many the faction
// already has (existing ships + manually queued) and how many are already
// auto-queued. Already-started orders (TonsRemaining < full) are never
// cancelled by the caller; this just returns the raw delta to apply.
func AutoShipTargetDelta(target, have, autoQueued int) int {
	want := target - have
	if want < 0 {
		want = 0
	}
	return want - autoQueued
}

// EnsureInstallationAutoTargets mirrors the ship auto-target logic for
// installations: trims cancelable (not-started) auto-queued units down
// to target, or appends new ones to reach it.
func EnsureInstallationAutoTargets(c *Colony, key string, target int) {
	have := c.Installations[key]
	autoQueuedCount := 0
	for _, o := range c.ConstructionQueue {
		if o.InstallationKey == key && o.AutoQueued {
			autoQueuedCount += o.QuantityRemaining
		}
	}
	want := target - have
	if want < 0 {
		want = 0
	}
	delta := want - autoQueuedCount
	if delta > 0 {
		c.ConstructionQueue = append(c.ConstructionQueue, ConstructionOrder{
			InstallationKey:   key,
			QuantityRemaining: delta,
			AutoQueued:        true,
		})
	} else if delta < 0 {
		toRemove := -delta
		out := c.ConstructionQueue[:0]
		for _, o := range c.ConstructionQueue {
			if o.InstallationKey == key && o.AutoQueued && !o.MineralsPaid && toRemove > 0 {
				if o.QuantityRemaining <= toRemove {
					toRemove -= o.QuantityRemaining
					continue
				}
				o.QuantityRemaining -= toRemove
				toRemove = 0
			}
			out = append(out, o)
		}
		c.ConstructionQueue = out
	}
}
