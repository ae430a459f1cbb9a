package colonies

import (
	"math"
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/simutil"
)

// OutputMultipliers is the precomputed-per-faction-per-pass multiplier set
// from §4.E: scanning known techs for faction_output_bonus/multiplier
// effects, then folding in trade/research agreement bonuses.
type OutputMultipliers struct {
	Mining        float64
	Industry      float64
	Research      float64
	Construction  float64
	Shipyard      float64
	Terraforming  float64
	TroopTraining float64
}

// MiningRequest aggregates a colony's requested extraction of one mineral
// from one body during a mining pass.
type MiningRequest struct {
	ColonyId ids.Id
	Tons     float64
}

// MineScarcityConfig carries the §4.E scarcity-priority tuning knobs.
type MineScarcityConfig struct {
	Enabled    bool
	BufferDays float64
	NeedBoost  float64
}

// RunMining executes the two-pass mining arbitration for one body across
// every colony requesting from it. requestsByMineral is built by the
// caller from each colony's installed mining capacity; RunMining mutates
// colony mineral stockpiles (the maps in stockByColony) and the body's deposits, and
// returns total tons distributed per mineral (for conservation checks,
// §8 property 10).
func RunMining(
	body *galaxy.Body,
	requestsByMineral map[string][]MiningRequest,
	stockByColony map[ids.Id]map[string]float64,
	cfg MineScarcityConfig,
	log *events.Log,
	day int64, hour int,
) map[string]float64 {
	distributed := make(map[string]float64)
	if body.MineralDeposits == nil {
		return distributed
	}

	minerals := simutil.SortedKeys(requestsByMineral)
	for _, mineral := range minerals {
		remaining, unlimited := body.MineralDeposits[mineral], false
		if _, present := body.MineralDeposits[mineral]; !present {
			unlimited = true
		}
		reqs := requestsByMineral[mineral]
		sort.Slice(reqs, func(i, j int) bool { return reqs[i].ColonyId < reqs[j].ColonyId })

		var totalRequested simutil.KahanSum
		for _, r := range reqs {
			totalRequested.Add(r.Tons)
		}
		total := totalRequested.Value()

		if unlimited || total <= remaining {
			for _, r := range reqs {
				stockByColony[r.ColonyId][mineral] += r.Tons
				distributed[mineral] += r.Tons
			}
			if !unlimited {
				body.MineralDeposits[mineral] = remaining - total
			}
			continue
		}

		// Scarcity arbitration: weight by shortage fraction, iterate up to
		// 8 passes honoring per-colony request caps, then drain any
		// residual in a final deterministic pass.
		alloc := make(map[ids.Id]float64, len(reqs))
		capByColony := make(map[ids.Id]float64, len(reqs))
		weight := make(map[ids.Id]float64, len(reqs))
		var totalWeight float64
		for _, r := range reqs {
			capByColony[r.ColonyId] = r.Tons
			w := r.Tons
			if cfg.Enabled {
				localStock := stockByColony[r.ColonyId][mineral]
				targetBuffer := r.Tons * cfg.BufferDays
				shortage := 0.0
				if targetBuffer > 0 {
					shortage = clamp01((targetBuffer - localStock) / targetBuffer)
				}
				w = r.Tons * (1 + cfg.NeedBoost*shortage)
			}
			weight[r.ColonyId] = w
			totalWeight += w
		}

		pool := remaining
		for pass := 0; pass < 8 && pool > 1e-9 && totalWeight > 0; pass++ {
			var passTotalWeight float64
			for _, r := range reqs {
				if alloc[r.ColonyId] < capByColony[r.ColonyId] {
					passTotalWeight += weight[r.ColonyId]
				}
			}
			if passTotalWeight <= 0 {
				break
			}
			for _, r := range reqs {
				if alloc[r.ColonyId] >= capByColony[r.ColonyId] {
					continue
				}
				share := pool * (weight[r.ColonyId] / passTotalWeight)
				room := capByColony[r.ColonyId] - alloc[r.ColonyId]
				if share > room {
					share = room
				}
				alloc[r.ColonyId] += share
			}
			var distributedThisPass float64
			for _, r := range reqs {
				distributedThisPass += alloc[r.ColonyId]
			}
			pool = remaining - distributedThisPass
		}

		wasPositive := remaining > 0
		var distTotal simutil.KahanSum
		for _, r := range reqs {
			amt := alloc[r.ColonyId]
			if amt < 1e-9 {
				amt = 0
			}
			stockByColony[r.ColonyId][mineral] += amt
			distributed[mineral] += amt
			distTotal.Add(amt)
		}
		newRemaining := remaining - distTotal.Value()
		if newRemaining < 0 {
			newRemaining = 0
		}
		body.MineralDeposits[mineral] = newRemaining
		if wasPositive && newRemaining <= 1e-9 && log != nil {
			lowestColony := reqs[0].ColonyId
			for _, r := range reqs {
				if r.ColonyId < lowestColony {
					lowestColony = r.ColonyId
				}
			}
			log.Append(events.Event{
				Day: day, Hour: hour, Level: events.Warn,
				Category: events.CategoryMining,
				Message:  "deposit depleted: " + mineral,
				ColonyId: lowestColony,
			})
		}
	}
	return distributed
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RunIndustry processes one colony's non-mining installations for dt days,
// rate-limiting each installation by its scarcest input.
func RunIndustry(c *Colony, db *content.ContentDB, industryMultiplier float64, dt float64) {
	keys := simutil.SortedKeys(c.Installations)
	for _, key := range keys {
		count := c.Installations[key]
		if count <= 0 {
			continue
		}
		def, ok := db.Installations[content.InstallationKey(key)]
		if !ok || def.IsMiningInstallation {
			continue
		}
		frac := 1.0
		inputKeys := simutil.SortedKeys(def.InputsPerDay)
		for _, ik := range inputKeys {
			perDay := def.InputsPerDay[ik]
			requested := perDay * float64(count) * dt
			if requested <= 0 {
				continue
			}
			available := c.Minerals[string(ik)]
			f := available / requested
			if f < frac {
				frac = f
			}
		}
		frac = clamp01(frac)
		for _, ik := range inputKeys {
			perDay := def.InputsPerDay[ik]
			c.AddMineral(string(ik), -perDay*float64(count)*frac*dt)
		}
		outputKeys := simutil.SortedKeys(def.OutputsPerDay)
		for _, ok2 := range outputKeys {
			perDay := def.OutputsPerDay[ok2]
			c.AddMineral(string(ok2), perDay*float64(count)*frac*industryMultiplier*dt)
		}
	}
}

// RunConstruction advances one colony's construction queue for one day,
// non-blocking: an order unable to pay its minerals is skipped, not
// blocked, so later orders still get a chance this tick.
func RunConstruction(c *Colony, db *content.ContentDB, cpBudget float64, log *events.Log, day int64, hour int) {
	remainingCP := cpBudget
	for i := range c.ConstructionQueue {
		order := &c.ConstructionQueue[i]
		if order.QuantityRemaining <= 0 {
			continue
		}
		if !order.MineralsPaid {
			def, ok := db.Installations[content.InstallationKey(order.InstallationKey)]
			if !ok {
				continue
			}
			affordable := true
			costKeys := simutil.SortedKeys(def.BuildCostPerUnit)
			for _, rk := range costKeys {
				cost := def.BuildCostPerUnit[rk]
				if c.Minerals[string(rk)] < cost {
					affordable = false
					break
				}
			}
			if !affordable {
				continue
			}
			for _, rk := range costKeys {
				c.AddMineral(string(rk), -def.BuildCostPerUnit[rk])
			}
			order.MineralsPaid = true
			order.CPRemaining = def.ConstructionPoints
		}
		if remainingCP <= 0 {
			continue
		}
		spend := math.Min(remainingCP, order.CPRemaining)
		order.CPRemaining -= spend
		remainingCP -= spend
		if order.CPRemaining <= 1e-9 {
			c.Installations[order.InstallationKey]++
			order.QuantityRemaining--
			if log != nil {
				log.Append(events.Event{
					Day: day, Hour: hour, Level: events.Info,
					Category: events.CategoryConstructed,
					Message:  "constructed " + order.InstallationKey,
					ColonyId: c.Id,
				})
			}
			if order.QuantityRemaining > 0 {
				order.MineralsPaid = false
			}
		}
	}
	// drop fully completed orders
	out := c.ConstructionQueue[:0]
	for _, o := range c.ConstructionQueue {
		if o.QuantityRemaining > 0 {
			out = append(out, o)
		}
	}
	c.ConstructionQueue = out
}

// ResearchOutput returns the research points this colony generates in one
// day, summing research_per_day * count * multiplier over installations.
func ResearchOutput(c *Colony, db *content.ContentDB, researchMultiplier float64) float64 {
	var acc simutil.KahanSum
	keys := simutil.SortedKeys(c.Installations)
	for _, key := range keys {
		count := c.Installations[key]
		if count <= 0 {
			continue
		}
		def, ok := db.Installations[content.InstallationKey(key)]
		if !ok || def.ResearchPerDay <= 0 {
			continue
		}
		acc.Add(def.ResearchPerDay * float64(count) * researchMultiplier)
	}
	return acc.Value()
}

// ConstructionCPOutput returns the colony's total construction points for
// one day, summing cp_per_day * count * multiplier over installations.
func ConstructionCPOutput(c *Colony, db *content.ContentDB, constructionMultiplier float64) float64 {
	var acc simutil.KahanSum
	keys := simutil.SortedKeys(c.Installations)
	for _, key := range keys {
		count := c.Installations[key]
		if count <= 0 {
			continue
		}
		def, ok := db.Installations[content.InstallationKey(key)]
		if !ok || def.ConstructionCPPerDay <= 0 {
			continue
		}
		acc.Add(def.ConstructionCPPerDay * float64(count) * constructionMultiplier)
	}
	return acc.Value()
}
