package procgen

import (
	"math"
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/rng"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// AnomalyKind names the flavor of an unresolved anomaly, weighted by region
// factors per tick_dynamic_points_of_interest's spawn_anomaly.
type AnomalyKind string

const (
	AnomalyRuins           AnomalyKind = "Ruins"
	AnomalyDistress        AnomalyKind = "Distress"
	AnomalyPhenomenon      AnomalyKind = "Phenomenon"
	AnomalyDistortion      AnomalyKind = "Distortion"
	AnomalyXenoarchaeology AnomalyKind = "Xenoarchaeology"
	AnomalySignal          AnomalyKind = "Signal"
)

// Anomaly is one investigatable point of interest.
type Anomaly struct {
	Id       ids.Id
	SystemId ids.Id
	Position galaxy.Point
	Kind     AnomalyKind
	Name     string

	InvestigationDays int
	ResearchReward    float64
	MineralReward     map[string]float64
	UnlockComponentId string
	HazardChance      float64
	HazardDamage      float64

	// OriginAnomalyId is the root of this anomaly's discovery chain, and
	// LeadDepth is this anomaly's distance from that root. Both are optional
	// lineage fields: zero/Invalid means unlinked.
	OriginAnomalyId ids.Id
	LeadDepth       int

	Resolved bool
}

// DynamicPOIConfig mirrors enable_dynamic_poi_spawns's tunables.
type DynamicPOIConfig struct {
	Enabled                               bool
	MaxUnresolvedAnomaliesTotal           int
	MaxActiveCachesTotal                  int
	MaxUnresolvedAnomaliesPerSystem       int
	MaxActiveCachesPerSystem              int
	AnomalySpawnChancePerSystemPerDay     float64
	CacheSpawnChancePerSystemPerDay       float64
}

// regionFactors is the clamp01'd subset of a Region consulted by spawn math.
type regionFactors struct {
	ruins       float64
	pirate      float64
	salvageMult float64
}

func regionFactorsFor(region *galaxy.Region) regionFactors {
	if region == nil {
		return regionFactors{salvageMult: 1}
	}
	return regionFactors{
		ruins:       clamp01(region.RuinsDensity),
		pirate:      clamp01(region.PirateRisk),
		salvageMult: math.Max(0, region.SalvageRichness),
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// poiSeed derives a deterministic per-(day,system,tag) seed, matching the
// original engine's poi_seed so the same scenario state always spawns the
// same points of interest on the same day.
func poiSeed(day int64, systemId ids.Id, tag uint64) uint64 {
	s := uint64(day)
	s ^= (uint64(systemId) + 0x9e3779b97f4a7c15) * 0xbf58476d1ce4e5b9
	s ^= tag * 0x94d049bb133111eb
	return rng.SplitMix64(s)
}

// TickDynamicPOIInputs is the read-only state TickDynamicPOISpawns needs,
// kept as plain maps/slices so the engine package can assemble it from
// State without procgen importing colonies/factions/content.
type TickDynamicPOIInputs struct {
	Day             int64
	Systems         map[ids.Id]*galaxy.StarSystem
	Regions         map[ids.Id]*galaxy.Region
	ColonySystemIds map[ids.Id]bool
	Anomalies       map[ids.Id]*Anomaly
	Caches          map[ids.Id]*ships.Wreck
}

// TickDynamicPOIResult carries the newly spawned entities for the caller to
// insert into engine state (and allocate ids for).
type TickDynamicPOIResult struct {
	NewAnomalies []*Anomaly
	NewCaches    []*ships.Wreck
}

// TickDynamicPOISpawns runs one day's dynamic anomaly/cache spawn pass
// across every system, per the original engine's
// tick_dynamic_points_of_interest: global and per-system caps, region-biased
// spawn probability, and deterministic per-system placement sampling.
func TickDynamicPOISpawns(cfg DynamicPOIConfig, in TickDynamicPOIInputs, alloc *ids.Allocator) TickDynamicPOIResult {
	var result TickDynamicPOIResult
	if !cfg.Enabled || len(in.Systems) == 0 {
		return result
	}

	numSystems := len(in.Systems)
	maxAnomsTotal := cfg.MaxUnresolvedAnomaliesTotal
	if maxAnomsTotal <= 0 {
		maxAnomsTotal = maxInt(12, numSystems*2)
	}
	maxCachesTotal := cfg.MaxActiveCachesTotal
	if maxCachesTotal <= 0 {
		maxCachesTotal = maxInt(6, numSystems)
	}
	perSysAnomCap := maxInt(0, cfg.MaxUnresolvedAnomaliesPerSystem)
	perSysCacheCap := maxInt(0, cfg.MaxActiveCachesPerSystem)

	baseAnomChance := clamp01(cfg.AnomalySpawnChancePerSystemPerDay)
	baseCacheChance := clamp01(cfg.CacheSpawnChancePerSystemPerDay)
	if baseAnomChance <= 1e-12 && baseCacheChance <= 1e-12 {
		return result
	}

	unresolvedTotal := 0
	anomsPerSys := make(map[ids.Id]int)
	for _, a := range in.Anomalies {
		if a.SystemId == ids.Invalid || a.Resolved {
			continue
		}
		unresolvedTotal++
		anomsPerSys[a.SystemId]++
	}
	cachesTotal := 0
	cachesPerSys := make(map[ids.Id]int)
	for _, w := range in.Caches {
		if w.SystemId == ids.Invalid || !w.IsCache || len(w.Minerals) == 0 {
			continue
		}
		cachesTotal++
		cachesPerSys[w.SystemId]++
	}

	resolvedCount := 0
	for _, a := range in.Anomalies {
		if a.Resolved {
			resolvedCount++
		}
	}
	resolvedMaturity := clamp01(float64(resolvedCount) / 42.0)
	// reachMaturity would fold in per-faction discovered-system counts; the
	// engine's faction set isn't visible here, so callers who want that term
	// pre-scale AnomalySpawnChancePerSystemPerDay before calling in.
	earlyExplorationPressure := clamp01(0.60 * (1.0 - resolvedMaturity))
	baseAnomChance = clamp01(baseAnomChance * (1.0 + 0.34*earlyExplorationPressure))

	if unresolvedTotal >= maxAnomsTotal && cachesTotal >= maxCachesTotal {
		return result
	}

	sysIds := make([]ids.Id, 0, len(in.Systems))
	for id := range in.Systems {
		sysIds = append(sysIds, id)
	}
	sort.Slice(sysIds, func(i, j int) bool { return sysIds[i] < sysIds[j] })

	for _, sid := range sysIds {
		if unresolvedTotal >= maxAnomsTotal && cachesTotal >= maxCachesTotal {
			break
		}
		sys := in.Systems[sid]
		rf := regionFactorsFor(in.Regions[sys.RegionId])
		neb := clamp01(sys.NebulaDensity)
		hasCol := in.ColonySystemIds[sid]

		var sysOccupied []galaxy.Point
		var sysAnomalies []*Anomaly
		for _, a := range in.Anomalies {
			if a.SystemId != sid || a.Resolved {
				continue
			}
			sysOccupied = append(sysOccupied, a.Position)
			sysAnomalies = append(sysAnomalies, a)
		}
		for _, w := range in.Caches {
			if w.SystemId != sid || !w.IsCache || len(w.Minerals) == 0 {
				continue
			}
			sysOccupied = append(sysOccupied, galaxy.Point{X: w.X, Y: w.Y})
		}

		if unresolvedTotal < maxAnomsTotal && baseAnomChance > 1e-12 {
			existing := anomsPerSys[sid]
			perSysOk := perSysAnomCap <= 0 || existing < perSysAnomCap
			if perSysOk {
				p := baseAnomChance
				p *= 0.25 + 1.75*rf.ruins
				p *= 0.90 + 0.25*neb
				if hasCol {
					p *= 0.35
				}
				p *= 1.0 / (1.0 + 0.45*float64(existing))
				p = clampRange(p, 0, 0.75)

				u := rng.SplitMix64(poiSeed(in.Day, sid, 0xA0A0A0A0))
				if float64(u>>11)*(1.0/(1<<53)) < p {
					a := spawnAnomaly(in.Day, sys, rf, earlyExplorationPressure, alloc, sysOccupied, sysAnomalies)
					result.NewAnomalies = append(result.NewAnomalies, a)
					unresolvedTotal++
					anomsPerSys[sid]++
				}
			}
		}

		if cachesTotal < maxCachesTotal && baseCacheChance > 1e-12 {
			existing := cachesPerSys[sid]
			perSysOk := perSysCacheCap <= 0 || existing < perSysCacheCap
			if perSysOk {
				p := baseCacheChance
				p *= 0.15 + 1.10*rf.pirate
				p *= 0.80 + 0.20*rf.ruins
				p *= 0.95 - 0.25*neb
				if hasCol {
					p *= 0.60
				}
				p *= 1.0 / (1.0 + 0.55*float64(existing))
				p = clampRange(p, 0, 0.60)

				u := rng.SplitMix64(poiSeed(in.Day, sid, 0xCAC0CAC0))
				if float64(u>>11)*(1.0/(1<<53)) < p {
					w := spawnCache(in.Day, sys, rf, alloc, sysOccupied)
					result.NewCaches = append(result.NewCaches, w)
					cachesTotal++
					cachesPerSys[sid]++
				}
			}
		}
	}
	return result
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// minDistToExisting returns the distance from p to the nearest point in
// occupied, or a large sentinel if occupied is empty.
func minDistToExisting(p galaxy.Point, occupied []galaxy.Point) float64 {
	if len(occupied) == 0 {
		return 1e9
	}
	best := math.MaxFloat64
	for _, o := range occupied {
		d := math.Hypot(p.X-o.X, p.Y-o.Y)
		if d < best {
			best = d
		}
	}
	return best
}

// pickBiasedSite samples `samples` candidate sites and keeps the
// highest-scoring one under a soft blue-noise scorer: weighted density
// match to targetDensity01, local gradient, and distance to existing POIs.
// It never hard-rejects a candidate, so it always returns a site even under
// a crowded system, per pick_biased_site in original_source.
func pickBiasedSite(sys *galaxy.StarSystem, occupied []galaxy.Point, targetDensity01, wDensity, wGrad, wSep, minSepMkm float64, samples int, rMin, rMax float64, r *rng.HashRng) galaxy.Point {
	samples = clampInt(samples, 1, 64)
	minSepMkm = math.Max(0, minSepMkm)

	// Nebula density here is a per-system scalar rather than a spatial
	// field, so it is constant across candidates and the gradient term
	// collapses to 0; both are still folded into the score for parity with
	// the weighted formula.
	density := clamp01(sys.NebulaDensity)
	gradient := 0.0

	best := galaxy.Point{}
	bestScore := -math.MaxFloat64
	for i := 0; i < samples; i++ {
		ang := r.Range(0, 2*math.Pi)
		radius := r.Range(rMin, rMax)
		cand := galaxy.Point{X: math.Cos(ang) * radius, Y: math.Sin(ang) * radius}

		ds := clampRange(1.0-math.Abs(density-targetDensity01)/0.35, 0, 1)

		ss := 1.0
		if minSepMkm > 1e-6 {
			ss = clampRange(minDistToExisting(cand, occupied)/minSepMkm, 0, 2)
		}

		score := wDensity*ds + wGrad*gradient + wSep*ss + 0.01*r.NextU01()
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}
	return best
}

// anomalyChainRootId walks OriginAnomalyId links within a single system's
// anomaly set until it finds the chain's root (an anomaly with no parent),
// guarding against cycles.
func anomalyChainRootId(bySystemId map[ids.Id]*Anomaly, id ids.Id) ids.Id {
	seen := make(map[ids.Id]bool)
	cur := id
	for {
		a, ok := bySystemId[cur]
		if !ok || a.OriginAnomalyId == ids.Invalid || seen[cur] {
			return cur
		}
		seen[cur] = true
		cur = a.OriginAnomalyId
	}
}

func spawnAnomaly(day int64, sys *galaxy.StarSystem, rf regionFactors, earlyPressure float64, alloc *ids.Allocator, occupied []galaxy.Point, sameSystem []*Anomaly) *Anomaly {
	r := rng.New(poiSeed(day, sys.Id, 0xA11A11A1))
	nebBase := clamp01(sys.NebulaDensity)

	wRuins := 0.20 + 1.40*rf.ruins + 0.26*earlyPressure
	wDistress := 0.10 + 1.10*rf.pirate + 0.22*earlyPressure
	wPhenom := (0.15 + 1.20*nebBase) * (1.0 - 0.22*earlyPressure)
	wDistortion := (0.10 + 1.30*nebBase) * (1.0 - 0.30*earlyPressure)
	wXeno := 0.06 + 1.10*rf.ruins + 0.20*(1.0-rf.pirate)
	wSignal := 0.45 + 0.40*earlyPressure

	wSum := wRuins + wDistress + wPhenom + wDistortion + wXeno + wSignal
	u := r.NextU01() * wSum

	var kind AnomalyKind
	switch {
	case u < wRuins:
		kind = AnomalyRuins
	case u < wRuins+wDistress:
		kind = AnomalyDistress
	case u < wRuins+wDistress+wPhenom:
		kind = AnomalyPhenomenon
	case u < wRuins+wDistress+wPhenom+wDistortion:
		kind = AnomalyDistortion
	case u < wRuins+wDistress+wPhenom+wDistortion+wXeno:
		kind = AnomalyXenoarchaeology
	default:
		kind = AnomalySignal
	}

	// Per-kind soft blue-noise placement targets, mirroring pick_biased_site's
	// per-kind constant tables in original_source.
	targetD, wD, wG, wS, minSep, samples, rMin, rMax := 0.35, 1.0, 0.20, 0.75, 18.0, 18, 25.0, 150.0
	switch kind {
	case AnomalySignal:
		targetD = clampRange(0.18+0.10*(1.0-nebBase), 0.05, 0.45)
		wD, wG, wS, minSep, samples, rMin, rMax = 1.25, 0.40, 0.70, 16.0, 18, 20.0, 140.0
	case AnomalyDistress:
		targetD = clampRange(0.32+0.18*rf.pirate, 0.10, 0.70)
		wD, wG, wS, minSep, samples, rMin, rMax = 1.10, 0.35, 0.75, 18.0, 18, 25.0, 160.0
	case AnomalyPhenomenon:
		targetD = clampRange(0.40+0.25*nebBase, 0.15, 0.85)
		wD, wG, wS, minSep, samples, rMin, rMax = 0.80, 1.25, 0.65, 20.0, 20, 35.0, 185.0
	case AnomalyDistortion:
		targetD = clampRange(0.50+0.30*nebBase, 0.22, 0.92)
		wD, wG, wS, minSep, samples, rMin, rMax = 1.10, 1.35, 0.75, 19.0, 22, 28.0, 190.0
	case AnomalyXenoarchaeology:
		targetD = clampRange(0.56+0.16*rf.ruins, 0.24, 0.88)
		wD, wG, wS, minSep, samples, rMin, rMax = 1.05, 0.75, 0.82, 21.0, 21, 30.0, 185.0
	case AnomalyRuins:
		targetD = clampRange(0.52+0.25*rf.ruins+0.10*nebBase, 0.25, 0.90)
		wD, wG, wS, minSep, samples, rMin, rMax = 1.30, 0.25, 0.85, 22.0, 20, 45.0, 210.0
	}

	if earlyPressure > 1e-6 {
		switch kind {
		case AnomalySignal, AnomalyDistress, AnomalyRuins, AnomalyXenoarchaeology:
			minSep = math.Max(12.0, minSep*(0.90-0.08*earlyPressure))
			rMin = math.Max(14.0, rMin*(0.78-0.08*earlyPressure))
			rMax = math.Max(rMin+24.0, rMax*(0.86-0.10*earlyPressure))
			wS += 0.10 * earlyPressure
		default:
			rMin = math.Max(16.0, rMin*(0.90-0.04*earlyPressure))
			rMax = math.Max(rMin+30.0, rMax*(0.95-0.04*earlyPressure))
		}
		samples = clampInt(samples+int(math.Round(2.0*earlyPressure)), 12, 30)
	}

	pos := pickBiasedSite(sys, occupied, targetD, wD, wG, wS, minSep, samples, rMin, rMax, r)

	baseDays := 2 + int(r.RangeInt(0, 5))
	nebDays := int(math.Round(nebBase * 4.0))
	ruinsDays := int(math.Round(rf.ruins * 3.0))
	invDays := clampInt(baseDays+nebDays+ruinsDays, 1, 18)

	rp := r.Range(8, 42)
	rp *= 0.70 + 1.10*rf.ruins
	rp *= 0.80 + 0.40*nebBase
	if kind == AnomalyDistress {
		rp *= 0.85 + 0.45*rf.pirate
	}

	var mineralReward map[string]float64
	cacheChance := clampRange(0.25+0.35*rf.ruins+0.10*rf.pirate, 0, 0.85)
	if r.NextU01() < cacheChance {
		scale := (0.8 + 1.2*rf.ruins) * (0.7 + 0.6*rf.salvageMult) * (0.85 + 0.55*nebBase)
		mineralReward = generateMineralBundle(r, DefaultMineralPool, 1.4*scale)
	}

	hzBase := 0.06
	switch kind {
	case AnomalyPhenomenon:
		hzBase = 0.12
	case AnomalyDistortion:
		hzBase = 0.20
	case AnomalyXenoarchaeology:
		hzBase = 0.10
	}
	hazardChance := clampRange(hzBase+0.28*nebBase, 0, 0.85)
	var hazardDamage float64
	if hazardChance > 1e-6 {
		hazardDamage = r.Range(0.6, 4.8) * (0.80 + 0.80*nebBase)
	}

	unlockChance := clampRange(0.05+0.20*rf.ruins+0.05*nebBase, 0, 0.35)
	var unlockId string
	if r.NextU01() < unlockChance {
		unlockId = "" // left to the caller's content db (procgen has no content import)
	}

	// Chain-link: a new anomaly may converge onto a nearby unresolved one in
	// the same system, inheriting its chain root and stepping its depth.
	linkChance := clampRange(0.10+0.05*rf.ruins, 0, 0.5)
	switch kind {
	case AnomalyRuins, AnomalyDistress, AnomalySignal, AnomalyXenoarchaeology:
		linkChance = clampRange(linkChance+0.18*earlyPressure, 0, 0.94)
	default:
		linkChance = clampRange(linkChance-0.06*earlyPressure, 0, 0.88)
	}
	linkRadius := 60.0 + 40.0*rf.ruins

	var originAnomalyId ids.Id
	var leadDepth int
	if len(sameSystem) > 0 && linkChance > 1e-9 {
		bySystemId := make(map[ids.Id]*Anomaly, len(sameSystem))
		for _, other := range sameSystem {
			bySystemId[other.Id] = other
		}
		var bestParent *Anomaly
		bestScore := -math.MaxFloat64
		for _, other := range sameSystem {
			d := math.Hypot(other.Position.X-pos.X, other.Position.Y-pos.Y)
			if d > linkRadius {
				continue
			}
			near := 1.0 - clampRange(d/math.Max(1e-6, linkRadius), 0, 1)
			depthNorm := clampRange(float64(maxInt(0, other.LeadDepth))/6.0, 0, 1)
			score := 1.15*near + 0.20*depthNorm + 0.02*r.NextU01()
			if score > bestScore {
				bestScore = score
				bestParent = other
			}
		}
		if bestParent != nil && r.NextU01() < linkChance {
			root := anomalyChainRootId(bySystemId, bestParent.Id)
			if root == ids.Invalid {
				root = bestParent.Id
			}
			originAnomalyId = root
			leadDepth = clampInt(bestParent.LeadDepth+1, 1, 12)
		}
	}

	id := alloc.Next()
	return &Anomaly{
		Id: id, SystemId: sys.Id, Position: pos, Kind: kind,
		Name:              GenerateName(r) + " " + string(kind),
		InvestigationDays: invDays,
		ResearchReward:    math.Max(0, rp),
		MineralReward:     mineralReward,
		UnlockComponentId: unlockId,
		HazardChance:      hazardChance,
		HazardDamage:      hazardDamage,
		OriginAnomalyId:   originAnomalyId,
		LeadDepth:         leadDepth,
	}
}

func spawnCache(day int64, sys *galaxy.StarSystem, rf regionFactors, alloc *ids.Allocator, occupied []galaxy.Point) *ships.Wreck {
	r := rng.New(poiSeed(day, sys.Id, 0xCACECA5E))
	nebBase := clamp01(sys.NebulaDensity)

	targetD := 0.30
	if rf.pirate > 0.55 {
		targetD = 0.68
	} else if rf.ruins > 0.55 {
		targetD = 0.55
	}
	targetD = clampRange(targetD+0.12*nebBase, 0.05, 0.90)

	pos := pickBiasedSite(sys, occupied, targetD, 1.0, 0.30, 0.80, 20.0, 16, 25.0, 175.0, r)

	scale := (1.0 + 0.8*rf.pirate) * (0.75 + 0.75*rf.salvageMult) * (0.80 + 0.60*nebBase)
	minerals := generateMineralBundle(r, DefaultMineralPool, 2.1*scale)
	if len(minerals) == 0 {
		minerals = map[string]float64{"Duranium": 50}
	}

	id := alloc.Next()
	return &ships.Wreck{
		Id: id, SystemId: sys.Id, X: pos.X, Y: pos.Y,
		Minerals: minerals, CreatedDay: day, IsCache: true,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
