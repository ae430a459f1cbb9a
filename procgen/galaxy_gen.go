package procgen

import (
	"math"
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/rng"
	"github.com/masterblaster1999/Nebula4X-sub000/simutil"
)

// GalaxyShape selects the galaxy-wide system placement archetype.
type GalaxyShape string

const (
	ShapeRing    GalaxyShape = "Ring"
	ShapeCluster GalaxyShape = "Cluster"
	ShapeSpiral  GalaxyShape = "Spiral"
)

// JumpNetworkArchetype selects how systems are wired into a connected jump
// graph once placed.
type JumpNetworkArchetype string

const (
	JumpNetworkSparseTree   JumpNetworkArchetype = "SparseTree"   // minimum spanning tree only
	JumpNetworkMeshed       JumpNetworkArchetype = "Meshed"        // spanning tree plus extra cross-links
	JumpNetworkHubAndSpoke  JumpNetworkArchetype = "HubAndSpoke"   // spanning tree plus links from one or more hubs to about a quarter of the other systems
)

// GalaxyGenConfig is the full surface of a galaxy generation request.
type GalaxyGenConfig struct {
	Seed                uint64
	NumSystems          int
	Shape               GalaxyShape
	JumpNetwork         JumpNetworkArchetype
	NumRegions          int
	GalaxyRadiusMkm     float64   // overall placement extent
	ExtraJumpLinkChance float64   // per non-MST pair, for Meshed
	MineralPool         []string  // defaults to the classic five if empty
}

// DefaultMineralPool mirrors generate_mineral_bundle's static pool.
var DefaultMineralPool = []string{"Duranium", "Neutronium", "Sorium", "Corbomite", "Tritanium"}

// GeneratedGalaxy is the full set of entities one GenerateGalaxy call
// produces, ready to be inserted into engine state.
type GeneratedGalaxy struct {
	Regions    map[ids.Id]*galaxy.Region
	Systems    map[ids.Id]*galaxy.StarSystem
	Bodies     map[ids.Id]*galaxy.Body
	JumpPoints map[ids.Id]*galaxy.JumpPoint
}

// GenerateGalaxy builds a complete, internally-consistent galaxy from seed
// and cfg: regions, system placement per Shape, per-system bodies with
// Keplerian orbits and mineral deposits, and a connected jump-point graph
// per JumpNetwork. alloc supplies every entity id so the result composes
// directly with whatever ids already exist in a scenario.
func GenerateGalaxy(cfg GalaxyGenConfig, alloc *ids.Allocator) GeneratedGalaxy {
	if cfg.NumSystems <= 0 {
		cfg.NumSystems = 1
	}
	if cfg.GalaxyRadiusMkm <= 0 {
		cfg.GalaxyRadiusMkm = 50000
	}
	if cfg.NumRegions <= 0 {
		cfg.NumRegions = max(1, cfg.NumSystems/8)
	}
	pool := cfg.MineralPool
	if len(pool) == 0 {
		pool = DefaultMineralPool
	}

	r := rng.New(cfg.Seed)
	out := GeneratedGalaxy{
		Regions:    make(map[ids.Id]*galaxy.Region),
		Systems:    make(map[ids.Id]*galaxy.StarSystem),
		Bodies:     make(map[ids.Id]*galaxy.Body),
		JumpPoints: make(map[ids.Id]*galaxy.JumpPoint),
	}

	regionIds := make([]ids.Id, cfg.NumRegions)
	for i := 0; i < cfg.NumRegions; i++ {
		rid := alloc.Next()
		regionIds[i] = rid
		out.Regions[rid] = &galaxy.Region{
			Id:                rid,
			Name:              GenerateName(r) + " Reach",
			RuinsDensity:      r.Range(0, 0.6),
			PirateRisk:        r.Range(0, 0.6),
			PirateSuppression: r.Range(0, 0.3),
			SalvageRichness:   r.Range(0.6, 1.6),
			MineralRichness:   r.Range(0.6, 1.6),
			VolatileRichness:  r.Range(0.4, 1.4),
			Theme:             pickTheme(r),
		}
	}

	systemIds := make([]ids.Id, cfg.NumSystems)
	positions := make(map[ids.Id]galaxy.Point, cfg.NumSystems)
	for i := 0; i < cfg.NumSystems; i++ {
		sid := alloc.Next()
		systemIds[i] = sid
		pos := placeSystem(cfg.Shape, r, i, cfg.NumSystems, cfg.GalaxyRadiusMkm)
		positions[sid] = pos
		region := regionIds[r.Index(len(regionIds))]

		sys := &galaxy.StarSystem{
			Id:             sid,
			Name:           GenerateName(r) + " " + GenerateName(r),
			GalaxyPosition: pos,
			RegionId:       region,
			NebulaDensity:  r.Range(0, 0.5),
		}
		if r.Bool(0.08) {
			interval := r.Range(8, 45)
			sys.StormIntervalDays = &interval
		}
		out.Systems[sid] = sys

		generateBodies(sys, out.Bodies, alloc, r, pool, out.Regions[region])
	}

	buildJumpNetwork(cfg.JumpNetwork, cfg, out, alloc, r, systemIds, positions)
	return out
}

func pickTheme(r *rng.HashRng) string {
	themes := []string{"Core Worlds", "Frontier", "Debris Field", "Ancient Ruins", "Nebula Belt", "Pirate Haven"}
	return themes[r.Index(len(themes))]
}

func placeSystem(shape GalaxyShape, r *rng.HashRng, i, n int, radius float64) galaxy.Point {
	switch shape {
	case ShapeRing:
		ang := 2 * math.Pi * float64(i) / float64(n)
		rr := radius * (0.85 + 0.15*r.NextU01())
		return galaxy.Point{X: math.Cos(ang) * rr, Y: math.Sin(ang) * rr}
	case ShapeSpiral:
		t := float64(i) / float64(n)
		arm := float64(r.RangeInt(0, 2))
		ang := t*6*math.Pi + arm*(2*math.Pi/3)
		rr := radius * t
		jitter := radius * 0.05
		return galaxy.Point{
			X: math.Cos(ang)*rr + r.Range(-jitter, jitter),
			Y: math.Sin(ang)*rr + r.Range(-jitter, jitter),
		}
	default: // ShapeCluster
		ang := r.Range(0, 2*math.Pi)
		rr := radius * math.Sqrt(r.NextU01())
		return galaxy.Point{X: math.Cos(ang) * rr, Y: math.Sin(ang) * rr}
	}
}

func generateBodies(sys *galaxy.StarSystem, bodies map[ids.Id]*galaxy.Body, alloc *ids.Allocator, r *rng.HashRng, pool []string, region *galaxy.Region) {
	starId := alloc.Next()
	star := &galaxy.Body{
		Id: starId, SystemId: sys.Id, Name: sys.Name, Type: galaxy.BodyStar,
		ParentId: ids.Invalid, MassEarths: r.Range(50000, 500000), RadiusKm: r.Range(400000, 900000),
		SurfaceTempK: r.Range(3000, 9000),
	}
	bodies[starId] = star
	sys.Bodies = append(sys.Bodies, starId)

	numPlanets := int(r.RangeInt(1, 7))
	sma := r.Range(40, 120)
	for p := 0; p < numPlanets; p++ {
		sma += r.Range(60, 260) * (1 + 0.15*float64(p))
		bt := galaxy.BodyPlanet
		if r.Bool(0.25) {
			bt = galaxy.BodyGasGiant
		}
		pid := alloc.Next()
		body := &galaxy.Body{
			Id: pid, SystemId: sys.Id, Name: GenerateBodyName(sys.Name, p), Type: bt,
			ParentId: starId,
			Orbit: simutil.OrbitalElements{
				SemiMajorAxisMkm:  sma,
				Eccentricity:      r.Range(0, 0.2),
				PeriodDays:        keplerPeriodDays(sma),
				ArgPeriapsisRad:   r.Range(0, 2*math.Pi),
				MeanAnomalyPhase0: r.Range(0, 2*math.Pi),
			},
			MassEarths: r.Range(0.1, 15),
			RadiusKm:   r.Range(2000, 70000),
			SurfaceTempK: r.Range(50, 700),
			AtmospherePressureAtm: r.Range(0, 5),
		}
		if bt == galaxy.BodyPlanet {
			body.MineralDeposits = generateMineralBundle(r, pool, 1.0+region.MineralRichness)
		}
		bodies[pid] = body
		sys.Bodies = append(sys.Bodies, pid)

		if bt == galaxy.BodyPlanet && r.Bool(0.3) {
			mid := alloc.Next()
			moon := &galaxy.Body{
				Id: mid, SystemId: sys.Id, Name: GenerateBodyName(body.Name, 0) + "m", Type: galaxy.BodyMoon,
				ParentId: pid,
				Orbit: simutil.OrbitalElements{
					SemiMajorAxisMkm: r.Range(0.5, 3), Eccentricity: r.Range(0, 0.1),
					PeriodDays: r.Range(2, 20), ArgPeriapsisRad: r.Range(0, 2*math.Pi),
					MeanAnomalyPhase0: r.Range(0, 2*math.Pi),
				},
				MassEarths: r.Range(0.001, 0.1),
				RadiusKm:   r.Range(200, 3000),
			}
			bodies[mid] = moon
			sys.Bodies = append(sys.Bodies, mid)
		}
	}

	numAsteroids := int(r.RangeInt(0, 4))
	for a := 0; a < numAsteroids; a++ {
		aid := alloc.Next()
		belt := &galaxy.Body{
			Id: aid, SystemId: sys.Id, Name: sys.Name + " Belt " + systemDesignators[a%len(systemDesignators)],
			Type: galaxy.BodyAsteroid, ParentId: starId,
			Orbit: simutil.OrbitalElements{
				SemiMajorAxisMkm: sma + r.Range(100, 900), Eccentricity: r.Range(0, 0.3),
				PeriodDays: keplerPeriodDays(sma + 300), ArgPeriapsisRad: r.Range(0, 2*math.Pi),
				MeanAnomalyPhase0: r.Range(0, 2*math.Pi),
			},
			MineralDeposits: generateMineralBundle(r, pool, 1.5+region.MineralRichness),
		}
		bodies[aid] = belt
		sys.Bodies = append(sys.Bodies, aid)
	}
}

// keplerPeriodDays derives an orbital period from semi-major axis using a
// simplified Kepler's third law scaling around a sun-like star, enough for
// deterministic, plausible-feeling orbits without a full mass-dependent
// two-body solve.
func keplerPeriodDays(semiMajorAxisMkm float64) float64 {
	auMkm := 149.6
	auRatio := semiMajorAxisMkm / auMkm
	if auRatio < 0.01 {
		auRatio = 0.01
	}
	years := math.Pow(auRatio, 1.5)
	return years * 365.25
}

func generateMineralBundle(r *rng.HashRng, pool []string, scale float64) map[string]float64 {
	out := make(map[string]float64)
	picks := int(r.RangeInt(1, 3))
	for i := 0; i < picks; i++ {
		key := pool[r.Index(len(pool))]
		amt := math.Max(0, scale) * r.Range(800, 9500)
		out[key] += amt
	}
	for k, v := range out {
		if v <= 1e-6 {
			delete(out, k)
		}
	}
	return out
}

// buildJumpNetwork connects systemIds with a minimum spanning tree over
// Euclidean distance, then layers on the archetype's extra structure.
func buildJumpNetwork(archetype JumpNetworkArchetype, cfg GalaxyGenConfig, out GeneratedGalaxy, alloc *ids.Allocator, r *rng.HashRng, systemIds []ids.Id, positions map[ids.Id]galaxy.Point) {
	if len(systemIds) < 2 {
		return
	}
	linked := make(map[[2]ids.Id]bool)
	link := func(a, b ids.Id) {
		key := [2]ids.Id{a, b}
		if a > b {
			key = [2]ids.Id{b, a}
		}
		if linked[key] {
			return
		}
		linked[key] = true
		jpA := alloc.Next()
		jpB := alloc.Next()
		pa := positions[a]
		pb := positions[b]
		out.JumpPoints[jpA] = &galaxy.JumpPoint{Id: jpA, SystemId: a, Position: galaxy.Point{X: pa.X * 0.01, Y: pa.Y * 0.01}, LinkedJumpId: jpB}
		out.JumpPoints[jpB] = &galaxy.JumpPoint{Id: jpB, SystemId: b, Position: galaxy.Point{X: pb.X * 0.01, Y: pb.Y * 0.01}, LinkedJumpId: jpA}
		out.Systems[a].JumpPoints = append(out.Systems[a].JumpPoints, jpA)
		out.Systems[b].JumpPoints = append(out.Systems[b].JumpPoints, jpB)
	}

	// Prim's MST keeps every system reachable, the minimum guarantee every
	// archetype shares.
	inTree := map[ids.Id]bool{systemIds[0]: true}
	remaining := append([]ids.Id(nil), systemIds[1:]...)
	for len(remaining) > 0 {
		bestI, bestJ := -1, -1
		bestDist := math.Inf(1)
		inTreeList := make([]ids.Id, 0, len(inTree))
		for id := range inTree {
			inTreeList = append(inTreeList, id)
		}
		sort.Slice(inTreeList, func(i, j int) bool { return inTreeList[i] < inTreeList[j] })
		for i, a := range inTreeList {
			for j, b := range remaining {
				d := dist(positions[a], positions[b])
				if d < bestDist {
					bestDist = d
					bestI = i
					bestJ = j
				}
			}
		}
		a := inTreeList[bestI]
		b := remaining[bestJ]
		link(a, b)
		inTree[b] = true
		remaining = append(remaining[:bestJ], remaining[bestJ+1:]...)
	}

	switch archetype {
	case JumpNetworkMeshed:
		chance := cfg.ExtraJumpLinkChance
		if chance <= 0 {
			chance = 0.08
		}
		for i, a := range systemIds {
			for _, b := range systemIds[i+1:] {
				if r.Bool(chance) {
					link(a, b)
				}
			}
		}
	case JumpNetworkHubAndSpoke:
		numHubs := max(1, len(systemIds)/10)
		for h := 0; h < numHubs; h++ {
			hub := systemIds[r.Index(len(systemIds))]
			for _, s := range systemIds {
				if s != hub && r.Bool(0.25) {
					link(hub, s)
				}
			}
		}
	}
}

func dist(a, b galaxy.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
