package procgen

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestGenerateGalaxyProducesConnectedJumpNetwork(t *testing.T) {
	alloc := ids.NewAllocator()
	cfg := GalaxyGenConfig{Seed: 42, NumSystems: 12, Shape: ShapeSpiral, JumpNetwork: JumpNetworkSparseTree}
	g := GenerateGalaxy(cfg, alloc)

	if len(g.Systems) != 12 {
		t.Fatalf("systems = %d, want 12", len(g.Systems))
	}
	for sid, sys := range g.Systems {
		if len(sys.JumpPoints) == 0 {
			t.Fatalf("system %d has no jump points, network must be connected", sid)
		}
	}
	if len(g.JumpPoints)%2 != 0 {
		t.Fatalf("jump points = %d, want an even count (paired endpoints)", len(g.JumpPoints))
	}
	for _, jp := range g.JumpPoints {
		linked, ok := g.JumpPoints[jp.LinkedJumpId]
		if !ok {
			t.Fatalf("jump point %d links to missing id %d", jp.Id, jp.LinkedJumpId)
		}
		if linked.LinkedJumpId != jp.Id {
			t.Fatalf("jump point link not reciprocal: %d -> %d -> %d", jp.Id, jp.LinkedJumpId, linked.LinkedJumpId)
		}
	}
}

func TestGenerateGalaxyDeterministicForSameSeed(t *testing.T) {
	cfg := GalaxyGenConfig{Seed: 7, NumSystems: 5, Shape: ShapeRing, JumpNetwork: JumpNetworkSparseTree}
	g1 := GenerateGalaxy(cfg, ids.NewAllocator())
	g2 := GenerateGalaxy(cfg, ids.NewAllocator())

	if len(g1.Systems) != len(g2.Systems) {
		t.Fatalf("system counts differ: %d vs %d", len(g1.Systems), len(g2.Systems))
	}
	for id, s1 := range g1.Systems {
		s2, ok := g2.Systems[id]
		if !ok || s1.Name != s2.Name {
			t.Fatalf("system %d diverged between identical-seed runs", id)
		}
	}
}

func TestGenerateGalaxyBodiesHaveValidParentChain(t *testing.T) {
	alloc := ids.NewAllocator()
	cfg := GalaxyGenConfig{Seed: 99, NumSystems: 3, Shape: ShapeCluster, JumpNetwork: JumpNetworkSparseTree}
	g := GenerateGalaxy(cfg, alloc)

	for _, b := range g.Bodies {
		if b.Type == galaxy.BodyStar {
			if b.ParentId != ids.Invalid {
				t.Fatalf("star %d has a non-invalid parent", b.Id)
			}
			continue
		}
		if b.ParentId == ids.Invalid {
			t.Fatalf("non-star body %d has no parent", b.Id)
		}
		if _, ok := g.Bodies[b.ParentId]; !ok {
			t.Fatalf("body %d's parent %d does not exist", b.Id, b.ParentId)
		}
	}
}

func TestTickDynamicPOISpawnsDisabledProducesNothing(t *testing.T) {
	alloc := ids.NewAllocator()
	in := TickDynamicPOIInputs{
		Day:     1,
		Systems: map[ids.Id]*galaxy.StarSystem{1: {Id: 1}},
	}
	result := TickDynamicPOISpawns(DynamicPOIConfig{Enabled: false}, in, alloc)
	if len(result.NewAnomalies) != 0 || len(result.NewCaches) != 0 {
		t.Fatalf("expected no spawns while disabled, got %+v", result)
	}
}

func TestTickDynamicPOISpawnsRespectsGlobalCap(t *testing.T) {
	alloc := ids.NewAllocator()
	systems := make(map[ids.Id]*galaxy.StarSystem)
	anomalies := make(map[ids.Id]*Anomaly)
	for i := ids.Id(1); i <= 20; i++ {
		systems[i] = &galaxy.StarSystem{Id: i, NebulaDensity: 0.2}
	}
	anomalies[1000] = &Anomaly{Id: 1000, SystemId: 1, Resolved: false}
	anomalies[1001] = &Anomaly{Id: 1001, SystemId: 2, Resolved: false}

	in := TickDynamicPOIInputs{
		Day: 10, Systems: systems, Anomalies: anomalies,
	}
	cfg := DynamicPOIConfig{
		Enabled: true, MaxUnresolvedAnomaliesTotal: 2,
		AnomalySpawnChancePerSystemPerDay: 1.0,
	}
	result := TickDynamicPOISpawns(cfg, in, alloc)
	if len(result.NewAnomalies) != 0 {
		t.Fatalf("expected no new anomalies once the global cap is already met, got %d", len(result.NewAnomalies))
	}
}

func TestTickDynamicPOISpawnsIsDeterministicForSameDay(t *testing.T) {
	systems := map[ids.Id]*galaxy.StarSystem{1: {Id: 1, NebulaDensity: 0.3}, 2: {Id: 2, NebulaDensity: 0.1}}
	cfg := DynamicPOIConfig{
		Enabled: true, AnomalySpawnChancePerSystemPerDay: 0.9, CacheSpawnChancePerSystemPerDay: 0.9,
	}
	in := TickDynamicPOIInputs{Day: 42, Systems: systems}
	r1 := TickDynamicPOISpawns(cfg, in, ids.NewAllocator())
	r2 := TickDynamicPOISpawns(cfg, in, ids.NewAllocator())
	if len(r1.NewAnomalies) != len(r2.NewAnomalies) || len(r1.NewCaches) != len(r2.NewCaches) {
		t.Fatalf("spawn counts diverged across identical-input runs: %d/%d vs %d/%d",
			len(r1.NewAnomalies), len(r1.NewCaches), len(r2.NewAnomalies), len(r2.NewCaches))
	}
}
