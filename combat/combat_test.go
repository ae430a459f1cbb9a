package combat

import (
	"math"
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/rng"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

func defaultBeamConfig() BeamHitChanceConfig {
	return BeamHitChanceConfig{
		Base:                      0.9,
		Min:                       0.05,
		RangePenaltyAtMax:         0.5,
		TrackingRefAngPerDay:      1.0,
		TrackingMinSensorRangeMkm: 1.0,
		TrackingRefSensorRangeMkm: 10.0,
		SignatureExponent:         1.0,
	}
}

func TestBeamHitChanceDecreasesWithRange(t *testing.T) {
	cfg := defaultBeamConfig()
	near := BeamHitChance(cfg, 1, 20, 10, 0, 0, 1, 0, 0)
	far := BeamHitChance(cfg, 19, 20, 10, 0, 0, 1, 0, 0)
	if far >= near {
		t.Fatalf("far hit chance %f should be lower than near %f", far, near)
	}
}

func TestBeamHitChanceClampedToMinAndMax(t *testing.T) {
	cfg := defaultBeamConfig()
	// Extreme transverse velocity should drive tracking factor near zero,
	// clamping down to Min.
	low := BeamHitChance(cfg, 5, 20, 10, 0, 0, 1, 1e9, 0)
	if low < cfg.Min-1e-9 {
		t.Fatalf("hit chance %f fell below configured Min %f", low, cfg.Min)
	}
	high := BeamHitChance(cfg, 0.001, 20, 10, 0, 0, 1, 0, 5)
	if high > 1 {
		t.Fatalf("hit chance %f exceeded 1", high)
	}
}

func TestResolveBeamShotDeterministicGivenSameRngState(t *testing.T) {
	r1 := rng.New(42)
	r2 := rng.New(42)
	s1 := ResolveBeamShot(r1, 1, 2, 10, 1, 1, 0.9)
	s2 := ResolveBeamShot(r2, 1, 2, 10, 1, 1, 0.9)
	if s1 != s2 {
		t.Fatalf("shots diverged for identical rng seed: %+v vs %+v", s1, s2)
	}
}

func TestInterceptSalvoReducesRemainingDamageWithinBudget(t *testing.T) {
	salvo := &ships.MissileSalvo{
		LaunchX: 0, LaunchY: 0,
		TargetX: 100, TargetY: 0,
		TotalEtaDays:     10,
		RemainingEtaDays: 10,
		RemainingDamage:  1000,
	}
	defenders := []PDDefender{
		{ShipId: 1, Position: [2]float64{5, 0}, PDRangeMkm: 3, PDDamagePerDay: 100, CrewMult: 1, MaintenanceMult: 1},
	}
	intercepted := InterceptSalvo(salvo, defenders, 1)
	if intercepted < 0 || intercepted > 1000 {
		t.Fatalf("intercepted = %f, out of bounds", intercepted)
	}
	if salvo.RemainingDamage > 1000 || salvo.RemainingDamage < 0 {
		t.Fatalf("remaining damage = %f, out of bounds", salvo.RemainingDamage)
	}
}

func TestInterceptSalvosPoolsDefenderBudgetAcrossSalvos(t *testing.T) {
	salvoA := &ships.MissileSalvo{
		Id:               1,
		LaunchX:          0, LaunchY: 0,
		TargetX: 100, TargetY: 0,
		TotalEtaDays:     10,
		RemainingEtaDays: 10,
		RemainingDamage:  1000,
	}
	salvoB := &ships.MissileSalvo{
		Id:               2,
		LaunchX:          0, LaunchY: 0,
		TargetX: 100, TargetY: 0,
		TotalEtaDays:     10,
		RemainingEtaDays: 10,
		RemainingDamage:  1000,
	}
	defenders := []PDDefender{
		{ShipId: 1, Position: [2]float64{5, 0}, PDRangeMkm: 3, PDDamagePerDay: 100, CrewMult: 1, MaintenanceMult: 1},
	}

	soloIntercept := InterceptSalvo(&ships.MissileSalvo{
		Id: 1, LaunchX: 0, LaunchY: 0, TargetX: 100, TargetY: 0,
		TotalEtaDays: 10, RemainingEtaDays: 10, RemainingDamage: 1000,
	}, defenders, 1)

	pooled := InterceptSalvos([]*ships.MissileSalvo{salvoA, salvoB}, defenders, 1)

	total := pooled[1] + pooled[2]
	if total > soloIntercept+1e-9 {
		t.Fatalf("pooled interception across two salvos (%f) exceeded one defender's single-salvo budget (%f)", total, soloIntercept)
	}
	if pooled[1] <= 0 || pooled[2] <= 0 {
		t.Fatalf("expected both equally-exposed salvos to receive a share of the pooled budget, got %v", pooled)
	}
	if math.Abs(pooled[1]-pooled[2]) > 1e-9 {
		t.Fatalf("expected equal exposure salvos to split the pooled budget evenly, got %v", pooled)
	}
}

func TestInterceptSalvoNoInterceptionWithoutDefendersInRange(t *testing.T) {
	salvo := &ships.MissileSalvo{
		LaunchX: 0, LaunchY: 0,
		TargetX: 100, TargetY: 0,
		TotalEtaDays:     10,
		RemainingEtaDays: 10,
		RemainingDamage:  500,
	}
	defenders := []PDDefender{
		{ShipId: 1, Position: [2]float64{500, 500}, PDRangeMkm: 1, PDDamagePerDay: 100, CrewMult: 1, MaintenanceMult: 1},
	}
	intercepted := InterceptSalvo(salvo, defenders, 1)
	if intercepted != 0 {
		t.Fatalf("expected zero interception from an out-of-range defender, got %f", intercepted)
	}
	if salvo.RemainingDamage != 500 {
		t.Fatalf("remaining damage should be untouched, got %f", salvo.RemainingDamage)
	}
}

func TestSegmentDiscExposureFullyInsideIsOne(t *testing.T) {
	exposure := segmentDiscExposure(0, 0, 1, 0, 0, 0, 10)
	if math.Abs(exposure-1) > 1e-9 {
		t.Fatalf("exposure = %f, want 1 for a segment fully inside the disc", exposure)
	}
}

func TestSegmentDiscExposureZeroWhenEntirelyOutside(t *testing.T) {
	exposure := segmentDiscExposure(100, 100, 200, 200, 0, 0, 1)
	if exposure != 0 {
		t.Fatalf("exposure = %f, want 0 for a segment entirely outside the disc", exposure)
	}
}

func TestCrewIntensityToGradePointsClamps(t *testing.T) {
	v := CrewIntensityToGradePoints(95, 10, 1, 100)
	if v != 100 {
		t.Fatalf("grade points = %f, want clamped to 100", v)
	}
	v2 := CrewIntensityToGradePoints(0, -5, 1, 100)
	if v2 != 0 {
		t.Fatalf("grade points = %f, want clamped to 0", v2)
	}
}

func TestResolveBoardingDeterministicAcrossCalls(t *testing.T) {
	cfg := BoardingConfig{DefenseHPFactor: 0.01}
	a1 := ResolveBoarding(5, 1, 2, 100, 0.1, 50, 200, 0, cfg)
	a2 := ResolveBoarding(5, 1, 2, 100, 0.1, 50, 200, 0, cfg)
	if a1 != a2 {
		t.Fatalf("boarding result not deterministic: %+v vs %+v", a1, a2)
	}
	if a1.Chance <= 0 || a1.Chance > 1 {
		t.Fatalf("chance %f out of [0,1]", a1.Chance)
	}
}

func TestSalvageFractionUsesFallbackCostsWhenDesignMissing(t *testing.T) {
	out := SalvageFraction(map[string]float64{"Components": 10}, 1000, 0.5, 0.25, nil)
	if out["Components"] != 5 {
		t.Fatalf("salvaged components = %f, want 5", out["Components"])
	}
	if out["Duranium"] != 250 {
		t.Fatalf("salvaged duranium = %f, want 250 (fallback weight 1.0)", out["Duranium"])
	}
	if out["Neutronium"] != 25 {
		t.Fatalf("salvaged neutronium = %f, want 25 (fallback weight 0.1)", out["Neutronium"])
	}
}
