package colonies

import (
	"math"
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestRunMiningFullyFulfillsUnderCapacity(t *testing.T) {
	body := &galaxy.Body{MineralDeposits: map[string]float64{"Duranium": 1000}}
	requests := map[string][]MiningRequest{
		"Duranium": {{ColonyId: 1, Tons: 50}, {ColonyId: 2, Tons: 30}},
	}
	stock := map[ids.Id]map[string]float64{1: {}, 2: {}}
	dist := RunMining(body, requests, stock, MineScarcityConfig{}, nil, 0, 0)

	if dist["Duranium"] != 80 {
		t.Fatalf("distributed = %f, want 80", dist["Duranium"])
	}
	if body.MineralDeposits["Duranium"] != 920 {
		t.Fatalf("remaining deposit = %f, want 920", body.MineralDeposits["Duranium"])
	}
}

func TestRunMiningArbitratesUnderScarcity(t *testing.T) {
	body := &galaxy.Body{MineralDeposits: map[string]float64{"Duranium": 100}}
	requests := map[string][]MiningRequest{
		"Duranium": {{ColonyId: 1, Tons: 80}, {ColonyId: 2, Tons: 80}},
	}
	stock := map[ids.Id]map[string]float64{1: {}, 2: {}}
	dist := RunMining(body, requests, stock, MineScarcityConfig{Enabled: true, BufferDays: 5, NeedBoost: 1}, nil, 0, 0)

	total := dist["Duranium"]
	if math.Abs(total-100) > 1e-6 {
		t.Fatalf("total distributed = %f, want ~100 (conservation)", total)
	}
	if body.MineralDeposits["Duranium"] > 1e-6 {
		t.Fatalf("remaining deposit = %f, want ~0", body.MineralDeposits["Duranium"])
	}
}

func TestRunMiningEmitsDepletedEvent(t *testing.T) {
	body := &galaxy.Body{MineralDeposits: map[string]float64{"Duranium": 10}}
	requests := map[string][]MiningRequest{
		"Duranium": {{ColonyId: 1, Tons: 50}},
	}
	stock := map[ids.Id]map[string]float64{1: {}}
	log := events.NewLog(100)
	RunMining(body, requests, stock, MineScarcityConfig{}, log, 5, 12)

	if len(log.Events) != 1 {
		t.Fatalf("expected one depletion event, got %d", len(log.Events))
	}
	if log.Events[0].Level != events.Warn {
		t.Fatalf("expected Warn level depletion event")
	}
}

func TestRunIndustryRateLimitsByScarcestInput(t *testing.T) {
	db := content.New()
	db.Installations["factory"] = content.InstallationDef{
		Key:           "factory",
		InputsPerDay:  map[content.ResourceKey]float64{"Duranium": 10},
		OutputsPerDay: map[content.ResourceKey]float64{"Components": 5},
	}
	c := NewColony(1, 1, 1, "Test")
	c.Installations["factory"] = 1
	c.Minerals["Duranium"] = 5 // only half of what's requested

	RunIndustry(c, db, 1.0, 1.0)

	if c.Minerals["Duranium"] > 1e-9 {
		t.Fatalf("expected Duranium fully consumed at half rate, got %f", c.Minerals["Duranium"])
	}
	if math.Abs(c.Minerals["Components"]-2.5) > 1e-9 {
		t.Fatalf("Components = %f, want 2.5 (half output due to scarcity)", c.Minerals["Components"])
	}
}

func TestRunConstructionSkipsUnaffordableWithoutBlocking(t *testing.T) {
	db := content.New()
	db.Installations["mine"] = content.InstallationDef{
		Key:                "mine",
		BuildCostPerUnit:   map[content.ResourceKey]float64{"Duranium": 100},
		ConstructionPoints: 10,
	}
	db.Installations["lab"] = content.InstallationDef{
		Key:                "lab",
		ConstructionPoints: 5,
	}
	c := NewColony(1, 1, 1, "Test")
	c.Minerals["Duranium"] = 0
	c.ConstructionQueue = []ConstructionOrder{
		{InstallationKey: "mine", QuantityRemaining: 1},
		{InstallationKey: "lab", QuantityRemaining: 1},
	}
	RunConstruction(c, db, 5, nil, 1, 0)

	if c.Installations["lab"] != 1 {
		t.Fatalf("expected lab order (affordable, no cost) to complete despite mine being skipped")
	}
	if len(c.ConstructionQueue) != 1 || c.ConstructionQueue[0].InstallationKey != "mine" {
		t.Fatalf("expected mine order to remain queued, got %+v", c.ConstructionQueue)
	}
}
