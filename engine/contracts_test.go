package engine

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/procgen"
)

func newContractTestEngine(t *testing.T) (*Engine, *factions.Faction, ids.Id) {
	t.Helper()
	db := content.New()
	cfg := DefaultConfig()
	cfg.Contracts = ContractsConfig{
		Enabled: true, MaxOffersPerFaction: 5, DailyNewOffersPerFaction: 5,
		OfferExpiryDays: 10, RewardBase: 2, RewardPerHop: 1,
	}
	e := New(db, cfg)
	f := factions.NewFaction(e.state.allocateId(), "Alpha", factions.ControlPlayer)
	e.state.Factions[f.Id] = f

	sysId := e.state.allocateId()
	e.state.Systems[sysId] = &galaxy.StarSystem{Id: sysId, Name: "Sol"}
	f.DiscoveredSystems[sysId] = true

	anomalyId := e.state.allocateId()
	e.state.Anomalies[anomalyId] = &procgen.Anomaly{
		Id: anomalyId, SystemId: sysId, ResearchReward: 40,
	}
	return e, f, sysId
}

func TestRunContractGenerationOffersContractForDiscoveredAnomaly(t *testing.T) {
	e, f, _ := newContractTestEngine(t)
	e.runContractGeneration()

	if len(f.Contracts) != 1 {
		t.Fatalf("expected 1 contract offered, got %d", len(f.Contracts))
	}
	for _, c := range f.Contracts {
		if c.Status != factions.ContractOffered {
			t.Fatalf("expected Offered status, got %s", c.Status)
		}
		if c.Kind != factions.ContractInvestigateAnomaly {
			t.Fatalf("expected investigate-anomaly contract, got %s", c.Kind)
		}
	}
}

func TestRunContractGenerationSkipsUndiscoveredTargets(t *testing.T) {
	e, f, sysId := newContractTestEngine(t)
	delete(f.DiscoveredSystems, sysId)
	e.runContractGeneration()
	if len(f.Contracts) != 0 {
		t.Fatalf("expected no contracts for an undiscovered system, got %d", len(f.Contracts))
	}
}

func TestAcceptAndAbandonContract(t *testing.T) {
	e, f, _ := newContractTestEngine(t)
	e.runContractGeneration()

	var contractId ids.Id
	for id := range f.Contracts {
		contractId = id
	}

	if !e.AcceptContract(f.Id, contractId) {
		t.Fatalf("AcceptContract failed")
	}
	if f.Contracts[contractId].Status != factions.ContractAccepted {
		t.Fatalf("expected Accepted status after AcceptContract")
	}

	if !e.AbandonContract(f.Id, contractId) {
		t.Fatalf("AbandonContract failed")
	}
	if _, ok := f.Contracts[contractId]; ok {
		t.Fatalf("abandoned contract should be removed")
	}
}

func TestPruneExpiredContractsMarksPastDueOffersExpired(t *testing.T) {
	e, f, _ := newContractTestEngine(t)
	e.runContractGeneration()

	var contractId ids.Id
	for id := range f.Contracts {
		contractId = id
	}
	e.state.Day = 100

	e.pruneExpiredContracts()

	if f.Contracts[contractId].Status != factions.ContractExpired {
		t.Fatalf("expected Expired status, got %s", f.Contracts[contractId].Status)
	}
}

func TestCompleteContractForAppliesResearchReward(t *testing.T) {
	e, f, _ := newContractTestEngine(t)
	e.runContractGeneration()

	var contractId, targetId ids.Id
	for id, c := range f.Contracts {
		contractId, targetId = id, c.TargetId
	}
	e.AcceptContract(f.Id, contractId)
	f.ResearchQueue = []content.TechKey{"automation_1"}
	e.content.Techs["automation_1"] = content.TechDef{Key: "automation_1", Cost: 100}

	e.completeContractFor(f.Id, targetId)

	if f.Contracts[contractId].Status != factions.ContractCompleted {
		t.Fatalf("expected Completed status, got %s", f.Contracts[contractId].Status)
	}
	if f.ActiveTechProgressPoints <= 0 {
		t.Fatalf("expected research reward to advance active tech progress, got %v", f.ActiveTechProgressPoints)
	}
}
