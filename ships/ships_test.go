package ships

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

func TestCombineModsIsAdditive(t *testing.T) {
	a := StatMods{DamagePct: 0.10, SpeedPct: 0.05}
	b := StatMods{DamagePct: 0.05, MaintenancePct: -0.2}
	c := CombineMods(a, b)
	if c.DamagePct != 0.15 {
		t.Fatalf("DamagePct = %f, want 0.15", c.DamagePct)
	}
	if c.SpeedPct != 0.05 || c.MaintenancePct != -0.2 {
		t.Fatalf("unexpected combined mods: %+v", c)
	}
}

func TestRecomputeDerivedStatsSumsComponents(t *testing.T) {
	db := content.New()
	db.Components["hull_1"] = content.ComponentDef{Key: "hull_1", MassTons: 100, MaxHP: 500}
	db.Components["engine_1"] = content.ComponentDef{Key: "engine_1", SpeedKmS: 200, MassTons: 20}
	design := &ShipDesign{Id: 1, Name: "Scout", Components: []content.ComponentKey{"hull_1", "engine_1"}}
	RecomputeDerivedStats(design, db)

	if design.Derived.MassTons != 120 {
		t.Fatalf("MassTons = %f, want 120", design.Derived.MassTons)
	}
	if design.Derived.MaxHP != 500 {
		t.Fatalf("MaxHP = %f, want 500", design.Derived.MaxHP)
	}
	if design.Derived.SignatureMultiplier != 1.0 {
		t.Fatalf("SignatureMultiplier = %f, want default 1.0", design.Derived.SignatureMultiplier)
	}
}

func TestRecomputeAndClampFillsSentinelNegatives(t *testing.T) {
	db := content.New()
	db.Components["hull_1"] = content.ComponentDef{Key: "hull_1", MaxHP: 300, FuelCapacityTons: 50}
	design := &ShipDesign{Id: 1, Components: []content.ComponentKey{"hull_1"}}
	RecomputeDerivedStats(design, db)

	s := &Ship{HP: -1, Fuel: -1}
	s.RecomputeAndClamp(design)
	if s.HP != 300 {
		t.Fatalf("HP = %f, want 300 (full from sentinel)", s.HP)
	}
	if s.Fuel != 50 {
		t.Fatalf("Fuel = %f, want 50 (full from sentinel)", s.Fuel)
	}
}

func TestRecomputeAndClampCapsOverflow(t *testing.T) {
	db := content.New()
	db.Components["hull_1"] = content.ComponentDef{Key: "hull_1", MaxHP: 300}
	design := &ShipDesign{Components: []content.ComponentKey{"hull_1"}}
	RecomputeDerivedStats(design, db)

	s := &Ship{HP: 9999}
	s.RecomputeAndClamp(design)
	if s.HP != 300 {
		t.Fatalf("HP = %f, want clamped to 300", s.HP)
	}
}

func TestFleetAddMemberKeepsSortedAndUnique(t *testing.T) {
	f := &Fleet{}
	f.AddMember(ids.Id(5))
	f.AddMember(ids.Id(1))
	f.AddMember(ids.Id(3))
	if added := f.AddMember(ids.Id(3)); added {
		t.Fatalf("AddMember should report false for a duplicate")
	}
	want := []ids.Id{1, 3, 5}
	for i := range want {
		if f.MemberIds[i] != want[i] {
			t.Fatalf("MemberIds = %v, want %v", f.MemberIds, want)
		}
	}
	if f.LeaderId != 5 {
		t.Fatalf("LeaderId = %d, want first-added 5", f.LeaderId)
	}
}

func TestFleetRemoveMemberRepairsLeader(t *testing.T) {
	f := &Fleet{}
	f.AddMember(ids.Id(1))
	f.AddMember(ids.Id(2))
	f.RemoveMember(ids.Id(1))
	if f.LeaderId != 2 {
		t.Fatalf("expected leader repair to fall to remaining member 2, got %d", f.LeaderId)
	}
}

func TestShipOrdersRepeatRefillsOnDrain(t *testing.T) {
	so := &ShipOrders{}
	so.Queue = []Order{{Kind: OrderWaitDays}, {Kind: OrderMoveToBody, TargetBodyId: 7}}
	so.EnableRepeat(2)

	so.Pop()
	so.Pop() // queue drains, should refill since RepeatCountRemaining becomes 1
	if len(so.Queue) != 2 {
		t.Fatalf("expected repeat template to refill the queue, got %d entries", len(so.Queue))
	}
	if so.RepeatCountRemaining != 1 {
		t.Fatalf("RepeatCountRemaining = %d, want 1", so.RepeatCountRemaining)
	}
}

func TestShipOrdersRepeatStopsAtZero(t *testing.T) {
	so := &ShipOrders{}
	so.Queue = []Order{{Kind: OrderWaitDays}}
	so.EnableRepeat(1)
	so.Pop() // drains, refills, decrements to 0, disables repeat
	if len(so.Queue) != 1 {
		t.Fatalf("expected one refill before repeat disables, got %d entries", len(so.Queue))
	}
	so.Pop() // drains again; repeat now disabled, must stay empty
	if len(so.Queue) != 0 {
		t.Fatalf("expected queue to stay empty once repeat is exhausted")
	}
}
