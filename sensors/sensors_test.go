package sensors

import (
	"testing"

	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/spatial"
)

func TestSweepFindsTargetWithinEffectiveRange(t *testing.T) {
	idx := spatial.NewIndex2D(25)
	idx.Add(100, spatial.Point{X: 10, Y: 0})

	sources := []Source{{OwnerFactionId: 1, RangeMkm: 20, Position: spatial.Point{X: 0, Y: 0}}}
	targets := map[ids.Id]Target{
		100: {ShipId: 100, FactionId: 2, Position: spatial.Point{X: 10, Y: 0}, EffectiveSignature: 1.0, Name: "Raider"},
	}
	out := Sweep(sources, targets, idx, 0)
	if len(out) != 1 || out[0].Ship.ShipId != 100 {
		t.Fatalf("detections = %+v, want one detection of ship 100", out)
	}
}

func TestSweepExcludesSameFactionTargets(t *testing.T) {
	idx := spatial.NewIndex2D(25)
	idx.Add(100, spatial.Point{X: 1, Y: 0})
	sources := []Source{{OwnerFactionId: 1, RangeMkm: 20, Position: spatial.Point{X: 0, Y: 0}}}
	targets := map[ids.Id]Target{
		100: {ShipId: 100, FactionId: 1, Position: spatial.Point{X: 1, Y: 0}, EffectiveSignature: 1.0},
	}
	out := Sweep(sources, targets, idx, 0)
	if len(out) != 0 {
		t.Fatalf("expected no detections of a friendly ship, got %+v", out)
	}
}

func TestSweepDedupesAcrossMultipleSources(t *testing.T) {
	idx := spatial.NewIndex2D(25)
	idx.Add(100, spatial.Point{X: 5, Y: 0})
	sources := []Source{
		{OwnerFactionId: 1, RangeMkm: 20, Position: spatial.Point{X: 0, Y: 0}},
		{OwnerFactionId: 1, RangeMkm: 20, Position: spatial.Point{X: 1, Y: 0}},
	}
	targets := map[ids.Id]Target{
		100: {ShipId: 100, FactionId: 2, Position: spatial.Point{X: 5, Y: 0}, EffectiveSignature: 1.0},
	}
	out := Sweep(sources, targets, idx, 0)
	if len(out) != 1 {
		t.Fatalf("expected dedup to one detection, got %d", len(out))
	}
}

func TestApplyDetectionShiftsSnapshotOnlyOnFirstDetectionToday(t *testing.T) {
	f := factions.NewFaction(1, "Viewer", factions.ControlPlayer)
	d := Detection{ViewerFactionId: 1, Ship: Target{ShipId: 100, FactionId: 2, Position: spatial.Point{X: 0, Y: 0}}}
	ApplyDetection(f, d, 10, 5, true)

	d2 := Detection{ViewerFactionId: 1, Ship: Target{ShipId: 100, FactionId: 2, Position: spatial.Point{X: 5, Y: 0}}}
	ApplyDetection(f, d2, 11, 5, true)
	c := f.Contacts[100]
	if !c.HasPrevious || c.PreviousX != 0 {
		t.Fatalf("contact = %+v, want previous snapshot shifted to (0,0)", c)
	}

	// A second detection the same day (isFirstDetectionToday=false) must not
	// shift the previous snapshot again.
	d3 := Detection{ViewerFactionId: 1, Ship: Target{ShipId: 100, FactionId: 2, Position: spatial.Point{X: 6, Y: 0}}}
	ApplyDetection(f, d3, 11, 5, false)
	c2 := f.Contacts[100]
	if c2.PreviousX != 0 {
		t.Fatalf("previous snapshot shifted on a same-day re-detection: %+v", c2)
	}
}

func TestApplyDetectionDropsPreviousOnSystemChange(t *testing.T) {
	f := factions.NewFaction(1, "Viewer", factions.ControlPlayer)
	d := Detection{ViewerFactionId: 1, Ship: Target{ShipId: 100, FactionId: 2, Position: spatial.Point{X: 0, Y: 0}}}
	ApplyDetection(f, d, 10, 5, true)
	d2 := Detection{ViewerFactionId: 1, Ship: Target{ShipId: 100, FactionId: 2, Position: spatial.Point{X: 1, Y: 1}}}
	ApplyDetection(f, d2, 11, 99, true) // different system
	c := f.Contacts[100]
	if c.HasPrevious {
		t.Fatalf("expected no previous snapshot after a system change, got %+v", c)
	}
}

func TestPruneContactsRemovesStaleAndDestroyed(t *testing.T) {
	f := factions.NewFaction(1, "Viewer", factions.ControlPlayer)
	f.Contacts[1] = factions.Contact{LastSeenDay: 1}
	f.Contacts[2] = factions.Contact{LastSeenDay: 29}
	f.Contacts[3] = factions.Contact{LastSeenDay: 29}
	PruneContacts(f, 30, 10, func(id ids.Id) bool { return id == 3 })
	if _, ok := f.Contacts[1]; ok {
		t.Fatalf("expected stale contact 1 pruned")
	}
	if _, ok := f.Contacts[3]; ok {
		t.Fatalf("expected destroyed contact 3 pruned")
	}
	if _, ok := f.Contacts[2]; !ok {
		t.Fatalf("expected fresh contact 2 retained")
	}
}

func TestExtrapolatedVelocityRequiresPreviousSnapshot(t *testing.T) {
	_, _, ok := ExtrapolatedVelocity(factions.Contact{})
	if ok {
		t.Fatalf("expected no velocity without a previous snapshot")
	}
	c := factions.Contact{
		LastSeenDay: 10, LastSeenX: 10, LastSeenY: 0,
		HasPrevious: true, PreviousSeenDay: 8, PreviousX: 0, PreviousY: 0,
	}
	vx, vy, ok := ExtrapolatedVelocity(c)
	if !ok || vx != 5 || vy != 0 {
		t.Fatalf("velocity = (%f,%f), ok=%v, want (5,0)", vx, vy, ok)
	}
}
