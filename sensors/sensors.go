// Package sensors implements per-faction fog-of-war: detection sweeps over
// a system's spatial index, contact snapshot/extrapolation bookkeeping, and
// detection-driven event emission (§4.F).
package sensors

import (
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/spatial"
)

// Source is one sensor emitter; Sweep uses RangeMkm as given. The engine's
// sensors pass builds one Source per ship with sensors online, at the
// design sensor range times the system's nebula attenuation. No heat
// penalty is applied, and colonies contribute no sources.
type Source struct {
	OwnerFactionId ids.Id
	RangeMkm       float64
	Position       spatial.Point
}

// Target is one ship a detection sweep can find.
type Target struct {
	ShipId              ids.Id
	FactionId           ids.Id
	Position             spatial.Point
	EffectiveSignature   float64 // signature multiplier after any mods
	Name                 string
	DesignId             ids.Id
}

// Detection is one (viewer faction, detected ship) pair found this sweep.
type Detection struct {
	ViewerFactionId ids.Id
	Ship            Target
}

// DefaultMaxSignatureOverConfig is the upper bound on signature multiplier
// the index query radius is pre-expanded by when Sweep is passed a
// non-positive maxSigOverConfig, so that a sensor
// source never misses a highly-signatured ship sitting just past its
// nominal range before the signature multiplier is applied exactly.
const DefaultMaxSignatureOverConfig = 3.0

// Sweep runs one system's detection pass for every sensor source against
// every candidate target, using idx to avoid an O(sources * targets) scan
// when both are large. Results are sorted by (ship_id, faction_id) and
// deduplicated, matching §4.F's determinism requirement.
func Sweep(sources []Source, targets map[ids.Id]Target, idx *spatial.Index2D, maxSigOverConfig float64) []Detection {
	if maxSigOverConfig <= 0 {
		maxSigOverConfig = DefaultMaxSignatureOverConfig
	}
	seen := make(map[[2]ids.Id]bool)
	var out []Detection
	for _, src := range sources {
		candidates := idx.QueryRadius(src.Position, src.RangeMkm*maxSigOverConfig, 1e-6)
		for _, candId := range candidates {
			tgt, ok := targets[candId]
			if !ok {
				continue
			}
			if tgt.FactionId == src.OwnerFactionId {
				continue
			}
			effRange := src.RangeMkm * tgt.EffectiveSignature
			dx := tgt.Position.X - src.Position.X
			dy := tgt.Position.Y - src.Position.Y
			dist2 := dx*dx + dy*dy
			if dist2 > effRange*effRange {
				continue
			}
			key := [2]ids.Id{tgt.ShipId, src.OwnerFactionId}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Detection{ViewerFactionId: src.OwnerFactionId, Ship: tgt})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ship.ShipId != out[j].Ship.ShipId {
			return out[i].Ship.ShipId < out[j].Ship.ShipId
		}
		return out[i].ViewerFactionId < out[j].ViewerFactionId
	})
	return out
}

// ApplyDetection updates f's Contact map for one detection, handling the
// system-change/previous-snapshot shift rules of §4.F. isFirstDetectionToday
// tells ApplyDetection whether this is the first time today this viewer has
// seen this ship, which gates the previous-snapshot shift (supporting
// 2-point velocity extrapolation without shifting on every sub-day tick).
func ApplyDetection(f *factions.Faction, d Detection, day int64, systemId ids.Id, isFirstDetectionToday bool) {
	prior, existed := f.Contacts[d.Ship.ShipId]
	next := factions.Contact{
		LastSeenDay:       day,
		LastSeenSystemId:  systemId,
		LastSeenX:         d.Ship.Position.X,
		LastSeenY:         d.Ship.Position.Y,
		LastSeenName:      d.Ship.Name,
		LastSeenDesignId:  d.Ship.DesignId,
		LastSeenFactionId: d.Ship.FactionId,
	}
	if existed && prior.LastSeenSystemId == systemId {
		if isFirstDetectionToday {
			next.HasPrevious = true
			next.PreviousX = prior.LastSeenX
			next.PreviousY = prior.LastSeenY
			next.PreviousSeenDay = prior.LastSeenDay
		} else {
			next.HasPrevious = prior.HasPrevious
			next.PreviousX = prior.PreviousX
			next.PreviousY = prior.PreviousY
			next.PreviousSeenDay = prior.PreviousSeenDay
		}
	}
	f.Contacts[d.Ship.ShipId] = next
}

// PruneContacts removes contacts older than maxAgeDays or whose ship no
// longer exists (isDestroyed), per §4.F.
func PruneContacts(f *factions.Faction, day int64, maxAgeDays int64, isDestroyed func(ids.Id) bool) {
	keys := make([]ids.Id, 0, len(f.Contacts))
	for id := range f.Contacts {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	for _, id := range keys {
		c := f.Contacts[id]
		if day-c.LastSeenDay > maxAgeDays || isDestroyed(id) {
			delete(f.Contacts, id)
		}
	}
}

// ExtrapolatedVelocity returns a rough velocity estimate from a contact's
// two-point snapshot, or (0,0,false) if there isn't one yet.
func ExtrapolatedVelocity(c factions.Contact) (vx, vy float64, ok bool) {
	if !c.HasPrevious {
		return 0, 0, false
	}
	dt := float64(c.LastSeenDay - c.PreviousSeenDay)
	if dt <= 0 {
		return 0, 0, false
	}
	return (c.LastSeenX - c.PreviousX) / dt, (c.LastSeenY - c.PreviousY) / dt, true
}
