package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// AreAllies implements factions.Provider so callers can pass the Engine
// itself wherever order issuance needs a diplomacy lookup (IssueAttackShip
// et al.), per orders.go's FactionProvider interface.
func (e *Engine) AreAllies(a, b ids.Id) bool {
	if a == b {
		return true
	}
	f, ok := e.state.Factions[a]
	if !ok {
		return false
	}
	return f.StatusWith(b) == factions.StatusAlliance
}

// AreEnemies reports Hostile status; everything else (Neutral and every
// treaty tier above it) is non-hostile.
func (e *Engine) AreEnemies(a, b ids.Id) bool {
	if a == b {
		return false
	}
	f, ok := e.state.Factions[a]
	if !ok {
		return true
	}
	return f.StatusWith(b) == factions.StatusHostile
}

// SetDiplomaticStatus records status symmetrically on both factions' sides
// of the pair; Faction.Diplomacy is keyed by a normalized Pair so either
// side's StatusWith call returns the same value.
func (e *Engine) SetDiplomaticStatus(a, b ids.Id, status factions.DiplomaticStatus) bool {
	fa, ok := e.state.Factions[a]
	if !ok {
		return false
	}
	fb, ok := e.state.Factions[b]
	if !ok {
		return false
	}
	fa.SetStatusWith(b, status)
	fb.SetStatusWith(a, status)
	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryDiplomacy, Message: "diplomatic status changed",
		FactionId: a,
	})
	return true
}

// treatyStatus maps a TreatyType to the DiplomaticStatus it grants while
// active.
func treatyStatus(t factions.TreatyType) factions.DiplomaticStatus {
	switch t {
	case factions.TreatyCeasefire:
		return factions.StatusCeasefire
	case factions.TreatyNonAggressionPact:
		return factions.StatusNonAggression
	case factions.TreatyResearchAgreement:
		return factions.StatusResearchAgreement
	case factions.TreatyTradeAgreement:
		return factions.StatusTradeAgreement
	case factions.TreatyAlliance:
		return factions.StatusAlliance
	default:
		return factions.StatusNeutral
	}
}

// ProposeTreaty records a Treaty between two factions and immediately
// raises their diplomatic status to match it. Nebula4X has no AI
// acceptance/rejection negotiation loop (§9 Non-goals exclude full
// diplomacy AI); a proposal between two known factions always succeeds,
// mirroring how IssueColonizeBody et al. treat a well-formed player
// command as authoritative rather than subject to a approval step.
func (e *Engine) ProposeTreaty(a, b ids.Id, kind factions.TreatyType, durationDays int64) (ids.Id, bool) {
	if _, ok := e.state.Factions[a]; !ok {
		return ids.Invalid, false
	}
	if _, ok := e.state.Factions[b]; !ok {
		return ids.Invalid, false
	}
	id := e.state.allocateId()
	treaty := &factions.Treaty{
		Id:           id,
		Type:         kind,
		Pair:         factions.NormalizePair(a, b),
		StartDay:     e.state.Day,
		DurationDays: durationDays,
	}
	e.state.Treaties[id] = treaty
	e.SetDiplomaticStatus(a, b, treatyStatus(kind))
	return id, true
}

// pruneExpiredTreaties drops treaties whose DurationDays has elapsed and
// relaxes the pair back to Neutral, unless a newer treaty already
// superseded it (SetDiplomaticStatus always wins, so an expired treaty
// that was already overwritten by a stronger one is a harmless no-op here).
func (e *Engine) pruneExpiredTreaties() {
	for _, id := range treatyKeys(e.state.Treaties) {
		t := e.state.Treaties[id]
		if t.IsActive(e.state.Day) {
			continue
		}
		delete(e.state.Treaties, id)
		fa, okA := e.state.Factions[t.Pair.A]
		fb, okB := e.state.Factions[t.Pair.B]
		if okA && okB && fa.StatusWith(t.Pair.B) == treatyStatus(t.Type) {
			e.SetDiplomaticStatus(t.Pair.A, t.Pair.B, factions.StatusNeutral)
		}
	}
}

func treatyKeys(m map[ids.Id]*factions.Treaty) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}

// IsInstallationBuildableForFaction reports whether a faction has unlocked
// the installation (researched its prerequisite tech), mirroring the
// ComponentKey unlock gate procgen_pass.go already applies to ship
// components.
func (e *Engine) IsInstallationBuildableForFaction(factionId ids.Id, key content.InstallationKey) bool {
	if _, ok := e.content.Installations[key]; !ok {
		return false
	}
	f, ok := e.state.Factions[factionId]
	if !ok {
		return false
	}
	return f.UnlockedInstallations[key]
}
