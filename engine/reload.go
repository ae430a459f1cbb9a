package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// ReloadResult reports what a ReloadContentDB call changed, so a caller can
// surface warnings (a design that no longer validates) without the reload
// itself failing outright.
type ReloadResult struct {
	Ok                   bool
	CustomDesignsUpdated int
	CustomDesignsFailed  int
	ShipsUpdated         int
	FactionsRebuilt      int
	Warnings             []string
	Errors               []string
}

// ReloadContentDB swaps the engine's active content catalog, per §6's
// reload_content_db: every design's Derived stats are recomputed against
// the new catalog (never hand-edited, per ships.RecomputeDerivedStats'
// doc comment), every live ship is re-clamped to its design's new
// capacities, and every faction's unlocked-component/installation sets are
// pruned of keys the new catalog no longer defines. validateState, when
// true, additionally checks that every design still resolves every
// component key it references, recording a warning (not a hard failure)
// for any that don't — a design referencing a removed component keeps its
// last-computed Derived stats rather than silently zeroing out.
func (e *Engine) ReloadContentDB(db *content.ContentDB, validateState bool) ReloadResult {
	result := ReloadResult{Ok: true}
	if db == nil {
		result.Ok = false
		result.Errors = append(result.Errors, "nil content database")
		return result
	}
	e.content = db

	for _, designId := range designKeys(e.state.Designs) {
		design := e.state.Designs[designId]
		if validateState {
			if missing := missingComponents(design, db); len(missing) > 0 {
				result.CustomDesignsFailed++
				result.Warnings = append(result.Warnings,
					"design "+design.Name+" references components no longer in the catalog")
				continue
			}
		}
		ships.RecomputeDerivedStats(design, db)
		result.CustomDesignsUpdated++
	}

	for _, shipId := range shipKeys(e.state.Ships) {
		ship := e.state.Ships[shipId]
		design, ok := e.state.Designs[ship.DesignId]
		if !ok {
			continue
		}
		ship.RecomputeAndClamp(design)
		result.ShipsUpdated++
	}

	for _, factionId := range factionKeys(e.state.Factions) {
		faction := e.state.Factions[factionId]
		for key := range faction.UnlockedComponents {
			if _, ok := db.Components[key]; !ok {
				delete(faction.UnlockedComponents, key)
			}
		}
		for key := range faction.UnlockedInstallations {
			if _, ok := db.Installations[key]; !ok {
				delete(faction.UnlockedInstallations, key)
			}
		}
		result.FactionsRebuilt++
	}

	e.state.appendEvent(events.Event{
		Day: e.state.Day, Hour: e.state.HourOfDay, Level: events.Info,
		Category: events.CategoryRuntime, Message: "content database reloaded",
	})
	return result
}

func missingComponents(d *ships.ShipDesign, db *content.ContentDB) []content.ComponentKey {
	var missing []content.ComponentKey
	for _, key := range d.Components {
		if _, ok := db.Components[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func designKeys(m map[ids.Id]*ships.ShipDesign) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}
