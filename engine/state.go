package engine

import (
	"github.com/masterblaster1999/Nebula4X-sub000/colonies"
	"github.com/masterblaster1999/Nebula4X-sub000/events"
	"github.com/masterblaster1999/Nebula4X-sub000/factions"
	"github.com/masterblaster1999/Nebula4X-sub000/galaxy"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/procgen"
	"github.com/masterblaster1999/Nebula4X-sub000/ships"
)

// OrderTemplateSet is a world-level named order template, keyed by id so it
// can be referenced from apply_template_smart without a name lookup on the
// hot path.
type OrderTemplateSet map[ids.Id]*ships.OrderTemplate

// State is every piece of data a tick reads and mutates: the full entity
// graph keyed by Id, plus the scalars the scheduler advances. It holds no
// behavior of its own beyond the small invariant-repair helpers in §4.B;
// every pass that mutates State lives elsewhere in the engine package so
// State itself stays a plain, (de)serializable value.
type State struct {
	SchemaVersion int

	Day      int64
	HourOfDay int

	IdAlloc      *ids.Allocator
	NextEventSeq int64

	Factions   map[ids.Id]*factions.Faction
	Regions    map[ids.Id]*galaxy.Region
	Systems    map[ids.Id]*galaxy.StarSystem
	Bodies     map[ids.Id]*galaxy.Body
	JumpPoints map[ids.Id]*galaxy.JumpPoint

	Colonies map[ids.Id]*colonies.Colony
	Designs  map[ids.Id]*ships.ShipDesign
	Ships    map[ids.Id]*ships.Ship
	Orders   map[ids.Id]*ships.ShipOrders
	Fleets   map[ids.Id]*ships.Fleet

	Templates OrderTemplateSet

	Salvos    map[ids.Id]*ships.MissileSalvo
	Wrecks    map[ids.Id]*ships.Wreck
	Anomalies map[ids.Id]*procgen.Anomaly

	Treaties map[ids.Id]*factions.Treaty

	Events *events.Log

	// ScoreHistory tracks a per-faction score time series (day -> value),
	// persisted but never read by tick logic itself.
	ScoreHistory map[ids.Id]map[int64]float64
}

// NewState builds an empty State with every map initialized and a fresh
// event log, ready for a scenario generator or a loader to populate.
func NewState(maxEvents int) *State {
	return &State{
		SchemaVersion: SaveSchemaVersion,
		IdAlloc:      ids.NewAllocator(),
		NextEventSeq: 1,
		Factions:     make(map[ids.Id]*factions.Faction),
		Regions:      make(map[ids.Id]*galaxy.Region),
		Systems:      make(map[ids.Id]*galaxy.StarSystem),
		Bodies:       make(map[ids.Id]*galaxy.Body),
		JumpPoints:   make(map[ids.Id]*galaxy.JumpPoint),
		Colonies:     make(map[ids.Id]*colonies.Colony),
		Designs:      make(map[ids.Id]*ships.ShipDesign),
		Ships:        make(map[ids.Id]*ships.Ship),
		Orders:       make(map[ids.Id]*ships.ShipOrders),
		Fleets:       make(map[ids.Id]*ships.Fleet),
		Templates:    make(OrderTemplateSet),
		Salvos:       make(map[ids.Id]*ships.MissileSalvo),
		Wrecks:       make(map[ids.Id]*ships.Wreck),
		Anomalies:    make(map[ids.Id]*procgen.Anomaly),
		Treaties:     make(map[ids.Id]*factions.Treaty),
		Events:       events.NewLog(maxEvents),
		ScoreHistory: make(map[ids.Id]map[int64]float64),
	}
}

// allocateId returns a fresh, never-before-seen Id and advances the
// allocator's cursor, per §4.B's allocate_id(state).
func (s *State) allocateId() ids.Id {
	return s.IdAlloc.Next()
}

// appendEvent stamps e with the next sequence number and pushes it into the
// log, keeping NextEventSeq in sync so a subsequent save/load round-trip
// never reissues a seq already used.
func (s *State) appendEvent(e events.Event) events.Event {
	recorded := s.Events.Append(e)
	if recorded.Seq >= s.NextEventSeq {
		s.NextEventSeq = recorded.Seq + 1
	}
	return recorded
}

// pruneFleets removes stale ship references, de-duplicates membership,
// repairs leaders, and erases empty fleets — §4.B's prune_fleets.
func (s *State) pruneFleets() {
	seen := make(map[ids.Id]ids.Id) // shipId -> fleetId (first owner wins)
	var toDelete []ids.Id
	keys := make([]ids.Id, 0, len(s.Fleets))
	for id := range s.Fleets {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	for _, fid := range keys {
		f := s.Fleets[fid]
		var kept []ids.Id
		for _, sid := range f.MemberIds {
			ship, ok := s.Ships[sid]
			if !ok || ship.FactionId != f.FactionId {
				continue
			}
			if owner, dup := seen[sid]; dup && owner != fid {
				continue
			}
			seen[sid] = fid
			kept = append(kept, sid)
		}
		f.MemberIds = kept
		if f.LeaderId != ids.Invalid {
			stillMember := false
			for _, sid := range kept {
				if sid == f.LeaderId {
					stillMember = true
					break
				}
			}
			if !stillMember {
				if len(kept) > 0 {
					f.LeaderId = kept[0]
				} else {
					f.LeaderId = ids.Invalid
				}
			}
		}
		if f.IsEmpty() {
			toDelete = append(toDelete, fid)
		}
	}
	for _, fid := range toDelete {
		delete(s.Fleets, fid)
	}
}

// fleetForShip returns the fleet a ship belongs to, if any.
func (s *State) fleetForShip(shipId ids.Id) (*ships.Fleet, bool) {
	keys := make([]ids.Id, 0, len(s.Fleets))
	for id := range s.Fleets {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	for _, fid := range keys {
		f := s.Fleets[fid]
		for _, sid := range f.MemberIds {
			if sid == shipId {
				return f, true
			}
		}
	}
	return nil, false
}

// removeShipEverywhere erases every reference site to a destroyed or
// scrapped ship: its system membership, its orders, its fleet membership,
// and every faction's contact — the cleanup sweep §9 describes for
// integer-handle destruction.
func (s *State) removeShipEverywhere(shipId ids.Id) {
	if ship, ok := s.Ships[shipId]; ok {
		if sys, ok := s.Systems[ship.SystemId]; ok {
			sys.RemoveShip(shipId)
		}
	}
	delete(s.Orders, shipId)
	if f, ok := s.fleetForShip(shipId); ok {
		f.RemoveMember(shipId)
	}
	for _, fid := range factionKeys(s.Factions) {
		delete(s.Factions[fid].Contacts, shipId)
	}
	delete(s.Ships, shipId)
}

func factionKeys(m map[ids.Id]*factions.Faction) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}

func systemKeys(m map[ids.Id]*galaxy.StarSystem) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}

func colonyKeys(m map[ids.Id]*colonies.Colony) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}

func shipKeys(m map[ids.Id]*ships.Ship) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	ids.Sort(keys)
	return keys
}
