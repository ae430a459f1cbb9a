package engine

import (
	"golang.org/x/time/rate"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/spatial"
)

// routeCacheKey is the lookup key for a memoized jump route, per §4.D.
type routeCacheKey struct {
	StartSystem       ids.Id
	FactionId         ids.Id
	GoalSystem        ids.Id
	RestrictFlag      bool
	DiscoveredVersion int64
	SurveyedVersion   int64
	TopologyVersion   int64
}

// routeCacheEntry is a memoized route: the ordered source-side jump point
// ids forming the path, plus its total ETA.
type routeCacheEntry struct {
	JumpPointIds []ids.Id
	EtaDays      float64
	Found        bool
}

// Engine owns State exclusively between public API calls and drives the
// tick pipeline (§5's "single-threaded cooperative" model — there is no
// concurrent access to anything below this type). Route cache and spatial
// indices are private to Engine, never exposed to callers, per §5's
// shared-resource policy.
type Engine struct {
	state   *State
	content *content.ContentDB
	config  Config

	// routeCache memoizes jump-route planning results; invalidated lazily
	// by bumping the relevant version counter and letting the next lookup
	// miss on an old key, rather than walking the cache to evict entries.
	routeCache map[routeCacheKey]routeCacheEntry

	discoveredVersion map[ids.Id]int64 // per-faction
	surveyedVersion   map[ids.Id]int64 // per-faction
	topologyVersion   int64

	// systemIndex is rebuilt once per tick per system touched, keyed by
	// system id, used by sensor sweeps and beam/missile target searches.
	systemIndex map[ids.Id]*spatial.Index2D

	// tickLimiter optionally paces AdvanceUntilEventHours to wall-clock
	// time; nil (the default) means unthrottled, as-fast-as-possible
	// advancement. See SetMaxTicksPerSecond.
	tickLimiter *rate.Limiter
}

// New constructs an Engine over a freshly generated/empty State, ready for
// a scenario setup pass (or a caller building state by hand) before the
// first advance_* call.
func New(db *content.ContentDB, cfg Config) *Engine {
	return &Engine{
		state:             NewState(cfg.MaxEvents),
		content:           db,
		config:            cfg,
		routeCache:        make(map[routeCacheKey]routeCacheEntry),
		discoveredVersion: make(map[ids.Id]int64),
		surveyedVersion:   make(map[ids.Id]int64),
		systemIndex:       make(map[ids.Id]*spatial.Index2D),
	}
}

// Load wraps an already-populated State (e.g. deserialized by a caller)
// into a fresh Engine, running the legacy-save backfill rules from §6.
func Load(state *State, db *content.ContentDB, cfg Config) *Engine {
	e := &Engine{
		state:             state,
		content:           db,
		config:            cfg,
		routeCache:        make(map[routeCacheKey]routeCacheEntry),
		discoveredVersion: make(map[ids.Id]int64),
		surveyedVersion:   make(map[ids.Id]int64),
		systemIndex:       make(map[ids.Id]*spatial.Index2D),
	}
	backfillLoadedState(state, cfg)
	return e
}

// Save returns the engine's current State for a caller to serialize. The
// returned pointer aliases the engine's live state; callers that want an
// isolated snapshot should serialize it immediately rather than holding
// onto it across further advance_* calls.
func (e *Engine) Save() *State {
	return e.state
}

// State returns a read-only borrow of the engine's state, per §6's
// `state()` query. Go has no const-reference mechanism, so this is
// enforced by convention: callers outside this package must not mutate
// the returned value.
func (e *Engine) State() *State {
	return e.state
}

// Content returns the engine's active content catalog.
func (e *Engine) Content() *content.ContentDB {
	return e.content
}

// Config returns the engine's active configuration.
func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) invalidateTopology() {
	e.topologyVersion++
}

func (e *Engine) invalidateDiscovered(factionId ids.Id) {
	e.discoveredVersion[factionId]++
}

func (e *Engine) invalidateSurveyed(factionId ids.Id) {
	e.surveyedVersion[factionId]++
}

func (e *Engine) indexForSystem(systemId ids.Id) *spatial.Index2D {
	idx, ok := e.systemIndex[systemId]
	if !ok {
		idx = spatial.NewIndex2D(spatial.DefaultCellSizeMkm)
		e.systemIndex[systemId] = idx
	}
	return idx
}

// rebuildSystemIndex repopulates the per-system spatial index from every
// ship currently in that system, called once per system at the top of
// each tick's sub-day pass before sensors/combat consult it.
func (e *Engine) rebuildSystemIndex(systemId ids.Id) *spatial.Index2D {
	idx := e.indexForSystem(systemId)
	positions := make(map[ids.Id]spatial.Point)
	sys, ok := e.state.Systems[systemId]
	if !ok {
		idx.Reset()
		return idx
	}
	for _, shipId := range sys.Ships {
		ship, ok := e.state.Ships[shipId]
		if !ok {
			continue
		}
		positions[shipId] = spatial.Point{X: ship.PositionX, Y: ship.PositionY}
	}
	idx.BuildFromPositions(positions)
	return idx
}
