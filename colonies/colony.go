// Package colonies models a faction's colonies: population, mineral
// stockpiles, installations, construction and shipyard queues, and ground
// forces. It re-grounds galaxyCore's buildings package (Building interface,
// bare-struct catalog, no business logic on the data types) onto
// Nebula4X's installation-count + queue model.
package colonies

import "github.com/masterblaster1999/Nebula4X-sub000/ids"

// ConstructionOrder is one entry in a colony's non-blocking construction
// queue (§4.E): an order that cannot currently pay its minerals is skipped
// rather than blocking subsequent orders in the same tick.
type ConstructionOrder struct {
	InstallationKey    string
	QuantityRemaining  int
	MineralsPaid       bool
	CPRemaining        float64
	AutoQueued         bool
}

// BuildOrder is one entry in a colony's shipyard queue.
type BuildOrder struct {
	DesignId       ids.Id
	TonsRemaining  float64
	RefitShipId    ids.Id // Invalid for a new hull
	AutoQueued     bool

	// Post-build metadata, applied once the order completes.
	AssignShipProfile string
	AssignFleetId     ids.Id
	RallyBodyId       ids.Id
}

// Condition is an active colony-wide status effect (e.g. unrest, plague,
// blockade) with a remaining duration and severity.
type Condition struct {
	Key            string
	RemainingDays  float64
	Severity       float64
}

// GroundForces tracks a colony's defensive troop strength separate from
// any ship-borne troop cargo.
type GroundForces struct {
	Strength      float64
	TrainingQueue float64 // troops-in-training, completes over time
}

// Colony is a faction's settlement on a body.
type Colony struct {
	Id        ids.Id
	BodyId    ids.Id
	FactionId ids.Id
	Name      string

	PopulationMillions float64

	Minerals         map[string]float64 // resource key -> stockpile tons
	MineralReserves  map[string]float64 // resource key -> keep-at-hand floor

	Installations      map[string]int // installation key -> count
	InstallationTargets map[string]int

	ConstructionQueue []ConstructionOrder
	ShipyardQueue     []BuildOrder

	TroopStrength float64
	Ground        GroundForces

	Conditions []Condition

	StabilityBase float64
}

// NewColony constructs an empty Colony with initialized maps.
func NewColony(id, bodyId, factionId ids.Id, name string) *Colony {
	return &Colony{
		Id:                  id,
		BodyId:              bodyId,
		FactionId:           factionId,
		Name:                name,
		Minerals:            make(map[string]float64),
		MineralReserves:     make(map[string]float64),
		Installations:       make(map[string]int),
		InstallationTargets: make(map[string]int),
		StabilityBase:       1.0,
	}
}

// ShipyardCount returns how many shipyard-capable installation units this
// colony has, summed across every installation key the caller flags as a
// shipyard (the installation catalog, not this package, knows which keys
// those are — callers pass the set in via isShipyard).
func (c *Colony) ShipyardCount(isShipyard func(key string) bool) int {
	total := 0
	for key, count := range c.Installations {
		if isShipyard(key) {
			total += count
		}
	}
	return total
}

// InstallationCount returns how many units of key this colony has built.
func (c *Colony) InstallationCount(key string) int {
	return c.Installations[key]
}

// AddMineral adds (or subtracts, if negative) tons of a mineral to the
// stockpile, never letting it go negative.
func (c *Colony) AddMineral(key string, tons float64) {
	v := c.Minerals[key] + tons
	if v < 0 {
		v = 0
	}
	c.Minerals[key] = v
}

// PruneCancelableAutoQueued removes not-yet-started auto-queued
// construction entries so the auto-build pass can trim back down to a
// lowered target without disturbing player-issued or already-started
// orders.
func (c *Colony) PruneCancelableAutoQueued(keep int) {
	kept := 0
	out := c.ConstructionQueue[:0]
	for _, o := range c.ConstructionQueue {
		if o.AutoQueued && !o.MineralsPaid && kept >= keep {
			continue
		}
		if o.AutoQueued && !o.MineralsPaid {
			kept++
		}
		out = append(out, o)
	}
	c.ConstructionQueue = out
}
