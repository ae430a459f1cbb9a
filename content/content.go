// Package content holds the static, externally-authored catalogs the
// engine treats as read-only reference data: components, installations,
// technologies, and raw resources. Loading catalogs from source files is
// explicitly out of the engine's scope (spec §1) — content is always handed
// to the engine as an already-built ContentDB value.
package content

import "github.com/google/uuid"

// ComponentKey names a ship component definition (e.g. "engine_ion_1").
type ComponentKey string

// InstallationKey names a colony installation definition (e.g. "mine_auto_1").
type InstallationKey string

// TechKey names a technology definition (e.g. "automation_1").
type TechKey string

// ResourceKey names a raw mineral resource (e.g. "Duranium").
type ResourceKey string

// OutputClass is the category an output-affecting tech effect applies to.
type OutputClass string

const (
	OutputMining        OutputClass = "mining"
	OutputIndustry      OutputClass = "industry"
	OutputResearch      OutputClass = "research"
	OutputConstruction  OutputClass = "construction"
	OutputShipyard      OutputClass = "shipyard"
	OutputTerraforming  OutputClass = "terraforming"
	OutputTroopTraining OutputClass = "troop_training"
	OutputAll           OutputClass = "all"
)

// Effect is an unlock or multiplier granted by researching a tech.
type Effect struct {
	UnlocksComponent    ComponentKey
	UnlocksInstallation InstallationKey
	OutputBonusAdditive float64     // faction_output_bonus
	OutputMultiplier    float64     // faction_output_multiplier, 0 = not set
	Class               OutputClass
}

// TechDef is one researchable technology.
type TechDef struct {
	Key      TechKey
	Name     string
	Cost     float64 // research points required
	Prereqs  []TechKey
	Effects  []Effect
}

// ComponentDef is one ship component's stat contribution. Ship designs are
// a list of ComponentKeys; apply_design_to_ship (ships package) folds these
// together to derive a design's aggregate stats.
type ComponentDef struct {
	Key                ComponentKey
	Name               string
	MassTons           float64
	PowerDrawMW        float64
	ReactorOutputMW    float64
	SpeedKmS           float64
	SensorRangeMkm     float64
	CargoTons          float64
	CargoMiningRate    float64
	WeaponDamage       float64
	WeaponRangeMkm     float64
	IsBeamWeapon       bool
	MissileDamage      float64
	MissileSpeedKmS    float64
	MissileLaunchers   int
	MissileAmmoPerTube int
	MissileReloadDays  float64
	PDDamagePerDay      float64
	PDRangeMkm          float64
	MaxHP              float64
	MaxShields         float64
	ShieldRegenPerDay  float64
	SignatureMultiplier float64
	FuelCapacityTons   float64
	FuelUsePerMkm      float64
	ColonistCapacity   float64
	TroopCapacity      float64
}

// InstallationDef describes a colony building: its construction cost,
// input/output chain, and any static contribution (sensor range, weapon
// damage for a defense battery, research/construction points per day).
type InstallationDef struct {
	Key                 InstallationKey
	Name                string
	BuildCostPerUnit    map[ResourceKey]float64
	ConstructionPoints  float64 // total cp_remaining for one unit
	InputsPerDay        map[ResourceKey]float64
	OutputsPerDay       map[ResourceKey]float64
	IsMiningInstallation bool
	ResearchPerDay      float64
	ConstructionCPPerDay float64
	SensorRangeMkm      float64
	WeaponDamagePerDay  float64
	WeaponRangeMkm      float64
	ShipyardBaseRateTonsPerDay float64
	IsShipyard          bool
}

// ResourceDef describes a raw mineral resource's shipyard build-cost
// fallback weighting, used when a wreck's cargo has no matching design.
type ResourceDef struct {
	Key              ResourceKey
	Name             string
	SalvageFallback  float64
}

// ContentDB bundles every catalog the engine needs. A single value is
// shared read-only across the whole simulation; reload_content_db
// (engine package) swaps it out between ticks, never during one.
type ContentDB struct {
	Techs          map[TechKey]TechDef
	Components     map[ComponentKey]ComponentDef
	Installations  map[InstallationKey]InstallationDef
	Resources      map[ResourceKey]ResourceDef
	// SourceTag correlates a loaded catalog snapshot with external logs;
	// stamped once at load time, never consulted by simulation logic.
	SourceTag string
}

// New builds an empty ContentDB with a freshly stamped SourceTag.
func New() *ContentDB {
	return &ContentDB{
		Techs:         make(map[TechKey]TechDef),
		Components:    make(map[ComponentKey]ComponentDef),
		Installations: make(map[InstallationKey]InstallationDef),
		Resources:     make(map[ResourceKey]ResourceDef),
		SourceTag:     uuid.NewString(),
	}
}

// TechKnown reports whether key names a tech this catalog actually defines;
// callers use this to drop unknown tech ids from a faction's research
// queue without panicking on a stale reference.
func (c *ContentDB) TechKnown(key TechKey) bool {
	_, ok := c.Techs[key]
	return ok
}

// PrerequisitesSatisfied reports whether every prerequisite of key is
// present in known (already-researched techs).
func (c *ContentDB) PrerequisitesSatisfied(key TechKey, known map[TechKey]bool) bool {
	def, ok := c.Techs[key]
	if !ok {
		return false
	}
	for _, p := range def.Prereqs {
		if !known[p] {
			return false
		}
	}
	return true
}
