// Package engine is the top-level orchestrator: it owns State, drives the
// tick pipeline (§4.J), and exposes the between-tick API surface (§6) that
// wires together galaxy, ships, colonies, factions, sensors, combat, ai and
// procgen into one deterministic simulation.
package engine

// MiningScarcityConfig mirrors enable_mining_scarcity_priority.
type MiningScarcityConfig struct {
	Enabled    bool
	BufferDays float64
	NeedBoost  float64
}

// WreckConfig mirrors enable_wrecks.
type WreckConfig struct {
	Enabled             bool
	CargoSalvageFraction float64
	HullSalvageFraction  float64
	DecayDays            float64
}

// ShipHeatConfig mirrors enable_ship_heat.
type ShipHeatConfig struct {
	Enabled                          bool
	BaseCapacityPerMassTon           float64
	GenerationPerPowerUsePerDay      float64
	BaseDissipationPerMassTonPerDay  float64
	PenaltyStartFraction             float64
	PenaltyFullFraction              float64
	DamageThresholdFraction          float64
	DamageFractionPerDayAt200Pct     float64
	MinSpeedMultiplier               float64
	MinSensorMultiplier              float64
	MinWeaponMultiplier               float64
	MinShieldMultiplier               float64
	SignatureMultiplierPerFraction    float64
	SignatureMultiplierMax            float64
}

// ContractsConfig mirrors enable_contracts.
type ContractsConfig struct {
	Enabled                 bool
	MaxOffersPerFaction     int
	DailyNewOffersPerFaction int
	OfferExpiryDays         int64
	RewardBase              float64
	RewardPerHop            float64
	RewardPerRisk           float64
}

// CrewExperienceConfig mirrors enable_crew_experience.
type CrewExperienceConfig struct {
	Enabled                    bool
	InitialGradePoints         float64
	GradePointsCap             float64
	CombatGradePointsPerDamage float64
}

// BoardingConfig mirrors enable_boarding.
type BoardingConfig struct {
	Enabled                  bool
	RangeMkm                 float64
	MinAttackerTroops        float64
	TargetHPFraction         float64
	RequireShieldsDown       bool
	AttackerCasualtyFraction float64
	DefenderCasualtyFraction float64
	DefenseHPFactor          float64
	LogFailures              bool
}

// BeamHitChanceConfig mirrors enable_beam_hit_chance.
type BeamHitChanceConfig struct {
	Enabled                   bool
	Base                      float64
	Min                       float64
	RangePenaltyAtMax         float64
	TrackingRefAngPerDay      float64
	TrackingMinSensorRangeMkm float64
	TrackingRefSensorRangeMkm float64
	SignatureExponent         float64
}

// TerraformingConfig mirrors enable_terraforming.
type TerraformingConfig struct {
	Enabled               bool
	TempKPerPointDay      float64
	AtmPerPointDay        float64
	TempToleranceK        float64
	AtmTolerance          float64
	DuraniumPerPoint      float64
	NeutroniumPerPoint    float64
	SplitPointsBetweenAxes bool
	ScaleWithBodyMass      bool
}

// DynamicPOIConfig mirrors enable_dynamic_poi_spawns.
type DynamicPOIConfig struct {
	Enabled                           bool
	MaxAnomaliesTotal                 int
	MaxAnomaliesPerSystem             int
	MaxCachesTotal                    int
	MaxCachesPerSystem                int
	AnomalySpawnChancePerSystemPerDay float64
	CacheSpawnChancePerSystemPerDay   float64
}

// AutoFreightConfig mirrors enable_auto_freight.
type AutoFreightConfig struct {
	Enabled                bool
	MultiMineral           bool
	MinTransferTons        float64
	MaxTakeFractionOfSurplus float64
}

// AutoTankerConfig tunes the per-ship auto-tanker automation loop (§4.H).
type AutoTankerConfig struct {
	Enabled          bool
	RequestThreshold float64
}

// MiningConfig tunes the generic mining-capacity distribution pass outside
// of scarcity arbitration (the per-colony request generation of §4.E).
type MiningConfig struct {
	DefaultMiningRateTonsPerDay float64
}

// HabitabilityConfig gates whether colonization scoring and terraforming
// account for a body's habitability score (enable_habitability).
type HabitabilityConfig struct {
	Enabled bool
}

// Config is the full engine configuration surface named in §6. Every
// enable_* knob is its own sub-struct so a disabled feature's tunables
// still round-trip through save/load without special-casing.
type Config struct {
	EnableCombat         bool
	EnableSubdayEconomy  bool
	EmitDailyEvents      bool
	RestrictToDiscoveredDefault bool

	Habitability     HabitabilityConfig
	MiningScarcity   MiningScarcityConfig
	Mining           MiningConfig
	Wrecks           WreckConfig
	ShipHeat         ShipHeatConfig
	Contracts        ContractsConfig
	CrewExperience   CrewExperienceConfig
	Boarding         BoardingConfig
	BeamHitChance    BeamHitChanceConfig
	Terraforming     TerraformingConfig
	DynamicPOI       DynamicPOIConfig
	AutoFreight      AutoFreightConfig
	AutoTanker       AutoTankerConfig

	// ScenarioTag stamps a scenario-run identifier (typically a
	// google/uuid string) into save files and log lines so operators can
	// tell apart concurrently-run scenarios sharing the same binary.
	ScenarioTag string

	// JumpTransferCostMkm is the single configurable coefficient applied
	// once at jump completion, per §9's open question: fuel debited is
	// design.FuelUsePerMkm * JumpTransferCostMkm.
	JumpTransferCostMkm float64

	// JumpDelayDays is the fixed transit delay folded into every jump edge
	// weight during route planning (§4.D's "travel_time(...) + jump_delay").
	JumpDelayDays float64

	// MaxEvents is the event log's retention cap (events.NewLog).
	MaxEvents int

	// ArrivalEpsilonMkm is how close a ship must be to a target point
	// before §4.D's per-tick movement snaps it exactly onto the target.
	ArrivalEpsilonMkm float64

	// MaxContactAgeDays prunes contacts older than this (sensors.PruneContacts).
	MaxContactAgeDays int64

	// MaxSignatureOverConfig bounds the sensor query radius expansion
	// (sensors.Sweep's maxSigOverConfig).
	MaxSignatureOverConfig float64
}

// DefaultConfig returns a Config with the engine's default tunables, used
// throughout this repo's tests and scenario fixtures; config.Load fills any
// field a config file or environment leaves unset from these values.
func DefaultConfig() Config {
	return Config{
		EnableCombat:        true,
		EnableSubdayEconomy: true,
		EmitDailyEvents:     true,
		Habitability:        HabitabilityConfig{Enabled: true},
		MiningScarcity:      MiningScarcityConfig{Enabled: true, BufferDays: 5, NeedBoost: 1.5},
		Mining:              MiningConfig{DefaultMiningRateTonsPerDay: 10},
		Wrecks:              WreckConfig{Enabled: true, CargoSalvageFraction: 0.75, HullSalvageFraction: 0.2, DecayDays: 180},
		ShipHeat:            ShipHeatConfig{Enabled: false},
		Contracts:           ContractsConfig{Enabled: false},
		CrewExperience:      CrewExperienceConfig{Enabled: true, GradePointsCap: 10000, CombatGradePointsPerDamage: 0.05},
		Boarding:            BoardingConfig{Enabled: true, RangeMkm: 0.01, MinAttackerTroops: 1, TargetHPFraction: 0.25, DefenseHPFactor: 0.01, AttackerCasualtyFraction: 0.2, DefenderCasualtyFraction: 0.5},
		BeamHitChance:       BeamHitChanceConfig{Enabled: true, Base: 0.6, Min: 0.02, RangePenaltyAtMax: 0.5, TrackingRefAngPerDay: 50, TrackingMinSensorRangeMkm: 1, TrackingRefSensorRangeMkm: 10, SignatureExponent: 0.5},
		Terraforming:        TerraformingConfig{Enabled: false, DuraniumPerPoint: 50, NeutroniumPerPoint: 10},
		DynamicPOI:          DynamicPOIConfig{Enabled: true, MaxAnomaliesTotal: 40, MaxAnomaliesPerSystem: 2, MaxCachesTotal: 20, MaxCachesPerSystem: 1, AnomalySpawnChancePerSystemPerDay: 0.02, CacheSpawnChancePerSystemPerDay: 0.01},
		AutoFreight:         AutoFreightConfig{Enabled: true, MinTransferTons: 5, MaxTakeFractionOfSurplus: 0.9},
		AutoTanker:          AutoTankerConfig{Enabled: true, RequestThreshold: 0.3},
		JumpTransferCostMkm: 5,
		JumpDelayDays:       0.05,
		MaxEvents:           2000,
		ArrivalEpsilonMkm:   1e-4,
		MaxContactAgeDays:   180,
		MaxSignatureOverConfig: 3.0,
	}
}
