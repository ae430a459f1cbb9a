// Package config loads an engine.Config from a YAML file overlaid with
// NEBULA4X_-prefixed environment variables, in the shape of
// acdtunes-spacetraders/gobot/internal/infrastructure/config: Load reads a
// file if present, lets environment variables override it, applies
// defaults from engine.DefaultConfig, then validates with
// go-playground/validator. Programmatic callers may skip this package
// entirely and build an engine.Config literal directly — this is a
// convenience load path for cmd/nebula4xctl, not a requirement of the
// engine API.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/masterblaster1999/Nebula4X-sub000/engine"
)

// FileConfig is the on-disk/env-var shape of engine.Config. Every fraction
// and day-count field carries a validate tag so a malformed scenario file
// fails fast at load time instead of producing silently-wrong simulation
// behavior.
type FileConfig struct {
	EnableCombat                bool `mapstructure:"enable_combat"`
	EnableSubdayEconomy         bool `mapstructure:"enable_subday_economy"`
	EmitDailyEvents             bool `mapstructure:"emit_daily_events"`
	RestrictToDiscoveredDefault bool `mapstructure:"restrict_to_discovered_default"`

	HabitabilityEnabled bool `mapstructure:"habitability_enabled"`

	MiningScarcityEnabled    bool    `mapstructure:"mining_scarcity_enabled"`
	MiningScarcityBufferDays float64 `mapstructure:"mining_scarcity_buffer_days" validate:"gte=0"`
	MiningScarcityNeedBoost  float64 `mapstructure:"mining_scarcity_need_boost" validate:"gte=0"`

	MiningDefaultRateTonsPerDay float64 `mapstructure:"mining_default_rate_tons_per_day" validate:"gte=0"`

	WrecksEnabled              bool    `mapstructure:"wrecks_enabled"`
	WrecksCargoSalvageFraction float64 `mapstructure:"wrecks_cargo_salvage_fraction" validate:"gte=0,lte=1"`
	WrecksHullSalvageFraction  float64 `mapstructure:"wrecks_hull_salvage_fraction" validate:"gte=0,lte=1"`
	WrecksDecayDays            float64 `mapstructure:"wrecks_decay_days" validate:"gte=0"`

	ShipHeatEnabled bool `mapstructure:"ship_heat_enabled"`

	BeamHitChanceEnabled                   bool    `mapstructure:"beam_hit_chance_enabled"`
	BeamHitChanceBase                      float64 `mapstructure:"beam_hit_chance_base" validate:"gte=0,lte=1"`
	BeamHitChanceMin                       float64 `mapstructure:"beam_hit_chance_min" validate:"gte=0,lte=1"`
	BeamHitChanceRangePenaltyAtMax         float64 `mapstructure:"beam_hit_chance_range_penalty_at_max" validate:"gte=0,lte=1"`
	BeamHitChanceTrackingRefAngPerDay      float64 `mapstructure:"beam_hit_chance_tracking_ref_ang_per_day" validate:"gte=0"`
	BeamHitChanceTrackingMinSensorRangeMkm float64 `mapstructure:"beam_hit_chance_tracking_min_sensor_range_mkm" validate:"gte=0"`
	BeamHitChanceTrackingRefSensorRangeMkm float64 `mapstructure:"beam_hit_chance_tracking_ref_sensor_range_mkm" validate:"gte=0"`
	BeamHitChanceSignatureExponent         float64 `mapstructure:"beam_hit_chance_signature_exponent" validate:"gte=0"`

	ScenarioTag string `mapstructure:"scenario_tag"`

	ContractsEnabled                 bool    `mapstructure:"contracts_enabled"`
	ContractsMaxOffersPerFaction     int     `mapstructure:"contracts_max_offers_per_faction" validate:"gte=0"`
	ContractsDailyNewOffersPerFaction int    `mapstructure:"contracts_daily_new_offers_per_faction" validate:"gte=0"`
	ContractsOfferExpiryDays         int64   `mapstructure:"contracts_offer_expiry_days" validate:"gte=0"`
	ContractsRewardBase              float64 `mapstructure:"contracts_reward_base" validate:"gte=0"`
	ContractsRewardPerHop            float64 `mapstructure:"contracts_reward_per_hop" validate:"gte=0"`
	ContractsRewardPerRisk           float64 `mapstructure:"contracts_reward_per_risk" validate:"gte=0"`

	CrewExperienceEnabled                    bool    `mapstructure:"crew_experience_enabled"`
	CrewExperienceInitialGradePoints         float64 `mapstructure:"crew_experience_initial_grade_points" validate:"gte=0"`
	CrewExperienceGradePointsCap             float64 `mapstructure:"crew_experience_grade_points_cap" validate:"gte=0"`
	CrewExperienceCombatGradePointsPerDamage float64 `mapstructure:"crew_experience_combat_grade_points_per_damage" validate:"gte=0"`

	BoardingEnabled                  bool    `mapstructure:"boarding_enabled"`
	BoardingRangeMkm                 float64 `mapstructure:"boarding_range_mkm" validate:"gte=0"`
	BoardingMinAttackerTroops        float64 `mapstructure:"boarding_min_attacker_troops" validate:"gte=0"`
	BoardingTargetHPFraction         float64 `mapstructure:"boarding_target_hp_fraction" validate:"gte=0,lte=1"`
	BoardingRequireShieldsDown       bool    `mapstructure:"boarding_require_shields_down"`
	BoardingAttackerCasualtyFraction float64 `mapstructure:"boarding_attacker_casualty_fraction" validate:"gte=0,lte=1"`
	BoardingDefenderCasualtyFraction float64 `mapstructure:"boarding_defender_casualty_fraction" validate:"gte=0,lte=1"`
	BoardingDefenseHPFactor          float64 `mapstructure:"boarding_defense_hp_factor" validate:"gte=0"`
	BoardingLogFailures              bool    `mapstructure:"boarding_log_failures"`

	TerraformingEnabled                bool    `mapstructure:"terraforming_enabled"`
	TerraformingTempKPerPointDay       float64 `mapstructure:"terraforming_temp_k_per_point_day" validate:"gte=0"`
	TerraformingAtmPerPointDay         float64 `mapstructure:"terraforming_atm_per_point_day" validate:"gte=0"`
	TerraformingTempToleranceK         float64 `mapstructure:"terraforming_temp_tolerance_k" validate:"gte=0"`
	TerraformingAtmTolerance           float64 `mapstructure:"terraforming_atm_tolerance" validate:"gte=0"`
	TerraformingDuraniumPerPoint       float64 `mapstructure:"terraforming_duranium_per_point" validate:"gte=0"`
	TerraformingNeutroniumPerPoint     float64 `mapstructure:"terraforming_neutronium_per_point" validate:"gte=0"`
	TerraformingSplitPointsBetweenAxes bool    `mapstructure:"terraforming_split_points_between_axes"`
	TerraformingScaleWithBodyMass      bool    `mapstructure:"terraforming_scale_with_body_mass"`

	DynamicPOIEnabled                           bool    `mapstructure:"dynamic_poi_enabled"`
	DynamicPOIMaxAnomaliesTotal                 int     `mapstructure:"dynamic_poi_max_anomalies_total" validate:"gte=0"`
	DynamicPOIMaxAnomaliesPerSystem             int     `mapstructure:"dynamic_poi_max_anomalies_per_system" validate:"gte=0"`
	DynamicPOIMaxCachesTotal                    int     `mapstructure:"dynamic_poi_max_caches_total" validate:"gte=0"`
	DynamicPOIMaxCachesPerSystem                int     `mapstructure:"dynamic_poi_max_caches_per_system" validate:"gte=0"`
	DynamicPOIAnomalySpawnChancePerSystemPerDay float64 `mapstructure:"dynamic_poi_anomaly_spawn_chance_per_system_per_day" validate:"gte=0,lte=1"`
	DynamicPOICacheSpawnChancePerSystemPerDay   float64 `mapstructure:"dynamic_poi_cache_spawn_chance_per_system_per_day" validate:"gte=0,lte=1"`

	AutoFreightEnabled                  bool    `mapstructure:"auto_freight_enabled"`
	AutoFreightMultiMineral             bool    `mapstructure:"auto_freight_multi_mineral"`
	AutoFreightMinTransferTons          float64 `mapstructure:"auto_freight_min_transfer_tons" validate:"gte=0"`
	AutoFreightMaxTakeFractionOfSurplus float64 `mapstructure:"auto_freight_max_take_fraction_of_surplus" validate:"gte=0,lte=1"`

	AutoTankerEnabled          bool    `mapstructure:"auto_tanker_enabled"`
	AutoTankerRequestThreshold float64 `mapstructure:"auto_tanker_request_threshold" validate:"gte=0,lte=1"`

	JumpTransferCostMkm float64 `mapstructure:"jump_transfer_cost_mkm" validate:"gte=0"`
	JumpDelayDays       float64 `mapstructure:"jump_delay_days" validate:"gte=0"`

	MaxEvents              int     `mapstructure:"max_events" validate:"gte=1"`
	ArrivalEpsilonMkm      float64 `mapstructure:"arrival_epsilon_mkm" validate:"gt=0"`
	MaxContactAgeDays      int64   `mapstructure:"max_contact_age_days" validate:"gte=0"`
	MaxSignatureOverConfig float64 `mapstructure:"max_signature_over_config" validate:"gte=0"`
}

// fromEngineDefaults seeds a FileConfig from engine.DefaultConfig, so a
// scenario file only needs to mention the knobs it wants to override.
func fromEngineDefaults() FileConfig {
	d := engine.DefaultConfig()
	return FileConfig{
		EnableCombat:                d.EnableCombat,
		EnableSubdayEconomy:         d.EnableSubdayEconomy,
		EmitDailyEvents:             d.EmitDailyEvents,
		RestrictToDiscoveredDefault: d.RestrictToDiscoveredDefault,

		HabitabilityEnabled: d.Habitability.Enabled,

		MiningScarcityEnabled:    d.MiningScarcity.Enabled,
		MiningScarcityBufferDays: d.MiningScarcity.BufferDays,
		MiningScarcityNeedBoost:  d.MiningScarcity.NeedBoost,

		MiningDefaultRateTonsPerDay: d.Mining.DefaultMiningRateTonsPerDay,

		WrecksEnabled:              d.Wrecks.Enabled,
		WrecksCargoSalvageFraction: d.Wrecks.CargoSalvageFraction,
		WrecksHullSalvageFraction:  d.Wrecks.HullSalvageFraction,
		WrecksDecayDays:            d.Wrecks.DecayDays,

		ShipHeatEnabled: d.ShipHeat.Enabled,

		BeamHitChanceEnabled:                   d.BeamHitChance.Enabled,
		BeamHitChanceBase:                      d.BeamHitChance.Base,
		BeamHitChanceMin:                       d.BeamHitChance.Min,
		BeamHitChanceRangePenaltyAtMax:         d.BeamHitChance.RangePenaltyAtMax,
		BeamHitChanceTrackingRefAngPerDay:      d.BeamHitChance.TrackingRefAngPerDay,
		BeamHitChanceTrackingMinSensorRangeMkm: d.BeamHitChance.TrackingMinSensorRangeMkm,
		BeamHitChanceTrackingRefSensorRangeMkm: d.BeamHitChance.TrackingRefSensorRangeMkm,
		BeamHitChanceSignatureExponent:         d.BeamHitChance.SignatureExponent,

		ScenarioTag: d.ScenarioTag,

		ContractsEnabled:                  d.Contracts.Enabled,
		ContractsMaxOffersPerFaction:      d.Contracts.MaxOffersPerFaction,
		ContractsDailyNewOffersPerFaction: d.Contracts.DailyNewOffersPerFaction,
		ContractsOfferExpiryDays:          d.Contracts.OfferExpiryDays,
		ContractsRewardBase:               d.Contracts.RewardBase,
		ContractsRewardPerHop:             d.Contracts.RewardPerHop,
		ContractsRewardPerRisk:            d.Contracts.RewardPerRisk,

		CrewExperienceEnabled:                    d.CrewExperience.Enabled,
		CrewExperienceInitialGradePoints:         d.CrewExperience.InitialGradePoints,
		CrewExperienceGradePointsCap:             d.CrewExperience.GradePointsCap,
		CrewExperienceCombatGradePointsPerDamage: d.CrewExperience.CombatGradePointsPerDamage,

		BoardingEnabled:                  d.Boarding.Enabled,
		BoardingRangeMkm:                 d.Boarding.RangeMkm,
		BoardingMinAttackerTroops:        d.Boarding.MinAttackerTroops,
		BoardingTargetHPFraction:         d.Boarding.TargetHPFraction,
		BoardingRequireShieldsDown:       d.Boarding.RequireShieldsDown,
		BoardingAttackerCasualtyFraction: d.Boarding.AttackerCasualtyFraction,
		BoardingDefenderCasualtyFraction: d.Boarding.DefenderCasualtyFraction,
		BoardingDefenseHPFactor:          d.Boarding.DefenseHPFactor,
		BoardingLogFailures:              d.Boarding.LogFailures,

		TerraformingEnabled:                d.Terraforming.Enabled,
		TerraformingTempKPerPointDay:       d.Terraforming.TempKPerPointDay,
		TerraformingAtmPerPointDay:         d.Terraforming.AtmPerPointDay,
		TerraformingTempToleranceK:         d.Terraforming.TempToleranceK,
		TerraformingAtmTolerance:           d.Terraforming.AtmTolerance,
		TerraformingDuraniumPerPoint:       d.Terraforming.DuraniumPerPoint,
		TerraformingNeutroniumPerPoint:     d.Terraforming.NeutroniumPerPoint,
		TerraformingSplitPointsBetweenAxes: d.Terraforming.SplitPointsBetweenAxes,
		TerraformingScaleWithBodyMass:      d.Terraforming.ScaleWithBodyMass,

		DynamicPOIEnabled:                           d.DynamicPOI.Enabled,
		DynamicPOIMaxAnomaliesTotal:                 d.DynamicPOI.MaxAnomaliesTotal,
		DynamicPOIMaxAnomaliesPerSystem:             d.DynamicPOI.MaxAnomaliesPerSystem,
		DynamicPOIMaxCachesTotal:                    d.DynamicPOI.MaxCachesTotal,
		DynamicPOIMaxCachesPerSystem:                d.DynamicPOI.MaxCachesPerSystem,
		DynamicPOIAnomalySpawnChancePerSystemPerDay: d.DynamicPOI.AnomalySpawnChancePerSystemPerDay,
		DynamicPOICacheSpawnChancePerSystemPerDay:   d.DynamicPOI.CacheSpawnChancePerSystemPerDay,

		AutoFreightEnabled:                  d.AutoFreight.Enabled,
		AutoFreightMultiMineral:             d.AutoFreight.MultiMineral,
		AutoFreightMinTransferTons:          d.AutoFreight.MinTransferTons,
		AutoFreightMaxTakeFractionOfSurplus: d.AutoFreight.MaxTakeFractionOfSurplus,

		AutoTankerEnabled:          d.AutoTanker.Enabled,
		AutoTankerRequestThreshold: d.AutoTanker.RequestThreshold,

		JumpTransferCostMkm: d.JumpTransferCostMkm,
		JumpDelayDays:       d.JumpDelayDays,

		MaxEvents:              d.MaxEvents,
		ArrivalEpsilonMkm:      d.ArrivalEpsilonMkm,
		MaxContactAgeDays:      d.MaxContactAgeDays,
		MaxSignatureOverConfig: d.MaxSignatureOverConfig,
	}
}

// ToEngineConfig folds a FileConfig back into the nested shape
// engine.Config actually uses.
func (f FileConfig) ToEngineConfig() engine.Config {
	return engine.Config{
		EnableCombat:                f.EnableCombat,
		EnableSubdayEconomy:         f.EnableSubdayEconomy,
		EmitDailyEvents:             f.EmitDailyEvents,
		RestrictToDiscoveredDefault: f.RestrictToDiscoveredDefault,

		Habitability: engine.HabitabilityConfig{Enabled: f.HabitabilityEnabled},

		MiningScarcity: engine.MiningScarcityConfig{
			Enabled:    f.MiningScarcityEnabled,
			BufferDays: f.MiningScarcityBufferDays,
			NeedBoost:  f.MiningScarcityNeedBoost,
		},
		Mining: engine.MiningConfig{DefaultMiningRateTonsPerDay: f.MiningDefaultRateTonsPerDay},
		Wrecks: engine.WreckConfig{
			Enabled:              f.WrecksEnabled,
			CargoSalvageFraction: f.WrecksCargoSalvageFraction,
			HullSalvageFraction:  f.WrecksHullSalvageFraction,
			DecayDays:            f.WrecksDecayDays,
		},
		ShipHeat: engine.ShipHeatConfig{Enabled: f.ShipHeatEnabled},
		BeamHitChance: engine.BeamHitChanceConfig{
			Enabled:                   f.BeamHitChanceEnabled,
			Base:                      f.BeamHitChanceBase,
			Min:                       f.BeamHitChanceMin,
			RangePenaltyAtMax:         f.BeamHitChanceRangePenaltyAtMax,
			TrackingRefAngPerDay:      f.BeamHitChanceTrackingRefAngPerDay,
			TrackingMinSensorRangeMkm: f.BeamHitChanceTrackingMinSensorRangeMkm,
			TrackingRefSensorRangeMkm: f.BeamHitChanceTrackingRefSensorRangeMkm,
			SignatureExponent:         f.BeamHitChanceSignatureExponent,
		},
		ScenarioTag: f.ScenarioTag,
		Contracts: engine.ContractsConfig{
			Enabled:                  f.ContractsEnabled,
			MaxOffersPerFaction:      f.ContractsMaxOffersPerFaction,
			DailyNewOffersPerFaction: f.ContractsDailyNewOffersPerFaction,
			OfferExpiryDays:          f.ContractsOfferExpiryDays,
			RewardBase:               f.ContractsRewardBase,
			RewardPerHop:             f.ContractsRewardPerHop,
			RewardPerRisk:            f.ContractsRewardPerRisk,
		},
		CrewExperience: engine.CrewExperienceConfig{
			Enabled:                    f.CrewExperienceEnabled,
			InitialGradePoints:         f.CrewExperienceInitialGradePoints,
			GradePointsCap:             f.CrewExperienceGradePointsCap,
			CombatGradePointsPerDamage: f.CrewExperienceCombatGradePointsPerDamage,
		},
		Boarding: engine.BoardingConfig{
			Enabled:                  f.BoardingEnabled,
			RangeMkm:                 f.BoardingRangeMkm,
			MinAttackerTroops:        f.BoardingMinAttackerTroops,
			TargetHPFraction:         f.BoardingTargetHPFraction,
			RequireShieldsDown:       f.BoardingRequireShieldsDown,
			AttackerCasualtyFraction: f.BoardingAttackerCasualtyFraction,
			DefenderCasualtyFraction: f.BoardingDefenderCasualtyFraction,
			DefenseHPFactor:          f.BoardingDefenseHPFactor,
			LogFailures:              f.BoardingLogFailures,
		},
		Terraforming: engine.TerraformingConfig{
			Enabled:                f.TerraformingEnabled,
			TempKPerPointDay:       f.TerraformingTempKPerPointDay,
			AtmPerPointDay:         f.TerraformingAtmPerPointDay,
			TempToleranceK:         f.TerraformingTempToleranceK,
			AtmTolerance:           f.TerraformingAtmTolerance,
			DuraniumPerPoint:       f.TerraformingDuraniumPerPoint,
			NeutroniumPerPoint:     f.TerraformingNeutroniumPerPoint,
			SplitPointsBetweenAxes: f.TerraformingSplitPointsBetweenAxes,
			ScaleWithBodyMass:      f.TerraformingScaleWithBodyMass,
		},
		DynamicPOI: engine.DynamicPOIConfig{
			Enabled:                           f.DynamicPOIEnabled,
			MaxAnomaliesTotal:                 f.DynamicPOIMaxAnomaliesTotal,
			MaxAnomaliesPerSystem:             f.DynamicPOIMaxAnomaliesPerSystem,
			MaxCachesTotal:                    f.DynamicPOIMaxCachesTotal,
			MaxCachesPerSystem:                f.DynamicPOIMaxCachesPerSystem,
			AnomalySpawnChancePerSystemPerDay: f.DynamicPOIAnomalySpawnChancePerSystemPerDay,
			CacheSpawnChancePerSystemPerDay:   f.DynamicPOICacheSpawnChancePerSystemPerDay,
		},
		AutoFreight: engine.AutoFreightConfig{
			Enabled:                  f.AutoFreightEnabled,
			MultiMineral:             f.AutoFreightMultiMineral,
			MinTransferTons:          f.AutoFreightMinTransferTons,
			MaxTakeFractionOfSurplus: f.AutoFreightMaxTakeFractionOfSurplus,
		},
		AutoTanker: engine.AutoTankerConfig{
			Enabled:          f.AutoTankerEnabled,
			RequestThreshold: f.AutoTankerRequestThreshold,
		},

		JumpTransferCostMkm:    f.JumpTransferCostMkm,
		JumpDelayDays:          f.JumpDelayDays,
		MaxEvents:              f.MaxEvents,
		ArrivalEpsilonMkm:      f.ArrivalEpsilonMkm,
		MaxContactAgeDays:      f.MaxContactAgeDays,
		MaxSignatureOverConfig: f.MaxSignatureOverConfig,
	}
}

// Load reads path (if non-empty and present) as YAML, overlays
// NEBULA4X_-prefixed environment variables, fills in any unset field from
// engine.DefaultConfig, validates the result, and returns the resulting
// engine.Config.
func Load(path string) (engine.Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nebula4x")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix("NEBULA4X")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := fromEngineDefaults()
	setViperDefaults(v, defaults)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return engine.Config{}, fmt.Errorf("nebula4x config: read config file: %w", err)
		}
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return engine.Config{}, fmt.Errorf("nebula4x config: unmarshal: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return engine.Config{}, err
	}

	if cfg.ScenarioTag == "" {
		cfg.ScenarioTag = uuid.NewString()
	}

	return cfg.ToEngineConfig(), nil
}

// setViperDefaults seeds viper's default layer from an already-built
// FileConfig, so keys absent from both the file and the environment still
// resolve to engine.DefaultConfig's values rather than Go zero values.
func setViperDefaults(v *viper.Viper, d FileConfig) {
	v.SetDefault("enable_combat", d.EnableCombat)
	v.SetDefault("enable_subday_economy", d.EnableSubdayEconomy)
	v.SetDefault("emit_daily_events", d.EmitDailyEvents)
	v.SetDefault("restrict_to_discovered_default", d.RestrictToDiscoveredDefault)
	v.SetDefault("habitability_enabled", d.HabitabilityEnabled)
	v.SetDefault("mining_scarcity_enabled", d.MiningScarcityEnabled)
	v.SetDefault("mining_scarcity_buffer_days", d.MiningScarcityBufferDays)
	v.SetDefault("mining_scarcity_need_boost", d.MiningScarcityNeedBoost)
	v.SetDefault("mining_default_rate_tons_per_day", d.MiningDefaultRateTonsPerDay)
	v.SetDefault("wrecks_enabled", d.WrecksEnabled)
	v.SetDefault("wrecks_cargo_salvage_fraction", d.WrecksCargoSalvageFraction)
	v.SetDefault("wrecks_hull_salvage_fraction", d.WrecksHullSalvageFraction)
	v.SetDefault("wrecks_decay_days", d.WrecksDecayDays)
	v.SetDefault("ship_heat_enabled", d.ShipHeatEnabled)
	v.SetDefault("beam_hit_chance_enabled", d.BeamHitChanceEnabled)
	v.SetDefault("beam_hit_chance_base", d.BeamHitChanceBase)
	v.SetDefault("beam_hit_chance_min", d.BeamHitChanceMin)
	v.SetDefault("beam_hit_chance_range_penalty_at_max", d.BeamHitChanceRangePenaltyAtMax)
	v.SetDefault("beam_hit_chance_tracking_ref_ang_per_day", d.BeamHitChanceTrackingRefAngPerDay)
	v.SetDefault("beam_hit_chance_tracking_min_sensor_range_mkm", d.BeamHitChanceTrackingMinSensorRangeMkm)
	v.SetDefault("beam_hit_chance_tracking_ref_sensor_range_mkm", d.BeamHitChanceTrackingRefSensorRangeMkm)
	v.SetDefault("beam_hit_chance_signature_exponent", d.BeamHitChanceSignatureExponent)
	v.SetDefault("scenario_tag", d.ScenarioTag)
	v.SetDefault("contracts_enabled", d.ContractsEnabled)
	v.SetDefault("contracts_max_offers_per_faction", d.ContractsMaxOffersPerFaction)
	v.SetDefault("contracts_daily_new_offers_per_faction", d.ContractsDailyNewOffersPerFaction)
	v.SetDefault("contracts_offer_expiry_days", d.ContractsOfferExpiryDays)
	v.SetDefault("contracts_reward_base", d.ContractsRewardBase)
	v.SetDefault("contracts_reward_per_hop", d.ContractsRewardPerHop)
	v.SetDefault("contracts_reward_per_risk", d.ContractsRewardPerRisk)
	v.SetDefault("crew_experience_enabled", d.CrewExperienceEnabled)
	v.SetDefault("crew_experience_initial_grade_points", d.CrewExperienceInitialGradePoints)
	v.SetDefault("crew_experience_grade_points_cap", d.CrewExperienceGradePointsCap)
	v.SetDefault("crew_experience_combat_grade_points_per_damage", d.CrewExperienceCombatGradePointsPerDamage)
	v.SetDefault("boarding_enabled", d.BoardingEnabled)
	v.SetDefault("boarding_range_mkm", d.BoardingRangeMkm)
	v.SetDefault("boarding_min_attacker_troops", d.BoardingMinAttackerTroops)
	v.SetDefault("boarding_target_hp_fraction", d.BoardingTargetHPFraction)
	v.SetDefault("boarding_require_shields_down", d.BoardingRequireShieldsDown)
	v.SetDefault("boarding_attacker_casualty_fraction", d.BoardingAttackerCasualtyFraction)
	v.SetDefault("boarding_defender_casualty_fraction", d.BoardingDefenderCasualtyFraction)
	v.SetDefault("boarding_defense_hp_factor", d.BoardingDefenseHPFactor)
	v.SetDefault("boarding_log_failures", d.BoardingLogFailures)
	v.SetDefault("terraforming_enabled", d.TerraformingEnabled)
	v.SetDefault("terraforming_temp_k_per_point_day", d.TerraformingTempKPerPointDay)
	v.SetDefault("terraforming_atm_per_point_day", d.TerraformingAtmPerPointDay)
	v.SetDefault("terraforming_temp_tolerance_k", d.TerraformingTempToleranceK)
	v.SetDefault("terraforming_atm_tolerance", d.TerraformingAtmTolerance)
	v.SetDefault("terraforming_duranium_per_point", d.TerraformingDuraniumPerPoint)
	v.SetDefault("terraforming_neutronium_per_point", d.TerraformingNeutroniumPerPoint)
	v.SetDefault("terraforming_split_points_between_axes", d.TerraformingSplitPointsBetweenAxes)
	v.SetDefault("terraforming_scale_with_body_mass", d.TerraformingScaleWithBodyMass)
	v.SetDefault("dynamic_poi_enabled", d.DynamicPOIEnabled)
	v.SetDefault("dynamic_poi_max_anomalies_total", d.DynamicPOIMaxAnomaliesTotal)
	v.SetDefault("dynamic_poi_max_anomalies_per_system", d.DynamicPOIMaxAnomaliesPerSystem)
	v.SetDefault("dynamic_poi_max_caches_total", d.DynamicPOIMaxCachesTotal)
	v.SetDefault("dynamic_poi_max_caches_per_system", d.DynamicPOIMaxCachesPerSystem)
	v.SetDefault("dynamic_poi_anomaly_spawn_chance_per_system_per_day", d.DynamicPOIAnomalySpawnChancePerSystemPerDay)
	v.SetDefault("dynamic_poi_cache_spawn_chance_per_system_per_day", d.DynamicPOICacheSpawnChancePerSystemPerDay)
	v.SetDefault("auto_freight_enabled", d.AutoFreightEnabled)
	v.SetDefault("auto_freight_multi_mineral", d.AutoFreightMultiMineral)
	v.SetDefault("auto_freight_min_transfer_tons", d.AutoFreightMinTransferTons)
	v.SetDefault("auto_freight_max_take_fraction_of_surplus", d.AutoFreightMaxTakeFractionOfSurplus)
	v.SetDefault("auto_tanker_enabled", d.AutoTankerEnabled)
	v.SetDefault("auto_tanker_request_threshold", d.AutoTankerRequestThreshold)
	v.SetDefault("jump_transfer_cost_mkm", d.JumpTransferCostMkm)
	v.SetDefault("jump_delay_days", d.JumpDelayDays)
	v.SetDefault("max_events", d.MaxEvents)
	v.SetDefault("arrival_epsilon_mkm", d.ArrivalEpsilonMkm)
	v.SetDefault("max_contact_age_days", d.MaxContactAgeDays)
	v.SetDefault("max_signature_over_config", d.MaxSignatureOverConfig)
}

// LoadOrDefault behaves like Load but falls back to engine.DefaultConfig on
// any error, logging nothing itself — callers that care should inspect the
// error Load would have returned instead.
func LoadOrDefault(path string) engine.Config {
	cfg, err := Load(path)
	if err != nil {
		return engine.DefaultConfig()
	}
	return cfg
}

// MustLoad behaves like Load but panics on error, for cmd/ entry points
// where a bad scenario file should abort startup immediately.
func MustLoad(path string) engine.Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
