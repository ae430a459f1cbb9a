package ships

// StatMods are soft, additive modifiers applied on top of a ship's design
// stats — crew experience bonuses, maintenance penalties, treaty/research
// bonuses folded through combat and economy multipliers. Grounded directly
// on galaxyCore's ships/modifiers.go StatMods/CombineMods pattern: deltas
// compose by addition, then get applied multiplicatively at resolve time.
type StatMods struct {
	DamagePct          float64
	HitChancePct       float64
	TrackingFactorPct  float64
	ShieldRegenPct     float64
	SensorRangePct     float64
	SpeedPct           float64
	MaintenancePct     float64
	MissileReloadPct   float64
	CrewBoardingPct    float64
}

// ZeroMods returns a zero-initialized StatMods.
func ZeroMods() StatMods { return StatMods{} }

// CombineMods composes two modifier sets by straight addition of every
// field, matching galaxyCore's CombineMods: callers apply the combined
// result as (1 + sum) against a base stat, never chaining multiplications
// across individual sources.
func CombineMods(a, b StatMods) StatMods {
	return StatMods{
		DamagePct:         a.DamagePct + b.DamagePct,
		HitChancePct:      a.HitChancePct + b.HitChancePct,
		TrackingFactorPct: a.TrackingFactorPct + b.TrackingFactorPct,
		ShieldRegenPct:    a.ShieldRegenPct + b.ShieldRegenPct,
		SensorRangePct:    a.SensorRangePct + b.SensorRangePct,
		SpeedPct:          a.SpeedPct + b.SpeedPct,
		MaintenancePct:    a.MaintenancePct + b.MaintenancePct,
		MissileReloadPct:  a.MissileReloadPct + b.MissileReloadPct,
		CrewBoardingPct:   a.CrewBoardingPct + b.CrewBoardingPct,
	}
}

// PowerPolicySpec declares whether a subsystem defaults to on or off when
// power is insufficient to run everything, following the same
// declarative-catalog idiom as galaxyCore's RoleModesCatalog.
type PowerPolicySpec struct {
	Subsystem Subsystem
	Name      string
	Priority  int // lower sheds first when power is insufficient
}

// PowerPolicyCatalog is the default shedding order: weapons and PD stay
// online longest, sensors and engines shed first under brownout.
var PowerPolicyCatalog = map[Subsystem]PowerPolicySpec{
	SubsystemEngines: {Subsystem: SubsystemEngines, Name: "Engines", Priority: 10},
	SubsystemSensors: {Subsystem: SubsystemSensors, Name: "Sensors", Priority: 20},
	SubsystemShields: {Subsystem: SubsystemShields, Name: "Shields", Priority: 30},
	SubsystemPD:      {Subsystem: SubsystemPD, Name: "Point Defense", Priority: 40},
	SubsystemWeapons: {Subsystem: SubsystemWeapons, Name: "Weapons", Priority: 50},
}

// PowerPolicy is a per-ship override of the default shedding preference:
// false means "prefer off even if power allows it".
type PowerPolicy map[Subsystem]bool

// IsOnline reports whether the given subsystem is allowed to draw power
// under this ship's policy, defaulting to true when unset.
func (p PowerPolicy) IsOnline(s Subsystem) bool {
	if p == nil {
		return true
	}
	v, ok := p[s]
	if !ok {
		return true
	}
	return v
}
