package ships

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// HeatState is the derived throttle bucket computed from heat/capacity; it
// is never persisted, only recomputed on load and after every heat update.
type HeatState int

const (
	HeatNominal HeatState = iota
	HeatWarm
	HeatHot
	HeatCritical
)

// AutomationFlags gates the AI per-ship automation loops (§4.H). A player
// ship typically has all of these false; AI-controlled hulls turn on
// whichever loops its faction policy wants.
type AutomationFlags struct {
	AutoRefuel   bool
	AutoRepair   bool
	AutoTanker   bool
	AutoSalvage  bool
	AutoColonize bool
	AutoExplore  bool
	AutoFreight  bool

	RefuelThresholdFraction float64
	RepairThresholdFraction float64
	TankerRequestFraction   float64
}

// Ship is one instance of a design, owned by a faction, located in a
// system. Fields cached from the design (speed, caps) are clamped to the
// design's bounds by RecomputeAndClamp.
type Ship struct {
	Id           ids.Id
	FactionId    ids.Id
	SystemId     ids.Id
	PositionX    float64
	PositionY    float64
	VelocityX    float64
	VelocityY    float64
	DesignId     ids.Id
	Name         string

	HP           float64
	Shields      float64
	Fuel         float64
	Cargo        map[string]float64 // resource key -> tons
	Troops       float64
	Colonists    float64
	MissileAmmo  int

	Heat      float64
	HeatState HeatState

	MaintenanceFraction float64 // [0,1]
	CrewGradePoints     float64

	Automation  AutomationFlags
	PowerPolicy PowerPolicy

	MissileCooldownDays  float64
	BoardingCooldownDays float64

	// CrewIntensity accumulates combat/boarding activity since the last
	// daily crew-experience pass, which folds it into CrewGradePoints and
	// resets it to zero.
	CrewIntensity float64
}

// CrewGradeBonus is the ship's combat bonus derived from accumulated crew
// experience points, per §4.G: (sqrt(points) - 10)/100 clamped to
// [-0.25, 0.75].
func (s *Ship) CrewGradeBonus() float64 {
	points := s.CrewGradePoints
	if points < 0 {
		points = 0
	}
	v := (math.Sqrt(points) - 10) / 100
	if v < -0.25 {
		return -0.25
	}
	if v > 0.75 {
		return 0.75
	}
	return v
}

// RecomputeAndClamp applies a design's derived stats to the ship's cached
// fields, clamping HP/fuel/shields/troops/colonists/missile ammo to the
// design's caps. Sentinel negative values (used to mean "uninitialized, set
// to full capacity") are filled to the cap. This is apply_design_to_ship
// from §4.B.
func (s *Ship) RecomputeAndClamp(d *ShipDesign) {
	clampOrFill := func(v, cap float64) float64 {
		if v < 0 {
			return cap
		}
		if v > cap {
			return cap
		}
		if v < 0 {
			return 0
		}
		return v
	}
	s.HP = clampOrFill(s.HP, d.Derived.MaxHP)
	s.Fuel = clampOrFill(s.Fuel, d.Derived.FuelCapacityTons)
	s.Shields = clampOrFill(s.Shields, d.Derived.MaxShields)
	s.Troops = clampOrFill(s.Troops, d.Derived.TroopCapacity)
	s.Colonists = clampOrFill(s.Colonists, d.Derived.ColonistCapacity)
	if s.MissileAmmo < 0 {
		s.MissileAmmo = d.Derived.MissileAmmoCapacity
	}
	if s.MissileAmmo > d.Derived.MissileAmmoCapacity {
		s.MissileAmmo = d.Derived.MissileAmmoCapacity
	}
	if s.Cargo == nil {
		s.Cargo = make(map[string]float64)
	}
}

// EffectiveSignature returns the ship's detectability multiplier. Signature
// has no modifier channel of its own yet (StatMods carries no signature
// field); it is a direct pass-through of the design's base value, kept as a
// function rather than inlined at call sites so a future signature modifier
// has one place to land.
func EffectiveSignature(baseSignature float64, mods StatMods) float64 {
	return baseSignature
}
