// Package ships models ship designs, individual ships, fleets, the order
// system, in-flight missile salvos, and battlefield wrecks. It re-grounds
// galaxyCore's ships package (Ship/ShipStack/RoleMode/StatMods) onto
// Nebula4X's design/ship/fleet model.
package ships

import (
	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// ShipDesign is a named component list plus its derived aggregate stats.
// Derived stats are recomputed deterministically from Components by
// RecomputeDerivedStats whenever a design is created, refit onto, or the
// content catalog reloads.
type ShipDesign struct {
	Id         ids.Id
	Name       string
	Components []content.ComponentKey

	// Derived is recomputed from Components + the active ContentDB; never
	// hand-edited.
	Derived DerivedStats
}

// DerivedStats is the aggregate of every component's contribution, the
// values apply_design_to_ship actually reads at runtime.
type DerivedStats struct {
	MassTons            float64
	SpeedKmS            float64
	SensorRangeMkm      float64
	CargoTons           float64
	CargoMiningRate     float64
	FuelCapacityTons    float64
	FuelUsePerMkm       float64
	MaxHP               float64
	MaxShields          float64
	ShieldRegenPerDay   float64
	SignatureMultiplier float64
	ColonistCapacity    float64
	TroopCapacity       float64

	ReactorOutputMW float64
	PowerDrawBySubsystem map[Subsystem]float64

	WeaponDamage      float64
	WeaponRangeMkm    float64
	HasBeamWeapon     bool

	MissileDamage      float64
	MissileSpeedKmS    float64
	MissileLaunchers   int
	MissileAmmoCapacity int
	MissileReloadDays  float64

	PDDamagePerDay float64
	PDRangeMkm     float64
	IsPDCapable    bool

	BuildCostsPerTon map[string]float64 // resource key -> cost per ton, for shipyards & salvage fallback
}

// Subsystem names a ship power consumer a PowerPolicy can enable/disable.
type Subsystem string

const (
	SubsystemWeapons  Subsystem = "weapons"
	SubsystemShields  Subsystem = "shields"
	SubsystemSensors  Subsystem = "sensors"
	SubsystemEngines  Subsystem = "engines"
	SubsystemPD       Subsystem = "point_defense"
)

// RecomputeDerivedStats folds every component's stat contribution into the
// design's Derived field. It is pure in (design.Components, db) and is
// called once at design creation and again on every content reload so a
// design's effective stats always match the currently loaded catalog.
func RecomputeDerivedStats(d *ShipDesign, db *content.ContentDB) {
	var out DerivedStats
	out.PowerDrawBySubsystem = make(map[Subsystem]float64)
	out.BuildCostsPerTon = map[string]float64{
		"Duranium":   1.0,
		"Neutronium": 0.1,
	}
	for _, key := range d.Components {
		c, ok := db.Components[key]
		if !ok {
			continue
		}
		out.MassTons += c.MassTons
		out.SpeedKmS += c.SpeedKmS
		out.SensorRangeMkm += c.SensorRangeMkm
		out.CargoTons += c.CargoTons
		out.CargoMiningRate += c.CargoMiningRate
		out.FuelCapacityTons += c.FuelCapacityTons
		out.FuelUsePerMkm += c.FuelUsePerMkm
		out.MaxHP += c.MaxHP
		out.MaxShields += c.MaxShields
		out.ShieldRegenPerDay += c.ShieldRegenPerDay
		out.ColonistCapacity += c.ColonistCapacity
		out.TroopCapacity += c.TroopCapacity
		out.ReactorOutputMW += c.ReactorOutputMW
		out.PowerDrawBySubsystem[SubsystemWeapons] += c.PowerDrawMW

		if c.SignatureMultiplier > 0 {
			if out.SignatureMultiplier == 0 {
				out.SignatureMultiplier = c.SignatureMultiplier
			} else {
				out.SignatureMultiplier *= c.SignatureMultiplier
			}
		}
		if c.WeaponDamage > 0 {
			out.WeaponDamage += c.WeaponDamage
			if c.WeaponRangeMkm > out.WeaponRangeMkm {
				out.WeaponRangeMkm = c.WeaponRangeMkm
			}
			if c.IsBeamWeapon {
				out.HasBeamWeapon = true
			}
		}
		if c.MissileDamage > 0 {
			out.MissileDamage += c.MissileDamage
			out.MissileLaunchers += c.MissileLaunchers
			out.MissileAmmoCapacity += c.MissileLaunchers * c.MissileAmmoPerTube
			if c.MissileSpeedKmS > out.MissileSpeedKmS {
				out.MissileSpeedKmS = c.MissileSpeedKmS
			}
			if c.MissileReloadDays > out.MissileReloadDays {
				out.MissileReloadDays = c.MissileReloadDays
			}
		}
		if c.PDDamagePerDay > 0 {
			out.PDDamagePerDay += c.PDDamagePerDay
			out.IsPDCapable = true
			if c.PDRangeMkm > out.PDRangeMkm {
				out.PDRangeMkm = c.PDRangeMkm
			}
		}
	}
	if out.SignatureMultiplier == 0 {
		out.SignatureMultiplier = 1.0
	}
	d.Derived = out
}
