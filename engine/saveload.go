package engine

// SaveSchemaVersion is the persisted-state schema tag. §9's open question
// leaves the exact integer unasserted; this repo starts the scheme at 1 and
// backfillLoadedState carries every pre-1 save (schema version 0, i.e. a
// zero-valued/unset tag) forward through the rules below.
const SaveSchemaVersion = 1

// backfillLoadedState applies §6's legacy-save compatibility rules to a
// freshly loaded State, then stamps it to the current schema version. Every
// rule here must be idempotent: running it twice (e.g. across a save/load
// round-trip already at the current version) must be a no-op, since
// property 7 (save ∘ load is the identity) depends on it.
func backfillLoadedState(s *State, cfg Config) {
	if s.SchemaVersion >= SaveSchemaVersion {
		return
	}

	for _, f := range s.Factions {
		if len(f.SurveyedJumpPoints) > 0 {
			continue
		}
		// Missing surveyed_jump_points: backfill from every jump point in a
		// system the faction has already discovered, at full survey (1.0).
		for sysId := range f.DiscoveredSystems {
			sys, ok := s.Systems[sysId]
			if !ok {
				continue
			}
			for _, jpId := range sys.JumpPoints {
				f.SurveyedJumpPoints[jpId] = 1.0
			}
		}
	}

	for _, shipId := range shipKeys(s.Ships) {
		ship := s.Ships[shipId]
		design, ok := s.Designs[ship.DesignId]
		if !ok {
			continue
		}
		if ship.CrewGradePoints < 0 {
			ship.CrewGradePoints = cfg.CrewExperience.InitialGradePoints
		}
		if ship.Shields < 0 {
			ship.Shields = design.Derived.MaxShields
		}
		if ship.Fuel < 0 {
			ship.Fuel = design.Derived.FuelCapacityTons
		}
		if ship.MissileAmmo < 0 {
			ship.MissileAmmo = design.Derived.MissileAmmoCapacity
		}
		// HeatState is never persisted; recompute from heat/capacity.
		ship.HeatState = heatStateFor(ship.Heat, design.Derived.MassTons, cfg.ShipHeat)
	}

	s.SchemaVersion = SaveSchemaVersion
}
