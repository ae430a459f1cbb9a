package engine

import "math"

// moveToward steps cur by at most delta toward target, never overshooting.
func moveToward(cur *float64, target, delta float64) {
	if *cur < target {
		*cur += delta
		if *cur > target {
			*cur = target
		}
	} else {
		*cur -= delta
		if *cur < target {
			*cur = target
		}
	}
}

// runTerraforming advances every colonized body's active terraform targets
// by one day, consuming minerals from its colony's stockpile per point of
// progress, per §4.I's terraforming extension. Called once per day
// boundary.
func (e *Engine) runTerraforming() {
	if !e.config.Terraforming.Enabled {
		return
	}
	cfg := e.config.Terraforming
	for _, bodyId := range e.bodiesWithColonies() {
		body := e.state.Bodies[bodyId]
		if body.TerraformComplete {
			continue
		}
		if body.TerraformTargetTempK == nil && body.TerraformTargetAtmAtm == nil {
			continue
		}
		colony, ok := e.state.Colonies[body.ColonyId]
		if !ok {
			continue
		}

		needTemp := body.TerraformTargetTempK != nil && math.Abs(body.SurfaceTempK-*body.TerraformTargetTempK) > cfg.TempToleranceK
		needAtm := body.TerraformTargetAtmAtm != nil && math.Abs(body.AtmospherePressureAtm-*body.TerraformTargetAtmAtm) > cfg.AtmTolerance
		if !needTemp && !needAtm {
			body.TerraformComplete = true
			continue
		}

		massScale := 1.0
		if cfg.ScaleWithBodyMass && body.MassEarths > 0 {
			massScale = body.MassEarths
		}
		duraniumPerPoint := cfg.DuraniumPerPoint * massScale
		neutroniumPerPoint := cfg.NeutroniumPerPoint * massScale

		points := 1.0
		if duraniumPerPoint > 0 {
			points = math.Min(points, colony.Minerals["Duranium"]/duraniumPerPoint)
		}
		if neutroniumPerPoint > 0 {
			points = math.Min(points, colony.Minerals["Neutronium"]/neutroniumPerPoint)
		}
		if points <= 0 {
			continue
		}

		axes := 0
		if needTemp {
			axes++
		}
		if needAtm {
			axes++
		}
		pointsPerAxis := points
		if cfg.SplitPointsBetweenAxes && axes == 2 {
			pointsPerAxis = points / 2
		}

		if needTemp {
			moveToward(&body.SurfaceTempK, *body.TerraformTargetTempK, cfg.TempKPerPointDay*pointsPerAxis)
		}
		if needAtm {
			moveToward(&body.AtmospherePressureAtm, *body.TerraformTargetAtmAtm, cfg.AtmPerPointDay*pointsPerAxis)
		}

		spent := pointsPerAxis * float64(axes)
		colony.Minerals["Duranium"] -= spent * duraniumPerPoint
		colony.Minerals["Neutronium"] -= spent * neutroniumPerPoint
	}
}
