// Package galaxy holds the spatial/astronomical entities a scenario is
// built from: star systems, the bodies within them, the jump-point graph
// connecting systems, and the thematic regions systems belong to. These
// types re-ground galaxyCore's orbitables package (System/Planet/Asteroid/
// Nebula) onto Nebula4X's body/jump-point/region model.
package galaxy

import (
	"math"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
	"github.com/masterblaster1999/Nebula4X-sub000/simutil"
)

// BodyType enumerates the kinds of astronomical body a system can hold.
type BodyType string

const (
	BodyStar     BodyType = "Star"
	BodyPlanet   BodyType = "Planet"
	BodyMoon     BodyType = "Moon"
	BodyGasGiant BodyType = "GasGiant"
	BodyAsteroid BodyType = "Asteroid"
	BodyComet    BodyType = "Comet"
)

// Point is a position in million-kilometres, local to whatever frame the
// holding struct documents (system-local for bodies, galaxy-wide for
// systems).
type Point struct {
	X, Y float64
}

// Body is one star, planet, moon, gas giant, asteroid or comet in a system.
type Body struct {
	Id       ids.Id
	SystemId ids.Id
	Name     string
	Type     BodyType

	// ParentId is the body this one orbits (Invalid for the system's star,
	// which is taken to orbit the system origin).
	ParentId ids.Id

	Orbit simutil.OrbitalElements

	MassEarths   float64
	RadiusKm     float64

	// MineralDeposits maps a resource key (content.ResourceKey, stored as a
	// string to avoid an import cycle with content) to remaining tons. A
	// nil/empty map means legacy "unlimited" semantics.
	MineralDeposits map[string]float64

	SurfaceTempK        float64
	AtmospherePressureAtm float64

	TerraformTargetTempK   *float64
	TerraformTargetAtmAtm  *float64
	TerraformComplete      bool

	HasColony bool
	ColonyId  ids.Id
}

// LocalPosition returns the body's position relative to its immediate
// parent at simulation day t, not yet walked up the parent chain.
func (b *Body) LocalPosition(tDays float64) Point {
	x, y := simutil.LocalPosition(b.Orbit, tDays)
	return Point{X: x, Y: y}
}

// JumpPoint is one endpoint of a bidirectional link between two systems.
// The invariant other.LinkedJumpId == self.Id must hold for every linked
// pair after generation.
type JumpPoint struct {
	Id           ids.Id
	SystemId     ids.Id
	Position     Point
	LinkedJumpId ids.Id
}

// Region groups star systems sharing thematic multipliers.
type Region struct {
	Id                      ids.Id
	Name                    string
	RuinsDensity            float64
	PirateRisk              float64
	PirateSuppression       float64
	SalvageRichness         float64
	MineralRichness         float64
	VolatileRichness        float64
	Theme                   string
}

// StarSystem is one node of the galaxy graph.
type StarSystem struct {
	Id             ids.Id
	Name           string
	GalaxyPosition Point
	Bodies         []ids.Id
	JumpPoints     []ids.Id
	Ships          []ids.Id
	RegionId       ids.Id
	NebulaDensity  float64 // [0, 1]

	// StormIntervalDays, when non-nil, is a procgen-assigned storm cadence
	// for the system. It is flavor only: no engine pass reads it, and sensor
	// attenuation (NebulaAttenuation) depends on NebulaDensity alone.
	StormIntervalDays *float64
}

// NebulaAttenuation is the environmental sensor-range multiplier a system's
// nebula density imposes, per §4.F: nebula_mult = max(0.25, 1 - 0.65*density).
func NebulaAttenuation(nebulaDensity float64) float64 {
	return math.Max(0.25, 1-0.65*nebulaDensity)
}

// RemoveShip deletes shipId from the system's ship list, if present.
func (s *StarSystem) RemoveShip(shipId ids.Id) {
	for i, id := range s.Ships {
		if id == shipId {
			s.Ships = append(s.Ships[:i], s.Ships[i+1:]...)
			return
		}
	}
}

// AddShip appends shipId to the system's ship list if not already present.
func (s *StarSystem) AddShip(shipId ids.Id) {
	for _, id := range s.Ships {
		if id == shipId {
			return
		}
	}
	s.Ships = append(s.Ships, shipId)
}
