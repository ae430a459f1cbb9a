package ships

import "github.com/masterblaster1999/Nebula4X-sub000/ids"

// MissileSalvo is an in-flight, time-of-flight missile package. It
// integrates point-defense interception continuously across however many
// ticks it takes to arrive (§4.G).
type MissileSalvo struct {
	Id               ids.Id
	AttackerShipId   ids.Id
	TargetShipId     ids.Id
	AttackerFactionId ids.Id
	DefenderFactionId ids.Id
	SystemId         ids.Id

	LaunchX, LaunchY float64
	TargetX, TargetY float64 // snapshot position at launch time

	TotalEtaDays     float64
	RemainingEtaDays float64

	InitialDamage   float64
	RemainingDamage float64
}

// ProgressFraction returns how far through its flight the salvo is, in
// [0, 1], used to compute the swept segment endpoints for PD integration.
func (m *MissileSalvo) ProgressFraction() float64 {
	if m.TotalEtaDays <= 0 {
		return 1
	}
	elapsed := m.TotalEtaDays - m.RemainingEtaDays
	f := elapsed / m.TotalEtaDays
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// PositionAt returns the salvo's position at progress fraction u along its
// straight-line flight path.
func (m *MissileSalvo) PositionAt(u float64) (x, y float64) {
	return m.LaunchX + (m.TargetX-m.LaunchX)*u, m.LaunchY + (m.TargetY-m.LaunchY)*u
}

// Wreck is battlefield debris left by a destroyed ship, salvageable for
// minerals until it decays.
type Wreck struct {
	Id       ids.Id
	SystemId ids.Id
	X, Y     float64
	Minerals map[string]float64

	OriginShipId   ids.Id
	OriginFactionId ids.Id
	OriginDesignId ids.Id

	CreatedDay int64

	// IsCache marks a procgen-spawned loot cache rather than combat debris;
	// caches never decay from a kill, only from the configured decay timer.
	IsCache bool
}

// TotalTons sums a wreck's remaining mineral cargo.
func (w *Wreck) TotalTons() float64 {
	var total float64
	for _, v := range w.Minerals {
		total += v
	}
	return total
}
