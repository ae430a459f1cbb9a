// Package factions models player/AI polities: identity, control mode,
// tech/research state, discovery/survey intel, contacts, contracts, and
// treaties. Treaty and diplomacy status re-ground galaxyCore's diplomacy
// package (normalizePair, Provider) onto Nebula4X's faction-pair model.
package factions

import (
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/content"
	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// ControlMode is who/what drives a faction's decisions.
type ControlMode string

const (
	ControlPlayer     ControlMode = "Player"
	ControlAIPassive  ControlMode = "AI_Passive"
	ControlAIExplorer ControlMode = "AI_Explorer"
	ControlAIPirate   ControlMode = "AI_Pirate"
)

// DiplomaticStatus is the relation between two factions. Stronger statuses
// order Alliance > Trade > Research > NonAggression > Ceasefire, per the
// glossary; Hostile/Neutral bookend the scale.
type DiplomaticStatus int

const (
	StatusHostile DiplomaticStatus = iota
	StatusNeutral
	StatusCeasefire
	StatusNonAggression
	StatusResearchAgreement
	StatusTradeAgreement
	StatusAlliance
)

// TreatyType names one specific agreement kind a Treaty records.
type TreatyType string

const (
	TreatyCeasefire          TreatyType = "Ceasefire"
	TreatyNonAggressionPact  TreatyType = "NonAggressionPact"
	TreatyResearchAgreement  TreatyType = "ResearchAgreement"
	TreatyTradeAgreement     TreatyType = "TradeAgreement"
	TreatyAlliance           TreatyType = "Alliance"
)

// Pair is a normalized, order-independent faction pair: A is always the
// smaller id. Grounded directly on diplomacy.normalizePair, generalized
// from bson.ObjectID byte comparison to plain ids.Id ordering.
type Pair struct {
	A, B ids.Id
}

// NormalizePair returns the canonical Pair for two faction ids, regardless
// of argument order.
func NormalizePair(a, b ids.Id) Pair {
	if a <= b {
		return Pair{A: a, B: b}
	}
	return Pair{A: b, B: a}
}

// Treaty is one recorded agreement between a normalized faction pair.
type Treaty struct {
	Id           ids.Id
	Type         TreatyType
	Pair         Pair
	StartDay     int64
	DurationDays int64 // <= 0 means indefinite
}

// IsActive reports whether the treaty is still in force at the given day.
func (t Treaty) IsActive(day int64) bool {
	if t.DurationDays <= 0 {
		return true
	}
	return day < t.StartDay+t.DurationDays
}

// Contact is a faction's fog-of-war memory of another faction's ship.
type Contact struct {
	LastSeenDay       int64
	LastSeenSystemId  ids.Id
	LastSeenX, LastSeenY float64
	LastSeenName      string
	LastSeenDesignId  ids.Id
	LastSeenFactionId ids.Id

	HasPrevious        bool
	PreviousX, PreviousY float64
	PreviousSeenDay    int64
}

// ContractKind names what a Contract asks an assignee to do.
type ContractKind string

const (
	ContractInvestigateAnomaly ContractKind = "InvestigateAnomaly"
	ContractSalvageWreck       ContractKind = "SalvageWreck"
	ContractSurveyJumpPoint    ContractKind = "SurveyJumpPoint"
)

// ContractStatus tracks a Contract's lifecycle.
type ContractStatus string

const (
	ContractOffered   ContractStatus = "Offered"
	ContractAccepted  ContractStatus = "Accepted"
	ContractCompleted ContractStatus = "Completed"
	ContractFailed    ContractStatus = "Failed"
	ContractExpired   ContractStatus = "Expired"
)

// Contract is one procedurally-offered job a faction can accept and assign.
type Contract struct {
	Id             ids.Id
	Kind           ContractKind
	Status         ContractStatus
	IssuerFactionId   ids.Id
	AssigneeFactionId ids.Id
	SystemId       ids.Id
	TargetId       ids.Id

	OfferedDay   int64
	AcceptedDay  int64
	ResolvedDay  int64
	ExpiresDay   int64

	EstimatedHops int
	EstimatedRisk float64
	ResearchPointReward float64
	Name string

	AssignedShipId  ids.Id
	AssignedFleetId ids.Id
}

// Faction is one polity.
type Faction struct {
	Id      ids.Id
	Name    string
	Control ControlMode

	KnownTechs    []content.TechKey // ordered, unique
	ResearchQueue []content.TechKey
	ActiveTechId  content.TechKey
	ActiveTechProgressPoints float64

	UnlockedComponents    map[content.ComponentKey]bool
	UnlockedInstallations map[content.InstallationKey]bool

	DiscoveredSystems map[ids.Id]bool
	// SurveyedJumpPoints maps a jump point id to partial survey progress in
	// [0,1]; 1.0 means fully surveyed (usable for route planning).
	SurveyedJumpPoints map[ids.Id]float64

	Contacts map[ids.Id]Contact // ship id -> contact

	Journal []string // free-form faction-local narrative log, distinct from events.Log

	TraitMultipliers map[string]float64

	ShipDesignTargets map[ids.Id]int // design id -> desired count
	ShipProfiles      map[ids.Id]string

	// Diplomacy: status keyed by normalized pair with the other faction.
	Diplomacy map[Pair]DiplomaticStatus

	Contracts map[ids.Id]Contract

	NextSeq int64 // used to assign stable, deterministic sub-ids within faction-local structures
}

// NewFaction constructs an empty Faction ready for scenario setup.
func NewFaction(id ids.Id, name string, control ControlMode) *Faction {
	return &Faction{
		Id:                    id,
		Name:                  name,
		Control:               control,
		UnlockedComponents:    make(map[content.ComponentKey]bool),
		UnlockedInstallations: make(map[content.InstallationKey]bool),
		DiscoveredSystems:     make(map[ids.Id]bool),
		SurveyedJumpPoints:    make(map[ids.Id]float64),
		Contacts:              make(map[ids.Id]Contact),
		TraitMultipliers:      make(map[string]float64),
		ShipDesignTargets:     make(map[ids.Id]int),
		ShipProfiles:          make(map[ids.Id]string),
		Diplomacy:             make(map[Pair]DiplomaticStatus),
		Contracts:             make(map[ids.Id]Contract),
	}
}

// KnowsTech reports whether key is in KnownTechs.
func (f *Faction) KnowsTech(key content.TechKey) bool {
	for _, k := range f.KnownTechs {
		if k == key {
			return true
		}
	}
	return false
}

// LearnTech appends key to KnownTechs if not already known.
func (f *Faction) LearnTech(key content.TechKey) {
	if f.KnowsTech(key) {
		return
	}
	f.KnownTechs = append(f.KnownTechs, key)
}

// KnownTechSet returns KnownTechs as a lookup map, for prerequisite checks.
func (f *Faction) KnownTechSet() map[content.TechKey]bool {
	out := make(map[content.TechKey]bool, len(f.KnownTechs))
	for _, k := range f.KnownTechs {
		out[k] = true
	}
	return out
}

// StatusWith returns the diplomatic status this faction has recorded with
// other, defaulting to Neutral if no treaty/status has ever been set.
func (f *Faction) StatusWith(other ids.Id) DiplomaticStatus {
	v, ok := f.Diplomacy[NormalizePair(f.Id, other)]
	if !ok {
		return StatusNeutral
	}
	return v
}

// SetStatusWith records a diplomatic status for the normalized pair.
func (f *Faction) SetStatusWith(other ids.Id, status DiplomaticStatus) {
	f.Diplomacy[NormalizePair(f.Id, other)] = status
}

// Provider mirrors galaxyCore's diplomacy.Provider shape, generalized to
// Nebula4X's synchronous, in-process engine (no error return — diplomacy
// state lookups can't fail here, they just default to Neutral/not-allied).
type Provider interface {
	AreAllies(a, b ids.Id) bool
	AreEnemies(a, b ids.Id) bool
}

// AreShipsEnemies mirrors galaxyCore's AreStacksEnemies helper.
func AreShipsEnemies(p Provider, factionA, factionB ids.Id) bool {
	return p.AreEnemies(factionA, factionB)
}

// AreShipsAllies mirrors galaxyCore's AreStacksAllies helper.
func AreShipsAllies(p Provider, factionA, factionB ids.Id) bool {
	return p.AreAllies(factionA, factionB)
}

// SortedFactionKeys is a tiny convenience re-export so callers in other
// packages don't need to hand-roll sort.Slice for map[ids.Id]*Faction.
func SortedFactionKeys(m map[ids.Id]*Faction) []ids.Id {
	keys := make([]ids.Id, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
