package ships

import (
	"sort"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// Formation is a fleet's spatial posture for its member ships.
type Formation string

const (
	FormationLine    Formation = "line"
	FormationWedge   Formation = "wedge"
	FormationCluster Formation = "cluster"
)

// Fleet groups ships under one faction for fan-out order issuance. The
// membership list must stay sorted and deduplicated, and a ship belongs to
// at most one fleet — callers go through AddMember/RemoveMember rather than
// mutating MemberIds directly so the invariant always holds.
type Fleet struct {
	Id         ids.Id
	FactionId  ids.Id
	Name       string
	MemberIds  []ids.Id
	LeaderId   ids.Id
	Formation  Formation
	SpacingMkm float64
}

// AddMember inserts shipId into the fleet, keeping MemberIds sorted and
// unique. Returns false if shipId was already a member.
func (f *Fleet) AddMember(shipId ids.Id) bool {
	i := sort.Search(len(f.MemberIds), func(i int) bool { return f.MemberIds[i] >= shipId })
	if i < len(f.MemberIds) && f.MemberIds[i] == shipId {
		return false
	}
	f.MemberIds = append(f.MemberIds, 0)
	copy(f.MemberIds[i+1:], f.MemberIds[i:])
	f.MemberIds[i] = shipId
	if f.LeaderId == ids.Invalid {
		f.LeaderId = shipId
	}
	return true
}

// RemoveMember deletes shipId from the fleet and repairs the leader if it
// was the removed ship.
func (f *Fleet) RemoveMember(shipId ids.Id) {
	i := sort.Search(len(f.MemberIds), func(i int) bool { return f.MemberIds[i] >= shipId })
	if i >= len(f.MemberIds) || f.MemberIds[i] != shipId {
		return
	}
	f.MemberIds = append(f.MemberIds[:i], f.MemberIds[i+1:]...)
	if f.LeaderId == shipId {
		if len(f.MemberIds) > 0 {
			f.LeaderId = f.MemberIds[0]
		} else {
			f.LeaderId = ids.Invalid
		}
	}
}

// IsEmpty reports whether the fleet has no members left and should be
// erased by a prune pass.
func (f *Fleet) IsEmpty() bool {
	return len(f.MemberIds) == 0
}
