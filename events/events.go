// Package events implements the append-only SimEvent journal: the
// authoritative, queryable record of everything notable a tick did. It is
// deliberately not an observer/callback bus (§9) — passes append records
// here, and collaborators (UI, tests) query the log between ticks.
package events

import (
	"strings"

	"github.com/masterblaster1999/Nebula4X-sub000/ids"
)

// Level is a SimEvent's severity.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

// Category loosely groups events for filtering (EventStopCondition,
// UI panels). It is an open string set rather than a closed enum so new
// passes can introduce categories without a central registry edit.
type Category string

const (
	CategoryMovement    Category = "movement"
	CategoryResearch    Category = "research"
	CategoryConstructed Category = "constructed"
	CategoryMining      Category = "mining"
	CategoryCombat      Category = "combat"
	CategorySensors     Category = "sensors"
	CategoryAI          Category = "ai"
	CategoryProcgen     Category = "procgen"
	CategoryDiplomacy   Category = "diplomacy"
	CategoryOrders      Category = "orders"
	CategoryRuntime     Category = "runtime"
)

// Event is one journal record.
type Event struct {
	Seq      int64
	Day      int64
	Hour     int
	Level    Level
	Category Category
	Message  string

	FactionId ids.Id
	SystemId  ids.Id
	ShipId    ids.Id
	ColonyId  ids.Id
}

// Log is the capped, append-only event journal embedded in engine.State.
type Log struct {
	Events     []Event
	NextSeq    int64
	MaxEvents  int
}

// NewLog creates an empty log with the given retention cap.
func NewLog(maxEvents int) *Log {
	if maxEvents <= 0 {
		maxEvents = 2000
	}
	return &Log{NextSeq: 1, MaxEvents: maxEvents}
}

// Append records e with a freshly allocated Seq, then truncates the oldest
// entries once the log grows more than 128 past MaxEvents (the slack avoids
// reallocating the backing slice on every single append past the cap).
func (l *Log) Append(e Event) Event {
	e.Seq = l.NextSeq
	l.NextSeq++
	l.Events = append(l.Events, e)
	if len(l.Events) > l.MaxEvents+128 {
		drop := len(l.Events) - l.MaxEvents
		l.Events = append([]Event(nil), l.Events[drop:]...)
	}
	return e
}

// SinceSeq returns every event with Seq > after, in append order, used by
// advance_until_event_hours to scan only newly-added events.
func (l *Log) SinceSeq(after int64) []Event {
	var out []Event
	for _, e := range l.Events {
		if e.Seq > after {
			out = append(out, e)
		}
	}
	return out
}

// StopCondition mirrors the spec's EventStopCondition: all set filters must
// pass, and the message substring match is ASCII-case-insensitive.
type StopCondition struct {
	StopOnInfo  bool
	StopOnWarn  bool
	StopOnError bool

	FilterCategory bool
	Category       Category

	FactionId ids.Id
	SystemId  ids.Id
	ShipId    ids.Id
	ColonyId  ids.Id

	MessageContains string
}

// Matches reports whether e satisfies every set filter in c.
func (c StopCondition) Matches(e Event) bool {
	switch e.Level {
	case Info:
		if !c.StopOnInfo {
			return false
		}
	case Warn:
		if !c.StopOnWarn {
			return false
		}
	case Error:
		if !c.StopOnError {
			return false
		}
	}
	if c.FilterCategory && e.Category != c.Category {
		return false
	}
	if c.FactionId != ids.Invalid && e.FactionId != c.FactionId {
		return false
	}
	if c.SystemId != ids.Invalid && e.SystemId != c.SystemId {
		return false
	}
	if c.ShipId != ids.Invalid && e.ShipId != c.ShipId {
		return false
	}
	if c.ColonyId != ids.Invalid && e.ColonyId != c.ColonyId {
		return false
	}
	if c.MessageContains != "" && !strings.Contains(strings.ToLower(e.Message), strings.ToLower(c.MessageContains)) {
		return false
	}
	return true
}
