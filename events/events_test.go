package events

import "testing"

func TestAppendAssignsSequentialSeq(t *testing.T) {
	log := NewLog(10)
	e1 := log.Append(Event{Message: "first"})
	e2 := log.Append(Event{Message: "second"})
	if e1.Seq != 1 || e2.Seq != 2 {
		t.Fatalf("seqs = %d, %d, want 1, 2", e1.Seq, e2.Seq)
	}
}

func TestAppendTruncatesPastSlack(t *testing.T) {
	log := NewLog(10)
	for i := 0; i < 150; i++ {
		log.Append(Event{Message: "e"})
	}
	if len(log.Events) > 10+128 {
		t.Fatalf("log grew past cap+slack: %d entries", len(log.Events))
	}
	if len(log.Events) < 10 {
		t.Fatalf("log truncated below cap: %d entries", len(log.Events))
	}
}

func TestSinceSeqReturnsOnlyNewerEvents(t *testing.T) {
	log := NewLog(100)
	log.Append(Event{Message: "a"})
	cutoff := log.Append(Event{Message: "b"}).Seq
	log.Append(Event{Message: "c"})
	newer := log.SinceSeq(cutoff)
	if len(newer) != 1 || newer[0].Message != "c" {
		t.Fatalf("SinceSeq(%d) = %+v, want just [c]", cutoff, newer)
	}
}

func TestStopConditionMatchesLevelAndCategory(t *testing.T) {
	c := StopCondition{StopOnWarn: true, FilterCategory: true, Category: CategoryCombat}
	matching := Event{Level: Warn, Category: CategoryCombat}
	if !c.Matches(matching) {
		t.Fatalf("expected match on warn+combat")
	}
	wrongLevel := Event{Level: Info, Category: CategoryCombat}
	if c.Matches(wrongLevel) {
		t.Fatalf("expected no match on info level when only StopOnWarn is set")
	}
	wrongCategory := Event{Level: Warn, Category: CategoryMining}
	if c.Matches(wrongCategory) {
		t.Fatalf("expected no match on a different category")
	}
}

func TestStopConditionMessageContainsIsCaseInsensitive(t *testing.T) {
	c := StopCondition{StopOnInfo: true, MessageContains: "DEPLETED"}
	e := Event{Level: Info, Message: "Duranium deposit depleted"}
	if !c.Matches(e) {
		t.Fatalf("expected case-insensitive substring match")
	}
}

func TestStopConditionIdFiltersOnlyApplyWhenSet(t *testing.T) {
	c := StopCondition{StopOnInfo: true, ShipId: 5}
	e := Event{Level: Info, ShipId: 5}
	if !c.Matches(e) {
		t.Fatalf("expected match when ShipId filter equals event's ShipId")
	}
	e2 := Event{Level: Info, ShipId: 6}
	if c.Matches(e2) {
		t.Fatalf("expected no match when ShipId filter differs")
	}
}
