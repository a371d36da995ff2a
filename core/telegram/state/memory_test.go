package state

import (
	"testing"
	"time"
)

type payload struct {
	Step  string
	Count int
}

func TestGetReturnsIdleDefault(t *testing.T) {
	m := NewManager[payload]()
	s := m.Get(1)
	if s.State != StateIdle {
		t.Fatalf("expected idle state, got %q", s.State)
	}
	if m.InProgress(1) {
		t.Fatal("expected no session in progress")
	}
}

func TestUpdateCreatesAndMutates(t *testing.T) {
	m := NewManager[payload]()
	m.Update(1, func(s *Session[payload]) {
		s.State = State("step.one")
		s.Data.Step = "one"
		s.Data.Count = 2
	})

	got := m.Get(1)
	if got.State != State("step.one") || got.Data.Count != 2 {
		t.Fatalf("unexpected session: %+v", got)
	}
	if !m.InProgress(1) {
		t.Fatal("expected session in progress")
	}
	if got.LastSeen.IsZero() {
		t.Fatal("expected last-seen stamp")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	m := NewManager[payload]()
	m.Update(1, func(s *Session[payload]) { s.Data.Step = "orig" })

	got := m.Get(1)
	got.Data.Step = "mutated"

	if m.Get(1).Data.Step != "orig" {
		t.Fatal("Get must not expose internal session storage")
	}
}

func TestClearDropsSession(t *testing.T) {
	m := NewManager[payload]()
	m.SetState(1, State("busy"))
	m.Clear(1)
	if m.StateOf(1) != StateIdle {
		t.Fatal("expected idle after clear")
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty manager, got %d", m.Len())
	}
}

func TestSweepEvictsOnlyIdleSessions(t *testing.T) {
	m := NewManager[payload]()
	current := time.Now()
	m.now = func() time.Time { return current }

	m.SetState(1, State("old"))
	current = current.Add(10 * time.Minute)
	m.SetState(2, State("fresh"))

	if n := m.Sweep(5 * time.Minute); n != 1 {
		t.Fatalf("expected 1 evicted, got %d", n)
	}
	if m.StateOf(1) != StateIdle {
		t.Fatal("stale session should be gone")
	}
	if m.StateOf(2) != State("fresh") {
		t.Fatal("fresh session should survive")
	}
	if n := m.Sweep(0); n != 0 {
		t.Fatal("non-positive maxIdle must disable eviction")
	}
}
