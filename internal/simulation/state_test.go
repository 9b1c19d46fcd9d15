package simulation

import (
	"errors"
	"reflect"
	"testing"
)

func mustStart(t *testing.T, msg string) State {
	t.Helper()
	s, err := Start(msg)
	if err != nil {
		t.Fatalf("start %q: %v", msg, err)
	}
	return s
}

func mustAdvance(t *testing.T, s State) State {
	t.Helper()
	next, err := s.Advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	return next
}

func TestStartRejectsEmpty(t *testing.T) {
	for _, msg := range []string{"", "   ", "\t\n"} {
		s, err := Start(msg)
		if !errors.Is(err, ErrEmptyMessage) {
			t.Fatalf("start(%q): expected ErrEmptyMessage, got %v", msg, err)
		}
		if s.Running() || s.Packet != nil {
			t.Fatalf("start(%q) left a non-idle state: %+v", msg, s)
		}
	}
}

func TestStartTrimsAndRunsFirstLayer(t *testing.T) {
	s := mustStart(t, "  hi  ")
	if !s.Running() || s.Step != 0 {
		t.Fatalf("unexpected state: running=%v step=%d", s.Running(), s.Step)
	}
	if s.Message != "hi" {
		t.Fatalf("message not trimmed: %q", s.Message)
	}
	if s.Output.Title != "Application Layer" {
		t.Fatalf("unexpected title %q", s.Output.Title)
	}
	if s.Packet.Len() != 1 {
		t.Fatalf("expected one section, got %d", s.Packet.Len())
	}
	if s.CanRetreat() || !s.CanAdvance() {
		t.Fatalf("unexpected navigation flags at step 0")
	}
}

func TestAdvanceVisitsLayersInOrder(t *testing.T) {
	titles := []string{"Application Layer", "Transport Layer", "Network Layer", "Link Layer", "Physical Layer"}
	s := mustStart(t, "order")
	got := []string{s.Output.Title}
	for s.CanAdvance() {
		s = mustAdvance(t, s)
		got = append(got, s.Output.Title)
	}
	if !reflect.DeepEqual(got, titles) {
		t.Fatalf("unexpected order: %v", got)
	}
	if s.Step != s.Total()-1 {
		t.Fatalf("expected last step, got %d", s.Step)
	}
}

func TestAdvanceAtLastStepIsNoop(t *testing.T) {
	s := mustStart(t, "end")
	for s.CanAdvance() {
		s = mustAdvance(t, s)
	}
	again := mustAdvance(t, s)
	if again.Step != s.Step || !reflect.DeepEqual(again.Output, s.Output) || again.Packet != s.Packet {
		t.Fatalf("advance at last step changed state")
	}
}

func TestRetreatAtFirstStepIsNoop(t *testing.T) {
	s := mustStart(t, "start")
	back, err := s.Retreat()
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if back.Step != 0 || back.Packet != s.Packet || !reflect.DeepEqual(back.Output, s.Output) {
		t.Fatalf("retreat at step 0 changed state")
	}
}

func TestIdleIgnoresNavigation(t *testing.T) {
	var idle State
	next, err := idle.Advance()
	if err != nil || next.Running() {
		t.Fatalf("advance on idle: %v %+v", err, next)
	}
	prev, err := idle.Retreat()
	if err != nil || prev.Running() {
		t.Fatalf("retreat on idle: %v %+v", err, prev)
	}
}

func TestRetreatReproducesEarlierOutput(t *testing.T) {
	s := mustStart(t, "replay me")
	visits := []State{s}
	for s.CanAdvance() {
		s = mustAdvance(t, s)
		visits = append(visits, s)
	}
	for s.CanRetreat() {
		var err error
		s, err = s.Retreat()
		if err != nil {
			t.Fatalf("retreat: %v", err)
		}
		want := visits[s.Step]
		if !reflect.DeepEqual(s.Output, want.Output) {
			t.Fatalf("step %d output differs after retreat", s.Step)
		}
		got, _ := s.Packet.Encode()
		orig, _ := want.Packet.Encode()
		if string(got) != string(orig) {
			t.Fatalf("step %d packet differs after retreat:\n%s\n%s", s.Step, got, orig)
		}
	}
}

func TestAdvanceDoesNotMutateReceiver(t *testing.T) {
	s := mustStart(t, "value")
	before, _ := s.Packet.Encode()
	next := mustAdvance(t, s)
	after, _ := s.Packet.Encode()
	if string(before) != string(after) {
		t.Fatalf("advance mutated previous packet")
	}
	if next.Packet.Len() != 2 {
		t.Fatalf("expected two sections after advance, got %d", next.Packet.Len())
	}
}
